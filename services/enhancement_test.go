package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"immicv/models"
)

func TestGenerate_EmptyCV(t *testing.T) {
	engine := NewEnhancementEngine(testAsOf)
	result := engine.Generate(models.NewStructuredCV(), "Express Entry", "Software Engineering")

	sections := map[string]models.SectionEnhancement{}
	for _, s := range result.Sections {
		sections[s.Section] = s
	}
	assert.Len(t, result.Sections, 5)
	for _, name := range []string{"personal_info", "summary", "experience", "education", "skills"} {
		assert.Contains(t, sections, name)
	}

	// Every contact field is empty, so all five missing-field
	// suggestions fire.
	assert.Len(t, sections["personal_info"].Suggestions, 5)
	for _, s := range sections["personal_info"].Suggestions {
		assert.Equal(t, models.SuggestionMissing, s.Type)
	}

	summary := sections["summary"].Suggestions
	assert.Len(t, summary, 1)
	assert.Equal(t, models.SuggestionMissing, summary[0].Type)
	assert.NotEmpty(t, summary[0].Template)
	assert.Equal(t, summary[0].Template, sections["summary"].Enhanced)

	exp := sections["experience"].Suggestions
	assert.Len(t, exp, 1)
	assert.Equal(t, "Critical", exp[0].Priority)

	skills := sections["skills"].Suggestions
	assert.Len(t, skills, 1)
	assert.Contains(t, skills[0].Template, "javascript")
}

func TestGenerate_CompleteCVHasFewSuggestions(t *testing.T) {
	engine := NewEnhancementEngine(testAsOf)
	result := engine.Generate(janeCV(), "Express Entry", "Software Engineering")

	for _, s := range result.Sections {
		assert.NotNil(t, s.Suggestions, "section %s", s.Section)
		switch s.Section {
		case "personal_info", "summary", "education":
			assert.Empty(t, s.Suggestions, "section %s", s.Section)
		}
	}
	assert.Equal(t, result.Analysis.TotalScore, result.EstimatedImpact.CurrentScore)
}

func TestGenerate_NilCV(t *testing.T) {
	engine := NewEnhancementEngine(testAsOf)
	result := engine.Generate(nil, "", "")
	assert.Len(t, result.Sections, 5)
	assert.NotEmpty(t, result.TemplateRecommendation.Recommended.Template)
}

func TestEstimateImpact(t *testing.T) {
	analysis := models.ATSAnalysis{
		TotalScore: 19.5,
		Breakdown: models.ATSScoreBreakdown{
			// 50% of 20: +30pp applies in full, worth 6 points.
			models.CategoryKeywords: {Score: 10, MaxScore: 20},
			// Already at the 95% cap: contributes nothing.
			models.CategoryContent: {Score: 9.5, MaxScore: 10},
		},
	}

	impact := estimateImpact(analysis)
	assert.Equal(t, 19.5, impact.CurrentScore)
	assert.Equal(t, 6.0, impact.PotentialIncrease)
	assert.Equal(t, 25.5, impact.ProjectedScore)
}

func TestEstimateImpact_NeverExceedsWeightedCap(t *testing.T) {
	engine := NewEnhancementEngine(testAsOf)
	result := engine.Generate(janeCV(), "Express Entry", "Software Engineering")

	impact := result.EstimatedImpact
	assert.GreaterOrEqual(t, impact.PotentialIncrease, 0.0)
	assert.LessOrEqual(t, impact.ProjectedScore, 95.0)
	assert.InDelta(t, impact.CurrentScore+impact.PotentialIncrease, impact.ProjectedScore, 0.05)
}

func TestRecommendTemplate_MidCareerSoftware(t *testing.T) {
	engine := NewEnhancementEngine(testAsOf)
	// Jane has 5 years as of the reference date.
	rec := engine.recommendTemplate(janeCV(), IndustrySoftware, VisaExpressEntry)

	assert.Equal(t, string(TemplateTechnicalCompact), rec.Recommended.Template)
	assert.Len(t, rec.Alternates, 2)
	assert.Greater(t, rec.Recommended.Score, rec.Alternates[0].Score)
	assert.GreaterOrEqual(t, rec.Alternates[0].Score, rec.Alternates[1].Score)
	assert.NotEmpty(t, rec.Recommended.Reason)
}

func TestRecommendTemplate_EarlyCareerIncludesGraduate(t *testing.T) {
	engine := NewEnhancementEngine(testAsOf)
	cv := models.NewStructuredCV()

	rec := engine.recommendTemplate(cv, IndustryHealthcare, VisaH1B)

	names := []string{rec.Recommended.Template}
	for _, alt := range rec.Alternates {
		names = append(names, alt.Template)
	}
	assert.Contains(t, names, string(TemplateGraduateClean),
		"early-career profiles should surface the graduate template")
}

func TestSummaryTemplate(t *testing.T) {
	// Exact (industry, visa) pair wins.
	exact := summaryTemplate(IndustrySoftware, VisaExpressEntry)
	assert.Contains(t, strings.ToLower(exact), "noc")

	// No pair entry: falls back to the industry default.
	engineering := summaryTemplate(IndustryEngineering, VisaH1B)
	assert.Equal(t, industrySummaryDefaults[IndustryEngineering], engineering)

	// Unknown industry: software default.
	unknown := summaryTemplate(Industry("Bogus"), VisaH1B)
	assert.Equal(t, industrySummaryDefaults[IndustrySoftware], unknown)
}

func TestMissingKeywords(t *testing.T) {
	skills := []string{"JavaScript", "SQL"}
	terms := []string{"javascript", "sql", "docker", "kubernetes", "aws", "react"}

	missing := missingKeywords(skills, terms, 3)
	assert.Equal(t, []string{"docker", "kubernetes", "aws"}, missing)

	assert.Empty(t, missingKeywords([]string{"docker"}, []string{"docker"}, 5))
}

func TestEnhanceExperienceText(t *testing.T) {
	entries := []models.ExperienceEntry{
		{Title: "Engineer", Company: "Acme", StartDate: "2020", EndDate: "Present", Description: "Built APIs."},
		{},
	}
	text := enhanceExperienceText(entries)
	assert.Contains(t, text, "Engineer at Acme (2020 - Present)")
	assert.Contains(t, text, "Built APIs.")
	assert.Contains(t, text, "[Add job title and employer]")
	assert.Contains(t, text, "[Add dates]")
	assert.Contains(t, text, "[Add 2-3 quantified achievement bullets]")

	assert.Equal(t, "", enhanceExperienceText(nil))
}
