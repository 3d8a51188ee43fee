package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"immicv/models"
)

// EnhancementEngine layers per-section improvement suggestions on top
// of a fresh ATS analysis. Like the scorer it is pure: the input CV is
// never mutated.
type EnhancementEngine struct {
	scorer *ATSScorer
}

// NewEnhancementEngine creates an engine computing experience years as
// of the given date.
func NewEnhancementEngine(asOf time.Time) *EnhancementEngine {
	return &EnhancementEngine{scorer: NewATSScorer(asOf)}
}

// GenerateCVEnhancements runs the engine as of the current wall-clock
// date. Unknown visa/industry values fall back to defaults; the call
// never errors.
func GenerateCVEnhancements(cv *models.StructuredCV, targetVisa, targetIndustry string) models.EnhancementResult {
	return NewEnhancementEngine(time.Now()).Generate(cv, targetVisa, targetIndustry)
}

// Generate scores the CV once, then derives section suggestions, the
// projected impact and a template recommendation.
func (e *EnhancementEngine) Generate(cv *models.StructuredCV, targetVisa, targetIndustry string) models.EnhancementResult {
	if cv == nil {
		cv = models.NewStructuredCV()
	}
	visa := ParseVisaProgram(targetVisa)
	industry := ParseIndustry(targetIndustry)

	analysis := e.scorer.Calculate(cv, targetVisa, targetIndustry)

	sections := []models.SectionEnhancement{
		e.enhancePersonalInfo(cv, industry, visa),
		e.enhanceSummary(cv, industry, visa),
		e.enhanceExperience(cv, industry),
		e.enhanceEducation(cv),
		e.enhanceSkills(cv, industry),
	}

	return models.EnhancementResult{
		Analysis:               analysis,
		Sections:               sections,
		EstimatedImpact:        estimateImpact(analysis),
		TemplateRecommendation: e.recommendTemplate(cv, industry, visa),
	}
}

func (e *EnhancementEngine) enhancePersonalInfo(cv *models.StructuredCV, industry Industry, visa VisaProgram) models.SectionEnhancement {
	var suggestions []models.EnhancementSuggestion
	info := cv.PersonalInfo

	if info.FullName == "" {
		suggestions = append(suggestions, models.EnhancementSuggestion{
			Type: models.SuggestionMissing, Field: "full_name",
			Suggestion: "Add your full legal name as it appears on your passport",
			Priority:   "Critical",
		})
	}
	if info.JobTitle == "" {
		suggestions = append(suggestions, models.EnhancementSuggestion{
			Type: models.SuggestionMissing, Field: "job_title",
			Suggestion: "Add a headline job title matching your target occupation",
			Priority:   "High",
			Template:   jobTitleTemplate(industry),
		})
	}
	if info.Email == "" {
		suggestions = append(suggestions, models.EnhancementSuggestion{
			Type: models.SuggestionMissing, Field: "email",
			Suggestion: "Add a professional email address",
			Priority:   "Critical",
		})
	}
	if info.Phone == "" {
		suggestions = append(suggestions, models.EnhancementSuggestion{
			Type: models.SuggestionMissing, Field: "phone",
			Suggestion: "Add a phone number with country code",
			Priority:   "High",
		})
	}
	if info.Location == "" {
		suggestions = append(suggestions, models.EnhancementSuggestion{
			Type: models.SuggestionMissing, Field: "location",
			Suggestion: "Add your current city and country; immigration programs weigh location context",
			Priority:   "Medium",
		})
	}

	enhanced := strings.TrimSpace(strings.Join(nonEmpty(
		info.FullName, info.JobTitle, info.Email, info.Phone, info.Location,
	), " | "))

	return models.SectionEnhancement{
		Section:     "personal_info",
		Suggestions: orEmpty(suggestions),
		Enhanced:    enhanced,
	}
}

func (e *EnhancementEngine) enhanceSummary(cv *models.StructuredCV, industry Industry, visa VisaProgram) models.SectionEnhancement {
	var suggestions []models.EnhancementSuggestion
	enhanced := cv.Summary
	template := summaryTemplate(industry, visa)

	switch {
	case strings.TrimSpace(cv.Summary) == "":
		suggestions = append(suggestions, models.EnhancementSuggestion{
			Type: models.SuggestionMissing, Field: "summary",
			Suggestion: "Write a 3-4 sentence professional summary tailored to your target program",
			Priority:   "High",
			Template:   template,
		})
		enhanced = template
	case len(strings.TrimSpace(cv.Summary)) < 50:
		suggestions = append(suggestions, models.EnhancementSuggestion{
			Type: models.SuggestionImprovement, Field: "summary",
			Suggestion: "Expand the summary with years of experience, specialization and target occupation",
			Priority:   "Medium",
			Template:   template,
		})
		enhanced = cv.Summary + " [Expand: years of experience, key specialization, and why you fit the target occupation.]"
	}

	return models.SectionEnhancement{
		Section:     "summary",
		Suggestions: orEmpty(suggestions),
		Enhanced:    enhanced,
	}
}

func (e *EnhancementEngine) enhanceExperience(cv *models.StructuredCV, industry Industry) models.SectionEnhancement {
	var suggestions []models.EnhancementSuggestion

	if len(cv.Experience) == 0 {
		suggestions = append(suggestions, models.EnhancementSuggestion{
			Type: models.SuggestionMissing, Field: "experience",
			Suggestion: "Add your work history; most skilled programs require at least one year of documented experience",
			Priority:   "Critical",
			Template:   "Job Title at Company Name\n2020 - Present\n- Achievement with a measurable result",
		})
	}

	for i, exp := range cv.Experience {
		field := fmt.Sprintf("experience[%d]", i)
		if exp.StartDate == "" && exp.EndDate == "" {
			suggestions = append(suggestions, models.EnhancementSuggestion{
				Type: models.SuggestionImprovement, Field: field,
				Suggestion: fmt.Sprintf("Add start and end dates to the %q role; undated experience cannot be counted", orPlaceholder(exp.Title, "untitled")),
				Priority:   "High",
			})
		}
		if exp.Company == "" {
			suggestions = append(suggestions, models.EnhancementSuggestion{
				Type: models.SuggestionImprovement, Field: field,
				Suggestion: "Name the employer; reference letters must match the CV",
				Priority:   "High",
			})
		}
		if len(strings.TrimSpace(exp.Description)) < 50 {
			suggestions = append(suggestions, models.EnhancementSuggestion{
				Type: models.SuggestionImprovement, Field: field,
				Suggestion: fmt.Sprintf("Expand the %q role with 2-3 quantified achievement bullets", orPlaceholder(exp.Title, "untitled")),
				Priority:   "Medium",
			})
		}
	}

	return models.SectionEnhancement{
		Section:     "experience",
		Suggestions: orEmpty(suggestions),
		Enhanced:    enhanceExperienceText(cv.Experience),
	}
}

func (e *EnhancementEngine) enhanceEducation(cv *models.StructuredCV) models.SectionEnhancement {
	var suggestions []models.EnhancementSuggestion

	if len(cv.Education) == 0 {
		suggestions = append(suggestions, models.EnhancementSuggestion{
			Type: models.SuggestionMissing, Field: "education",
			Suggestion: "Add your education history; credentials drive points in every skilled program",
			Priority:   "High",
			Template:   "Degree, Institution, Graduation Year",
		})
	}

	for i, edu := range cv.Education {
		field := fmt.Sprintf("education[%d]", i)
		if edu.Institution == "" {
			suggestions = append(suggestions, models.EnhancementSuggestion{
				Type: models.SuggestionImprovement, Field: field,
				Suggestion: "Name the institution; it is required for an educational credential assessment",
				Priority:   "High",
			})
		}
		if edu.GraduationDate == "" {
			suggestions = append(suggestions, models.EnhancementSuggestion{
				Type: models.SuggestionImprovement, Field: field,
				Suggestion: "Add the graduation year",
				Priority:   "Medium",
			})
		}
	}

	return models.SectionEnhancement{
		Section:     "education",
		Suggestions: orEmpty(suggestions),
	}
}

func (e *EnhancementEngine) enhanceSkills(cv *models.StructuredCV, industry Industry) models.SectionEnhancement {
	var suggestions []models.EnhancementSuggestion
	ks := industry.Keywords()

	if len(cv.Skills) == 0 {
		suggestions = append(suggestions, models.EnhancementSuggestion{
			Type: models.SuggestionMissing, Field: "skills",
			Suggestion: fmt.Sprintf("Add a skills section with %s keywords", industry),
			Priority:   "Critical",
			Template:   strings.Join(firstN(ks.Technical, 6), ", "),
		})
	} else {
		missing := missingKeywords(cv.Skills, ks.Technical, 5)
		if len(missing) > 0 {
			suggestions = append(suggestions, models.EnhancementSuggestion{
				Type: models.SuggestionImprovement, Field: "skills",
				Suggestion: fmt.Sprintf("Consider adding in-demand %s skills you genuinely have: %s", industry, strings.Join(missing, ", ")),
				Priority:   "Medium",
			})
		}
	}

	return models.SectionEnhancement{
		Section:     "skills",
		Suggestions: orEmpty(suggestions),
		Enhanced:    strings.Join(cv.Skills, ", "),
	}
}

// estimateImpact projects the score assuming each category can improve
// by up to 30 percentage points, capped at 95%, weighted by its max
// score. A linear heuristic, not a simulation.
func estimateImpact(analysis models.ATSAnalysis) models.EstimatedImpact {
	increase := 0.0
	for _, cat := range analysis.Breakdown {
		if cat.MaxScore <= 0 {
			continue
		}
		currentPct := cat.Score / cat.MaxScore * 100
		targetPct := math.Min(currentPct+30, 95)
		if targetPct > currentPct {
			increase += (targetPct - currentPct) / 100 * cat.MaxScore
		}
	}
	increase = round1(increase)
	return models.EstimatedImpact{
		CurrentScore:      analysis.TotalScore,
		ProjectedScore:    round1(analysis.TotalScore + increase),
		PotentialIncrease: increase,
	}
}

// templateIndustryAffinity marks which template suits which industry.
// The graduate template has no home industry and earns points only
// through the experience-level rule.
var templateIndustryAffinity = map[CVTemplate]Industry{
	TemplateTechnicalCompact:   IndustrySoftware,
	TemplateExecutiveClassic:   IndustryFinance,
	TemplateModernProfessional: IndustryMarketing,
	TemplateInternationalATS:   IndustryEngineering,
}

// internationalVisas benefit from the ATS-safe international template.
var internationalVisas = map[VisaProgram]bool{
	VisaExpressEntry:       true,
	VisaSkilledIndependent: true,
	VisaSkilledWorkerUK:    true,
}

// recommendTemplate scores the five CV templates with additive point
// rules and returns the winner plus two runners-up.
func (e *EnhancementEngine) recommendTemplate(cv *models.StructuredCV, industry Industry, visa VisaProgram) models.TemplateRecommendation {
	years := e.scorer.ExperienceYears(cv)

	scored := make([]models.TemplateScore, 0, len(AllCVTemplates))
	for _, tpl := range AllCVTemplates {
		score := 0
		var reasons []string

		if templateIndustryAffinity[tpl] == industry {
			score += 40
			reasons = append(reasons, fmt.Sprintf("designed for %s", industry))
		}

		switch tpl {
		case TemplateInternationalATS:
			if internationalVisas[visa] {
				score += 20
				reasons = append(reasons, fmt.Sprintf("optimized for %s screening", visa))
			} else {
				score += 15
				reasons = append(reasons, "keeps layout machine-readable for any program")
			}
		case TemplateExecutiveClassic:
			if visa == VisaSkilledWorkerUK || visa == VisaH1B {
				score += 15
				reasons = append(reasons, "suits employer-sponsored applications")
			}
		case TemplateModernProfessional:
			score += 15
			reasons = append(reasons, "broadly accepted default")
		}

		switch {
		case years >= 8 && tpl == TemplateExecutiveClassic:
			score += 15
			reasons = append(reasons, "emphasizes senior leadership history")
		case years < 2 && tpl == TemplateGraduateClean:
			score += 15
			reasons = append(reasons, "leads with education for early-career profiles")
		case years >= 2 && years < 8 && (tpl == TemplateModernProfessional || tpl == TemplateTechnicalCompact):
			score += 10
			reasons = append(reasons, "balances experience and skills for mid-career profiles")
		}

		reason := "general-purpose layout"
		if len(reasons) > 0 {
			reason = strings.Join(reasons, "; ")
		}
		scored = append(scored, models.TemplateScore{
			Template: string(tpl),
			Score:    score,
			Reason:   reason,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	return models.TemplateRecommendation{
		Recommended: scored[0],
		Alternates:  scored[1:3],
	}
}

// summaryKey selects a summary template for an (industry, visa) pair.
type summaryKey struct {
	industry Industry
	visa     VisaProgram
}

var summaryTemplates = map[summaryKey]string{
	{IndustrySoftware, VisaExpressEntry}:    "Software engineer with N years building production systems, targeting NOC-aligned roles in Canada. Strong English proficiency (IELTS) and experience with cloud platforms and modern delivery practices.",
	{IndustrySoftware, VisaSkilledWorkerUK}: "Software engineer with N years of commercial experience in an eligible Skilled Worker occupation, seeking UK sponsorship. Track record of delivering measurable product outcomes.",
	{IndustryHealthcare, VisaExpressEntry}:  "Registered healthcare professional with N years of clinical experience, pursuing licensure recognition in Canada. Experienced in patient care, documentation and multidisciplinary teams.",
	{IndustryFinance, VisaExpressEntry}:     "Finance professional with N years across reporting, analysis and audit, aligned with Canadian NOC finance occupations. Working toward CPA recognition.",
}

var industrySummaryDefaults = map[Industry]string{
	IndustrySoftware:    "Software professional with N years of experience delivering reliable systems; highlight your stack, scale and measurable outcomes.",
	IndustryHealthcare:  "Healthcare professional with N years of patient-facing experience; highlight licensure, settings and clinical specialties.",
	IndustryFinance:     "Finance professional with N years of experience; highlight reporting standards, designations and the size of budgets managed.",
	IndustryEngineering: "Engineer with N years of project experience; highlight discipline, licensure status and delivered projects.",
	IndustryMarketing:   "Marketing professional with N years of campaign experience; highlight channels, budgets and growth metrics.",
}

// summaryTemplate resolves (industry, visa) with an industry-level
// default, mirroring the fallback policy of the scoring tables.
func summaryTemplate(industry Industry, visa VisaProgram) string {
	if tpl, ok := summaryTemplates[summaryKey{industry, visa}]; ok {
		return tpl
	}
	if tpl, ok := industrySummaryDefaults[industry]; ok {
		return tpl
	}
	return industrySummaryDefaults[IndustrySoftware]
}

var jobTitleTemplates = map[Industry]string{
	IndustrySoftware:    "Software Engineer",
	IndustryHealthcare:  "Registered Nurse",
	IndustryFinance:     "Financial Analyst",
	IndustryEngineering: "Mechanical Engineer",
	IndustryMarketing:   "Marketing Specialist",
}

func jobTitleTemplate(industry Industry) string {
	if t, ok := jobTitleTemplates[industry]; ok {
		return t
	}
	return jobTitleTemplates[IndustrySoftware]
}

// enhanceExperienceText renders the experience entries back to text
// with inline prompts where detail is missing.
func enhanceExperienceText(entries []models.ExperienceEntry) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	for i, exp := range entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		header := strings.TrimSpace(strings.Join(nonEmpty(exp.Title, exp.Company), " at "))
		if header == "" {
			header = "[Add job title and employer]"
		}
		b.WriteString(header)
		if exp.StartDate != "" || exp.EndDate != "" {
			b.WriteString(fmt.Sprintf(" (%s - %s)", orPlaceholder(exp.StartDate, "?"), orPlaceholder(exp.EndDate, "?")))
		} else {
			b.WriteString(" [Add dates]")
		}
		if strings.TrimSpace(exp.Description) != "" {
			b.WriteString("\n" + exp.Description)
		} else {
			b.WriteString("\n[Add 2-3 quantified achievement bullets]")
		}
	}
	return b.String()
}

// missingKeywords returns up to limit technical terms absent from the
// skill list.
func missingKeywords(skills, terms []string, limit int) []string {
	joined := strings.ToLower(strings.Join(skills, " "))
	var missing []string
	for _, term := range terms {
		if !strings.Contains(joined, strings.ToLower(term)) {
			missing = append(missing, term)
			if len(missing) >= limit {
				break
			}
		}
	}
	return missing
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func orPlaceholder(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

func orEmpty(s []models.EnhancementSuggestion) []models.EnhancementSuggestion {
	if s == nil {
		return []models.EnhancementSuggestion{}
	}
	return s
}
