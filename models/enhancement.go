package models

// Suggestion types emitted by the enhancement engine.
const (
	SuggestionMissing     = "missing"
	SuggestionImprovement = "improvement"
)

// EnhancementSuggestion describes one missing or weak field and how to
// improve it. Template carries a ready-to-edit example when one exists
// for the (industry, visa) pair.
type EnhancementSuggestion struct {
	Type       string `json:"type"` // missing or improvement
	Field      string `json:"field"`
	Suggestion string `json:"suggestion"`
	Priority   string `json:"priority"`
	Template   string `json:"template,omitempty"`
}

// SectionEnhancement groups suggestions for one CV section together
// with a best-effort enhanced value for that section.
type SectionEnhancement struct {
	Section     string                  `json:"section"`
	Suggestions []EnhancementSuggestion `json:"suggestions"`
	Enhanced    string                  `json:"enhanced,omitempty"`
}

// EstimatedImpact is a linear projection of the score after applying
// the suggestions, not a simulation.
type EstimatedImpact struct {
	CurrentScore      float64 `json:"current_score"`
	ProjectedScore    float64 `json:"projected_score"`
	PotentialIncrease float64 `json:"potential_increase"`
}

// TemplateScore is one scored CV template candidate.
type TemplateScore struct {
	Template string `json:"template"`
	Score    int    `json:"score"`
	Reason   string `json:"reason"`
}

// TemplateRecommendation is the best template plus the two runners-up.
type TemplateRecommendation struct {
	Recommended TemplateScore   `json:"recommended"`
	Alternates  []TemplateScore `json:"alternates"`
}

// EnhancementResult is the enhancement engine's full output, layered on
// top of a fresh ATS analysis.
type EnhancementResult struct {
	Analysis               ATSAnalysis            `json:"analysis"`
	Sections               []SectionEnhancement   `json:"sections"`
	EstimatedImpact        EstimatedImpact        `json:"estimated_impact"`
	TemplateRecommendation TemplateRecommendation `json:"template_recommendation"`
}
