package models

// Score category names. The breakdown map is keyed by these.
const (
	CategoryFormatting  = "formatting"
	CategoryKeywords    = "keywords"
	CategoryStructure   = "structure"
	CategoryContent     = "content"
	CategoryImmigration = "immigration"
	CategoryCompliance  = "compliance"
)

// CategoryScore is one scored category of the ATS breakdown. Score is
// capped at MaxScore before the total is summed.
type CategoryScore struct {
	Score      float64  `json:"score"`
	MaxScore   float64  `json:"max_score"`
	Percentage int      `json:"percentage"`
	Feedback   []string `json:"feedback"`
}

// ATSScoreBreakdown maps category name to its score detail.
type ATSScoreBreakdown map[string]CategoryScore

// Recommendation is a templated, prioritized improvement suggestion
// derived from a weak category or from the target visa program.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // Critical, High, Medium
	Impact      string `json:"impact"`
}

// VisaReadiness maps the total score onto a fixed readiness tier.
type VisaReadiness struct {
	Level          string   `json:"level"`
	Confidence     string   `json:"confidence"`
	Recommendation string   `json:"recommendation"`
	NextSteps      []string `json:"next_steps"`
}

// CompetitiveAnalysis positions the total score against the target
// industry's benchmark tiers.
type CompetitiveAnalysis struct {
	MarketPosition     string  `json:"market_position"`
	IndustryBenchmark  float64 `json:"industry_benchmark"`
	ScoreVsBenchmark   float64 `json:"score_vs_benchmark"`
	Summary            string  `json:"summary"`
}

// ATSAnalysis is the scoring engine's full output.
type ATSAnalysis struct {
	TotalScore          float64             `json:"total_score"`
	MaxScore            float64             `json:"max_score"`
	Percentage          int                 `json:"percentage"`
	Breakdown           ATSScoreBreakdown   `json:"breakdown"`
	Recommendations     []Recommendation    `json:"recommendations"`
	VisaReadiness       VisaReadiness       `json:"visa_readiness"`
	CompetitiveAnalysis CompetitiveAnalysis `json:"competitive_analysis"`
}
