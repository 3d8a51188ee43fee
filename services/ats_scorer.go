package services

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"immicv/models"
)

// Category max weights. Fixed constants summing to 100.
const (
	maxFormatting  = 15.0
	maxKeywords    = 20.0
	maxStructure   = 15.0
	maxContent     = 10.0
	maxImmigration = 25.0
	maxCompliance  = 15.0
)

// ATSScorer scores a structured CV against a visa program and target
// industry. The reference date is injected so experience-years math is
// deterministic in tests.
type ATSScorer struct {
	asOf time.Time
}

// NewATSScorer creates a scorer that computes experience years as of
// the given date.
func NewATSScorer(asOf time.Time) *ATSScorer {
	return &ATSScorer{asOf: asOf}
}

// CalculateATSScore scores the CV as of the current wall-clock date.
// It never errors: unknown visa or industry values fall back to the
// documented defaults.
func CalculateATSScore(cv *models.StructuredCV, targetVisa, targetIndustry string) models.ATSAnalysis {
	return NewATSScorer(time.Now()).Calculate(cv, targetVisa, targetIndustry)
}

// Calculate runs all six category scorers and assembles the analysis.
// The CV is read-only input; every call allocates fresh output.
func (s *ATSScorer) Calculate(cv *models.StructuredCV, targetVisa, targetIndustry string) models.ATSAnalysis {
	if cv == nil {
		cv = models.NewStructuredCV()
	}
	visa := ParseVisaProgram(targetVisa)
	industry := ParseIndustry(targetIndustry)
	haystack := cvHaystack(cv)

	breakdown := models.ATSScoreBreakdown{
		models.CategoryFormatting:  s.scoreFormatting(cv),
		models.CategoryKeywords:    s.scoreKeywords(cv, haystack, industry),
		models.CategoryStructure:   s.scoreStructure(cv),
		models.CategoryContent:     s.scoreContent(cv, haystack),
		models.CategoryImmigration: s.scoreImmigration(cv, haystack, visa),
		models.CategoryCompliance:  s.scoreCompliance(cv, haystack, visa, industry),
	}

	total := 0.0
	for _, cat := range breakdown {
		total += cat.Score
	}
	total = round1(total)

	return models.ATSAnalysis{
		TotalScore:          total,
		MaxScore:            100,
		Percentage:          int(math.Round(total)),
		Breakdown:           breakdown,
		Recommendations:     buildRecommendations(breakdown, visa),
		VisaReadiness:       assessVisaReadiness(total, visa),
		CompetitiveAnalysis: assessCompetitivePosition(total, industry),
	}
}

// cvHaystack serializes the whole CV to lowercase JSON text. All
// keyword scoring is case-insensitive substring search against this
// single string.
func cvHaystack(cv *models.StructuredCV) string {
	raw, err := json.Marshal(cv)
	if err != nil {
		return ""
	}
	return strings.ToLower(string(raw))
}

// countMatches counts how many terms occur in the haystack.
func countMatches(haystack string, terms []string) int {
	n := 0
	for _, term := range terms {
		if term != "" && strings.Contains(haystack, strings.ToLower(term)) {
			n++
		}
	}
	return n
}

// countOccurrences counts total (non-overlapping) occurrences of every
// term in the haystack.
func countOccurrences(haystack string, terms []string) int {
	n := 0
	for _, term := range terms {
		if term != "" {
			n += strings.Count(haystack, strings.ToLower(term))
		}
	}
	return n
}

func capScore(score, max float64) float64 {
	if score > max {
		return max
	}
	if score < 0 {
		return 0
	}
	return score
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func newCategory(score, max float64, feedback []string) models.CategoryScore {
	score = round1(capScore(score, max))
	if feedback == nil {
		feedback = []string{}
	}
	return models.CategoryScore{
		Score:      score,
		MaxScore:   max,
		Percentage: int(math.Round(score / max * 100)),
		Feedback:   feedback,
	}
}

// scoreFormatting rewards basic resume hygiene: a name, both core
// sections, descriptive experience text, complete contact details and
// a real summary. Point split 3/3/2/2/3/2.
func (s *ATSScorer) scoreFormatting(cv *models.StructuredCV) models.CategoryScore {
	score := 0.0
	var feedback []string

	if cv.PersonalInfo.FullName != "" {
		score += 3
	} else {
		feedback = append(feedback, "Add your full name at the top of the CV")
	}
	if len(cv.Experience) > 0 {
		score += 3
	} else {
		feedback = append(feedback, "Add a work experience section")
	}
	if len(cv.Education) > 0 {
		score += 2
	} else {
		feedback = append(feedback, "Add an education section")
	}

	described := 0
	for _, exp := range cv.Experience {
		if strings.TrimSpace(exp.Description) != "" {
			described++
		}
	}
	if described > 0 {
		score += 2
	} else {
		feedback = append(feedback, "Describe your responsibilities and achievements under each role")
	}

	if cv.PersonalInfo.Email != "" && cv.PersonalInfo.Phone != "" {
		score += 3
	} else {
		feedback = append(feedback, "Include both an email address and a phone number")
	}

	if len(strings.TrimSpace(cv.Summary)) >= 50 {
		score += 2
	} else {
		feedback = append(feedback, "Write a professional summary of at least a few sentences")
	}

	return newCategory(score, maxFormatting, feedback)
}

// scoreKeywords matches the industry keyword set against the
// serialized CV. Unknown industries silently fall back to the default
// set inside Industry.Keywords.
func (s *ATSScorer) scoreKeywords(cv *models.StructuredCV, haystack string, industry Industry) models.CategoryScore {
	ks := industry.Keywords()
	score := 0.0
	var feedback []string

	titleMatches := countMatches(haystack, ks.Immigration)
	score += capScore(float64(titleMatches), 5)
	if titleMatches == 0 {
		feedback = append(feedback, fmt.Sprintf("Use job titles recognized in %s occupation lists", industry))
	}

	techMatches := countMatches(haystack, ks.Technical)
	score += capScore(float64(techMatches)*0.5, 5)
	if techMatches < 4 {
		feedback = append(feedback, fmt.Sprintf("Add more %s technical keywords such as %s", industry, strings.Join(firstN(ks.Technical, 3), ", ")))
	}

	softMatches := countMatches(haystack, ks.Soft)
	score += capScore(float64(softMatches)*0.5, 3)
	if softMatches < 2 {
		feedback = append(feedback, "Mention soft skills like communication, collaboration or leadership")
	}

	certMatches := countMatches(haystack, ks.Certifications)
	score += capScore(float64(certMatches), 3)
	if certMatches == 0 {
		feedback = append(feedback, fmt.Sprintf("List relevant certifications (e.g. %s)", strings.Join(firstN(ks.Certifications, 2), ", ")))
	}

	return newCategory(score, maxKeywords, feedback)
}

// scoreStructure measures how completely each section is filled in.
func (s *ATSScorer) scoreStructure(cv *models.StructuredCV) models.CategoryScore {
	score := 0.0
	var feedback []string

	// Contact completeness, proportional over the five fields.
	fields := []string{
		cv.PersonalInfo.FullName,
		cv.PersonalInfo.JobTitle,
		cv.PersonalInfo.Email,
		cv.PersonalInfo.Phone,
		cv.PersonalInfo.Location,
	}
	filled := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			filled++
		}
	}
	score += float64(filled) / float64(len(fields)) * 4
	if filled < len(fields) {
		feedback = append(feedback, "Complete all contact fields: name, title, email, phone and location")
	}

	if len(cv.Experience) > 0 {
		complete := 0
		for _, exp := range cv.Experience {
			if exp.Title != "" && exp.Company != "" && (exp.StartDate != "" || exp.EndDate != "") {
				complete++
			}
		}
		score += 2 + float64(complete)/float64(len(cv.Experience))*2
	} else {
		feedback = append(feedback, "Add at least one work experience entry")
	}

	if len(cv.Education) > 0 {
		complete := 0
		for _, edu := range cv.Education {
			if edu.Degree != "" && edu.Institution != "" {
				complete++
			}
		}
		score += 1.5 + float64(complete)/float64(len(cv.Education))*1.5
	} else {
		feedback = append(feedback, "Add at least one education entry")
	}

	if len(cv.Skills) > 0 {
		score += 2
	} else {
		feedback = append(feedback, "Add a skills section")
	}

	// Weak chronology heuristic: only verifies that at least two
	// entries carry date information, not their actual order.
	dated := 0
	for _, exp := range cv.Experience {
		if exp.StartDate != "" || exp.EndDate != "" {
			dated++
		}
	}
	if dated >= 2 {
		score += 2
	} else {
		feedback = append(feedback, "List experience in reverse chronological order with dates on every role")
	}

	return newCategory(score, maxStructure, feedback)
}

var quantifierTerms = []string{"%", "$", "increased", "decreased", "reduced", "improved", "grew", "saved", "boosted"}

var actionVerbs = []string{"led", "managed", "developed", "built", "designed", "launched", "delivered", "implemented", "created", "drove", "optimized"}

// scoreContent measures writing quality: quantified results, action
// verbs, description depth and overall section completeness.
func (s *ATSScorer) scoreContent(cv *models.StructuredCV, haystack string) models.CategoryScore {
	score := 0.0
	var feedback []string

	quantifiers := countOccurrences(haystack, quantifierTerms)
	switch {
	case quantifiers >= 3:
		score += 3
	case quantifiers >= 1:
		score++
	default:
		feedback = append(feedback, "Quantify achievements with numbers, percentages or dollar amounts")
	}

	verbs := countMatches(haystack, actionVerbs)
	switch {
	case verbs >= 3:
		score += 2
	case verbs >= 1:
		score++
	default:
		feedback = append(feedback, "Start bullet points with strong action verbs")
	}

	deep := 0
	for _, exp := range cv.Experience {
		if len(exp.Description) > 50 {
			deep++
		}
	}
	switch {
	case deep >= 3:
		score += 3
	case deep == 2:
		score += 2
	case deep == 1:
		score++
	default:
		feedback = append(feedback, "Expand experience descriptions beyond one-liners")
	}

	if cv.Summary != "" && len(cv.Experience) > 0 && len(cv.Education) > 0 && len(cv.Skills) > 0 {
		score += 2
	} else {
		feedback = append(feedback, "Include all four core sections: summary, experience, education and skills")
	}

	return newCategory(score, maxContent, feedback)
}

var englishTerms = []string{"english", "ielts", "toefl", "celpip", "pte"}

var frenchTerms = []string{"french", "tef", "tcf", "dalf", "delf"}

// scoreImmigration measures alignment with the visa program's
// requirement profile. Unknown visas fall back to Express Entry inside
// VisaProgram.Profile.
func (s *ATSScorer) scoreImmigration(cv *models.StructuredCV, haystack string, visa VisaProgram) models.CategoryScore {
	profile := visa.Profile()
	score := 0.0
	var feedback []string

	occMatches := countMatches(haystack, profile.OccupationListTerms)
	score += capScore(float64(occMatches)*2, 8)
	if occMatches == 0 {
		feedback = append(feedback, fmt.Sprintf("Align your job titles with %s occupation list terminology", visa))
	}

	keyMatches := countMatches(haystack, profile.KeySkillTerms)
	score += capScore(float64(keyMatches)*2, 6)
	if keyMatches == 0 {
		feedback = append(feedback, fmt.Sprintf("Reference program-specific terms relevant to %s", visa))
	}

	years := s.ExperienceYears(cv)
	switch {
	case years >= profile.MinimumExperienceYears+3:
		score += 5
	case years >= profile.MinimumExperienceYears:
		score += 3
	default:
		feedback = append(feedback, fmt.Sprintf("Insufficient experience: %.1f years shown vs %.0f year minimum for %s", years, profile.MinimumExperienceYears, visa))
	}

	level := ClassifyEducation(degreeStrings(cv))
	matched := false
	for _, preferred := range profile.PreferredEducation {
		if level == preferred {
			matched = true
			break
		}
	}
	if matched {
		score += 3
	} else {
		feedback = append(feedback, fmt.Sprintf("Highlight credentials at the %s level preferred by %s", joinEducation(profile.PreferredEducation), visa))
	}

	if countMatches(haystack, englishTerms) > 0 {
		score += 2
	} else {
		feedback = append(feedback, "State your language proficiency and any test results (IELTS, CELPIP, TOEFL)")
	}
	// French carries extra weight for Canadian programs.
	if countMatches(haystack, frenchTerms) > 0 {
		score++
	}

	return newCategory(score, maxImmigration, feedback)
}

var certificationTerms = []string{"certified", "certification", "certificate", "license", "licensed", "chartered", "registered"}

var sponsorshipTerms = []string{"sponsor", "sponsorship", "work authorization", "work permit", "visa status"}

// scoreCompliance measures how verifiable and documentation-ready the
// CV is for an immigration file.
func (s *ATSScorer) scoreCompliance(cv *models.StructuredCV, haystack string, visa VisaProgram, industry Industry) models.CategoryScore {
	profile := visa.Profile()
	score := 0.0
	var feedback []string

	// Documentation completeness, proportionally reduced per missing
	// item.
	present := 0
	if cv.PersonalInfo.Email != "" && cv.PersonalInfo.Phone != "" {
		present++
	} else {
		feedback = append(feedback, "Complete contact details are required for application forms")
	}
	if len(cv.Experience) > 0 {
		present++
	} else {
		feedback = append(feedback, "Work history is required to document eligibility")
	}
	if len(cv.Education) > 0 {
		present++
	} else {
		feedback = append(feedback, "Education history is required for credential assessment")
	}
	score += float64(present) / 3 * 5

	certCount := countMatches(haystack, certificationTerms) + countMatches(haystack, industry.Keywords().Certifications)
	switch {
	case certCount >= 3:
		score += 4
	case certCount == 2:
		score += 3
	case certCount == 1:
		score += 2
	default:
		feedback = append(feedback, "List licenses and certifications that can be verified")
	}

	if profile.SponsorshipDependent {
		if countMatches(haystack, sponsorshipTerms) > 0 {
			score += 3
		} else {
			feedback = append(feedback, fmt.Sprintf("%s requires employer sponsorship; state your work authorization status", visa))
		}
	} else {
		score += 2
	}

	detailed := 0
	for _, exp := range cv.Experience {
		if exp.Title != "" && exp.Company != "" && (exp.StartDate != "" || exp.EndDate != "") && len(exp.Description) > 30 {
			detailed++
		}
	}
	switch {
	case detailed >= 3:
		score += 3
	case detailed == 2:
		score += 2
	case detailed == 1:
		score++
	default:
		feedback = append(feedback, "Each role needs employer, dates and duties for reference letters")
	}

	return newCategory(score, maxCompliance, feedback)
}

// ExperienceYears sums per-entry year spans. End dates containing
// "present"/"current" use the scorer's reference year. Overlapping
// ranges are not deduplicated; the total is rounded to one decimal.
func (s *ATSScorer) ExperienceYears(cv *models.StructuredCV) float64 {
	total := 0.0
	for _, exp := range cv.Experience {
		start, ok := extractYear(exp.StartDate)
		if !ok {
			continue
		}
		end := 0
		lowered := strings.ToLower(exp.EndDate)
		if strings.Contains(lowered, "present") || strings.Contains(lowered, "current") {
			end = s.asOf.Year()
		} else if y, yok := extractYear(exp.EndDate); yok {
			end = y
		} else {
			continue
		}
		if end > start {
			total += float64(end - start)
		}
	}
	return round1(total)
}

// extractYear pulls the first 4-digit year (19xx/20xx) out of a date
// string.
func extractYear(s string) (int, bool) {
	runes := []rune(s)
	for i := 0; i+3 < len(runes); i++ {
		if isDigit(runes[i]) && isDigit(runes[i+1]) && isDigit(runes[i+2]) && isDigit(runes[i+3]) {
			prefix := string(runes[i : i+2])
			if prefix == "19" || prefix == "20" {
				year := 0
				for _, r := range runes[i : i+4] {
					year = year*10 + int(r-'0')
				}
				return year, true
			}
		}
	}
	return 0, false
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func degreeStrings(cv *models.StructuredCV) []string {
	out := make([]string, 0, len(cv.Education))
	for _, edu := range cv.Education {
		out = append(out, edu.Degree)
	}
	return out
}

func joinEducation(levels []EducationLevel) string {
	parts := make([]string, 0, len(levels))
	for _, l := range levels {
		parts = append(parts, string(l))
	}
	return strings.Join(parts, "/")
}

func firstN(terms []string, n int) []string {
	if len(terms) < n {
		return terms
	}
	return terms[:n]
}

// readinessTier is one row of the fixed readiness threshold table.
type readinessTier struct {
	threshold  float64
	level      string
	confidence string
	nextSteps  []string
}

var readinessTiers = []readinessTier{
	{85, "Excellent", "Very High", []string{
		"Book your language test if not already done",
		"Gather reference letters and educational credential assessments",
		"Prepare to submit your profile",
	}},
	{75, "Good", "High", []string{
		"Address the remaining keyword gaps below",
		"Collect supporting documents for every claim on the CV",
		"Review occupation-code alignment with a consultant",
	}},
	{65, "Fair", "Medium", []string{
		"Strengthen the weakest scoring categories first",
		"Add measurable achievements to recent roles",
		"Verify your occupation appears on the target skilled list",
	}},
	{50, "Poor", "Low", []string{
		"Rework the CV structure before any submission",
		"Document work history with employers, dates and duties",
		"Consider additional certifications to improve eligibility",
	}},
	{0, "Not Ready", "Very Low", []string{
		"Rebuild the CV from a complete work and education history",
		"Consult an immigration professional about program eligibility",
		"Reassess after addressing the fundamentals above",
	}},
}

// assessVisaReadiness maps the total score onto the fixed tier table.
func assessVisaReadiness(total float64, visa VisaProgram) models.VisaReadiness {
	tier := readinessTiers[len(readinessTiers)-1]
	for _, t := range readinessTiers {
		if total >= t.threshold {
			tier = t
			break
		}
	}
	return models.VisaReadiness{
		Level:          tier.level,
		Confidence:     tier.confidence,
		Recommendation: fmt.Sprintf("Your CV is rated %s for %s; see the next steps to improve your application readiness.", strings.ToLower(tier.level), visa),
		NextSteps:      tier.nextSteps,
	}
}

// assessCompetitivePosition places the score against the industry's
// benchmark tiers.
func assessCompetitivePosition(total float64, industry Industry) models.CompetitiveAnalysis {
	bench := industry.Benchmark()
	position := "Bottom 25%"
	switch {
	case total >= bench.Excellent:
		position = "Top 10%"
	case total >= bench.Good:
		position = "Top 25%"
	case total >= bench.Average:
		position = "Middle 50%"
	}
	return models.CompetitiveAnalysis{
		MarketPosition:    position,
		IndustryBenchmark: bench.Average,
		ScoreVsBenchmark:  round1(total - bench.Average),
		Summary:           fmt.Sprintf("Scores %s within %s candidates (industry average %.0f).", position, industry, bench.Average),
	}
}

// categoryTemplate is the fixed recommendation template for one weak
// category.
type categoryTemplate struct {
	title       string
	description string
	priority    string
	impact      string
}

var categoryTemplates = map[string]categoryTemplate{
	models.CategoryFormatting: {
		title:       "Clean up CV formatting",
		description: "Add the missing header details and make sure every section is clearly labelled so automated screens can read it.",
		priority:    "High",
		impact:      "Improves machine readability and first-pass acceptance",
	},
	models.CategoryKeywords: {
		title:       "Add industry keywords",
		description: "Work the missing technical terms, soft skills and certifications for your target industry into your summary and experience bullets.",
		priority:    "Critical",
		impact:      "Directly increases ATS keyword match rate",
	},
	models.CategoryStructure: {
		title:       "Complete every section",
		description: "Fill in contact details, dates on every role and at least one education entry so the CV parses into a complete profile.",
		priority:    "High",
		impact:      "Prevents automatic rejection on incomplete profiles",
	},
	models.CategoryContent: {
		title:       "Strengthen achievement writing",
		description: "Lead bullets with action verbs and quantify results with numbers, percentages or budgets.",
		priority:    "High",
		impact:      "Raises perceived seniority and content quality",
	},
	models.CategoryImmigration: {
		title:       "Align with immigration requirements",
		description: "Mirror the occupation-list terminology for your target program and make experience years and language proficiency explicit.",
		priority:    "Critical",
		impact:      "Improves program eligibility assessment",
	},
	models.CategoryCompliance: {
		title:       "Make work history verifiable",
		description: "Every role needs employer, dates and duties; list licenses and certifications that can be independently confirmed.",
		priority:    "High",
		impact:      "Reduces documentation requests and processing delays",
	},
}

// visaRecommendations are the explicitly authored program-specific
// suggestions. Programs without one get nothing appended.
var visaRecommendations = map[VisaProgram]models.Recommendation{
	VisaExpressEntry: {
		Title:       "Maximize CRS-relevant signals",
		Description: "Express Entry ranks candidates by CRS points: surface language test scores, Canadian ties and NOC-aligned job titles prominently.",
		Priority:    "Critical",
		Impact:      "Higher effective CRS positioning",
	},
	VisaProvincialNominee: {
		Title:       "Target a provincial stream",
		Description: "Provincial programs favour in-demand regional occupations; name the province-relevant skills and any provincial connection.",
		Priority:    "High",
		Impact:      "Better fit for nomination streams",
	},
	VisaSkilledWorkerUK: {
		Title:       "Evidence sponsorship eligibility",
		Description: "The UK Skilled Worker route requires a licensed sponsor; make your eligible occupation and salary expectations explicit.",
		Priority:    "High",
		Impact:      "Clearer sponsorship case for UK employers",
	},
}

var criticalCategories = map[string]bool{
	models.CategoryKeywords:    true,
	models.CategoryImmigration: true,
}

const maxRecommendations = 8

// buildRecommendations ranks critical categories ahead of the rest
// regardless of score, weakest-first within each band, templates a
// recommendation for each of the top five under 80%, appends at most
// one visa-specific entry and caps the list at eight.
func buildRecommendations(breakdown models.ATSScoreBreakdown, visa VisaProgram) []models.Recommendation {
	type ranked struct {
		name string
		cat  models.CategoryScore
	}
	order := make([]ranked, 0, len(breakdown))
	for name, cat := range breakdown {
		order = append(order, ranked{name, cat})
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if criticalCategories[a.name] != criticalCategories[b.name] {
			return criticalCategories[a.name]
		}
		if a.cat.Percentage != b.cat.Percentage {
			return a.cat.Percentage < b.cat.Percentage
		}
		return a.name < b.name
	})

	recs := []models.Recommendation{}
	considered := 0
	for _, entry := range order {
		if considered >= 5 {
			break
		}
		considered++
		if entry.cat.Percentage >= 80 {
			continue
		}
		tpl, ok := categoryTemplates[entry.name]
		if !ok {
			continue
		}
		recs = append(recs, models.Recommendation{
			Title:       tpl.title,
			Description: tpl.description,
			Priority:    tpl.priority,
			Impact:      tpl.impact,
		})
	}

	if rec, ok := visaRecommendations[visa]; ok {
		recs = append(recs, rec)
	}
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
