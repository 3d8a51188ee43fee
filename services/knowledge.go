package services

import "strings"

// VisaProgram enumerates the supported target visa programs. Unknown
// input maps to the Express Entry fallback instead of erroring.
type VisaProgram string

const (
	VisaExpressEntry       VisaProgram = "Express Entry"
	VisaProvincialNominee  VisaProgram = "Provincial Nominee Program"
	VisaSkilledWorkerUK    VisaProgram = "Skilled Worker (UK)"
	VisaH1B                VisaProgram = "H-1B (US)"
	VisaSkilledIndependent VisaProgram = "Skilled Independent 189 (AU)"
)

// AllVisaPrograms lists the supported programs for UI dropdowns.
var AllVisaPrograms = []VisaProgram{
	VisaExpressEntry,
	VisaProvincialNominee,
	VisaSkilledWorkerUK,
	VisaH1B,
	VisaSkilledIndependent,
}

// ParseVisaProgram maps arbitrary input to a known program, falling
// back to Express Entry. Unknown keys never error.
func ParseVisaProgram(s string) VisaProgram {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, v := range AllVisaPrograms {
		if strings.ToLower(string(v)) == needle {
			return v
		}
	}
	// Accept the common short forms used by the CRM dropdowns.
	switch needle {
	case "express entry", "ee", "crs":
		return VisaExpressEntry
	case "pnp", "provincial nominee":
		return VisaProvincialNominee
	case "skilled worker", "uk skilled worker", "skilled worker uk":
		return VisaSkilledWorkerUK
	case "h1b", "h-1b":
		return VisaH1B
	case "189", "skilled independent":
		return VisaSkilledIndependent
	}
	return VisaExpressEntry
}

// VisaRequirementProfile is the static, immutable requirement record
// for one visa program.
type VisaRequirementProfile struct {
	MinimumExperienceYears float64
	PreferredEducation     []EducationLevel
	KeySkillTerms          []string
	OccupationListTerms    []string
	SponsorshipDependent   bool
	BonusFactors           []string
}

var visaProfiles = map[VisaProgram]VisaRequirementProfile{
	VisaExpressEntry: {
		MinimumExperienceYears: 1,
		PreferredEducation:     []EducationLevel{EducationBachelor, EducationMaster, EducationPhD},
		KeySkillTerms:          []string{"noc", "skilled", "regulated", "licensed", "professional"},
		OccupationListTerms:    []string{"software", "engineer", "developer", "analyst", "manager", "nurse", "technician", "accountant"},
		SponsorshipDependent:   false,
		BonusFactors:           []string{"age 20-29", "valid job offer", "canadian experience", "french proficiency"},
	},
	VisaProvincialNominee: {
		MinimumExperienceYears: 2,
		PreferredEducation:     []EducationLevel{EducationDiploma, EducationBachelor, EducationMaster},
		KeySkillTerms:          []string{"noc", "in-demand", "regional", "provincial", "skilled trade"},
		OccupationListTerms:    []string{"engineer", "developer", "technician", "welder", "driver", "nurse", "teacher", "chef"},
		SponsorshipDependent:   false,
		BonusFactors:           []string{"provincial connection", "job offer in province", "regional study"},
	},
	VisaSkilledWorkerUK: {
		MinimumExperienceYears: 1,
		PreferredEducation:     []EducationLevel{EducationBachelor, EducationMaster, EducationPhD},
		KeySkillTerms:          []string{"rqf", "sponsor", "certificate of sponsorship", "shortage occupation"},
		OccupationListTerms:    []string{"software", "engineer", "scientist", "architect", "consultant", "analyst", "doctor"},
		SponsorshipDependent:   true,
		BonusFactors:           []string{"salary above threshold", "phd in relevant field", "shortage occupation"},
	},
	VisaH1B: {
		MinimumExperienceYears: 0,
		PreferredEducation:     []EducationLevel{EducationBachelor, EducationMaster, EducationPhD},
		KeySkillTerms:          []string{"specialty occupation", "sponsor", "petition", "lca"},
		OccupationListTerms:    []string{"software", "engineer", "developer", "scientist", "analyst", "architect", "researcher"},
		SponsorshipDependent:   true,
		BonusFactors:           []string{"us master's degree", "cap-exempt employer"},
	},
	VisaSkilledIndependent: {
		MinimumExperienceYears: 3,
		PreferredEducation:     []EducationLevel{EducationBachelor, EducationMaster, EducationPhD},
		KeySkillTerms:          []string{"mltssl", "skills assessment", "anzsco", "points test"},
		OccupationListTerms:    []string{"engineer", "developer", "accountant", "nurse", "electrician", "surveyor", "teacher"},
		SponsorshipDependent:   false,
		BonusFactors:           []string{"age 25-32", "superior english", "regional study", "partner skills"},
	},
}

// Profile returns the requirement profile for the program, defaulting
// to Express Entry for anything unmapped.
func (v VisaProgram) Profile() VisaRequirementProfile {
	if p, ok := visaProfiles[v]; ok {
		return p
	}
	return visaProfiles[VisaExpressEntry]
}

// Industry enumerates supported target industries. Unknown input maps
// to Software Engineering.
type Industry string

const (
	IndustrySoftware    Industry = "Software Engineering"
	IndustryHealthcare  Industry = "Healthcare"
	IndustryFinance     Industry = "Finance & Accounting"
	IndustryEngineering Industry = "Engineering"
	IndustryMarketing   Industry = "Marketing"
)

// AllIndustries lists the supported industries for UI dropdowns.
var AllIndustries = []Industry{
	IndustrySoftware,
	IndustryHealthcare,
	IndustryFinance,
	IndustryEngineering,
	IndustryMarketing,
}

// ParseIndustry maps arbitrary input to a known industry, falling back
// to Software Engineering.
func ParseIndustry(s string) Industry {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, ind := range AllIndustries {
		if strings.ToLower(string(ind)) == needle {
			return ind
		}
	}
	switch needle {
	case "software", "it", "tech", "technology", "software development":
		return IndustrySoftware
	case "health", "medical", "nursing":
		return IndustryHealthcare
	case "finance", "accounting", "banking":
		return IndustryFinance
	case "mechanical", "civil", "electrical":
		return IndustryEngineering
	case "marketing & sales", "sales", "digital marketing":
		return IndustryMarketing
	}
	return IndustrySoftware
}

// IndustryKeywordSet holds the term lists used for keyword scoring and
// missing-keyword suggestions.
type IndustryKeywordSet struct {
	Technical      []string
	Soft           []string
	Certifications []string
	Immigration    []string
}

var industryKeywords = map[Industry]IndustryKeywordSet{
	IndustrySoftware: {
		Technical:      []string{"javascript", "typescript", "python", "java", "go", "sql", "react", "node", "docker", "kubernetes", "aws", "azure", "api", "microservices", "ci/cd", "git"},
		Soft:           []string{"collaboration", "communication", "leadership", "agile", "problem solving", "mentoring", "teamwork"},
		Certifications: []string{"aws certified", "azure certified", "ckad", "cka", "scrum master", "pmp"},
		Immigration:    []string{"software engineer", "software developer", "web developer", "systems analyst", "noc 21231", "noc 21232"},
	},
	IndustryHealthcare: {
		Technical:      []string{"patient care", "clinical", "triage", "diagnosis", "treatment", "emr", "medication", "surgery", "icu"},
		Soft:           []string{"empathy", "communication", "attention to detail", "teamwork", "resilience"},
		Certifications: []string{"rn", "bls", "acls", "nclex", "licensed practical nurse", "cpr certified"},
		Immigration:    []string{"registered nurse", "physician", "medical laboratory", "noc 31301", "health care aide"},
	},
	IndustryFinance: {
		Technical:      []string{"financial analysis", "accounting", "audit", "budgeting", "forecasting", "excel", "ifrs", "gaap", "reconciliation", "tax"},
		Soft:           []string{"analytical", "attention to detail", "communication", "integrity", "time management"},
		Certifications: []string{"cpa", "cfa", "acca", "cma", "frm"},
		Immigration:    []string{"financial analyst", "accountant", "auditor", "noc 11100", "noc 11101"},
	},
	IndustryEngineering: {
		Technical:      []string{"autocad", "solidworks", "design", "manufacturing", "quality assurance", "project management", "hvac", "structural", "testing"},
		Soft:           []string{"problem solving", "collaboration", "communication", "safety", "planning"},
		Certifications: []string{"p.eng", "pe license", "pmp", "six sigma", "eit"},
		Immigration:    []string{"mechanical engineer", "civil engineer", "electrical engineer", "noc 21301", "noc 21300"},
	},
	IndustryMarketing: {
		Technical:      []string{"seo", "sem", "google analytics", "content marketing", "social media", "crm", "campaign", "branding", "copywriting"},
		Soft:           []string{"creativity", "communication", "collaboration", "storytelling", "adaptability"},
		Certifications: []string{"google ads certified", "hubspot", "facebook blueprint", "google analytics certified"},
		Immigration:    []string{"marketing manager", "marketing specialist", "advertising", "noc 11202"},
	},
}

// Keywords returns the keyword set for the industry, defaulting to
// Software Engineering for anything unmapped.
func (i Industry) Keywords() IndustryKeywordSet {
	if ks, ok := industryKeywords[i]; ok {
		return ks
	}
	return industryKeywords[IndustrySoftware]
}

// IndustryBenchmark holds the three score tiers used for competitive
// positioning within one industry.
type IndustryBenchmark struct {
	Excellent float64
	Good      float64
	Average   float64
}

var industryBenchmarks = map[Industry]IndustryBenchmark{
	IndustrySoftware:    {Excellent: 85, Good: 75, Average: 62},
	IndustryHealthcare:  {Excellent: 82, Good: 72, Average: 60},
	IndustryFinance:     {Excellent: 84, Good: 74, Average: 61},
	IndustryEngineering: {Excellent: 83, Good: 73, Average: 60},
	IndustryMarketing:   {Excellent: 80, Good: 70, Average: 58},
}

// Benchmark returns the industry's benchmark tiers, defaulting to the
// Software Engineering table.
func (i Industry) Benchmark() IndustryBenchmark {
	if b, ok := industryBenchmarks[i]; ok {
		return b
	}
	return industryBenchmarks[IndustrySoftware]
}

// EducationLevel is the classifier output for degree strings.
type EducationLevel string

const (
	EducationPhD        EducationLevel = "PhD"
	EducationMaster     EducationLevel = "Master"
	EducationBachelor   EducationLevel = "Bachelor"
	EducationDiploma    EducationLevel = "Diploma"
	EducationHighSchool EducationLevel = "High School"
	EducationOther      EducationLevel = "Other"
	EducationUnknown    EducationLevel = "Unknown"
)

// educationTiers are checked in priority order; the first matching
// tier wins, so PhD is tested before Master and so on.
var educationTiers = []struct {
	level   EducationLevel
	markers []string
}{
	{EducationPhD, []string{"phd", "ph.d", "doctorate", "doctoral"}},
	{EducationMaster, []string{"master", "mba", "msc", "m.s.", "m.a."}},
	{EducationBachelor, []string{"bachelor", "bsc", "b.s.", "b.a.", "degree"}},
	{EducationDiploma, []string{"diploma", "certificate", "associate"}},
	{EducationHighSchool, []string{"high school", "secondary"}},
}

// ClassifyEducation scans degree strings for level markers in priority
// order. Empty input classifies as Unknown; unmatched input as Other.
func ClassifyEducation(degrees []string) EducationLevel {
	joined := strings.ToLower(strings.Join(degrees, " "))
	if strings.TrimSpace(joined) == "" {
		return EducationUnknown
	}
	for _, tier := range educationTiers {
		for _, marker := range tier.markers {
			if strings.Contains(joined, marker) {
				return tier.level
			}
		}
	}
	return EducationOther
}

// CVTemplate enumerates the CV templates the recommender scores.
type CVTemplate string

const (
	TemplateModernProfessional CVTemplate = "Modern Professional"
	TemplateTechnicalCompact   CVTemplate = "Technical Compact"
	TemplateExecutiveClassic   CVTemplate = "Executive Classic"
	TemplateGraduateClean      CVTemplate = "Graduate Clean"
	TemplateInternationalATS   CVTemplate = "International ATS"
)

// AllCVTemplates lists the templates for UI dropdowns and scoring.
var AllCVTemplates = []CVTemplate{
	TemplateModernProfessional,
	TemplateTechnicalCompact,
	TemplateExecutiveClassic,
	TemplateGraduateClean,
	TemplateInternationalATS,
}
