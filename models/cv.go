package models

// PersonalInfo holds the contact block extracted from a CV.
// All fields default to empty strings so a partial parse never
// produces nil access errors downstream.
type PersonalInfo struct {
	FullName string `json:"full_name"`
	JobTitle string `json:"job_title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// ExperienceEntry represents a work experience entry in document order.
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// EducationEntry represents an education entry.
type EducationEntry struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location"`
	GraduationDate string `json:"graduation_date"`
}

// StructuredCV is the parser's output and the scoring engine's input.
// Skills preserve insertion order and are not deduplicated.
type StructuredCV struct {
	PersonalInfo PersonalInfo      `json:"personal_info"`
	Summary      string            `json:"summary"`
	Experience   []ExperienceEntry `json:"experience"`
	Education    []EducationEntry  `json:"education"`
	Skills       []string          `json:"skills"`
}

// NewStructuredCV returns a CV with every sequence field allocated,
// so callers can range over sections without nil checks.
func NewStructuredCV() *StructuredCV {
	return &StructuredCV{
		Experience: []ExperienceEntry{},
		Education:  []EducationEntry{},
		Skills:     []string{},
	}
}

// ParseResult wraps a parse attempt. Confidence is a 0-100 heuristic
// estimate of extraction quality, not a probability.
type ParseResult struct {
	Success    bool          `json:"success"`
	Confidence int           `json:"confidence"`
	Data       *StructuredCV `json:"data,omitempty"`
	Error      string        `json:"error,omitempty"`
}
