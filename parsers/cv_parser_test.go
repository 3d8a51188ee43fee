package parsers

import (
	"reflect"
	"strings"
	"testing"
)

const sampleCV = `
Jane Doe
jane@x.com
+1 555 000 1111

EXPERIENCE
Software Engineer at Acme 2020 - Present
Built APIs.

EDUCATION
BSc Computer Science, State University, 2019

SKILLS
JavaScript, SQL, Docker
`

func TestParseTextToCV_Basic(t *testing.T) {
	result := ParseTextToCV(sampleCV)

	if !result.Success {
		t.Fatalf("Expected successful parse, got error: %s", result.Error)
	}
	if result.Data == nil {
		t.Fatal("Successful parse must carry data")
	}

	cv := result.Data
	if cv.PersonalInfo.FullName != "Jane Doe" {
		t.Errorf("Expected name 'Jane Doe', got '%s'", cv.PersonalInfo.FullName)
	}
	if cv.PersonalInfo.Email != "jane@x.com" {
		t.Errorf("Expected email 'jane@x.com', got '%s'", cv.PersonalInfo.Email)
	}
	if cv.PersonalInfo.Phone == "" {
		t.Error("Expected a phone number to be extracted")
	}

	if len(cv.Experience) != 1 {
		t.Fatalf("Expected 1 experience entry, got %d", len(cv.Experience))
	}
	exp := cv.Experience[0]
	if !strings.Contains(exp.Company, "Acme") {
		t.Errorf("Expected company to contain 'Acme', got '%s'", exp.Company)
	}
	if exp.Title != "Software Engineer" {
		t.Errorf("Expected title 'Software Engineer', got '%s'", exp.Title)
	}
	if exp.StartDate != "2020" {
		t.Errorf("Expected start date '2020', got '%s'", exp.StartDate)
	}
	if !strings.EqualFold(exp.EndDate, "present") {
		t.Errorf("Expected end date 'Present', got '%s'", exp.EndDate)
	}
	if !strings.Contains(exp.Description, "Built APIs") {
		t.Errorf("Expected description to contain 'Built APIs', got '%s'", exp.Description)
	}

	if len(cv.Education) != 1 {
		t.Fatalf("Expected 1 education entry, got %d", len(cv.Education))
	}
	edu := cv.Education[0]
	if !strings.Contains(edu.Degree, "BSc") {
		t.Errorf("Expected degree to contain 'BSc', got '%s'", edu.Degree)
	}
	if edu.Institution != "State University" {
		t.Errorf("Expected institution 'State University', got '%s'", edu.Institution)
	}
	if edu.GraduationDate != "2019" {
		t.Errorf("Expected graduation date '2019', got '%s'", edu.GraduationDate)
	}

	wantSkills := []string{"JavaScript", "SQL", "Docker"}
	if !reflect.DeepEqual(cv.Skills, wantSkills) {
		t.Errorf("Expected skills %v, got %v", wantSkills, cv.Skills)
	}

	if result.Confidence <= 50 {
		t.Errorf("Expected confidence > 50 for a complete CV, got %d", result.Confidence)
	}
}

func TestParseTextToCV_EmptyInput(t *testing.T) {
	result := ParseTextToCV("")
	if result.Success {
		t.Error("Expected failure for empty input")
	}
	if result.Confidence != 0 {
		t.Errorf("Expected confidence 0 for empty input, got %d", result.Confidence)
	}
	if result.Error == "" {
		t.Error("Expected a human-readable error message")
	}
}

func TestParseTextToCV_Unrecognizable(t *testing.T) {
	result := ParseTextToCV("#### ---- 1234 ++++ ////")
	if result.Success {
		t.Error("Expected failure for text with no recognizable structure")
	}
	if result.Confidence != 0 {
		t.Errorf("Expected confidence 0, got %d", result.Confidence)
	}
}

func TestParseTextToCV_TotalDefinedness(t *testing.T) {
	inputs := []string{
		"",
		"single line with no structure at all",
		"a@b.co",
		strings.Repeat("x", 10000),
		"SKILLS\n\n\n",
		"EXPERIENCE\nEDUCATION\nSKILLS",
		"\t\n  \n\t",
		"名前 なまえ\nEXPERIENCE\nエンジニア at 会社 2019 - 2021",
	}

	for _, input := range inputs {
		result := ParseTextToCV(input)
		if result.Success {
			if result.Data == nil {
				t.Errorf("Success with nil data for input %q", input)
				continue
			}
			// Every sequence field must be defined even when empty.
			if result.Data.Experience == nil || result.Data.Education == nil || result.Data.Skills == nil {
				t.Errorf("nil section slice for input %q", input)
			}
		}
	}
}

func TestParseTextToCV_Idempotent(t *testing.T) {
	first := ParseTextToCV(sampleCV)
	second := ParseTextToCV(sampleCV)
	if !reflect.DeepEqual(first, second) {
		t.Error("Parsing the same input twice must yield identical results")
	}
}

func TestParseTextToCV_NoHeadersBestEffort(t *testing.T) {
	// No section headers at all; the contact block alone should still
	// produce a successful best-effort parse.
	result := ParseTextToCV("John Smith\nSenior Welder\njohn.smith@mail.org\n(44) 7700 900123")
	if !result.Success {
		t.Fatalf("Expected best-effort success, got error: %s", result.Error)
	}
	if result.Data.PersonalInfo.FullName != "John Smith" {
		t.Errorf("Expected name 'John Smith', got '%s'", result.Data.PersonalInfo.FullName)
	}
	if result.Data.PersonalInfo.JobTitle != "Senior Welder" {
		t.Errorf("Expected job title 'Senior Welder', got '%s'", result.Data.PersonalInfo.JobTitle)
	}
	if result.Data.PersonalInfo.Email != "john.smith@mail.org" {
		t.Errorf("Expected email extraction, got '%s'", result.Data.PersonalInfo.Email)
	}
	if len(result.Data.Experience) != 0 {
		t.Error("No experience section should mean an empty experience list")
	}
}

func TestParseTextToCV_FirstEmailWins(t *testing.T) {
	result := ParseTextToCV("Ann Lee\nfirst@mail.com\nsecond@mail.com\n\nSKILLS\nExcel")
	if result.Data.PersonalInfo.Email != "first@mail.com" {
		t.Errorf("Expected first email match, got '%s'", result.Data.PersonalInfo.Email)
	}
}

func TestParseTextToCV_DuplicateSkillsPreserved(t *testing.T) {
	result := ParseTextToCV("Ann Lee\n\nSKILLS\nSQL, Excel, SQL")
	want := []string{"SQL", "Excel", "SQL"}
	if !reflect.DeepEqual(result.Data.Skills, want) {
		t.Errorf("Duplicate skills must be preserved in order; got %v", result.Data.Skills)
	}
}

func TestParseTextToCV_BulletSkills(t *testing.T) {
	result := ParseTextToCV("Ann Lee\n\nSKILLS\n• Patient care\n• Triage\n- EMR systems")
	want := []string{"Patient care", "Triage", "EMR systems"}
	if !reflect.DeepEqual(result.Data.Skills, want) {
		t.Errorf("Expected bullet-split skills %v, got %v", want, result.Data.Skills)
	}
}

func TestParseTextToCV_MultipleExperienceEntries(t *testing.T) {
	text := `Ann Lee
ann@mail.com

WORK EXPERIENCE
Senior Developer at Globex 2021 - Present
Leads the payments team.
Shipped the new checkout flow.
Junior Developer at Initech 2018 - 2021
Maintained internal tools.
`
	result := ParseTextToCV(text)
	if len(result.Data.Experience) != 2 {
		t.Fatalf("Expected 2 experience entries, got %d", len(result.Data.Experience))
	}
	first := result.Data.Experience[0]
	if first.Company != "Globex" {
		t.Errorf("Expected first company 'Globex', got '%s'", first.Company)
	}
	if !strings.Contains(first.Description, "payments team") || !strings.Contains(first.Description, "checkout flow") {
		t.Errorf("Description lines should accumulate, got '%s'", first.Description)
	}
	second := result.Data.Experience[1]
	if second.StartDate != "2018" || second.EndDate != "2021" {
		t.Errorf("Expected 2018-2021, got '%s'-'%s'", second.StartDate, second.EndDate)
	}
}

func TestParseTextToCV_DateRangeSeparators(t *testing.T) {
	tests := []struct {
		line  string
		start string
		end   string
	}{
		{"Engineer at Acme 2019 to 2021", "2019", "2021"},
		{"Engineer at Acme 2018 – 2020", "2018", "2020"},
		{"Engineer at Acme 2017—2019", "2017", "2019"},
	}

	for _, test := range tests {
		result := ParseTextToCV("Ann Lee\n\nEXPERIENCE\n" + test.line)
		if len(result.Data.Experience) != 1 {
			t.Fatalf("Expected 1 entry for %q, got %d", test.line, len(result.Data.Experience))
		}
		exp := result.Data.Experience[0]
		if exp.StartDate != test.start || exp.EndDate != test.end {
			t.Errorf("Line %q: expected %s-%s, got %s-%s",
				test.line, test.start, test.end, exp.StartDate, exp.EndDate)
		}
	}
}

func TestMatchSectionHeader(t *testing.T) {
	tests := []struct {
		line    string
		section string
		ok      bool
	}{
		{"EXPERIENCE", sectionExperience, true},
		{"Work Experience", sectionExperience, true},
		{"Employment History:", sectionExperience, true},
		{"Education", sectionEducation, true},
		{"Academic Background", sectionEducation, true},
		{"SKILLS", sectionSkills, true},
		{"Core Competencies", sectionSkills, true},
		{"Professional Summary", sectionSummary, true},
		{"I have experience with many tools", "", false},
		{"", "", false},
	}

	for _, test := range tests {
		section, ok := matchSectionHeader(test.line)
		if ok != test.ok || section != test.section {
			t.Errorf("matchSectionHeader(%q) = (%q, %v), want (%q, %v)",
				test.line, section, ok, test.section, test.ok)
		}
	}
}
