package parsers

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"immicv/models"
)

// Section identifiers used while splitting a document.
const (
	sectionExperience = "experience"
	sectionEducation  = "education"
	sectionSkills     = "skills"
	sectionSummary    = "summary"
)

// sectionHeaders maps each section to its recognized header synonyms.
// Matching is case-insensitive against the whole trimmed line.
var sectionHeaders = map[string][]string{
	sectionExperience: {"experience", "work experience", "employment", "employment history", "professional experience", "career history", "work history"},
	sectionEducation:  {"education", "academic background", "academic history", "qualifications", "education & training"},
	sectionSkills:     {"skills", "technical skills", "core competencies", "competencies", "key skills", "technologies", "expertise"},
	sectionSummary:    {"summary", "professional summary", "career summary", "profile", "objective", "about", "about me"},
}

// CVParser converts raw document text into a structured CV record.
// It is a heuristic, best-effort text classifier: it never fails hard
// on malformed input, it just extracts less.
type CVParser struct {
	emailRegex     *regexp.Regexp
	phoneRegex     *regexp.Regexp
	dateRangeRegex *regexp.Regexp
	dateSplitRegex *regexp.Regexp
	yearRegex      *regexp.Regexp
	wordRegex      *regexp.Regexp
	spaceRegex     *regexp.Regexp
}

// NewCVParser creates a parser with its regexes compiled once.
func NewCVParser() *CVParser {
	return &CVParser{
		emailRegex:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		phoneRegex:     regexp.MustCompile(`\+?[0-9][0-9()\s.-]{5,}[0-9]`),
		dateRangeRegex: regexp.MustCompile(`(?i)\b((19|20)\d{2})\s*(-|–|—|to)\s*(((19|20)\d{2})|present|current|now)\b`),
		dateSplitRegex: regexp.MustCompile(`(?i)\s*(-|–|—|\bto\b)\s*`),
		yearRegex:      regexp.MustCompile(`\b(19|20)\d{2}\b`),
		wordRegex:      regexp.MustCompile(`^[A-Za-z'.-]+$`),
		spaceRegex:     regexp.MustCompile(`\s+`),
	}
}

var defaultParser = NewCVParser()

// ParseTextToCV parses raw extracted document text with a shared
// default parser. Safe for concurrent use; each call allocates fresh
// output.
func ParseTextToCV(rawText string) models.ParseResult {
	return defaultParser.Parse(rawText)
}

// Parse extracts a structured CV from raw text. It never panics and
// never returns a nil Data on success; on total failure it returns
// Success=false with Confidence 0.
func (p *CVParser) Parse(rawText string) models.ParseResult {
	rawText = norm.NFC.String(rawText)

	lines := splitLines(rawText)
	if len(lines) == 0 {
		return models.ParseResult{
			Success:    false,
			Confidence: 0,
			Error:      "document text is empty",
		}
	}

	cv := models.NewStructuredCV()

	headerBlock, sections := p.splitSections(lines)

	p.extractContactInfo(cv, headerBlock, rawText)
	p.extractSummary(cv, sections)
	p.extractExperience(cv, sections)
	p.extractEducation(cv, sections)
	p.extractSkills(cv, sections)

	contactFound := cv.PersonalInfo.FullName != "" || cv.PersonalInfo.Email != "" || cv.PersonalInfo.Phone != ""
	if !contactFound && len(sections) == 0 {
		return models.ParseResult{
			Success:    false,
			Confidence: 0,
			Error:      "could not identify any recognizable CV sections",
		}
	}

	return models.ParseResult{
		Success:    true,
		Confidence: p.confidence(cv),
		Data:       cv,
	}
}

// splitLines trims every line and drops pure-whitespace ones.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// splitSections walks the document once, routing lines either into the
// header/contact block (everything before the first recognized header)
// or into the section named by the most recent header line.
func (p *CVParser) splitSections(lines []string) (header []string, sections map[string][]string) {
	sections = make(map[string][]string)
	current := ""

	for _, line := range lines {
		if key, ok := matchSectionHeader(line); ok {
			current = key
			if _, seen := sections[current]; !seen {
				sections[current] = []string{}
			}
			continue
		}
		if current == "" {
			header = append(header, line)
		} else {
			sections[current] = append(sections[current], line)
		}
	}

	// A header with no content under it counts as unrecognized.
	for key, content := range sections {
		if len(content) == 0 {
			delete(sections, key)
		}
	}
	return header, sections
}

// matchSectionHeader reports whether a line is a section header and
// which section it opens. Headers are short lines equal to one of the
// known synonyms, optionally with a trailing colon.
func matchSectionHeader(line string) (string, bool) {
	candidate := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ":")))
	if candidate == "" || len(candidate) > 40 {
		return "", false
	}
	for key, synonyms := range sectionHeaders {
		for _, synonym := range synonyms {
			if candidate == synonym {
				return key, true
			}
		}
	}
	return "", false
}

// extractContactInfo fills the personal-info block. The name is the
// first header line that does not look like contact data; the job
// title is the line immediately after it, under the same constraint.
// Email and phone use the first match in the whole document.
func (p *CVParser) extractContactInfo(cv *models.StructuredCV, headerBlock []string, fullText string) {
	if email := p.emailRegex.FindString(fullText); email != "" {
		cv.PersonalInfo.Email = email
	}
	if phone := p.phoneRegex.FindString(fullText); phone != "" {
		if countDigits(phone) >= 7 {
			cv.PersonalInfo.Phone = strings.TrimSpace(phone)
		}
	}

	nameIdx := -1
	for i, line := range headerBlock {
		if i > 5 {
			break
		}
		if p.isContactLine(line) {
			continue
		}
		if p.looksLikeName(line) {
			cv.PersonalInfo.FullName = line
			nameIdx = i
			break
		}
	}

	if nameIdx >= 0 && nameIdx+1 < len(headerBlock) {
		next := headerBlock[nameIdx+1]
		if !p.isContactLine(next) && !p.dateRangeRegex.MatchString(next) {
			cv.PersonalInfo.JobTitle = next
		}
	}

	// Location: a later header line shaped like "City, Region" with no
	// digits and no contact data.
	for i, line := range headerBlock {
		if i == nameIdx || p.isContactLine(line) {
			continue
		}
		if line == cv.PersonalInfo.JobTitle {
			continue
		}
		if strings.Contains(line, ",") && !strings.ContainsAny(line, "0123456789") && len(line) < 60 {
			cv.PersonalInfo.Location = line
			break
		}
	}
}

func (p *CVParser) isContactLine(line string) bool {
	if strings.Contains(line, "@") || p.emailRegex.MatchString(line) {
		return true
	}
	if m := p.phoneRegex.FindString(line); m != "" && countDigits(m) >= 7 {
		return true
	}
	return false
}

// looksLikeName accepts 2-5 alphabetic words.
func (p *CVParser) looksLikeName(line string) bool {
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 5 {
		return false
	}
	for _, word := range words {
		if !p.wordRegex.MatchString(word) {
			return false
		}
	}
	return true
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func (p *CVParser) extractSummary(cv *models.StructuredCV, sections map[string][]string) {
	if content, ok := sections[sectionSummary]; ok {
		cv.Summary = strings.Join(content, " ")
	}
}

// entrySeparators split a "Title at Company" style header line.
var entrySeparators = []string{" at ", " — ", " – ", " - ", " | ", ", "}

// extractExperience groups consecutive section lines into entries. A
// new entry starts on a line carrying a date range or shaped like
// "Title at Company"; everything else accumulates into the current
// entry's description.
func (p *CVParser) extractExperience(cv *models.StructuredCV, sections map[string][]string) {
	content, ok := sections[sectionExperience]
	if !ok {
		return
	}

	var entries []models.ExperienceEntry
	var current *models.ExperienceEntry

	for _, line := range content {
		if p.startsNewEntry(line) {
			if current != nil {
				entries = append(entries, *current)
			}
			current = &models.ExperienceEntry{}
			p.parseEntryHeader(current, line)
			continue
		}
		if current == nil {
			// Description text before any recognizable entry header
			// still opens an entry so nothing is silently dropped.
			current = &models.ExperienceEntry{}
		}
		line = strings.TrimLeft(line, "•-* \t")
		if current.Description == "" {
			current.Description = line
		} else {
			current.Description += "\n" + line
		}
	}
	if current != nil {
		entries = append(entries, *current)
	}

	cv.Experience = entries
}

// startsNewEntry reports whether a line opens a new experience entry.
func (p *CVParser) startsNewEntry(line string) bool {
	if p.dateRangeRegex.MatchString(line) {
		return true
	}
	if strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
		return false
	}
	for _, sep := range []string{" at ", " — ", " – ", " | "} {
		if strings.Contains(line, sep) {
			return true
		}
	}
	return false
}

// parseEntryHeader pulls the date range out of a header line, then
// splits the remainder into title and company.
func (p *CVParser) parseEntryHeader(entry *models.ExperienceEntry, line string) {
	if rng := p.dateRangeRegex.FindString(line); rng != "" {
		entry.StartDate, entry.EndDate = p.splitDateRange(rng)
		line = strings.Replace(line, rng, "", 1)
	}
	line = strings.TrimSpace(strings.Trim(strings.TrimSpace(line), ",|-–—"))
	line = p.spaceRegex.ReplaceAllString(line, " ")

	for _, sep := range entrySeparators {
		if idx := strings.Index(line, sep); idx > 0 {
			entry.Title = strings.TrimSpace(line[:idx])
			entry.Company = strings.TrimSpace(line[idx+len(sep):])
			return
		}
	}
	entry.Title = line
}

// splitDateRange splits "2020 - Present" style text into start and end.
func (p *CVParser) splitDateRange(rng string) (start, end string) {
	parts := p.dateSplitRegex.Split(rng, 2)
	start = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		end = strings.TrimSpace(parts[1])
	}
	return start, end
}

// degreeKeywords signal that an education line carries the degree.
var degreeKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "mba", "diploma", "certificate",
	"associate", "bsc", "msc", "b.s.", "m.s.", "b.a.", "m.a.", "high school", "secondary",
}

// extractEducation groups education lines into degree/institution/date
// entries using the same date detection as experience.
func (p *CVParser) extractEducation(cv *models.StructuredCV, sections map[string][]string) {
	content, ok := sections[sectionEducation]
	if !ok {
		return
	}

	var entries []models.EducationEntry
	var current *models.EducationEntry

	for _, line := range content {
		hasDegree := containsAnyFold(line, degreeKeywords)
		hasDate := p.yearRegex.MatchString(line)

		if hasDegree || hasDate {
			if hasDegree || current == nil {
				if current != nil {
					entries = append(entries, *current)
				}
				current = &models.EducationEntry{}
				p.parseEducationLine(current, line)
				continue
			}
			// Date-only line attaches to the open entry.
			if current.GraduationDate == "" {
				current.GraduationDate = pickGraduationDate(p.yearRegex.FindAllString(line, -1))
			}
			continue
		}
		if current == nil {
			current = &models.EducationEntry{}
		}
		if current.Institution == "" {
			current.Institution = strings.TrimLeft(line, "•-* \t")
		}
	}
	if current != nil {
		entries = append(entries, *current)
	}

	cv.Education = entries
}

// parseEducationLine splits "Degree, Institution, Year" shapes.
func (p *CVParser) parseEducationLine(entry *models.EducationEntry, line string) {
	years := p.yearRegex.FindAllString(line, -1)
	if len(years) > 0 {
		entry.GraduationDate = pickGraduationDate(years)
		for _, y := range years {
			line = strings.Replace(line, y, "", 1)
		}
	}

	var parts []string
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(strings.Trim(strings.TrimSpace(part), "-–—|"))
		if part != "" {
			parts = append(parts, part)
		}
	}
	switch {
	case len(parts) >= 3:
		entry.Degree = parts[0]
		entry.Institution = parts[1]
		entry.Location = parts[2]
	case len(parts) == 2:
		entry.Degree = parts[0]
		entry.Institution = parts[1]
	case len(parts) == 1:
		entry.Degree = parts[0]
	}
}

// pickGraduationDate takes the last year on the line, which for
// "2014 - 2018" shapes is the completion year.
func pickGraduationDate(years []string) string {
	if len(years) == 0 {
		return ""
	}
	return years[len(years)-1]
}

// extractSkills tokenizes the skills section on commas, semicolons,
// pipes, bullets and newlines. Duplicates are preserved in document
// order.
func (p *CVParser) extractSkills(cv *models.StructuredCV, sections map[string][]string) {
	content, ok := sections[sectionSkills]
	if !ok {
		return
	}

	text := strings.Join(content, "\n")
	for _, sep := range []string{",", ";", "|", "•"} {
		text = strings.ReplaceAll(text, sep, "\n")
	}

	var skills []string
	for _, token := range strings.Split(text, "\n") {
		token = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(token), "-*• \t"))
		if token != "" {
			skills = append(skills, token)
		}
	}
	cv.Skills = skills
}

// Confidence weights. Contact fields deliberately contribute less than
// having at least one experience and one education entry.
const (
	confidenceName       = 10
	confidenceEmail      = 8
	confidencePhone      = 7
	confidenceSummary    = 10
	confidenceExperience = 25
	confidenceEducation  = 20
	confidenceSkills     = 20
)

// confidence estimates extraction quality on a 0-100 scale. It is a
// heuristic, not a probability.
func (p *CVParser) confidence(cv *models.StructuredCV) int {
	score := 0
	if cv.PersonalInfo.FullName != "" {
		score += confidenceName
	}
	if cv.PersonalInfo.Email != "" {
		score += confidenceEmail
	}
	if cv.PersonalInfo.Phone != "" {
		score += confidencePhone
	}
	if cv.Summary != "" {
		score += confidenceSummary
	}
	if len(cv.Experience) > 0 {
		score += confidenceExperience
	}
	if len(cv.Education) > 0 {
		score += confidenceEducation
	}
	if len(cv.Skills) > 0 {
		score += confidenceSkills
	}
	if score > 100 {
		score = 100
	}
	return score
}

// containsAnyFold reports whether s contains any of the terms,
// case-insensitively.
func containsAnyFold(s string, terms []string) bool {
	lower := strings.ToLower(s)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
