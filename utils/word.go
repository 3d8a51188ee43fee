package utils

import (
	"strings"

	"baliance.com/gooxml/document"

	"immicv/models"
)

// GenerateCVWordFile writes a structured CV to a .docx file so
// consultants can hand clients an editable copy of the parsed or
// enhanced record.
func GenerateCVWordFile(cv *models.StructuredCV, filepath string) error {
	doc := document.New()

	if cv.PersonalInfo.FullName != "" {
		run := doc.AddParagraph().AddRun()
		run.Properties().SetBold(true)
		run.AddText(cv.PersonalInfo.FullName)
	}
	contact := joinNonEmpty(" | ",
		cv.PersonalInfo.JobTitle,
		cv.PersonalInfo.Email,
		cv.PersonalInfo.Phone,
		cv.PersonalInfo.Location,
	)
	if contact != "" {
		doc.AddParagraph().AddRun().AddText(contact)
	}

	if cv.Summary != "" {
		addHeading(doc, "Summary")
		doc.AddParagraph().AddRun().AddText(cv.Summary)
	}

	if len(cv.Experience) > 0 {
		addHeading(doc, "Experience")
		for _, exp := range cv.Experience {
			header := joinNonEmpty(" at ", exp.Title, exp.Company)
			dates := joinNonEmpty(" - ", exp.StartDate, exp.EndDate)
			if dates != "" {
				header = joinNonEmpty(", ", header, dates)
			}
			run := doc.AddParagraph().AddRun()
			run.Properties().SetBold(true)
			run.AddText(header)
			for _, line := range strings.Split(exp.Description, "\n") {
				if strings.TrimSpace(line) != "" {
					doc.AddParagraph().AddRun().AddText(line)
				}
			}
		}
	}

	if len(cv.Education) > 0 {
		addHeading(doc, "Education")
		for _, edu := range cv.Education {
			doc.AddParagraph().AddRun().AddText(joinNonEmpty(", ",
				edu.Degree, edu.Institution, edu.Location, edu.GraduationDate))
		}
	}

	if len(cv.Skills) > 0 {
		addHeading(doc, "Skills")
		doc.AddParagraph().AddRun().AddText(strings.Join(cv.Skills, ", "))
	}

	return doc.SaveToFile(filepath)
}

func addHeading(doc *document.Document, text string) {
	run := doc.AddParagraph().AddRun()
	run.Properties().SetBold(true)
	run.AddText(strings.ToUpper(text))
}

func joinNonEmpty(sep string, values ...string) string {
	var parts []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
