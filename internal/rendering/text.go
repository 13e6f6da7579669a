// Package rendering produces output documents from enhanced resumes.
package rendering

import (
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// RenderText renders a resume document as plain text. Bullet text is copied
// verbatim, so every numeric token in the document survives rendering.
func RenderText(resume *types.ResumeDocument) (string, error) {
	if resume == nil {
		return "", &RenderError{Message: "resume is nil"}
	}

	var b strings.Builder

	writeContact(&b, resume.Contact)

	if resume.Summary != "" {
		writeHeading(&b, "SUMMARY")
		b.WriteString(resume.Summary)
		b.WriteString("\n")
	}

	if len(resume.Skills.Technical) > 0 || len(resume.Skills.Soft) > 0 {
		writeHeading(&b, "SKILLS")
		for _, cat := range resume.Skills.Technical {
			b.WriteString(cat.Name)
			b.WriteString(": ")
			b.WriteString(strings.Join(cat.Skills, ", "))
			b.WriteString("\n")
		}
		if len(resume.Skills.Soft) > 0 {
			b.WriteString("Soft Skills: ")
			b.WriteString(strings.Join(resume.Skills.Soft, ", "))
			b.WriteString("\n")
		}
	}

	if len(resume.Experience) > 0 {
		writeHeading(&b, "EXPERIENCE")
		for _, exp := range resume.Experience {
			b.WriteString(exp.Title)
			if exp.Company != "" {
				b.WriteString(" — ")
				b.WriteString(exp.Company)
			}
			if exp.Dates != "" {
				b.WriteString(" (")
				b.WriteString(exp.Dates)
				b.WriteString(")")
			}
			b.WriteString("\n")
			for _, bullet := range exp.Bullets {
				b.WriteString("  - ")
				b.WriteString(bullet)
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	if len(resume.Projects) > 0 {
		writeHeading(&b, "PROJECTS")
		for _, proj := range resume.Projects {
			b.WriteString(proj.Name)
			if proj.Description != "" {
				b.WriteString(" — ")
				b.WriteString(proj.Description)
			}
			b.WriteString("\n")
			for _, bullet := range proj.Bullets {
				b.WriteString("  - ")
				b.WriteString(bullet)
				b.WriteString("\n")
			}
		}
	}

	if len(resume.Education) > 0 {
		writeHeading(&b, "EDUCATION")
		for _, edu := range resume.Education {
			b.WriteString(edu.Institution)
			if edu.Degree != "" {
				b.WriteString(" — ")
				b.WriteString(edu.Degree)
			}
			if edu.Dates != "" {
				b.WriteString(" (")
				b.WriteString(edu.Dates)
				b.WriteString(")")
			}
			b.WriteString("\n")
		}
	}

	if len(resume.Certifications) > 0 {
		writeHeading(&b, "CERTIFICATIONS")
		for _, cert := range resume.Certifications {
			b.WriteString("  - ")
			b.WriteString(cert)
			b.WriteString("\n")
		}
	}

	return strings.TrimSpace(b.String()) + "\n", nil
}

func writeContact(b *strings.Builder, contact types.Contact) {
	b.WriteString(contact.Name)
	b.WriteString("\n")
	var parts []string
	for _, p := range []string{contact.Email, contact.Phone, contact.Location} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		b.WriteString(strings.Join(parts, " | "))
		b.WriteString("\n")
	}
}

func writeHeading(b *strings.Builder, heading string) {
	b.WriteString("\n")
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(heading)))
	b.WriteString("\n")
}
