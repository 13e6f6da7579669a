// Package types provides type definitions for structured data used throughout the resume-optimizer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ResumeDocument represents a structured resume parsed from raw text.
type ResumeDocument struct {
	Contact        Contact       `json:"contact"`
	Summary        string        `json:"summary,omitempty"`
	Skills         SkillsSection `json:"skills"`
	Experience     []Experience  `json:"experience"`
	Education      []Education   `json:"education,omitempty"`
	Projects       []Project     `json:"projects,omitempty"`
	Certifications []string      `json:"certifications,omitempty"`
}

// Contact represents the contact block of a resume.
type Contact struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// Experience represents a single work experience entry with its bullet points.
type Experience struct {
	Company string   `json:"company"`
	Title   string   `json:"title"`
	Dates   string   `json:"dates,omitempty"`
	Bullets []string `json:"bullets"`
}

// Education represents a single education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Dates       string `json:"dates,omitempty"`
}

// Project represents a personal or professional project entry.
type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Bullets     []string `json:"bullets,omitempty"`
}

// SkillsSection holds the technical and soft skill listings of a resume.
type SkillsSection struct {
	Technical SkillGroups `json:"technical_skills,omitempty"`
	Soft      []string    `json:"soft_skills,omitempty"`
}

// SkillCategory is a named group of technical skills. Order of categories is
// preserved as they appear in the source document.
type SkillCategory struct {
	Name   string
	Skills []string
}

// SkillGroups is an ordered list of skill categories. It unmarshals from
// either a JSON object of category name to skill array, or a flat JSON array
// of skills (which lands in the default category).
type SkillGroups []SkillCategory

// DefaultCategory is the category assigned to uncategorized technical skills.
const DefaultCategory = "Technical Skills"

// UnmarshalJSON accepts both the categorized object form and the flat array form.
func (g *SkillGroups) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch delim := tok.(type) {
	case json.Delim:
		switch delim {
		case '[':
			var skills []string
			if err := json.Unmarshal(data, &skills); err != nil {
				return err
			}
			if len(skills) == 0 {
				*g = nil
				return nil
			}
			*g = SkillGroups{{Name: DefaultCategory, Skills: skills}}
			return nil
		case '{':
			groups := SkillGroups{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return err
				}
				name, ok := keyTok.(string)
				if !ok {
					return fmt.Errorf("unexpected token in skills object: %v", keyTok)
				}
				var skills []string
				if err := dec.Decode(&skills); err != nil {
					return fmt.Errorf("category %q: %w", name, err)
				}
				groups = append(groups, SkillCategory{Name: name, Skills: skills})
			}
			*g = groups
			return nil
		}
	case nil:
		*g = nil
		return nil
	}
	return fmt.Errorf("skills must be a JSON object or array, got %v", tok)
}

// MarshalJSON emits the categorized object form, preserving category order.
func (g SkillGroups) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("null"), nil
	}
	buf := []byte{'{'}
	for i, cat := range g {
		if i > 0 {
			buf = append(buf, ',')
		}
		name, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		skills, err := json.Marshal(cat.Skills)
		if err != nil {
			return nil, err
		}
		buf = append(buf, name...)
		buf = append(buf, ':')
		buf = append(buf, skills...)
	}
	return append(buf, '}'), nil
}

// Category returns the skill list for the named category and whether it exists.
func (g SkillGroups) Category(name string) ([]string, bool) {
	for _, cat := range g {
		if cat.Name == name {
			return cat.Skills, true
		}
	}
	return nil, false
}

// CategoryNames returns the category names in document order.
func (g SkillGroups) CategoryNames() []string {
	names := make([]string, len(g))
	for i, cat := range g {
		names[i] = cat.Name
	}
	return names
}

// TotalSkills returns the total number of skills across all categories.
func (g SkillGroups) TotalSkills() int {
	n := 0
	for _, cat := range g {
		n += len(cat.Skills)
	}
	return n
}

// DeepCopy returns a fully independent copy of the resume document.
func (r *ResumeDocument) DeepCopy() *ResumeDocument {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Skills.Technical = make(SkillGroups, len(r.Skills.Technical))
	for i, cat := range r.Skills.Technical {
		cp.Skills.Technical[i] = SkillCategory{
			Name:   cat.Name,
			Skills: append([]string(nil), cat.Skills...),
		}
	}
	cp.Skills.Soft = append([]string(nil), r.Skills.Soft...)
	cp.Experience = make([]Experience, len(r.Experience))
	for i, exp := range r.Experience {
		cp.Experience[i] = exp
		cp.Experience[i].Bullets = append([]string(nil), exp.Bullets...)
	}
	cp.Education = append([]Education(nil), r.Education...)
	cp.Projects = make([]Project, len(r.Projects))
	for i, proj := range r.Projects {
		cp.Projects[i] = proj
		cp.Projects[i].Bullets = append([]string(nil), proj.Bullets...)
	}
	cp.Certifications = append([]string(nil), r.Certifications...)
	return &cp
}
