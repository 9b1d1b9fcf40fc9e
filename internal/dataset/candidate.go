// Package dataset loads candidate records (jobs or resumes) from tabular
// files and provides the collection type the filters and the screener work
// on.
package dataset

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

const (
	CandidateIDField    = "ID"
	CandidateTitleField = "Title"
)

// Candidate is one record to rank: a job description or a resume.
type Candidate struct {
	ID    string `json:"id" mapstructure:"id"`
	Title string `json:"title,omitempty" mapstructure:"title"`
	Text  string `json:"text" mapstructure:"text"`

	// Signals filled during screening.
	Skills          []string `json:"skills,omitempty"`
	ExperienceYears int      `json:"experience_years,omitempty"`
	HasExperience   bool     `json:"has_experience,omitempty"`
}

type Candidates struct {
	Items []*Candidate
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

// Texts returns the candidate texts in collection order.
func (c *Candidates) Texts() []string {
	texts := make([]string, 0, len(c.Items))
	for _, candidate := range c.Items {
		texts = append(texts, candidate.Text)
	}
	return texts
}

func (c *Candidates) Titles() []string {
	titles := make([]string, 0, len(c.Items))
	for _, candidate := range c.Items {
		titles = append(titles, candidate.Title)
	}
	return titles
}

func (c *Candidates) FindByID(id string) *Candidate {
	for _, candidate := range c.Items {
		if candidate.ID == id {
			return candidate
		}
	}
	return nil
}

func (ca *Candidate) GetStringField(name string) string {
	switch name {
	case CandidateIDField:
		return ca.ID
	case CandidateTitleField:
		return ca.Title
	default:
		return ""
	}
}

// Exclude removes candidates whose field matches one of the targets and
// returns the removed IDs.
func (c *Candidates) Exclude(name string, targets []string) []string {
	var excluded []string
	for _, target := range targets {
		for idx, candidate := range c.Items {
			if candidate.GetStringField(name) == target {
				c.RemoveByIndex(idx)
				excluded = append(excluded, candidate.ID)
				break
			}
		}
	}
	return excluded
}

// RemoveByIndex removes a candidate, preserving order. Ranking ties are
// broken by collection order, so order must survive filtering.
func (c *Candidates) RemoveByIndex(idx int) {
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
}

// ReportByGroup groups candidates by the named field with a short summary
// per candidate.
func (c *Candidates) ReportByGroup(name string) map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, candidate := range c.Items {
		key := candidate.GetStringField(name)
		if key == "" {
			key = "(none)"
		}

		entry := map[string]string{
			"id":    candidate.ID,
			"title": candidate.Title,
		}
		if len(candidate.Skills) > 0 {
			entry["skills"] = strings.Join(candidate.Skills, ", ")
		}
		if candidate.HasExperience {
			entry["experience years"] = strconv.Itoa(candidate.ExperienceYears)
		}

		report[key] = append(report[key], entry)
	}
	return report
}

// DumpToTmpFile writes the collection as indented JSON to a temp file and
// returns its name.
func (c *Candidates) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return "", err
	}
	return file.Name(), nil
}
