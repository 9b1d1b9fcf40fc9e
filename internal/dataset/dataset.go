package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Column name candidates, tried in order. Datasets in the wild disagree on
// header naming, so the first matching column wins.
var (
	jobDescriptionColumns = []string{"Job Description", "description"}
	jobTitleColumns       = []string{"title", "job_title", "job"}
	jobIDColumns          = []string{"job_id", "id"}

	resumeTextColumns  = []string{"Resume_str", "resume_text"}
	resumeTitleColumns = []string{"name", "candidate_name", "title"}
	resumeIDColumns    = []string{"id", "resume_id"}
)

// Schema names the columns a dataset must or may provide.
type Schema struct {
	Text  []string
	Title []string
	ID    []string
}

// JobSchema matches jobs datasets with a required description column.
func JobSchema() Schema {
	return Schema{Text: jobDescriptionColumns, Title: jobTitleColumns, ID: jobIDColumns}
}

// ResumeSchema matches resume datasets with a required resume-text column.
func ResumeSchema() Schema {
	return Schema{Text: resumeTextColumns, Title: resumeTitleColumns, ID: resumeIDColumns}
}

// LoadJobs reads a jobs dataset from a CSV file.
func LoadJobs(path string) (*Candidates, error) {
	return LoadCSV(path, JobSchema())
}

// LoadResumes reads a resumes dataset from a CSV file.
func LoadResumes(path string) (*Candidates, error) {
	return LoadCSV(path, ResumeSchema())
}

// LoadCSV reads a CSV file into a candidate collection using the schema's
// column candidates. The text column is required; title and id fall back to
// empty title and the row number.
func LoadCSV(path string, schema Schema) (*Candidates, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	header := rows[0]
	textIdx, ok := ResolveColumn(header, schema.Text)
	if !ok {
		return nil, fmt.Errorf(
			"dataset %s must include one of the columns %q; available columns: %s",
			path, schema.Text, strings.Join(header, ", "),
		)
	}
	titleIdx, hasTitle := ResolveColumn(header, schema.Title)
	idIdx, hasID := ResolveColumn(header, schema.ID)

	records := make([]map[string]string, 0, len(rows)-1)
	for i, row := range rows[1:] {
		record := map[string]string{
			"id":   strconv.Itoa(i + 1),
			"text": cell(row, textIdx),
		}
		if hasTitle {
			record["title"] = cell(row, titleIdx)
		}
		if hasID {
			if id := strings.TrimSpace(cell(row, idIdx)); id != "" {
				record["id"] = id
			}
		}
		records = append(records, record)
	}

	var items []*Candidate
	if err := mapstructure.Decode(records, &items); err != nil {
		return nil, fmt.Errorf("decoding dataset records: %w", err)
	}

	return &Candidates{Items: items}, nil
}

// ResolveColumn returns the index of the first candidate name present in the
// header.
func ResolveColumn(header []string, candidates []string) (int, bool) {
	for _, candidate := range candidates {
		for idx, name := range header {
			if strings.TrimSpace(name) == candidate {
				return idx, true
			}
		}
	}
	return 0, false
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
