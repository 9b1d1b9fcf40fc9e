// Package report renders screening results to CSV and JSON.
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cvscreen/cv-screener/internal/screening"
)

var csvHeader = []string{"rank", "id", "title", "score", "skills", "experience_years"}

// WriteCSV renders the ranked matches as CSV, best match first.
func WriteCSV(w io.Writer, rep *screening.Report) error {
	if rep == nil {
		return errors.New("report is required")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for i, match := range rep.Matches {
		years := ""
		if match.Candidate.HasExperience {
			years = strconv.Itoa(match.Candidate.ExperienceYears)
		}

		record := []string{
			strconv.Itoa(i + 1),
			match.Candidate.ID,
			match.Candidate.Title,
			strconv.FormatFloat(match.Score, 'f', 4, 64),
			strings.Join(match.Candidate.Skills, "; "),
			years,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportCSV writes the ranked matches to the given path, truncating any
// existing file.
func ExportCSV(path string, rep *screening.Report) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if err := WriteCSV(file, rep); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// DumpToTmpFile writes the full report as indented JSON to a temp file and
// returns its name.
func DumpToTmpFile(rep *screening.Report) (string, error) {
	if rep == nil {
		return "", errors.New("report is required")
	}

	file, err := os.CreateTemp("", "screening_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return "", err
	}
	return file.Name(), nil
}
