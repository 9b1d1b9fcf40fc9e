package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}
	return path
}

func TestLoadJobs(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "job_id,title,Job Description\n42,Go Developer,build services in Go\n43,Analyst,crunch numbers\n")

	jobs, err := LoadJobs(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if jobs.Len() != 2 {
		t.Fatalf("expected 2 jobs, got %d", jobs.Len())
	}

	first := jobs.Items[0]
	if first.ID != "42" || first.Title != "Go Developer" || first.Text != "build services in Go" {
		t.Fatalf("unexpected first job: %+v", first)
	}
}

func TestLoadJobsAlternativeColumns(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "description,job\nwrite Python,Backend Dev\n")

	jobs, err := LoadJobs(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	job := jobs.Items[0]
	if job.Text != "write Python" {
		t.Fatalf("expected description column resolved, got %+v", job)
	}
	if job.Title != "Backend Dev" {
		t.Fatalf("expected job column resolved as title, got %+v", job)
	}
	// No id column: row number is used.
	if job.ID != "1" {
		t.Fatalf("expected row-number id, got %q", job.ID)
	}
}

func TestLoadJobsMissingDescriptionColumn(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "id,name\n1,foo\n")

	_, err := LoadJobs(path)
	if err == nil {
		t.Fatalf("expected error for missing description column")
	}
	if !strings.Contains(err.Error(), "available columns") {
		t.Fatalf("expected available columns in error, got: %v", err)
	}
}

func TestLoadResumes(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "id,name,Resume_str\nr1,Alice,go developer with 5 years\n")

	resumes, err := LoadResumes(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resume := resumes.Items[0]
	if resume.ID != "r1" || resume.Title != "Alice" || !strings.Contains(resume.Text, "go developer") {
		t.Fatalf("unexpected resume: %+v", resume)
	}
}

func TestCandidatesExclude(t *testing.T) {
	t.Parallel()

	candidates := &Candidates{Items: []*Candidate{
		{ID: "1", Title: "one"},
		{ID: "2", Title: "two"},
		{ID: "3", Title: "three"},
	}}

	excluded := candidates.Exclude(CandidateIDField, []string{"2"})
	if len(excluded) != 1 || excluded[0] != "2" {
		t.Fatalf("unexpected excluded ids: %v", excluded)
	}
	if candidates.Len() != 2 {
		t.Fatalf("expected 2 candidates left, got %d", candidates.Len())
	}
	// Order of the remaining candidates is preserved.
	if candidates.Items[0].ID != "1" || candidates.Items[1].ID != "3" {
		t.Fatalf("expected order preserved, got %v", candidates.Titles())
	}
}

func TestExcludedCandidatesRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "excluded.json")

	candidates := &Candidates{Items: []*Candidate{{ID: "9", Title: "stale"}}}
	excluded := candidates.ToExcluded("already reviewed")
	if err := excluded.ToFile(path); err != nil {
		t.Fatalf("writing exclude file: %v", err)
	}

	loaded, err := GetExcludedFromFile(path)
	if err != nil {
		t.Fatalf("reading exclude file: %v", err)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].ID != "9" || loaded.Items[0].Reason != "already reviewed" {
		t.Fatalf("unexpected loaded exclude list: %+v", loaded.Items)
	}

	ids := loaded.IDs()
	if len(ids) != 1 || ids[0] != "9" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestGetExcludedFromEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "excluded.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("writing empty file: %v", err)
	}

	excluded, err := GetExcludedFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(excluded.Items) != 0 {
		t.Fatalf("expected empty list, got %v", excluded.Items)
	}
}

func TestReportByGroup(t *testing.T) {
	t.Parallel()

	candidates := &Candidates{Items: []*Candidate{
		{ID: "1", Title: "Go Developer", Skills: []string{"go", "sql"}, ExperienceYears: 5, HasExperience: true},
		{ID: "2", Title: "Go Developer"},
		{ID: "3", Title: "Data Analyst"},
	}}

	report := candidates.ReportByGroup(CandidateTitleField)
	if len(report) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(report))
	}
	if len(report["Go Developer"]) != 2 {
		t.Fatalf("expected 2 go developers, got %d", len(report["Go Developer"]))
	}

	first := report["Go Developer"][0]
	if first["skills"] != "go, sql" {
		t.Errorf("unexpected skills summary %q", first["skills"])
	}
	if first["experience years"] != "5" {
		t.Errorf("unexpected experience summary %q", first["experience years"])
	}
	if _, ok := report["Go Developer"][1]["experience years"]; ok {
		t.Errorf("candidate without stated tenure must not report years")
	}
}
