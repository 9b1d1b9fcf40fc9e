package extract

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSkills(t *testing.T) {
	t.Parallel()

	lexicon := NewLexicon("python", "machine learning", "java")

	tests := []struct {
		name    string
		text    string
		lexicon Lexicon
		expect  []string
	}{
		{
			name:    "matches single and multi-word entries sorted",
			text:    "I know Python and Machine Learning",
			lexicon: lexicon,
			expect:  []string{"machine learning", "python"},
		},
		{
			name:    "empty text",
			text:    "",
			lexicon: lexicon,
			expect:  []string{},
		},
		{
			name:    "empty lexicon",
			text:    "I know Python",
			lexicon: Lexicon{},
			expect:  []string{},
		},
		{
			name:    "whole word matching only",
			text:    "javascript is not java here",
			lexicon: lexicon,
			expect:  []string{"java"},
		},
		{
			name:    "phrase and constituent word both reported",
			text:    "deep machine learning and plain learning",
			lexicon: NewLexicon("machine learning", "learning"),
			expect:  []string{"learning", "machine learning"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Skills(tt.text, tt.lexicon)
			if !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestYears(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect int
		found  bool
	}{
		{
			name:   "returns maximum of all mentions",
			text:   "5 years of experience, 10+ yrs managing teams",
			expect: 10,
			found:  true,
		},
		{
			name:  "no mention",
			text:  "no mention of tenure",
			found: false,
		},
		{
			name:  "empty text",
			text:  "",
			found: false,
		},
		{
			name:   "compact forms",
			text:   "8+yrs backend, 2 yr frontend",
			expect: 8,
			found:  true,
		},
		{
			name:   "case insensitive",
			text:   "3 YEARS in production",
			expect: 3,
			found:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, found := Years(tt.text)
			if found != tt.found {
				t.Fatalf("expected found=%v, got %v", tt.found, found)
			}
			if found && got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

func TestOverlap(t *testing.T) {
	t.Parallel()

	got := Overlap([]string{"go", "python", "sql"}, []string{"sql", "go", "rust"})
	expect := []string{"go", "sql"}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %v, got %v", expect, got)
	}
}

func TestLoadLexicon(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "skills.txt")
	content := "Python\nmachine learning\n\n  Go  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing lexicon file: %v", err)
	}

	lexicon := LoadLexicon(path)
	if len(lexicon) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(lexicon))
	}
	for _, entry := range []string{"python", "machine learning", "go"} {
		if _, ok := lexicon[entry]; !ok {
			t.Fatalf("expected entry %q", entry)
		}
	}
}

func TestLoadLexiconMissingFile(t *testing.T) {
	t.Parallel()

	lexicon := LoadLexicon(filepath.Join(t.TempDir(), "missing.txt"))
	if len(lexicon) != 0 {
		t.Fatalf("expected empty lexicon, got %v", lexicon)
	}
}
