package screening

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/cvscreen/cv-screener/internal/dataset"
	"github.com/cvscreen/cv-screener/internal/extract"
	"github.com/cvscreen/cv-screener/internal/ranking"
	"github.com/cvscreen/cv-screener/internal/textnorm"
)

// stubProvider returns deterministic vectors: identical texts get identical
// vectors and distinct texts get orthogonal ones.
type stubProvider struct {
	err error
}

func (s *stubProvider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}

	axes := make(map[string]int)
	for _, text := range texts {
		if _, ok := axes[text]; !ok {
			axes[text] = len(axes)
		}
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector := make([]float32, len(axes))
		vector[axes[text]] = 1
		vectors[i] = vector
	}
	return vectors, nil
}

func (s *stubProvider) Model() string { return "stub-model" }

func newTestScreener(provider *stubProvider) *Screener {
	ranker := ranking.New(provider, textnorm.NewDefault(), nil)
	lexicon := extract.NewLexicon("go", "python", "sql", "machine learning")
	return New(ranker, lexicon, nil)
}

func testJobs() *dataset.Candidates {
	return &dataset.Candidates{Items: []*dataset.Candidate{
		{ID: "1", Title: "Backend Engineer", Text: "Senior Go and SQL engineer, 5+ years required"},
		{ID: "2", Title: "ML Engineer", Text: "Machine learning with Python and 3 years"},
		{ID: "3", Title: "Chef", Text: "Pastry chef for a busy kitchen"},
	}}
}

func TestScreenRanksAndJustifies(t *testing.T) {
	t.Parallel()

	screener := newTestScreener(&stubProvider{})
	query := "Senior Go and SQL engineer, 5+ years required"

	report, err := screener.Screen(context.Background(), query, testJobs(), 2)
	if err != nil {
		t.Fatalf("screen: %v", err)
	}

	if len(report.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(report.Matches))
	}

	best := report.Matches[0]
	if best.Candidate.ID != "1" {
		t.Fatalf("expected the identical job to rank first, got %q", best.Candidate.ID)
	}
	if best.Score < 0.999 {
		t.Errorf("expected score ~1.0 for the identical job, got %f", best.Score)
	}

	if !reflect.DeepEqual(best.Candidate.Skills, []string{"go", "sql"}) {
		t.Errorf("unexpected skills for best match: %v", best.Candidate.Skills)
	}
	if !best.Candidate.HasExperience || best.Candidate.ExperienceYears != 5 {
		t.Errorf("unexpected tenure for best match: %d/%v",
			best.Candidate.ExperienceYears, best.Candidate.HasExperience)
	}

	if !reflect.DeepEqual(report.QuerySkills, []string{"go", "sql"}) {
		t.Errorf("unexpected query skills: %v", report.QuerySkills)
	}
	if !report.QueryHasExperience || report.QueryExperienceYears != 5 {
		t.Errorf("unexpected query tenure: %d/%v",
			report.QueryExperienceYears, report.QueryHasExperience)
	}
	if !reflect.DeepEqual(report.OverlapSkills, []string{"go", "sql"}) {
		t.Errorf("unexpected overlap: %v", report.OverlapSkills)
	}
}

func TestScreenMatchedSkillsSpanAllMatches(t *testing.T) {
	t.Parallel()

	screener := newTestScreener(&stubProvider{})

	report, err := screener.Screen(context.Background(), "go and python role", testJobs(), 3)
	if err != nil {
		t.Fatalf("screen: %v", err)
	}

	want := []string{"go", "machine learning", "python", "sql"}
	if !reflect.DeepEqual(report.MatchedSkills, want) {
		t.Errorf("unexpected matched skills: %v", report.MatchedSkills)
	}
	if !reflect.DeepEqual(report.OverlapSkills, []string{"go", "python"}) {
		t.Errorf("unexpected overlap: %v", report.OverlapSkills)
	}
}

func TestScreenMatchesPhraseContainingStopword(t *testing.T) {
	t.Parallel()

	// Lexicon phrases may contain words the normalizer would drop; skill
	// inference must still find them in the raw text.
	ranker := ranking.New(&stubProvider{}, textnorm.NewDefault(), nil)
	screener := New(ranker, extract.NewLexicon("ruby on rails"), nil)

	candidates := &dataset.Candidates{Items: []*dataset.Candidate{
		{ID: "1", Title: "Web Developer", Text: "Expert in Ruby on Rails development"},
	}}

	report, err := screener.Screen(context.Background(), "Expert in Ruby on Rails development", candidates, 1)
	if err != nil {
		t.Fatalf("screen: %v", err)
	}

	if !reflect.DeepEqual(report.QuerySkills, []string{"ruby on rails"}) {
		t.Errorf("unexpected query skills: %v", report.QuerySkills)
	}
	if !reflect.DeepEqual(report.Matches[0].Candidate.Skills, []string{"ruby on rails"}) {
		t.Errorf("unexpected candidate skills: %v", report.Matches[0].Candidate.Skills)
	}
	if !reflect.DeepEqual(report.OverlapSkills, []string{"ruby on rails"}) {
		t.Errorf("unexpected overlap: %v", report.OverlapSkills)
	}
}

func TestScreenPropagatesProviderError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("quota exceeded")
	screener := newTestScreener(&stubProvider{err: wantErr})

	_, err := screener.Screen(context.Background(), "go developer", testJobs(), 1)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestScreenRequiresCandidates(t *testing.T) {
	t.Parallel()

	screener := newTestScreener(&stubProvider{})

	if _, err := screener.Screen(context.Background(), "go developer", &dataset.Candidates{}, 1); err == nil {
		t.Fatal("expected an error for an empty collection")
	}
	if _, err := screener.Screen(context.Background(), "go developer", nil, 1); err == nil {
		t.Fatal("expected an error for a nil collection")
	}
}
