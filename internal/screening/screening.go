// Package screening ties the pipeline together: it ranks candidates against
// a query and attaches the extracted signals that explain the ranking.
package screening

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/cvscreen/cv-screener/internal/dataset"
	"github.com/cvscreen/cv-screener/internal/extract"
	"github.com/cvscreen/cv-screener/internal/ranking"
)

// Match pairs a ranked candidate with its similarity score.
type Match struct {
	Candidate *dataset.Candidate `json:"candidate"`
	Score     float64            `json:"score"`
}

// Report holds the ranked matches plus the signals that justify them: the
// skills found in the query, the skills found across the matched candidates,
// and their overlap.
type Report struct {
	Matches []Match `json:"matches"`

	QuerySkills          []string `json:"query_skills"`
	MatchedSkills        []string `json:"matched_skills"`
	OverlapSkills        []string `json:"overlap_skills"`
	QueryExperienceYears int      `json:"query_experience_years,omitempty"`
	QueryHasExperience   bool     `json:"query_has_experience"`
}

type Screener struct {
	ranker  *ranking.Ranker
	lexicon extract.Lexicon
	logger  *zap.Logger
}

func New(ranker *ranking.Ranker, lexicon extract.Lexicon, logger *zap.Logger) *Screener {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Screener{
		ranker:  ranker,
		lexicon: lexicon,
		logger:  logger,
	}
}

// Screen ranks the candidates against the query and returns the topK matches
// with their justification signals. Candidates keep their extracted skills
// and tenure after the call.
func (s *Screener) Screen(ctx context.Context, query string, candidates *dataset.Candidates, topK int) (*Report, error) {
	if s.ranker == nil {
		return nil, errors.New("ranker is required")
	}
	if candidates == nil || candidates.Len() == 0 {
		return nil, errors.New("at least one candidate is required")
	}

	results, err := s.ranker.Rank(ctx, query, candidates.Texts(), topK)
	if err != nil {
		return nil, err
	}

	// Skills and tenure are inferred from the raw text. Normalizing first
	// would drop stopwords inside lexicon phrases ("ruby on rails") and the
	// digits the tenure pattern needs.
	report := &Report{
		Matches:     make([]Match, 0, len(results)),
		QuerySkills: extract.Skills(query, s.lexicon),
	}
	report.QueryExperienceYears, report.QueryHasExperience = extract.Years(query)

	matched := make(map[string]struct{})
	for _, result := range results {
		candidate := candidates.Items[result.Index]
		candidate.Skills = extract.Skills(candidate.Text, s.lexicon)
		candidate.ExperienceYears, candidate.HasExperience = extract.Years(candidate.Text)

		for _, skill := range candidate.Skills {
			matched[skill] = struct{}{}
		}

		report.Matches = append(report.Matches, Match{Candidate: candidate, Score: result.Score})
	}

	report.MatchedSkills = sortedSet(matched)
	report.OverlapSkills = extract.Overlap(report.QuerySkills, report.MatchedSkills)

	s.logger.Info("screening finished",
		zap.Int("candidates", candidates.Len()),
		zap.Int("matches", len(report.Matches)),
		zap.Strings("overlap_skills", report.OverlapSkills),
	)

	return report, nil
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for entry := range set {
		out = append(out, entry)
	}
	sort.Strings(out)
	return out
}
