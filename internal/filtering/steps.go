package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cvscreen/cv-screener/internal/dataset"
	"github.com/cvscreen/cv-screener/internal/extract"
)

type emptyTextFilter struct{}

// NewEmptyText creates a filter that removes candidates whose text
// normalizes to nothing. They carry no signal and would embed degenerately.
func NewEmptyText() Filter {
	return &emptyTextFilter{}
}

func (f *emptyTextFilter) Name() string { return "empty_text" }

func (f *emptyTextFilter) Disable(string) {}

func (f *emptyTextFilter) IsEnabled() bool { return true }

func (f *emptyTextFilter) Validate(*Config) error { return nil }

func (f *emptyTextFilter) Apply(_ context.Context, deps Deps, c *dataset.Candidates) (*dataset.Candidates, Step, error) {
	initial := c.Len()

	kept := make([]*dataset.Candidate, 0, initial)
	var excluded []string
	for _, candidate := range c.Items {
		if deps.Normalizer.Normalize(candidate.Text) == "" {
			excluded = append(excluded, candidate.ID)
			continue
		}
		kept = append(kept, candidate)
	}
	c.Items = kept

	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding candidates with no usable text",
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *emptyTextFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: true}
}

type minExperienceFilter struct {
	disabled bool
	reason   string
	years    int
}

// NewMinExperience creates a filter that removes candidates stating fewer
// years of experience than configured. Candidates with no stated tenure are
// kept; absence of a mention is not a signal.
func NewMinExperience() Filter {
	return &minExperienceFilter{}
}

func (f *minExperienceFilter) Name() string { return "min_experience" }

func (f *minExperienceFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minExperienceFilter) IsEnabled() bool { return !f.disabled }

func (f *minExperienceFilter) Validate(cfg *Config) error {
	f.years = 0
	if cfg != nil {
		f.years = cfg.MinExperienceYears
	}
	if f.years < 0 {
		return fmt.Errorf("minimum experience years must not be negative, got %d", f.years)
	}
	return nil
}

func (f *minExperienceFilter) Apply(_ context.Context, deps Deps, c *dataset.Candidates) (*dataset.Candidates, Step, error) {
	initial := c.Len()
	if f.years == 0 {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	kept := make([]*dataset.Candidate, 0, initial)
	var excluded []string
	for _, candidate := range c.Items {
		years, found := extract.Years(candidate.Text)
		if found && years < f.years {
			excluded = append(excluded, candidate.ID)
			continue
		}
		kept = append(kept, candidate)
	}
	c.Items = kept

	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding candidates below minimum experience",
			zap.Int("minimum_years", f.years),
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *minExperienceFilter) Status() Status {
	details := map[string]string{
		"minimum_years": strconv.Itoa(f.years),
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type requiredSkillsFilter struct {
	disabled bool
	reason   string
	skills   []string
}

// NewRequiredSkills creates a filter that removes candidates missing any of
// the configured must-have skills.
func NewRequiredSkills() Filter {
	return &requiredSkillsFilter{}
}

func (f *requiredSkillsFilter) Name() string { return "required_skills" }

func (f *requiredSkillsFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *requiredSkillsFilter) IsEnabled() bool { return !f.disabled }

func (f *requiredSkillsFilter) Validate(cfg *Config) error {
	f.skills = nil
	if cfg == nil {
		return nil
	}
	for _, skill := range cfg.RequiredSkills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		f.skills = append(f.skills, skill)
	}
	return nil
}

func (f *requiredSkillsFilter) Apply(_ context.Context, deps Deps, c *dataset.Candidates) (*dataset.Candidates, Step, error) {
	initial := c.Len()
	if len(f.skills) == 0 {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	required := extract.NewLexicon(f.skills...)

	kept := make([]*dataset.Candidate, 0, initial)
	var excluded []string
	for _, candidate := range c.Items {
		matched := extract.Skills(candidate.Text, required)
		if len(matched) < len(required) {
			excluded = append(excluded, candidate.ID)
			continue
		}
		kept = append(kept, candidate)
	}
	c.Items = kept

	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding candidates missing required skills",
			zap.Strings("required_skills", f.skills),
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *requiredSkillsFilter) Status() Status {
	details := map[string]string{}
	if len(f.skills) > 0 {
		details["required_skills"] = strings.Join(f.skills, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type excludeFileFilter struct {
	path string
}

// NewExcludeFile creates a filter that removes candidates contained in the
// configured exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(string) {}

func (f *excludeFileFilter) IsEnabled() bool { return true }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, c *dataset.Candidates) (*dataset.Candidates, Step, error) {
	initial := c.Len()
	if f.path == "" {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	excluded, err := dataset.GetExcludedFromFile(f.path)
	if err != nil {
		return c, Step{}, fmt.Errorf("getting excluded candidates from file: %w", err)
	}

	removed := c.Exclude(dataset.CandidateIDField, excluded.IDs())
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding candidates based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(removed), Left: c.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
