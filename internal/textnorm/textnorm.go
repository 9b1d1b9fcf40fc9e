// Package textnorm turns raw extracted text into a canonical token stream
// suitable for embedding and keyword matching.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

var urlPattern = regexp.MustCompile(`http\S+|www\S+`)

// ContractionExpander rewrites English contractions into their long forms.
type ContractionExpander interface {
	Expand(text string) string
}

// MarkupStripper removes markup tags from text, keeping the inner text.
type MarkupStripper interface {
	Strip(text string) string
}

// Config holds the resources a Normalizer needs. It is assembled once at
// startup and read-only afterwards.
type Config struct {
	Stopwords Stopwords
	Expander  ContractionExpander
	Stripper  MarkupStripper
}

// Normalizer cleans raw text into lowercase alphabetic tokens separated by
// single spaces, with stopwords removed. It holds no cross-call state and is
// safe for concurrent use.
type Normalizer struct {
	stopwords Stopwords
	expander  ContractionExpander
	stripper  MarkupStripper
}

// New creates a Normalizer from the provided config. Missing resources fall
// back to the built-in contraction table, the markup stripper and the fixed
// stopword set.
func New(cfg Config) *Normalizer {
	n := &Normalizer{
		stopwords: cfg.Stopwords,
		expander:  cfg.Expander,
		stripper:  cfg.Stripper,
	}
	if n.stopwords == nil {
		n.stopwords = FallbackStopwords()
	}
	if n.expander == nil {
		n.expander = NewContractionExpander()
	}
	if n.stripper == nil {
		n.stripper = NewMarkupStripper()
	}
	return n
}

// NewDefault creates a Normalizer with all built-in resources.
func NewDefault() *Normalizer {
	return New(Config{})
}

// Normalize cleans the text. The step order matters: contractions must be
// expanded before punctuation is dropped, and URLs must be removed before
// non-letter characters are blanked out. Every step degrades to an identity
// transform, so Normalize never fails and always returns a string.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = n.expander.Expand(text)
	text = n.stripper.Strip(text)
	text = urlPattern.ReplaceAllString(text, " ")

	// Drop anything outside the ASCII range.
	text = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, text)

	// Keep only lowercase letters and whitespace.
	text = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)

	tokens := strings.Fields(text)
	kept := tokens[:0]
	for _, token := range tokens {
		if n.stopwords.Contains(token) {
			continue
		}
		kept = append(kept, token)
	}

	return strings.Join(kept, " ")
}
