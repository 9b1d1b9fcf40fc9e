package textnorm

import (
	"bufio"
	"os"
	"strings"
)

// Stopwords is a set of function words removed during normalization.
type Stopwords map[string]struct{}

// fallbackStopwords is the minimal built-in set used when no richer list is
// configured.
var fallbackStopwords = []string{
	"a", "an", "the", "and", "or", "of", "to", "in", "for", "on",
	"with", "by", "at", "from", "as", "is", "are", "be", "this", "that", "it",
}

// FallbackStopwords returns the fixed built-in stopword set.
func FallbackStopwords() Stopwords {
	set := make(Stopwords, len(fallbackStopwords))
	for _, word := range fallbackStopwords {
		set[word] = struct{}{}
	}
	return set
}

// LoadStopwords reads a stopword list from a file, one word per line,
// lowercased and trimmed. When the file is missing or unreadable it returns
// the built-in fallback set. Loading never fails.
func LoadStopwords(path string) Stopwords {
	file, err := os.Open(path)
	if err != nil {
		return FallbackStopwords()
	}
	defer file.Close()

	set := make(Stopwords)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		set[word] = struct{}{}
	}

	if scanner.Err() != nil || len(set) == 0 {
		return FallbackStopwords()
	}

	return set
}

// Contains reports whether the token is a stopword.
func (s Stopwords) Contains(token string) bool {
	_, ok := s[token]
	return ok
}
