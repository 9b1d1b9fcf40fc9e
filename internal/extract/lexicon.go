// Package extract derives lightweight structured signals from text: known
// skill phrases and explicitly stated years of experience.
package extract

import (
	"bufio"
	"os"
	"strings"
)

// Lexicon is a set of lowercase skill phrases. Entries may be single words
// or multi-word phrases. A lexicon is loaded once and read-only afterwards.
type Lexicon map[string]struct{}

// NewLexicon builds a lexicon from the given entries, lowercased and trimmed.
func NewLexicon(entries ...string) Lexicon {
	lexicon := make(Lexicon, len(entries))
	for _, entry := range entries {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		lexicon[entry] = struct{}{}
	}
	return lexicon
}

// LoadLexicon reads a skill lexicon from a file, one phrase per line. A
// missing or unreadable file yields an empty lexicon, never an error.
func LoadLexicon(path string) Lexicon {
	file, err := os.Open(path)
	if err != nil {
		return Lexicon{}
	}
	defer file.Close()

	lexicon := make(Lexicon)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		entry := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if entry == "" {
			continue
		}
		lexicon[entry] = struct{}{}
	}

	if scanner.Err() != nil {
		return Lexicon{}
	}

	return lexicon
}
