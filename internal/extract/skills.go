package extract

import (
	"sort"
	"strings"
)

// Skills returns the lexicon entries found in the text as a lexicographically
// sorted list. Multi-word phrases are checked before single words, longest
// first, so a phrase match never loses to its constituent words; both can
// still appear in the result. Matching is whole-word: the text is padded with
// spaces and phrases are searched with space delimiters.
func Skills(text string, lexicon Lexicon) []string {
	if text == "" || len(lexicon) == 0 {
		return []string{}
	}

	padded := " " + strings.ToLower(text) + " "

	var multi []string
	var single []string
	for entry := range lexicon {
		if strings.Contains(entry, " ") {
			multi = append(multi, entry)
		} else {
			single = append(single, entry)
		}
	}
	sort.Slice(multi, func(i, j int) bool { return len(multi[i]) > len(multi[j]) })

	found := make(map[string]struct{})
	for _, phrase := range multi {
		if strings.Contains(padded, " "+phrase+" ") {
			found[phrase] = struct{}{}
		}
	}

	tokens := make(map[string]struct{})
	for _, token := range strings.Fields(padded) {
		tokens[token] = struct{}{}
	}
	for _, word := range single {
		if _, ok := tokens[word]; ok {
			found[word] = struct{}{}
		}
	}

	matched := make([]string, 0, len(found))
	for entry := range found {
		matched = append(matched, entry)
	}
	sort.Strings(matched)

	return matched
}

// Overlap returns the sorted intersection of two skill lists.
func Overlap(a, b []string) []string {
	set := make(map[string]struct{}, len(a))
	for _, skill := range a {
		set[skill] = struct{}{}
	}

	overlap := make([]string, 0)
	seen := make(map[string]struct{})
	for _, skill := range b {
		if _, ok := set[skill]; !ok {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		overlap = append(overlap, skill)
	}
	sort.Strings(overlap)

	return overlap
}
