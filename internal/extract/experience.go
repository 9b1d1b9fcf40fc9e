package extract

import (
	"regexp"
	"strconv"
)

// yearsPattern matches explicit tenure mentions like "3+ years", "5 years of
// experience", "2 yrs" or "8+yrs".
var yearsPattern = regexp.MustCompile(`(?i)(\d{1,2})\s*\+?\s*(?:years?|yrs?)`)

// Years scans the text for stated years of experience and returns the
// maximum figure found. The second return value is false when the text
// contains no such mention.
func Years(text string) (int, bool) {
	if text == "" {
		return 0, false
	}

	matches := yearsPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0, false
	}

	max := 0
	for _, match := range matches {
		value, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if value > max {
			max = value
		}
	}

	return max, true
}
