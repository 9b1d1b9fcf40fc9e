package document

import (
	"regexp"
	"strings"
)

var (
	rtfParagraphs  = regexp.MustCompile(`\\(?:par|line)\b`)
	rtfControls    = regexp.MustCompile(`\\[a-z]+-?\d* ?`)
	rtfHexEscapes  = regexp.MustCompile(`\\'[0-9a-fA-F]{2}`)
	rtfSkipGroups  = regexp.MustCompile(`{\\(?:fonttbl|colortbl|stylesheet|info|\*)[^{}]*(?:{[^{}]*}[^{}]*)*}`)
	rtfBraceChars  = strings.NewReplacer("{", "", "}", "")
	rtfEscapeChars = strings.NewReplacer(`\\`, `\`, `\{`, "{", `\}`, "}")
)

// readRTF strips RTF control words and groups, keeping the visible text.
// This is a deliberately rough pass: resumes in RTF are rare and any
// recovered text beats an empty document.
func readRTF(data []byte) string {
	text := string(data)
	if !strings.HasPrefix(strings.TrimSpace(text), `{\rtf`) {
		return normalizeWhitespace(text)
	}

	text = rtfSkipGroups.ReplaceAllString(text, " ")
	text = rtfParagraphs.ReplaceAllString(text, "\n")
	text = rtfHexEscapes.ReplaceAllString(text, " ")
	text = rtfEscapeChars.Replace(text)
	text = rtfControls.ReplaceAllString(text, " ")
	text = rtfBraceChars.Replace(text)

	return normalizeWhitespace(text)
}
