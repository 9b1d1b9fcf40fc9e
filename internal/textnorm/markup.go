package textnorm

import (
	"strings"

	"golang.org/x/net/html"
)

type htmlStripper struct{}

// NewMarkupStripper returns a stripper that removes HTML-like tags and keeps
// the inner text.
func NewMarkupStripper() MarkupStripper {
	return htmlStripper{}
}

func (htmlStripper) Strip(text string) string {
	// Fast path: nothing that looks like markup.
	if !strings.ContainsRune(text, '<') {
		return text
	}

	tokenizer := html.NewTokenizer(strings.NewReader(text))

	var builder strings.Builder
	skipDepth := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// The tokenizer is best-effort and ends every input with an
			// error token, so reaching it just means we are done.
			return builder.String()
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteByte(' ')
			}
			builder.Write(tokenizer.Text())
		}
	}
}

// PassthroughStripper leaves text unchanged. It is the degraded mode used
// when markup stripping is unavailable or unwanted.
type PassthroughStripper struct{}

func (PassthroughStripper) Strip(text string) string { return text }
