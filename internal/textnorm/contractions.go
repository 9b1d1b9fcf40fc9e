package textnorm

import "regexp"

// contractionPattern matches lowercase apostrophe words like "don't" or
// "i've". Expansion runs after lowercasing, so uppercase forms never occur.
var contractionPattern = regexp.MustCompile(`[a-z]+'[a-z]+`)

// contractionTable covers the common English contractions. Unknown
// apostrophe words pass through unchanged.
var contractionTable = map[string]string{
	"ain't":     "am not",
	"aren't":    "are not",
	"can't":     "cannot",
	"couldn't":  "could not",
	"didn't":    "did not",
	"doesn't":   "does not",
	"don't":     "do not",
	"hadn't":    "had not",
	"hasn't":    "has not",
	"haven't":   "have not",
	"he'd":      "he would",
	"he'll":     "he will",
	"he's":      "he is",
	"i'd":       "i would",
	"i'll":      "i will",
	"i'm":       "i am",
	"i've":      "i have",
	"isn't":     "is not",
	"it'd":      "it would",
	"it'll":     "it will",
	"it's":      "it is",
	"let's":     "let us",
	"mightn't":  "might not",
	"mustn't":   "must not",
	"shan't":    "shall not",
	"she'd":     "she would",
	"she'll":    "she will",
	"she's":     "she is",
	"shouldn't": "should not",
	"that's":    "that is",
	"there's":   "there is",
	"they'd":    "they would",
	"they'll":   "they will",
	"they're":   "they are",
	"they've":   "they have",
	"wasn't":    "was not",
	"we'd":      "we would",
	"we'll":     "we will",
	"we're":     "we are",
	"we've":     "we have",
	"weren't":   "were not",
	"what's":    "what is",
	"won't":     "will not",
	"wouldn't":  "would not",
	"you'd":     "you would",
	"you'll":    "you will",
	"you're":    "you are",
	"you've":    "you have",
}

type tableExpander struct {
	table map[string]string
}

// NewContractionExpander returns an expander backed by the built-in table.
func NewContractionExpander() ContractionExpander {
	return &tableExpander{table: contractionTable}
}

func (e *tableExpander) Expand(text string) string {
	return contractionPattern.ReplaceAllStringFunc(text, func(match string) string {
		if expanded, ok := e.table[match]; ok {
			return expanded
		}
		return match
	})
}

// PassthroughExpander leaves text unchanged. It is the degraded mode used
// when contraction expansion is unavailable or unwanted.
type PassthroughExpander struct{}

func (PassthroughExpander) Expand(text string) string { return text }
