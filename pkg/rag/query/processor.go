package query

import (
	"strings"
	"unicode"
)

// ProcessedQuery is the normalized form of a raw user query plus a
// keyword-only variant used as the preferred search text.
type ProcessedQuery struct {
	Normalized string
	Keyword    string
}

// Processor normalizes raw query text and extracts a keyword-focused
// variant for similarity search. Both transforms are pure functions of the
// input string.
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

// stopWords are dropped during keyword extraction. The list is intentionally
// small; over-aggressive filtering hurts short queries more than it helps.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"do": true, "does": true, "did": true,
	"i": true, "me": true, "my": true, "you": true, "your": true,
	"we": true, "us": true, "our": true, "it": true, "its": true,
	"what": true, "which": true, "who": true, "how": true,
	"when": true, "where": true, "why": true,
	"can": true, "could": true, "would": true, "should": true,
	"tell": true, "about": true, "please": true, "give": true,
	"of": true, "for": true, "to": true, "in": true, "on": true,
	"at": true, "with": true, "and": true, "or": true, "any": true,
	"some": true, "there": true, "this": true, "that": true,
	"have": true, "has": true, "had": true, "want": true, "know": true,
	"more": true, "info": true, "information": true,
}

// Process returns the normalized and keyword forms of raw. It never fails:
// empty or whitespace-only input yields empty outputs, and processing an
// already-normalized string returns it unchanged.
func (p *Processor) Process(raw string) ProcessedQuery {
	normalized := Normalize(raw)
	if normalized == "" {
		return ProcessedQuery{}
	}

	var keywords []string
	for _, word := range strings.Fields(normalized) {
		if !stopWords[word] {
			keywords = append(keywords, word)
		}
	}

	return ProcessedQuery{
		Normalized: normalized,
		Keyword:    strings.Join(keywords, " "),
	}
}

// Normalize lowercases, strips punctuation, and collapses whitespace.
// Idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for _, r := range raw {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			// Punctuation becomes a space so "C++/Go" splits into tokens.
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
