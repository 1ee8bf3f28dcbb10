package textproc

import (
	"fmt"
	"strings"
	"unicode"
)

// Normalize canonicalizes raw text for the classification pipeline: the
// input is stringified, lowercased, stripped of everything outside
// [a-z0-9] and whitespace, and whitespace runs are collapsed to single
// spaces with no leading or trailing space.
//
// Training-corpus preparation and prediction both go through this exact
// function; the two sides must never diverge, or the vectorizer sees a
// vocabulary the predictor cannot reproduce.
func Normalize(input any) string {
	text, ok := input.(string)
	if !ok {
		text = fmt.Sprint(input)
	}

	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	pendingSpace := false
	for _, r := range text {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(r)
		case unicode.IsSpace(r):
			if b.Len() > 0 {
				pendingSpace = true
			}
		}
		// Anything else (punctuation, accents, emoji, non-Latin scripts)
		// is dropped outright.
	}

	return b.String()
}
