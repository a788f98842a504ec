// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package title

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var bracketChars = regexp.MustCompile(`[{}\[\]()*]`)

// smallWords stay lower-case when a title is re-cased.
var smallWords = map[string]bool{
	"of": true, "and": true, "in": true, "on": true, "at": true, "to": true,
}

// Normalize re-cases a shouting or inconsistently cased title: brackets and
// asterisks are dropped, repeated trailing periods collapse to one, and each
// word is capitalized except for a short list of connectives.
func Normalize(s string) string {
	s = bracketChars.ReplaceAllString(s, "")
	s = trailingDots.ReplaceAllString(strings.TrimSpace(s), ".")

	words := strings.Fields(s)
	for i, w := range words {
		lower := strings.ToLower(w)
		if smallWords[lower] {
			words[i] = lower
			continue
		}
		words[i] = capitalize(lower)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}
