// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package title turns candidate titles into filesystem-safe names and decides
// whether a metadata title can be trusted.
package title

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxLength is the maximum number of runes in a sanitized title.
const MaxLength = 128

// MaxBytes caps the UTF-8 length of a sanitized title so that the title plus
// ".pdf" fits the 255-byte name limit of common filesystems.
const MaxBytes = 240

// forbidden lists the characters removed from candidate titles. Path
// separators and shell-hostile punctuation are illegal on at least one
// common filesystem; the comma is dropped to keep names list-friendly.
const forbidden = `\/*?:"<>|,`

var trailingDots = regexp.MustCompile(`\.\.+$`)

// Sanitize maps an arbitrary candidate title to a filesystem-safe name of at
// most MaxLength runes and MaxBytes bytes. It is total and idempotent; an
// empty result means the candidate had nothing usable in it.
func Sanitize(s string) string {
	out, _ := SanitizeReport(s)
	return out
}

// SanitizeReport is Sanitize that also reports whether the title had to be
// truncated, so callers can warn about it.
func SanitizeReport(s string) (string, bool) {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbidden, r) {
			return -1
		}
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)

	// Collapses whitespace runs and trims both ends.
	s = strings.Join(strings.Fields(s), " ")

	truncated := false
	if runes := []rune(s); len(runes) > MaxLength {
		s = string(runes[:MaxLength])
		truncated = true
	}
	if len(s) > MaxBytes {
		s = truncateBytes(s, MaxBytes)
		truncated = true
	}

	s = strings.TrimSpace(s)
	return trailingDots.ReplaceAllString(s, "."), truncated
}

// truncateBytes cuts s to at most n bytes without splitting a rune.
func truncateBytes(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// IsValid reports whether a metadata title is usable as-is. Absent titles
// are passed as the empty string.
func IsValid(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if strings.Trim(s, "?") == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}
