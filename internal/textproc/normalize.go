package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	multiSpace   = regexp.MustCompile(` {2,}`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
	lineEndings  = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// Normalize canonicalizes raw document text for every downstream stage.
// The result is stable under repeated application.
func Normalize(raw string) string {
	text := norm.NFKC.String(raw)
	text = lineEndings.Replace(text)
	// Stripping can leave composable neighbours (Hangul jamo split by
	// punctuation), so compose again and strip whatever that yields.
	text = strings.Map(keepRune, text)
	text = strings.Map(keepRune, norm.NFKC.String(text))
	text = multiSpace.ReplaceAllString(text, " ")
	text = multiNewline.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func keepRune(r rune) rune {
	if isWordRune(r) || unicode.IsSpace(r) {
		return r
	}
	switch r {
	case '.', ',', ';', ':', '(', ')', '-', '@':
		return r
	}
	return -1
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// WordCount counts whitespace-separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
