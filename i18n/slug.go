package i18n

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slugify builds a URL slug from English or Arabic text: NFKD normalized,
// lower-cased, combining marks dropped, whitespace runs turned into single
// hyphens, and anything other than letters, digits, '_' and '-' removed.
func Slugify(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range norm.NFKD.String(strings.ToLower(text)) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsSpace(r) || r == '-':
			pendingHyphen = true
		case r == '_' || unicode.IsDigit(r) || isSlugLetter(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isSlugLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || unicode.In(r, unicode.Arabic) && unicode.IsLetter(r)
}
