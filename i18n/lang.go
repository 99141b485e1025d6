package i18n

import (
	"golang.org/x/text/language"
)

// Lang is a supported response language.
type Lang string

const (
	LangEN Lang = "en"
	LangAR Lang = "ar"

	DefaultLang = LangEN
)

var (
	supported = []language.Tag{language.English, language.Arabic}
	matcher   = language.NewMatcher(supported)
)

// ParseAcceptLanguage picks the best supported language for an
// Accept-Language header value. Unknown or empty input yields DefaultLang.
func ParseAcceptLanguage(header string) Lang {
	if header == "" {
		return DefaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultLang
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLang
	}
	if supported[idx] == language.Arabic {
		return LangAR
	}
	return LangEN
}

// Text holds the per-language variants of one field.
type Text struct {
	En string
	Ar string
}

// In returns the variant for lang, falling back to English when the Arabic
// variant is empty.
func (t Text) In(lang Lang) string {
	switch lang {
	case LangAR:
		if t.Ar != "" {
			return t.Ar
		}
		return t.En
	default:
		return t.En
	}
}

// Named is implemented by entities with a bilingual name.
type Named interface {
	NameText() Text
}

// Localized returns the entity name in lang.
func Localized(e Named, lang Lang) string {
	return e.NameText().In(lang)
}

// ContextKey is the request-context key holding the resolved Lang.
const ContextKey = "lang"

type getter interface {
	Get(key string) (any, bool)
}

// FromContext reads the language stored by the language middleware.
func FromContext(c getter) Lang {
	if v, ok := c.Get(ContextKey); ok {
		if lang, ok := v.(Lang); ok {
			return lang
		}
	}
	return DefaultLang
}
