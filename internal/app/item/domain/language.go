package domain

import "fmt"

// Language tags localized display text.
type Language int

const (
	LanguageDe Language = iota
	LanguageEn
)

func (l Language) String() string {
	switch l {
	case LanguageDe:
		return "de"
	case LanguageEn:
		return "en"
	default:
		return "unknown"
	}
}

// ParseLanguage maps an ISO 639-1 code onto a Language.
func ParseLanguage(code string) (Language, error) {
	switch code {
	case "de":
		return LanguageDe, nil
	case "en":
		return LanguageEn, nil
	default:
		return 0, fmt.Errorf("unsupported language code %q", code)
	}
}

// LocalizedText is a piece of display text together with its language,
// as scraped from the source shop.
type LocalizedText struct {
	Language Language
	Text     string
}
