package entity

import "strings"

// Language represents supported language codes using ISO-style abbreviations.
type Language string

const (
	LanguageUnspecified Language = ""
	LanguagePortuguese  Language = "pt"
	LanguageRussian     Language = "ru"
	LanguageEnglish     Language = "en"
	LanguageSpanish     Language = "es"
	LanguageFrench      Language = "fr"
)

// Code returns the lowercase language code (without defaulting).
func (l Language) Code() string {
	return strings.TrimSpace(string(l))
}

// CodeOrDefault returns the language code, falling back to Portuguese
// (the study target) when unspecified.
func (l Language) CodeOrDefault() string {
	if l.Code() == "" {
		return string(LanguagePortuguese)
	}
	return l.Code()
}

// ParseLanguage converts an arbitrary string into a supported Language value.
func ParseLanguage(code string) Language {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "pt", "pt-pt", "pt-br":
		return LanguagePortuguese
	case "ru":
		return LanguageRussian
	case "en":
		return LanguageEnglish
	case "es":
		return LanguageSpanish
	case "fr":
		return LanguageFrench
	default:
		return LanguageUnspecified
	}
}

// NormalizeWordToken produces the canonical lookup key used by the
// global media cache: lowercased, trimmed.
func NormalizeWordToken(word string) string {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return ""
	}
	return strings.ToLower(trimmed)
}
