// Package i18n provides locale-aware printers for CLI output.
package i18n

import (
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLang is the fallback language
var DefaultLang = language.English

// SupportedLangs are the languages CLI output is localized for.
var SupportedLangs = []language.Tag{
	language.English,
	language.Persian,
}

var matcher = language.NewMatcher(SupportedLangs)

// MatchLanguage returns the best supported match for a locale string such
// as "fa_IR" or "en-US".
func MatchLanguage(locale string) language.Tag {
	locale = strings.ReplaceAll(locale, "_", "-")
	tag, err := language.Parse(locale)
	if err != nil {
		return DefaultLang
	}
	matched, _, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultLang
	}
	base, _ := matched.Base()
	return language.Make(base.String())
}

// NewCLIPrinter returns a printer for the system's locale (from env vars)
func NewCLIPrinter() *message.Printer {
	lang := os.Getenv("LC_ALL")
	if lang == "" {
		lang = os.Getenv("LANG")
	}
	if lang == "" {
		return message.NewPrinter(DefaultLang)
	}

	// Strip encoding (e.g. .UTF-8) if present
	if i := strings.Index(lang, "."); i != -1 {
		lang = lang[:i]
	}
	return message.NewPrinter(MatchLanguage(lang))
}
