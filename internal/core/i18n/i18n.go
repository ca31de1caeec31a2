// Package i18n holds the recognized display languages and their interface
// string tables.
package i18n

import (
	"os"
	"strings"
)

// Language is a recognized display language.
type Language struct {
	Code string // BCP-47 primary subtag, e.g. "en"
	Name string // native name handed to providers, e.g. "Türkçe"
}

// Supported lists the recognized display languages in cycling order.
var Supported = []Language{
	{Code: "en", Name: "English"},
	{Code: "tr", Name: "Türkçe"},
	{Code: "es", Name: "Español"},
	{Code: "de", Name: "Deutsch"},
	{Code: "fr", Name: "Français"},
}

// Default is the language used when nothing better can be determined.
var Default = Supported[0]

// ByCode looks up a supported language by its code.
func ByCode(code string) (Language, bool) {
	for _, l := range Supported {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Next returns the language after l in cycling order.
func Next(l Language) Language {
	for i, s := range Supported {
		if s.Code == l.Code {
			return Supported[(i+1)%len(Supported)]
		}
	}
	return Default
}

// Detect picks a default display language from the process locale
// (LC_ALL, then LANG), falling back to English.
func Detect() Language {
	for _, env := range []string{"LC_ALL", "LANG"} {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		// e.g. "tr_TR.UTF-8" -> "tr"
		code := strings.SplitN(v, "_", 2)[0]
		code = strings.SplitN(code, ".", 2)[0]
		if l, ok := ByCode(strings.ToLower(code)); ok {
			return l
		}
	}
	return Default
}
