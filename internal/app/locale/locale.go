package locale

import (
	"strings"

	"github.com/samber/lo"

	"transcribe-translate/internal/errors"
)

// Profile holds the resolved recognition and translation language
// parameters for a source country. Immutable once loaded.
type Profile struct {
	// Key is the canonical lowercase table key ("usa", "india", ...)
	Key           string
	CountryName   string
	CountryCode   string
	SpeechLocale  string
	TranslateFrom string
	TranslateTo   string
	LanguageName  string
}

// profiles is the static lookup table. Order is significant: substring
// matching returns the first profile whose name contains the token.
var profiles = []Profile{
	{
		Key:           "india",
		CountryName:   "India",
		CountryCode:   "IN",
		SpeechLocale:  "hi-IN",
		TranslateFrom: "hi",
		TranslateTo:   "en",
		LanguageName:  "Hindi",
	},
	{
		Key:           "usa",
		CountryName:   "United States",
		CountryCode:   "US",
		SpeechLocale:  "en-US",
		TranslateFrom: "en",
		TranslateTo:   "en",
		LanguageName:  "English",
	},
	{
		Key:           "spain",
		CountryName:   "Spain",
		CountryCode:   "ES",
		SpeechLocale:  "es-ES",
		TranslateFrom: "es",
		TranslateTo:   "en",
		LanguageName:  "Spanish",
	},
	{
		Key:           "france",
		CountryName:   "France",
		CountryCode:   "FR",
		SpeechLocale:  "fr-FR",
		TranslateFrom: "fr",
		TranslateTo:   "en",
		LanguageName:  "French",
	},
	{
		Key:           "germany",
		CountryName:   "Germany",
		CountryCode:   "DE",
		SpeechLocale:  "de-DE",
		TranslateFrom: "de",
		TranslateTo:   "en",
		LanguageName:  "German",
	},
	{
		Key:           "italy",
		CountryName:   "Italy",
		CountryCode:   "IT",
		SpeechLocale:  "it-IT",
		TranslateFrom: "it",
		TranslateTo:   "en",
		LanguageName:  "Italian",
	},
	{
		Key:           "japan",
		CountryName:   "Japan",
		CountryCode:   "JP",
		SpeechLocale:  "ja-JP",
		TranslateFrom: "ja",
		TranslateTo:   "en",
		LanguageName:  "Japanese",
	},
	{
		Key:           "china",
		CountryName:   "China",
		CountryCode:   "CN",
		SpeechLocale:  "zh-CN",
		TranslateFrom: "zh",
		TranslateTo:   "en",
		LanguageName:  "Chinese (Simplified)",
	},
	{
		Key:           "brazil",
		CountryName:   "Brazil",
		CountryCode:   "BR",
		SpeechLocale:  "pt-BR",
		TranslateFrom: "pt",
		TranslateTo:   "en",
		LanguageName:  "Portuguese (Brazil)",
	},
	{
		Key:           "russia",
		CountryName:   "Russia",
		CountryCode:   "RU",
		SpeechLocale:  "ru-RU",
		TranslateFrom: "ru",
		TranslateTo:   "en",
		LanguageName:  "Russian",
	},
}

// matcher reports whether a lowercase token selects a profile
type matcher func(token string, p Profile) bool

// matchers are evaluated in sequence over the whole table. A later
// strategy is only tried after the previous one misses every profile,
// so an exact key beats a code beats a name substring regardless of
// table order.
var matchers = []matcher{
	func(token string, p Profile) bool { return p.Key == token },
	func(token string, p Profile) bool { return strings.ToLower(p.CountryCode) == token },
	func(token string, p Profile) bool { return strings.Contains(strings.ToLower(p.CountryName), token) },
}

// Resolve maps a caller-supplied country token to a Profile. The token may
// be a country name, an ISO code, or a substring of a country name, all
// case-insensitive. A miss returns an unsupported-country error carrying
// the full list of supported country names.
func Resolve(token string) (Profile, error) {
	lowered := strings.ToLower(strings.TrimSpace(token))

	for _, match := range matchers {
		for _, p := range profiles {
			if match(lowered, p) {
				return p, nil
			}
		}
	}

	return Profile{}, errors.NewUnsupportedCountryError(token, SupportedCountries())
}

// SupportedCountries returns all supported country names in table order
func SupportedCountries() []string {
	return lo.Map(profiles, func(p Profile, _ int) string { return p.CountryName })
}

// SupportedCountryCodes returns all supported country codes in table order
func SupportedCountryCodes() []string {
	return lo.Map(profiles, func(p Profile, _ int) string { return p.CountryCode })
}
