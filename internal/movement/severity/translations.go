package severity

import (
	textutil "seawatch/pkg/platform/strings"
)

// Translations maps a country name as spelled by a feed to the spelling used
// by the blacklist. Keys are NameKey-folded.
type Translations map[string]string

// NewTranslations builds a table from feed spelling → blacklist spelling pairs.
func NewTranslations(pairs map[string]string) Translations {
	t := make(Translations, len(pairs))
	for from, to := range pairs {
		t[textutil.NameKey(from)] = to
	}
	return t
}

// Translate returns the blacklist spelling of name when it differs.
func (t Translations) Translate(name string) (string, bool) {
	to, ok := t[textutil.NameKey(name)]
	if !ok || textutil.NameKey(to) == textutil.NameKey(name) {
		return "", false
	}
	return to, true
}

// DefaultTranslations covers ISO 3166 formal names and common feed
// spellings of countries the blacklist lists under a short name.
func DefaultTranslations() Translations {
	return NewTranslations(map[string]string{
		"Iran, Islamic Republic of":              "Iran",
		"Islamic Republic of Iran":               "Iran",
		"Iran (Islamic Republic of)":             "Iran",
		"Korea, Democratic People's Republic of": "North Korea",
		"Democratic People's Republic of Korea":  "North Korea",
		"DPRK":                                   "North Korea",
		"Korea, North":                           "North Korea",
		"Korea, Republic of":                     "South Korea",
		"Republic of Korea":                      "South Korea",
		"Korea, South":                           "South Korea",
		"Russian Federation":                     "Russia",
		"Syrian Arab Republic":                   "Syria",
		"Venezuela, Bolivarian Republic of":      "Venezuela",
		"Bolivia, Plurinational State of":        "Bolivia",
		"Lao People's Democratic Republic":       "Laos",
		"Viet Nam":                               "Vietnam",
		"Moldova, Republic of":                   "Moldova",
		"Tanzania, United Republic of":           "Tanzania",
		"Congo, The Democratic Republic of the":  "Democratic Republic of the Congo",
		"Congo, Democratic Republic":             "Democratic Republic of the Congo",
		"Cote d'Ivoire":                          "Ivory Coast",
		"Myanmar":                                "Burma",
		"Turkiye":                                "Turkey",
		"Palestine, State of":                    "Palestine",
		"Micronesia, Federated States of":        "Micronesia",
		"Brunei Darussalam":                      "Brunei",
		"Cabo Verde":                             "Cape Verde",
		"Eswatini":                               "Swaziland",
		"Czechia":                                "Czech Republic",
		"Taiwan, Province of China":              "Taiwan",
		"Holy See (Vatican City State)":          "Vatican City",
		"United States":                          "United States of America",
		"USA":                                    "United States of America",
		"UK":                                     "United Kingdom",
		"Great Britain":                          "United Kingdom",
		"UAE":                                    "United Arab Emirates",
		"Crimea":                                 "Ukraine (Crimea)",
	})
}
