package calendar

import (
	"strings"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

const DefaultLocale = "es-MX"

// formatLocale maps a BCP 47 tag ("es-MX") onto one of the locales monday ships.
// An exact language_REGION match wins, then any region of the same language,
// then en_US. Unparseable tags fall back to en_US.
func formatLocale(tag string) monday.Locale {
	t, err := language.Parse(tag)
	if err != nil {
		return monday.LocaleEnUS
	}
	base, _ := t.Base()
	region, _ := t.Region()

	exact := monday.Locale(base.String() + "_" + region.String())
	prefix := base.String() + "_"
	var sameLanguage monday.Locale
	for _, l := range monday.ListLocales() {
		if l == exact {
			return l
		}
		if sameLanguage == "" && strings.HasPrefix(string(l), prefix) {
			sameLanguage = l
		}
	}
	if sameLanguage != "" {
		return sameLanguage
	}
	return monday.LocaleEnUS
}

// WeekdayName returns the localized full weekday name of date.
func WeekdayName(date, locale string) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return monday.Format(t, "Monday", formatLocale(locale)), nil
}

// Language returns the base language of a locale tag, "en" when it cannot be parsed.
func Language(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return "en"
	}
	base, _ := t.Base()
	return base.String()
}
