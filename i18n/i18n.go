package i18n

import (
	"fmt"
	"strings"
)

// Lang identifies a supported storefront language.
type Lang string

const (
	LangEN Lang = "en"
	LangES Lang = "es"
)

type dict map[string]string

var dictionaries = map[Lang]dict{
	LangEN: en,
	LangES: es,
}

// Parse maps a raw language tag ("es", "es-AR", "EN") to a supported Lang.
// Anything unrecognized falls back to English, the storefront default.
func Parse(raw string) Lang {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if tag == "es" || strings.HasPrefix(tag, "es-") || strings.HasPrefix(tag, "es_") {
		return LangES
	}
	return LangEN
}

// T looks a message key up in the dictionary for lang. A missing key returns
// the key itself rather than failing, so an untranslated message degrades to
// something greppable instead of an error.
func T(lang Lang, key string) string {
	d, ok := dictionaries[lang]
	if !ok {
		d = en
	}
	if msg, ok := d[key]; ok {
		return msg
	}
	return key
}

// FormatUSD renders a USD amount the way the storefront displays prices:
// whole dollars, thousands separated.
func FormatUSD(v float64) string {
	n := int64(v + 0.5)
	if v < 0 {
		n = int64(v - 0.5)
	}
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return sign + "$" + strings.Join(parts, ",")
}
