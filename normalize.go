package minfraud

import (
	"regexp"
	"strings"
)

var (
	allCapsKey     = regexp.MustCompile(`^[A-Z]+$`)
	acronymBreak   = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	camelCaseBreak = regexp.MustCompile(`([a-z])([A-Z])`)
)

// NormalizeKey converts a raw response key to its canonical lower-case,
// underscore separated form: "countryMatch" becomes "country_match",
// "maxmindID" becomes "maxmind_id" and "ERR" becomes "err".
func NormalizeKey(raw string) string {
	if allCapsKey.MatchString(raw) {
		return strings.ToLower(raw)
	}
	key := acronymBreak.ReplaceAllString(raw, "${1}_${2}")
	key = camelCaseBreak.ReplaceAllString(key, "${1}_${2}")
	return strings.ToLower(key)
}
