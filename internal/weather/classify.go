package weather

import (
	"regexp"
	"strings"
)

var (
	zipPattern = regexp.MustCompile(`^\d{5}$`)

	// City names start with a letter and may contain letters, spaces,
	// periods, hyphens and apostrophes (up to 99 characters total), with an
	// optional ", XX" or ",XX" two-letter state suffix.
	cityPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]{0,98}(, ?[A-Za-z]{2})?$`)

	stateSuffixPattern = regexp.MustCompile(`^(.*), ?([A-Za-z]{2})$`)
)

// Classify decides whether raw input denotes a US zip code, a US city, or
// neither. It fails closed: anything that does not match either grammar comes
// back as KindInvalid, never as an error.
func Classify(input string) ValidationResult {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ValidationResult{Kind: KindInvalid, Sanitized: ""}
	}
	if zipPattern.MatchString(trimmed) {
		return ValidationResult{Kind: KindZip, Sanitized: trimmed}
	}
	if cityPattern.MatchString(trimmed) {
		return ValidationResult{Kind: KindCity, Sanitized: trimmed}
	}
	return ValidationResult{Kind: KindInvalid, Sanitized: ""}
}

// FormatForProvider turns a classified query into the provider's "q" value.
// Zip codes become "12345,US"; cities with a state suffix are normalized to
// "Name,XX,US"; plain cities get ",US" appended. The input is assumed to have
// passed Classify already, so no re-validation happens here: a city that does
// not match the suffix pattern silently takes the no-suffix branch.
func FormatForProvider(sanitized string, kind Kind) string {
	if kind == KindZip {
		return sanitized + ",US"
	}
	if m := stateSuffixPattern.FindStringSubmatch(sanitized); m != nil {
		return strings.TrimSpace(m[1]) + "," + m[2] + ",US"
	}
	return sanitized + ",US"
}
