package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation rule patterns
var (
	// Equipment code pattern - alphanumeric with dashes, no embedded spaces
	EquipmentCodePattern = `^[A-Z0-9][A-Z0-9\-]*$`

	// Username pattern - lowercase letters, digits, dots and underscores
	UsernamePattern = `^[a-z0-9._]{3,32}$`

	// Description minimum length in characters (not bytes)
	DescriptionMinLength = 5

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	EquipmentCode *regexp.Regexp
	Username      *regexp.Regexp
}{
	EquipmentCode: regexp.MustCompile(EquipmentCodePattern),
	Username:      regexp.MustCompile(UsernamePattern),
}

// NormalizeEquipmentCode trims and upper-cases a business identifier so
// lookups and the unique index see one canonical form.
func NormalizeEquipmentCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidEquipmentCode reports whether the code, after normalization, matches
// the business identifier format (no embedded spaces, alphanumeric).
func ValidEquipmentCode(code string) bool {
	normalized := NormalizeEquipmentCode(code)
	if normalized == "" {
		return false
	}
	return CompiledPatterns.EquipmentCode.MatchString(normalized)
}

// ValidDescription reports whether a problem description meets the minimum
// character count. Counted in runes so non-ASCII reports are not penalized.
func ValidDescription(description string) bool {
	trimmed := strings.TrimSpace(description)
	return utf8.RuneCountInString(trimmed) >= DescriptionMinLength
}

// ValidUsername reports whether the login name matches the expected format
func ValidUsername(username string) bool {
	return CompiledPatterns.Username.MatchString(username)
}

// BlankComment reports whether a required comment is effectively empty
func BlankComment(comment string) bool {
	return strings.TrimSpace(comment) == ""
}
