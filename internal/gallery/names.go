package gallery

import (
	"regexp"
	"strings"
)

var (
	leadingDigits      = regexp.MustCompile(`^[0-9]*`)
	leadingDigitsSpace = regexp.MustCompile(`^[\s0-9]*`)
	notURLSafe         = regexp.MustCompile(`[^ a-zA-Z0-9]`)
)

// StripNumericPrefix removes the ordering prefix from a directory name
// ("01 Gallery One" -> "Gallery One"). A name that is only digits is kept.
func StripNumericPrefix(name string) string {
	stripped := strings.TrimSpace(leadingDigits.ReplaceAllString(name, ""))
	if stripped == "" {
		return name
	}
	return stripped
}

// StripSlidePrefix removes leading digits and whitespace from a slide file
// stem ("01 blue" -> "blue"). A stem that is only digits is kept.
func StripSlidePrefix(stem string) string {
	stripped := strings.TrimSpace(leadingDigitsSpace.ReplaceAllString(stem, ""))
	if stripped == "" {
		return stem
	}
	return stripped
}

// URLSafe drops everything except spaces and ASCII alphanumerics, turns
// spaces into hyphens and lowercases the result.
func URLSafe(name string) string {
	cleaned := notURLSafe.ReplaceAllString(name, "")
	return strings.ToLower(strings.ReplaceAll(cleaned, " ", "-"))
}
