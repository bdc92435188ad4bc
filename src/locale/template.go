// Package locale maps path templates containing a locale placeholder onto
// concrete files.
package locale

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Placeholder is the token substituted with a locale code in path templates.
const Placeholder = "<locale_code>"

// HasPlaceholder reports whether template contains the locale placeholder.
func HasPlaceholder(template string) bool {
	return strings.Contains(template, Placeholder)
}

// Resolve substitutes code for the placeholder in the directory and file
// name of template. Codes that are not a single path segment are rejected
// with ErrInvalidCode.
//
// Android resource folders name the default locale "values" rather than
// "values-en", so for the xml format and the en locale a trailing "-en" is
// removed from the resolved directory. No other format or locale is
// adjusted.
func Resolve(template, code, format string) (string, error) {
	err := ValidateCode(code)
	if err != nil {
		return "", err
	}

	dir := strings.ReplaceAll(filepath.Dir(template), Placeholder, code)
	name := strings.ReplaceAll(filepath.Base(template), Placeholder, code)

	if format == "xml" && code == "en" {
		dir = strings.TrimSuffix(dir, "-"+code)
	}

	return filepath.Join(dir, name), nil
}

// ValidateCode reports whether code can stand in for the placeholder
// without changing the shape of the path.
func ValidateCode(code string) error {
	if code == "" || code == "." || code == ".." || strings.ContainsAny(code, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}

	return nil
}

// Split cuts the cleaned, slash-separated template at its only placeholder.
// ok is false when template holds no placeholder or more than one.
func Split(template string) (prefix, suffix string, ok bool) {
	template = filepath.ToSlash(filepath.Clean(template))

	if strings.Count(template, Placeholder) != 1 {
		return "", "", false
	}

	prefix, suffix, _ = strings.Cut(template, Placeholder)

	return prefix, suffix, true
}

// Extract returns the locale code that p holds between prefix and suffix.
// The match is a plain string comparison, not a path-aware one. An empty
// code never matches.
func Extract(p, prefix, suffix string) (string, bool) {
	if len(p) <= len(prefix)+len(suffix) {
		return "", false
	}

	if !strings.HasPrefix(p, prefix) || !strings.HasSuffix(p, suffix) {
		return "", false
	}

	return p[len(prefix) : len(p)-len(suffix)], true
}
