// Package filex contains small helpers for working with uploaded file names.
package filex

import (
	"path/filepath"
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s`)

// Ext returns the extension of name including the leading dot, or "" when
// the name has none.
func Ext(name string) string {
	return filepath.Ext(name)
}

// StripExt returns name with its extension removed.
func StripExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Sanitize replaces every whitespace character in s with an underscore so
// the result is safe to use inside an object key.
func Sanitize(s string) string {
	return whitespace.ReplaceAllString(s, "_")
}
