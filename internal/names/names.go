// Package names canonicalizes project names for lookup and ordering.
package names

import (
	"regexp"
	"strings"
)

var separators = regexp.MustCompile(`[-_.]+`)

// Normalize maps a project name to its comparison key: lower case, with
// every run of '-', '_' and '.' collapsed to a single '-'.
func Normalize(name string) string {
	return strings.ToLower(separators.ReplaceAllString(strings.TrimSpace(name), "-"))
}
