// Package urlutil implements the URL helpers the include statement uses to
// resolve relative include URLs against the including script's own URL.
package urlutil

import "regexp"

// schemeOrAbsolute matches a URL that is not relative: it starts with a
// scheme ([a-z]+:), a leading slash, a query string or a fragment.
var schemeOrAbsolute = regexp.MustCompile(`^(?:[a-z]+:|/|\?|#)`)

// IsRelativeURL reports whether u does not start with a scheme, "/", "?" or
// "#".
func IsRelativeURL(u string) bool {
	return !schemeOrAbsolute.MatchString(u)
}

// BaseURL returns the prefix of u up to and including its final "/", or the
// empty string if u contains no "/".
func BaseURL(u string) string {
	i := lastSlash(u)
	if i < 0 {
		return ""
	}
	return u[:i+1]
}

// Resolve resolves URL u against the base of including: if u is not
// relative it passes through unchanged; otherwise it is rewritten to
// BaseURL(including) + u.
func Resolve(including, u string) string {
	if !IsRelativeURL(u) {
		return u
	}
	return BaseURL(including) + u
}

func lastSlash(u string) int {
	for i := len(u) - 1; i >= 0; i-- {
		if u[i] == '/' {
			return i
		}
	}
	return -1
}
