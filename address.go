package pagevec

import (
	"net/url"
	"strings"
)

// rejectedSchemes are pseudo-URL prefixes that never point at a page.
var rejectedSchemes = []string{"mailto:", "javascript:", "data:"}

// Normalize turns a raw field from a source record into a canonical absolute
// web address. The bool result is false when raw cannot be turned into an
// http or https address with a host.
//
// Scheme-relative input ("//host/path") and input without a scheme get
// https. The path defaults to "/"; query and fragment are kept as given.
// Normalize is idempotent: normalizing its output yields the same string.
func Normalize(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	lower := strings.ToLower(s)
	for _, prefix := range rejectedSchemes {
		if strings.HasPrefix(lower, prefix) {
			return "", false
		}
	}

	if strings.HasPrefix(s, "//") {
		s = "https:" + s
	}
	if !hasScheme(s) {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.Hostname() == "" {
		return "", false
	}
	if u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}
	return u.String(), true
}

// hasScheme reports whether s starts with "<scheme>://".
// A bare "host:port" is not treated as a scheme.
func hasScheme(s string) bool {
	i := strings.Index(s, "://")
	if i <= 0 {
		return false
	}
	for j, c := range s[:i] {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case j > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

// NormalizeAll normalizes every raw value, dropping rejects.
// Order and duplicates are preserved.
func NormalizeAll(raws []string) []string {
	urls := make([]string, 0, len(raws))
	for _, raw := range raws {
		if u, ok := Normalize(raw); ok {
			urls = append(urls, u)
		}
	}
	return urls
}

// Slice restricts urls to the half-open range [start, end).
// A nil bound means the start or end of urls. Bounds are clamped, and an
// empty range yields an empty slice.
func Slice(urls []string, start, end *int) []string {
	lo, hi := 0, len(urls)
	if start != nil {
		lo = max(0, min(*start, len(urls)))
	}
	if end != nil {
		hi = max(0, min(*end, len(urls)))
	}
	if lo >= hi {
		return []string{}
	}
	return urls[lo:hi]
}
