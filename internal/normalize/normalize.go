// Package normalize provides the text, URL and timestamp canonicalization
// used for matching and blocklist lookups throughout the pipeline.
package normalize

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and drops the combining marks, so that
// "Café" and "Cafe" normalize identically.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// noiseParams are playlist/autoplay query parameters that do not affect
// video identity and are stripped during URL canonicalization.
var noiseParams = []string{"list", "index", "start_radio", "pp"}

// Text lowercases the input, strips diacritics and removes every character
// outside [a-z0-9]. The result is only used for equality comparisons, never
// for display.
func Text(s string) string {
	s = strings.ToLower(s)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// CleanURL strips playlist noise parameters from a video URL and reassembles
// scheme, host, path and the remaining query. Blank input yields the empty
// string. The function is idempotent: a canonical URL passes through
// unchanged.
func CleanURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	q := u.Query()
	for _, p := range noiseParams {
		q.Del(p)
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""

	return u.String()
}

// ParseTimestamp converts a textual time value to seconds. Accepted forms
// are H:M:S, M:S and a bare number of seconds. Spreadsheet exports encode
// minute:second values as a three-part M:S:00 artifact; a three-part value
// whose first component is below 10 and whose third component is exactly 0
// is therefore read as minutes:seconds. Unparseable input yields 0, which
// callers treat as "unspecified".
func ParseTimestamp(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	parts := strings.Split(value, ":")
	switch len(parts) {
	case 3:
		h, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		m, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		s, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 != nil || err2 != nil || err3 != nil {
			return 0
		}
		if h < 10 && s == 0 {
			// M:S:00 spreadsheet artifact
			return h*60 + m
		}
		return h*3600 + m*60 + s
	case 2:
		m, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		s, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			return 0
		}
		return m*60 + s
	default:
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return int(f)
		}
		return 0
	}
}
