package sanitizer

import (
	"net/url"
	"strings"
)

// NormalizeURL enforces https, lower-cases the host, drops a leading www. and
// utm_* parameters. Input that does not parse is returned trimmed.
func NormalizeURL(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	lowered := strings.ToLower(s)
	if rest, ok := strings.CutPrefix(lowered, "http://"); ok {
		s = s[len(s)-len(rest):]
	} else if rest, ok := strings.CutPrefix(lowered, "https://"); ok {
		s = s[len(s)-len(rest):]
	}
	s = "https://" + s

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return strings.TrimSpace(input)
	}

	u.Host = strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	u.Path = strings.TrimSuffix(u.Path, "/")

	q := u.Query()
	for k := range q {
		if strings.HasPrefix(strings.ToLower(k), "utm_") {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()

	return u.String()
}
