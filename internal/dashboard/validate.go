package dashboard

import (
	"net/url"
	"strings"
)

var deniedSchemes = []string{"javascript:", "data:", "vbscript:", "file:", "about:"}

// ValidateURL reports whether raw is an acceptable endpoint URL: a trimmed,
// well-formed http or https URL with no denied scheme prefix.
func ValidateURL(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, scheme := range deniedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return false
		}
	}
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
