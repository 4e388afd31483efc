package api

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// filename*=UTF-8''<percent-encoded>
	extendedFilename = regexp.MustCompile(`(?i)filename\*\s*=\s*UTF-8''([^;\s]+)`)
	// filename="<name>" or filename=<name>
	plainFilename = regexp.MustCompile(`(?i)filename\s*=\s*"?([^";]+)"?`)
)

// FilenameFromDisposition extracts the suggested filename from a
// Content-Disposition header. The UTF-8 extended parameter wins over the
// plain one; fallback is returned when neither yields a name.
func FilenameFromDisposition(header, fallback string) string {
	if m := extendedFilename.FindStringSubmatch(header); m != nil {
		if name, err := url.PathUnescape(m[1]); err == nil && name != "" {
			return name
		}
	}

	if m := plainFilename.FindStringSubmatch(header); m != nil {
		name := strings.TrimSpace(m[1])
		if decoded, err := url.PathUnescape(name); err == nil {
			name = decoded
		}
		name = strings.Trim(name, `'"`)
		if name != "" {
			return name
		}
	}

	return fallback
}
