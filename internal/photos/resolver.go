package photos

import "strings"

// Resolver turns stored relative photo paths into fetchable URLs.
type Resolver struct {
	// Origin is prefixed to relative paths, e.g. "http://nas.local:5000".
	Origin string
}

// NewResolver creates a resolver for the given origin. A trailing slash on
// the origin is dropped.
func NewResolver(origin string) Resolver {
	return Resolver{Origin: strings.TrimRight(origin, "/")}
}

// URL resolves path. Empty paths resolve to "", paths that are already
// absolute http(s) URLs are returned unchanged.
func (r Resolver) URL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return r.Origin + path
}
