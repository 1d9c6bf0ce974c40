package auth

import "strings"

// RequireAuth reports whether a request path needs authentication given an
// exclusion list. An empty path or an empty list always requires auth.
// Pattern semantics, first match wins:
//
//   - trailing "*": prefix match on the part before the star
//   - trailing "/": matches the pattern path itself and anything under it
//   - bare pattern: matches the exact path and any of its sub-paths
//
// The bare-pattern rule deliberately includes the exact path; see DESIGN.md.
func RequireAuth(path string, excludedPaths []string) bool {
	if path == "" || len(excludedPaths) == 0 {
		return true
	}

	for _, raw := range excludedPaths {
		pattern := strings.TrimSpace(raw)
		if pattern == "" {
			continue
		}
		if matchesExclusion(path, pattern) {
			return false
		}
	}
	return true
}

func matchesExclusion(path, pattern string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(path, strings.TrimSuffix(pattern, "*"))
	}

	base := strings.TrimSuffix(pattern, "/")
	if base == "" {
		// The root pattern "/" excludes the index alone, not the whole tree.
		return path == "/"
	}
	return path == base || path == base+"/" || strings.HasPrefix(path, base+"/")
}
