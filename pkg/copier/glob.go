package copier

import (
	"path"
	"strings"
)

// matchesGlobs reports whether the slash path rel matches any pattern. A
// pattern without a separator is also tried against the base name, and "**"
// spans any number of directories.
func matchesGlobs(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(strings.ReplaceAll(pattern, "\\", "/"), "./")
		if pattern == "" {
			continue
		}

		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}

		if !strings.Contains(pattern, "/") {
			if ok, _ := path.Match(pattern, path.Base(rel)); ok {
				return true
			}
		}

		if strings.Contains(pattern, "**") && matchDoubleStar(pattern, rel) {
			return true
		}
	}

	return false
}

func matchDoubleStar(pattern, rel string) bool {
	prefix, suffix, ok := strings.Cut(pattern, "**")
	if !ok || strings.Contains(suffix, "**") {
		return false
	}

	prefix = strings.TrimSuffix(prefix, "/")
	suffix = strings.TrimPrefix(suffix, "/")

	remaining := rel
	if prefix != "" {
		if rel == prefix {
			return suffix == ""
		}
		if !strings.HasPrefix(rel, prefix+"/") {
			return false
		}
		remaining = strings.TrimPrefix(rel, prefix+"/")
	}

	if suffix == "" {
		return true
	}

	// try the suffix against every tail of the remaining path
	parts := strings.Split(remaining, "/")
	for i := range parts {
		if ok, _ := path.Match(suffix, strings.Join(parts[i:], "/")); ok {
			return true
		}
	}
	return false
}
