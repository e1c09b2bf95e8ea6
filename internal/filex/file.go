// Package filex contains small filesystem and filename helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func EnsureSubdDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// SanitizeFileName reduces a user-supplied file name to a safe basename:
// path components from either separator style are dropped, spaces become
// underscores, and anything outside [A-Za-z0-9._-] is removed. Leading dots
// are stripped so the result can never name a hidden or relative path.
// Returns "" when nothing safe remains.
func SanitizeFileName(name string) string {
	// basename regardless of which separator the client used
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	return strings.TrimLeft(b.String(), ".-")
}

// FileExtension returns the lowercase extension of name without the dot,
// or "" when the name has none.
func FileExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
