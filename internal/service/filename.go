package service

import (
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// sanitizeFilename reduces a client-supplied name to a safe base name: path components
// are dropped, runs of unsafe characters become "_" and leading dots or underscores are removed.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base("/" + name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	return strings.TrimLeft(name, "._")
}
