package adapter

import (
	"path/filepath"
	"strings"

	m "github.com/mouse-blink/covmerge/internal/model"
)

// MaxOutputPathLength caps the length of generated artifact paths.
const MaxOutputPathLength = 260

// maxComponentBytes is the usual file name limit (NAME_MAX).
const maxComponentBytes = 255

const invalidPathChars = `<>:"\|?*`

// OutputPath maps a resource URL onto a file under outputDir. The scheme is
// dropped, every URL segment becomes a path component with invalid
// characters replaced by "_", and a trailing slash gets a "_" file name.
// Components are cut to 255 bytes and the result to MaxOutputPathLength
// characters, never ending in a separator.
func OutputPath(outputDir m.Path, resourceURL string) m.Path {
	segments := strings.Split(m.ResourceKey(resourceURL), "/")
	if segments[len(segments)-1] == "" {
		segments[len(segments)-1] = "_"
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, string(outputDir))

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		parts = append(parts, truncateBytes(sanitizeComponent(segment), maxComponentBytes))
	}

	path := truncate(filepath.Join(parts...), MaxOutputPathLength)

	return m.Path(strings.TrimRight(path, string(filepath.Separator)))
}

func sanitizeComponent(segment string) string {
	if segment == "." || segment == ".." {
		return strings.Repeat("_", len(segment))
	}

	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(invalidPathChars, r) {
			return '_'
		}

		return r
	}, segment)
}

// truncate keeps the first limit characters of s.
func truncate(s string, limit int) string {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}

	return s
}

// truncateBytes keeps the longest prefix of s that fits in limit bytes
// without splitting a character.
func truncateBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	end := 0
	for i := range s {
		if i > limit {
			break
		}
		end = i
	}

	return s[:end]
}
