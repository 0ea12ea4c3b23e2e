package serialize

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// fallbackExtension is appended when an upload has no extension of its own.
const fallbackExtension = ".bin"

// maxBaseLength bounds the joined name base, excluding the extension.
const maxBaseLength = 200

var (
	separatorRuns  = regexp.MustCompile(`[\s-]+`)
	underscoreRuns = regexp.MustCompile(`_+`)
	disallowed     = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// SanitizeComponent reduces a name component to [A-Za-z0-9_]: whitespace and
// hyphen runs become a single underscore, anything else disallowed is
// dropped, repeated underscores collapse, and leading/trailing underscores
// are trimmed. The result is stable under re-application.
func SanitizeComponent(s string) string {
	s = separatorRuns.ReplaceAllString(s, "_")
	s = disallowed.ReplaceAllString(s, "")
	s = underscoreRuns.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// namer assigns collision-free attachment filenames within one submission.
type namer struct {
	taken map[string]bool
}

func newNamer() *namer {
	return &namer{taken: make(map[string]bool)}
}

// assign builds a filename from the ordered components, appends the original
// extension (lower-cased, falling back when absent), and disambiguates
// duplicates with a numeric suffix before the extension.
func (n *namer) assign(components []string, originalFilename string) string {
	parts := make([]string, 0, len(components))
	for _, c := range components {
		if clean := SanitizeComponent(c); clean != "" {
			parts = append(parts, clean)
		}
	}
	base := strings.Join(parts, "_")
	if runes := []rune(base); len(runes) > maxBaseLength {
		base = strings.TrimRight(string(runes[:maxBaseLength]), "_")
	}

	ext := strings.ToLower(filepath.Ext(originalFilename))
	if ext == "" {
		ext = fallbackExtension
	}

	name := base + ext
	for suffix := 2; n.taken[name]; suffix++ {
		name = base + "_" + strconv.Itoa(suffix) + ext
	}
	n.taken[name] = true
	return name
}
