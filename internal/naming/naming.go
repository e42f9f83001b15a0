// Package naming turns free-text objectives into filesystem-safe workspace
// identifiers.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// MaxSeedLen is how many source characters of the seeding text contribute to
// the identifier, counted before sanitization.
const MaxSeedLen = 50

// FallbackPrefix labels workspaces whose seed sanitized down to nothing.
const FallbackPrefix = "objective"

// TimestampLayout is second-precision and filesystem-safe. Shared with the
// workspace resolver's collision suffixes so all generated names look alike.
const TimestampLayout = "20060102-150405"

// now is swapped out in tests to make fallback names deterministic.
var now = time.Now

// Sanitize derives a filesystem-safe identifier from seed.
//
// The first MaxSeedLen characters are considered; letters are case-folded,
// whitespace becomes a hyphen, anything outside [a-z0-9-_] is dropped, and
// runs of separators collapse to one. Deterministic for any non-degenerate
// seed; a seed that sanitizes to nothing falls back to FallbackPrefix plus
// a timestamp.
func Sanitize(seed string) string {
	runes := []rune(seed)
	if len(runes) > MaxSeedLen {
		runes = runes[:MaxSeedLen]
	}

	var b strings.Builder
	lastSep := true // swallow leading separators
	for _, r := range runes {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSep = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			lastSep = false
		case r == '-' || r == '_' || unicode.IsSpace(r):
			if !lastSep {
				if r == '_' {
					b.WriteRune('_')
				} else {
					b.WriteRune('-')
				}
				lastSep = true
			}
		}
	}

	name := strings.TrimRight(b.String(), "-_")
	if name == "" {
		return FallbackPrefix + "-" + now().Format(TimestampLayout)
	}
	return name
}

// SeedFromArg resolves a CLI objective argument into an identifier seed and
// the objective text.
//
// When arg names an existing regular file, the file's contents become the
// objective and its base name (extension stripped) seeds the identifier; a
// short file name describes the objective better than a wall of text.
// Otherwise arg itself is both seed and objective.
func SeedFromArg(arg string) (seed, objective string, err error) {
	info, statErr := os.Stat(arg)
	if statErr != nil || !info.Mode().IsRegular() {
		trimmed := strings.TrimSpace(arg)
		return trimmed, trimmed, nil
	}

	raw, err := os.ReadFile(arg)
	if err != nil {
		return "", "", fmt.Errorf("reading objective file %q: %w", arg, err)
	}
	objective = strings.TrimSpace(string(raw))

	base := filepath.Base(arg)
	seed = strings.TrimSuffix(base, filepath.Ext(base))
	if strings.TrimSpace(seed) == "" {
		seed = objective
	}
	return seed, objective, nil
}
