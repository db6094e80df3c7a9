// Package discovery provides script file discovery with glob pattern
// support.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Options configures file discovery behavior.
type Options struct {
	// Patterns are the glob patterns to match (default:
	// DefaultPatterns()). Supports doublestar patterns like
	// "**/*.nu".
	Patterns []string

	// ExcludePatterns are glob patterns to exclude from results.
	ExcludePatterns []string
}

// DefaultPatterns returns the default script file patterns.
func DefaultPatterns() []string {
	return []string{"**/*.nu"}
}

// Discover finds script files matching the given inputs. Each input
// can be a specific file path, a directory (searched recursively with
// the configured patterns), or a glob pattern (expanded with
// doublestar). Results are deduplicated and sorted.
func Discover(inputs []string, opts Options) ([]string, error) {
	if len(opts.Patterns) == 0 {
		opts.Patterns = DefaultPatterns()
	}

	seen := make(map[string]bool)
	var results []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if seen[clean] || excluded(clean, opts.ExcludePatterns) {
			return
		}
		seen[clean] = true
		results = append(results, clean)
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		switch {
		case err == nil && info.IsDir():
			for _, pattern := range opts.Patterns {
				matches, err := doublestar.Glob(os.DirFS(input), pattern)
				if err != nil {
					return nil, err
				}
				for _, m := range matches {
					add(filepath.Join(input, m))
				}
			}
		case err == nil:
			// Explicit file: no pattern filtering, the user asked for it.
			add(input)
		case looksLikeGlob(input):
			base, pattern := doublestar.SplitPattern(filepath.ToSlash(input))
			matches, globErr := doublestar.Glob(os.DirFS(base), pattern)
			if globErr != nil {
				return nil, globErr
			}
			for _, m := range matches {
				add(filepath.Join(base, m))
			}
		default:
			return nil, err
		}
	}

	sort.Strings(results)
	return results, nil
}

func looksLikeGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

func excluded(path string, patterns []string) bool {
	slash := filepath.ToSlash(path)
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, slash); err == nil && ok {
			return true
		}
	}
	return false
}
