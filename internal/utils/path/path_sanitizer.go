package pathutils

import (
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

const windowsOperatingSystemConstant = "windows"

// PathSanitizerConfiguration controls sanitization behavior.
type PathSanitizerConfiguration struct {
	// PruneNestedPaths drops paths located inside another provided path, since a
	// walk of the parent already covers them.
	PruneNestedPaths bool
}

// PathSanitizer normalizes path lists supplied through arguments, flags, or configuration.
type PathSanitizer struct {
	homeExpander  *HomeExpander
	configuration PathSanitizerConfiguration
}

// NewPathSanitizer constructs a PathSanitizer with the default home expander.
func NewPathSanitizer(configuration PathSanitizerConfiguration) *PathSanitizer {
	return NewPathSanitizerWithExpander(nil, configuration)
}

// NewPathSanitizerWithExpander constructs a PathSanitizer with the provided expander.
func NewPathSanitizerWithExpander(homeExpander *HomeExpander, configuration PathSanitizerConfiguration) *PathSanitizer {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &PathSanitizer{homeExpander: homeExpander, configuration: configuration}
}

// Sanitize trims whitespace, expands "~", cleans each path, and drops blanks
// and exact duplicates. It returns nil when nothing remains.
func (sanitizer *PathSanitizer) Sanitize(candidatePaths []string) []string {
	sanitizedPaths := make([]string, 0, len(candidatePaths))
	seen := make(map[string]struct{}, len(candidatePaths))
	for _, candidatePath := range candidatePaths {
		sanitizedPath := sanitizer.SanitizePath(candidatePath)
		if len(sanitizedPath) == 0 {
			continue
		}
		key := comparisonPath(canonicalizePath(sanitizedPath))
		if _, duplicate := seen[key]; duplicate {
			continue
		}
		seen[key] = struct{}{}
		sanitizedPaths = append(sanitizedPaths, sanitizedPath)
	}

	if len(sanitizedPaths) == 0 {
		return nil
	}
	if sanitizer.configuration.PruneNestedPaths {
		return pruneNestedPaths(sanitizedPaths)
	}
	return sanitizedPaths
}

// SanitizePath normalizes a single path, returning "" for blank input.
func (sanitizer *PathSanitizer) SanitizePath(candidatePath string) string {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return ""
	}
	return filepath.Clean(sanitizer.homeExpander.Expand(trimmedPath))
}

func pruneNestedPaths(candidatePaths []string) []string {
	type pathDetails struct {
		originalIndex int
		value         string
		comparison    string
	}

	paths := make([]pathDetails, 0, len(candidatePaths))
	for index, candidatePath := range candidatePaths {
		paths = append(paths, pathDetails{
			originalIndex: index,
			value:         candidatePath,
			comparison:    comparisonPath(canonicalizePath(candidatePath)),
		})
	}

	sort.SliceStable(paths, func(first int, second int) bool {
		return len(paths[first].comparison) < len(paths[second].comparison)
	})

	selected := make([]pathDetails, 0, len(paths))
	for _, candidate := range paths {
		nested := false
		for _, existing := range selected {
			if isNestedPath(existing.comparison, candidate.comparison) {
				nested = true
				break
			}
		}
		if !nested {
			selected = append(selected, candidate)
		}
	}

	sort.SliceStable(selected, func(first int, second int) bool {
		return selected[first].originalIndex < selected[second].originalIndex
	})

	pruned := make([]string, 0, len(selected))
	for _, candidate := range selected {
		pruned = append(pruned, candidate.value)
	}
	return pruned
}

func canonicalizePath(path string) string {
	absolutePath, absoluteError := filepath.Abs(path)
	if absoluteError != nil {
		return filepath.Clean(path)
	}
	return absolutePath
}

func comparisonPath(path string) string {
	if runtime.GOOS == windowsOperatingSystemConstant {
		return strings.ToLower(path)
	}
	return path
}

func isNestedPath(parent string, candidate string) bool {
	if candidate == parent {
		return true
	}
	relativePath, relativeError := filepath.Rel(parent, candidate)
	if relativeError != nil {
		return false
	}
	return relativePath != ".." && !strings.HasPrefix(relativePath, ".."+string(filepath.Separator))
}
