package repos

import (
	"strings"

	pathutils "github.com/temirov/mailshift/internal/utils/path"
)

const defaultCloneDirectoryConstant = "."

// RewriteConfiguration describes configuration values under tools.rewrite.
type RewriteConfiguration struct {
	RepositoryRoots  []string `mapstructure:"roots"`
	RemoteURLs       []string `mapstructure:"remotes"`
	SourceEmail      string   `mapstructure:"from"`
	DestinationEmail string   `mapstructure:"to"`
	CloneDirectory   string   `mapstructure:"clone_directory"`
	Match            string   `mapstructure:"match"`
	DryRun           bool     `mapstructure:"dry_run"`
	ReportPath       string   `mapstructure:"report"`
}

// DefaultRewriteConfiguration returns the values used when no configuration is provided.
func DefaultRewriteConfiguration() RewriteConfiguration {
	return RewriteConfiguration{
		CloneDirectory: defaultCloneDirectoryConstant,
	}
}

// sanitize trims values and normalizes path lists.
func (configuration RewriteConfiguration) sanitize() RewriteConfiguration {
	sanitized := configuration
	sanitized.RepositoryRoots = rootSanitizer.Sanitize(configuration.RepositoryRoots)
	sanitized.RemoteURLs = trimValues(configuration.RemoteURLs)
	sanitized.SourceEmail = strings.TrimSpace(configuration.SourceEmail)
	sanitized.DestinationEmail = strings.TrimSpace(configuration.DestinationEmail)
	sanitized.CloneDirectory = pathSanitizer.SanitizePath(configuration.CloneDirectory)
	if len(sanitized.CloneDirectory) == 0 {
		sanitized.CloneDirectory = defaultCloneDirectoryConstant
	}
	sanitized.Match = strings.TrimSpace(configuration.Match)
	sanitized.ReportPath = pathSanitizer.SanitizePath(configuration.ReportPath)
	return sanitized
}

var (
	rootSanitizer = pathutils.NewPathSanitizer(pathutils.PathSanitizerConfiguration{PruneNestedPaths: true})
	pathSanitizer = pathutils.NewPathSanitizer(pathutils.PathSanitizerConfiguration{})
)

func trimValues(raw []string) []string {
	trimmed := make([]string, 0, len(raw))
	for _, value := range raw {
		candidate := strings.TrimSpace(value)
		if len(candidate) == 0 {
			continue
		}
		trimmed = append(trimmed, candidate)
	}
	if len(trimmed) == 0 {
		return nil
	}
	return trimmed
}
