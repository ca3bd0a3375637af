package repos

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/mailshift/internal/repos/dependencies"
	"github.com/temirov/mailshift/internal/repos/discovery"
	"github.com/temirov/mailshift/internal/repos/shared"
	flagutils "github.com/temirov/mailshift/internal/utils/flags"
)

const (
	discoverUseConstant              = "discover [root ...]"
	discoverShortDescriptionConstant = "List the repositories rewrite would offer"
	discoverLongDescriptionConstant  = "discover scans the given roots for git working copies and prints them in the order the rewrite menu uses. Nothing is modified."
	discoverHeadingTemplate          = "Repositories under %s: %d\n"
	discoverRowTemplate              = "%s"
	discoverCompletedLogMessage      = "repository discovery completed"
	logFieldRootsConstant            = "roots"
	logFieldRepositoryCountConstant  = "repository_count"
)

// DiscoverCommandBuilder assembles the discover command.
type DiscoverCommandBuilder struct {
	LoggerProvider        LoggerProvider
	Discoverer            shared.RepositoryDiscoverer
	ConfigurationProvider func() RewriteConfiguration
}

// Build constructs the discover command.
func (builder *DiscoverCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   discoverUseConstant,
		Short: discoverShortDescriptionConstant,
		Long:  discoverLongDescriptionConstant,
	}

	rootValues := flagutils.BindRootFlags(command, flagutils.RootFlagValues{}, flagutils.RootFlagDefinition{Enabled: true})
	var match string
	command.Flags().StringVar(&match, flagutils.MatchFlagName, "", flagutils.MatchFlagUsage)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		configuration := builder.resolveConfiguration()
		var flagRoots []string
		if command.Flags().Changed(flagutils.DefaultRootFlagName) {
			flagRoots = rootValues.Roots
		}
		if command.Flags().Changed(flagutils.MatchFlagName) {
			configuration.Match = strings.TrimSpace(match)
		}
		return builder.run(command, arguments, flagRoots, configuration)
	}

	return command, nil
}

func (builder *DiscoverCommandBuilder) run(command *cobra.Command, arguments []string, flagRoots []string, configuration RewriteConfiguration) error {
	roots, rootsError := requireRepositoryRoots(command, arguments, flagRoots, configuration.RepositoryRoots)
	if rootsError != nil {
		return rootsError
	}

	discoverer := dependencies.ResolveRepositoryDiscoverer(builder.Discoverer)
	targets, locateError := discovery.LocateTargets(discoverer, roots, configuration.Match)
	if locateError != nil {
		return locateError
	}

	output, palette := resolveOutput(command)
	fmt.Fprintf(output, discoverHeadingTemplate, palette.Title(strings.Join(roots, rootsJoinSeparatorConstant)), len(targets))
	if len(targets) > 0 {
		rows := make([][]string, 0, len(targets))
		for index, target := range targets {
			rows = append(rows, []string{strconv.Itoa(index + 1), target.Identifier(), target.Location})
		}
		fmt.Fprintf(output, discoverRowTemplate, palette.KeyValueTable(rows))
	}

	resolveLogger(builder.LoggerProvider).Info(
		discoverCompletedLogMessage,
		zap.Strings(logFieldRootsConstant, roots),
		zap.Int(logFieldRepositoryCountConstant, len(targets)),
	)
	return nil
}

func (builder *DiscoverCommandBuilder) resolveConfiguration() RewriteConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultRewriteConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}
