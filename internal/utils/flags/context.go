package flags

import "github.com/spf13/cobra"

const (
	// DefaultRootFlagName exposes the shared repository root flag name.
	DefaultRootFlagName = "root"
	// DefaultRootFlagUsage describes the shared repository root flag purpose.
	DefaultRootFlagUsage = "Directories to scan for repositories (repeatable; positional arguments are accepted too)"
	// RemoteFlagName exposes the remote URL flag name.
	RemoteFlagName = "remote"
	// RemoteFlagUsage describes the remote URL flag purpose.
	RemoteFlagUsage = "Repository URL to clone and rewrite (repeatable; switches to remote mode)"
	// MatchFlagName exposes the candidate filter flag name.
	MatchFlagName = "match"
	// MatchFlagUsage describes the candidate filter flag purpose.
	MatchFlagUsage = "Fuzzy pattern narrowing the discovered repositories"
	// SourceEmailFlagName exposes the source email flag name.
	SourceEmailFlagName = "from"
	// SourceEmailFlagUsage describes the source email flag purpose.
	SourceEmailFlagUsage = "Email address to replace (prompted when empty)"
	// DestinationEmailFlagName exposes the destination email flag name.
	DestinationEmailFlagName = "to"
	// DestinationEmailFlagUsage describes the destination email flag purpose.
	DestinationEmailFlagUsage = "Replacement email address (prompted when empty)"
	// CloneDirectoryFlagName exposes the clone workspace flag name.
	CloneDirectoryFlagName = "clone-dir"
	// CloneDirectoryFlagUsage describes the clone workspace flag purpose.
	CloneDirectoryFlagUsage = "Directory receiving clones of remote repositories"
)

// RootFlagDefinition captures configuration for repository root flags.
type RootFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// RootFlagValues stores repository root flag values.
type RootFlagValues struct {
	Roots []string
}

// BindRootFlags attaches a repeatable repository root flag to the command.
func BindRootFlags(command *cobra.Command, defaults RootFlagValues, definition RootFlagDefinition) *RootFlagValues {
	values := RootFlagValues{Roots: append([]string{}, defaults.Roots...)}
	if command == nil || !definition.Enabled {
		return &values
	}

	flagName := definition.Name
	if len(flagName) == 0 {
		flagName = DefaultRootFlagName
	}
	flagUsage := definition.Usage
	if len(flagUsage) == 0 {
		flagUsage = DefaultRootFlagUsage
	}

	if command.Flags().Lookup(flagName) == nil {
		command.Flags().StringSliceVar(&values.Roots, flagName, values.Roots, flagUsage)
	}
	return &values
}

// TargetFlagValues stores the flags describing which repositories to rewrite and how.
type TargetFlagValues struct {
	RemoteURLs       []string
	Match            string
	SourceEmail      string
	DestinationEmail string
	CloneDirectory   string
}

// BindTargetFlags attaches the remote, match, identity, and clone workspace flags.
// Remote URLs use a string array so URLs are never split on commas.
func BindTargetFlags(command *cobra.Command) *TargetFlagValues {
	values := &TargetFlagValues{}
	if command == nil {
		return values
	}

	flagSet := command.Flags()
	flagSet.StringArrayVar(&values.RemoteURLs, RemoteFlagName, nil, RemoteFlagUsage)
	flagSet.StringVar(&values.Match, MatchFlagName, "", MatchFlagUsage)
	flagSet.StringVar(&values.SourceEmail, SourceEmailFlagName, "", SourceEmailFlagUsage)
	flagSet.StringVar(&values.DestinationEmail, DestinationEmailFlagName, "", DestinationEmailFlagUsage)
	flagSet.StringVar(&values.CloneDirectory, CloneDirectoryFlagName, "", CloneDirectoryFlagUsage)
	return values
}
