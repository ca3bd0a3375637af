// Package flags binds the flag groups shared by mailshift commands and resolves
// whether the operator set them explicitly.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Inspect repositories and print the plan without rewriting anything"
	// ReportFlagName exposes the shared report flag name.
	ReportFlagName = "report"
	// ReportFlagUsage describes the shared report flag purpose.
	ReportFlagUsage = "Write a YAML summary of the run to this path"
)

// ExecutionDefaults describes default flag values.
type ExecutionDefaults struct {
	DryRun     bool
	ReportPath string
}

// ExecutionFlagDefinition captures a single flag's configuration.
type ExecutionFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// ExecutionFlagDefinitions groups execution flag definitions.
type ExecutionFlagDefinitions struct {
	DryRun ExecutionFlagDefinition
	Report ExecutionFlagDefinition
}

// DefaultExecutionFlagDefinitions enables both execution flags under their shared names.
func DefaultExecutionFlagDefinitions() ExecutionFlagDefinitions {
	return ExecutionFlagDefinitions{
		DryRun: ExecutionFlagDefinition{Name: DryRunFlagName, Usage: DryRunFlagUsage, Enabled: true},
		Report: ExecutionFlagDefinition{Name: ReportFlagName, Usage: ReportFlagUsage, Enabled: true},
	}
}

// ExecutionFlagValues reports parsed execution flags together with whether each was set.
type ExecutionFlagValues struct {
	DryRun        bool
	DryRunSet     bool
	ReportPath    string
	ReportPathSet bool
}

// BindExecutionFlags attaches execution flags to the command's local flag set.
func BindExecutionFlags(command *cobra.Command, defaults ExecutionDefaults, definitions ExecutionFlagDefinitions) {
	if command == nil {
		return
	}

	flagSet := command.Flags()
	if definitions.DryRun.Enabled && len(definitions.DryRun.Name) > 0 {
		flagSet.Bool(definitions.DryRun.Name, defaults.DryRun, definitions.DryRun.Usage)
	}
	if definitions.Report.Enabled && len(definitions.Report.Name) > 0 {
		flagSet.String(definitions.Report.Name, defaults.ReportPath, definitions.Report.Usage)
	}
}

// ResolveExecutionFlags reads the shared execution flags. The boolean result is
// false when the command carries none of them.
func ResolveExecutionFlags(command *cobra.Command) (ExecutionFlagValues, bool) {
	if command == nil {
		return ExecutionFlagValues{}, false
	}

	flagSet := command.Flags()
	values := ExecutionFlagValues{}
	available := false

	if dryRunFlag := flagSet.Lookup(DryRunFlagName); dryRunFlag != nil {
		available = true
		values.DryRun, _ = flagSet.GetBool(DryRunFlagName)
		values.DryRunSet = dryRunFlag.Changed
	}
	if reportFlag := flagSet.Lookup(ReportFlagName); reportFlag != nil {
		available = true
		values.ReportPath = reportFlag.Value.String()
		values.ReportPathSet = reportFlag.Changed
	}
	return values, available
}

// StringFlagChanged returns the flag value when the operator set it explicitly.
func StringFlagChanged(flagSet *pflag.FlagSet, name string) (string, bool) {
	if flagSet == nil {
		return "", false
	}
	flag := flagSet.Lookup(name)
	if flag == nil || !flag.Changed {
		return "", false
	}
	return flag.Value.String(), true
}
