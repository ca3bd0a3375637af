package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestResolveExecutionFlags(t *testing.T) {
	testCases := []struct {
		name           string
		arguments      []string
		expectedValues ExecutionFlagValues
	}{
		{
			name:           "defaults_not_marked_set",
			expectedValues: ExecutionFlagValues{},
		},
		{
			name:           "dry_run_set",
			arguments:      []string{"--" + DryRunFlagName},
			expectedValues: ExecutionFlagValues{DryRun: true, DryRunSet: true},
		},
		{
			name:           "explicit_false_is_still_set",
			arguments:      []string{"--" + DryRunFlagName + "=false", "--" + ReportFlagName, "run.yaml"},
			expectedValues: ExecutionFlagValues{DryRunSet: true, ReportPath: "run.yaml", ReportPathSet: true},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			command := &cobra.Command{}
			BindExecutionFlags(command, ExecutionDefaults{}, DefaultExecutionFlagDefinitions())
			require.NoError(t, command.ParseFlags(testCase.arguments))

			values, available := ResolveExecutionFlags(command)
			require.True(t, available)
			require.Equal(t, testCase.expectedValues, values)
		})
	}
}

func TestResolveExecutionFlagsWithoutBinding(t *testing.T) {
	_, available := ResolveExecutionFlags(&cobra.Command{})
	require.False(t, available)

	_, available = ResolveExecutionFlags(nil)
	require.False(t, available)
}
