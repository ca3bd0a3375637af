package execshell_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/mailshift/internal/execshell"
)

const shellExecutableConstant = execshell.CommandName("sh")

func TestOSCommandRunnerReportsExitCodes(testInstance *testing.T) {
	if _, lookupError := exec.LookPath(string(shellExecutableConstant)); lookupError != nil {
		testInstance.Skip("sh is not available")
	}

	testCases := []struct {
		name             string
		script           string
		environment      map[string]string
		expectedExitCode int
		expectedOutput   string
		expectedError    string
	}{
		{
			name:           "success_captures_stdout",
			script:         "printf hello",
			expectedOutput: "hello",
		},
		{
			name:             "non_zero_exit_is_not_an_error",
			script:           "printf boom >&2; exit 3",
			expectedExitCode: 3,
			expectedError:    "boom",
		},
		{
			name:           "environment_overrides_are_visible",
			script:         "printf \"$MAILSHIFT_TEST_VALUE\"",
			environment:    map[string]string{"MAILSHIFT_TEST_VALUE": "override"},
			expectedOutput: "override",
		},
	}

	runner := execshell.NewOSCommandRunner()
	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			result, runError := runner.Run(context.Background(), execshell.ShellCommand{
				Name: shellExecutableConstant,
				Details: execshell.CommandDetails{
					Arguments:            []string{"-c", testCase.script},
					WorkingDirectory:     testInstance.TempDir(),
					EnvironmentVariables: testCase.environment,
				},
			})
			require.NoError(testInstance, runError)
			require.Equal(testInstance, testCase.expectedExitCode, result.ExitCode)
			require.Equal(testInstance, testCase.expectedOutput, result.StandardOutput)
			require.Equal(testInstance, testCase.expectedError, result.StandardError)
		})
	}
}

func TestOSCommandRunnerFailsForMissingExecutable(testInstance *testing.T) {
	runner := execshell.NewOSCommandRunner()
	_, runError := runner.Run(context.Background(), execshell.ShellCommand{Name: execshell.CommandName("mailshift-missing-executable")})
	require.Error(testInstance, runError)
}
