package selection_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/mailshift/internal/repos/shared"
	"github.com/temirov/mailshift/internal/selection"
	"github.com/temirov/mailshift/internal/testsupport"
	"github.com/temirov/mailshift/internal/ui"
)

func buildCandidates(testInstance *testing.T, names ...string) []shared.RepositoryTarget {
	testInstance.Helper()
	candidates := make([]shared.RepositoryTarget, 0, len(names))
	for _, name := range names {
		target, targetError := shared.NewLocalTarget("/work/"+name, name)
		require.NoError(testInstance, targetError)
		candidates = append(candidates, target)
	}
	return candidates
}

func TestSelectorSelect(testInstance *testing.T) {
	candidates := buildCandidates(testInstance, "alpha", "beta", "gamma")

	testCases := []struct {
		name               string
		answers            []string
		expectedNames      []string
		expectedRejections int
	}{
		{name: "select_all", answers: []string{"all"}, expectedNames: []string{"alpha", "beta", "gamma"}},
		{name: "duplicates_collapsed", answers: []string{"1,1,2"}, expectedNames: []string{"alpha", "beta"}},
		{name: "reprompts_after_out_of_range", answers: []string{"1,9", "3"}, expectedNames: []string{"gamma"}, expectedRejections: 1},
		{name: "reprompts_after_garbage_and_empty", answers: []string{"x", "", "2"}, expectedNames: []string{"beta"}, expectedRejections: 2},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			prompter := testsupport.NewScriptedPrompter(testCase.answers...)
			output := &bytes.Buffer{}
			selector := selection.NewSelector(prompter, shared.NewWriterReporter(output), ui.NewPalette(false))

			selected, selectError := selector.Select(candidates)
			require.NoError(testInstance, selectError)

			var names []string
			for _, target := range selected.Targets() {
				names = append(names, target.DisplayName)
			}
			require.Equal(testInstance, testCase.expectedNames, names)
			require.Equal(testInstance, testCase.expectedRejections, strings.Count(output.String(), "Invalid input:"))
			require.Len(testInstance, prompter.ReceivedPrompts, len(testCase.answers))
			require.Contains(testInstance, output.String(), "    1) alpha /work/alpha\n")
			require.Contains(testInstance, output.String(), "    3) gamma /work/gamma\n")
		})
	}
}

func TestSelectorReturnsPrompterErrors(testInstance *testing.T) {
	candidates := buildCandidates(testInstance, "alpha")
	prompter := testsupport.NewScriptedPrompter("7")

	_, selectError := selection.NewSelector(prompter, nil, ui.NewPalette(false)).Select(candidates)
	require.ErrorIs(testInstance, selectError, io.EOF)
}

func TestSelectorWithoutCandidatesNeverAcceptsAnswer(testInstance *testing.T) {
	prompter := testsupport.NewScriptedPrompter("all", "1")
	output := &bytes.Buffer{}

	_, selectError := selection.NewSelector(prompter, shared.NewWriterReporter(output), ui.NewPalette(false)).Select(nil)
	require.ErrorIs(testInstance, selectError, io.EOF)
	require.Equal(testInstance, 2, strings.Count(output.String(), "Invalid input:"))
}

func TestSelectorRequiresPrompter(testInstance *testing.T) {
	_, selectError := selection.NewSelector(nil, nil, ui.NewPalette(false)).Select(buildCandidates(testInstance, "alpha"))
	require.ErrorIs(testInstance, selectError, selection.ErrPrompterNotConfigured)
}
