package selection_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/mailshift/internal/selection"
)

func TestParseSelection(testInstance *testing.T) {
	testCases := []struct {
		name            string
		input           string
		candidateCount  int
		expectedIndexes []int
		expectError     bool
	}{
		{name: "all_lowercase", input: "all", candidateCount: 3, expectedIndexes: []int{0, 1, 2}},
		{name: "all_mixed_case_padded", input: "  ALL ", candidateCount: 2, expectedIndexes: []int{0, 1}},
		{name: "all_single_candidate", input: "All", candidateCount: 1, expectedIndexes: []int{0}},
		{name: "all_without_candidates", input: "all", candidateCount: 0, expectError: true},
		{name: "single_index", input: "2", candidateCount: 3, expectedIndexes: []int{1}},
		{name: "order_preserved", input: "3,1", candidateCount: 3, expectedIndexes: []int{2, 0}},
		{name: "duplicates_collapsed", input: "1,1,2", candidateCount: 3, expectedIndexes: []int{0, 1}},
		{name: "duplicates_keep_first_position", input: "2, 1 ,2", candidateCount: 3, expectedIndexes: []int{1, 0}},
		{name: "out_of_range_rejects_all", input: "1,4", candidateCount: 3, expectError: true},
		{name: "zero_rejected", input: "0", candidateCount: 3, expectError: true},
		{name: "negative_rejected", input: "-1", candidateCount: 3, expectError: true},
		{name: "non_numeric_rejects_all", input: "1,two", candidateCount: 3, expectError: true},
		{name: "empty_token_rejected", input: "1,,2", candidateCount: 3, expectError: true},
		{name: "empty_input_rejected", input: "   ", candidateCount: 3, expectError: true},
		{name: "all_mixed_with_numbers_rejected", input: "all,1", candidateCount: 3, expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			indexes, parseError := selection.ParseSelection(testCase.input, testCase.candidateCount)
			if testCase.expectError {
				var validationError selection.InputValidationError
				require.True(testInstance, errors.As(parseError, &validationError))
				require.Nil(testInstance, indexes)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedIndexes, indexes)
		})
	}
}

func TestParseSelectionAllScalesWithCandidates(testInstance *testing.T) {
	for _, candidateCount := range []int{1, 5, 250} {
		indexes, parseError := selection.ParseSelection("all", candidateCount)
		require.NoError(testInstance, parseError)
		require.Len(testInstance, indexes, candidateCount)
		require.Equal(testInstance, 0, indexes[0])
		require.Equal(testInstance, candidateCount-1, indexes[candidateCount-1])
	}
}
