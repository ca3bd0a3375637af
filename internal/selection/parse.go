package selection

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	selectAllTokenConstant                 = "all"
	selectionSeparatorConstant             = ","
	inputValidationErrorTemplateConstant   = "invalid selection %q: %s"
	emptySelectionMessageConstant          = "select at least one repository"
	noCandidatesMessageConstant            = "there are no repositories to select"
	nonNumericTokenMessageTemplateConstant = "%q is not a positive number"
	outOfRangeTokenMessageTemplateConstant = "%d is outside 1-%d"
)

// InputValidationError describes why a selection answer was rejected.
type InputValidationError struct {
	Input  string
	Reason string
}

// Error describes the rejected input.
func (validationError InputValidationError) Error() string {
	return fmt.Sprintf(inputValidationErrorTemplateConstant, validationError.Input, validationError.Reason)
}

// ParseSelection interprets input against candidateCount menu entries and returns
// zero-based indexes in the order given. The answer is either "all" (any case) or
// comma-separated 1-based numbers. Repeated numbers keep their first position. A
// single invalid token rejects the whole answer, and an empty result is invalid.
func ParseSelection(input string, candidateCount int) ([]int, error) {
	trimmedInput := strings.TrimSpace(input)
	if candidateCount <= 0 {
		return nil, InputValidationError{Input: trimmedInput, Reason: noCandidatesMessageConstant}
	}
	if len(trimmedInput) == 0 {
		return nil, InputValidationError{Input: trimmedInput, Reason: emptySelectionMessageConstant}
	}

	if strings.EqualFold(trimmedInput, selectAllTokenConstant) {
		indexes := make([]int, candidateCount)
		for index := range indexes {
			indexes[index] = index
		}
		return indexes, nil
	}

	seen := make(map[int]struct{})
	var indexes []int
	for _, token := range strings.Split(trimmedInput, selectionSeparatorConstant) {
		trimmedToken := strings.TrimSpace(token)
		position, conversionError := strconv.Atoi(trimmedToken)
		if conversionError != nil || position <= 0 {
			return nil, InputValidationError{Input: trimmedInput, Reason: fmt.Sprintf(nonNumericTokenMessageTemplateConstant, trimmedToken)}
		}
		if position > candidateCount {
			return nil, InputValidationError{Input: trimmedInput, Reason: fmt.Sprintf(outOfRangeTokenMessageTemplateConstant, position, candidateCount)}
		}

		index := position - 1
		if _, duplicate := seen[index]; duplicate {
			continue
		}
		seen[index] = struct{}{}
		indexes = append(indexes, index)
	}
	return indexes, nil
}
