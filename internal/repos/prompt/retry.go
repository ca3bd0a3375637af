package prompt

import "github.com/temirov/mailshift/internal/repos/shared"

const invalidAnswerTemplateConstant = "Invalid input: %v\n"

// AskUntilValid asks question until parse accepts the answer. Each rejected
// answer is reported and the question is asked again; there is no attempt limit.
// Only errors returned by the prompter itself end the loop early.
func AskUntilValid[T any](prompter shared.Prompter, reporter shared.Reporter, question string, parse func(string) (T, error)) (T, error) {
	for {
		answer, askError := prompter.Ask(question)
		if askError != nil {
			var zero T
			return zero, askError
		}

		value, parseError := parse(answer)
		if parseError == nil {
			return value, nil
		}
		if reporter != nil {
			reporter.Printf(invalidAnswerTemplateConstant, parseError)
		}
	}
}
