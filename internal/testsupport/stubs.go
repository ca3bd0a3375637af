package testsupport

import (
	"io"
	"strings"

	"github.com/temirov/mailshift/internal/repos/shared"
)

const (
	affirmativeShortAnswerConstant = "y"
	affirmativeLongAnswerConstant  = "yes"
)

// InterruptAnswer makes ScriptedPrompter report shared.ErrPromptInterrupted, as a terminal prompt does on Ctrl-C.
const InterruptAnswer = "<interrupt>"

// RepositoryDiscovererStub implements repository discovery for tests.
type RepositoryDiscovererStub struct {
	Repositories   []string
	DiscoveryError error
	ReceivedRoots  []string
}

// DiscoverRepositories records the requested roots and returns the configured repositories.
func (discoverer *RepositoryDiscovererStub) DiscoverRepositories(roots []string) ([]string, error) {
	discoverer.ReceivedRoots = append([]string{}, roots...)
	if discoverer.DiscoveryError != nil {
		return nil, discoverer.DiscoveryError
	}
	return append([]string{}, discoverer.Repositories...), nil
}

// ScriptedPrompter answers prompts from a fixed queue. Confirm treats an empty
// answer as the default and y/yes as affirmative. An exhausted queue yields io.EOF
// and InterruptAnswer yields shared.ErrPromptInterrupted.
type ScriptedPrompter struct {
	Answers         []string
	ReceivedPrompts []string
}

// NewScriptedPrompter constructs a prompter replaying answers in order.
func NewScriptedPrompter(answers ...string) *ScriptedPrompter {
	return &ScriptedPrompter{Answers: append([]string{}, answers...)}
}

// Ask returns the next scripted answer.
func (prompter *ScriptedPrompter) Ask(prompt string) (string, error) {
	prompter.ReceivedPrompts = append(prompter.ReceivedPrompts, prompt)
	if len(prompter.Answers) == 0 {
		return "", io.EOF
	}
	answer := prompter.Answers[0]
	prompter.Answers = prompter.Answers[1:]
	if answer == InterruptAnswer {
		return "", shared.ErrPromptInterrupted
	}
	return answer, nil
}

// Confirm interprets the next scripted answer as a yes/no response.
func (prompter *ScriptedPrompter) Confirm(prompt string, defaultAnswer bool) (bool, error) {
	answer, askError := prompter.Ask(prompt)
	if askError != nil {
		return false, askError
	}
	normalized := strings.ToLower(strings.TrimSpace(answer))
	if len(normalized) == 0 {
		return defaultAnswer, nil
	}
	return normalized == affirmativeShortAnswerConstant || normalized == affirmativeLongAnswerConstant, nil
}

// Remaining reports how many answers were not consumed.
func (prompter *ScriptedPrompter) Remaining() int {
	return len(prompter.Answers)
}
