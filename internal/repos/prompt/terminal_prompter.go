package prompt

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"github.com/temirov/mailshift/internal/repos/shared"
)

const (
	plainPromptTemplateConstant    = "{{ . }}"
	confirmationDefaultYesConstant = "y"
)

var plainPromptTemplates = &promptui.PromptTemplates{
	Prompt:  plainPromptTemplateConstant,
	Valid:   plainPromptTemplateConstant,
	Invalid: plainPromptTemplateConstant,
	Success: plainPromptTemplateConstant,
}

// TerminalPrompter prompts through promptui on an interactive terminal.
type TerminalPrompter struct{}

// NewTerminalPrompter constructs a TerminalPrompter.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{}
}

// Ask reads a free-text answer.
func (prompter *TerminalPrompter) Ask(prompt string) (string, error) {
	textPrompt := promptui.Prompt{
		Label:     strings.TrimSpace(prompt) + " ",
		Templates: plainPromptTemplates,
	}
	answer, runError := textPrompt.Run()
	if runError != nil {
		return "", translatePromptError(runError)
	}
	return strings.TrimSpace(answer), nil
}

// Confirm asks a yes/no question. promptui reports a negative answer as ErrAbort.
func (prompter *TerminalPrompter) Confirm(prompt string, defaultAnswer bool) (bool, error) {
	confirmationPrompt := promptui.Prompt{
		Label:     strings.TrimSpace(prompt),
		IsConfirm: true,
	}
	if defaultAnswer {
		confirmationPrompt.Default = confirmationDefaultYesConstant
	}

	_, runError := confirmationPrompt.Run()
	if runError == nil {
		return true, nil
	}
	if errors.Is(runError, promptui.ErrAbort) {
		return false, nil
	}
	return false, translatePromptError(runError)
}

func translatePromptError(promptError error) error {
	switch {
	case errors.Is(promptError, promptui.ErrEOF):
		return io.EOF
	case errors.Is(promptError, promptui.ErrInterrupt):
		return shared.ErrPromptInterrupted
	default:
		return promptError
	}
}

// NewPrompter returns a TerminalPrompter when input is the process's interactive
// standard input and an IOPrompter over input and output otherwise.
func NewPrompter(input io.Reader, output io.Writer) shared.Prompter {
	if inputFile, isFile := input.(*os.File); isFile && inputFile == os.Stdin && isTerminal(inputFile) {
		return NewTerminalPrompter()
	}
	return NewIOPrompter(input, output)
}

func isTerminal(file *os.File) bool {
	descriptor := file.Fd()
	return isatty.IsTerminal(descriptor) || isatty.IsCygwinTerminal(descriptor)
}
