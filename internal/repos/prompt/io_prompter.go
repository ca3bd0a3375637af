package prompt

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const (
	defaultNoConfirmationSuffixConstant  = " [y/N] "
	defaultYesConfirmationSuffixConstant = " [Y/n] "
	affirmativeShortAnswerConstant       = "y"
	affirmativeLongAnswerConstant        = "yes"
)

// IOPrompter reads operator answers from an io.Reader and writes prompts to an io.Writer.
type IOPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOPrompter constructs a prompter from the provided reader and writer.
func NewIOPrompter(input io.Reader, output io.Writer) *IOPrompter {
	return &IOPrompter{reader: bufio.NewReader(input), writer: output}
}

// Ask writes the prompt and returns the next input line without surrounding whitespace.
// It returns io.EOF once the input is exhausted.
func (prompter *IOPrompter) Ask(prompt string) (string, error) {
	if writeError := prompter.write(prompt); writeError != nil {
		return "", writeError
	}
	return prompter.readLine()
}

// Confirm asks a yes/no question. An empty answer selects defaultAnswer; y/yes
// confirms; any other text declines.
func (prompter *IOPrompter) Confirm(prompt string, defaultAnswer bool) (bool, error) {
	suffix := defaultNoConfirmationSuffixConstant
	if defaultAnswer {
		suffix = defaultYesConfirmationSuffixConstant
	}
	if writeError := prompter.write(prompt + suffix); writeError != nil {
		return false, writeError
	}

	response, readError := prompter.readLine()
	if readError != nil {
		return false, readError
	}

	switch strings.ToLower(response) {
	case "":
		return defaultAnswer, nil
	case affirmativeShortAnswerConstant, affirmativeLongAnswerConstant:
		return true, nil
	default:
		return false, nil
	}
}

func (prompter *IOPrompter) write(text string) error {
	if prompter.writer == nil {
		return nil
	}
	_, writeError := io.WriteString(prompter.writer, text)
	return writeError
}

func (prompter *IOPrompter) readLine() (string, error) {
	response, readError := prompter.reader.ReadString('\n')
	if readError != nil {
		if !errors.Is(readError, io.EOF) {
			return "", readError
		}
		if len(response) == 0 {
			return "", io.EOF
		}
	}
	return strings.TrimSpace(response), nil
}
