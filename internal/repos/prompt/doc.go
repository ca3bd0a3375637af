// Package prompt implements operator prompts for mailshift commands.
//
// IOPrompter reads answers line by line from any reader, which keeps every
// interactive step scriptable. TerminalPrompter uses promptui when the input
// is an interactive terminal. AskUntilValid repeats a question until its
// answer parses.
package prompt
