package rewrite

import (
	"errors"
	"fmt"
	"strings"
)

const (
	sourceEmailRequiredMessageConstant      = "source email must not be empty"
	destinationEmailRequiredMessageConstant = "destination email must not be empty"
	ruleDescriptionTemplateConstant         = "%s → %s"
)

var (
	// ErrSourceEmailRequired indicates the rule has no source email.
	ErrSourceEmailRequired = errors.New(sourceEmailRequiredMessageConstant)
	// ErrDestinationEmailRequired indicates the rule has no destination email.
	ErrDestinationEmailRequired = errors.New(destinationEmailRequiredMessageConstant)
)

// Rule replaces one exact email address with another.
type Rule struct {
	SourceEmail      string
	DestinationEmail string
}

// NewRule trims both addresses and rejects empty values.
func NewRule(sourceEmail string, destinationEmail string) (Rule, error) {
	trimmedSource := strings.TrimSpace(sourceEmail)
	if len(trimmedSource) == 0 {
		return Rule{}, ErrSourceEmailRequired
	}
	trimmedDestination := strings.TrimSpace(destinationEmail)
	if len(trimmedDestination) == 0 {
		return Rule{}, ErrDestinationEmailRequired
	}
	return Rule{SourceEmail: trimmedSource, DestinationEmail: trimmedDestination}, nil
}

// Matches reports whether email equals the source address byte for byte.
func (rule Rule) Matches(email string) bool {
	return email == rule.SourceEmail
}

// Apply maps email through the rule.
func (rule Rule) Apply(email string) string {
	if rule.Matches(email) {
		return rule.DestinationEmail
	}
	return email
}

// String renders the rule for operator output.
func (rule Rule) String() string {
	return fmt.Sprintf(ruleDescriptionTemplateConstant, rule.SourceEmail, rule.DestinationEmail)
}
