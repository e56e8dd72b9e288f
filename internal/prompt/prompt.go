package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/term"
)

// ErrNotInteractive is returned when input is needed but stdin is not a terminal.
var ErrNotInteractive = errors.New("interactive input required but stdin is not a terminal")

// Prompter asks the operator for values.
type Prompter interface {
	// Input asks for a line of text. An empty answer yields defaultValue.
	Input(message, defaultValue string) (string, error)
	// Password asks for a secret without echoing it. An empty answer is
	// returned as-is so the caller can fall back to a stored value.
	Password(message string) (string, error)
}

// Survey prompts on the controlling terminal.
type Survey struct {
	isTerminal func() bool
}

func NewSurvey() *Survey {
	return &Survey{
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

func (s *Survey) ensureTerminal() error {
	if !s.isTerminal() {
		return ErrNotInteractive
	}
	return nil
}

func (s *Survey) Input(message, defaultValue string) (string, error) {
	if err := s.ensureTerminal(); err != nil {
		return "", err
	}

	var answer string
	if err := survey.AskOne(&survey.Input{Message: message, Default: defaultValue}, &answer); err != nil {
		return "", fmt.Errorf("prompt %q: %w", message, err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

func (s *Survey) Password(message string) (string, error) {
	if err := s.ensureTerminal(); err != nil {
		return "", err
	}

	var answer string
	if err := survey.AskOne(&survey.Password{Message: message}, &answer); err != nil {
		return "", fmt.Errorf("prompt %q: %w", message, err)
	}
	return answer, nil
}

var _ Prompter = (*Survey)(nil)
