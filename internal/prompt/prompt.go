package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Confirmer asks the operator a yes/no question before a destructive step.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Terminal is a Confirmer reading answers from an input stream, normally
// stdin.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminal() *Terminal {
	return NewTerminalWithIO(os.Stdin, os.Stdout)
}

// NewTerminalWithIO creates a Terminal over explicit streams, useful for
// tests.
func NewTerminalWithIO(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Confirm prints the question and reads one line. Only "y", "yes" and "はい"
// count as consent; everything else, including EOF, declines.
func (t *Terminal) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprintf(t.out, "%s [y/N]: ", question); err != nil {
		return false, err
	}
	line, err := t.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "はい":
		return true, nil
	}
	return false, nil
}

// AutoYes consents to everything, for non-interactive runs that pass an
// explicit --yes flag.
type AutoYes struct{}

func (AutoYes) Confirm(string) (bool, error) {
	return true, nil
}

// Mock is a scripted Confirmer for testing.
type Mock struct {
	Answer    bool
	Err       error
	Questions []string
}

func (m *Mock) Confirm(question string) (bool, error) {
	m.Questions = append(m.Questions, question)
	if m.Err != nil {
		return false, m.Err
	}
	return m.Answer, nil
}
