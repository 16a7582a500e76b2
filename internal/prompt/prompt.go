package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned when a prompt is requested without a terminal
// attached.
var ErrNotInteractive = errors.New("stdin is not a terminal")

// Terminal prompts on a terminal. Answers are line-buffered and unmasked.
// One reader spans all prompts so consecutive answers on the same stream are
// not lost to buffering.
type Terminal struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewTerminal builds a Terminal bound to stdin/stdout.
func NewTerminal() *Terminal {
	return &Terminal{
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}
}

// NewTerminalWith builds a Terminal over arbitrary streams, treating them as
// interactive. Used by command tests.
func NewTerminalWith(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out, interactive: true}
}

// Line prints the label and reads one line, trimmed of the trailing newline.
func (t *Terminal) Line(label string) (string, error) {
	if !t.interactive {
		return "", ErrNotInteractive
	}
	fmt.Fprintf(t.out, "%s: ", label)
	line, err := t.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks a yes/no question and accepts y/yes (any case) as affirmative.
// Anything else, including an empty answer, declines.
func (t *Terminal) Confirm(question string) (bool, error) {
	if !t.interactive {
		return false, ErrNotInteractive
	}
	fmt.Fprintf(t.out, "%s [y/N]: ", question)
	line, err := t.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Script answers prompts from prepared values. Line answers are consumed in
// order; Confirm always returns Accept.
type Script struct {
	Lines  []string
	Accept bool
}

// Line pops the next scripted answer.
func (s *Script) Line(label string) (string, error) {
	if len(s.Lines) == 0 {
		return "", fmt.Errorf("no scripted answer for %q", label)
	}
	answer := s.Lines[0]
	s.Lines = s.Lines[1:]
	return answer, nil
}

// Confirm returns the scripted decision.
func (s *Script) Confirm(string) (bool, error) {
	return s.Accept, nil
}
