package prompt_test

import (
	"bytes"
	"strings"
	"testing"

	"toniecloud/internal/prompt"
)

func TestTerminalLineTrimsNewline(t *testing.T) {
	var out bytes.Buffer
	term := prompt.NewTerminalWith(strings.NewReader("alex@example.com\n"), &out)
	line, err := term.Line("Username")
	if err != nil {
		t.Fatalf("Line returned error: %v", err)
	}
	if line != "alex@example.com" {
		t.Fatalf("unexpected line %q", line)
	}
	if !strings.Contains(out.String(), "Username: ") {
		t.Fatalf("expected label in output, got %q", out.String())
	}
}

func TestTerminalLineAcceptsEOFWithoutNewline(t *testing.T) {
	term := prompt.NewTerminalWith(strings.NewReader("secret"), &bytes.Buffer{})
	line, err := term.Line("Password")
	if err != nil {
		t.Fatalf("Line returned error: %v", err)
	}
	if line != "secret" {
		t.Fatalf("unexpected line %q", line)
	}
}

func TestTerminalConfirm(t *testing.T) {
	for answer, want := range map[string]bool{
		"y\n":    true,
		"Y\n":    true,
		"yes\n":  true,
		"YES\n":  true,
		"\n":     false,
		"n\n":    false,
		"nope\n": false,
	} {
		term := prompt.NewTerminalWith(strings.NewReader(answer), &bytes.Buffer{})
		got, err := term.Confirm("Remove?")
		if err != nil {
			t.Fatalf("Confirm(%q) returned error: %v", answer, err)
		}
		if got != want {
			t.Fatalf("Confirm(%q) = %v, want %v", answer, got, want)
		}
	}
}

func TestScriptConsumesAnswersInOrder(t *testing.T) {
	script := &prompt.Script{Lines: []string{"first", "second"}, Accept: true}
	if line, _ := script.Line("a"); line != "first" {
		t.Fatalf("unexpected first answer %q", line)
	}
	if line, _ := script.Line("b"); line != "second" {
		t.Fatalf("unexpected second answer %q", line)
	}
	if _, err := script.Line("c"); err == nil {
		t.Fatal("expected error once answers are exhausted")
	}
	if ok, _ := script.Confirm("anything"); !ok {
		t.Fatal("expected scripted confirmation")
	}
}
