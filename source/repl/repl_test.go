package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lmorg/readline"

	"github.com/tim-hardcastle/wordscript/source/test_helper"
)

func TestReplCommands(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `DEFINE:x 41 .`, Want: `41`},
		{Input: `add 1 .`, Want: `function not found "add int"`},
		{Input: `:tokens add 1 2 .`, Want: `WORD`},
		{Input: `:tree add 1 2 , return .`, Want: `Statement[1] "return int":fcw!int`},
		{Input: `:overloads if`, Want: `if bool bool action action`},
		{Input: `:overloads nonesuch`, Want: `nothing is registered`},
		{Input: `:help`, Want: `:overloads <name>`},
		{Input: `:nonesuch`, Want: `unknown command`},
		{Input: `:load nonesuch.ws`, Want: `nonesuch.ws`},
	}
	for _, test := range tests {
		sv := test_helper.NewTestService(t, &bytes.Buffer{})
		out := &bytes.Buffer{}
		if quit := Do(sv, test.Input, out); quit {
			t.Fatalf("Test failed with input %s | Wanted : no quitting | Got : quit.", test.Input)
		}
		if !strings.Contains(out.String(), test.Want) {
			t.Fatalf(`Test failed with input %s | Wanted : %s | Got : %s.`, test.Input, test.Want, out.String())
		}
	}
}

func TestReplKeepsVariables(t *testing.T) {
	sv := test_helper.NewTestService(t, &bytes.Buffer{})
	out := &bytes.Buffer{}
	for _, line := range []string{`DEFINE:x 41 .`, `x= IN add &x 1 . .`, `:vars`} {
		Do(sv, line, out)
	}
	if !strings.HasSuffix(out.String(), "x : int = 42\n") {
		t.Fatalf("Test failed | Wanted : x : int = 42 | Got : %s.", out.String())
	}
}

func TestReplQuits(t *testing.T) {
	sv := test_helper.NewTestService(t, &bytes.Buffer{})
	if !Do(sv, ":quit", &bytes.Buffer{}) {
		t.Fatalf("Test failed | Wanted : quit | Got : no quitting.")
	}
}

func TestCompleter(t *testing.T) {
	sv := test_helper.NewTestService(t, &bytes.Buffer{})
	line := []rune("add 1 IN array!int.fo")
	prefix, suggestions, _, _ := completer(sv)(line, len(line), readline.DelayedTabContext{})
	if prefix != "array!int.fo" || len(suggestions) != 1 || suggestions[0] != "rEach" {
		t.Fatalf("Test failed | Wanted : rEach | Got : %s %v.", prefix, suggestions)
	}
}
