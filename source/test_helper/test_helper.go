package test_helper

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tim-hardcastle/wordscript/source/err"
	"github.com/tim-hardcastle/wordscript/source/settings"
	"github.com/tim-hardcastle/wordscript/source/stdlib"
	"github.com/tim-hardcastle/wordscript/source/text"
	"github.com/tim-hardcastle/wordscript/source/ws"
)

// Auxiliary types and functions for testing the parser and evaluator.

type TestItem struct {
	Input string
	Want  string
}

// Runs each test on a fresh service with the standard library, minus the parts that talk to
// the outside world. Whatever the scripts print is discarded.
func RunTest(t *testing.T, tests []TestItem, F func(sv *ws.Service, s string) (string, error)) {
	for _, test := range tests {
		if settings.SHOW_TESTS {
			println(text.BULLET + "Running test " + text.Emph(test.Input))
		}
		sv := NewTestService(t, &bytes.Buffer{})
		got, e := F(sv, test.Input)
		if e != nil {
			t.Fatalf("There were errors running the test with input %s : \n%s", test.Input, e.Error())
		}
		if !(test.Want == got) {
			t.Fatalf(`Test failed with input %s | Wanted : %s | Got : %s.`, test.Input, test.Want, got)
		}
	}
}

func NewTestService(t *testing.T, out *bytes.Buffer) *ws.Service {
	reg, e := stdlib.NewRegistry(stdlib.Options{Out: out, NoSQL: true, NoCrypto: true})
	if e != nil {
		t.Fatalf("There were errors making the registry : \n%s", e.Error())
	}
	return ws.NewService(reg)
}

// Runs the input as a program and renders what it evaluates to.
func TestValues(sv *ws.Service, s string) (string, error) {
	v, e := sv.Run(s, "test")
	if e != nil {
		return "", e
	}
	return sv.Describe(v), nil
}

// Runs the input as a program and returns the identifier of the error it produces.
func TestErrors(sv *ws.Service, s string) (string, error) {
	_, e := sv.Run(s, "test")
	if e == nil {
		return "unexpected successful evaluation", nil
	}
	if id := err.Id(e); id != "" {
		return id, nil
	}
	return e.Error(), nil
}

// Runs each line of the input in turn as though it had been entered into the REPL, and
// renders the value of the last.
func TestLines(sv *ws.Service, s string) (string, error) {
	result := ""
	for _, line := range strings.Split(s, "\n") {
		v, e := sv.Do(line)
		if e != nil {
			if id := err.Id(e); id != "" {
				return id, nil
			}
			return "", e
		}
		result = sv.Describe(v)
	}
	return result, nil
}
