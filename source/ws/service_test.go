package ws_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tim-hardcastle/wordscript/source/err"
	"github.com/tim-hardcastle/wordscript/source/test_helper"
	"github.com/tim-hardcastle/wordscript/source/text"
	"github.com/tim-hardcastle/wordscript/source/values"
)

func TestLines(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: "DEFINE:x 1 .", Want: `1`},
		{Input: "DEFINE:x 1 .\nx= IN add &x 1 . .\n&x .", Want: `2`},
		{Input: "DEFINE:&r 5 .\nx= 1 .", Want: `var/undefined/c`},
		{Input: "DEFINE:s \"a\" .\nBLOCK s= \"b\" . END , .invoke .\n&s .", Want: `"b"`},
		{Input: "add 1 2 . add 3 4 .", Want: text.OK},
		{Input: "", Want: text.OK},
	}
	test_helper.RunTest(t, tests, test_helper.TestLines)
}

func TestFailedLinesAreRolledBack(t *testing.T) {
	sv := test_helper.NewTestService(t, &bytes.Buffer{})
	if _, e := sv.Do("DEFINE:x 1 ."); e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	if _, e := sv.Do("DEFINE:y 2 . add 1 ."); err.Id(e) != "type/function" {
		t.Fatalf("Test failed | Wanted : type/function | Got : %v.", e)
	}
	if _, e := sv.Do("DEFINE:y 3 ."); e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	got, e := sv.Do("add &x &y .")
	if e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	if got.V.(int) != 4 {
		t.Fatalf("Test failed | Wanted : 4 | Got : %s.", got.String())
	}
	if sv.Environment().Root().Len() != 3 {
		t.Fatalf("Test failed | Wanted : 3 nodes in the root block | Got : %d.", sv.Environment().Root().Len())
	}
}

func TestRootReferencesPersist(t *testing.T) {
	sv := test_helper.NewTestService(t, &bytes.Buffer{})
	got, e := sv.Do("DEFINE:&r 5 .")
	if e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	if _, e := sv.Do("r= 6 ."); e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	val, e := got.V.(values.Reference).Get()
	if e != nil {
		t.Fatalf("Test failed | Wanted : 6 | Got : %s.", e.Error())
	}
	if val.V.(int) != 6 {
		t.Fatalf("Test failed | Wanted : 6 | Got : %s.", val.String())
	}
}

func TestHostVariables(t *testing.T) {
	sv := test_helper.NewTestService(t, &bytes.Buffer{})
	if e := sv.DefineVariable("greeting", "string", values.Str("hello")); e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	got, e := sv.Run(`add &greeting " world" , return .`, "test")
	if e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	if got.V.(string) != "hello world" {
		t.Fatalf("Test failed | Wanted : hello world | Got : %s.", got.String())
	}
	if _, e := sv.Do(`greeting= "bye" .`); e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	val, e := sv.GetVariable("greeting")
	if e != nil || val.V.(string) != "bye" {
		t.Fatalf("Test failed | Wanted : bye | Got : %v, %v.", val, e)
	}
	if _, e := sv.GetVariable("nonesuch"); err.Id(e) != "var/undefined/d" {
		t.Fatalf("Test failed | Wanted : var/undefined/d | Got : %v.", e)
	}
	if e := sv.DefineVariable("n", "int", values.Str("one")); err.Id(e) != "eval/type" {
		t.Fatalf("Test failed | Wanted : eval/type | Got : %v.", e)
	}
	if e := sv.DefineVariable("m", "nonesuch", values.Int(1)); err.Id(e) != "type/registered" {
		t.Fatalf("Test failed | Wanted : type/registered | Got : %v.", e)
	}
	if names := strings.Join(sv.VariableNames(), " "); names != "greeting" {
		t.Fatalf("Test failed | Wanted : greeting | Got : %s.", names)
	}
	if e := sv.DefineVariable("n", "int", values.Int(1)); e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	if names := strings.Join(sv.VariableNames(), " "); names != "greeting n" {
		t.Fatalf("Test failed | Wanted : greeting n | Got : %s.", names)
	}
}

func TestDeclarationsBesideHostVariables(t *testing.T) {
	sv := test_helper.NewTestService(t, &bytes.Buffer{})
	if e := sv.DefineVariable("x", "int", values.Int(7)); e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	b, e := sv.Parse(`DEFINE:y:int . &y . y= 0 . &x . x= &y .`, "test")
	if e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	y := b.Scope().Lookup("y")
	if y == nil || sv.TypeName(y.Type()) != "int" {
		t.Fatalf("Test failed | Wanted : y of type int | Got : %v.", y)
	}
	if _, e := b.Evaluate(); e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	x, _ := sv.GetVariable("x")
	if x.V.(int) != 0 {
		t.Fatalf("Test failed | Wanted : 0 | Got : %s.", x.String())
	}
	_, e = sv.Run(`x= "a" .`, "test")
	if err.Id(e) != "var/assign" || !err.IsKind(e, err.VARIABLE_ERROR) {
		t.Fatalf("Test failed | Wanted : var/assign | Got : %v.", e)
	}
}

func TestProgramsAreFreshEachRun(t *testing.T) {
	sv := test_helper.NewTestService(t, &bytes.Buffer{})
	for range 2 {
		got, e := sv.Run(`DEFINE:x:int . x= IN add &x 1 . . return &x .`, "test")
		if e != nil {
			t.Fatalf("Unexpected error : %s", e.Error())
		}
		if got.V.(int) != 1 {
			t.Fatalf("Test failed | Wanted : 1 | Got : %s.", got.String())
		}
	}
}

func TestRunFile(t *testing.T) {
	out := &bytes.Buffer{}
	sv := test_helper.NewTestService(t, out)
	path := filepath.Join(t.TempDir(), "hello.ws")
	if e := os.WriteFile(path, []byte("println \"hello\" .\nreturn 42 .\n"), 0644); e != nil {
		t.Fatal(e)
	}
	got, e := sv.RunFile(path)
	if e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	if got.V.(int) != 42 || out.String() != "hello\n" {
		t.Fatalf(`Test failed | Wanted : 42 and "hello\n" | Got : %s and %q.`, got.String(), out.String())
	}
	if _, e := sv.RunFile(filepath.Join(t.TempDir(), "nonesuch.ws")); e == nil {
		t.Fatalf("Test failed | Wanted : an error | Got : nil.")
	}
}

func TestErrorReport(t *testing.T) {
	sv := test_helper.NewTestService(t, &bytes.Buffer{})
	_, e := sv.Run("add 1 2 .\nnot 1 .", "test")
	if e == nil {
		t.Fatalf("Test failed | Wanted : an error | Got : nil.")
	}
	report := sv.ErrorReport(e)
	if !strings.Contains(report, "at line 2:1 of 'test'") || !strings.Contains(report, "2 | not 1 .") {
		t.Fatalf("Test failed | Wanted : a located report | Got : %s.", report)
	}
	if sv.LastError() != e {
		t.Fatalf("Test failed | Wanted : the last error | Got : %v.", sv.LastError())
	}
	if why := sv.Why(); why == "" || why == "There is no error to explain." {
		t.Fatalf("Test failed | Wanted : an explanation | Got : %s.", why)
	}
}

func TestTokens(t *testing.T) {
	sv := test_helper.NewTestService(t, &bytes.Buffer{})
	toks, e := sv.Tokens(`add 1 2 , return .`)
	if e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	if len(toks) != 6 {
		t.Fatalf("Test failed | Wanted : 6 tokens | Got : %v.", toks)
	}
}
