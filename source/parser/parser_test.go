package parser_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tim-hardcastle/wordscript/source/ast"
	"github.com/tim-hardcastle/wordscript/source/err"
	"github.com/tim-hardcastle/wordscript/source/parser"
	"github.com/tim-hardcastle/wordscript/source/test_helper"
	"github.com/tim-hardcastle/wordscript/source/values"
	"github.com/tim-hardcastle/wordscript/source/ws"
)

func TestParser(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `add 10 15 .`, Want: `add 10 15 .`},
		{Input: `add 10 15 , return .`, Want: `return IN add 10 15 . .`},
		{Input: `add 1.5f 2 .`, Want: `add IN int 1.5f . 2 .`},
		{Input: `add 1.5f 2f .`, Want: `add 1.5f 2f .`},
		{Input: `add "a" 1 .`, Want: `add "a" IN string 1 . .`},
		{Input: `sub "5" 1 .`, Want: `sub IN int "5" . 1 .`},
		{Input: `add IN mul 2 3 . 4 .`, Want: `add IN mul 2 3 . 4 .`},
		{Input: `add 1 2 , mul 3 , return .`, Want: `return IN mul IN add 1 2 . 3 . .`},
		{Input: `DEFINE:x 1 . x= IN add &x 1 . .`, Want: `DEFINE:x 1 . x= IN add &x 1 . .`},
		{Input: `DEFINE:a array!int . &a , .push 5 .`, Want: `DEFINE:a array!int . .push &a 5 .`},
		{Input: `if true ACTION println . END .`, Want: `if true ACTION .`},
		{Input: `string 1 2.5f true "a" .`, Want: `string 1 2.5f true "a" .`},
	}
	test_helper.RunTest(t, tests, testParserOutput)
}

func TestParserErrors(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `. add 1 2 .`, Want: `parse/unexpected`},
		{Input: `, add 1 2 .`, Want: `parse/unexpected`},
		{Input: `IN add 1 2 . .`, Want: `parse/in`},
		{Input: `add IN`, Want: `parse/eof/a`},
		{Input: `add 1 2`, Want: `parse/eof/b`},
		{Input: `add 1 2 ,`, Want: `parse/eof/c`},
		{Input: `"a" 1 .`, Want: `parse/argument`},
		{Input: `FOO 1 .`, Want: `parse/keyword`},
		{Input: `END .`, Want: `parse/end`},
		{Input: `add 1 END .`, Want: `parse/unexpected`},
		{Input: `BLOCK add 1 2 .`, Want: `parse/eof/block`},
		{Input: `add 1 2 , "a" .`, Want: `parse/pipe/string`},
		{Input: `add 1 2 , 5 .`, Want: `parse/pipe/number`},
		{Input: `add 1 2 , BLOCK 1 . END .`, Want: `parse/pipe/literal`},
		{Input: `add 1.5 2 .`, Want: `parse/number/format`},
		{Input: `add 1.2.3f 2 .`, Want: `parse/number/format`},
		{Input: `add 0x1p4f 2f .`, Want: `parse/number/format`},
		{Input: `add 1inff 2f .`, Want: `parse/number/format`},
		{Input: `add 1e+-3f 2f .`, Want: `parse/number/format`},
		{Input: `add 1x 2 .`, Want: `parse/number/suffix`},
		{Input: `not 1 .`, Want: `type/function`},
		{Input: `add 1 .`, Want: `type/function`},
		{Input: `nonesuch .`, Want: `type/function`},
		{Input: `return 10 . return 1f .`, Want: `type/return`},
		{Input: `return .`, Want: `type/arity/return`},
		{Input: `eq 1 .`, Want: `type/arity/eq`},
		{Input: `&x 1 .`, Want: `type/arity/query`},
		{Input: `DEFINE:x 1 . &&x 1 .`, Want: `type/arity/ref`},
		{Input: `DEFINE:x 1 . x= .`, Want: `type/arity/assign`},
		{Input: `DEFINE:x:int 1 .`, Want: `type/arity/define/a`},
		{Input: `DEFINE:x .`, Want: `type/arity/define/b`},
		{Input: `DEFINE:x:int:int .`, Want: `type/define`},
		{Input: `DEFINE:x:nonesuch .`, Want: `type/registered`},
		{Input: `DEFINE:x:array .`, Want: `type/generic`},
		{Input: `&x .`, Want: `var/undefined/b`},
		{Input: `&&x .`, Want: `var/undefined/a`},
		{Input: `x= 1 .`, Want: `var/undefined/c`},
		{Input: `DEFINE:x 1 . DEFINE:x 2 .`, Want: `var/defined`},
		{Input: `DEFINE:x 1 . x= "a" .`, Want: `var/assign`},
		{Input: `DEFINE:x println .`, Want: `var/void`},
		{Input: `DEFINE:x IN return 1 . .`, Want: `var/flow`},
		{Input: `"abc`, Want: `lex/eof`},
		{Input: `"a\qb" .`, Want: `lex/escape`},
	}
	test_helper.RunTest(t, tests, test_helper.TestErrors)
}

func TestEvaluation(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `add 10 15 .`, Want: `25`},
		{Input: `add 10 15 , return .`, Want: `25`},
		{Input: `add 1.5f 2 .`, Want: `3`},
		{Input: `add 1.5f 2f .`, Want: `3.5`},
		{Input: `add 1e3f 2f .`, Want: `1002`},
		{Input: `add 25e-1f 1.f .`, Want: `3.5`},
		{Input: `add "a" 1 .`, Want: `"a1"`},
		{Input: `sub "5" 1 .`, Want: `4`},
		{Input: `div 7 2 .`, Want: `3`},
		{Input: `div 7f 2 .`, Want: `3`},
		{Input: `mul 2.5f 2.5f .`, Want: `6.25`},
		{Input: `gt 2 1 , and IN ls 1 2 . .`, Want: `true`},
		{Input: `eq 1 1 .`, Want: `true`},
		{Input: `eq 1 "1" .`, Want: `false`},
		{Input: `string 1 2.5f true "a" .`, Want: `"1 2.5 true a"`},
		{Input: `return 1 . return 2 .`, Want: `1`},
		{Input: `DEFINE:x 1 . x= IN add &x 1 . . return &x .`, Want: `2`},
		{Input: `DEFINE:x:string . return &x .`, Want: `""`},
		{Input: `BLOCK add 1 2 , return . END , .invoke .`, Want: `3`},
		{Input: `DEFINE:x 1 . BLOCK DEFINE:x "s" . &x , return . END , .invoke , return .`, Want: `"s"`},
		{Input: `DEFINE:x 1 . BLOCK x= 5 . END , .invoke . return &x .`, Want: `5`},
		{Input: `DEFINE:a array!int . &a , .push 5 , .push 6 , .size , return .`, Want: `2`},
		{Input: `DEFINE:a array!int . a= IN .push &a 3 . . a= IN .push &a 4 . . return &a .`, Want: `[3, 4]`},
		{Input: `DEFINE:a array!int . a= IN .push &a 3 . . .at &a 0 , return .`, Want: `3`},
		{Input: sumOfArray, Want: `7`},
		{Input: countInsideAction, Want: `1`},
		{Input: `DEFINE:a array!int . .push &a 5 . .size &a , return .`, Want: `1`},
		{Input: `DEFINE:a array!int . DEFINE:b &a . .push &b 6 . return &a .`, Want: `[6]`},
		{Input: `DEFINE:x:int . DEFINE:a array!int . .push &a 1 . .forEach &a &&x ACTION .push &a &x . END . return &a .`, Want: `[1, 1]`},
		{Input: `DEFINE:n 0 . if true ACTION n= 1 . END . return &n .`, Want: `1`},
		{Input: `DEFINE:n 0 . if false ACTION n= 1 . END ACTION n= 2 . END . return &n .`, Want: `2`},
		{Input: `DEFINE:n 0 . if true false ACTION n= 1 . END ACTION n= 2 . END . return &n .`, Want: `2`},
		{Input: `DEFINE:n 0 . if false ACTION n= 1 . END , if ACTION n= 2 . END . return &n .`, Want: `2`},
		{Input: `DEFINE:n 0 . ACTION n= 3 . END , .invoke . return &n .`, Want: `3`},
	}
	test_helper.RunTest(t, tests, test_helper.TestValues)
}

const sumOfArray = `DEFINE:total 0 .
DEFINE:x:int .
DEFINE:a array!int .
a= IN .push &a 3 . .
a= IN .push &a 4 . .
.forEach &a &&x ACTION total= IN add &total &x . . END .
return &total .`

// The action's scope starts afresh each time round, so its counter never gets past 1.
const countInsideAction = `DEFINE:n 0 .
DEFINE:x:int .
DEFINE:a array!int .
.push &a 1 . .push &a 2 . .push &a 3 .
.forEach &a &&x ACTION DEFINE:c:int . c= IN add &c 1 . . n= &c . END .
return &n .`

func TestRuntimeErrors(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `div 1 0 .`, Want: `eval/div`},
		{Input: `sub "x" 1 .`, Want: `eval/convert`},
		{Input: `DEFINE:a array!int . .at &a 3 .`, Want: `eval/index`},
		{Input: `DEFINE:a array!int . .at &a -1 .`, Want: `type/function`},
	}
	test_helper.RunTest(t, tests, test_helper.TestErrors)
}

func TestEarlyReturn(t *testing.T) {
	out := &bytes.Buffer{}
	sv := test_helper.NewTestService(t, out)
	got, e := sv.Run("println \"a\" .\nreturn 1 .\nprintln \"b\" .", "test")
	if e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	if sv.Describe(got) != "1" || out.String() != "a\n" {
		t.Fatalf(`Test failed | Wanted : 1 and "a\n" | Got : %s and %q.`, sv.Describe(got), out.String())
	}
}

func TestReturnInsideActionDoesNotEscape(t *testing.T) {
	out := &bytes.Buffer{}
	sv := test_helper.NewTestService(t, out)
	got, e := sv.Run(`if true ACTION return 1 . END . println "after" . return 2 .`, "test")
	if e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	if sv.Describe(got) != "2" || out.String() != "after\n" {
		t.Fatalf(`Test failed | Wanted : 2 and "after\n" | Got : %s and %q.`, sv.Describe(got), out.String())
	}
}

func TestReturnedReferenceDangles(t *testing.T) {
	sv := test_helper.NewTestService(t, &bytes.Buffer{})
	got, e := sv.Run(`DEFINE:&y 5 , return .`, "test")
	if e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	ref, ok := got.V.(values.Reference)
	if !ok {
		t.Fatalf("Test failed | Wanted : a reference | Got : %s.", sv.TypeName(got.T))
	}
	_, e = ref.Get()
	if err.Id(e) != "eval/dangling" {
		t.Fatalf("Test failed | Wanted : eval/dangling | Got : %v.", e)
	}
}

func TestConversionsAreInserted(t *testing.T) {
	sv := test_helper.NewTestService(t, &bytes.Buffer{})
	b, e := sv.Parse(`add 1.5f 2 .`, "test")
	if e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	stmt := b.Nodes()[0].(*ast.Statement)
	if stmt.Signature() != "add int int" {
		t.Fatalf("Test failed | Wanted : add int int | Got : %s.", stmt.Signature())
	}
	wrapper, ok := stmt.Args[0].(*ast.Statement)
	if !ok || wrapper.Signature() != "int float" || wrapper.Type() != values.INT {
		t.Fatalf("Test failed | Wanted : a call of 'int float' | Got : %s.", stmt.Args[0].String())
	}
	if _, ok := stmt.Args[1].(*ast.Literal); !ok {
		t.Fatalf("Test failed | Wanted : the literal 2 | Got : %s.", stmt.Args[1].String())
	}
}

func TestStatementsAreValidatedOnce(t *testing.T) {
	sv := test_helper.NewTestService(t, &bytes.Buffer{})
	b, e := sv.Parse(`add 1 2 .`, "test")
	if e != nil {
		t.Fatalf("Unexpected error : %s", e.Error())
	}
	stmt := b.Nodes()[0].(*ast.Statement)
	e = parser.New(sv.Environment()).Validate(stmt)
	if err.Id(e) != "parse/validated" {
		t.Fatalf("Test failed | Wanted : parse/validated | Got : %v.", e)
	}
	if stmt.Signature() != "add int int" {
		t.Fatalf("Test failed | Wanted : add int int | Got : %s.", stmt.Signature())
	}
}

func TestBlockReturnTypes(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `add 1 2 .`, Want: `void`},
		{Input: `return 1 .`, Want: `int`},
		{Input: `println . return "a" . return "b" .`, Want: `string`},
		{Input: `DEFINE:a array!int .`, Want: `array!int`},
		{Input: `BLOCK return 1f . END .`, Want: `block!float`},
	}
	test_helper.RunTest(t, tests, func(sv *ws.Service, s string) (string, error) {
		b, e := sv.Parse(s, "test")
		if e != nil {
			return "", e
		}
		return sv.TypeName(b.ReturnType()), nil
	})
}

func TestErrorPositions(t *testing.T) {
	sv := test_helper.NewTestService(t, &bytes.Buffer{})
	_, e := sv.Parse("add 1 2 .\nnot 1 .", "test")
	ours, ok := e.(*err.Error)
	if !ok {
		t.Fatalf("Test failed | Wanted : a type error | Got : %v.", e)
	}
	if ours.Position.Line != 2 || ours.Position.Column != 1 || ours.Position.Source != "test" {
		t.Fatalf("Test failed | Wanted : 2:1 of test | Got : %s.", ours.Position.String())
	}
}

func testParserOutput(sv *ws.Service, s string) (string, error) {
	b, e := sv.Parse(s, "test")
	if e != nil {
		return "", e
	}
	result := []string{}
	for _, node := range b.Nodes() {
		result = append(result, node.String()+" .")
	}
	return strings.Join(result, " "), nil
}
