// Package ws is how a Go program embeds WordScript: it makes a Service from a registry and
// then hands it code to run.
package ws

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/tim-hardcastle/wordscript/source/ast"
	"github.com/tim-hardcastle/wordscript/source/err"
	"github.com/tim-hardcastle/wordscript/source/lexer"
	"github.com/tim-hardcastle/wordscript/source/parser"
	"github.com/tim-hardcastle/wordscript/source/registry"
	"github.com/tim-hardcastle/wordscript/source/text"
	"github.com/tim-hardcastle/wordscript/source/token"
	"github.com/tim-hardcastle/wordscript/source/values"
)

const REPL_SOURCE = "REPL input"

// A Service owns an environment: a root scope whose variables persist from one call to the
// next, and a parser working in it. The registry may be shared between services.
type Service struct {
	lock    sync.Mutex
	reg     *registry.Registry
	env     *ast.Environment
	p       *parser.Parser
	sources map[string]string
	lastErr error
}

// Returns a new service using the given registry.
func NewService(reg *registry.Registry) *Service {
	env := ast.NewEnvironment(reg)
	return &Service{
		reg:     reg,
		env:     env,
		p:       parser.New(env),
		sources: map[string]string{},
	}
}

func (sv *Service) Registry() *registry.Registry {
	return sv.reg
}

func (sv *Service) Environment() *ast.Environment {
	return sv.env
}

// Interprets the line as though it had been entered into the REPL. The line is parsed into
// the root block, so whatever it defines is there for the lines after it, and then only the
// new statements are run.
func (sv *Service) Do(line string) (values.Value, error) {
	sv.lock.Lock()
	defer sv.lock.Unlock()
	sv.sources[REPL_SOURCE] = line
	start, e := sv.p.ParseInline(line, REPL_SOURCE)
	if e != nil {
		return values.Value{}, sv.fail(e)
	}
	if start == sv.env.Root().Len() {
		return values.VOID_VALUE, nil
	}
	val, e := sv.env.Root().EvaluateFrom(start)
	if e != nil {
		return values.Value{}, sv.fail(e)
	}
	return val, nil
}

// Parses the code as a program, a block of its own inside the root block, and runs it.
func (sv *Service) Run(code, source string) (values.Value, error) {
	sv.lock.Lock()
	defer sv.lock.Unlock()
	return sv.run(code, source)
}

func (sv *Service) RunFile(path string) (values.Value, error) {
	sv.lock.Lock()
	defer sv.lock.Unlock()
	code, e := os.ReadFile(path)
	if e != nil {
		return values.Value{}, sv.fail(e)
	}
	return sv.run(string(code), path)
}

func (sv *Service) run(code, source string) (values.Value, error) {
	b, e := sv.parse(code, source)
	if e != nil {
		return values.Value{}, e
	}
	val, e := b.Evaluate()
	if e != nil {
		return values.Value{}, sv.fail(e)
	}
	return val, nil
}

// Parses the code as a program without running it.
func (sv *Service) Parse(code, source string) (*ast.Block, error) {
	sv.lock.Lock()
	defer sv.lock.Unlock()
	return sv.parse(code, source)
}

func (sv *Service) parse(code, source string) (*ast.Block, error) {
	sv.sources[source] = code
	b, e := sv.p.Parse(code, source)
	if e != nil {
		return nil, sv.fail(e)
	}
	return b, nil
}

func (sv *Service) Tokens(code string) ([]token.Token, error) {
	return lexer.Tokenize(code, REPL_SOURCE)
}

// Defines a variable of the root scope, where everything the service runs can see it. If
// the value doesn't fit the type, the variable isn't defined.
func (sv *Service) DefineVariable(name, typeName string, val values.Value) error {
	sv.lock.Lock()
	defer sv.lock.Unlock()
	t, e := sv.reg.TypeByName(typeName)
	if e != nil {
		return e
	}
	rootScope := sv.env.Root().Scope()
	n := rootScope.Len()
	v, e := sv.env.DefineVariable(name, t, token.External())
	if e != nil {
		return e
	}
	if e := v.SetValue(val); e != nil {
		rootScope.Truncate(n)
		return e
	}
	return nil
}

// Gets the value of a variable of the root scope.
func (sv *Service) GetVariable(name string) (values.Value, error) {
	sv.lock.Lock()
	defer sv.lock.Unlock()
	v := sv.env.Root().Scope().Lookup(name)
	if v == nil {
		return values.Value{}, err.CreateErr("var/undefined/d", token.External(), name)
	}
	return v.Value(), nil
}

// The names of the variables of the root scope, in the order they were defined.
func (sv *Service) VariableNames() []string {
	sv.lock.Lock()
	defer sv.lock.Unlock()
	result := []string{}
	for _, v := range sv.env.Root().Scope().Variables() {
		result = append(result, v.Name())
	}
	return result
}

// Returns the value as it would be written in a script: strings are quoted and arrays are
// bracketed with their elements described in turn.
func (sv *Service) Describe(v values.Value) string {
	switch {
	case v.T == values.STRING:
		return text.ToEscapedText(v.V.(string))
	case v.T.Is(values.ARRAY):
		arr := v.V.(*values.Array)
		elements := make([]string, 0, arr.Len())
		for it := values.NewArrayIterator(arr); it.Unfinished(); {
			elements = append(elements, sv.Describe(it.NextValue()))
		}
		return "[" + strings.Join(elements, ", ") + "]"
	case v.T == values.VOID:
		return text.OK
	}
	return v.String()
}

// The name of the type, as the registry knows it.
func (sv *Service) TypeName(t values.Type) string {
	if name, e := sv.reg.TypeName(t); e == nil {
		return name
	}
	return t.String()
}

// The last error the service produced, or nil if there hasn't been one.
func (sv *Service) LastError() error {
	sv.lock.Lock()
	defer sv.lock.Unlock()
	return sv.lastErr
}

// Gets a report on an error: its message, the line it happened on with a caret under the
// place, and, for a runtime error, where it was called from.
func (sv *Service) ErrorReport(e error) string {
	var ours *err.Error
	if !errors.As(e, &ours) {
		return text.ERROR + e.Error() + "\n"
	}
	prefix := text.ERROR
	if ours.Kind() == err.RUNTIME_ERROR {
		prefix = text.RT_ERROR
	}
	result := prefix + ours.Error() + ".\n"
	sv.lock.Lock()
	source, ok := sv.sources[ours.Position.Source]
	sv.lock.Unlock()
	if ok {
		result = result + "\n" + ours.Snippet(source)
	}
	for i := len(ours.Trace) - 1; i >= 0; i-- {
		if ours.Trace[i] == ours.Position {
			continue
		}
		result = result + "  From:" + text.DescribePos(ours.Trace[i]) + ".\n"
	}
	return result
}

// Explains the last error.
func (sv *Service) Why() string {
	var ours *err.Error
	if !errors.As(sv.LastError(), &ours) {
		return "There is no error to explain."
	}
	return err.Explain(ours)
}

func (sv *Service) fail(e error) error {
	sv.lastErr = e
	return e
}
