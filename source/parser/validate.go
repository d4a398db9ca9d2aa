package parser

import (
	"errors"
	"strings"

	"github.com/tim-hardcastle/wordscript/source/ast"
	"github.com/tim-hardcastle/wordscript/source/err"
	"github.com/tim-hardcastle/wordscript/source/registry"
	"github.com/tim-hardcastle/wordscript/source/scope"
	"github.com/tim-hardcastle/wordscript/source/settings"
	"github.com/tim-hardcastle/wordscript/source/token"
	"github.com/tim-hardcastle/wordscript/source/values"
)

const DEFINE = "DEFINE:"

// Binds a statement whose arguments have all been parsed to a function or a variable.
func (p *Parser) Validate(stmt *ast.Statement) error {
	return p.validate(stmt, false)
}

// The reserved forms are tried in order: 'return', 'string', 'eq', '&&x', '&x', 'x=',
// 'DEFINE:', and '.method'. Anything else is a call of a registered function.
func (p *Parser) validate(stmt *ast.Statement, noImplicitConversion bool) error {
	if stmt.Binding() != ast.UNBOUND {
		return err.CreateErr("parse/validated", stmt.Position, stmt.Name)
	}
	name := stmt.Name
	var e error
	switch {
	case name == "return":
		e = p.validateReturn(stmt)
	case name == "string":
		e = p.validateString(stmt)
	case name == "eq":
		e = p.validateEq(stmt)
	case strings.HasPrefix(name, "&&"):
		e = p.validateReference(stmt, name[2:])
	case strings.HasPrefix(name, "&"):
		e = p.validateQuery(stmt, name[1:])
	case strings.HasSuffix(name, "="):
		e = p.validateAssignment(stmt, name[:len(name)-1])
	case strings.HasPrefix(name, DEFINE) && len(name) > len(DEFINE):
		e = p.validateDefinition(stmt)
	default:
		if strings.HasPrefix(name, ".") && len(stmt.Args) > 0 {
			receiver, te := p.env.Registry.TypeName(stmt.Args[0].Type())
			if te != nil {
				return locate(te, stmt.Position)
			}
			name = receiver + name
		}
		e = p.validateCall(stmt, name, noImplicitConversion)
	}
	if e != nil {
		return locate(e, stmt.Position)
	}
	if settings.SHOW_PARSER {
		settings.Log.Debugf("parser: validated %q at %v as %q\n%s", stmt.Name, stmt.Position, stmt.Signature(), ast.DebugNode(stmt, p.env.Registry))
	}
	return nil
}

func (p *Parser) validateReturn(stmt *ast.Statement) error {
	if len(stmt.Args) != 1 {
		return err.CreateErr("type/arity/return", stmt.Position)
	}
	childType := stmt.Args[0].Type()
	returns := values.Instantiate(values.FLOW, childType)
	f := &registry.Function{
		Name:    "return",
		Params:  []values.Type{childType},
		Returns: returns,
		Call: func(args []values.Value) (values.Value, error) {
			return values.Return(args[0]), nil
		},
	}
	return p.bind(stmt, f)
}

// 'string' takes any number of arguments of any types and joins their string forms with
// spaces.
func (p *Parser) validateString(stmt *ast.Statement) error {
	f := &registry.Function{
		Name:    "string",
		Params:  argTypes(stmt),
		Returns: values.STRING,
		Call: func(args []values.Value) (values.Value, error) {
			parts := make([]string, len(args))
			for i, arg := range args {
				parts[i] = arg.String()
			}
			return values.Str(strings.Join(parts, " ")), nil
		},
	}
	return p.bind(stmt, f)
}

func (p *Parser) validateEq(stmt *ast.Statement) error {
	if len(stmt.Args) != 2 {
		return err.CreateErr("type/arity/eq", stmt.Position)
	}
	f := &registry.Function{
		Name:    "eq",
		Params:  argTypes(stmt),
		Returns: values.BOOL,
		Call: func(args []values.Value) (values.Value, error) {
			return values.Bool(values.Equal(args[0], args[1])), nil
		},
	}
	return p.bind(stmt, f)
}

func (p *Parser) validateReference(stmt *ast.Statement, varName string) error {
	if len(stmt.Args) != 0 {
		return err.CreateErr("type/arity/ref", stmt.Position)
	}
	v := p.env.GetVariable(varName)
	if v == nil {
		return err.CreateErr("var/undefined/a", stmt.Position, varName)
	}
	return p.bind(stmt, referenceTo(stmt.Name, v))
}

func (p *Parser) validateQuery(stmt *ast.Statement, varName string) error {
	if len(stmt.Args) != 0 {
		return err.CreateErr("type/arity/query", stmt.Position)
	}
	v := p.env.GetVariable(varName)
	if v == nil {
		return err.CreateErr("var/undefined/b", stmt.Position, varName)
	}
	return stmt.BindVariable(v, ast.QUERY)
}

// Assignment never converts.
func (p *Parser) validateAssignment(stmt *ast.Statement, varName string) error {
	if len(stmt.Args) != 1 {
		return err.CreateErr("type/arity/assign", stmt.Position)
	}
	v := p.env.GetVariable(varName)
	if v == nil {
		return err.CreateErr("var/undefined/c", stmt.Position, varName)
	}
	if argType := stmt.Args[0].Type(); argType != v.Type() {
		return err.CreateErr("var/assign", stmt.Position, p.typeName(argType), p.typeName(v.Type()))
	}
	return stmt.BindVariable(v, ast.ASSIGNMENT)
}

// 'DEFINE:x:<type>' declares x with no initial value, and 'DEFINE:x <value>' declares it
// with the type of the value and assigns the value. Writing '&x' for 'x' makes the
// statement give a reference to x rather than its value.
func (p *Parser) validateDefinition(stmt *ast.Statement) error {
	segments := strings.Split(stmt.Name, ":")
	if len(segments) != 2 && len(segments) != 3 {
		return err.CreateErr("type/define", stmt.Position, stmt.Name)
	}
	varName, isRef := strings.CutPrefix(segments[1], "&")
	if len(segments) == 3 {
		if len(stmt.Args) != 0 {
			return err.CreateErr("type/arity/define/a", stmt.Position)
		}
		t, e := p.env.Registry.TypeByName(segments[2])
		if e != nil {
			return e
		}
		if t.IsGeneric() {
			return err.CreateErr("type/generic", stmt.Position, segments[2], 0)
		}
		v, e := p.env.DefineVariable(varName, t, stmt.Position)
		if e != nil {
			return e
		}
		if isRef {
			return p.bind(stmt, referenceTo(stmt.Name, v))
		}
		return stmt.BindVariable(v, ast.DECLARATION)
	}
	if len(stmt.Args) != 1 {
		return err.CreateErr("type/arity/define/b", stmt.Position)
	}
	t := stmt.Args[0].Type()
	v, e := p.env.DefineVariable(varName, t, stmt.Position)
	if e != nil {
		return e
	}
	returns := t
	if isRef {
		returns = values.Instantiate(values.VARIABLE, t)
	}
	f := &registry.Function{
		Name:    stmt.Name,
		Params:  []values.Type{t},
		Returns: returns,
		Call: func(args []values.Value) (values.Value, error) {
			if e := v.SetValue(args[0]); e != nil {
				return values.Value{}, e
			}
			if isRef {
				return v.Reference(), nil
			}
			return v.Value(), nil
		},
	}
	return p.bind(stmt, f)
}

// Resolves the overload to call, and wraps each argument that needs converting in a
// statement calling the conversion.
func (p *Parser) validateCall(stmt *ast.Statement, name string, noImplicitConversion bool) error {
	overload, e := p.env.Registry.ResolveOverload(name, argTypes(stmt), noImplicitConversion)
	if e != nil {
		return e
	}
	for i, conversion := range overload.Conversions {
		if conversion == nil {
			continue
		}
		child := stmt.Args[i]
		wrapper := ast.NewStatement(conversion.Name, child.GetPosition())
		wrapper.Args = append(wrapper.Args, child)
		if e := p.validate(wrapper, true); e != nil {
			return e
		}
		stmt.Args[i] = wrapper
	}
	return stmt.BindFunction(overload.Function, overload.Signature)
}

// Binds a statement to a function the parser has made for it.
func (p *Parser) bind(stmt *ast.Statement, f *registry.Function) error {
	sig, e := p.env.Registry.Signature(f.Name, f.Params)
	if e != nil {
		sig = f.Name
	}
	return stmt.BindFunction(f, sig)
}

func referenceTo(name string, v *scope.Variable) *registry.Function {
	return &registry.Function{
		Name:    name,
		Params:  []values.Type{},
		Returns: values.Instantiate(values.VARIABLE, v.Type()),
		Call: func(args []values.Value) (values.Value, error) {
			return v.Reference(), nil
		},
	}
}

func argTypes(stmt *ast.Statement) []values.Type {
	result := make([]values.Type, len(stmt.Args))
	for i, arg := range stmt.Args {
		result[i] = arg.Type()
	}
	return result
}

func (p *Parser) typeName(t values.Type) string {
	if name, e := p.env.Registry.TypeName(t); e == nil {
		return name
	}
	return t.String()
}

func locate(e error, pos token.Position) error {
	var ours *err.Error
	if errors.As(e, &ours) {
		return ours.Locate(pos)
	}
	return e
}
