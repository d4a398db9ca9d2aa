package ast

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/tim-hardcastle/wordscript/source/err"
	"github.com/tim-hardcastle/wordscript/source/registry"
	"github.com/tim-hardcastle/wordscript/source/scope"
	"github.com/tim-hardcastle/wordscript/source/settings"
	"github.com/tim-hardcastle/wordscript/source/token"
	"github.com/tim-hardcastle/wordscript/source/values"
)

// The base Node interface. The set of nodes is closed: a Node is a *Literal or a *Statement.
type Node interface {
	Children() []Node
	GetPosition() token.Position
	Type() values.Type
	Evaluate() (values.Value, error)
	String() string
	node()
}

type Literal struct {
	Value    values.Value
	Position token.Position
	Text     string // As written in the source, for debugging.
}

func NewLiteral(v values.Value, pos token.Position, text string) *Literal {
	return &Literal{Value: v, Position: pos, Text: text}
}

func (l *Literal) Children() []Node                { return []Node{} }
func (l *Literal) GetPosition() token.Position     { return l.Position }
func (l *Literal) Type() values.Type               { return l.Value.T }
func (l *Literal) Evaluate() (values.Value, error) { return l.Value, nil }
func (l *Literal) String() string {
	if l.Value.T == values.STRING {
		return strconv.Quote(l.Value.V.(string))
	}
	if l.Text != "" {
		return l.Text
	}
	return l.Value.String()
}
func (l *Literal) node() {}

// What a Statement has been bound to by validation.
type Binding int

const (
	UNBOUND     Binding = iota
	FUNCTION            // A native function, or one made by the parser for a reserved form.
	QUERY               // '&x'.
	ASSIGNMENT          // 'x= <value>'.
	DECLARATION         // 'DEFINE:x:<type>'.
)

// A Statement is a named node with arguments. It is unbound only while it is being parsed;
// once validated it is bound to exactly one function or variable, for good.
type Statement struct {
	Name      string
	Position  token.Position
	Args      []Node
	binding   Binding
	function  *registry.Function
	signature string
	variable  *scope.Variable
}

func NewStatement(name string, pos token.Position) *Statement {
	return &Statement{Name: name, Position: pos, Args: []Node{}}
}

func (s *Statement) Children() []Node            { return s.Args }
func (s *Statement) GetPosition() token.Position { return s.Position }
func (s *Statement) node()                       {}

func (s *Statement) Binding() Binding {
	return s.binding
}

func (s *Statement) Function() *registry.Function {
	return s.function
}

// The signature of the function the statement is bound to, if it is.
func (s *Statement) Signature() string {
	return s.signature
}

func (s *Statement) Variable() *scope.Variable {
	return s.variable
}

func (s *Statement) BindFunction(f *registry.Function, signature string) error {
	if s.binding != UNBOUND {
		return err.CreateErr("parse/validated", s.Position, s.Name)
	}
	s.binding = FUNCTION
	s.function = f
	s.signature = signature
	return nil
}

func (s *Statement) BindVariable(v *scope.Variable, binding Binding) error {
	if s.binding != UNBOUND {
		return err.CreateErr("parse/validated", s.Position, s.Name)
	}
	s.binding = binding
	s.variable = v
	return nil
}

func (s *Statement) Type() values.Type {
	switch s.binding {
	case FUNCTION:
		return s.function.Returns
	case QUERY, ASSIGNMENT, DECLARATION:
		return s.variable.Type()
	}
	return values.UNRESOLVED
}

func (s *Statement) Evaluate() (values.Value, error) {
	switch s.binding {
	case FUNCTION:
		args := make([]values.Value, len(s.Args))
		for i, arg := range s.Args {
			val, e := arg.Evaluate()
			if e != nil {
				return values.Value{}, e
			}
			args[i] = val
		}
		result, e := s.function.Call(args)
		if e != nil {
			return values.Value{}, s.locate(e)
		}
		if settings.SHOW_EVAL {
			settings.Log.Debugf("eval: %s -> %v", s.signature, result)
		}
		return result, nil
	case QUERY, DECLARATION:
		return s.variable.Value(), nil
	case ASSIGNMENT:
		val, e := s.Args[0].Evaluate()
		if e != nil {
			return values.Value{}, e
		}
		if e := s.variable.SetValue(val); e != nil {
			return values.Value{}, s.locate(e)
		}
		return s.variable.Value(), nil
	}
	return values.Value{}, err.CreateErr("eval/unvalidated", s.Position, s.Name)
}

// Gives an error raised below this statement the statement's position, if it has none of
// its own. Errors from native functions that aren't ours are wrapped.
func (s *Statement) locate(e error) error {
	var ours *err.Error
	if errors.As(e, &ours) {
		ours.Locate(s.Position)
		ours.AddToTrace(s.Position)
		return ours
	}
	return err.CreateErr("eval/native", s.Position, s.Name, e.Error())
}

func (s *Statement) String() string {
	var out bytes.Buffer
	out.WriteString(s.Name)
	for _, arg := range s.Args {
		out.WriteString(" ")
		if st, ok := arg.(*Statement); ok && len(st.Args) > 0 {
			out.WriteString("IN ")
			out.WriteString(st.String())
			out.WriteString(" .")
			continue
		}
		out.WriteString(arg.String())
	}
	return out.String()
}
