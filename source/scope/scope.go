package scope

import (
	"github.com/tim-hardcastle/wordscript/source/err"
	"github.com/tim-hardcastle/wordscript/source/token"
	"github.com/tim-hardcastle/wordscript/source/values"
)

// A Scope is a table of variables with a link to the scope enclosing it. Variables live in
// an arena owned by the scope and never move, so that a reference can name a variable by
// its scope and index and check at use whether it still exists.
//
// A scope is active while the block that owns it is being evaluated. Each time it becomes
// active from inactive its epoch advances and its variables are reset, since conceptually
// it is a new scope. The root scope is persistent: it is always active and its variables
// live as long as it does.
type Scope struct {
	parent     *Scope
	depth      int
	variables  []*Variable
	names      map[string]int
	active     int
	epoch      uint64
	persistent bool
}

func New(parent *Scope) *Scope {
	depth := 0
	if parent != nil {
		depth = parent.depth + 1
	}
	return &Scope{
		parent: parent,
		depth:  depth,
		names:  map[string]int{},
	}
}

// Makes a persistent scope with no parent.
func NewRoot() *Scope {
	s := New(nil)
	s.persistent = true
	return s
}

func (s *Scope) Depth() int {
	return s.depth
}

// Finds the variable of the given name in this scope or the nearest enclosing scope that
// has one, or returns nil.
func (s *Scope) Lookup(name string) *Variable {
	for sc := s; sc != nil; sc = sc.parent {
		if i, ok := sc.names[name]; ok {
			return sc.variables[i]
		}
	}
	return nil
}

// Makes a new variable in this scope, which may hide one of the same name in an enclosing
// scope but may not have the same name as another in this one.
func (s *Scope) Define(name string, t values.Type, pos token.Position) (*Variable, error) {
	if name == "" {
		return nil, err.CreateErr("var/name", pos, name)
	}
	if _, ok := s.names[name]; ok {
		return nil, err.CreateErr("var/defined", pos, name)
	}
	v := &Variable{name: name, t: t, value: values.Zero(t), pos: pos, scope: s, index: len(s.variables)}
	s.names[name] = v.index
	s.variables = append(s.variables, v)
	return v, nil
}

// The variables of this scope in order of definition.
func (s *Scope) Variables() []*Variable {
	return append([]*Variable(nil), s.variables...)
}

func (s *Scope) Len() int {
	return len(s.variables)
}

// Forgets every variable defined after the first n. This undoes the definitions made by a
// failed parse; nothing can refer to them yet.
func (s *Scope) Truncate(n int) {
	if n >= len(s.variables) {
		return
	}
	for _, v := range s.variables[n:] {
		delete(s.names, v.name)
	}
	s.variables = s.variables[:n]
}

func (s *Scope) Enter() {
	if s.active == 0 && !s.persistent {
		s.epoch++
		for _, v := range s.variables {
			v.value = values.Zero(v.t)
		}
	}
	s.active++
}

func (s *Scope) Exit() {
	if s.active > 0 {
		s.active--
	}
}

type Variable struct {
	name  string
	t     values.Type
	value values.Value
	pos   token.Position
	scope *Scope
	index int
}

func (v *Variable) Name() string {
	return v.name
}

func (v *Variable) Type() values.Type {
	return v.t
}

func (v *Variable) Value() values.Value {
	return v.value
}

// Where the variable was defined.
func (v *Variable) Position() token.Position {
	return v.pos
}

func (v *Variable) Scope() *Scope {
	return v.scope
}

// Assigns to the variable. The value must have exactly the type the variable was declared
// with: conversions are only ever made when a script is parsed.
func (v *Variable) SetValue(val values.Value) error {
	if val.T != v.t {
		return err.CreateErr("eval/type", token.Position{}, v.t.String(), val.T.String())
	}
	v.value = val
	return nil
}

// Makes a reference wrapper for the variable, good for as long as the current activation
// of its scope.
func (v *Variable) Reference() values.Value {
	return values.Value{
		T: values.Instantiate(values.VARIABLE, v.t),
		V: &Reference{scope: v.scope, index: v.index, epoch: v.scope.epoch},
	}
}

// A Reference names a variable by the scope that owns it and its index there, and remembers
// which activation of the scope it was made in.
type Reference struct {
	scope *Scope
	index int
	epoch uint64
}

func (r *Reference) valid() bool {
	return r.scope.persistent || (r.scope.active > 0 && r.scope.epoch == r.epoch)
}

func (r *Reference) Name() string {
	return r.scope.variables[r.index].name
}

// Returns the variable referred to, or an error if it no longer exists.
func (r *Reference) Variable() (*Variable, error) {
	if !r.valid() {
		return nil, err.CreateErr("eval/dangling", token.Position{}, r.Name())
	}
	return r.scope.variables[r.index], nil
}

func (r *Reference) Get() (values.Value, error) {
	v, e := r.Variable()
	if e != nil {
		return values.Value{}, e
	}
	return v.value, nil
}

func (r *Reference) Set(val values.Value) error {
	v, e := r.Variable()
	if e != nil {
		return e
	}
	return v.SetValue(val)
}
