package values

import (
	"strconv"
	"strings"
	"sync"
)

// A Type is a handle on a native type. Handles are global to the process; a Registry only
// decides what a type is called. A generic instance is just data, a base handle plus
// ordered argument handles, so two instantiations with the same arguments get the same handle.
type Type uint32

const ( // Cross-reference with the initialization of the universe below.
	UNRESOLVED Type = iota // The zero value is something a validated node should never have.
	VOID
	INT
	FLOAT
	STRING
	BOOL
	VARIABLE // Generic, 1 argument: a reference wrapper around a variable of the argument type.
	BLOCK    // Generic, 1 argument: a block which returns the argument type.
	FLOW     // Generic, 1 argument: the flow-control signal made by 'return'.
	ACTION   // A block returning nothing.
	ARRAY    // Generic, 1 argument.
)

type typeInfo struct {
	label string // For debugging; the canonical name of a type lives in a registry.
	arity int    // Non-zero for generic base types.
	base  Type   // For instances.
	args  []Type
}

var (
	universeLock sync.RWMutex
	universe     = []typeInfo{
		{label: "unresolved"},
		{label: "void"},
		{label: "int"},
		{label: "float"},
		{label: "string"},
		{label: "bool"},
		{label: "variable", arity: 1},
		{label: "block", arity: 1},
		{label: "fcw", arity: 1},
		{label: "action"},
		{label: "array", arity: 1},
	}
	instances = map[string]Type{}
)

// Makes a new non-generic type.
func New(label string) Type {
	return NewGeneric(label, 0)
}

// Makes a new generic base type taking the given number of type arguments.
func NewGeneric(label string, arity int) Type {
	universeLock.Lock()
	defer universeLock.Unlock()
	universe = append(universe, typeInfo{label: label, arity: arity})
	return Type(len(universe) - 1)
}

// Returns the instance of the generic base type with the given arguments, making it if it
// doesn't exist yet. Asking for an instance with the wrong number of arguments is a bug in
// the caller, and panics.
func Instantiate(base Type, args ...Type) Type {
	key := instanceKey(base, args)
	universeLock.RLock()
	t, ok := instances[key]
	universeLock.RUnlock()
	if ok {
		return t
	}
	universeLock.Lock()
	defer universeLock.Unlock()
	if t, ok := instances[key]; ok {
		return t
	}
	info := universe[base]
	if info.arity == 0 || info.arity != len(args) {
		panic("values: can't instantiate " + info.label + " with " + strconv.Itoa(len(args)) + " type arguments")
	}
	universe = append(universe, typeInfo{label: info.label, base: base, args: append([]Type(nil), args...)})
	t = Type(len(universe) - 1)
	instances[key] = t
	return t
}

func instanceKey(base Type, args []Type) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(base), 10))
	for _, arg := range args {
		b.WriteByte('!')
		b.WriteString(strconv.FormatUint(uint64(arg), 10))
	}
	return b.String()
}

func (t Type) info() typeInfo {
	universeLock.RLock()
	defer universeLock.RUnlock()
	if int(t) >= len(universe) {
		return typeInfo{label: "unknown"}
	}
	return universe[t]
}

// Reports whether the type is an instance of a generic type.
func (t Type) IsInstance() bool {
	return len(t.info().args) > 0
}

// Reports whether the type is a generic base type, e.g. 'array' rather than 'array!int'.
func (t Type) IsGeneric() bool {
	return t.info().arity > 0
}

// The number of type arguments a generic base type takes.
func (t Type) Arity() int {
	return t.info().arity
}

// Returns the generic base of an instance, or the type itself if it isn't one.
func (t Type) Base() Type {
	info := t.info()
	if len(info.args) == 0 {
		return t
	}
	return info.base
}

func (t Type) Args() []Type {
	return append([]Type(nil), t.info().args...)
}

// The first type argument, which for all the predeclared generics is the only one.
func (t Type) Elem() Type {
	info := t.info()
	if len(info.args) == 0 {
		return UNRESOLVED
	}
	return info.args[0]
}

func (t Type) Is(base Type) bool {
	return t.Base() == base && t.IsInstance()
}

// A label for logs and panics. It is not necessarily the name the type has in a registry.
func (t Type) String() string {
	info := t.info()
	if len(info.args) == 0 {
		return info.label
	}
	parts := []string{info.label}
	for _, arg := range info.args {
		parts = append(parts, arg.String())
	}
	return strings.Join(parts, "!")
}
