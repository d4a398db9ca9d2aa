package values

import (
	"fmt"
	"strconv"
	"strings"

	"src.elv.sh/pkg/persistent/vector"
)

// Payloads by type:
//
//	VOID        nil
//	INT         int
//	FLOAT       float64
//	STRING      string
//	BOOL        bool
//	FLOW!T      FlowControl
//	VARIABLE!T  Reference
//	BLOCK!T     Evaluable
//	ACTION      Evaluable
//	ARRAY!T     *Array
//
// Types made by a host carry whatever payload the host likes.
type Value struct {
	T Type
	V any
}

var (
	VOID_VALUE = Value{T: VOID}
	FALSE      = Value{T: BOOL, V: false}
	TRUE       = Value{T: BOOL, V: true}
)

func Int(i int) Value {
	return Value{T: INT, V: i}
}

func Float(f float64) Value {
	return Value{T: FLOAT, V: f}
}

func Str(s string) Value {
	return Value{T: STRING, V: s}
}

func Bool(b bool) Value {
	if b {
		return TRUE
	}
	return FALSE
}

// What a variable holds before anything is assigned to it.
func Zero(t Type) Value {
	switch t.Base() {
	case INT:
		return Value{T: t, V: 0}
	case FLOAT:
		return Value{T: t, V: 0.0}
	case STRING:
		return Value{T: t, V: ""}
	case BOOL:
		return Value{T: t, V: false}
	case ARRAY:
		return Value{T: t, V: NewArray()}
	}
	return Value{T: t}
}

type FlowKind int

const (
	NONE FlowKind = iota
	RETURN
)

// The runtime form of a 'return' statement. It never escapes the block that it returns from.
type FlowControl struct {
	Kind    FlowKind
	Payload Value
}

// An Array is shared by every value and variable holding it, so pushing onto it through
// one of them is seen through all of them.
type Array struct {
	vec vector.Vector
}

func NewArray(elements ...Value) *Array {
	vec := vector.Empty
	for _, el := range elements {
		vec = vec.Conj(el)
	}
	return &Array{vec: vec}
}

func (arr *Array) Len() int {
	return arr.vec.Len()
}

// Returns the element at the index, if there is one.
func (arr *Array) Index(i int) (Value, bool) {
	if i < 0 {
		return Value{}, false
	}
	elem, ok := arr.vec.Index(i)
	if !ok {
		return Value{}, false
	}
	return elem.(Value), true
}

func (arr *Array) Push(v Value) {
	arr.vec = arr.vec.Conj(v)
}

// Wraps a value in a return signal.
func Return(v Value) Value {
	return Value{T: Instantiate(FLOW, v.T), V: FlowControl{Kind: RETURN, Payload: v}}
}

// If the value is a return signal, gives back its payload.
func (v Value) Returned() (Value, bool) {
	if fc, ok := v.V.(FlowControl); ok && fc.Kind == RETURN {
		return fc.Payload, true
	}
	return v, false
}

// A reference wrapper: reading and writing through it reads and writes the variable itself.
type Reference interface {
	Name() string
	Get() (Value, error)
	Set(Value) error
}

// Anything that can be run to get a value: blocks and actions.
type Evaluable interface {
	Evaluate() (Value, error)
}

// The universal to-string conversion, which is always available to the overload resolver
// and is what the 'string' statement uses.
func (v Value) String() string {
	switch payload := v.V.(type) {
	case nil:
		return ""
	case int:
		return strconv.Itoa(payload)
	case float64:
		return strconv.FormatFloat(payload, 'g', -1, 64)
	case string:
		return payload
	case bool:
		return strconv.FormatBool(payload)
	case FlowControl:
		return payload.Payload.String()
	case Reference:
		return "&" + payload.Name()
	case *Array:
		elements := make([]string, 0, payload.Len())
		for it := NewArrayIterator(payload); it.Unfinished(); {
			elements = append(elements, it.NextValue().String())
		}
		return "[" + strings.Join(elements, " ") + "]"
	case fmt.Stringer:
		return payload.String()
	}
	return fmt.Sprint(v.V)
}

// Two values are equal if they have the same type and equal payloads. Arrays are compared
// element by element, and everything else by Go equality, which for blocks and references
// means identity.
func Equal(a, b Value) bool {
	if a.T != b.T {
		return false
	}
	if arrA, ok := a.V.(*Array); ok {
		arrB := b.V.(*Array)
		if arrA.Len() != arrB.Len() {
			return false
		}
		itB := NewArrayIterator(arrB)
		for itA := NewArrayIterator(arrA); itA.Unfinished(); {
			if !Equal(itA.NextValue(), itB.NextValue()) {
				return false
			}
		}
		return true
	}
	return a.V == b.V
}
