package values

import (
	"testing"
)

func TestInstantiate(t *testing.T) {
	pair := NewGeneric("pair", 2)
	a := Instantiate(pair, INT, STRING)
	b := Instantiate(pair, INT, STRING)
	c := Instantiate(pair, STRING, INT)
	if a != b {
		t.Fatalf("Instantiating twice with the same arguments gave %v and %v.", a, b)
	}
	if a == c {
		t.Fatalf("Instantiating with different arguments gave the same type %v.", a)
	}
	if a.Base() != pair || !a.IsInstance() || a.IsGeneric() {
		t.Fatalf("Instance %v doesn't know its base.", a)
	}
	args := a.Args()
	if len(args) != 2 || args[0] != INT || args[1] != STRING {
		t.Fatalf("Instance %v has the wrong arguments %v.", a, args)
	}
	if a.String() != "pair!int!string" {
		t.Fatalf("Wanted label pair!int!string, got %s.", a.String())
	}
	if INT.Base() != INT || INT.IsInstance() {
		t.Fatalf("A plain type should be its own base.")
	}
	nested := Instantiate(ARRAY, Instantiate(ARRAY, INT))
	if nested.Elem().Elem() != INT {
		t.Fatalf("Wanted array!array!int, got %v.", nested)
	}
}

func TestInstantiatePanicsOnWrongArity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Instantiating with the wrong number of arguments should panic.")
		}
	}()
	Instantiate(ARRAY, INT, INT)
}

func TestString(t *testing.T) {
	arr := Value{T: Instantiate(ARRAY, INT), V: NewArray(Int(1), Int(2))}
	tests := []struct {
		input Value
		want  string
	}{
		{Int(25), "25"},
		{Float(1.5), "1.5"},
		{Float(3), "3"},
		{Str("foo"), "foo"},
		{TRUE, "true"},
		{FALSE, "false"},
		{VOID_VALUE, ""},
		{Return(Int(7)), "7"},
		{arr, "[1 2]"},
		{Zero(Instantiate(ARRAY, STRING)), "[]"},
	}
	for _, test := range tests {
		if got := test.input.String(); got != test.want {
			t.Fatalf("Test failed with input %#v | Wanted : %s | Got : %s.", test.input, test.want, got)
		}
	}
}

func TestEqual(t *testing.T) {
	arrType := Instantiate(ARRAY, INT)
	a := Value{T: arrType, V: NewArray(Int(1), Int(2))}
	b := Value{T: arrType, V: NewArray(Int(1), Int(2))}
	c := Value{T: arrType, V: NewArray(Int(1))}
	if !Equal(a, b) {
		t.Fatalf("Arrays with the same elements should be equal.")
	}
	if Equal(a, c) {
		t.Fatalf("Arrays of different lengths should not be equal.")
	}
	if Equal(Int(1), Float(1)) {
		t.Fatalf("Values of different types should not be equal.")
	}
	if !Equal(Str("x"), Str("x")) || Equal(Str("x"), Str("y")) {
		t.Fatalf("String equality is broken.")
	}
}

func TestReturned(t *testing.T) {
	ret := Return(Int(25))
	if !ret.T.Is(FLOW) || ret.T.Elem() != INT {
		t.Fatalf("Wanted a flow-control type wrapping int, got %v.", ret.T)
	}
	payload, ok := ret.Returned()
	if !ok || !Equal(payload, Int(25)) {
		t.Fatalf("Wanted to unwrap 25, got %v.", payload)
	}
	if _, ok := Int(25).Returned(); ok {
		t.Fatalf("A plain value isn't a return signal.")
	}
}

func TestArrayIterator(t *testing.T) {
	arr := NewArray(Str("a"), Str("b"))
	it := NewArrayIterator(arr)
	arr.Push(Str("c"))
	got := ""
	for it.Unfinished() {
		got = got + it.NextValue().String()
	}
	if got != "ab" {
		t.Fatalf("Wanted ab, got %s.", got)
	}
}

func TestArraysAreShared(t *testing.T) {
	arr := NewArray(Int(1))
	a := Value{T: Instantiate(ARRAY, INT), V: arr}
	b := a
	b.V.(*Array).Push(Int(2))
	if a.String() != "[1 2]" {
		t.Fatalf("Wanted [1 2], got %s.", a.String())
	}
	if _, ok := arr.Index(-1); ok {
		t.Fatalf("A negative index should find nothing.")
	}
	if _, ok := arr.Index(2); ok {
		t.Fatalf("An index past the end should find nothing.")
	}
	if el, ok := arr.Index(1); !ok || !Equal(el, Int(2)) {
		t.Fatalf("Wanted 2 at index 1, got %v.", el)
	}
	zeroA, zeroB := Zero(Instantiate(ARRAY, INT)), Zero(Instantiate(ARRAY, INT))
	zeroA.V.(*Array).Push(Int(1))
	if zeroB.V.(*Array).Len() != 0 {
		t.Fatalf("Each zero array should be a new array.")
	}
}
