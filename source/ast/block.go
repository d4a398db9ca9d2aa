package ast

import (
	"strconv"

	"github.com/tim-hardcastle/wordscript/source/err"
	"github.com/tim-hardcastle/wordscript/source/registry"
	"github.com/tim-hardcastle/wordscript/source/scope"
	"github.com/tim-hardcastle/wordscript/source/settings"
	"github.com/tim-hardcastle/wordscript/source/token"
	"github.com/tim-hardcastle/wordscript/source/values"
)

// A Block is a sequence of validated nodes with the scope they were parsed in.
type Block struct {
	scope      *scope.Scope
	nodes      []Node
	position   token.Position
	returnType values.Type
}

func NewBlock(parent *scope.Scope, pos token.Position) *Block {
	return &Block{scope: scope.New(parent), nodes: []Node{}, position: pos}
}

func (b *Block) Scope() *scope.Scope      { return b.scope }
func (b *Block) Nodes() []Node            { return b.nodes }
func (b *Block) Position() token.Position { return b.position }
func (b *Block) Append(node Node)         { b.nodes = append(b.nodes, node) }
func (b *Block) IsValidated() bool        { return b.returnType != values.UNRESOLVED }
func (b *Block) ReturnType() values.Type  { return b.returnType }
func (b *Block) Len() int                 { return len(b.nodes) }

// Drops every node after the first n.
func (b *Block) Truncate(n int) {
	if n < len(b.nodes) {
		b.nodes = b.nodes[:n]
	}
}

// Works out what the block returns. A block consisting of one node of a generic type returns
// that; otherwise the types of all its return statements must agree, and if it has none it
// returns void. The return type, once found, doesn't change.
func (b *Block) Validate(reg *registry.Registry) error {
	if b.IsValidated() {
		return nil
	}
	if len(b.nodes) == 1 {
		t := b.nodes[0].Type()
		if t.IsInstance() && !t.Is(values.FLOW) {
			b.returnType = t
			return nil
		}
	}
	returnType := values.UNRESOLVED
	for _, node := range b.nodes {
		t := node.Type()
		if !t.Is(values.FLOW) {
			continue
		}
		if returnType == values.UNRESOLVED {
			returnType = t.Elem()
		}
		if t.Elem() != returnType {
			return err.CreateErr("type/return", node.GetPosition(), nameOf(reg, returnType))
		}
	}
	if returnType == values.UNRESOLVED {
		returnType = values.VOID
	}
	b.returnType = returnType
	return nil
}

// Wraps the validated block up as a value: a typed block if it returns anything and an
// action if it doesn't, or an action regardless if asked for one.
func (b *Block) AsValue(action bool) values.Value {
	if action || b.returnType == values.VOID {
		return values.Value{T: values.ACTION, V: b}
	}
	return values.Value{T: values.Instantiate(values.BLOCK, b.returnType), V: b}
}

// Runs the block. The first node to evaluate to a return signal ends the block, and its
// payload is the value of the block. A block of just one node has that node's value.
func (b *Block) Evaluate() (values.Value, error) {
	return b.EvaluateFrom(0)
}

// Runs the nodes from the given one onwards, as though they were the whole block. This is
// how the REPL runs each new line it adds to the root block.
func (b *Block) EvaluateFrom(start int) (values.Value, error) {
	b.scope.Enter()
	defer b.scope.Exit()
	nodes := b.nodes[start:]
	if settings.SHOW_EVAL {
		settings.Log.Debugf("eval: entering block at %v with %d nodes", b.position, len(nodes))
	}
	if len(nodes) == 1 {
		val, e := nodes[0].Evaluate()
		if e != nil {
			return values.Value{}, e
		}
		val, _ = val.Returned()
		return val, nil
	}
	for _, node := range nodes {
		val, e := node.Evaluate()
		if e != nil {
			return values.Value{}, e
		}
		if payload, ok := val.Returned(); ok {
			return payload, nil
		}
	}
	return values.VOID_VALUE, nil
}

func (b *Block) String() string {
	if b.returnType == values.VOID {
		return "[action[" + strconv.Itoa(len(b.nodes)) + "]]"
	}
	return "[block[" + strconv.Itoa(len(b.nodes)) + "]]:" + b.returnType.String()
}

func nameOf(reg *registry.Registry, t values.Type) string {
	if reg != nil {
		if name, e := reg.TypeName(t); e == nil {
			return name
		}
	}
	return t.String()
}
