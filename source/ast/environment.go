package ast

import (
	"github.com/tim-hardcastle/wordscript/source/err"
	"github.com/tim-hardcastle/wordscript/source/registry"
	"github.com/tim-hardcastle/wordscript/source/scope"
	"github.com/tim-hardcastle/wordscript/source/token"
	"github.com/tim-hardcastle/wordscript/source/values"
)

// The Environment is what the parser parses in: the registry, and the stack of blocks it is
// in the middle of. At the bottom of the stack is the root block, whose scope is persistent
// and outlives everything parsed in it.
type Environment struct {
	Registry *registry.Registry
	root     *Block
	blocks   []*Block
}

func NewEnvironment(reg *registry.Registry) *Environment {
	pos := token.Position{Source: "-root-"}
	root := &Block{scope: scope.NewRoot(), nodes: []Node{}, position: pos}
	return &Environment{Registry: reg, root: root, blocks: []*Block{root}}
}

func (env *Environment) Root() *Block {
	return env.root
}

// The block being parsed.
func (env *Environment) Top() *Block {
	return env.blocks[len(env.blocks)-1]
}

func (env *Environment) Depth() int {
	return len(env.blocks)
}

// Opens a new block with a scope enclosed by the scope of the block being parsed.
func (env *Environment) StartBlock(pos token.Position) *Block {
	b := NewBlock(env.Top().scope, pos)
	env.blocks = append(env.blocks, b)
	return b
}

// Closes the block being parsed and returns it. The root block can't be closed.
func (env *Environment) EndBlock() (*Block, error) {
	if len(env.blocks) == 1 {
		return nil, err.CreateErr("block/end", token.Position{})
	}
	b := env.Top()
	env.blocks = env.blocks[:len(env.blocks)-1]
	return b, nil
}

// Closes blocks until there are only the given number open. After an error, this puts the
// environment back the way it was before the parse started.
func (env *Environment) Unwind(depth int) {
	if depth < 1 {
		depth = 1
	}
	for len(env.blocks) > depth {
		env.blocks = env.blocks[:len(env.blocks)-1]
	}
}

func (env *Environment) Append(node Node) {
	env.Top().Append(node)
}

func (env *Environment) GetVariable(name string) *scope.Variable {
	return env.Top().scope.Lookup(name)
}

// Defines a variable in the scope of the block being parsed. Nothing can be stored in a
// variable of type void, nor can a return signal.
func (env *Environment) DefineVariable(name string, t values.Type, pos token.Position) (*scope.Variable, error) {
	if t == values.VOID {
		return nil, err.CreateErr("var/void", pos, name)
	}
	if t.Is(values.FLOW) {
		return nil, err.CreateErr("var/flow", pos, name)
	}
	return env.Top().scope.Define(name, t, pos)
}
