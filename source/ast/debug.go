package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/tim-hardcastle/wordscript/source/registry"
	"github.com/tim-hardcastle/wordscript/source/values"
)

// Renders a block as an indented tree, one node to a line, for the REPL's ':tree' command
// and for tracing.
func Debug(b *Block, reg *registry.Registry) string {
	var out bytes.Buffer
	p := &printer{out: &out, reg: reg}
	p.block(b)
	return out.String()
}

// Renders a single node the same way.
func DebugNode(node Node, reg *registry.Registry) string {
	var out bytes.Buffer
	p := &printer{out: &out, reg: reg}
	p.node(node)
	return out.String()
}

type printer struct {
	out    *bytes.Buffer
	reg    *registry.Registry
	indent int
}

func (p *printer) write(s string) {
	p.out.WriteString(strings.Repeat("  ", p.indent))
	p.out.WriteString(s)
	p.out.WriteString("\n")
}

func (p *printer) block(b *Block) {
	header := "Block"
	if b.IsValidated() {
		header = header + ":" + nameOf(p.reg, b.ReturnType())
	}
	p.write(header + " = {")
	p.indent++
	for _, node := range b.nodes {
		p.node(node)
	}
	p.indent--
	p.write("}")
}

func (p *printer) node(node Node) {
	switch n := node.(type) {
	case *Literal:
		if b, ok := n.Value.V.(*Block); ok && (n.Value.T == values.ACTION || n.Value.T.Is(values.BLOCK)) {
			p.write("Literal " + nameOf(p.reg, n.Value.T))
			p.indent++
			p.block(b)
			p.indent--
			return
		}
		p.write(nameOf(p.reg, n.Value.T) + " " + n.String())
	case *Statement:
		switch n.binding {
		case FUNCTION:
			p.write("Statement[" + strconv.Itoa(len(n.Args)) + "] \"" + n.signature + "\":" + nameOf(p.reg, n.Type()) + " = {")
			p.indent++
			for _, arg := range n.Args {
				p.node(arg)
			}
			p.indent--
			p.write("}")
		case QUERY:
			p.write("Variable query: " + n.variable.Name() + " " + nameOf(p.reg, n.Type()) + " " + n.variable.Position().String())
		case DECLARATION:
			p.write("Variable definition: " + n.variable.Name() + " " + nameOf(p.reg, n.Type()) + " " + n.variable.Position().String())
		case ASSIGNMENT:
			p.write("Variable assignment: " + n.variable.Name() + " " + nameOf(p.reg, n.Type()) + " " + n.variable.Position().String() + " = {")
			p.indent++
			p.node(n.Args[0])
			p.indent--
			p.write("}")
		default:
			p.write("Statement " + n.Name + " is not validated")
		}
	}
}
