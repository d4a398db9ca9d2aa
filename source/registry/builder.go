package registry

import (
	"github.com/tim-hardcastle/wordscript/source/values"
)

// A Builder populates a registry, keeping hold of the first thing that goes wrong so that
// the host only has to check once, at the end.
type Builder struct {
	reg *Registry
	e   error
}

func NewBuilder(reg *Registry) *Builder {
	return &Builder{reg: reg}
}

func (b *Builder) Type(t values.Type, name string) *Builder {
	if b.e == nil {
		b.e = b.reg.RegisterType(t, name)
	}
	return b
}

func (b *Builder) Conversion(from, to values.Type, convert func(values.Value) (values.Value, error)) *Builder {
	if b.e == nil {
		b.e = b.reg.RegisterConversion(from, to, convert)
	}
	return b
}

func (b *Builder) Function(name string, params []values.Type, returns values.Type, call Callable) *Builder {
	if b.e == nil {
		b.e = b.reg.AddFunction(name, params, returns, call)
	}
	return b
}

func (b *Builder) Err() error {
	return b.e
}

func (b *Builder) Registry() (*Registry, error) {
	return b.reg, b.e
}
