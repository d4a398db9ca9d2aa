// Package stdlib supplies the functions and types that scripts can use out of the box. None
// of it is special: it is all ordinary registry entries, and a host can leave any of it out
// or add its own alongside.
package stdlib

import (
	"io"
	"os"

	"github.com/tim-hardcastle/wordscript/source/registry"
	"github.com/tim-hardcastle/wordscript/source/values"
)

type Options struct {
	Out      io.Writer // Where 'print' and 'println' write. Defaults to stdout.
	NoSQL    bool
	NoCrypto bool
}

// Makes a registry with the standard library in it.
func NewRegistry(opts Options) (*registry.Registry, error) {
	reg := registry.NewRegistry()
	if e := Register(reg, opts); e != nil {
		return nil, e
	}
	return reg, nil
}

// Adds the standard library to a registry. The block and array functions are made for every
// non-generic type the registry knows at the end; types registered later need a call to
// RegisterElementType.
func Register(reg *registry.Registry, opts Options) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	b := registry.NewBuilder(reg)
	b.Type(values.ARRAY, "array")
	registerCore(b)
	registerIO(b, opts.Out)
	if !opts.NoSQL {
		b.Type(DATABASE, "database")
		registerSQL(b)
	}
	if !opts.NoCrypto {
		registerCrypto(b)
	}
	if e := b.Err(); e != nil {
		return e
	}
	for _, name := range reg.TypeNames() {
		t, e := reg.TypeByName(name)
		if e != nil {
			return e
		}
		if t.IsGeneric() || t == values.VOID {
			continue
		}
		if e := RegisterElementType(reg, t); e != nil {
			return e
		}
	}
	if !opts.NoSQL {
		return RegisterElementType(reg, values.Instantiate(values.ARRAY, values.STRING))
	}
	return nil
}
