package stdlib

import (
	"fmt"
	"io"

	"github.com/tim-hardcastle/wordscript/source/registry"
	"github.com/tim-hardcastle/wordscript/source/values"
)

func registerIO(b *registry.Builder, out io.Writer) {
	b.Function("print", []values.Type{values.STRING}, values.VOID, func(args []values.Value) (values.Value, error) {
		_, e := fmt.Fprint(out, args[0].V.(string))
		return values.VOID_VALUE, e
	})
	b.Function("println", []values.Type{values.STRING}, values.VOID, func(args []values.Value) (values.Value, error) {
		_, e := fmt.Fprintln(out, args[0].V.(string))
		return values.VOID_VALUE, e
	})
	b.Function("println", []values.Type{}, values.VOID, func(args []values.Value) (values.Value, error) {
		_, e := fmt.Fprintln(out)
		return values.VOID_VALUE, e
	})
}
