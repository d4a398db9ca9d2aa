package stdlib

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/tim-hardcastle/wordscript/source/registry"
	"github.com/tim-hardcastle/wordscript/source/values"
)

func registerCrypto(b *registry.Builder) {
	b.Function("bcrypt.hash", []values.Type{values.STRING}, values.STRING, func(args []values.Value) (values.Value, error) {
		result, e := bcrypt.GenerateFromPassword([]byte(args[0].V.(string)), bcrypt.DefaultCost)
		if e != nil {
			return values.Value{}, e
		}
		return values.Str(string(result)), nil
	})
	// The hash comes first, then the password.
	b.Function("bcrypt.check", []values.Type{values.STRING, values.STRING}, values.BOOL, func(args []values.Value) (values.Value, error) {
		e := bcrypt.CompareHashAndPassword([]byte(args[0].V.(string)), []byte(args[1].V.(string)))
		return values.Bool(e == nil), nil
	})
}
