package stdlib

import (
	"math"
	"strconv"

	"github.com/tim-hardcastle/wordscript/source/err"
	"github.com/tim-hardcastle/wordscript/source/registry"
	"github.com/tim-hardcastle/wordscript/source/token"
	"github.com/tim-hardcastle/wordscript/source/values"
)

var (
	ints   = []values.Type{values.INT, values.INT}
	floats = []values.Type{values.FLOAT, values.FLOAT}
	bools  = []values.Type{values.BOOL, values.BOOL}
)

// Conversions, arithmetic, logic, comparison and 'if'.
func registerCore(b *registry.Builder) {
	b.Conversion(values.FLOAT, values.INT, func(v values.Value) (values.Value, error) {
		return values.Int(int(math.Floor(v.V.(float64)))), nil
	})
	b.Conversion(values.INT, values.FLOAT, func(v values.Value) (values.Value, error) {
		return values.Float(float64(v.V.(int))), nil
	})
	b.Conversion(values.STRING, values.INT, func(v values.Value) (values.Value, error) {
		i, e := strconv.Atoi(v.V.(string))
		if e != nil {
			return values.Value{}, err.CreateErr("eval/convert", token.Position{}, v.V.(string), "int")
		}
		return values.Int(i), nil
	})
	b.Conversion(values.STRING, values.FLOAT, func(v values.Value) (values.Value, error) {
		f, e := strconv.ParseFloat(v.V.(string), 64)
		if e != nil {
			return values.Value{}, err.CreateErr("eval/convert", token.Position{}, v.V.(string), "float")
		}
		return values.Float(f), nil
	})

	b.Function("add", []values.Type{values.STRING, values.STRING}, values.STRING, func(args []values.Value) (values.Value, error) {
		return values.Str(args[0].V.(string) + args[1].V.(string)), nil
	})
	b.Function("add", ints, values.INT, intOp(func(a, b int) int { return a + b }))
	b.Function("add", floats, values.FLOAT, floatOp(func(a, b float64) float64 { return a + b }))
	b.Function("sub", ints, values.INT, intOp(func(a, b int) int { return a - b }))
	b.Function("sub", floats, values.FLOAT, floatOp(func(a, b float64) float64 { return a - b }))
	b.Function("mul", ints, values.INT, intOp(func(a, b int) int { return a * b }))
	b.Function("mul", floats, values.FLOAT, floatOp(func(a, b float64) float64 { return a * b }))
	b.Function("div", ints, values.INT, func(args []values.Value) (values.Value, error) {
		if args[1].V.(int) == 0 {
			return values.Value{}, err.CreateErr("eval/div", token.Position{})
		}
		return values.Int(args[0].V.(int) / args[1].V.(int)), nil
	})
	b.Function("div", floats, values.FLOAT, floatOp(func(a, b float64) float64 { return a / b }))

	b.Function("not", []values.Type{values.BOOL}, values.BOOL, func(args []values.Value) (values.Value, error) {
		return values.Bool(!args[0].V.(bool)), nil
	})
	b.Function("and", bools, values.BOOL, func(args []values.Value) (values.Value, error) {
		return values.Bool(args[0].V.(bool) && args[1].V.(bool)), nil
	})
	b.Function("or", bools, values.BOOL, func(args []values.Value) (values.Value, error) {
		return values.Bool(args[0].V.(bool) || args[1].V.(bool)), nil
	})

	b.Function("gt", ints, values.BOOL, intCmp(func(a, b int) bool { return a > b }))
	b.Function("ls", ints, values.BOOL, intCmp(func(a, b int) bool { return a < b }))
	b.Function("gte", ints, values.BOOL, intCmp(func(a, b int) bool { return a >= b }))
	b.Function("lse", ints, values.BOOL, intCmp(func(a, b int) bool { return a <= b }))
	b.Function("gt", floats, values.BOOL, floatCmp(func(a, b float64) bool { return a > b }))
	b.Function("ls", floats, values.BOOL, floatCmp(func(a, b float64) bool { return a < b }))
	b.Function("gte", floats, values.BOOL, floatCmp(func(a, b float64) bool { return a >= b }))
	b.Function("lse", floats, values.BOOL, floatCmp(func(a, b float64) bool { return a <= b }))

	b.Function("true", []values.Type{}, values.BOOL, func(args []values.Value) (values.Value, error) {
		return values.TRUE, nil
	})
	b.Function("false", []values.Type{}, values.BOOL, func(args []values.Value) (values.Value, error) {
		return values.FALSE, nil
	})

	b.Function("action.invoke", []values.Type{values.ACTION}, values.VOID, func(args []values.Value) (values.Value, error) {
		return values.VOID_VALUE, runAction(args[0])
	})

	// Each 'if' returns the negation of the condition it acted on, so that an 'else' can be
	// piped on after it.
	b.Function("if", []values.Type{values.BOOL, values.ACTION}, values.BOOL, func(args []values.Value) (values.Value, error) {
		condition := args[0].V.(bool)
		if condition {
			if e := runAction(args[1]); e != nil {
				return values.Value{}, e
			}
		}
		return values.Bool(!condition), nil
	})
	b.Function("if", []values.Type{values.BOOL, values.ACTION, values.ACTION}, values.BOOL, func(args []values.Value) (values.Value, error) {
		condition := args[0].V.(bool)
		chosen := args[2]
		if condition {
			chosen = args[1]
		}
		if e := runAction(chosen); e != nil {
			return values.Value{}, e
		}
		return values.Bool(!condition), nil
	})
	b.Function("if", []values.Type{values.BOOL, values.BOOL, values.ACTION, values.ACTION}, values.BOOL, func(args []values.Value) (values.Value, error) {
		condition := args[0].V.(bool) && args[1].V.(bool)
		chosen := args[3]
		if condition {
			chosen = args[2]
		}
		if e := runAction(chosen); e != nil {
			return values.Value{}, e
		}
		return values.Bool(!condition), nil
	})
}

func intOp(f func(a, b int) int) registry.Callable {
	return func(args []values.Value) (values.Value, error) {
		return values.Int(f(args[0].V.(int), args[1].V.(int))), nil
	}
}

func floatOp(f func(a, b float64) float64) registry.Callable {
	return func(args []values.Value) (values.Value, error) {
		return values.Float(f(args[0].V.(float64), args[1].V.(float64))), nil
	}
}

func intCmp(f func(a, b int) bool) registry.Callable {
	return func(args []values.Value) (values.Value, error) {
		return values.Bool(f(args[0].V.(int), args[1].V.(int))), nil
	}
}

func floatCmp(f func(a, b float64) bool) registry.Callable {
	return func(args []values.Value) (values.Value, error) {
		return values.Bool(f(args[0].V.(float64), args[1].V.(float64))), nil
	}
}

func runAction(action values.Value) error {
	_, e := action.V.(values.Evaluable).Evaluate()
	return e
}
