package stdlib

import (
	"github.com/tim-hardcastle/wordscript/source/err"
	"github.com/tim-hardcastle/wordscript/source/registry"
	"github.com/tim-hardcastle/wordscript/source/token"
	"github.com/tim-hardcastle/wordscript/source/values"
)

// Makes the functions that every element type T gets:
//
//	block!T.invoke block!T -> T
//	array!T -> array!T
//	array!T.at array!T int -> T
//	array!T.size array!T -> int
//	array!T.push array!T T -> array!T
//	array!T.forEach array!T variable!T action -> array!T
//
// The array!T functions are only made if the registry knows about arrays. 'push' adds to
// the array it is given and returns that same array.
func RegisterElementType(reg *registry.Registry, t values.Type) error {
	blockType := values.Instantiate(values.BLOCK, t)
	blockName, e := reg.TypeName(blockType)
	if e != nil {
		return e
	}
	b := registry.NewBuilder(reg)
	b.Function(blockName+".invoke", []values.Type{blockType}, t, func(args []values.Value) (values.Value, error) {
		result, e := args[0].V.(values.Evaluable).Evaluate()
		if e != nil {
			return values.Value{}, e
		}
		if result.T != t {
			return values.Zero(t), nil
		}
		return result, nil
	})
	if _, e := reg.TypeName(values.ARRAY); e != nil {
		return b.Err()
	}
	arrayType := values.Instantiate(values.ARRAY, t)
	arrayName, e := reg.TypeName(arrayType)
	if e != nil {
		return e
	}
	b.Function(arrayName, []values.Type{}, arrayType, func(args []values.Value) (values.Value, error) {
		return values.Value{T: arrayType, V: values.NewArray()}, nil
	})
	b.Function(arrayName+".at", []values.Type{arrayType, values.INT}, t, func(args []values.Value) (values.Value, error) {
		arr := args[0].V.(*values.Array)
		i := args[1].V.(int)
		elem, ok := arr.Index(i)
		if !ok {
			return values.Value{}, err.CreateErr("eval/index", token.Position{}, i, arr.Len())
		}
		return elem, nil
	})
	b.Function(arrayName+".size", []values.Type{arrayType}, values.INT, func(args []values.Value) (values.Value, error) {
		return values.Int(args[0].V.(*values.Array).Len()), nil
	})
	b.Function(arrayName+".push", []values.Type{arrayType, t}, arrayType, func(args []values.Value) (values.Value, error) {
		args[0].V.(*values.Array).Push(args[1])
		return args[0], nil
	})
	b.Function(arrayName+".forEach", []values.Type{arrayType, values.Instantiate(values.VARIABLE, t), values.ACTION}, arrayType,
		func(args []values.Value) (values.Value, error) {
			ref := args[1].V.(values.Reference)
			action := args[2].V.(values.Evaluable)
			for it := values.NewArrayIterator(args[0].V.(*values.Array)); it.Unfinished(); {
				if e := ref.Set(it.NextValue()); e != nil {
					return values.Value{}, e
				}
				if _, e := action.Evaluate(); e != nil {
					return values.Value{}, e
				}
			}
			return args[0], nil
		})
	return b.Err()
}

// Makes an array from Go values already wrapped as values of the element type.
func MakeArray(elem values.Type, elements ...values.Value) values.Value {
	return values.Value{T: values.Instantiate(values.ARRAY, elem), V: values.NewArray(elements...)}
}
