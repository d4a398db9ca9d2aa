package registry

import (
	"strings"

	"github.com/tim-hardcastle/wordscript/source/err"
	"github.com/tim-hardcastle/wordscript/source/settings"
	"github.com/tim-hardcastle/wordscript/source/token"
	"github.com/tim-hardcastle/wordscript/source/values"
)

// A conversion the resolver wants applied to an argument before it is passed.
type Conversion struct {
	Target   values.Type
	Name     string // The name of the target type, which is also the name of the conversion.
	ToString bool   // Whether this is the universal to-string conversion rather than a registered one.
}

// The result of overload resolution: the function to call, and for each argument either
// nil or the conversion to apply to it. An Overload may be shared and must not be changed.
type Overload struct {
	Function    *Function
	Signature   string
	Conversions []*Conversion
	Weight      int
}

// Chooses which overload of the named function to call with arguments of the given types.
//
// Each overload with the right number of parameters is weighed. A parameter of the same type
// as its argument costs nothing. Otherwise the argument must be converted, which costs 1, and
// which is possible if the parameter is a string, or if there is a registered conversion from
// the argument type to the parameter type. If some argument can't be converted the overload is
// out of the running. The lightest overload wins, and of equally light overloads the one
// registered first wins. If implicit conversion is forbidden, only overloads with weight 0 can
// win.
func (r *Registry) ResolveOverload(name string, args []values.Type, noImplicitConversion bool) (*Overload, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	target, e := r.signature(name, args)
	if e != nil {
		return nil, e
	}
	key := target
	if noImplicitConversion {
		key = key + "\x00exact"
	}
	if result, ok := r.cache.Get(key); ok {
		return result, nil
	}
	targetTypes := strings.Split(target, " ")[1:]
	candidates := []string{}
	var best *Overload
	for _, sig := range r.overloads[name] {
		f := r.functions[sig]
		if len(f.Params) != len(args) {
			continue
		}
		candidates = append(candidates, sig)
		overload, ok := r.weigh(f, sig, args, targetTypes)
		if !ok || (noImplicitConversion && overload.Weight > 0) {
			continue
		}
		if best == nil || overload.Weight < best.Weight {
			best = overload
		}
	}
	if best == nil {
		return nil, err.CreateErr("type/function", token.Position{}, target, candidates)
	}
	if settings.SHOW_PARSER {
		settings.Log.Debugf("registry: %q resolves to %q with weight %d", target, best.Signature, best.Weight)
	}
	r.cache.Add(key, best)
	return best, nil
}

func (r *Registry) weigh(f *Function, sig string, args []values.Type, argNames []string) (*Overload, bool) {
	overload := &Overload{Function: f, Signature: sig, Conversions: make([]*Conversion, len(args))}
	paramNames := strings.Split(sig, " ")[1:]
	for i, param := range f.Params {
		if paramNames[i] == argNames[i] {
			continue
		}
		switch {
		case param == values.STRING:
			overload.Conversions[i] = &Conversion{Target: param, Name: paramNames[i], ToString: true}
		case r.functions[paramNames[i]+" "+argNames[i]] != nil:
			overload.Conversions[i] = &Conversion{Target: param, Name: paramNames[i]}
		default:
			return nil, false
		}
		overload.Weight++
	}
	return overload, true
}
