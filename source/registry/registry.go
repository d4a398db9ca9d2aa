package registry

import (
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tim-hardcastle/wordscript/source/err"
	"github.com/tim-hardcastle/wordscript/source/settings"
	"github.com/tim-hardcastle/wordscript/source/token"
	"github.com/tim-hardcastle/wordscript/source/values"
)

type Callable func(args []values.Value) (values.Value, error)

// A native function. Its signature, the name followed by the names of the parameter types,
// is its key in a Registry.
type Function struct {
	Name    string
	Params  []values.Type
	Returns values.Type
	Call    Callable
}

// The Registry knows what types are called, and which functions exist. Registration must
// be finished before parsing starts; after that the registry may be shared between any
// number of parsers.
type Registry struct {
	lock        sync.RWMutex
	typeNames   map[values.Type]string
	typesByName map[string]values.Type
	functions   map[string]*Function
	signatures  map[*Function]string
	overloads   map[string][]string // Function name to signatures, in order of registration.
	cache       *lru.Cache[string, *Overload]
}

const CACHE_SIZE = 512

// Makes a registry knowing the names of the intrinsic types and nothing else.
func NewRegistry() *Registry {
	cache, _ := lru.New[string, *Overload](CACHE_SIZE)
	r := &Registry{
		typeNames:   map[values.Type]string{},
		typesByName: map[string]values.Type{},
		functions:   map[string]*Function{},
		signatures:  map[*Function]string{},
		overloads:   map[string][]string{},
		cache:       cache,
	}
	for _, intrinsic := range []struct {
		t    values.Type
		name string
	}{
		{values.VOID, "void"},
		{values.INT, "int"},
		{values.FLOAT, "float"},
		{values.STRING, "string"},
		{values.BOOL, "bool"},
		{values.VARIABLE, "variable"},
		{values.BLOCK, "block"},
		{values.ACTION, "action"},
		{values.FLOW, "fcw"},
	} {
		r.typeNames[intrinsic.t] = intrinsic.name
		r.typesByName[intrinsic.name] = intrinsic.t
	}
	return r
}

func (r *Registry) RegisterType(t values.Type, name string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.registerType(t, name)
}

func (r *Registry) registerType(t values.Type, name string) error {
	if name == "" || strings.ContainsAny(name, " !\t\n") {
		return err.CreateErr("reg/type/name", token.Position{}, name)
	}
	if _, ok := r.typesByName[name]; ok {
		return err.CreateErr("reg/type/name", token.Position{}, name)
	}
	if existing, ok := r.typeNames[t]; ok {
		return err.CreateErr("reg/type/twice", token.Position{}, existing)
	}
	r.typeNames[t] = name
	r.typesByName[name] = t
	r.cache.Purge()
	return nil
}

// Returns the name of a type. The names of generic instances are made from the names of
// their parts, so they don't need registering.
func (r *Registry) TypeName(t values.Type) (string, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.typeName(t)
}

func (r *Registry) typeName(t values.Type) (string, error) {
	if name, ok := r.typeNames[t]; ok {
		return name, nil
	}
	if !t.IsInstance() {
		return "", err.CreateErr("type/registered", token.Position{}, t.String())
	}
	baseName, e := r.typeName(t.Base())
	if e != nil {
		return "", e
	}
	parts := []string{baseName}
	for _, arg := range t.Args() {
		argName, e := r.typeName(arg)
		if e != nil {
			return "", e
		}
		parts = append(parts, argName)
	}
	return strings.Join(parts, "!"), nil
}

// The inverse of TypeName.
func (r *Registry) TypeByName(name string) (values.Type, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.typeByName(name)
}

func (r *Registry) typeByName(name string) (values.Type, error) {
	if t, ok := r.typesByName[name]; ok {
		return t, nil
	}
	if !strings.Contains(name, "!") {
		return values.UNRESOLVED, err.CreateErr("type/registered", token.Position{}, name)
	}
	t, rest, e := r.parseTypeName(strings.Split(name, "!"))
	if e != nil {
		return values.UNRESOLVED, e
	}
	if len(rest) > 0 {
		return values.UNRESOLVED, err.CreateErr("type/generic", token.Position{}, name, strings.Count(name, "!"))
	}
	return t, nil
}

// Reads one type off the front of the segments of a '!'-separated name, consuming as many
// arguments as the head takes.
func (r *Registry) parseTypeName(segments []string) (values.Type, []string, error) {
	head, ok := r.typesByName[segments[0]]
	if !ok {
		return values.UNRESOLVED, nil, err.CreateErr("type/registered", token.Position{}, segments[0])
	}
	rest := segments[1:]
	if !head.IsGeneric() {
		return head, rest, nil
	}
	if len(rest) < head.Arity() {
		return values.UNRESOLVED, nil, err.CreateErr("type/generic", token.Position{}, segments[0], len(rest))
	}
	args := make([]values.Type, 0, head.Arity())
	for range head.Arity() {
		var arg values.Type
		var e error
		arg, rest, e = r.parseTypeName(rest)
		if e != nil {
			return values.UNRESOLVED, nil, e
		}
		args = append(args, arg)
	}
	return values.Instantiate(head, args...), rest, nil
}

// The signature of a function is its name followed by the names of its parameter types,
// separated by spaces.
func (r *Registry) Signature(name string, params []values.Type) (string, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.signature(name, params)
}

func (r *Registry) signature(name string, params []values.Type) (string, error) {
	parts := []string{name}
	for _, param := range params {
		paramName, e := r.typeName(param)
		if e != nil {
			return "", e
		}
		parts = append(parts, paramName)
	}
	return strings.Join(parts, " "), nil
}

func (r *Registry) RegisterFunction(f *Function) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.registerFunction(f)
}

func (r *Registry) registerFunction(f *Function) error {
	sig, e := r.signature(f.Name, f.Params)
	if e != nil {
		return e
	}
	if _, ok := r.functions[sig]; ok {
		return err.CreateErr("reg/signature", token.Position{}, sig)
	}
	r.functions[sig] = f
	r.signatures[f] = sig
	r.overloads[f.Name] = append(r.overloads[f.Name], sig)
	r.cache.Purge()
	if settings.SHOW_PARSER {
		settings.Log.Debugf("registry: registered %q -> %v", sig, f.Returns)
	}
	return nil
}

func (r *Registry) AddFunction(name string, params []values.Type, returns values.Type, call Callable) error {
	return r.RegisterFunction(&Function{Name: name, Params: params, Returns: returns, Call: call})
}

// A conversion is a one-parameter function named after the type it converts to. The
// overload resolver inserts calls to conversions where they make a call type-check.
func (r *Registry) RegisterConversion(from, to values.Type, convert func(values.Value) (values.Value, error)) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	name, e := r.typeName(to)
	if e != nil {
		return e
	}
	return r.registerFunction(&Function{
		Name:    name,
		Params:  []values.Type{from},
		Returns: to,
		Call: func(args []values.Value) (values.Value, error) {
			return convert(args[0])
		},
	})
}

// The signatures of the overloads of the named function, in the order they were registered.
func (r *Registry) Overloads(name string) []string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return append([]string{}, r.overloads[name]...)
}

func (r *Registry) Resolve(signature string) (*Function, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if f, ok := r.functions[signature]; ok {
		return f, nil
	}
	return nil, err.CreateErr("type/signature", token.Position{}, signature)
}

// SignatureOf gives the signature under which a function was registered.
func (r *Registry) SignatureOf(f *Function) string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.signatures[f]
}

// Copies into this registry the names of all the types the source registry knows, and all
// the overloads of the named functions. Types already known here keep their names here.
func (r *Registry) Include(names []string, source *Registry) error {
	if r == source {
		return nil
	}
	source.lock.RLock()
	defer source.lock.RUnlock()
	r.lock.Lock()
	defer r.lock.Unlock()
	types := make([]values.Type, 0, len(source.typeNames))
	for t := range source.typeNames {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		name := source.typeNames[t]
		if existing, ok := r.typeNames[t]; ok && existing == name {
			continue
		}
		if e := r.registerType(t, name); e != nil {
			return e
		}
	}
	for _, name := range names {
		sigs, ok := source.overloads[name]
		if !ok {
			return err.CreateErr("type/signature", token.Position{}, name)
		}
		for _, sig := range sigs {
			if e := r.registerFunction(source.functions[sig]); e != nil {
				return e
			}
		}
	}
	return nil
}

// The names of all the functions, sorted.
func (r *Registry) FunctionNames() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	result := make([]string, 0, len(r.overloads))
	for name := range r.overloads {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// The names of all the registered types, sorted.
func (r *Registry) TypeNames() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	result := make([]string, 0, len(r.typesByName))
	for name := range r.typesByName {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
