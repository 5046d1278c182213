// value.go
//
// The semantic domain of normalization-by-evaluation. Values mirror the
// term syntax minus redexes: an application of a Lambda closure never
// exists as a Value (eval resolves it on the spot), so everything here is
// either a closure awaiting an argument or a neutral — a computation stuck
// on a free variable or an opaque reference.
//
// Values are created fresh for one normalization and discarded after
// quotation. They carry no identity across calls.
package latte

// ValueTag enumerates the semantic kinds a Value may hold.
type ValueTag int

const (
	VNeuVar ValueTag = iota // string: variable not substituted
	VSort                   // SortKind: universe marker, never reduces
	VClosure                // *Closure: binder with a deferred body
	VNeuApp                 // *NeutralApp: stuck application
	VNeuRef                 // *NeutralRef: opaque or undissolved reference
	VNeuAscribe             // *NeutralAscribe: ascription of values
)

// Value is the semantic carrier. Tag fixes the dynamic type of Data.
type Value struct {
	Tag  ValueTag
	Data any
}

// NeutralApp is a stuck application: Fn is not (and will never become)
// a Lambda closure.
type NeutralApp struct {
	Fn  Value
	Arg Value
}

// NeutralRef is a global reference that delta-reduction declined to unfold.
type NeutralRef struct {
	Name string
	Args []Value
}

// NeutralAscribe carries the evaluated term and its evaluated type.
type NeutralAscribe struct {
	Body Value
	Type Value
}

// Closure is a binder whose body evaluation is deferred: an explicit owned
// capture of the binding site. Forcing it is the one and only way the body
// ever gets evaluated, and each Force call owns its own extension of the
// captured scope; sibling forces never share bindings.
type Closure struct {
	Kind    BindKind
	Name    string
	Domain  Value // evaluated domain type, for quotation
	domainT Term  // syntactic domain type, for context extension
	body    Term
	scope   *Scope
	ctx     *Context
	n       *Norm
}

// Force performs the substitution the closure stands for: it binds the
// closure's name to arg and resumes evaluation of the deferred body.
func (c *Closure) Force(arg Value) Value {
	return c.n.eval(c.ctx.Bind(c.Name, c.domainT), c.scope.Bind(c.Name, arg), c.body)
}

func neuVar(name string) Value  { return Value{Tag: VNeuVar, Data: name} }
func sortVal(k SortKind) Value  { return Value{Tag: VSort, Data: k} }
func closVal(c *Closure) Value  { return Value{Tag: VClosure, Data: c} }
func neuApp(fn, arg Value) Value {
	return Value{Tag: VNeuApp, Data: &NeutralApp{Fn: fn, Arg: arg}}
}
func neuRef(name string, args []Value) Value {
	return Value{Tag: VNeuRef, Data: &NeutralRef{Name: name, Args: args}}
}
func neuAscribe(body, typ Value) Value {
	return Value{Tag: VNeuAscribe, Data: &NeutralAscribe{Body: body, Type: typ}}
}

// Scope is the evaluation environment: an immutable name → Value mapping
// extended by consing. A nil *Scope is the empty scope. Extension never
// mutates, so closures capturing a scope are isolated from later bindings.
type Scope struct {
	name string
	val  Value
	next *Scope
}

// Bind returns a scope extending s with name ↦ v. s is unchanged.
func (s *Scope) Bind(name string, v Value) *Scope {
	return &Scope{name: name, val: v, next: s}
}

// Lookup finds the innermost binding of name.
func (s *Scope) Lookup(name string) (Value, bool) {
	for e := s; e != nil; e = e.next {
		if e.name == name {
			return e.val, true
		}
	}
	return Value{}, false
}

// Context is the typing context threaded alongside the scope: the names in
// scope paired with their syntactic types. The kernel itself never reads
// it; it exists for the implicit resolver, which needs to know the types
// of the variables surrounding a placeholder. Same immutable cons shape
// as Scope. A nil *Context is the empty context.
type Context struct {
	name string
	typ  Term
	next *Context
}

// Bind returns a context extending c with name : typ.
func (c *Context) Bind(name string, typ Term) *Context {
	return &Context{name: name, typ: typ, next: c}
}

// Lookup finds the innermost declared type of name.
func (c *Context) Lookup(name string) (Term, bool) {
	for e := c; e != nil; e = e.next {
		if e.name == name {
			return e.typ, true
		}
	}
	return Term{}, false
}
