// term.go
//
// The term syntax of the kernel: a lambda/Pi calculus with two sorts,
// named global references and type ascriptions.
//
// Terms form a tagged sum in the same shape as a runtime value: a small
// struct carrying a discriminant plus a payload whose concrete type is
// fixed by the tag. Terms are immutable once built and structurally
// shared; nothing in this package ever mutates a Term in place.
//
//	TmVar     Data = string            variable occurrence
//	TmSort    Data = SortKind          ✳ (type) or □ (kind)
//	TmBinder  Data = *Binder           λ[x:T].b or Π[x:T].b
//	TmApp     Data = *Apply            application [f a]
//	TmRef     Data = *RefTerm          (name arg...) global reference
//	TmAscribe Data = *Ascription       {t :: T}
package latte

import "golang.org/x/exp/slices"

// TermTag enumerates the syntactic kinds a Term may hold.
type TermTag int

const (
	TmVar TermTag = iota
	TmSort
	TmBinder
	TmApp
	TmRef
	TmAscribe
)

// SortKind distinguishes the two universe markers.
type SortKind int

const (
	KindType SortKind = iota // ✳, the sort of types
	KindKind                 // □, the sort of ✳
)

// BindKind distinguishes value-level from type-level binders.
type BindKind int

const (
	Lambda BindKind = iota
	Pi
)

// Term is the syntax carrier. Tag fixes the dynamic type of Data.
type Term struct {
	Tag  TermTag
	Data any
}

// Binder is the payload of TmBinder. The bound name scopes over Body only;
// Domain is outside the binding.
type Binder struct {
	Kind   BindKind
	Name   string
	Domain Term
	Body   Term
}

// Apply is the payload of TmApp.
type Apply struct {
	Fn  Term
	Arg Term
}

// RefTerm is the payload of TmRef: a global definition, theorem, axiom or
// implicit applied to zero or more arguments.
type RefTerm struct {
	Name string
	Args []Term
}

// Ascription is the payload of TmAscribe: a term paired with its declared
// type. Ascriptions have no computational behavior of their own.
type Ascription struct {
	Body Term
	Type Term
}

// --- constructors ---

func Var(name string) Term { return Term{Tag: TmVar, Data: name} }

func Sort(k SortKind) Term { return Term{Tag: TmSort, Data: k} }

// Star is the sort ✳ of types; Box is the sort □ of ✳ itself.
var (
	Star = Sort(KindType)
	Box  = Sort(KindKind)
)

func Lam(name string, domain, body Term) Term {
	return Term{Tag: TmBinder, Data: &Binder{Kind: Lambda, Name: name, Domain: domain, Body: body}}
}

func Prod(name string, domain, body Term) Term {
	return Term{Tag: TmBinder, Data: &Binder{Kind: Pi, Name: name, Domain: domain, Body: body}}
}

func App(fn, arg Term) Term {
	return Term{Tag: TmApp, Data: &Apply{Fn: fn, Arg: arg}}
}

// Apps folds a spine of applications left-associatively.
func Apps(fn Term, args ...Term) Term {
	for _, a := range args {
		fn = App(fn, a)
	}
	return fn
}

func Ref(name string, args ...Term) Term {
	return Term{Tag: TmRef, Data: &RefTerm{Name: name, Args: args}}
}

func Ascribe(body, typ Term) Term {
	return Term{Tag: TmAscribe, Data: &Ascription{Body: body, Type: typ}}
}

// --- predicates & accessors ---

func (t Term) IsVar() bool     { return t.Tag == TmVar }
func (t Term) IsSort() bool    { return t.Tag == TmSort }
func (t Term) IsBinder() bool  { return t.Tag == TmBinder }
func (t Term) IsLambda() bool  { return t.Tag == TmBinder && t.Data.(*Binder).Kind == Lambda }
func (t Term) IsPi() bool      { return t.Tag == TmBinder && t.Data.(*Binder).Kind == Pi }
func (t Term) IsApp() bool     { return t.Tag == TmApp }
func (t Term) IsRef() bool     { return t.Tag == TmRef }
func (t Term) IsAscribe() bool { return t.Tag == TmAscribe }

// VarName returns the payload of a TmVar. Callers check the tag first.
func (t Term) VarName() string { return t.Data.(string) }

// FreeVars returns the free variable names of t, each once, in first-use
// order.
func FreeVars(t Term) []string {
	var out []string
	var walk func(t Term, bound []string)
	walk = func(t Term, bound []string) {
		switch t.Tag {
		case TmVar:
			name := t.Data.(string)
			if !slices.Contains(bound, name) && !slices.Contains(out, name) {
				out = append(out, name)
			}
		case TmSort:
		case TmBinder:
			b := t.Data.(*Binder)
			walk(b.Domain, bound)
			walk(b.Body, append(bound, b.Name))
		case TmApp:
			a := t.Data.(*Apply)
			walk(a.Fn, bound)
			walk(a.Arg, bound)
		case TmRef:
			r := t.Data.(*RefTerm)
			for _, arg := range r.Args {
				walk(arg, bound)
			}
		case TmAscribe:
			a := t.Data.(*Ascription)
			walk(a.Body, bound)
			walk(a.Type, bound)
		}
	}
	walk(t, nil)
	return out
}
