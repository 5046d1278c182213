// defenv.go
//
// The definitional environment: the read-only store of named globals a
// reference can resolve to. Four entry kinds exist — transparent/opaque
// definitions, theorems, axioms and implicit (elaboration-time)
// placeholders. The normalization core only ever reads this store; writes
// happen before normalization, when a session or an elaborator populates it.
package latte

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// EntryKind classifies a stored global.
type EntryKind int

const (
	KindDefinition EntryKind = iota
	KindTheorem
	KindAxiom
	KindImplicit
)

func (k EntryKind) String() string {
	switch k {
	case KindDefinition:
		return "definition"
	case KindTheorem:
		return "theorem"
	case KindAxiom:
		return "axiom"
	case KindImplicit:
		return "implicit"
	default:
		return "entry"
	}
}

// Param is a declared formal parameter of a global.
type Param struct {
	Name string
	Type Term
}

// Entry is one stored global. Params/Body/Proof/Opaque are meaningful per
// Kind; Arity is the declared parameter count for every kind (implicits
// declare an arity without naming parameters).
type Entry struct {
	Kind   EntryKind
	Name   string
	Arity  int
	Params []Param
	Body   *Term // definitions; nil when no parsed body is attached
	Proof  *Term // theorems; nil when unproven
	Opaque bool  // definitions only
}

func (e *Entry) IsDefinition() bool { return e.Kind == KindDefinition }
func (e *Entry) IsTheorem() bool    { return e.Kind == KindTheorem }
func (e *Entry) IsAxiom() bool      { return e.Kind == KindAxiom }
func (e *Entry) IsImplicit() bool   { return e.Kind == KindImplicit }

// DefEnv is the definition store. Zero value is not usable; construct with
// NewDefEnv.
type DefEnv struct {
	entries map[string]*Entry
}

func NewDefEnv() *DefEnv {
	return &DefEnv{entries: map[string]*Entry{}}
}

// Fetch resolves a global name.
func (d *DefEnv) Fetch(name string) (*Entry, bool) {
	e, ok := d.entries[name]
	return e, ok
}

// Names lists all stored globals in lexical order.
func (d *DefEnv) Names() []string {
	out := make([]string, 0, len(d.entries))
	for n := range d.entries {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

func (d *DefEnv) add(e *Entry) error {
	if _, dup := d.entries[e.Name]; dup {
		return fmt.Errorf("duplicate global %q", e.Name)
	}
	d.entries[e.Name] = e
	return nil
}

// AddDefinition stores a transparent definition with a parsed body.
func (d *DefEnv) AddDefinition(name string, params []Param, body Term) error {
	return d.add(&Entry{Kind: KindDefinition, Name: name, Arity: len(params), Params: params, Body: &body})
}

// AddOpaqueDefinition stores a definition that never unfolds. A nil body is
// allowed: opacity makes the body irrelevant to normalization.
func (d *DefEnv) AddOpaqueDefinition(name string, params []Param, body *Term) error {
	return d.add(&Entry{Kind: KindDefinition, Name: name, Arity: len(params), Params: params, Body: body, Opaque: true})
}

// AddTheorem stores a theorem; proof may be nil while unproven.
func (d *DefEnv) AddTheorem(name string, params []Param, proof *Term) error {
	return d.add(&Entry{Kind: KindTheorem, Name: name, Arity: len(params), Params: params, Proof: proof})
}

// AddAxiom stores an axiom.
func (d *DefEnv) AddAxiom(name string, params []Param) error {
	return d.add(&Entry{Kind: KindAxiom, Name: name, Arity: len(params), Params: params})
}

// AddImplicit stores an elaboration placeholder of the given arity.
func (d *DefEnv) AddImplicit(name string, arity int) error {
	return d.add(&Entry{Kind: KindImplicit, Name: name, Arity: arity})
}
