// norm.go
//
// The Norm engine: the public surface of the kernel's normalizer. It owns
// the read-only definition store, the injected implicit resolver and the
// theorem-unfolding policy, and composes evaluation with quotation into
// the one operation everything else consumes.
//
// A Norm is safe for concurrent use: normalization allocates all of its
// scopes and values per call and the definition store is never written
// here, so parallel Normalize calls only share read-only state (callers
// supplying an implicit resolver must keep it reentrant).
package latte

// ImplicitResolver resolves an elaboration placeholder to a concrete term.
// ctx is the typing context surrounding the reference; args are the
// placeholder's (unevaluated) arguments. The elaborator injects one
// resolver per engine — there is no process-wide registration.
type ImplicitResolver func(ctx *Context, name string, args []Term) (Term, error)

// Norm normalizes terms against one definitional environment.
type Norm struct {
	defs           *DefEnv
	implicits      ImplicitResolver
	unfoldTheorems bool
}

// Option configures a Norm at construction.
type Option func(*Norm)

// WithImplicits injects the implicit resolver.
func WithImplicits(r ImplicitResolver) Option {
	return func(n *Norm) { n.implicits = r }
}

// WithUnfoldTheorems switches the delta policy for proven theorems from
// "keep neutral" (the default) to "unfold the proof".
func WithUnfoldTheorems(on bool) Option {
	return func(n *Norm) { n.unfoldTheorems = on }
}

// New builds an engine over defs. A nil defs is treated as empty.
func New(defs *DefEnv, opts ...Option) *Norm {
	if defs == nil {
		defs = NewDefEnv()
	}
	n := &Norm{defs: defs}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Defs exposes the engine's definition store.
func (n *Norm) Defs() *DefEnv { return n.defs }

// Normalize computes the beta/delta normal form of t, up to
// alpha-equivalence, in the empty typing context.
func (n *Norm) Normalize(t Term) (Term, error) {
	return n.NormalizeIn(nil, t)
}

// NormalizeIn is Normalize under a typing context (threaded to the
// implicit resolver). No argument is mutated; errors abort the whole call
// with no partial result.
func (n *Norm) NormalizeIn(ctx *Context, t Term) (out Term, err error) {
	defer func() {
		if r := recover(); r != nil {
			ke, ok := r.(*KernelError)
			if !ok {
				panic(r)
			}
			out, err = Term{}, ke
		}
	}()
	q := newQuoter(n, t)
	return q.quote(0, n.eval(ctx, nil, t)), nil
}

// Equiv reports beta/delta-equality of a and b under the engine's policy:
// both are normalized and compared up to alpha-equivalence. This is the
// kernel's definitional-equality test.
func (n *Norm) Equiv(a, b Term) (bool, error) {
	na, err := n.Normalize(a)
	if err != nil {
		return false, err
	}
	nb, err := n.Normalize(b)
	if err != nil {
		return false, err
	}
	return AlphaEq(na, nb), nil
}
