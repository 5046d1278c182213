// delta.go
//
// Delta-reduction: deciding whether a global reference unfolds, and
// producing the replacement term when it does. The unfolding policy is
// per entry kind; the caller (eval) re-evaluates the replacement, so this
// file deals in syntax only.
package latte

// delta resolves one reference. It returns the replacement term and true
// when the reference unfolds, or the original reference rebuilt and false
// when it stays neutral. Every failure kind of the reference machinery is
// raised from here.
//
// A reference never carries more arguments than its declared arity; the
// surplus of an over-applied global is the caller's outer App spine, not
// delta's business.
func (n *Norm) delta(ctx *Context, name string, args []Term) (Term, bool) {
	e, ok := n.defs.Fetch(name)
	if !ok {
		kerr(ErrUnknownDefinition, name, "reference to undefined global")
	}
	if len(args) > e.Arity {
		kerr(ErrArityMismatch, name, "%d arguments for arity %d", len(args), e.Arity)
	}

	switch e.Kind {
	case KindImplicit:
		if n.implicits == nil {
			kerr(ErrImplicitResolution, name, "no implicit resolver installed")
		}
		t, err := n.implicits(ctx, name, args)
		if err != nil {
			kerr(ErrImplicitResolution, name, "%s", err)
		}
		return t, true

	case KindDefinition:
		if e.Opaque {
			return Ref(name, args...), false
		}
		if e.Body == nil {
			kerr(ErrMissingBody, name, "transparent definition has no parsed body")
		}
		return instantiate(e.Params, *e.Body, args), true

	case KindTheorem:
		if e.Proof == nil {
			kerr(ErrMissingProof, name, "theorem has no checked proof")
		}
		if n.unfoldTheorems {
			return instantiate(e.Params, *e.Proof, args), true
		}
		// Proofs do not unfold under the default policy: unfolding them
		// explodes term size for no definitional gain.
		return Ref(name, args...), false

	case KindAxiom:
		return Ref(name, args...), false

	default:
		kerr(ErrUnsupportedTermShape, name, "definition entry with kind %d", e.Kind)
		return Term{}, false
	}
}

// instantiate substitutes args for the declared parameters of a stored
// body: it rebuilds the curried abstraction over the parameter list and
// applies it to args in order. The beta-redexes it creates are consumed
// by the evaluation that follows; partial application simply leaves the
// remaining lambdas in place.
func instantiate(params []Param, body Term, args []Term) Term {
	for i := len(params) - 1; i >= 0; i-- {
		body = Lam(params[i].Name, params[i].Type, body)
	}
	return Apps(body, args...)
}
