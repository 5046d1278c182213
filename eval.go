// eval.go
//
// Evaluation: syntax → semantic domain. Beta-redexes are resolved here,
// eagerly, by forcing the lambda closure with the evaluated argument;
// binder bodies are never evaluated at their binding site. That deferral
// is the whole trick of the method: the body runs only when a consumer
// (a later application, or quotation) actually needs it, which is what
// lets this module carry no substitution machinery at all.
//
// Totality: eval is total over well-formed terms whose free variables are
// either bound in sc or genuinely free. Terms that diverge under the
// theory's own reduction diverge here too; termination is the type
// checker's contract, not ours.
package latte

import "github.com/samber/lo"

func (n *Norm) eval(ctx *Context, sc *Scope, t Term) Value {
	switch t.Tag {
	case TmVar:
		name := t.Data.(string)
		if v, ok := sc.Lookup(name); ok {
			return v
		}
		// Free, or bound above a binder we have not forced yet; the two
		// cases are indistinguishable here and both stay neutral.
		return neuVar(name)

	case TmSort:
		return sortVal(t.Data.(SortKind))

	case TmBinder:
		b := t.Data.(*Binder)
		return closVal(&Closure{
			Kind:    b.Kind,
			Name:    b.Name,
			Domain:  n.eval(ctx, sc, b.Domain),
			domainT: b.Domain,
			body:    b.Body,
			scope:   sc,
			ctx:     ctx,
			n:       n,
		})

	case TmApp:
		a := t.Data.(*Apply)
		fv := n.eval(ctx, sc, a.Fn)
		av := n.eval(ctx, sc, a.Arg)
		if fv.Tag == VClosure {
			if c := fv.Data.(*Closure); c.Kind == Lambda {
				return c.Force(av)
			}
		}
		return neuApp(fv, av)

	case TmRef:
		r := t.Data.(*RefTerm)
		repl, unfold := n.delta(ctx, r.Name, r.Args)
		if unfold {
			// The replacement is already closed over the supplied
			// arguments; parameter substitution happened inside delta.
			return n.eval(ctx, sc, repl)
		}
		return neuRef(r.Name, lo.Map(r.Args, func(arg Term, _ int) Value {
			return n.eval(ctx, sc, arg)
		}))

	case TmAscribe:
		a := t.Data.(*Ascription)
		// Transparent to reduction, but preserved: consumers get to see
		// both the term's and the type's normal form.
		return neuAscribe(n.eval(ctx, sc, a.Body), n.eval(ctx, sc, a.Type))

	default:
		kerr(ErrUnsupportedTermShape, "", "evaluating term with tag %d", t.Tag)
		return Value{}
	}
}
