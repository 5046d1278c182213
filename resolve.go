// resolve.go
//
// Name resolution for read terms: the reader produces only variables, so
// occurrences of globals arrive as Var nodes (possibly at the head of an
// application spine). Resolve rewrites those into Ref nodes against a
// definition store, respecting binder shadowing, and folds spine
// arguments into the reference up to its declared arity — any surplus
// stays as an outer application, which is exactly the shape
// delta-reduction expects for over-applied globals.
package latte

import "golang.org/x/exp/slices"

// Resolve rewrites global-name occurrences in t into references against d.
// Binder-bound names shadow globals. t is not mutated.
func (d *DefEnv) Resolve(t Term) Term {
	return d.resolve(t, nil)
}

func (d *DefEnv) resolve(t Term, bound []string) Term {
	switch t.Tag {
	case TmVar:
		name := t.Data.(string)
		if !slices.Contains(bound, name) {
			if _, ok := d.Fetch(name); ok {
				return Ref(name)
			}
		}
		return t

	case TmSort:
		return t

	case TmBinder:
		b := t.Data.(*Binder)
		domain := d.resolve(b.Domain, bound)
		body := d.resolve(b.Body, append(bound, b.Name))
		return Term{Tag: TmBinder, Data: &Binder{Kind: b.Kind, Name: b.Name, Domain: domain, Body: body}}

	case TmApp:
		// Collect the spine before resolving so a global head can absorb
		// its arguments.
		var args []Term
		head := t
		for head.Tag == TmApp {
			a := head.Data.(*Apply)
			args = append([]Term{a.Arg}, args...)
			head = a.Fn
		}
		head = d.resolve(head, bound)
		for i, a := range args {
			args[i] = d.resolve(a, bound)
		}
		if head.Tag == TmRef {
			r := head.Data.(*RefTerm)
			if len(r.Args) == 0 {
				if e, ok := d.Fetch(r.Name); ok {
					k := min(e.Arity, len(args))
					return Apps(Ref(r.Name, args[:k]...), args[k:]...)
				}
			}
		}
		return Apps(head, args...)

	case TmRef:
		r := t.Data.(*RefTerm)
		out := make([]Term, len(r.Args))
		for i, a := range r.Args {
			out[i] = d.resolve(a, bound)
		}
		return Ref(r.Name, out...)

	case TmAscribe:
		a := t.Data.(*Ascription)
		return Ascribe(d.resolve(a.Body, bound), d.resolve(a.Type, bound))

	default:
		return t
	}
}
