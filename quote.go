// quote.go
//
// Quotation: semantic domain → normal-form syntax. This is where every
// still-deferred closure body is actually forced, with a freshly minted
// neutral variable standing in for the bound name.
//
// Freshness is carried by an explicit integer level threaded through one
// top-level quotation. The level only ever increases and is never reused,
// so a binder minted at level k can never collide with one minted inside
// its body (level k+1 and up) nor with a sibling quoted after it. Minted
// names are "_<level>", primed with ' while the candidate collides with a
// free variable of the term being normalized, so quotation cannot capture
// a free name no matter how the input term was built.
package latte

import (
	"strconv"

	"github.com/samber/lo"
)

// quoter is the per-call state of one quotation: the engine plus the free
// names of the input, which minted binders must stay clear of.
type quoter struct {
	n     *Norm
	avoid map[string]struct{}
}

func newQuoter(n *Norm, root Term) *quoter {
	avoid := map[string]struct{}{}
	for _, name := range FreeVars(root) {
		avoid[name] = struct{}{}
	}
	return &quoter{n: n, avoid: avoid}
}

// fresh mints the bound-variable name for a quotation level.
func (q *quoter) fresh(level int) string {
	name := "_" + strconv.Itoa(level)
	for {
		if _, clash := q.avoid[name]; !clash {
			return name
		}
		name += "'"
	}
}

func (q *quoter) quote(level int, v Value) Term {
	switch v.Tag {
	case VNeuVar:
		return Var(v.Data.(string))

	case VSort:
		return Sort(v.Data.(SortKind))

	case VClosure:
		c := v.Data.(*Closure)
		name := q.fresh(level)
		domain := q.quote(level, c.Domain)
		body := q.quote(level+1, c.Force(neuVar(name)))
		if c.Kind == Lambda {
			return Lam(name, domain, body)
		}
		return Prod(name, domain, body)

	case VNeuApp:
		a := v.Data.(*NeutralApp)
		return App(q.quote(level, a.Fn), q.quote(level, a.Arg))

	case VNeuRef:
		r := v.Data.(*NeutralRef)
		return Ref(r.Name, lo.Map(r.Args, func(arg Value, _ int) Term {
			return q.quote(level, arg)
		})...)

	case VNeuAscribe:
		a := v.Data.(*NeutralAscribe)
		return Ascribe(q.quote(level, a.Body), q.quote(level, a.Type))

	default:
		kerr(ErrUnsupportedTermShape, "", "quoting value with tag %d", v.Tag)
		return Term{}
	}
}
