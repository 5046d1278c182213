package latte

// The reference reducer used to cross-check normalization: a naive
// explicit-substitution machine performing leftmost-outermost beta/delta
// steps until fixpoint, with rename-on-capture. Completely different
// strategy from the evaluation/quotation engine; any disagreement up to
// alpha-equivalence is a kernel bug.

import (
	"testing"

	"golang.org/x/exp/slices"
)

// substOracle replaces free occurrences of name in t by repl, renaming
// binders that would capture a free variable of repl.
func substOracle(t Term, name string, repl Term) Term {
	switch t.Tag {
	case TmVar:
		if t.Data.(string) == name {
			return repl
		}
		return t
	case TmSort:
		return t
	case TmBinder:
		b := t.Data.(*Binder)
		domain := substOracle(b.Domain, name, repl)
		if b.Name == name {
			// Shadowed: the body's occurrences belong to this binder.
			return Term{Tag: TmBinder, Data: &Binder{Kind: b.Kind, Name: b.Name, Domain: domain, Body: b.Body}}
		}
		boundName, body := b.Name, b.Body
		if slices.Contains(FreeVars(repl), boundName) {
			fresh := pickVariant(boundName, append(FreeVars(repl), FreeVars(body)...))
			body = substOracle(body, boundName, Var(fresh))
			boundName = fresh
		}
		return Term{Tag: TmBinder, Data: &Binder{
			Kind: b.Kind, Name: boundName, Domain: domain,
			Body: substOracle(body, name, repl),
		}}
	case TmApp:
		a := t.Data.(*Apply)
		return App(substOracle(a.Fn, name, repl), substOracle(a.Arg, name, repl))
	case TmRef:
		r := t.Data.(*RefTerm)
		args := make([]Term, len(r.Args))
		for i, arg := range r.Args {
			args[i] = substOracle(arg, name, repl)
		}
		return Ref(r.Name, args...)
	case TmAscribe:
		a := t.Data.(*Ascription)
		return Ascribe(substOracle(a.Body, name, repl), substOracle(a.Type, name, repl))
	default:
		return t
	}
}

func pickVariant(name string, avoid []string) string {
	for {
		name += "'"
		if !slices.Contains(avoid, name) {
			return name
		}
	}
}

// oracleStep performs one leftmost-outermost reduction step.
func oracleStep(defs *DefEnv, unfoldTheorems bool, t Term) (Term, bool) {
	switch t.Tag {
	case TmVar, TmSort:
		return t, false
	case TmBinder:
		b := t.Data.(*Binder)
		if d, ok := oracleStep(defs, unfoldTheorems, b.Domain); ok {
			return Term{Tag: TmBinder, Data: &Binder{Kind: b.Kind, Name: b.Name, Domain: d, Body: b.Body}}, true
		}
		if body, ok := oracleStep(defs, unfoldTheorems, b.Body); ok {
			return Term{Tag: TmBinder, Data: &Binder{Kind: b.Kind, Name: b.Name, Domain: b.Domain, Body: body}}, true
		}
		return t, false
	case TmApp:
		a := t.Data.(*Apply)
		if a.Fn.IsLambda() {
			fb := a.Fn.Data.(*Binder)
			return substOracle(fb.Body, fb.Name, a.Arg), true
		}
		if fn, ok := oracleStep(defs, unfoldTheorems, a.Fn); ok {
			return App(fn, a.Arg), true
		}
		if arg, ok := oracleStep(defs, unfoldTheorems, a.Arg); ok {
			return App(a.Fn, arg), true
		}
		return t, false
	case TmRef:
		r := t.Data.(*RefTerm)
		if e, ok := defs.Fetch(r.Name); ok {
			switch {
			case e.Kind == KindDefinition && !e.Opaque && e.Body != nil:
				return instantiate(e.Params, *e.Body, r.Args), true
			case e.Kind == KindTheorem && unfoldTheorems && e.Proof != nil:
				return instantiate(e.Params, *e.Proof, r.Args), true
			}
		}
		for i, arg := range r.Args {
			if stepped, ok := oracleStep(defs, unfoldTheorems, arg); ok {
				args := append([]Term(nil), r.Args...)
				args[i] = stepped
				return Ref(r.Name, args...), true
			}
		}
		return t, false
	case TmAscribe:
		a := t.Data.(*Ascription)
		if body, ok := oracleStep(defs, unfoldTheorems, a.Body); ok {
			return Ascribe(body, a.Type), true
		}
		if ty, ok := oracleStep(defs, unfoldTheorems, a.Type); ok {
			return Ascribe(a.Body, ty), true
		}
		return t, false
	default:
		return t, false
	}
}

func oracleNormalize(t *testing.T, defs *DefEnv, unfoldTheorems bool, term Term) Term {
	t.Helper()
	for i := 0; i < 10000; i++ {
		next, ok := oracleStep(defs, unfoldTheorems, term)
		if !ok {
			return term
		}
		term = next
	}
	t.Fatalf("oracle did not terminate on %s", term)
	return Term{}
}

func Test_Oracle_SanityOnKnownForms(t *testing.T) {
	defs := NewDefEnv()
	got := oracleNormalize(t, defs, false, App(Lam("a", Star, Var("a")), Var("b")))
	wantAlpha(t, got, Var("b"))
	// Capture case: substituting y ↦ x under λ[x] must rename.
	got = oracleNormalize(t, defs, false, App(Lam("y", Star, Lam("x", Star, Var("y"))), Var("x")))
	wantAlpha(t, got, Lam("w", Star, Var("x")))
}

func Test_CrossOracle_PureTerms(t *testing.T) {
	defs := NewDefEnv()
	n := New(defs)
	for _, term := range propTerms() {
		nbe := mustNormalize(t, n, term)
		ref := oracleNormalize(t, defs, false, term)
		if !AlphaEq(nbe, ref) {
			t.Fatalf("engines disagree on %s:\n  nbe:    %s\n  oracle: %s", term, nbe, ref)
		}
	}
}

func Test_CrossOracle_WithDefinitions(t *testing.T) {
	defs := demoDefs(t)
	terms := []Term{
		Ref("id", Star, Var("v")),
		Ref("id", Var("T")),
		App(Ref("kfun", Var("T"), Var("v")), Var("w")),
		Ref("hid", Var("T"), App(Lam("x", Star, Var("x")), Var("v"))),
		Ref("point", Var("T")),
		Ref("triv", Var("T"), Var("v")),
		Lam("x", Star, Ref("id", Star, Var("x"))),
		Ascribe(Var("z"), Ref("id", Box, Star)),
	}
	for _, unfold := range []bool{false, true} {
		n := New(defs, WithUnfoldTheorems(unfold))
		for _, term := range terms {
			nbe := mustNormalize(t, n, term)
			ref := oracleNormalize(t, defs, unfold, term)
			if !AlphaEq(nbe, ref) {
				t.Fatalf("engines disagree (unfold=%v) on %s:\n  nbe:    %s\n  oracle: %s",
					unfold, term, nbe, ref)
			}
		}
	}
}
