// printer.go
//
// Human-readable rendering of terms. This is the form the REPL prints and
// the one test failures quote, so it favors compactness:
//
//	✳  □                 sorts
//	λ[x:T].b  Π[x:T].b   binders
//	[f a b]              application spine (left-associated)
//	(name a b)           global reference (bare name when unapplied)
//	{t :: T}             ascription
package latte

import "strings"

// String renders t in the compact notation above.
func (t Term) String() string {
	var b strings.Builder
	writeTerm(&b, t)
	return b.String()
}

func writeTerm(b *strings.Builder, t Term) {
	switch t.Tag {
	case TmVar:
		b.WriteString(t.Data.(string))

	case TmSort:
		if t.Data.(SortKind) == KindType {
			b.WriteString("✳")
		} else {
			b.WriteString("□")
		}

	case TmBinder:
		bd := t.Data.(*Binder)
		if bd.Kind == Lambda {
			b.WriteString("λ[")
		} else {
			b.WriteString("Π[")
		}
		b.WriteString(bd.Name)
		b.WriteString(":")
		writeTerm(b, bd.Domain)
		b.WriteString("].")
		writeTerm(b, bd.Body)

	case TmApp:
		// Flatten the spine: [[f a] b] prints as [f a b].
		spine := []Term{t}
		for spine[0].Tag == TmApp {
			a := spine[0].Data.(*Apply)
			spine = append([]Term{a.Fn, a.Arg}, spine[1:]...)
		}
		b.WriteString("[")
		for i, s := range spine {
			if i > 0 {
				b.WriteString(" ")
			}
			writeTerm(b, s)
		}
		b.WriteString("]")

	case TmRef:
		r := t.Data.(*RefTerm)
		if len(r.Args) == 0 {
			b.WriteString(r.Name)
			return
		}
		b.WriteString("(")
		b.WriteString(r.Name)
		for _, arg := range r.Args {
			b.WriteString(" ")
			writeTerm(b, arg)
		}
		b.WriteString(")")

	case TmAscribe:
		a := t.Data.(*Ascription)
		b.WriteString("{")
		writeTerm(b, a.Body)
		b.WriteString(" :: ")
		writeTerm(b, a.Type)
		b.WriteString("}")

	default:
		b.WriteString("<bad term>")
	}
}
