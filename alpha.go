// alpha.go
//
// Alpha-equivalence: structural equality of terms up to consistent
// renaming of bound variables. Bound occurrences are compared through the
// depth at which their binder was entered; free occurrences compare by
// name.
package latte

// abEnv maps a bound name to the binder depth that introduced it.
// Immutable cons list, same shape as Scope.
type abEnv struct {
	name  string
	depth int
	next  *abEnv
}

func (e *abEnv) bind(name string, depth int) *abEnv {
	return &abEnv{name: name, depth: depth, next: e}
}

func (e *abEnv) lookup(name string) (int, bool) {
	for x := e; x != nil; x = x.next {
		if x.name == name {
			return x.depth, true
		}
	}
	return 0, false
}

// AlphaEq reports whether a and b are equal up to renaming of bound
// variables.
func AlphaEq(a, b Term) bool {
	return alphaEq(a, b, nil, nil, 0)
}

func alphaEq(a, b Term, ea, eb *abEnv, depth int) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TmVar:
		da, boundA := ea.lookup(a.Data.(string))
		db, boundB := eb.lookup(b.Data.(string))
		if boundA != boundB {
			return false
		}
		if boundA {
			return da == db
		}
		return a.Data.(string) == b.Data.(string)

	case TmSort:
		return a.Data.(SortKind) == b.Data.(SortKind)

	case TmBinder:
		ba, bb := a.Data.(*Binder), b.Data.(*Binder)
		if ba.Kind != bb.Kind {
			return false
		}
		if !alphaEq(ba.Domain, bb.Domain, ea, eb, depth) {
			return false
		}
		return alphaEq(ba.Body, bb.Body, ea.bind(ba.Name, depth), eb.bind(bb.Name, depth), depth+1)

	case TmApp:
		aa, ab := a.Data.(*Apply), b.Data.(*Apply)
		return alphaEq(aa.Fn, ab.Fn, ea, eb, depth) && alphaEq(aa.Arg, ab.Arg, ea, eb, depth)

	case TmRef:
		ra, rb := a.Data.(*RefTerm), b.Data.(*RefTerm)
		if ra.Name != rb.Name || len(ra.Args) != len(rb.Args) {
			return false
		}
		for i := range ra.Args {
			if !alphaEq(ra.Args[i], rb.Args[i], ea, eb, depth) {
				return false
			}
		}
		return true

	case TmAscribe:
		ca, cb := a.Data.(*Ascription), b.Data.(*Ascription)
		return alphaEq(ca.Body, cb.Body, ea, eb, depth) && alphaEq(ca.Type, cb.Type, ea, eb, depth)

	default:
		return false
	}
}
