package latte

import (
	"strings"
	"testing"
)

func mustRead(t *testing.T, src string) Term {
	t.Helper()
	term, err := ReadTerm(src)
	if err != nil {
		t.Fatalf("ReadTerm(%q) error: %v", src, err)
	}
	return term
}

func Test_Read_Basics(t *testing.T) {
	tests := []struct {
		src  string
		want Term
	}{
		{"a", Var("a")},
		{"*", Star},
		{"#", Box},
		{"✳", Star},
		{"□", Box},
		{`\x:*.x`, Lam("x", Star, Var("x"))},
		{`λx:✳.x`, Lam("x", Star, Var("x"))},
		{`Pi A:*.A`, Prod("A", Star, Var("A"))},
		{`ΠA:✳.A`, Prod("A", Star, Var("A"))},
		{"[f a]", App(Var("f"), Var("a"))},
		{"[f a b]", Apps(Var("f"), Var("a"), Var("b"))},
		{"(f a b)", Apps(Var("f"), Var("a"), Var("b"))},
		{"z :: T", Ascribe(Var("z"), Var("T"))},
		{"{z :: T}", Ascribe(Var("z"), Var("T"))},
		{"_1", Var("_1")},
		{`\_0:*._0`, Lam("_0", Star, Var("_0"))},
		{`\x:*. x y`, Lam("x", Star, App(Var("x"), Var("y")))},
		{`Pi A:*. Pi x:A. A`, Prod("A", Star, Prod("x", Var("A"), Var("A")))},
		{`[(\x:*.x) b]`, App(Lam("x", Star, Var("x")), Var("b"))},
	}
	for _, tc := range tests {
		got := mustRead(t, tc.src)
		if !AlphaEq(got, tc.want) || got.String() != tc.want.String() {
			t.Fatalf("ReadTerm(%q) = %s, want %s", tc.src, got, tc.want)
		}
	}
}

func Test_Read_Errors(t *testing.T) {
	bad := []string{
		"",
		"(",
		"[f",
		`\x*.x`,
		`\x:*x`,
		"a )",
		"a ? b",
	}
	for _, src := range bad {
		if _, err := ReadTerm(src); err == nil {
			t.Fatalf("ReadTerm(%q) should fail", src)
		}
	}
}

func Test_Read_PrintRoundTrip(t *testing.T) {
	terms := []Term{
		Var("a"),
		Star,
		Box,
		Lam("x", Star, Var("x")),
		Prod("A", Star, Prod("x", Var("A"), Var("A"))),
		Apps(Var("f"), Var("a"), Var("b")),
		Ascribe(Var("z"), Var("T")),
		Lam("x", Star, Ascribe(Var("x"), Star)),
		App(Lam("x", Star, Var("x")), Var("b")),
		// Quoted output, minted and primed binder forms included.
		Lam("_0", Star, Var("_0")),
		Lam("_0'", Star, App(Var("f"), Var("_0'"))),
	}
	for _, term := range terms {
		back := mustRead(t, term.String())
		if !AlphaEq(back, term) {
			t.Fatalf("round trip lost %s: got %s", term, back)
		}
	}
}

func Test_Read_NormalFormsReadBack(t *testing.T) {
	n := New(nil)
	// Output with minted binders prints in notation the reader accepts,
	// so a printed normal form can be fed back through the session.
	term := mustRead(t, `\x:*. \y:*. x`)
	nf := mustNormalize(t, n, term)
	back := mustRead(t, nf.String())
	wantAlpha(t, back, nf)
	again := mustNormalize(t, n, back)
	wantAlpha(t, again, nf)
}

func Test_Printer_QuotedRefForm(t *testing.T) {
	term := Ref("id", Star, Var("v"))
	if got := term.String(); got != "(id ✳ v)" {
		t.Fatalf("Ref rendering = %q", got)
	}
	if got := Ref("nat").String(); got != "nat" {
		t.Fatalf("bare Ref rendering = %q", got)
	}
}

func Test_Resolve_GlobalsAndShadowing(t *testing.T) {
	defs := NewDefEnv()
	if err := defs.AddDefinition("id",
		[]Param{{Name: "A", Type: Star}, {Name: "a", Type: Var("A")}},
		Var("a")); err != nil {
		t.Fatal(err)
	}
	if err := defs.AddAxiom("pt", nil); err != nil {
		t.Fatal(err)
	}

	// Bare global becomes a reference; spine args fold in up to arity.
	got := defs.Resolve(mustRead(t, "(id T v)"))
	wantAlpha(t, got, Ref("id", Var("T"), Var("v")))

	// Surplus arguments stay as an outer application.
	got = defs.Resolve(mustRead(t, "(id T v w)"))
	wantAlpha(t, got, App(Ref("id", Var("T"), Var("v")), Var("w")))

	// A binder shadows the global for its body.
	got = defs.Resolve(mustRead(t, `\pt:*.pt`))
	wantAlpha(t, got, Lam("pt", Star, Var("pt")))

	// Globals resolve inside domains, bodies and ascriptions.
	got = defs.Resolve(mustRead(t, `{\x:pt.x :: pt}`))
	wantAlpha(t, got, Ascribe(Lam("x", Ref("pt"), Var("x")), Ref("pt")))
}

func Test_ReadDecl_Forms(t *testing.T) {
	tests := []struct {
		src    string
		kind   DeclKind
		name   string
		params int
		body   bool
	}{
		{"def id (A : *) (a : A) = a", DeclDef, "id", 2, true},
		{"opaque hid (A : *) = A", DeclOpaque, "hid", 1, true},
		{"axiom pt (A : *)", DeclAxiom, "pt", 1, false},
		{"theorem triv (A : *) (a : A) = a", DeclTheorem, "triv", 2, true},
		{"implicit infer 2", DeclImplicit, "infer", 0, false},
	}
	for _, tc := range tests {
		d, err := ReadDecl(tc.src)
		if err != nil {
			t.Fatalf("ReadDecl(%q) error: %v", tc.src, err)
		}
		if d.Kind != tc.kind || d.Name != tc.name || len(d.Params) != tc.params || (d.Body != nil) != tc.body {
			t.Fatalf("ReadDecl(%q) = %+v", tc.src, d)
		}
	}
	if !IsDecl("def f = x") || IsDecl("[f a]") {
		t.Fatalf("IsDecl misclassifies")
	}
}

func Test_ReadDecl_SessionEndToEnd(t *testing.T) {
	defs := NewDefEnv()
	lines := []string{
		"axiom nat",
		"axiom zero",
		"def id (A : *) (a : A) = a",
		"def apply (A : *) (f : Pi x:A. A) (a : A) = [f a]",
	}
	for _, line := range lines {
		d, err := ReadDecl(line)
		if err != nil {
			t.Fatalf("ReadDecl(%q): %v", line, err)
		}
		if err := d.AddTo(defs); err != nil {
			t.Fatalf("AddTo(%q): %v", line, err)
		}
	}
	n := New(defs)
	term := defs.Resolve(mustRead(t, "(apply nat (id nat) zero)"))
	nf := mustNormalize(t, n, term)
	wantAlpha(t, nf, Ref("zero"))

	rendered := nf.String()
	if strings.Contains(rendered, "_") {
		t.Fatalf("fully reduced form should not carry minted names: %s", rendered)
	}
}
