// reader.go
//
// A small reader for the development notation used by the REPL and the
// tests. This is deliberately not a surface language: no elaboration, no
// notation system, just enough concrete syntax to write kernel terms and
// session declarations.
//
//	\x:*.x        Pi A:*.A        lambda / Pi (λ, Π, ✳, □ also accepted)
//	[f a b]       (f a b)         application spine, left-associated
//	t :: T        {t :: T}        ascription
//
// Declarations (REPL sessions):
//
//	def     name (x : T) ... = term
//	opaque  name (x : T) ... = term
//	axiom   name (x : T) ...
//	theorem name (x : T) ... = proof
//	implicit name arity
//
// Identifiers may start with '_', the shape of the names quotation
// mints, so printed normal forms read back in; quotation keeps its
// minted binders clear of a term's free variables on its own.
package latte

import (
	"fmt"
	"strconv"
	"unicode"
)

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokNumber
	tokLambda // \ or λ
	tokPi     // Pi or Π
	tokStar   // * or ✳
	tokBox    // # or □
	tokLParen
	tokRParen
	tokLBrack
	tokRBrack
	tokLBrace
	tokRBrace
	tokColon
	tokAscribe // ::
	tokDot
	tokEquals
)

type token struct {
	kind tokKind
	text string
	pos  int
}

type reader struct {
	src  []rune
	pos  int
	toks []token
	cur  int
}

func isIdentStart(r rune) bool { return unicode.IsLetter(r) || r == '_' }

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '\''
}

func (rd *reader) scan() error {
	for rd.pos < len(rd.src) {
		r := rd.src[rd.pos]
		start := rd.pos
		switch {
		case unicode.IsSpace(r):
			rd.pos++
			continue
		case r == '\\' || r == 'λ':
			rd.emit(tokLambda, start)
		case r == 'Π':
			rd.emit(tokPi, start)
		case r == '*' || r == '✳':
			rd.emit(tokStar, start)
		case r == '#' || r == '□':
			rd.emit(tokBox, start)
		case r == '(':
			rd.emit(tokLParen, start)
		case r == ')':
			rd.emit(tokRParen, start)
		case r == '[':
			rd.emit(tokLBrack, start)
		case r == ']':
			rd.emit(tokRBrack, start)
		case r == '{':
			rd.emit(tokLBrace, start)
		case r == '}':
			rd.emit(tokRBrace, start)
		case r == '.':
			rd.emit(tokDot, start)
		case r == '=':
			rd.emit(tokEquals, start)
		case r == ':':
			if rd.pos+1 < len(rd.src) && rd.src[rd.pos+1] == ':' {
				rd.pos++
				rd.emit(tokAscribe, start)
			} else {
				rd.emit(tokColon, start)
			}
		case unicode.IsDigit(r):
			for rd.pos < len(rd.src) && unicode.IsDigit(rd.src[rd.pos]) {
				rd.pos++
			}
			rd.toks = append(rd.toks, token{tokNumber, string(rd.src[start:rd.pos]), start})
		case isIdentStart(r):
			for rd.pos < len(rd.src) && isIdentRune(rd.src[rd.pos]) {
				rd.pos++
			}
			text := string(rd.src[start:rd.pos])
			if text == "Pi" {
				rd.toks = append(rd.toks, token{tokPi, text, start})
			} else {
				rd.toks = append(rd.toks, token{tokIdent, text, start})
			}
		default:
			return fmt.Errorf("read error at %d: unexpected character %q", start, r)
		}
	}
	rd.toks = append(rd.toks, token{tokEOF, "", rd.pos})
	return nil
}

// emit appends a single-rune token and advances.
func (rd *reader) emit(k tokKind, start int) {
	rd.pos++
	rd.toks = append(rd.toks, token{k, string(rd.src[start:rd.pos]), start})
}

func (rd *reader) peek() token  { return rd.toks[rd.cur] }
func (rd *reader) next() token  { t := rd.toks[rd.cur]; rd.cur++; return t }
func (rd *reader) at(k tokKind) bool { return rd.toks[rd.cur].kind == k }

func (rd *reader) expect(k tokKind, what string) (token, error) {
	t := rd.next()
	if t.kind != k {
		return t, fmt.Errorf("read error at %d: expected %s, got %q", t.pos, what, t.text)
	}
	return t, nil
}

// ReadTerm reads one complete term from src.
func ReadTerm(src string) (Term, error) {
	rd := &reader{src: []rune(src)}
	if err := rd.scan(); err != nil {
		return Term{}, err
	}
	t, err := rd.term()
	if err != nil {
		return Term{}, err
	}
	if !rd.at(tokEOF) {
		return Term{}, fmt.Errorf("read error at %d: trailing input %q", rd.peek().pos, rd.peek().text)
	}
	return t, nil
}

// term := binder | spine ('::' spine)?
func (rd *reader) term() (Term, error) {
	switch rd.peek().kind {
	case tokLambda, tokPi:
		return rd.binder()
	}
	t, err := rd.spine()
	if err != nil {
		return Term{}, err
	}
	if rd.at(tokAscribe) {
		rd.next()
		ty, err := rd.term()
		if err != nil {
			return Term{}, err
		}
		return Ascribe(t, ty), nil
	}
	return t, nil
}

func (rd *reader) binder() (Term, error) {
	kind := rd.next().kind
	// Accept both \x:T.b and the printer's bracketed λ[x:T].b form.
	bracketed := rd.at(tokLBrack)
	if bracketed {
		rd.next()
	}
	name, err := rd.expect(tokIdent, "bound variable")
	if err != nil {
		return Term{}, err
	}
	if _, err := rd.expect(tokColon, "':'"); err != nil {
		return Term{}, err
	}
	domain, err := rd.term()
	if err != nil {
		return Term{}, err
	}
	if bracketed {
		if _, err := rd.expect(tokRBrack, "']'"); err != nil {
			return Term{}, err
		}
	}
	if _, err := rd.expect(tokDot, "'.'"); err != nil {
		return Term{}, err
	}
	body, err := rd.term()
	if err != nil {
		return Term{}, err
	}
	if kind == tokLambda {
		return Lam(name.text, domain, body), nil
	}
	return Prod(name.text, domain, body), nil
}

// spine := atom+  (left-fold to nested App)
func (rd *reader) spine() (Term, error) {
	head, err := rd.atom()
	if err != nil {
		return Term{}, err
	}
	for rd.atomAhead() {
		arg, err := rd.atom()
		if err != nil {
			return Term{}, err
		}
		head = App(head, arg)
	}
	return head, nil
}

func (rd *reader) atomAhead() bool {
	switch rd.peek().kind {
	case tokIdent, tokStar, tokBox, tokLParen, tokLBrack, tokLBrace, tokLambda, tokPi:
		return true
	}
	return false
}

func (rd *reader) atom() (Term, error) {
	t := rd.next()
	switch t.kind {
	case tokIdent:
		return Var(t.text), nil
	case tokStar:
		return Star, nil
	case tokBox:
		return Box, nil
	case tokLambda, tokPi:
		rd.cur--
		return rd.binder()
	case tokLParen:
		inner, err := rd.groupBody(tokRParen, "')'")
		return inner, err
	case tokLBrack:
		inner, err := rd.groupBody(tokRBrack, "']'")
		return inner, err
	case tokLBrace:
		body, err := rd.term()
		if err != nil {
			return Term{}, err
		}
		// Braces read back the printer's ascription form; a bare group
		// inside braces is accepted too.
		if _, err := rd.expect(tokRBrace, "'}'"); err != nil {
			return Term{}, err
		}
		return body, nil
	default:
		return Term{}, fmt.Errorf("read error at %d: unexpected %q", t.pos, t.text)
	}
}

// groupBody reads one or more terms up to the closer; two or more fold
// into an application spine.
func (rd *reader) groupBody(close tokKind, what string) (Term, error) {
	head, err := rd.term()
	if err != nil {
		return Term{}, err
	}
	for !rd.at(close) && !rd.at(tokEOF) {
		arg, err := rd.term()
		if err != nil {
			return Term{}, err
		}
		head = App(head, arg)
	}
	if _, err := rd.expect(close, what); err != nil {
		return Term{}, err
	}
	return head, nil
}

// --- declarations ---

// DeclKind enumerates session declaration forms.
type DeclKind int

const (
	DeclDef DeclKind = iota
	DeclOpaque
	DeclAxiom
	DeclTheorem
	DeclImplicit
)

// Decl is one parsed session declaration.
type Decl struct {
	Kind   DeclKind
	Name   string
	Params []Param
	Body   *Term // def/opaque body, theorem proof
	Arity  int   // implicits only
}

var declKeywords = map[string]DeclKind{
	"def":      DeclDef,
	"opaque":   DeclOpaque,
	"axiom":    DeclAxiom,
	"theorem":  DeclTheorem,
	"implicit": DeclImplicit,
}

// IsDecl reports whether src starts with a declaration keyword.
func IsDecl(src string) bool {
	rd := &reader{src: []rune(src)}
	if err := rd.scan(); err != nil {
		return false
	}
	t := rd.peek()
	_, ok := declKeywords[t.text]
	return t.kind == tokIdent && ok
}

// ReadDecl reads one declaration from src.
func ReadDecl(src string) (*Decl, error) {
	rd := &reader{src: []rune(src)}
	if err := rd.scan(); err != nil {
		return nil, err
	}
	kw, err := rd.expect(tokIdent, "declaration keyword")
	if err != nil {
		return nil, err
	}
	kind, ok := declKeywords[kw.text]
	if !ok {
		return nil, fmt.Errorf("read error at %d: unknown declaration %q", kw.pos, kw.text)
	}
	name, err := rd.expect(tokIdent, "declared name")
	if err != nil {
		return nil, err
	}
	d := &Decl{Kind: kind, Name: name.text}

	if kind == DeclImplicit {
		num, err := rd.expect(tokNumber, "arity")
		if err != nil {
			return nil, err
		}
		d.Arity, _ = strconv.Atoi(num.text)
		_, err = rd.expect(tokEOF, "end of declaration")
		return d, err
	}

	for rd.at(tokLParen) {
		rd.next()
		pname, err := rd.expect(tokIdent, "parameter name")
		if err != nil {
			return nil, err
		}
		if _, err := rd.expect(tokColon, "':'"); err != nil {
			return nil, err
		}
		ptype, err := rd.term()
		if err != nil {
			return nil, err
		}
		if _, err := rd.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		d.Params = append(d.Params, Param{Name: pname.text, Type: ptype})
	}

	if kind == DeclAxiom {
		_, err = rd.expect(tokEOF, "end of declaration")
		return d, err
	}

	if _, err := rd.expect(tokEquals, "'='"); err != nil {
		return nil, err
	}
	body, err := rd.term()
	if err != nil {
		return nil, err
	}
	if !rd.at(tokEOF) {
		return nil, fmt.Errorf("read error at %d: trailing input %q", rd.peek().pos, rd.peek().text)
	}
	d.Body = &body
	return d, nil
}

// AddTo installs the declaration into env. Parameter types and bodies are
// resolved against env first, so earlier globals are visible; the
// declaration's own parameters shadow globals of the same name.
func (d *Decl) AddTo(env *DefEnv) error {
	params := make([]Param, len(d.Params))
	var bound []string
	for i, p := range d.Params {
		params[i] = Param{Name: p.Name, Type: env.resolve(p.Type, bound)}
		bound = append(bound, p.Name)
	}
	var body *Term
	if d.Body != nil {
		b := env.resolve(*d.Body, bound)
		body = &b
	}
	switch d.Kind {
	case DeclDef:
		if body == nil {
			return fmt.Errorf("definition %q has no body", d.Name)
		}
		return env.AddDefinition(d.Name, params, *body)
	case DeclOpaque:
		return env.AddOpaqueDefinition(d.Name, params, body)
	case DeclAxiom:
		return env.AddAxiom(d.Name, params)
	case DeclTheorem:
		return env.AddTheorem(d.Name, params, body)
	case DeclImplicit:
		return env.AddImplicit(d.Name, d.Arity)
	default:
		return fmt.Errorf("unknown declaration kind %d", d.Kind)
	}
}
