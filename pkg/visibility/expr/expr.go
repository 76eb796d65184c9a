package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formflow/pkg/visibility"
)

// Compile parses a visibility rule into a reusable Condition.
//
// The language covers what form definitions need:
//   - comparisons against literals: `order-type == "delivery"`, `agreed != true`
//   - truthiness of a bare key: `same-as-delivery`
//   - negation, grouping, and composition: `!(a || b) && c == 1`
//
// Values are read from visibility.Context.Values by exact key; field keys may
// contain hyphens. An empty rule compiles to an always-visible condition.
// Compile is the only place a malformed rule can surface; evaluating a
// compiled condition never fails.
func Compile(rule string) (visibility.Condition, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return visibility.Always, nil
	}

	lx := &lexer{src: trimmed}
	toks, err := lx.run()
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, fmt.Errorf("expr: trailing input at %q", p.toks[p.pos].text)
	}
	return node, nil
}

// MustCompile is Compile for rules known valid at build time.
func MustCompile(rule string) visibility.Condition {
	cond, err := Compile(rule)
	if err != nil {
		panic(err)
	}
	return cond
}

type tokKind int

const (
	tokKey tokKind = iota
	tokString
	tokNumber
	tokBool
	tokEq
	tokNeq
	tokAnd
	tokOr
	tokNot
	tokOpen
	tokClose
)

type tok struct {
	kind tokKind
	text string
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) run() ([]tok, error) {
	var out []tok
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		switch {
		case ch == ' ' || ch == '\t':
			l.pos++
		case ch == '(':
			out = append(out, tok{tokOpen, "("})
			l.pos++
		case ch == ')':
			out = append(out, tok{tokClose, ")"})
			l.pos++
		case ch == '=':
			if !l.lookahead('=') {
				return nil, errors.New("expr: single '=' is not a comparison; use '=='")
			}
			out = append(out, tok{tokEq, "=="})
			l.pos += 2
		case ch == '!':
			if l.lookahead('=') {
				out = append(out, tok{tokNeq, "!="})
				l.pos += 2
			} else {
				out = append(out, tok{tokNot, "!"})
				l.pos++
			}
		case ch == '&':
			if !l.lookahead('&') {
				return nil, errors.New("expr: single '&'; use '&&'")
			}
			out = append(out, tok{tokAnd, "&&"})
			l.pos += 2
		case ch == '|':
			if !l.lookahead('|') {
				return nil, errors.New("expr: single '|'; use '||'")
			}
			out = append(out, tok{tokOr, "||"})
			l.pos += 2
		case ch == '"' || ch == '\'':
			lit, err := l.scanString(ch)
			if err != nil {
				return nil, err
			}
			out = append(out, tok{tokString, lit})
		default:
			word := l.scanWord()
			if word == "" {
				return nil, fmt.Errorf("expr: unexpected character %q", ch)
			}
			switch word {
			case "true", "false":
				out = append(out, tok{tokBool, word})
			default:
				if isNumeric(word) {
					out = append(out, tok{tokNumber, word})
				} else {
					out = append(out, tok{tokKey, word})
				}
			}
		}
	}
	return out, nil
}

func (l *lexer) lookahead(ch byte) bool {
	return l.pos+1 < len(l.src) && l.src[l.pos+1] == ch
}

func (l *lexer) scanString(quote byte) (string, error) {
	l.pos++ // opening quote
	var b strings.Builder
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if ch == '\\' && l.pos+1 < len(l.src) {
			b.WriteByte(l.src[l.pos+1])
			l.pos += 2
			continue
		}
		if ch == quote {
			l.pos++
			return b.String(), nil
		}
		b.WriteByte(ch)
		l.pos++
	}
	return "", errors.New("expr: unterminated string literal")
}

func (l *lexer) scanWord() string {
	start := l.pos
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if ch == ' ' || ch == '\t' || ch == '(' || ch == ')' || ch == '=' || ch == '!' || ch == '&' || ch == '|' || ch == '"' || ch == '\'' {
			break
		}
		l.pos++
	}
	return l.src[start:l.pos]
}

func isNumeric(word string) bool {
	_, err := strconv.ParseFloat(word, 64)
	return err == nil
}

type parser struct {
	toks []tok
	pos  int
}

func (p *parser) done() bool { return p.pos >= len(p.toks) }

func (p *parser) accept(kind tokKind) bool {
	if p.done() || p.toks[p.pos].kind != kind {
		return false
	}
	p.pos++
	return true
}

func (p *parser) parseOr() (visibility.Condition, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.accept(tokOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orCond{left, right}
	}
	return left, nil
}

func (p *parser) parseAnd() (visibility.Condition, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.accept(tokAnd) {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andCond{left, right}
	}
	return left, nil
}

func (p *parser) parseUnary() (visibility.Condition, error) {
	if p.accept(tokNot) {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notCond{inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (visibility.Condition, error) {
	if p.accept(tokOpen) {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.accept(tokClose) {
			return nil, errors.New("expr: missing closing ')'")
		}
		return inner, nil
	}

	if p.done() {
		return nil, errors.New("expr: unexpected end of rule")
	}
	key := p.toks[p.pos]
	if key.kind != tokKey {
		return nil, fmt.Errorf("expr: expected a field key, got %q", key.text)
	}
	p.pos++

	negate := false
	switch {
	case p.accept(tokEq):
	case p.accept(tokNeq):
		negate = true
	default:
		return truthyCond{key: key.text}, nil
	}

	if p.done() {
		return nil, errors.New("expr: comparison is missing its literal")
	}
	lit := p.toks[p.pos]
	p.pos++
	switch lit.kind {
	case tokString, tokKey:
		// Bare words on the right-hand side read as strings, so
		// `order-type == delivery` works without quotes.
		return cmpString{key: key.text, want: lit.text, negate: negate}, nil
	case tokBool:
		return cmpBool{key: key.text, want: lit.text == "true", negate: negate}, nil
	case tokNumber:
		want, err := strconv.ParseFloat(lit.text, 64)
		if err != nil {
			return nil, fmt.Errorf("expr: bad number literal %q", lit.text)
		}
		return cmpNumber{key: key.text, want: want, negate: negate}, nil
	default:
		return nil, fmt.Errorf("expr: expected a literal, got %q", lit.text)
	}
}

type orCond struct{ left, right visibility.Condition }

func (c orCond) Visible(ctx visibility.Context) (bool, error) {
	ok, err := c.left.Visible(ctx)
	if err != nil || ok {
		return ok, err
	}
	return c.right.Visible(ctx)
}

type andCond struct{ left, right visibility.Condition }

func (c andCond) Visible(ctx visibility.Context) (bool, error) {
	ok, err := c.left.Visible(ctx)
	if err != nil || !ok {
		return ok, err
	}
	return c.right.Visible(ctx)
}

type notCond struct{ inner visibility.Condition }

func (c notCond) Visible(ctx visibility.Context) (bool, error) {
	ok, err := c.inner.Visible(ctx)
	return !ok, err
}

type truthyCond struct{ key string }

func (c truthyCond) Visible(ctx visibility.Context) (bool, error) {
	return truthy(ctx.Values[c.key]), nil
}

type cmpString struct {
	key    string
	want   string
	negate bool
}

func (c cmpString) Visible(ctx visibility.Context) (bool, error) {
	got := asString(ctx.Values[c.key])
	return (got == c.want) != c.negate, nil
}

type cmpBool struct {
	key    string
	want   bool
	negate bool
}

func (c cmpBool) Visible(ctx visibility.Context) (bool, error) {
	return (truthy(ctx.Values[c.key]) == c.want) != c.negate, nil
}

type cmpNumber struct {
	key    string
	want   float64
	negate bool
}

func (c cmpNumber) Visible(ctx visibility.Context) (bool, error) {
	got, ok := asNumber(ctx.Values[c.key])
	if !ok {
		got = 0
	}
	return (got == c.want) != c.negate, nil
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
