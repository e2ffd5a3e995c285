// Package match compiles match expressions such as
//
//	title:build and not session:scratch
//
// into queries over panes and windows. Terms are field:value pairs;
// juxtaposed terms are joined with "and", and "or", "not" and
// parentheses combine them.
package match

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FieldType controls how a term's value is compared with a subject's field.
type FieldType int

const (
	// Regex fields match when the pattern matches any value.
	Regex FieldType = iota
	// Int fields match when any value equals the integer.
	Int
	// Exact fields match when any value equals the string.
	Exact
)

// Fields maps the field names an expression may use to their types.
type Fields map[string]FieldType

// WindowFields are the fields available when selecting panes.
var WindowFields = Fields{
	"id":      Int,
	"title":   Regex,
	"pid":     Int,
	"cwd":     Regex,
	"cmdline": Regex,
	"num":     Int,
	"session": Regex,
	"state":   Exact,
}

// TabFields are the fields available when selecting windows.
var TabFields = Fields{
	"id":           Int,
	"index":        Int,
	"title":        Regex,
	"window_id":    Int,
	"window_title": Regex,
	"session":      Regex,
	"state":        Exact,
}

// Subject is anything a query can be evaluated against.
type Subject interface {
	// FieldValues returns every value the subject has for field.
	FieldValues(field string) []string
}

// Query is a compiled match expression.
type Query interface {
	Match(s Subject) bool
}

// SyntaxError reports an expression that could not be compiled.
type SyntaxError struct {
	Expression string
	Reason     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid match expression %q: %s", e.Expression, e.Reason)
}

// Compile parses expr against the given field set.
func Compile(expr string, fields Fields) (Query, error) {
	toks, err := lex(expr)
	if err != nil {
		return nil, &SyntaxError{Expression: expr, Reason: err.Error()}
	}
	if len(toks) == 0 {
		return nil, &SyntaxError{Expression: expr, Reason: "empty expression"}
	}
	p := &parser{toks: toks, fields: fields}
	q, err := p.parseOr()
	if err == nil && p.pos < len(p.toks) {
		err = fmt.Errorf("unexpected %q", p.toks[p.pos].text)
	}
	if err != nil {
		return nil, &SyntaxError{Expression: expr, Reason: err.Error()}
	}
	return q, nil
}

// Filter returns the items q matches, in their original order.
func Filter[T Subject](q Query, items []T) []T {
	var out []T
	for _, it := range items {
		if q.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

type andQuery struct{ left, right Query }

func (q andQuery) Match(s Subject) bool { return q.left.Match(s) && q.right.Match(s) }

type orQuery struct{ left, right Query }

func (q orQuery) Match(s Subject) bool { return q.left.Match(s) || q.right.Match(s) }

type notQuery struct{ inner Query }

func (q notQuery) Match(s Subject) bool { return !q.inner.Match(s) }

type termQuery struct {
	field string
	pred  func(string) bool
}

func (q termQuery) Match(s Subject) bool {
	for _, v := range s.FieldValues(q.field) {
		if q.pred(v) {
			return true
		}
	}
	return false
}

func newTerm(fields Fields, field, value string) (Query, error) {
	typ, ok := fields[field]
	if !ok {
		return nil, fmt.Errorf("unknown field %q", field)
	}
	switch typ {
	case Int:
		want, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", field, value)
		}
		return termQuery{field: field, pred: func(v string) bool {
			n, err := strconv.Atoi(v)
			return err == nil && n == want
		}}, nil
	case Exact:
		return termQuery{field: field, pred: func(v string) bool { return v == value }}, nil
	default:
		re, err := regexp.Compile(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", field, err)
		}
		return termQuery{field: field, pred: re.MatchString}, nil
	}
}

type parser struct {
	toks   []token
	pos    int
	fields Fields
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) parseOr() (Query, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || !t.is("or") {
			return left, nil
		}
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orQuery{left, right}
	}
}

func (p *parser) parseAnd() (Query, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.is("or") || t.is(")") {
			return left, nil
		}
		if t.is("and") {
			p.pos++
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = andQuery{left, right}
	}
}

func (p *parser) parseNot() (Query, error) {
	t, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	if t.is("not") {
		p.pos++
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return notQuery{inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Query, error) {
	t, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	p.pos++
	if t.is("(") {
		q, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if c, ok := p.peek(); !ok || !c.is(")") {
			return nil, fmt.Errorf("missing ')'")
		}
		p.pos++
		return q, nil
	}
	if t.is(")") || t.is("and") || t.is("or") {
		return nil, fmt.Errorf("unexpected %q", t.text)
	}
	field, value, found := strings.Cut(t.text, ":")
	if !found || field == "" {
		return nil, fmt.Errorf("term %q is not of the form field:value", t.text)
	}
	return newTerm(p.fields, field, value)
}
