package search

import (
	"errors"
	"fmt"
	"strings"
)

// TokenType is the kind of a query token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenText
	TokenFilter
	TokenRegex
	TokenAnd
	TokenOr
	TokenNot
	TokenLParen
	TokenRParen
)

// Token is one lexical element of a query. Filter tokens keep their raw
// text ("s:>=100", "@owner=ann", "~dsgn") for the parser to interpret.
type Token struct {
	Type  TokenType
	Value string
}

// ComparisonOp compares an item value against a filter value
type ComparisonOp string

const (
	OpEqual        ComparisonOp = "="
	OpNotEqual     ComparisonOp = "!="
	OpGreater      ComparisonOp = ">"
	OpGreaterEqual ComparisonOp = ">="
	OpLess         ComparisonOp = "<"
	OpLessEqual    ComparisonOp = "<="
)

// longest first, so ">=" wins over ">"
var comparisonOps = []ComparisonOp{OpGreaterEqual, OpLessEqual, OpNotEqual, OpGreater, OpLess, OpEqual}

var numberFilters = map[string]NumberField{
	"s":      FieldStart,
	"start":  FieldStart,
	"e":      FieldStop,
	"stop":   FieldStop,
	"l":      FieldLayer,
	"layer":  FieldLayer,
	"len":    FieldLength,
	"length": FieldLength,
}

var punctuation = map[byte]TokenType{
	'(': TokenLParen,
	')': TokenRParen,
	'|': TokenOr,
	'+': TokenAnd,
	'-': TokenNot,
}

// Tokenizer splits a query into tokens
type Tokenizer struct {
	src string
	pos int
}

// NewTokenizer creates a tokenizer over input
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{src: input}
}

// AllTokens returns the remaining tokens, ending with TokenEOF
func (t *Tokenizer) AllTokens() []Token {
	var tokens []Token
	for {
		tok := t.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

// NextToken returns the next token, or TokenEOF at the end of the input
func (t *Tokenizer) NextToken() Token {
	t.take(func(c byte) bool { return !isSpace(c) })
	if t.pos >= len(t.src) {
		return Token{Type: TokenEOF}
	}

	c := t.src[t.pos]
	negative := c == '-' && t.pos+1 < len(t.src) && isDigit(t.src[t.pos+1])
	if typ, ok := punctuation[c]; ok && !negative {
		t.pos++
		return Token{Type: typ, Value: string(c)}
	}

	switch c {
	case '"':
		t.pos++
		phrase := t.take(func(c byte) bool { return c == '"' })
		t.skip('"')
		return Token{Type: TokenText, Value: phrase}
	case '@':
		t.pos++
		key := t.take(func(c byte) bool { return !isWordByte(c) && c != '-' })
		if t.pos < len(t.src) && isOperatorByte(t.src[t.pos]) {
			key += t.criteria()
		}
		return Token{Type: TokenFilter, Value: "@" + key}
	case '~':
		t.pos++
		if term := t.take(endsWord); term != "" {
			return Token{Type: TokenFilter, Value: "~" + term}
		}
		return Token{Type: TokenText, Value: "~"}
	case '/':
		if tok, ok := t.regex(); ok {
			return tok
		}
	default:
		if isLetter(c) {
			if tok, ok := t.namedFilter(); ok {
				return tok
			}
		}
	}
	return Token{Type: TokenText, Value: t.take(endsWord)}
}

// take consumes bytes up to the first one stop accepts
func (t *Tokenizer) take(stop func(byte) bool) string {
	start := t.pos
	for t.pos < len(t.src) && !stop(t.src[t.pos]) {
		t.pos++
	}
	return t.src[start:t.pos]
}

func (t *Tokenizer) skip(c byte) {
	if t.pos < len(t.src) && t.src[t.pos] == c {
		t.pos++
	}
}

// namedFilter reads "name:criteria"; without the colon nothing is consumed
func (t *Tokenizer) namedFilter() (Token, bool) {
	end := t.pos
	for end < len(t.src) && isWordByte(t.src[end]) {
		end++
	}
	if end >= len(t.src) || t.src[end] != ':' {
		return Token{}, false
	}
	name := t.src[t.pos:end]
	t.pos = end + 1
	return Token{Type: TokenFilter, Value: name + ":" + t.criteria()}, true
}

// criteria reads an optional operator and the value after it
func (t *Tokenizer) criteria() string {
	start := t.pos
	if t.pos < len(t.src) && isOperatorByte(t.src[t.pos]) {
		t.pos++
		t.skip('=')
	}
	t.take(func(c byte) bool { return isSpace(c) || c == '|' || c == ')' })
	return t.src[start:t.pos]
}

// regex reads /pattern/. An unterminated pattern runs to the end of the
// input; "/" on its own is not a regex.
func (t *Tokenizer) regex() (Token, bool) {
	end := t.pos + 1
	for end < len(t.src) && t.src[end] != '/' {
		if t.src[end] == '\\' {
			end++
		}
		end++
	}
	end = min(end, len(t.src))

	pattern := t.src[t.pos+1 : end]
	if pattern == "" && end >= len(t.src) {
		return Token{}, false
	}
	t.pos = min(end+1, len(t.src))
	return Token{Type: TokenRegex, Value: pattern}, true
}

func endsWord(c byte) bool {
	return isSpace(c) || c == '|' || c == '+' || c == '(' || c == ')'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

func isOperatorByte(c byte) bool {
	return strings.IndexByte("<>!=", c) >= 0
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isWordByte(c byte) bool {
	return isLetter(c) || isDigit(c)
}

// Parser builds a FilterExpr from tokens. "|" binds loosest, then "+" and
// juxtaposition, then "-".
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a parser over tokens
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseQuery parses query; an empty query matches every item
func ParseQuery(query string) (FilterExpr, error) {
	p := NewParser(NewTokenizer(query).AllTokens())
	if p.peek() == TokenEOF {
		return NewAlwaysMatchExpr(), nil
	}

	expr, err := p.Parse()
	if err != nil {
		return nil, err
	}
	if tok := p.next(); tok.Type != TokenEOF {
		return nil, fmt.Errorf("unexpected token %q", tok.Value)
	}
	return expr, nil
}

// Parse reads one expression
func (p *Parser) Parse() (FilterExpr, error) {
	return p.disjunction()
}

func (p *Parser) peek() TokenType {
	if p.pos >= len(p.tokens) {
		return TokenEOF
	}
	return p.tokens[p.pos].Type
}

func (p *Parser) next() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

func (p *Parser) atTermEnd() bool {
	switch p.peek() {
	case TokenEOF, TokenRParen, TokenOr:
		return true
	}
	return false
}

func (p *Parser) disjunction() (FilterExpr, error) {
	expr, err := p.conjunction()
	for err == nil && p.peek() == TokenOr {
		p.next()
		var right FilterExpr
		if right, err = p.conjunction(); err == nil {
			expr = NewOrExpr(expr, right)
		}
	}
	return expr, err
}

func (p *Parser) conjunction() (FilterExpr, error) {
	expr, err := p.negation()
	for err == nil && !p.atTermEnd() {
		if p.peek() == TokenAnd {
			p.next()
			if p.atTermEnd() {
				break
			}
		}
		var right FilterExpr
		if right, err = p.negation(); err == nil {
			expr = NewAndExpr(expr, right)
		}
	}
	return expr, err
}

func (p *Parser) negation() (FilterExpr, error) {
	if p.peek() != TokenNot {
		return p.atom()
	}
	p.next()
	inner, err := p.negation()
	if err != nil {
		return nil, err
	}
	return NewNotExpr(inner), nil
}

func (p *Parser) atom() (FilterExpr, error) {
	tok := p.next()
	switch tok.Type {
	case TokenLParen:
		inner, err := p.disjunction()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.Type != TokenRParen {
			return nil, fmt.Errorf("expected ')', got %q", closing.Value)
		}
		return inner, nil
	case TokenText:
		return NewTextExpr(tok.Value), nil
	case TokenFilter:
		return parseFilterValue(tok.Value)
	case TokenRegex:
		return NewRegexExpr(tok.Value)
	case TokenEOF:
		return nil, errors.New("unexpected end of input")
	}
	return nil, fmt.Errorf("unexpected token %q", tok.Value)
}

// parseFilterValue turns the raw text of a filter token into an expression.
// Unknown "name:" prefixes are plain text, e.g. "note:" in a label.
func parseFilterValue(value string) (FilterExpr, error) {
	switch {
	case strings.HasPrefix(value, "~"):
		return NewFuzzyExpr(value[1:]), nil
	case strings.HasPrefix(value, "@"):
		return parseAttrFilter(value[1:])
	}

	name, criteria, _ := strings.Cut(value, ":")
	lower := strings.ToLower(name)
	if field, ok := numberFilters[lower]; ok {
		op, val, err := parseComparison(criteria)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return NewNumberFilter(field, op, val)
	}
	if lower == "at" {
		return NewAtFilter(criteria)
	}
	return NewTextExpr(value), nil
}

// parseAttrFilter reads "key", "key=value", "key>=value" and so on. The key
// ends at the first operator character.
func parseAttrFilter(criteria string) (FilterExpr, error) {
	at := strings.IndexAny(criteria, "<>!=")
	if at < 0 {
		if criteria == "" {
			return nil, errors.New("attribute filter without a name")
		}
		return NewAttrFilter(criteria, "", ""), nil
	}
	if at == 0 {
		return nil, errors.New("attribute filter without a name")
	}
	op, value, ok := cutOperator(criteria[at:])
	if !ok {
		return NewAttrFilter(criteria, "", ""), nil
	}
	return NewAttrFilter(criteria[:at], op, value), nil
}

// parseComparison splits criteria into operator and value; a bare value
// compares for equality
func parseComparison(criteria string) (ComparisonOp, string, error) {
	if criteria == "" {
		return "", "", errors.New("empty criteria")
	}
	op, value, ok := cutOperator(criteria)
	if !ok {
		return OpEqual, criteria, nil
	}
	if value == "" {
		return "", "", fmt.Errorf("missing value after operator %s", op)
	}
	return op, value, nil
}

func cutOperator(s string) (ComparisonOp, string, bool) {
	for _, op := range comparisonOps {
		if rest, ok := strings.CutPrefix(s, string(op)); ok {
			return op, rest, true
		}
	}
	return "", s, false
}

// IsPlainText reports whether expr is a single word without filters, which
// callers may prefer to rank fuzzily instead
func IsPlainText(expr FilterExpr) bool {
	_, ok := expr.(*TextExpr)
	return ok
}
