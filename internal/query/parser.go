package query

import (
	"errors"
	"strings"
	"time"

	"github.com/roach88/cardsearch/internal/catalog"
	"github.com/roach88/cardsearch/internal/textnorm"
)

// Resolver resolves edition, block and time references while a query is
// parsed. *catalog.Catalog implements it.
type Resolver interface {
	ResolveEditions(text string) []*catalog.Set
	ResolveBlock(text string) ([]*catalog.Set, error)
	ResolveTime(text string) (time.Time, bool, error)
}

// Option configures Parse.
type Option func(*options)

type options struct {
	bareScope TextScope
}

// WithBareScope sets where bare words and quoted phrases are looked for.
// The default is ScopeNameOrText.
func WithBareScope(scope TextScope) Option {
	return func(o *options) {
		o.bareScope = scope
	}
}

// Parse parses query text into a Query. Field values are parsed and
// edition, block and time references are resolved here, so evaluation
// cannot fail.
//
// Grammar, loosest binding first:
//
//	query   = or
//	or      = and { "or" and }
//	and     = unary { ["and"] unary }
//	unary   = "-" unary | "not:" value | primary
//	primary = "(" or ")" | '"' phrase '"' | "!" name | field op value | word
func Parse(text string, r Resolver, opts ...Option) (*Query, error) {
	o := options{bareScope: ScopeNameOrText}
	for _, opt := range opts {
		opt(&o)
	}

	p := &parser{src: text, res: r, opts: o, q: &Query{Text: text}}
	p.skipSpace()
	if p.eof() {
		return nil, p.fail(ErrCodeSyntax, 0, "", "empty query")
	}

	root, n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.fail(ErrCodeUnbalancedParen, p.pos, ")", "unmatched closing parenthesis")
	}
	if n == 0 {
		return nil, p.fail(ErrCodeSyntax, 0, "", "empty query")
	}
	p.q.Root = root
	return p.q, nil
}

type parser struct {
	src   string
	pos   int
	depth int
	res   Resolver
	opts  options
	q     *Query
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

// atKeyword reports whether the next token is the given keyword, matched
// case-insensitively and followed by a token boundary.
func (p *parser) atKeyword(word string) bool {
	end := p.pos + len(word)
	if end > len(p.src) || !strings.EqualFold(p.src[p.pos:end], word) {
		return false
	}
	return end == len(p.src) || isSpace(p.src[end]) || p.src[end] == '(' || p.src[end] == ')'
}

func (p *parser) fail(code ErrorCode, pos int, fragment, msg string) *ParseError {
	return &ParseError{Code: code, Pos: pos, Fragment: fragment, Message: msg}
}

// parseOr returns the parsed node and the number of terms consumed. Sort
// terms count as terms but produce no node.
func (p *parser) parseOr() (Node, int, error) {
	var children []Node
	total := 0
	for {
		start := p.pos
		n, count, err := p.parseAnd()
		if err != nil {
			return nil, 0, err
		}
		p.skipSpace()
		if count == 0 && (total > 0 || p.atKeyword("or")) {
			return nil, 0, p.fail(ErrCodeSyntax, start, "or", "OR needs a term on both sides")
		}
		total += count
		if n != nil {
			children = append(children, flattenOr(n)...)
		}
		if !p.atKeyword("or") {
			break
		}
		p.pos += len("or")
	}

	switch len(children) {
	case 0:
		if total > 0 {
			return &And{}, total, nil
		}
		return nil, 0, nil
	case 1:
		return children[0], total, nil
	}
	return &Or{Children: children}, total, nil
}

func (p *parser) parseAnd() (Node, int, error) {
	var children []Node
	count := 0
	danglingAnd := -1
	for {
		p.skipSpace()
		if p.eof() || p.peek() == ')' || p.atKeyword("or") {
			break
		}
		if p.atKeyword("and") {
			if count == 0 || danglingAnd >= 0 {
				return nil, 0, p.fail(ErrCodeSyntax, p.pos, "and", "AND needs a term on both sides")
			}
			danglingAnd = p.pos
			p.pos += len("and")
			continue
		}

		n, err := p.parseUnary()
		if err != nil {
			return nil, 0, err
		}
		count++
		danglingAnd = -1
		if n != nil {
			children = append(children, flattenAnd(n)...)
		}
	}
	if danglingAnd >= 0 {
		return nil, 0, p.fail(ErrCodeSyntax, danglingAnd, "and", "AND needs a term on both sides")
	}

	switch {
	case count == 0:
		return nil, 0, nil
	case len(children) == 1:
		return children[0], count, nil
	}
	return &And{Children: children}, count, nil
}

// flattenAnd splices the children of a nested And into its parent.
func flattenAnd(n Node) []Node {
	if a, ok := n.(*And); ok {
		return a.Children
	}
	return []Node{n}
}

// flattenOr splices the children of a nested Or into its parent.
func flattenOr(n Node) []Node {
	if o, ok := n.(*Or); ok {
		return o.Children
	}
	return []Node{n}
}

func (p *parser) parseUnary() (Node, error) {
	p.skipSpace()
	start := p.pos

	if p.peek() == '-' && p.pos+1 < len(p.src) && !isSpace(p.src[p.pos+1]) && p.src[p.pos+1] != ')' {
		p.pos++
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if child == nil {
			return nil, p.fail(ErrCodeSyntax, start, p.src[start:p.pos], "sort cannot be negated")
		}
		return &Not{Child: child}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	start := p.pos
	switch p.peek() {
	case '(':
		p.pos++
		p.depth++
		n, count, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return nil, p.fail(ErrCodeUnbalancedParen, start, "(", "missing closing parenthesis")
		}
		p.pos++
		p.depth--
		if count == 0 {
			return nil, p.fail(ErrCodeSyntax, start, "()", "empty group")
		}
		return n, nil

	case '"':
		phrase, err := p.readQuoted()
		if err != nil {
			return nil, err
		}
		folded := textnorm.Name(phrase)
		if folded == "" {
			return nil, p.fail(ErrCodeInvalidValue, start, p.src[start:p.pos], "quoted phrase is empty")
		}
		return &TextTest{Scope: p.opts.bareScope, Phrase: folded}, nil

	case '!':
		return p.parseExactName()
	}
	return p.parseWordOrField()
}

func (p *parser) readQuoted() (string, error) {
	open := p.pos
	end := strings.IndexByte(p.src[open+1:], '"')
	if end < 0 {
		return "", p.fail(ErrCodeUnterminatedQuote, open, p.src[open:], "missing closing quote")
	}
	p.pos = open + 1 + end + 1
	return p.src[open+1 : open+1+end], nil
}

// parseExactName reads "!" followed by a quoted name or by the rest of the
// query (up to the closing parenthesis inside a group).
func (p *parser) parseExactName() (Node, error) {
	start := p.pos
	p.pos++

	var name string
	if p.peek() == '"' {
		quoted, err := p.readQuoted()
		if err != nil {
			return nil, err
		}
		name = quoted
	} else {
		end := len(p.src)
		if p.depth > 0 {
			if i := strings.IndexByte(p.src[p.pos:], ')'); i >= 0 {
				end = p.pos + i
			}
		}
		name = p.src[p.pos:end]
		p.pos = end
	}

	phrase := textnorm.Name(name)
	if phrase == "" {
		return nil, p.fail(ErrCodeSyntax, start, "!", "exact name is empty")
	}
	return &TextTest{Scope: ScopeName, Phrase: phrase, Exact: true}, nil
}

func isFieldLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (p *parser) parseWordOrField() (Node, error) {
	start := p.pos
	i := start
	for i < len(p.src) && isFieldLetter(p.src[i]) {
		i++
	}

	if i > start {
		// Comparison operators may be separated from the field name by
		// spaces, as in "mana <=mmn".
		j := i
		for j < len(p.src) && (p.src[j] == ' ' || p.src[j] == '\t') {
			j++
		}
		if op, width, ok := scanOperator(p.src[j:]); ok {
			name := strings.ToLower(p.src[start:i])
			field, known := lookupField(name)
			spaced := j > i
			switch {
			case known && (!spaced || op != OpColon && op != OpBang):
				p.pos = j + width
				return p.parseFieldTest(field, op, start)
			case !known && !spaced && op != OpBang:
				return nil, p.fail(ErrCodeUnknownField, start, name, "unknown field "+name)
			}
		}
	}

	word := p.readBare()
	return &TextTest{Scope: p.opts.bareScope, Phrase: textnorm.Name(word)}, nil
}

// readBare reads an unquoted word or value up to whitespace or a
// parenthesis.
func (p *parser) readBare() string {
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if isSpace(c) || c == '(' || c == ')' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) parseFieldTest(field *Field, op Operator, start int) (Node, error) {
	fragment := func() string { return p.src[start:p.pos] }

	if !field.supports(op) {
		return nil, p.fail(ErrCodeUnsupportedOperator, start, fragment(),
			"field "+field.Name+" does not support "+op.String())
	}

	if field.Subquery {
		sub, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if sub == nil {
			return nil, p.fail(ErrCodeSyntax, start, fragment(), field.Name+" needs a query")
		}
		return &FieldTest{Field: field.Name, Op: op, Raw: p.src[start:p.pos], Value: sub, Level: LevelCard}, nil
	}

	valuePos := p.pos
	var raw string
	quoted := p.peek() == '"'
	if quoted {
		v, err := p.readQuoted()
		if err != nil {
			return nil, err
		}
		raw = v
	} else {
		raw = p.readBare()
	}
	if strings.TrimSpace(raw) == "" {
		return nil, p.fail(ErrCodeInvalidValue, start, fragment(), field.Name+" needs a value")
	}

	if field.Name == "sort" {
		key, err := ParseSortKey(raw)
		if err != nil {
			return nil, p.fail(ErrCodeInvalidValue, valuePos, raw, err.Error())
		}
		p.q.Sort = key
		return nil, nil
	}

	if quoted || !field.List || !strings.Contains(raw, ",") {
		return p.buildFieldTest(field, op, raw, valuePos)
	}

	var nodes []Node
	offset := valuePos
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			return nil, p.fail(ErrCodeInvalidValue, offset, raw, "empty item in list")
		}
		n, err := p.buildFieldTest(field, op, item, offset)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		offset += len(part) + 1
	}
	if _, negated := nodes[0].(*Not); negated || op == OpNe {
		return &And{Children: nodes}, nil
	}
	return &Or{Children: nodes}, nil
}

func (p *parser) buildFieldTest(field *Field, op Operator, raw string, pos int) (Node, error) {
	op, negate := field.normalize(op)
	if field.Negated {
		field, negate = field.target(), !negate
	}

	value, err := field.Parse(p.res, op, raw)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return nil, pe
		}
		code := ErrCodeInvalidValue
		if catalog.IsAmbiguousReference(err) {
			code = ErrCodeAmbiguousReference
		}
		return nil, &ParseError{Code: code, Pos: pos, Fragment: raw, Message: err.Error(), Err: err}
	}

	level := field.Level
	if field.LevelOf != nil {
		level = field.LevelOf(value)
	}
	var n Node = &FieldTest{Field: field.Name, Op: op, Raw: raw, Value: value, Level: level}
	if negate {
		n = &Not{Child: n}
	}
	return n, nil
}
