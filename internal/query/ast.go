package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is a node of a parsed query tree.
//
// This is a sealed interface - only types in this package implement it, so
// the evaluator can switch over every node type exhaustively.
//
// Node types:
//   - And: every child matches
//   - Or: at least one child matches
//   - Not: the child does not match
//   - FieldTest: a field compared against a parsed value
//   - TextTest: a bare or quoted phrase, or an exact name
type Node interface {
	queryNode() // Marker method - seals interface to this package
	String() string
}

// And matches what every child matches. An empty And matches everything.
type And struct {
	Children []Node
}

// Or matches what any child matches.
type Or struct {
	Children []Node
}

// Not matches the printings its child does not match.
type Not struct {
	Child Node
}

// FieldTest compares one field against a value parsed at parse time.
//
// Value holds the field-specific parsed form (a set list, a color query, a
// mana pattern, a date range, a subquery Node, ...). Raw keeps the text as
// written for display.
type FieldTest struct {
	Field string
	Op    Operator
	Raw   string
	Value any
	Level Level
}

// TextTest matches a phrase against card names or rules text.
type TextTest struct {
	Scope  TextScope
	Phrase string
	Exact  bool
}

func (*And) queryNode()       {}
func (*Or) queryNode()        {}
func (*Not) queryNode()       {}
func (*FieldTest) queryNode() {}
func (*TextTest) queryNode()  {}

func (n *And) String() string { return group("and", n.Children) }
func (n *Or) String() string  { return group("or", n.Children) }
func (n *Not) String() string { return "(not " + n.Child.String() + ")" }

func (n *FieldTest) String() string {
	if sub, ok := n.Value.(Node); ok {
		return n.Field + n.Op.String() + sub.String()
	}
	return n.Field + n.Op.String() + quoteIfNeeded(n.Raw)
}

func (n *TextTest) String() string {
	if n.Exact {
		return "!" + strconv.Quote(n.Phrase)
	}
	return n.Scope.String() + "~" + quoteIfNeeded(n.Phrase)
}

func group(op string, children []Node) string {
	parts := make([]string, 0, len(children)+1)
	parts = append(parts, op)
	for _, c := range children {
		parts = append(parts, c.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"()") {
		return strconv.Quote(s)
	}
	return s
}

// Operator is a field comparison operator.
type Operator int

const (
	OpColon Operator = iota // ":"
	OpEq                    // "="
	OpNe                    // "!="
	OpBang                  // "!"
	OpLt                    // "<"
	OpLe                    // "<="
	OpGt                    // ">"
	OpGe                    // ">="
)

var operatorText = [...]string{
	OpColon: ":",
	OpEq:    "=",
	OpNe:    "!=",
	OpBang:  "!",
	OpLt:    "<",
	OpLe:    "<=",
	OpGt:    ">",
	OpGe:    ">=",
}

func (o Operator) String() string {
	if o < 0 || int(o) >= len(operatorText) {
		return fmt.Sprintf("op(%d)", int(o))
	}
	return operatorText[o]
}

// scanOperator reads the operator at the start of s, longest match first.
func scanOperator(s string) (Operator, int, bool) {
	for _, op := range []Operator{OpGe, OpLe, OpNe, OpColon, OpEq, OpLt, OpGt, OpBang} {
		if strings.HasPrefix(s, operatorText[op]) {
			return op, len(operatorText[op]), true
		}
	}
	return 0, 0, false
}

// Level is the granularity a test decides at.
type Level int

const (
	// LevelCard tests decide per card; every printing of a matching card
	// matches.
	LevelCard Level = iota
	// LevelPrinting tests decide per printing.
	LevelPrinting
)

// TextScope is where a text phrase is looked for.
type TextScope int

const (
	ScopeNameOrText TextScope = iota
	ScopeName
	ScopeText
)

func (s TextScope) String() string {
	switch s {
	case ScopeName:
		return "name"
	case ScopeText:
		return "text"
	}
	return "name_or_text"
}

// ParseTextScope parses "name", "text" or "name_or_text".
func ParseTextScope(s string) (TextScope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return ScopeName, nil
	case "text":
		return ScopeText, nil
	case "", "name_or_text":
		return ScopeNameOrText, nil
	}
	return 0, fmt.Errorf("unknown text scope %q", s)
}

// Query is a parsed query: a filter tree and an optional result order.
type Query struct {
	Text string
	Root Node
	Sort SortKey
}

func (q *Query) String() string {
	if q.Sort == SortNone {
		return q.Root.String()
	}
	return q.Root.String() + " sort:" + string(q.Sort)
}
