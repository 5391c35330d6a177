package corpus

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

// Violation is one schema failure.
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

func (v Violation) String() string {
	if v.Line > 0 {
		return fmt.Sprintf("%d:%d: %s: %s", v.Line, v.Column, v.Path, v.Message)
	}
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	File       string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d schema violation(s)", e.File, len(e.Violations))
	for _, v := range e.Violations {
		b.WriteString("\n  ")
		b.WriteString(v.String())
	}
	return b.String()
}

// Validate checks a JSON corpus document against the schema.
func Validate(data []byte) error {
	return ValidateFile("corpus.json", data)
}

// ValidateFile is Validate with the file name used in positions and errors.
func ValidateFile(name string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		// The schema is embedded; failing to compile it is a build defect.
		panic(fmt.Sprintf("corpus: compile schema: %v", err))
	}

	doc := ctx.CompileBytes(data, cue.Filename(name))
	if err := doc.Err(); err != nil {
		return &ValidationError{File: name, Violations: violations(err)}
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &ValidationError{File: name, Violations: violations(err)}
	}
	return nil
}

func violations(err error) []Violation {
	var out []Violation
	for _, e := range errors.Errors(err) {
		format, args := e.Msg()
		v := Violation{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		}
		if v.Path == "" {
			v.Path = "(root)"
		}
		if pos := errors.Positions(e); len(pos) > 0 {
			v.Line = pos[0].Line()
			v.Column = pos[0].Column()
		}
		out = append(out, v)
	}
	return out
}
