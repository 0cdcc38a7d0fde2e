package errs

import "fmt"

// Span identifies a source range for diagnostics. The core never constructs
// a Span from raw source text (that's the parser's job, external per spec
// §6); it only carries spans the parsed AST already attached to each
// declaration and expression.
type Span struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

func (s Span) String() string {
	if s.File == "" && s.StartLine == 0 {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.StartLine, s.StartCol)
}

// Dummy returns the zero Span, used where the original's control-flow
// builder inserts synthetic nodes (e.g. the implicit Return of a unit
// function) that don't trace back to any written source.
func Dummy() Span { return Span{} }
