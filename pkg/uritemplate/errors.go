package uritemplate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates malformed or missing input to a public
	// operation, detected before any parsing or evaluation work.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTemplateSyntax indicates the template string violates the grammar.
	// Errors of this kind carry a *SyntaxError with the details.
	ErrTemplateSyntax = errors.New("template syntax error")

	// ErrEngineFault indicates an internal invariant was violated while
	// assembling a URI. It points at a defect in the engine, not at the
	// caller's input.
	ErrEngineFault = errors.New("uri assembly fault")
)

// SyntaxError reports where and why a template string failed to parse.
type SyntaxError struct {
	Template string
	Pos      int
	Reason   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template syntax error at offset %d in %q: %s", e.Pos, e.Template, e.Reason)
}

// Unwrap makes errors.Is(err, ErrTemplateSyntax) hold for every SyntaxError.
func (e *SyntaxError) Unwrap() error {
	return ErrTemplateSyntax
}
