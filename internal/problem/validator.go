package problem

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/mathmentor/internal/markup"
	"github.com/abhisek/mathmentor/internal/textnorm"
)

// Validator checks generated problem text before it is shown.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural".
	Name() string

	Validate(text string, p Params) *ValidationError
}

// ValidationError describes why generated text was rejected.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string
	Retryable bool // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// maxProblemLen is roughly what fits in the default 500 token budget.
const maxProblemLen = 2000

// StructuralValidator rejects empty or overlong problem text.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(text string, _ Params) *ValidationError {
	text = strings.TrimSpace(text)
	if text == "" {
		return &ValidationError{Validator: v.Name(), Message: "problem text is empty", Retryable: true}
	}
	if len(text) > maxProblemLen {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("problem text exceeds %d characters", maxProblemLen),
			Retryable: true,
		}
	}
	return nil
}

// MarkupValidator rejects text whose math spans have unbalanced braces and
// so could never be typeset. Unsupported commands are fine; they fall back
// to plain text at render time.
type MarkupValidator struct{}

func (v *MarkupValidator) Name() string { return "markup" }

func (v *MarkupValidator) Validate(text string, _ Params) *ValidationError {
	for _, seg := range markup.Partition(textnorm.Normalize(text, false)) {
		if seg.Mode != markup.ModeMath {
			continue
		}
		if _, err := markup.ToUnicode(seg.Payload); errors.Is(err, markup.ErrUnbalanced) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("unbalanced braces in %q", seg.Payload),
				Retryable: true,
			}
		}
	}
	return nil
}
