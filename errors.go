// errors.go
//
// Kernel error taxonomy and the internal raise/recover discipline.
//
// All failures inside one normalization are raised with kerr (a panic
// carrying a *KernelError) and recovered exactly once, at the public
// Normalize/NormalizeIn/Equiv boundary in norm.go. Nothing between the
// raise site and the boundary catches or retries; there are no partial
// results. Callers see a plain Go error that unwraps to *KernelError.
package latte

import "fmt"

// ErrKind classifies kernel failures.
type ErrKind int

const (
	// ErrUnknownDefinition: a reference names nothing in the definitional
	// environment.
	ErrUnknownDefinition ErrKind = iota
	// ErrArityMismatch: a reference carries more arguments than its
	// definition declares parameters.
	ErrArityMismatch
	// ErrMissingBody: a transparent definition has no stored body to unfold.
	ErrMissingBody
	// ErrMissingProof: a theorem has no checked proof attached.
	ErrMissingProof
	// ErrImplicitResolution: the implicit resolver failed, or no resolver
	// is installed.
	ErrImplicitResolution
	// ErrUnsupportedTermShape: a term or value carries an unknown tag.
	// This is a defect in the caller or the kernel, never a user condition.
	ErrUnsupportedTermShape
)

func (k ErrKind) String() string {
	switch k {
	case ErrUnknownDefinition:
		return "unknown definition"
	case ErrArityMismatch:
		return "arity mismatch"
	case ErrMissingBody:
		return "missing body"
	case ErrMissingProof:
		return "missing proof"
	case ErrImplicitResolution:
		return "implicit resolution failure"
	case ErrUnsupportedTermShape:
		return "unsupported term shape"
	default:
		return "kernel error"
	}
}

// KernelError is the single error type surfaced by the kernel. Name holds
// the offending global reference when one is involved.
type KernelError struct {
	Kind ErrKind
	Name string
	Msg  string
}

func (e *KernelError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Name, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// kerr aborts the current normalization. Recovered in norm.go.
func kerr(kind ErrKind, name, format string, args ...any) {
	panic(&KernelError{Kind: kind, Name: name, Msg: fmt.Sprintf(format, args...)})
}
