package variantreport

import (
	"errors"
	"fmt"
)

// ErrKind classifies a pipeline failure for the caller. The pipeline
// never retries: the first failure of any stage aborts the run and
// propagates a single error carrying one of these kinds.
type ErrKind int

const (
	ErrUnknown ErrKind = iota
	// ErrValidation: the request itself is unusable (e.g. an empty
	// resolved gene set).
	ErrValidation
	// ErrFileAccess: a required source file is missing or unreadable.
	ErrFileAccess
	// ErrParse: a source file is structurally malformed (unexpected
	// column layout, row/header mismatch).
	ErrParse
	// ErrComputation: any other failure during transformation or
	// workbook output.
	ErrComputation
)

func (k ErrKind) String() string {
	switch k {
	case ErrValidation:
		return "validation"
	case ErrFileAccess:
		return "file access"
	case ErrParse:
		return "parse"
	case ErrComputation:
		return "computation"
	default:
		return "unknown"
	}
}

type pipelineError struct {
	kind ErrKind
	msg  string
	err  error
}

func (e *pipelineError) Error() string {
	if e.err != nil && e.msg != "" {
		return fmt.Sprintf("%s error: %s: %s", e.kind, e.msg, e.err)
	} else if e.err != nil {
		return fmt.Sprintf("%s error: %s", e.kind, e.err)
	}
	return fmt.Sprintf("%s error: %s", e.kind, e.msg)
}

func (e *pipelineError) Unwrap() error { return e.err }

// Kind reports the ErrKind of err, walking wrapped errors. Errors that
// did not originate in this pipeline report ErrUnknown.
func Kind(err error) ErrKind {
	var pe *pipelineError
	if errors.As(err, &pe) {
		return pe.kind
	}
	return ErrUnknown
}

func validationErrf(format string, args ...interface{}) error {
	return &pipelineError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func fileAccessErr(path string, err error) error {
	return &pipelineError{kind: ErrFileAccess, msg: path, err: err}
}

func parseErrf(format string, args ...interface{}) error {
	return &pipelineError{kind: ErrParse, msg: fmt.Sprintf(format, args...)}
}

func parseErr(context string, err error) error {
	return &pipelineError{kind: ErrParse, msg: context, err: err}
}

func computationErr(context string, err error) error {
	return &pipelineError{kind: ErrComputation, msg: context, err: err}
}
