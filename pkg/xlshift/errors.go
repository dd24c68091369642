package xlshift

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest indicates a malformed insertion request; detected before
// any mutation.
var ErrInvalidRequest = errors.New("invalid insertion request")

// ErrUnknownSheet indicates the target sheet is absent from the workbook.
var ErrUnknownSheet = errors.New("unknown sheet")

// ErrUnknownAnchorRow indicates an anchor row beyond the sheet's used range.
var ErrUnknownAnchorRow = errors.New("unknown anchor row")

// ErrAmbiguousShiftTable indicates two insertion requests share an anchor
// row; requests are rejected rather than merged.
var ErrAmbiguousShiftTable = errors.New("ambiguous shift table")

// ErrIdentityResolution indicates a post-insertion row could not be mapped
// to an original row or an insertion block. This is an internal invariant
// violation and aborts the run.
var ErrIdentityResolution = errors.New("row identity resolution failed")

// ErrReferenceRewrite indicates a captured reference site no longer exists
// at rewrite time.
var ErrReferenceRewrite = errors.New("reference rewrite failed")

// RequestError ties a validation failure to the offending request index.
type RequestError struct {
	Index int
	Err   error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %d: %v", e.Index, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// RewriteError identifies the reference site a rewrite failed on.
type RewriteError struct {
	Sheet string
	Cell  string
	Err   error
}

func (e *RewriteError) Error() string {
	return fmt.Sprintf("rewriting %s!%s: %v", e.Sheet, e.Cell, e.Err)
}

func (e *RewriteError) Unwrap() error {
	return e.Err
}
