// Package apperr defines the error taxonomy shared by the navigation
// engine and its collaborators. Every failure is classified by Kind so
// recovery policies (drop a stale history entry, refresh the current
// directory, surface a defect) can branch without string matching.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error by its failure domain.
type Kind int

const (
	// KindIO is a filesystem read or metadata failure.
	KindIO Kind = iota
	// KindPath is a missing name/parent, failed canonicalization, stale
	// entry, bad relative-path prefix, or an oversized file.
	KindPath
	// KindParse is a directory unreadable as a whole, a numeric
	// conversion failure, or a highlighting failure.
	KindParse
	// KindCache is an expected key missing from the LRU, an internal
	// consistency failure.
	KindCache
	// KindState is an operation invoked in an incompatible mode.
	KindState
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindPath:
		return "path"
	case KindParse:
		return "parse"
	case KindCache:
		return "cache"
	case KindState:
		return "state"
	}
	return "unknown"
}

// Error wraps a failure with the operation and path it concerns.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "readdir", "canonicalize"
	Path string // affected path, may be empty
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	switch {
	case e.Path == "" && e.Err == nil:
		return fmt.Sprintf("%s error: %s", e.Kind, e.Op)
	case e.Path == "":
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Op, e.Err)
	case e.Err == nil:
		return fmt.Sprintf("%s error: %s %s", e.Kind, e.Op, e.Path)
	}
	return fmt.Sprintf("%s error: %s %s: %v", e.Kind, e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error of the given kind.
func New(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// IO wraps a filesystem failure.
func IO(op, path string, err error) *Error {
	return New(KindIO, op, path, err)
}

// Path wraps a path resolution failure.
func Path(op, path string, err error) *Error {
	return New(KindPath, op, path, err)
}

// Parse wraps a conversion or whole-input failure.
func Parse(op string, err error) *Error {
	return New(KindParse, op, "", err)
}

// Cache wraps a broken cache invariant.
func Cache(op, path string) *Error {
	return New(KindCache, op, path, nil)
}

// State wraps an operation attempted in the wrong mode.
func State(op string) *Error {
	return New(KindState, op, "", nil)
}

// KindOf reports the Kind of err, or (0, false) if err is not an
// apperr.Error anywhere in its chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
