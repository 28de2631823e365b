package coords

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is matched (via errors.Is) by every *ParseError.
	ErrParse = errors.New("coords: parse error")

	// ErrDimensionMismatch indicates rows (or vectors added to a Collection)
	// with differing coordinate counts.
	ErrDimensionMismatch = errors.New("coords: dimension mismatch")

	// ErrEmpty indicates a sheet without a single data line.
	ErrEmpty = errors.New("coords: no data lines")
)

// ParseError describes a malformed line. Line is 1-based.
type ParseError struct {
	Line   int    // 1-based line number in the input
	Label  string // label of the offending line, if one was read
	Token  string // offending coordinate token, if any
	Reason string // short human description
	Err    error  // underlying cause (e.g. *strconv.NumError), may be nil
}

// Error implements error.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("coords: line %d", e.Line)
	if e.Label != "" {
		msg += fmt.Sprintf(" (%s)", e.Label)
	}
	if e.Token != "" {
		msg += fmt.Sprintf(": token %q", e.Token)
	}

	return msg + ": " + e.Reason
}

// Unwrap exposes the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrParse) match any *ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

func dimensionError(line int, label string, got, want int) error {
	return fmt.Errorf("coords: line %d (%s): %d coordinates, want %d: %w", line, label, got, want, ErrDimensionMismatch)
}
