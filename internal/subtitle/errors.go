package subtitle

import (
	"errors"
	"fmt"
)

// ErrNegativeTime is returned when a negative or non-finite time is formatted.
var ErrNegativeTime = errors.New("time must be a finite, non-negative number of seconds")

// ErrTimeOutOfRange is returned when a time is too large to format.
var ErrTimeOutOfRange = errors.New("time exceeds the largest formattable timecode")

// FormatError reports a malformed id or timecode field.
type FormatError struct {
	Block int // 1-based block number, 0 when not parsing a file
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Block > 0 {
		return fmt.Sprintf(
			"block %d: invalid %s %q: %v",
			e.Block,
			e.Field,
			e.Value,
			e.Err,
		)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
