package scan

import (
	"errors"
	"fmt"
)

// ErrFormat is the sentinel every [*FormatError] wraps. Use errors.Is(err,
// scan.ErrFormat) to detect a format error without caring about its detail.
var ErrFormat = errors.New("invalid json")

// contextWidth is the number of characters of context captured starting at
// a format error offset, per the scanner's error-reporting contract.
const contextWidth = 20

// FormatError reports that the character buffer is not valid JSON at a
// given offset. It carries enough context to build a useful diagnostic
// without re-scanning the buffer.
type FormatError struct {
	// Snippet is up to contextWidth characters starting at Offset.
	Snippet string
	// Expected names the symbol or class the scanner wanted to see, e.g.
	// "a digit" or "','".
	Expected string
	// Offset is the byte index into the buffer where scanning failed.
	Offset int
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("json format error at offset %d: expected %s, found %q", e.Offset, e.Expected, e.Snippet)
}

// Unwrap lets callers match with errors.Is(err, scan.ErrFormat).
func (e *FormatError) Unwrap() error {
	return ErrFormat
}

func newFormatError(buf []byte, i int, expected string) *FormatError {
	start := i
	if start > len(buf) {
		start = len(buf)
	}

	end := start + contextWidth
	if end > len(buf) {
		end = len(buf)
	}

	return &FormatError{Offset: i, Snippet: string(buf[start:end]), Expected: expected}
}
