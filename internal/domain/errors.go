package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyAggregate is returned by the summarizer when the requested
// years contributed no records at all, so no matrix can be formed.
var ErrEmptyAggregate = errors.New("no records to summarize: every requested year was invalid or empty")

// NotFoundError reports a census file that does not exist in the data
// directory. The multi-year loader downgrades it to a warning; the
// plotting path propagates it.
type NotFoundError struct {
	Filename string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("census file %s not found", e.Filename)
}

// InvalidStateError reports a state code that never appears in a year's
// data.
type InvalidStateError struct {
	StateNum int
	Year     int
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("state %d not present in %d census data", e.StateNum, e.Year)
}
