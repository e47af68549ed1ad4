package models

import "fmt"

// DataLoadError is returned when the listings table cannot be read or
// does not match the expected schema. It is fatal at store construction.
type DataLoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load listings from %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("load listings from %s: %s", e.Source, e.Reason)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// InvalidFilterError is returned when a filter field holds a value of the wrong kind,
// e.g. a non-numeric price bound.
type InvalidFilterError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter %s %q: %s", e.Field, e.Value, e.Reason)
}
