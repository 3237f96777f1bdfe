// internal/trace/errors.go
package trace

import "fmt"

// DataFormatError reports a file that is not a readable trace table.
type DataFormatError struct {
	Path string
	Err  error
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("data format error in %s: %v", e.Path, e.Err)
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// WriteError reports a failure writing an output table.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("could not write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
