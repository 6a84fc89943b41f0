package dataset

import "fmt"

// MissingFileError reports a source that could not be opened.
type MissingFileError struct {
	Path string
	Err  error
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", e.Path, e.Err)
}

func (e *MissingFileError) Unwrap() error { return e.Err }
