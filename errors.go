package main

import "fmt"

// MissingFileError reports an expected path that does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s: file not found", e.Path)
}

// ParseError reports a file that is not valid YAML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid YAML: %s", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ShapeError reports a value that parsed but does not have the expected shape.
// Path is empty for values that do not come from a file.
type ShapeError struct {
	Path   string
	Line   int
	Reason string
}

func (e *ShapeError) Error() string {
	switch {
	case e.Path == "":
		return e.Reason
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
}
