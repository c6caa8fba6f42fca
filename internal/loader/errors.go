package loader

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns absent from the input. Every missing
// column is listed, in required-column order.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("file is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// FormatError reports a cell that could not be parsed into its column type.
type FormatError struct {
	Column   string
	Line     int // 1-based line in the source, header included
	Value    string
	Expected string
	Err      error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s %q on line %d: expected format %s", e.Column, e.Value, e.Line, e.Expected)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
