package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPolygonNotFound reports that a name resolved to no document record.
var ErrPolygonNotFound = errors.New("polygon not found")

// MissingColumnError is returned before any row is processed when the
// spreadsheet header lacks required columns. It carries the full set of
// missing names plus what the sheet actually offers.
type MissingColumnError struct {
	Missing   []string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing columns: %s (available: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Available, ", "))
}
