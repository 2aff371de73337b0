package pbp

import "fmt"

// SchemaError reports a required input column missing from a raw table.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: table %s missing required column %q", e.Table, e.Column)
}

// DataIntegrityError reports duplicate keys or out-of-domain values in an
// input table. These are never coerced into empty results — they abort the
// whole calculation.
type DataIntegrityError struct {
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return "data integrity error: " + e.Reason
}
