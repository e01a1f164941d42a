package domain

import (
	"fmt"
	"strings"
)

// SchemaError reports required raw columns that were absent from every input
// row. It names both the missing and the observed columns so the caller can
// fix the column mapping or the data.
type SchemaError struct {
	Missing []string
	Present []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns [%s]; present columns [%s]",
		strings.Join(e.Missing, ", "), strings.Join(e.Present, ", "))
}

// InsufficientYearDataError reports a requested election year with no rows in
// the aggregate table. This is a usage error: the caller picked a year the
// data does not cover.
type InsufficientYearDataError struct {
	Year      int
	Available []int
}

func (e *InsufficientYearDataError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("no data for year %d: aggregate table is empty", e.Year)
	}
	parts := make([]string, len(e.Available))
	for i, y := range e.Available {
		parts[i] = fmt.Sprintf("%d", y)
	}
	return fmt.Sprintf("no data for year %d; available years: %s", e.Year, strings.Join(parts, ", "))
}
