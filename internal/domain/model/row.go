package model

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrFieldDecode marks a source value that cannot be parsed into its expected type.
var ErrFieldDecode = errors.New("field deserialization failed")

// Row is one source table row keyed by column name. A missing key and an
// empty value both mean the field is absent.
type Row map[string]string

// TableReader yields the rows of a named table stored at location.
type TableReader interface {
	ReadTable(ctx context.Context, location, table string) ([]Row, error)
}

// String returns the raw value of col, or nil when absent.
func (r Row) String(col string) *string {
	v, ok := r[col]
	if !ok || v == "" {
		return nil
	}
	return &v
}

// Int parses col as a 32-bit integer. Integral decimals such as "12.0" are
// accepted since some extractors render every number that way; exponents,
// fractions and out-of-range values are decode failures.
func (r Row) Int(col string) (*int, error) {
	raw, ok := r[col]
	if !ok {
		return nil, nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	digits := raw
	if whole, frac, found := strings.Cut(raw, "."); found && frac != "" && strings.Trim(frac, "0") == "" {
		digits = whole
	}
	n, err := strconv.ParseInt(digits, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: column %q: %q is not a 32-bit integer", ErrFieldDecode, col, raw)
	}
	v := int(n)
	return &v, nil
}

// Float parses col as a float.
func (r Row) Float(col string) (*float64, error) {
	raw, ok := r[col]
	if !ok {
		return nil, nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: column %q: %q is not a number", ErrFieldDecode, col, raw)
	}
	return &f, nil
}

// Decoder reads typed fields from a row and keeps the first failure, so a
// table mapping can read every column and check Err once.
type Decoder struct {
	table string
	index int
	row   Row
	err   error
}

// NewDecoder returns a Decoder for the index-th row of table.
func NewDecoder(table string, index int, row Row) *Decoder {
	return &Decoder{table: table, index: index, row: row}
}

// String returns an optional string column.
func (d *Decoder) String(col string) *string {
	return d.row.String(col)
}

// Int returns an optional integer column.
func (d *Decoder) Int(col string) *int {
	if d.err != nil {
		return nil
	}
	v, err := d.row.Int(col)
	if err != nil {
		d.err = fmt.Errorf("table %s row %d: %w", d.table, d.index, err)
	}
	return v
}

// Float returns an optional float column.
func (d *Decoder) Float(col string) *float64 {
	if d.err != nil {
		return nil
	}
	v, err := d.row.Float(col)
	if err != nil {
		d.err = fmt.Errorf("table %s row %d: %w", d.table, d.index, err)
	}
	return v
}

// Err returns the first decoding failure.
func (d *Decoder) Err() error {
	return d.err
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
