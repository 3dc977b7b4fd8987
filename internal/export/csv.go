package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ErrNothingToExport signals an export request over zero rows. The
// caller surfaces a notice instead of producing a header-only file.
var ErrNothingToExport = errors.New("nothing to export")

// Write serializes d to w with standard CSV quoting: fields containing
// the delimiter, a quote or a line break are wrapped in quotes with
// internal quotes doubled, so parsing the output reconstructs the exact
// original values.
func Write(w io.Writer, d Document) error {
	if len(d.Rows) == 0 {
		return ErrNothingToExport
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range d.Rows {
		if len(row) != len(d.Header) {
			return fmt.Errorf("row %d has %d fields, header has %d", i, len(row), len(d.Header))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Bytes renders d into an in-memory CSV byte stream.
func Bytes(d Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
