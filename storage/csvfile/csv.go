package csvfile

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/schoolms/core"
	"github.com/trezcool/schoolms/core/roster"
)

// Write encodes the header followed by every row of t.
func Write(w io.Writer, t *roster.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(roster.Header); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for _, row := range t.Rows() {
		if err := cw.Write(row.Fields()); err != nil {
			return errors.Wrap(err, "writing row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing rows")
}

// Read decodes a roster, skipping the header row.
// An empty input gives an empty table.
func Read(r io.Reader) (*roster.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	t := roster.NewTable()
	header := true
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(core.ErrMalformedData, err.Error())
		}
		if header {
			header = false
			continue
		}
		t.Append(roster.RowFromFields(fields))
	}
	return t, nil
}

// Save writes t to the CSV file at path, replacing it.
func Save(path string, t *roster.Table) error {
	var buf bytes.Buffer
	if err := Write(&buf, t); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return core.NewIOError("write", path, err)
	}
	return nil
}

// Load reads the CSV file at path.
func Load(path string) (*roster.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewIOError("read", path, err)
	}
	return Read(bytes.NewReader(data))
}
