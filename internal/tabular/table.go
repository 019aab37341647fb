// Package tabular reads and writes header-first tables as CSV or XLSX.
package tabular

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadfill-cli/internal/model"
)

// Table is a header row plus data rows. Rows may be shorter than the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// Index maps trimmed column names to positions. First occurrence wins.
func (t Table) Index() map[string]int {
	idx := make(map[string]int, len(t.Header))
	for i, col := range t.Header {
		key := strings.TrimSpace(col)
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	return idx
}

// Require returns the column index, failing with a *model.ColumnError
// naming the first missing column.
func (t Table) Require(source string, cols ...string) (map[string]int, error) {
	idx := t.Index()
	for _, col := range cols {
		if _, ok := idx[col]; !ok {
			return nil, &model.ColumnError{Source: source, Column: col}
		}
	}
	return idx, nil
}

// Cell safely retrieves a column value from a row.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Read loads the table at path, choosing the format from its extension.
// opts selects the sheet of an XLSX file and is ignored for CSV. A missing
// file yields an error wrapping fs.ErrNotExist.
func Read(path string, opts XLSXOptions) (Table, error) {
	if _, err := os.Stat(path); err != nil {
		return Table{}, eris.Wrapf(err, "tabular: stat %s", path)
	}

	if isXLSX(path) {
		return ReadXLSX(path, opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return Table{}, eris.Wrapf(err, "tabular: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	t, err := ReadCSV(f)
	if err != nil {
		return Table{}, eris.Wrapf(err, "tabular: read %s", path)
	}
	return t, nil
}

// Write stores t at path, choosing the format from its extension. The data
// is written to a temporary file in the same directory and renamed into
// place, so path is either untouched or complete.
func Write(path string, t Table) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".leadfill-*"+filepath.Ext(path))
	if err != nil {
		return eris.Wrap(err, "tabular: create temp file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck

	if isXLSX(path) {
		if err := tmp.Close(); err != nil {
			return eris.Wrap(err, "tabular: close temp file")
		}
		if err := WriteXLSX(tmpPath, t); err != nil {
			return err
		}
	} else {
		if err := WriteCSV(tmp, t); err != nil {
			_ = tmp.Close()
			return err
		}
		if err := tmp.Close(); err != nil {
			return eris.Wrap(err, "tabular: close temp file")
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return eris.Wrapf(err, "tabular: rename to %s", path)
	}
	return nil
}

func isXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}
