// Package dealers builds the postal-code to dealer lookup from the
// dealer territory table.
package dealers

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadfill-cli/internal/report"
	"github.com/sells-group/leadfill-cli/internal/tabular"
	"github.com/sells-group/leadfill-cli/internal/zipcode"
)

// Columns names the dealer table columns.
type Columns struct {
	Zip    string
	Dealer string

	Sheet string // XLSX sheet name; empty reads the first sheet
}

// DefaultColumns returns the column names of the territory export.
func DefaultColumns() Columns {
	return Columns{Zip: "zip", Dealer: "Assigned Dealer Account"}
}

// Map resolves a normalized postal code to a dealer identifier.
type Map struct {
	byZip map[string]string
	rows  int
}

// Lookup returns the dealer for zip. The empty code never matches.
func (m Map) Lookup(zip string) (string, bool) {
	if zip == "" {
		return "", false
	}
	d, ok := m.byZip[zip]
	return d, ok
}

// Len returns the number of distinct normalized codes.
func (m Map) Len() int { return len(m.byZip) }

// Rows returns the number of data rows the map was built from.
func (m Map) Rows() int { return m.rows }

// Load reads the dealer table at path and builds its Map.
func Load(path string, cols Columns, p *report.Printer) (Map, error) {
	p.Println("Loading dealer zips from " + path + "...")

	t, err := tabular.Read(path, tabular.XLSXOptions{SheetName: cols.Sheet})
	if err != nil {
		return Map{}, eris.Wrap(err, "dealers: read")
	}

	m, err := Build(t, cols)
	if err != nil {
		return Map{}, eris.Wrapf(err, "dealers: %s", path)
	}
	p.Printf("Number of zip codes in dealer file: %d", m.Rows())
	p.Printf("Distinct 5-digit zip codes mapped: %d", m.Len())

	zap.L().Info("dealers: map built",
		zap.String("path", path),
		zap.Int("rows", m.Rows()),
		zap.Int("zips", m.Len()),
	)
	return m, nil
}

// Build normalizes every zip and maps it to the row's dealer in file
// order, so a later row overwrites an earlier one with the same code. Rows
// with a blank dealer carry no assignment and are skipped.
func Build(t tabular.Table, cols Columns) (Map, error) {
	idx, err := t.Require("dealers", cols.Zip, cols.Dealer)
	if err != nil {
		return Map{}, err
	}
	zipCol, dealerCol := idx[cols.Zip], idx[cols.Dealer]

	byZip := make(map[string]string, len(t.Rows))
	for _, row := range t.Rows {
		dealer := strings.TrimSpace(tabular.Cell(row, dealerCol))
		if dealer == "" {
			// No assignment; an earlier dealer for this zip stands.
			continue
		}
		byZip[zipcode.Normalize(tabular.Cell(row, zipCol))] = dealer
	}

	return Map{byZip: byZip, rows: len(t.Rows)}, nil
}

// FromPairs builds a Map from normalized code → dealer pairs.
func FromPairs(pairs map[string]string) Map {
	byZip := make(map[string]string, len(pairs))
	for k, v := range pairs {
		byZip[k] = v
	}
	return Map{byZip: byZip, rows: len(pairs)}
}
