// Package leads loads the lead export, derives submission dates and drops
// same-day duplicate submissions.
package leads

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadfill-cli/internal/model"
	"github.com/sells-group/leadfill-cli/internal/report"
	"github.com/sells-group/leadfill-cli/internal/tabular"
	"github.com/sells-group/leadfill-cli/internal/zipcode"
)

// Columns names the lead export columns the pipeline depends on.
type Columns struct {
	Timestamp string
	Email     string
	Zip       string
	RouteTo   string
	Dealer    string
	FirstName string
	LastName  string

	Sheet string // XLSX sheet name; empty reads the first sheet
}

// DefaultColumns returns the column names of the website lead export.
func DefaultColumns() Columns {
	return Columns{
		Timestamp: "Timestamp",
		Email:     "Email",
		Zip:       "Zip",
		RouteTo:   "Route To",
		Dealer:    "Deepwater Dealer",
		FirstName: "First Name",
		LastName:  "Last Name",
	}
}

func (c Columns) required() []string {
	return []string{c.Timestamp, c.Email, c.Zip, c.RouteTo, c.Dealer, c.FirstName, c.LastName}
}

// Stats counts leads before and after deduplication.
type Stats struct {
	Original int
	Deduped  int
}

// Load reads the lead file at path and returns the deduplicated leads with
// normalized postal codes attached.
func Load(path string, cols Columns, p *report.Printer) (model.LeadSet, Stats, error) {
	p.Println("Loading leads from " + path + "...")

	t, err := tabular.Read(path, tabular.XLSXOptions{SheetName: cols.Sheet})
	if err != nil {
		return model.LeadSet{}, Stats{}, eris.Wrap(err, "leads: read")
	}

	set, err := FromTable(t, cols)
	if err != nil {
		return model.LeadSet{}, Stats{}, eris.Wrapf(err, "leads: %s", path)
	}
	p.Printf("Original number of leads: %d", set.Len())

	p.Println("Removing duplicates (keeping different dates)...")
	deduped := Dedupe(set, cols)
	p.Printf("After removing same-day duplicates: %d", deduped.Len())

	zap.L().Info("leads: loaded",
		zap.String("path", path),
		zap.Int("original", set.Len()),
		zap.Int("deduped", deduped.Len()),
	)

	return Annotate(deduped, cols), Stats{Original: set.Len(), Deduped: deduped.Len()}, nil
}

// FromTable converts table rows into leads, parsing every timestamp. An
// empty timestamp is a missing value; any other unparseable value fails
// with a *model.ParseError.
func FromTable(t tabular.Table, cols Columns) (model.LeadSet, error) {
	idx, err := t.Require("leads", cols.required()...)
	if err != nil {
		return model.LeadSet{}, err
	}
	tsCol := idx[cols.Timestamp]

	leads := make([]model.Lead, 0, len(t.Rows))
	for i, row := range t.Rows {
		lead := model.Lead{Row: i + 1, Values: row}

		raw := tabular.Cell(row, tsCol)
		if !model.IsBlank(raw) {
			ts, err := ParseTimestamp(raw)
			if err != nil {
				return model.LeadSet{}, &model.ParseError{Row: i + 1, Column: cols.Timestamp, Value: raw, Err: err}
			}
			lead.Timestamp = ts
			lead.Date = CalendarDate(ts)
		}

		leads = append(leads, lead)
	}

	return model.NewLeadSet(t.Header, leads), nil
}

type dedupKey struct {
	email string
	date  string
}

// Dedupe keeps the first lead for each (email, date) pair anywhere in the
// set. Survivors keep their original order.
func Dedupe(set model.LeadSet, cols Columns) model.LeadSet {
	emailCol, _ := set.Col(cols.Email)

	seen := make(map[dedupKey]bool, set.Len())
	out := make([]model.Lead, 0, set.Len())
	for _, l := range set.Leads {
		k := dedupKey{email: l.Value(emailCol), date: l.Date}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, l)
	}
	return set.WithLeads(out)
}

// Annotate returns a copy of set with each lead's ZipClean populated.
func Annotate(set model.LeadSet, cols Columns) model.LeadSet {
	zipCol, _ := set.Col(cols.Zip)

	out := make([]model.Lead, len(set.Leads))
	for i, l := range set.Leads {
		l.ZipClean = zipcode.Normalize(l.Value(zipCol))
		out[i] = l
	}
	return set.WithLeads(out)
}
