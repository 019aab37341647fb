// Package fill assigns dealers to partner-routed leads that arrived
// without one, using the postal-code territory map.
package fill

import (
	"go.uber.org/zap"

	"github.com/sells-group/leadfill-cli/internal/dealers"
	"github.com/sells-group/leadfill-cli/internal/leads"
	"github.com/sells-group/leadfill-cli/internal/model"
	"github.com/sells-group/leadfill-cli/internal/report"
)

// Options configures a fill pass.
type Options struct {
	Route         string // Route To value whose leads are enriched
	Columns       leads.Columns
	MaxUpdates    int // updates echoed to the report
	MaxUnresolved int // unresolved leads echoed to the report
}

// DefaultOptions fills "Deep Water" leads and echoes 10 updates and 20
// unresolved leads.
func DefaultOptions() Options {
	return Options{
		Route:         "Deep Water",
		Columns:       leads.DefaultColumns(),
		MaxUpdates:    10,
		MaxUnresolved: 20,
	}
}

// Update describes one dealer written into a lead.
type Update struct {
	Row       int    `json:"row"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Zip       string `json:"zip"`
	Dealer    string `json:"dealer"`
}

// Unresolved describes a candidate lead left without a dealer.
type Unresolved struct {
	Row       int    `json:"row"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Zip       string `json:"zip"`
	ZipClean  string `json:"zip_clean"`
}

// Result holds the counts and report samples of a fill pass.
type Result struct {
	Target     int          `json:"target"`
	Blank      int          `json:"blank"`
	Updated    int          `json:"updated"`
	Unresolved int          `json:"unresolved"`
	Updates    []Update     `json:"updates"`
	Remaining  []Unresolved `json:"remaining"`
}

// Fill returns a copy of set in which every lead routed to opts.Route with
// a blank dealer column takes the dealer mapped to its normalized postal
// code. Other leads, and leads that already name a dealer, are unchanged.
func Fill(set model.LeadSet, m dealers.Map, opts Options, p *report.Printer) (model.LeadSet, Result) {
	cols := opts.Columns
	routeCol, _ := set.Col(cols.RouteTo)
	dealerCol, _ := set.Col(cols.Dealer)

	var res Result
	var candidates []int
	for i, l := range set.Leads {
		if l.Value(routeCol) != opts.Route {
			continue
		}
		res.Target++
		if model.IsBlank(l.Value(dealerCol)) {
			candidates = append(candidates, i)
		}
	}
	res.Blank = len(candidates)

	p.Printf("Updating %s dealer information...", opts.Route)
	p.Printf("Found %d %s leads", res.Target, opts.Route)
	p.Printf("Found %d %s leads with empty dealer fields", res.Blank, opts.Route)

	out := make([]model.Lead, len(set.Leads))
	copy(out, set.Leads)

	var unresolved []int
	for _, i := range candidates {
		l := out[i]
		dealer, ok := m.Lookup(l.ZipClean)
		if !ok {
			unresolved = append(unresolved, i)
			continue
		}

		out[i] = l.With(dealerCol, dealer)
		res.Updated++
		if res.Updated <= opts.MaxUpdates {
			u := Update{
				Row:       l.Row,
				FirstName: set.Get(l, cols.FirstName),
				LastName:  set.Get(l, cols.LastName),
				Zip:       l.ZipClean,
				Dealer:    dealer,
			}
			res.Updates = append(res.Updates, u)
			p.Printf("Updated %s %s (ZIP: %s) -> %s", u.FirstName, u.LastName, u.Zip, u.Dealer)
		}
	}
	res.Unresolved = len(unresolved)

	p.Printf("Updated %d %s leads with dealer information", res.Updated, opts.Route)

	if res.Unresolved > 0 {
		p.Println("")
		p.Printf("Remaining %d %s leads without dealer information (showing first %d):",
			res.Unresolved, opts.Route, opts.MaxUnresolved)
		for _, i := range unresolved {
			if len(res.Remaining) >= opts.MaxUnresolved {
				break
			}
			l := out[i]
			u := Unresolved{
				Row:       l.Row,
				FirstName: set.Get(l, cols.FirstName),
				LastName:  set.Get(l, cols.LastName),
				Zip:       set.Get(l, cols.Zip),
				ZipClean:  l.ZipClean,
			}
			res.Remaining = append(res.Remaining, u)
			p.Printf("  %s %s - ZIP: %s (cleaned: %s)", u.FirstName, u.LastName, u.Zip, u.ZipClean)
		}
	}

	zap.L().Info("fill: dealers assigned",
		zap.String("route", opts.Route),
		zap.Int("target", res.Target),
		zap.Int("blank", res.Blank),
		zap.Int("updated", res.Updated),
		zap.Int("unresolved", res.Unresolved),
	)

	return set.WithLeads(out), res
}
