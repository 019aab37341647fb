package pipeline

import (
	"github.com/sells-group/leadfill-cli/internal/leads"
	"github.com/sells-group/leadfill-cli/internal/model"
	"github.com/sells-group/leadfill-cli/internal/report"
)

// Summarize counts leads in total, per summary route, and target-route
// leads that now name a dealer.
func Summarize(set model.LeadSet, cols leads.Columns, target string, routes []string) model.Summary {
	s := model.Summary{
		TotalLeads:  set.Len(),
		RouteCounts: make(map[string]int, len(routes)),
	}
	for _, r := range routes {
		s.RouteCounts[r] = set.CountWhere(cols.RouteTo, r)
	}

	routeCol, _ := set.Col(cols.RouteTo)
	dealerCol, _ := set.Col(cols.Dealer)
	for _, l := range set.Leads {
		if l.Value(routeCol) == target && !model.IsBlank(l.Value(dealerCol)) {
			s.TargetWithDealer++
		}
	}
	return s
}

// PrintSummary writes the closing summary block.
func PrintSummary(p *report.Printer, s model.Summary, target string, routes []string) {
	p.Println("")
	p.Println("Summary:")
	p.Printf("Total leads: %d", s.TotalLeads)
	for _, r := range routes {
		p.Printf("%s leads: %d", r, s.RouteCounts[r])
	}
	p.Printf("%s leads with dealer info: %d", target, s.TargetWithDealer)
}
