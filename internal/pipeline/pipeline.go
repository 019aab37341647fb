// Package pipeline runs the lead cleaning batch: load, deduplicate, fill
// dealers, export and summarize.
package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadfill-cli/internal/config"
	"github.com/sells-group/leadfill-cli/internal/dealers"
	"github.com/sells-group/leadfill-cli/internal/fill"
	"github.com/sells-group/leadfill-cli/internal/leads"
	"github.com/sells-group/leadfill-cli/internal/model"
	"github.com/sells-group/leadfill-cli/internal/report"
	"github.com/sells-group/leadfill-cli/internal/store"
	"github.com/sells-group/leadfill-cli/internal/tabular"
)

// Pipeline sequences the batch stages for one run.
type Pipeline struct {
	cfg   *config.Config
	store store.Store // nil disables the run ledger
	out   *report.Printer
}

// New creates a Pipeline. st may be nil.
func New(cfg *config.Config, st store.Store, out *report.Printer) *Pipeline {
	return &Pipeline{cfg: cfg, store: st, out: out}
}

// Result is the outcome of a completed run.
type Result struct {
	Leads   model.LeadSet
	Fill    fill.Result
	Summary model.Summary
	Run     *model.Run // nil when the ledger is disabled
}

// Run executes the batch once. Any failure aborts before the output file
// is written.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	cfg := p.cfg
	leadCols := p.leadColumns()
	log := zap.L().With(zap.String("leads", cfg.Input.LeadsPath), zap.String("dealers", cfg.Input.DealersPath))
	log.Info("pipeline: starting run")

	p.out.Println("Starting CSV processing with 5-digit zip code matching...")

	loaded, stats, err := leads.Load(cfg.Input.LeadsPath, leadCols, p.out)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: load leads")
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: cancelled")
	}

	dealerMap, err := dealers.Load(cfg.Input.DealersPath, dealers.Columns{
		Zip:    cfg.Dealers.ZipColumn,
		Dealer: cfg.Dealers.DealerColumn,
		Sheet:  cfg.Input.DealersSheet,
	}, p.out)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: load dealers")
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: cancelled")
	}

	filled, fillRes := fill.Fill(loaded, dealerMap, fill.Options{
		Route:         cfg.Fill.Route,
		Columns:       leadCols,
		MaxUpdates:    cfg.Report.MaxUpdates,
		MaxUnresolved: cfg.Report.MaxUnresolved,
	}, p.out)
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: cancelled")
	}

	if err := tabular.Write(cfg.Output.Path, Export(filled)); err != nil {
		return nil, eris.Wrap(err, "pipeline: write output")
	}

	summary := Summarize(filled, leadCols, cfg.Fill.Route, cfg.Report.SummaryRoutes)
	summary.OriginalLeads = stats.Original
	summary.DedupedLeads = stats.Deduped
	summary.DealerRows = dealerMap.Rows()
	summary.DealerZips = dealerMap.Len()
	summary.TargetLeads = fillRes.Target
	summary.BlankDealer = fillRes.Blank
	summary.Updated = fillRes.Updated
	summary.Unresolved = fillRes.Unresolved

	p.out.Println("")
	p.out.Printf("Cleaned CSV saved as: %s", cfg.Output.Path)
	p.out.Printf("Final number of leads: %d", filled.Len())
	PrintSummary(p.out, summary, cfg.Fill.Route, cfg.Report.SummaryRoutes)

	log.Info("pipeline: run complete",
		zap.String("output", cfg.Output.Path),
		zap.Int("total_leads", summary.TotalLeads),
		zap.Int("updated", summary.Updated),
		zap.Int("unresolved", summary.Unresolved),
	)

	res := &Result{Leads: filled, Fill: fillRes, Summary: summary}
	if p.store != nil {
		run, err := p.record(ctx, summary)
		if err != nil {
			return nil, eris.Wrap(err, "pipeline: record run")
		}
		res.Run = run
	}
	return res, nil
}

func (p *Pipeline) leadColumns() leads.Columns {
	c := p.cfg.Leads
	return leads.Columns{
		Timestamp: c.TimestampColumn,
		Email:     c.EmailColumn,
		Zip:       c.ZipColumn,
		RouteTo:   c.RouteColumn,
		Dealer:    p.cfg.Fill.DealerColumn,
		FirstName: c.FirstNameColumn,
		LastName:  c.LastNameColumn,
		Sheet:     p.cfg.Input.LeadsSheet,
	}
}

// Export converts set into the output table. Working annotations are not
// columns, so the header is exactly the input header.
func Export(set model.LeadSet) tabular.Table {
	return tabular.Table{Header: set.Header, Rows: set.Rows()}
}
