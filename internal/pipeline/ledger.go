package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadfill-cli/internal/model"
)

// record stores the run in the ledger. A previous run over identical inputs
// that produced a different output is logged as a warning.
func (p *Pipeline) record(ctx context.Context, summary model.Summary) (*model.Run, error) {
	cfg := p.cfg

	leadsDigest, err := FileDigest(cfg.Input.LeadsPath)
	if err != nil {
		return nil, err
	}
	dealersDigest, err := FileDigest(cfg.Input.DealersPath)
	if err != nil {
		return nil, err
	}
	outputDigest, err := FileDigest(cfg.Output.Path)
	if err != nil {
		return nil, err
	}

	prior, err := p.store.FindRunsByInputs(ctx, leadsDigest, dealersDigest)
	if err != nil {
		return nil, eris.Wrap(err, "ledger: find prior runs")
	}
	for _, r := range prior {
		if r.OutputDigest != outputDigest {
			zap.L().Warn("ledger: output differs from a prior run over the same inputs",
				zap.String("prior_run", r.ID),
				zap.String("prior_output_digest", r.OutputDigest),
				zap.String("output_digest", outputDigest),
			)
			break
		}
	}

	run := &model.Run{
		LeadsPath:     cfg.Input.LeadsPath,
		DealersPath:   cfg.Input.DealersPath,
		OutputPath:    cfg.Output.Path,
		LeadsDigest:   leadsDigest,
		DealersDigest: dealersDigest,
		OutputDigest:  outputDigest,
		Summary:       summary,
	}
	if err := p.store.RecordRun(ctx, run); err != nil {
		return nil, err
	}

	zap.L().Info("ledger: run recorded", zap.String("run_id", run.ID), zap.Int("prior_runs", len(prior)))
	return run, nil
}

// FileDigest returns the hex SHA-256 of the file at path.
func FileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", eris.Wrapf(err, "ledger: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", eris.Wrapf(err, "ledger: hash %s", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
