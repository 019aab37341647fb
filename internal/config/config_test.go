package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Struxure Website Leads - Sheet1.csv", cfg.Input.LeadsPath)
	assert.Equal(t, "Deepwater Zips V2 - V20.csv", cfg.Input.DealersPath)
	assert.Empty(t, cfg.Input.LeadsSheet)
	assert.Empty(t, cfg.Input.DealersSheet)
	assert.Equal(t, "Struxure_Leads_Cleaned_Fixed.csv", cfg.Output.Path)
	assert.Equal(t, "Timestamp", cfg.Leads.TimestampColumn)
	assert.Equal(t, "Email", cfg.Leads.EmailColumn)
	assert.Equal(t, "Zip", cfg.Leads.ZipColumn)
	assert.Equal(t, "Route To", cfg.Leads.RouteColumn)
	assert.Equal(t, "First Name", cfg.Leads.FirstNameColumn)
	assert.Equal(t, "Last Name", cfg.Leads.LastNameColumn)
	assert.Equal(t, "zip", cfg.Dealers.ZipColumn)
	assert.Equal(t, "Assigned Dealer Account", cfg.Dealers.DealerColumn)
	assert.Equal(t, "Deep Water", cfg.Fill.Route)
	assert.Equal(t, "Deepwater Dealer", cfg.Fill.DealerColumn)
	assert.Equal(t, 10, cfg.Report.MaxUpdates)
	assert.Equal(t, 20, cfg.Report.MaxUnresolved)
	assert.Equal(t, "utf-8", cfg.Report.Charset)
	assert.Equal(t, []string{"Struxure", "Deep Water"}, cfg.Report.SummaryRoutes)
	assert.Equal(t, "", cfg.Store.Driver)
	assert.Equal(t, "leadfill.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
input:
  leads_path: leads.xlsx
  leads_sheet: Form Responses
fill:
  route: Struxure
report:
  max_updates: 3
  summary_routes: [Struxure, Deep Water, Other]
store:
  driver: sqlite
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "leads.xlsx", cfg.Input.LeadsPath)
	assert.Equal(t, "Form Responses", cfg.Input.LeadsSheet)
	assert.Equal(t, "Struxure", cfg.Fill.Route)
	assert.Equal(t, 3, cfg.Report.MaxUpdates)
	assert.Equal(t, []string{"Struxure", "Deep Water", "Other"}, cfg.Report.SummaryRoutes)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	// Defaults still apply for unset values
	assert.Equal(t, "Deepwater Zips V2 - V20.csv", cfg.Input.DealersPath)
	assert.Equal(t, 20, cfg.Report.MaxUnresolved)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
fill:
  route: Struxure
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	t.Setenv("LEADFILL_FILL_ROUTE", "Deep Water")
	t.Setenv("LEADFILL_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "Deep Water", cfg.Fill.Route)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("LEADFILL_OUTPUT_PATH", "out.csv")
	t.Setenv("LEADFILL_REPORT_MAX_UNRESOLVED", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "out.csv", cfg.Output.Path)
	assert.Equal(t, 5, cfg.Report.MaxUnresolved)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("input: [unclosed"), 0o644))

	_, err := Load()
	require.Error(t, err)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "loud", Format: "json"})
	require.Error(t, err)
}
