//go:build !integration

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testLeads = `Timestamp,First Name,Last Name,Email,Zip,Route To,Deepwater Dealer
2024-01-15 09:00:00,Ann,Lee,ann@x.com,90210-1234,Deep Water,
2024-01-15 12:00:00,Ann,Lee,ann@x.com,90210-1234,Deep Water,
2024-01-16 09:00:00,Bob,Ray,bob@x.com,02134,Struxure,
`
	testDealers = `zip,Assigned Dealer Account
90210,DealerX
`
)

// chdirFixtures switches into a temp dir holding the default input files.
func chdirFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Struxure Website Leads - Sheet1.csv"), []byte(testLeads), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Deepwater Zips V2 - V20.csv"), []byte(testDealers), 0o644))

	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_DefaultRun(t *testing.T) {
	dir := chdirFixtures(t)

	out, err := execute(t)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "Struxure_Leads_Cleaned_Fixed.csv"))
	require.NoError(t, err)
	assert.Equal(t, `Timestamp,First Name,Last Name,Email,Zip,Route To,Deepwater Dealer
2024-01-15 09:00:00,Ann,Lee,ann@x.com,90210-1234,Deep Water,DealerX
2024-01-16 09:00:00,Bob,Ray,bob@x.com,02134,Struxure,
`, string(data))

	assert.Contains(t, out, "After removing same-day duplicates: 2\n")
	assert.Contains(t, out, "Deep Water leads with dealer info: 1\n")

	// The ledger is off by default.
	_, statErr := os.Stat(filepath.Join(dir, "leadfill.db"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootCmd_MissingInput(t *testing.T) {
	dir := chdirFixtures(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "Deepwater Zips V2 - V20.csv")))

	_, err := execute(t)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "Struxure_Leads_Cleaned_Fixed.csv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	chdirFixtures(t)

	_, err := execute(t, "unexpected")
	require.Error(t, err)
}

func TestRunsCmd_WithLedger(t *testing.T) {
	chdirFixtures(t)
	t.Setenv("LEADFILL_STORE_DRIVER", "sqlite")

	_, err := execute(t)
	require.NoError(t, err)

	out, err := execute(t, "runs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "UNRESOLVED")
	assert.Contains(t, out, "Struxure_Leads_Cleaned_Fixed.csv")
}

func TestRunsCmd_EmptyLedger(t *testing.T) {
	chdirFixtures(t)
	t.Setenv("LEADFILL_STORE_DRIVER", "sqlite")

	var errBuf bytes.Buffer
	rootCmd.SetErr(&errBuf)
	t.Cleanup(func() { rootCmd.SetErr(nil) })

	out, err := execute(t, "runs", "list")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "No runs found.\n", errBuf.String())
}

func TestRunsCmd_LedgerDisabled(t *testing.T) {
	chdirFixtures(t)

	_, err := execute(t, "runs", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger is disabled")
}

func TestRunsShow_NotFound(t *testing.T) {
	chdirFixtures(t)
	t.Setenv("LEADFILL_STORE_DRIVER", "sqlite")

	_, err := execute(t, "runs", "show", "missing-id")
	require.Error(t, err)
}

func TestZipCmd(t *testing.T) {
	chdirFixtures(t)

	out, err := execute(t, "zip", "90210-1234", "ABC12")
	require.NoError(t, err)
	assert.Contains(t, out, "RAW")
	assert.Contains(t, out, `"90210-1234"  90210`)
	assert.Contains(t, out, `"ABC12"       (none)`)
}
