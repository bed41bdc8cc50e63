package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/mtcalc/malta-tax-engine/internal/config"
	"github.com/mtcalc/malta-tax-engine/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with a missing env file so only flags apply
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, k := range []string{config.EnvLogLevel, config.EnvLogFormat, config.EnvOutput, config.EnvToday} {
		t.Setenv(k, "")
	}
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIncomeCommandJSON(t *testing.T) {
	out, _, err := runCLI(t, "income",
		"--year", "2025", "--gross", "40000", "--ssc-category", "born_from_1962", "--cola", "yes",
		"--today", "2026-03-01", "-o", "json")
	require.NoError(t, err)

	var report struct {
		AsOf     string `json:"as_of"`
		Outcomes []struct {
			Name      string `json:"name"`
			Kind      string `json:"kind"`
			IncomeTax struct {
				NetIncome     float64 `json:"net_income"`
				EffectiveRate string  `json:"effective_rate"`
				Result        struct {
					TaxAmount float64 `json:"tax_amount"`
				} `json:"result"`
			} `json:"income_tax"`
		} `json:"outcomes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "2026-03-01", report.AsOf)
	require.Len(t, report.Outcomes, 1)
	o := report.Outcomes[0]
	assert.Equal(t, "Income tax", o.Name)
	assert.Equal(t, "income_tax", o.Kind)
	assert.InDelta(t, 4725.0, o.IncomeTax.Result.TaxAmount, 0.001)
	assert.InDelta(t, 32717.12, o.IncomeTax.NetIncome, 0.001)
}

func TestPenaltyCommandSummary(t *testing.T) {
	out, _, err := runCLI(t, "late-filing",
		"--taxpayer", "corporate", "--tax-year", "2022", "--outstanding", "yes", "--amount", "10000",
		"--today", "2026-10-18", "-o", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "MALTA TAX CALCULATION SUMMARY")
	assert.Contains(t, out, "Late filing [late_filing]: Total payable=€12,300.00")
	assert.Contains(t, out, "penalties €800.00, interest €1,500.00")
}

func TestRunCommandBatch(t *testing.T) {
	out, _, err := runCLI(t, "run", "-f", filepath.Join("..", "..", "test", "testdata", "batch.yaml"), "-o", "csv")
	require.Error(t, err, "the batch contains one invalid request")
	assert.EqualError(t, err, "1 of 9 calculation(s) failed")

	assert.Contains(t, out, "Name,Kind,Status,Headline,Value")
	assert.Contains(t, out, "Company 2022 unfiled,late_filing,ok")
	assert.Contains(t, out, "12300.00")
	assert.Contains(t, out, "Missing category,ssc,failed")
}

func TestRunCommandRequiresFile(t *testing.T) {
	_, _, err := runCLI(t, "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file")
}

func TestInvalidInputFailsCommand(t *testing.T) {
	out, _, err := runCLI(t, "income", "--year", "2024", "--gross", "40000", "--today", "2026-03-01", "-o", "console-lite")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 calculation(s) failed")
	assert.Contains(t, out, "year:")
}

func TestUnsupportedFormat(t *testing.T) {
	_, _, err := runCLI(t, "notice", "--start", "2020-01-15", "--notice", "2024-06-10", "-o", "pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)
}

func TestBadTodayFlag(t *testing.T) {
	_, _, err := runCLI(t, "notice", "--start", "2020-01-15", "--notice", "2024-06-10", "--today", "next week")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--today")
}

func TestNoticeCommandSavesReport(t *testing.T) {
	dir := t.TempDir()
	out, stderr, err := runCLI(t, "notice", "--start", "2020-01-15", "--notice", "2024-06-10",
		"--today", "2026-03-01", "-o", "console", "--save", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "5 August 2024")
	assert.Contains(t, stderr, "report saved")

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, ".txt", filepath.Ext(files[0].Name()))
}

func TestTablesCommandJSON(t *testing.T) {
	out, _, err := runCLI(t, "tables", "-o", "json")
	require.NoError(t, err)

	var tables struct {
		Brackets  []json.RawMessage            `json:"brackets"`
		Interest  []json.RawMessage            `json:"interest"`
		Penalties map[string][]json.RawMessage `json:"penalties"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &tables))
	assert.Len(t, tables.Brackets, 16)
	assert.Len(t, tables.Interest, 4)
	assert.Len(t, tables.Penalties, 2)
}

func TestTablesCommandRejectsCSV(t *testing.T) {
	_, _, err := runCLI(t, "tables", "-o", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml or json")
}
