package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = civil.Date{Year: 2026, Month: 3, Day: 1}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "today: \"2026-03-01\"\n" +
		"calculations:\n" +
		"  - kind: late-filing\n" +
		"    name: \"Late return\"\n" +
		"    late_filing:\n" +
		"      taxpayer_type: individual\n" +
		"      tax_year: \"2022\"\n" +
		"      filed: \"yes\"\n" +
		"      submitted_date: \"2025-10-15\"\n" +
		"      has_outstanding: \"yes\"\n" +
		"      amount: \"5000\"\n" +
		"  - kind: ssc\n" +
		"    ssc:\n" +
		"      annual_gross: \"40000\"\n" +
		"      category: born_from_1962\n"

	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	parser := NewInputParser()
	batch, err := parser.LoadFromFile(path, civil.Date{Year: 2030, Month: 1, Day: 1})
	require.NoError(t, err)

	assert.Equal(t, testToday, batch.Today, "file date overrides the caller's")
	require.Len(t, batch.Calculations, 2)

	lf := batch.Calculations[0]
	assert.Equal(t, domain.KindLateFiling, lf.Kind)
	assert.Equal(t, "Late return", lf.Name)
	assert.Empty(t, lf.Errors)
	require.NotNil(t, lf.LateFiling)
	assert.Equal(t, 2022, lf.LateFiling.Profile.TaxYear)
	assert.Equal(t, testToday, lf.LateFiling.AsOf)
	assert.Equal(t, "5000.00", lf.LateFiling.Outstanding.Amount.String())

	ssc := batch.Calculations[1]
	assert.Equal(t, "ssc #2", ssc.Name)
	require.NotNil(t, ssc.SSC)
	assert.Equal(t, domain.SSCBornFrom1962, ssc.SSC.Category)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	batch, err := parser.LoadFromFile("nonexistent_file.yaml", testToday)
	assert.Error(t, err)
	assert.Nil(t, batch)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParse_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		invalid bool
		errText string
	}{
		{"empty", "", true, "empty"},
		{"no calculations", "calculations: []\n", true, "no calculations"},
		{"missing kind", "calculations:\n  - name: x\n", true, "kind is required"},
		{"missing section", "calculations:\n  - kind: audit\n", true, "missing \"audit\" section"},
		{"unknown kind", "calculations:\n  - kind: lottery\n", false, "unknown calculation kind"},
		{"unknown field", "calculations:\n  - kind: ssc\n    colour: red\n", false, "colour"},
		{"bad today", "today: soon\ncalculations:\n  - kind: notice\n    notice:\n      employment_start: \"2020-01-01\"\n      notice_date: \"2021-01-01\"\n", true, "today"},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.yaml), testToday)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidInput)
			}
		})
	}
}

func TestParse_KeepsInvalidRequests(t *testing.T) {
	data := []byte(`calculations:
  - kind: notice
    name: bad notice
    notice:
      employment_start: "2024-06-01"
      notice_date: "2024-05-01"
  - kind: deadlines
    deadlines:
      taxpayer_type: company
      tax_year: "2024"
      year_end_month: june
      ddt_exemption: "yes"
`)
	batch, err := NewInputParser().Parse(data, testToday)
	require.NoError(t, err)
	require.Len(t, batch.Calculations, 2)

	bad := batch.Calculations[0]
	require.Len(t, bad.Errors, 1)
	assert.Equal(t, "notice_date", bad.Errors[0].Field)

	good := batch.Calculations[1]
	assert.Empty(t, good.Errors)
	require.NotNil(t, good.Deadlines)
	assert.Equal(t, domain.Corporate, good.Deadlines.Profile.Type)
	assert.Equal(t, 6, int(good.Deadlines.Profile.YearEndMonth))
	assert.True(t, good.Deadlines.DDTExemption)
}

func TestBuildCalculation_MissingForm(t *testing.T) {
	calc := NewInputParser().BuildCalculation(CalculationRequest{Kind: domain.KindRental}, testToday)
	require.Len(t, calc.Errors, 1)
	assert.Equal(t, "kind", calc.Errors[0].Field)
	assert.Nil(t, calc.Rental)
}

func TestLoadSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "")
		t.Setenv(EnvLogFormat, "")
		t.Setenv(EnvOutput, "")
		t.Setenv(EnvToday, "")

		s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, "info", s.LogLevel)
		assert.Equal(t, "text", s.LogFormat)
		assert.Equal(t, "console", s.Output)
		assert.Nil(t, s.Today)
	})

	t.Run("from env file", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "")
		t.Setenv(EnvLogFormat, "")
		t.Setenv(EnvOutput, "")
		t.Setenv(EnvToday, "")
		// godotenv never overrides variables that are already set, so clear them
		for _, k := range []string{EnvLogLevel, EnvLogFormat, EnvOutput, EnvToday} {
			require.NoError(t, os.Unsetenv(k))
		}

		path := filepath.Join(t.TempDir(), "test.env")
		env := "MTCALC_LOG_LEVEL=debug\nMTCALC_LOG_FORMAT=JSON\nMTCALC_OUTPUT=csv\nMTCALC_TODAY=2026-03-01\n"
		require.NoError(t, os.WriteFile(path, []byte(env), 0o600))

		s, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", s.LogLevel)
		assert.Equal(t, "json", s.LogFormat)
		assert.Equal(t, "csv", s.Output)
		require.NotNil(t, s.Today)
		assert.Equal(t, testToday, *s.Today)
		assert.Equal(t, testToday, s.ResolveToday(time.Date(2031, 1, 1, 12, 0, 0, 0, time.UTC)))
	})

	t.Run("bad values", func(t *testing.T) {
		t.Setenv(EnvLogFormat, "xml")
		_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
		assert.ErrorIs(t, err, ErrInvalidInput)

		t.Setenv(EnvLogFormat, "text")
		t.Setenv(EnvToday, "tomorrow")
		_, err = LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
