package output_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/internal/output"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
)

func TestFormatters(t *testing.T) {
	if got := output.FormatCurrency(decimal.MustMoney("123.45")); got != "€123.45" {
		t.Fatalf("FormatCurrency = %q", got)
	}
}

func sampleReport() *domain.Report {
	annual := decimal.MustMoney("2830.36")
	return &domain.Report{
		RunID:       "abc",
		GeneratedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Outcomes: []domain.Outcome{{
			Name: "Contribution",
			Kind: domain.KindSSC,
			SSC:  &domain.SSCResult{Category: domain.SSCBornFrom1962, Annual: annual},
		}},
	}
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	if err := output.WriteReport(&buf, sampleReport(), "csv"); err != nil {
		t.Fatalf("WriteReport csv error: %v", err)
	}
	if !strings.Contains(buf.String(), "Contribution,ssc,ok,Annual SSC,2830.36") {
		t.Fatalf("unexpected csv: %s", buf.String())
	}

	err := output.WriteReport(&buf, sampleReport(), "pdf")
	if !errors.Is(err, output.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestGenerateReport_WritesTimestampedFile(t *testing.T) {
	dir := t.TempDir()
	for format, ext := range map[string]string{"json": "json", "detailed-csv": "csv", "console": "txt", "yml": "yaml"} {
		path, err := output.GenerateReport(sampleReport(), format, dir)
		if err != nil {
			t.Fatalf("GenerateReport %s error: %v", format, err)
		}
		if want := filepath.Join(dir, "mtcalc_report_20260301_093000."+ext); path != want {
			t.Fatalf("GenerateReport %s path = %q, want %q", format, path, want)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Fatalf("GenerateReport %s: file missing or empty (%v)", format, err)
		}
	}
}
