package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/mtcalc/malta-tax-engine/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":     FormatCurrency,
	"date":     FormatDate,
	"yesno":    boolToString,
	"headline": func(o domain.Outcome) string { return headlineOf(o).display() },
	"label":    func(o domain.Outcome) string { return headlineOf(o).Label },
	"status":   status,
	"add":      func(i, j int) int { return i + j },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.Report
		Summary     Summary
		Assumptions []string
	}{report, AnalyzeReport(report), reportAssumptions()}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
