package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

// FieldError is a per-field validation message shown next to a form input
type FieldError struct {
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

// Calculation is one validated job in a batch. Exactly one input pointer
// matching Kind is set.
type Calculation struct {
	Name       string           `json:"name" yaml:"name"`
	Kind       CalculationKind  `json:"kind" yaml:"kind"`
	LateFiling *LateFilingInput `json:"late_filing,omitempty" yaml:"late_filing,omitempty"`
	IncomeTax  *IncomeTaxInput  `json:"income_tax,omitempty" yaml:"income_tax,omitempty"`
	SSC        *SSCInput        `json:"ssc,omitempty" yaml:"ssc,omitempty"`
	Rental     *RentalInput     `json:"rental,omitempty" yaml:"rental,omitempty"`
	Notice     *NoticeInput     `json:"notice,omitempty" yaml:"notice,omitempty"`
	Audit      *AuditInput      `json:"audit,omitempty" yaml:"audit,omitempty"`
	Deadlines  *DeadlineInput   `json:"deadlines,omitempty" yaml:"deadlines,omitempty"`

	// Errors holds validation problems found while building the inputs.
	// A calculation with errors is reported but never evaluated.
	Errors []FieldError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Outcome is the result of one calculation in a batch run
type Outcome struct {
	Name       string            `json:"name" yaml:"name"`
	Kind       CalculationKind   `json:"kind" yaml:"kind"`
	LateFiling *LateFilingResult `json:"late_filing,omitempty" yaml:"late_filing,omitempty"`
	IncomeTax  *IncomeTaxResult  `json:"income_tax,omitempty" yaml:"income_tax,omitempty"`
	SSC        *SSCResult        `json:"ssc,omitempty" yaml:"ssc,omitempty"`
	Rental     *RentalResult     `json:"rental,omitempty" yaml:"rental,omitempty"`
	Notice     *NoticeResult     `json:"notice,omitempty" yaml:"notice,omitempty"`
	Audit      *AuditResult      `json:"audit,omitempty" yaml:"audit,omitempty"`
	Deadlines  *Deadlines        `json:"deadlines,omitempty" yaml:"deadlines,omitempty"`
	Errors     []FieldError      `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Failed reports whether the outcome carries validation or calculation errors
func (o Outcome) Failed() bool {
	return len(o.Errors) > 0
}

// Report is everything produced by one batch run
type Report struct {
	RunID       string     `json:"run_id" yaml:"run_id"`
	AsOf        civil.Date `json:"as_of" yaml:"as_of"`
	GeneratedAt time.Time  `json:"generated_at" yaml:"generated_at"`
	Outcomes    []Outcome  `json:"outcomes" yaml:"outcomes"`
}

// FailedCount returns how many outcomes could not be calculated
func (r *Report) FailedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Failed() {
			n++
		}
	}
	return n
}
