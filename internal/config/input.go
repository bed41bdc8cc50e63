package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/pkg/dateutil"
	"gopkg.in/yaml.v3"
)

// BatchFile is the on-disk shape of a batch request
type BatchFile struct {
	// Today overrides the run date used for "as of" defaults and future-date checks
	Today        string               `yaml:"today" json:"today"`
	Calculations []CalculationRequest `yaml:"calculations" json:"calculations"`
}

// CalculationRequest is one job in a batch. Only the form matching Kind is read.
type CalculationRequest struct {
	Kind       domain.CalculationKind `yaml:"kind" json:"kind"`
	Name       string                 `yaml:"name" json:"name"`
	LateFiling *LateFilingForm        `yaml:"late_filing,omitempty" json:"late_filing,omitempty"`
	IncomeTax  *IncomeTaxForm         `yaml:"income_tax,omitempty" json:"income_tax,omitempty"`
	SSC        *SSCForm               `yaml:"ssc,omitempty" json:"ssc,omitempty"`
	Rental     *RentalForm            `yaml:"rental,omitempty" json:"rental,omitempty"`
	Notice     *NoticeForm            `yaml:"notice,omitempty" json:"notice,omitempty"`
	Audit      *AuditForm             `yaml:"audit,omitempty" json:"audit,omitempty"`
	Deadlines  *DeadlineForm          `yaml:"deadlines,omitempty" json:"deadlines,omitempty"`
}

// Batch is a parsed batch with every request converted to a typed calculation
type Batch struct {
	Today        civil.Date
	Calculations []domain.Calculation
}

// InputParser handles parsing of batch request files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a batch from a YAML file
func (ip *InputParser) LoadFromFile(filename string, today civil.Date) (*Batch, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	batch, err := ip.Parse(data, today)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return batch, nil
}

// Parse decodes a YAML batch and converts each request. today is used unless
// the file sets its own. Structural problems (unknown keys, bad today, no
// calculations) fail the whole batch; per-request problems are attached to
// the request so the rest of the batch still runs.
func (ip *InputParser) Parse(data []byte, today civil.Date) (*Batch, error) {
	var file BatchFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: batch file is empty", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateBatch(&file); err != nil {
		return nil, fmt.Errorf("batch validation failed: %w", err)
	}

	if strings.TrimSpace(file.Today) != "" {
		d, err := dateutil.ParseDate(file.Today)
		if err != nil {
			return nil, fmt.Errorf("%w: today: %v", ErrInvalidInput, err)
		}
		today = d
	}

	batch := &Batch{Today: today, Calculations: make([]domain.Calculation, 0, len(file.Calculations))}
	for i, req := range file.Calculations {
		calc := ip.BuildCalculation(req, today)
		if calc.Name == "" {
			calc.Name = fmt.Sprintf("%s #%d", req.Kind, i+1)
		}
		batch.Calculations = append(batch.Calculations, calc)
	}
	return batch, nil
}

// ValidateBatch checks the batch structure: at least one calculation, each
// with a kind and the matching form.
func (ip *InputParser) ValidateBatch(file *BatchFile) error {
	if len(file.Calculations) == 0 {
		return fmt.Errorf("%w: no calculations provided", ErrInvalidInput)
	}
	for i, req := range file.Calculations {
		if req.Kind == "" {
			return fmt.Errorf("%w: calculation %d: kind is required", ErrInvalidInput, i+1)
		}
		if !req.hasForm() {
			return fmt.Errorf("%w: calculation %d: missing %q section", ErrInvalidInput, i+1, req.Kind)
		}
	}
	return nil
}

func (r CalculationRequest) hasForm() bool {
	switch r.Kind {
	case domain.KindLateFiling:
		return r.LateFiling != nil
	case domain.KindIncomeTax:
		return r.IncomeTax != nil
	case domain.KindSSC:
		return r.SSC != nil
	case domain.KindRental:
		return r.Rental != nil
	case domain.KindNotice:
		return r.Notice != nil
	case domain.KindAudit:
		return r.Audit != nil
	case domain.KindDeadlines:
		return r.Deadlines != nil
	}
	return false
}

// BuildCalculation converts one request. Validation problems end up on the
// returned calculation's Errors.
func (ip *InputParser) BuildCalculation(req CalculationRequest, today civil.Date) domain.Calculation {
	calc := domain.Calculation{Name: req.Name, Kind: req.Kind}
	var errs ValidationErrors
	if !req.hasForm() {
		errs.Add("kind", "no %q section supplied", req.Kind)
		calc.Errors = errs
		return calc
	}

	switch req.Kind {
	case domain.KindLateFiling:
		in, e := req.LateFiling.ToInput(today)
		calc.LateFiling, errs = &in, e
	case domain.KindIncomeTax:
		in, e := req.IncomeTax.ToInput(today)
		calc.IncomeTax, errs = &in, e
	case domain.KindSSC:
		in, e := req.SSC.ToInput(today)
		calc.SSC, errs = &in, e
	case domain.KindRental:
		in, e := req.Rental.ToInput(today)
		calc.Rental, errs = &in, e
	case domain.KindNotice:
		in, e := req.Notice.ToInput(today)
		calc.Notice, errs = &in, e
	case domain.KindAudit:
		in, e := req.Audit.ToInput(today)
		calc.Audit, errs = &in, e
	case domain.KindDeadlines:
		in, e := req.Deadlines.ToInput(today)
		calc.Deadlines, errs = &in, e
	}
	if len(errs) > 0 {
		calc.Errors = errs
	}
	return calc
}
