package domain

import (
	"fmt"
	"strings"
)

// TaxpayerType distinguishes individuals from companies
type TaxpayerType string

const (
	Individual TaxpayerType = "individual"
	Corporate  TaxpayerType = "corporate"
)

// FilingStatus selects the resident bracket set
type FilingStatus string

const (
	Single  FilingStatus = "single"
	Married FilingStatus = "married"
	Parent  FilingStatus = "parent"
)

// Residency selects between resident and non-resident tables
type Residency string

const (
	Resident    Residency = "resident"
	NonResident Residency = "non_resident"
)

// SSCCategory is the Class 1 social security category of a worker
type SSCCategory string

const (
	SSCExempt         SSCCategory = "exempt"
	SSCStudentUnder18 SSCCategory = "student_under_18"
	SSCStudent18Plus  SSCCategory = "student_18_plus"
	SSCUnder18        SSCCategory = "under_18"
	SSCBornBefore1962 SSCCategory = "born_before_1962"
	SSCBornFrom1962   SSCCategory = "born_from_1962"
)

// PartTimeSource identifies the flat-rate part-time income category
type PartTimeSource string

const (
	PartTimeEmployment     PartTimeSource = "employment"
	PartTimeSelfEmployment PartTimeSource = "self_employment"
)

// AuditOutcome is the result of the audit-exemption decision table
type AuditOutcome string

const (
	AuditExempt   AuditOutcome = "exempt"
	AuditReview   AuditOutcome = "review_only"
	AuditRequired AuditOutcome = "audit_required"
)

// CalculationKind names a calculator in batch requests and reports
type CalculationKind string

const (
	KindLateFiling CalculationKind = "late_filing"
	KindIncomeTax  CalculationKind = "income_tax"
	KindSSC        CalculationKind = "ssc"
	KindRental     CalculationKind = "rental"
	KindNotice     CalculationKind = "notice"
	KindAudit      CalculationKind = "audit"
	KindDeadlines  CalculationKind = "deadlines"
)

// CalculationKinds lists every supported kind in display order
var CalculationKinds = []CalculationKind{
	KindLateFiling, KindIncomeTax, KindSSC, KindRental, KindNotice, KindAudit, KindDeadlines,
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}

// ParseTaxpayerType accepts "individual" or "corporate" (case-insensitive; "company" is an alias)
func ParseTaxpayerType(s string) (TaxpayerType, error) {
	switch normalize(s) {
	case "individual", "person":
		return Individual, nil
	case "corporate", "company":
		return Corporate, nil
	}
	return "", fmt.Errorf("unknown taxpayer type %q", s)
}

// ParseFilingStatus accepts single, married or parent
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch FilingStatus(normalize(s)) {
	case Single:
		return Single, nil
	case Married:
		return Married, nil
	case Parent:
		return Parent, nil
	}
	return "", fmt.Errorf("unknown filing status %q", s)
}

// ParseResidency accepts resident or non_resident ("non-resident" and "nonresident" too)
func ParseResidency(s string) (Residency, error) {
	switch normalize(s) {
	case "resident", "":
		return Resident, nil
	case "non_resident", "nonresident":
		return NonResident, nil
	}
	return "", fmt.Errorf("unknown residency %q", s)
}

// ParseSSCCategory accepts any of the SSCCategory values
func ParseSSCCategory(s string) (SSCCategory, error) {
	c := SSCCategory(normalize(s))
	switch c {
	case SSCExempt, SSCStudentUnder18, SSCStudent18Plus, SSCUnder18, SSCBornBefore1962, SSCBornFrom1962:
		return c, nil
	}
	return "", fmt.Errorf("unknown SSC category %q", s)
}

// ParseCalculationKind accepts any of the CalculationKind values
func ParseCalculationKind(s string) (CalculationKind, error) {
	k := CalculationKind(normalize(s))
	for _, known := range CalculationKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown calculation kind %q", s)
}

// ParseYesNo maps form answers to a bool; empty means no
func ParseYesNo(s string) (bool, error) {
	switch normalize(s) {
	case "yes", "y", "true", "1":
		return true, nil
	case "no", "n", "false", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("expected yes or no, got %q", s)
}

// UnmarshalText lets batch files spell kinds loosely ("late-filing", "Income Tax")
func (k *CalculationKind) UnmarshalText(text []byte) error {
	parsed, err := ParseCalculationKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// UnmarshalText accepts the aliases understood by ParseTaxpayerType
func (t *TaxpayerType) UnmarshalText(text []byte) error {
	parsed, err := ParseTaxpayerType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Label returns a display name for the outcome
func (o AuditOutcome) Label() string {
	switch o {
	case AuditExempt:
		return "Exempt from audit"
	case AuditReview:
		return "Review engagement only"
	case AuditRequired:
		return "Full audit required"
	}
	return string(o)
}
