package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/pkg/decimal"
)

// ErrInvalidInput matches any ValidationErrors via errors.Is
var ErrInvalidInput = errors.New("invalid input")

// ValidationErrors is an ordered list of per-field problems
type ValidationErrors []domain.FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

// Is reports ValidationErrors as ErrInvalidInput
func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

// Add appends a problem for field
func (v *ValidationErrors) Add(field, format string, args ...any) {
	*v = append(*v, domain.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Has reports whether field already has a problem
func (v ValidationErrors) Has(field string) bool {
	for _, fe := range v {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil when there are no problems
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// newValidator configures go-playground/validator to report yaml field names
// and to understand the form vocabularies.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	must("money", func(fl validator.FieldLevel) bool {
		m, err := decimal.NewMoneyFromString(fl.Field().String())
		return err == nil && !m.IsNegative()
	})
	must("yesno", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseYesNo(fl.Field().String())
		return err == nil
	})
	must("taxpayer", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseTaxpayerType(fl.Field().String())
		return err == nil
	})
	must("filingstatus", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseFilingStatus(fl.Field().String())
		return err == nil
	})
	must("residency", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseResidency(fl.Field().String())
		return err == nil
	})
	must("ssccategory", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseSSCCategory(fl.Field().String())
		return err == nil
	})
	must("month", func(fl validator.FieldLevel) bool {
		_, err := parseMonth(fl.Field().String())
		return err == nil
	})
	return v
}

var validate = newValidator()

// validateForm runs tag validation and converts failures to field messages
func validateForm(form any) ValidationErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Field: "form", Message: err.Error()}}
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domain.FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "money":
		return "must be a non-negative amount"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "number":
		return "must be a whole number"
	case "yesno":
		return "must be yes or no"
	case "taxpayer":
		return "must be individual or corporate"
	case "filingstatus":
		return "must be single, married or parent"
	case "residency":
		return "must be resident or non_resident"
	case "ssccategory":
		return "must be a known SSC category"
	case "month":
		return "must be a month (1-12 or a month name)"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

var monthNames = map[string]time.Month{}

func init() {
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		monthNames[name] = m
		monthNames[name[:3]] = m
	}
}

// parseMonth accepts 1-12, "June" or "jun"
func parseMonth(s string) (time.Month, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if m, ok := monthNames[s]; ok {
		return m, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 12 {
		return time.Month(n), nil
	}
	return 0, fmt.Errorf("invalid month %q", s)
}
