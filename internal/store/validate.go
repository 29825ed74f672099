package store

import (
	"fmt"

	"github.com/cleared-dev/fintrack/internal/model"
)

// ValidationError describes why a draft or an edit was rejected.
type ValidationError struct {
	ID     int64 // 0 for drafts that have no ID yet
	Field  model.Field
	Reason string
}

func (e ValidationError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s [#%d]: %s", e.Field, e.ID, e.Reason)
}

// ValidateManual checks a draft entered by hand: the amount must be positive.
func ValidateManual(d model.Draft) []ValidationError {
	errs := validateCommon(d)
	if !d.Amount.IsPositive() {
		errs = append(errs, ValidationError{
			Field:  model.FieldAmount,
			Reason: "must be greater than zero",
		})
	}
	return errs
}

// ValidateImported checks an imported draft. A zero amount is legal because
// rows with neither a withdrawal nor a deposit import as zero income.
func ValidateImported(d model.Draft) []ValidationError {
	errs := validateCommon(d)
	if d.Amount.IsNegative() {
		errs = append(errs, ValidationError{
			Field:  model.FieldAmount,
			Reason: fmt.Sprintf("%s is negative", d.Amount),
		})
	}
	return errs
}

func validateCommon(d model.Draft) []ValidationError {
	var errs []ValidationError
	if !d.Type.Valid() {
		errs = append(errs, ValidationError{
			Field:  model.FieldType,
			Reason: fmt.Sprintf("unknown type %q", d.Type),
		})
	}
	if d.Date.IsZero() {
		errs = append(errs, ValidationError{
			Field:  model.FieldDate,
			Reason: "missing",
		})
	}
	return errs
}
