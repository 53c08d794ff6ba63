package proof

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"proofsite/internal/logging"
)

// ValidationError describes a single rule failure on a theorem record.
type ValidationError struct {
	TheoremID string
	Field     string
	Rule      string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("theorem %q: field %s fails rule %s", e.TheoremID, e.Field, e.Rule)
}

// Validator checks theorem records against the structural rules:
// required fields non-blank, enum membership, sequential step numbering.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a ready-to-use theorem validator.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// required passes on " "; records need actual content
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{v: v}
}

// Validate checks a single theorem. All failures are returned, not just the
// first, so `proofsite validate` can report everything at once.
func (val *Validator) Validate(t *Theorem) []error {
	var errs []error

	if err := val.v.Struct(t); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []error{fmt.Errorf("theorem %q: %w", t.ID, err)}
		}
		for _, fe := range verrs {
			errs = append(errs, ValidationError{
				TheoremID: t.ID,
				Field:     fe.Namespace(),
				Rule:      fe.Tag(),
			})
		}
	}

	// Steps, when present, must be numbered 1..n in order
	for i, step := range t.ProofSteps {
		if step.StepNumber != i+1 {
			errs = append(errs, fmt.Errorf(
				"theorem %q: proof step at position %d has step_number %d, want %d",
				t.ID, i, step.StepNumber, i+1))
			break
		}
	}

	if len(errs) > 0 {
		logging.ValidateWarn("theorem %q failed validation with %d errors", t.ID, len(errs))
	} else {
		logging.Validate("theorem %q validated", t.ID)
	}

	return errs
}

// ValidateAll checks every theorem in the registry and returns failures
// keyed by theorem id, in registry order.
func (val *Validator) ValidateAll(reg *Registry) map[string][]error {
	failures := make(map[string][]error)
	for _, t := range reg.List() {
		if errs := val.Validate(t); len(errs) > 0 {
			failures[t.ID] = errs
		}
	}
	return failures
}
