package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"flashgen/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Validator validates request structs against their `validate` tags and
// reports failures as domain.ValidationErrors keyed by JSON field name.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the "subject" rule registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("subject", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseSubject(fl.Field().String())
		return err == nil
	})
	return &Validator{validate: v}
}

// ValidateStruct returns nil when s is valid.
func (v *Validator) ValidateStruct(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{{Field: "", Rule: "struct", Message: err.Error()}}
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, domain.ValidationError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

// ValidateSubject validates a bare subject value from a query or form field.
func (v *Validator) ValidateSubject(field, value string) domain.ValidationErrors {
	if err := v.validate.Var(value, "omitempty,subject"); err != nil {
		return domain.ValidationErrors{{Field: field, Rule: "subject", Message: subjectMessage()}}
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "subject":
		return subjectMessage()
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

func subjectMessage() string {
	names := make([]string, 0, len(domain.Subjects()))
	for _, s := range domain.Subjects() {
		names = append(names, string(s))
	}
	return "must be one of " + strings.Join(names, ", ")
}
