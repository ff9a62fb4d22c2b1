package middleware

import (
	"flashgen/internal/domain"
	"flashgen/internal/dto"
	"flashgen/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	validatedRequestLocal = "validated_request"
	validatedSubjectLocal = "validated_subject"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateGenerateRequest parses and validates the JSON body of a generation
// request and stores it with its resolved subject for the handler.
func (vm *ValidationMiddleware) ValidateGenerateRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.GenerateRequest
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError("Request body must be a JSON object with a text field")
		}
		if errs := vm.validator.ValidateStruct(req); len(errs) > 0 {
			return errs
		}

		subject, err := domain.ParseSubject(req.Subject)
		if err != nil {
			return err
		}
		c.Locals(validatedRequestLocal, req)
		c.Locals(validatedSubjectLocal, subject)
		return c.Next()
	}
}

// ValidateSubjectField validates the subject of a multipart upload.
func (vm *ValidationMiddleware) ValidateSubjectField() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form := dto.UploadForm{Subject: c.FormValue("subject")}
		if errs := vm.validator.ValidateStruct(form); len(errs) > 0 {
			return errs
		}

		subject, err := domain.ParseSubject(form.Subject)
		if err != nil {
			return err
		}
		c.Locals(validatedSubjectLocal, subject)
		return c.Next()
	}
}

// ValidatedRequest returns the body stored by ValidateGenerateRequest.
func ValidatedRequest(c *fiber.Ctx) (dto.GenerateRequest, bool) {
	req, ok := c.Locals(validatedRequestLocal).(dto.GenerateRequest)
	return req, ok
}

// ValidatedSubject returns the subject stored by either validator, falling
// back to General.
func ValidatedSubject(c *fiber.Ctx) domain.Subject {
	if s, ok := c.Locals(validatedSubjectLocal).(domain.Subject); ok {
		return s
	}
	return domain.SubjectGeneral
}
