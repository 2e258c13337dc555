package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"polycap/internal/api/errors"
)

// Validator is implemented by request DTOs carrying rules the binding tags
// cannot express, such as language-code shape.
type Validator interface {
	Validate() error
}

// tagMessages translates binding tag names into client-facing phrasing.
var tagMessages = map[string]string{
	"required": "is required",
	"min":      "is too short",
	"max":      "is too long",
	"oneof":    "must be one of the allowed values",
	"gt":       "must be greater than the allowed minimum",
}

// ValidateRequest binds the JSON body and runs tag validation, then the DTO's
// own Validate when it has one. Failures come back as validation APIErrors
// with one message per offending field.
func ValidateRequest(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		fields := map[string]string{"request": "invalid JSON format"}

		if bindingErrs, ok := err.(validator.ValidationErrors); ok {
			fields = make(map[string]string, len(bindingErrs))
			for _, fieldError := range bindingErrs {
				message, known := tagMessages[fieldError.Tag()]
				if !known {
					message = "is invalid"
				}
				fields[strings.ToLower(fieldError.Field())] = message
			}
		}

		return errors.NewValidationError("Validation failed", fields)
	}

	if v, ok := req.(Validator); ok {
		return v.Validate()
	}
	return nil
}
