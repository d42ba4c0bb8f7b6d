package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/jobly/internal/pkg/apperrors"
)

var setupValidatorOnce sync.Once

// handlePattern is a URL-safe slug; handles are path segments
var handlePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// SetupValidator makes validation errors use JSON field names and rejects
// unknown JSON fields in request bodies
func SetupValidator() {
	setupValidatorOnce.Do(func() {
		binding.EnableDecoderDisallowUnknownFields = true
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonFieldName)
			_ = v.RegisterValidation("handle", validHandle)
		}
	})
}

// validHandle checks the handle as it will be stored: trimmed and lower-cased
func validHandle(fl validator.FieldLevel) bool {
	return handlePattern.MatchString(strings.ToLower(strings.TrimSpace(fl.Field().String())))
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// BindJSON decodes and validates the request body into obj. Every failure is
// a bad request; validation failures list each violated field.
func BindJSON(c *gin.Context, obj any) error {
	SetupValidator()
	if err := c.ShouldBindJSON(obj); err != nil {
		return ValidationError(err)
	}
	return nil
}

// ValidationError converts a binding error into a bad request
func ValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		messages := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			messages = append(messages, formatValidationError(fe))
		}
		return apperrors.NewValidationError(messages)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperrors.NewValidationError([]string{
			fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type.String()),
		})
	}

	var syntaxErr *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF):
		return apperrors.NewBadRequestError("Request body is required")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperrors.NewBadRequestError("Malformed JSON body")
	case strings.HasPrefix(err.Error(), "json: unknown field"):
		return apperrors.NewValidationError([]string{strings.TrimPrefix(err.Error(), "json: ")})
	}
	return apperrors.NewBadRequestError("Invalid request body")
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		if e.Kind() == reflect.String {
			return e.Field() + " must be at least " + e.Param() + " characters"
		}
		return e.Field() + " must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return e.Field() + " must be at most " + e.Param() + " characters"
		}
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "url":
		return e.Field() + " must be a valid URL"
	case "handle":
		return e.Field() + " may only contain letters, digits and single hyphens"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
