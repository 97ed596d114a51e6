package service

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
)

// custom function for translating validation error into user readable errors
func translateValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field())
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", e.Field(), e.Param())
		}
		if e.Kind() == reflect.Slice || e.Kind() == reflect.Map {
			return fmt.Sprintf("%s must have at least %s items", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", e.Field(), e.Param())
		}
		if e.Kind() == reflect.Slice || e.Kind() == reflect.Map {
			return fmt.Sprintf("%s must have at most %s items", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", e.Field(), e.Param())
	case "json":
		return fmt.Sprintf("%s must be valid json", e.Field())
	default:
		return fmt.Sprintf("Validation failed for %s with rule %s", e.Field(), e.Tag())
	}
}

// ValidateInput validates the input struct and returns the first
// user-friendly error message wrapped in ErrInvalidInput.
func ValidateInput(inp any) error {
	if err := validate.Struct(inp); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			errorMessage := translateValidationError(validationErrors[0])
			log.Debug(errorMessage)
			return fmt.Errorf("%w, %s", leetlab_errors.ErrInvalidInput, errorMessage)
		}
		// not a validation error, input was not a struct
		err = fmt.Errorf("%w, cannot validate %T, %w", leetlab_errors.ErrInternal, inp, err)
		log.Error(err)
		return err
	}
	return nil
}

func GetJWTSecret() ([]byte, error) {
	secret := os.Getenv(KeyJWTSecret)
	if secret == "" {
		err := fmt.Errorf("%w, jwt secret is not configured", leetlab_errors.ErrInternal)
		log.Error(err)
		return nil, err
	}
	return []byte(secret), nil
}
