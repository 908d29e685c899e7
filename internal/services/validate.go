package services

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var payloadValidator = newPayloadValidator()

func newPayloadValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the json field names the client actually sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validatePayload runs struct-tag validation and converts failures into the
// field-level map the client renders next to each form input.
func validatePayload(payload interface{}) *ValidationError {
	err := payloadValidator.Struct(payload)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["payload"] = "invalid request"
		return &ValidationError{Fields: fields}
	}

	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "this field is required"
		case "len":
			fields[fe.Field()] = fmt.Sprintf("must be exactly %s characters", fe.Param())
		case "numeric":
			fields[fe.Field()] = "must contain digits only"
		case "email":
			fields[fe.Field()] = "must be a valid email address"
		case "oneof":
			fields[fe.Field()] = fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
		case "min":
			fields[fe.Field()] = fmt.Sprintf("must be at least %s", fe.Param())
		case "max":
			fields[fe.Field()] = fmt.Sprintf("must be at most %s", fe.Param())
		default:
			fields[fe.Field()] = "invalid value"
		}
	}

	return &ValidationError{Fields: fields}
}
