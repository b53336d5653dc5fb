package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ncobase/blogclient/ecode"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("notblank", notBlank)
}

// notBlank fails on empty or whitespace-only strings.
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Ptr, reflect.Interface:
		if field.IsNil() {
			return false
		}
		return strings.TrimSpace(fmt.Sprint(field.Elem().Interface())) != ""
	default:
		return field.IsValid() && !field.IsZero()
	}
}

// errorMessages maps validation tags to friendly error messages.
var errorMessages = map[string]string{
	"required": "The field '%s' is required.",
	"notblank": "The field '%s' must not be blank.",
	"email":    "The field '%s' must be a valid email address.",
	"url":      "The field '%s' must be a valid URL.",
	"min":      "The field '%s' must be at least %s characters long.",
	"max":      "The field '%s' must be no longer than %s characters.",
	"oneof":    "The field '%s' must be one of %s.",
}

// parseMessage constructs a friendly error message based on the validation tag.
func parseMessage(jsonTag string, e validator.FieldError) string {
	if msg, exists := errorMessages[e.Tag()]; exists {
		switch strings.Count(msg, "%s") {
		case 1:
			return fmt.Sprintf(msg, jsonTag)
		case 2:
			return fmt.Sprintf(msg, jsonTag, e.Param())
		}
	}
	return fmt.Sprintf("Field '%s' is invalid: %s", jsonTag, e.Tag())
}

// ValidateStruct validates a struct and returns a map of JSON field names to friendly error messages.
func ValidateStruct(s any) map[string]string {
	validationErrors := make(map[string]string)

	err := validate.Struct(s)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			structType := reflect.TypeOf(s)
			if structType.Kind() == reflect.Ptr {
				structType = structType.Elem()
			}
			for _, e := range validationErrs {
				jsonTag := e.StructField()
				if field, ok := structType.FieldByName(e.StructField()); ok {
					if tag := field.Tag.Get("json"); tag != "" {
						jsonTag = strings.Split(tag, ",")[0]
					}
				}
				validationErrors[jsonTag] = parseMessage(jsonTag, e)
			}
		} else {
			validationErrors["_"] = err.Error()
		}
	}

	return validationErrors
}

// Check validates s and returns a KindValidation error when it fails.
func Check(s any, what string) error {
	if fields := ValidateStruct(s); len(fields) > 0 {
		return ecode.Validation(ecode.FieldIsInvalid(what), fields)
	}
	return nil
}
