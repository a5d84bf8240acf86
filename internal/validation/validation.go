// Package validation holds the fixed request schemas, one per endpoint.
// Check collects every violation in a single pass instead of stopping
// at the first one.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type RegisterRequest struct {
	Name string `json:"name" validate:"required"`
}

type SendMessageRequest struct {
	To   string `json:"to" validate:"required"`
	Text string `json:"text" validate:"required"`
	Type string `json:"type" validate:"required,oneof=message private_message"`
}

// EditMessageRequest mirrors SendMessageRequest with every field
// optional; empty fields are left untouched by the edit.
type EditMessageRequest struct {
	To   string `json:"to" validate:"omitempty"`
	Text string `json:"text" validate:"omitempty"`
	Type string `json:"type" validate:"omitempty,oneof=message private_message"`
}

type ListMessagesQuery struct {
	Limit *int64 `json:"limit" validate:"omitnil,gte=1"`
}

// Error carries the full list of field-level violations for a request.
type Error struct {
	Messages []string
}

func NewError(messages ...string) *Error {
	return &Error{Messages: messages}
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their json names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Check validates the request against its schema and returns every
// violation as a human-readable message, or nil when the request is
// valid. The input is never mutated.
func Check(request any) *Error {
	err := validate.Struct(request)
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewError(err.Error())
	}

	messages := make([]string, 0, len(violations))
	for _, violation := range violations {
		messages = append(messages, describe(violation))
	}
	return NewError(messages...)
}

func describe(violation validator.FieldError) string {
	field := violation.Field()
	switch violation.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]", field, violation.Param())
	case "gte":
		return fmt.Sprintf("%q must be greater than or equal to %s", field, violation.Param())
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
