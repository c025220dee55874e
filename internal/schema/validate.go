package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one rejected field. Field uses wire names, e.g. messages[0].role.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when an inbound payload is malformed.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Message
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("function_call", validFunctionCall)
	_ = v.RegisterValidation("stop_sequences", validStop)
	return v
}

// Validate checks v (a pointer to a wire request) against its validate tags.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fieldPath(fe), Message: formatFieldError(fe)})
	}
	return out
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "eq":
		if fe.Field() == "stream" {
			return "is not supported; streaming responses are not available"
		}
		return fmt.Sprintf("must equal %s", fe.Param())
	case "function_call":
		return `must be "none", "auto" or {"name": "<function>"}`
	case "stop_sequences":
		return "must be a string or a list of strings"
	default:
		return fmt.Sprintf("failed validation '%s'", fe.Tag())
	}
}

// validFunctionCall accepts "none", "auto", null or an object with a name.
func validFunctionCall(fl validator.FieldLevel) bool {
	raw := bytes.TrimSpace(fl.Field().Bytes())
	if bytes.Equal(raw, []byte("null")) {
		return true
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s == "none" || s == "auto"
	}
	var opt struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(raw, &opt) != nil {
		return false
	}
	return strings.TrimSpace(opt.Name) != ""
}

func validStop(fl validator.FieldLevel) bool {
	raw := bytes.TrimSpace(fl.Field().Bytes())
	if bytes.Equal(raw, []byte("null")) {
		return true
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return true
	}
	var list []string
	return json.Unmarshal(raw, &list) == nil
}
