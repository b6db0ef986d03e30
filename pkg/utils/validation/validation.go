package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError mirrors the shape clients of the old API already parse:
// {"loc": ["body", "email"], "msg": "...", "type": "value_error.email"}.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fmt.Sprintf("%s: %s", strings.Join(fe.Loc, "."), fe.Msg))
	}
	return strings.Join(msgs, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates s and returns Errors describing every failing field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Loc:  []string{"body", fe.Field()},
			Msg:  message(fe),
			Type: errorType(fe),
		})
	}
	return out
}

// BodyError wraps a decode failure of the whole request body.
func BodyError(err error) Errors {
	return Errors{{
		Loc:  []string{"body"},
		Msg:  err.Error(),
		Type: "value_error.jsondecode",
	}}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

func errorType(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value_error.missing"
	case "email":
		return "value_error.email"
	default:
		return "value_error." + fe.Tag()
	}
}
