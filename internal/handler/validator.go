package handler

import (
    "errors"
    "reflect"
    "strings"

    "github.com/go-playground/validator/v10"
)

// RequestValidator adapts go-playground/validator to echo.Validator.
// Field names in errors are the JSON names so they can be echoed back to
// the client unchanged.
type RequestValidator struct {
    v *validator.Validate
}

// NewRequestValidator returns a validator ready to be set on echo.Echo.
func NewRequestValidator() *RequestValidator {
    v := validator.New(validator.WithRequiredStructEnabled())
    v.RegisterTagNameFunc(func(f reflect.StructField) string {
        name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
        if name == "-" {
            return ""
        }
        return name
    })
    return &RequestValidator{v: v}
}

// Validate implements echo.Validator.
func (rv *RequestValidator) Validate(i interface{}) error {
    return rv.v.Struct(i)
}

// firstInvalidField returns the JSON name and a readable message for the
// first failed rule in err.
func firstInvalidField(err error) (field, msg string, ok bool) {
    var ves validator.ValidationErrors
    if !errors.As(err, &ves) || len(ves) == 0 {
        return "", "", false
    }
    fe := ves[0]
    field = fe.Field()
    switch fe.Tag() {
    case "required":
        msg = field + " is required"
    case "oneof":
        msg = field + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
    case "max":
        msg = field + " is too long"
    case "min":
        msg = field + " is too short"
    default:
        msg = field + " is invalid"
    }
    return field, msg, true
}
