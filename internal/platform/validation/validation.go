// Package validation centraliza el validator de requests HTTP.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator devuelve la instancia compartida con las reglas propias registradas.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Reportar errores con el nombre JSON del campo.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("decimal", validateDecimal)
		validate = v
	})
	return validate
}

// Struct valida s y devuelve un error legible para el cliente.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must match %s", fe.Field(), fe.Param())
	case "decimal":
		if lo, hi, ok := strings.Cut(fe.Param(), ":"); ok {
			return fmt.Sprintf("%s must be a number between %s and %s", fe.Field(), lo, hi)
		}
		return fmt.Sprintf("%s must be a number", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// validateDecimal acepta strings vacíos o números decimales. Con parámetro
// "min:max" además exige el rango, p.ej. validate:"decimal=0:45".
func validateDecimal(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	lo, hi, ok := strings.Cut(fl.Param(), ":")
	if !ok {
		return true
	}
	if lower, err := decimal.NewFromString(lo); err == nil && d.LessThan(lower) {
		return false
	}
	if upper, err := decimal.NewFromString(hi); err == nil && d.GreaterThan(upper) {
		return false
	}
	return true
}
