package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator plugs go-playground/validator into echo.Context.Validate.
type RequestValidator struct {
	v *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so messages match the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return echo.NewHTTPError(http.StatusBadRequest, describe(verrs[0])).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusBadRequest, "invalid body").SetInternal(err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("campo %s é obrigatório", fe.Field())
	case "email":
		return fmt.Sprintf("campo %s deve ser um email válido", fe.Field())
	case "min":
		return fmt.Sprintf("campo %s deve ter no mínimo %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("campo %s deve ter no máximo %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("campo %s deve ter %s caracteres", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("campo %s inválido", fe.Field())
	}
}
