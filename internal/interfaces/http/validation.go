package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-suministros/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Nombres de campo según el tag json en los mensajes
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody decodifica el JSON y valida los tags. Si falla ya escribió la respuesta 400 y ok=false.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badBody(c)
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(validationResponse(err))
	}
	return true, nil
}

func validationResponse(err error) dto.ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}
	}
	fields := make(map[string]string, len(verrs))
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msg := validationMessage(e)
		fields[e.Field()] = msg
		msgs = append(msgs, e.Field()+": "+msg)
	}
	return dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: strings.Join(msgs, "; "),
		Fields:  fields,
	}
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "es requerido"
	case "min":
		if e.Kind() == reflect.String {
			return "debe tener al menos " + e.Param() + " caracteres"
		}
		return "debe ser mayor o igual a " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "debe tener máximo " + e.Param() + " caracteres"
		}
		return "debe ser menor o igual a " + e.Param()
	case "gt":
		return "debe ser mayor que " + e.Param()
	case "uuid":
		return "debe ser un UUID"
	case "oneof":
		return "debe ser uno de: " + e.Param()
	case "datetime":
		return "formato de fecha " + e.Param()
	default:
		return "valor inválido"
	}
}
