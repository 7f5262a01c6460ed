package courseValidator

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"studybyte/certificate"
	"studybyte/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("certnumber", func(fl validator.FieldLevel) bool {
		return certificate.ValidNumber(fl.Field().String())
	})
	return v
}

// fieldErrors turns validator output into the field -> message map that
// ValidationErrorResponse sends.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["request"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = fe.Field() + " is required!"
		case "gt":
			out[fe.Field()] = fe.Field() + " must be a positive number!"
		case "certnumber":
			out[fe.Field()] = "Invalid certificate number!"
		default:
			out[fe.Field()] = fe.Field() + " is invalid!"
		}
	}
	return out
}

// flexibleID is a positive ID sent either as a JSON number or as a numeric
// string.
type flexibleID uint

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", data)
	}
	*id = flexibleID(v)
	return nil
}

// idParam reads a positive numeric route parameter.
func idParam(c *fiber.Ctx, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func invalidID(c *fiber.Ctx, label string) error {
	return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+" ID!", nil)
}
