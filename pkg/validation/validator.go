package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var sgMobile = regexp.MustCompile(`^(\+65)?[\s-]*[689][\d\s-]{7,11}$`)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers the clinic's custom tags.
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// sgphone: permissive structural check for Singapore mobile numbers.
	// The PhoneNumber value object is still the authority; this tag just
	// produces friendlier binding errors.
	_ = v.RegisterValidation("sgphone", func(fl validator.FieldLevel) bool {
		return sgMobile.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	v.RegisterAlias("pwd", "min=8")
}

// ToDetails converts validation/binding errors into a map[field]message for
// the API error.details payload.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "sgphone":
		return "must be a Singapore mobile number (+65 optional, starts with 6, 8 or 9)"
	case "pwd", "min":
		if param != "" {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		return "too short"
	case "max":
		if param != "" {
			return fmt.Sprintf("must be at most %s characters", param)
		}
		return "too long"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be at least " + param
	case "lt":
		return "must be less than " + param
	case "lte":
		return "must be at most " + param
	case "datetime":
		return "must be a valid timestamp (" + param + ")"
	case "startswith":
		return "must start with '" + param + "'"
	default:
		return "is invalid"
	}
}
