package strategy

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"StratLab/internal/domain/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		_, ok := models.AsInt(fl.Field().Interface())
		return ok
	})
	_ = validate.RegisterValidation("number", func(fl validator.FieldLevel) bool {
		_, ok := models.AsFloat(fl.Field().Interface())
		return ok
	})
	_ = validate.RegisterValidation("semver3", isSemver3)
}

// isSemver3 accepts exactly three dot-separated runs of ASCII digits.
func isSemver3(fl validator.FieldLevel) bool {
	parts := strings.Split(fl.Field().String(), ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" || strings.Trim(p, "0123456789") != "" {
			return false
		}
	}
	return true
}
