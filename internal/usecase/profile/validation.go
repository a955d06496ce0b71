package profile

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/go-playground/validator/v10"
)

// optionSets backs the "option" validation tag, e.g. `validate:"option=diet"`.
var optionSets = map[string][]string{
	"gender":    domain.Genders,
	"ethnicity": domain.Ethnicities,
	"religion":  domain.Religions,
	"offspring": domain.Offspring,
	"frequency": domain.Frequencies,
	"diet":      domain.Diets,
	"income":    domain.Incomes,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// option is only ever used with a known set name
	_ = v.RegisterValidation("option", func(fl validator.FieldLevel) bool {
		return slices.Contains(optionSets[fl.Param()], fl.Field().String())
	})
	return v
}

// validateStruct runs the struct tags and turns the first failure into a
// validation error naming the JSON field.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.Validation(err.Error())
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return domain.Validation(fmt.Sprintf("%s is required", fe.Field()))
	case "option":
		return domain.Validation(fmt.Sprintf("%s has an unknown value %q", fe.Field(), fe.Value()))
	case "gt":
		return domain.Validation(fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param()))
	case "min", "gte":
		return domain.Validation(fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
	case "max", "lte":
		return domain.Validation(fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
	}
	return domain.Validation(fmt.Sprintf("%s is invalid", fe.Field()))
}

func checkRange(name string, lo, hi *int) error {
	if lo != nil && hi != nil && *lo > *hi {
		return domain.Validation(fmt.Sprintf("min %s must not exceed max %s", name, name))
	}
	return nil
}
