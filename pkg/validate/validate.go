package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type Option func(v *validator.Validate)

// New returns a validator that reports fields by their json names and
// knows the notblank tag.
func New(opts ...Option) *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank) //nolint:errcheck
	for _, op := range opts {
		op(v)
	}
	return v
}

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator(opts ...Option) *CustomValidator {
	return &CustomValidator{validator: New(opts...)}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
