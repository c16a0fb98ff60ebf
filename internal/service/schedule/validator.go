package schedule

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// ValidationError ошибка одного поля запроса
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationErrors все ошибки валидации запроса
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Теги зарегистрированы статически, ошибка возможна только при опечатке в имени
	for tag, fn := range map[string]validator.Func{
		"hhmm":    validateHHMM,
		"isodate": validateISODate,
		"price":   validatePrice,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("schedule: register %q validation: %v", tag, err))
		}
	}

	return &requestValidator{validate: v}
}

func validateHHMM(fl validator.FieldLevel) bool {
	return types.TimeString(fl.Field().String()).Validate() == nil
}

func validateISODate(fl validator.FieldLevel) bool {
	return types.Date(fl.Field().String()).Validate() == nil
}

func validatePrice(fl validator.FieldLevel) bool {
	price, err := decimal.NewFromString(fl.Field().String())
	return err == nil && !price.IsNegative()
}

// Struct валидирует запрос и переводит ошибки валидатора в ValidationErrors
func (v *requestValidator) Struct(req interface{}) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return fmt.Errorf("%w: %w", ErrInvalidInput, translate(validationErrs))
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func translate(errs validator.ValidationErrors) ValidationErrors {
	result := make(ValidationErrors, 0, len(errs))

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of [%s]", err.Field(), err.Param())
		case "unique":
			message = fmt.Sprintf("%s must not contain duplicates", err.Field())
		case "hhmm":
			message = fmt.Sprintf("%s must be a time in HH:MM 24-hour format", err.Field())
		case "isodate":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		case "price":
			message = fmt.Sprintf("%s must be a non-negative decimal", err.Field())
		}

		// Namespace начинается с имени структуры запроса: "WorkSettingsRequest.services[0].price"
		field := err.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}

		result = append(result, ValidationError{
			Field:   field,
			Message: message,
		})
	}

	return result
}
