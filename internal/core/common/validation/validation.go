package validation

import (
	"fmt"

	errors "github.com/frahmantamala/companion-booking/internal"
)

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []FieldValidator
	errors []errors.ValidationError
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]FieldValidator, 0),
		errors: make([]errors.ValidationError, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		switch v := value.(type) {
		case string:
			if v == "" {
				return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeValidationFailed)
			}
		case int64:
			if v == 0 {
				return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeValidationFailed)
			}
		case *string:
			if v == nil || *v == "" {
				return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeValidationFailed)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MinInt(min int64, code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(int64); ok {
			if v < min {
				message := fmt.Sprintf("%s must be at least %d", fv.FieldName, min)
				return errors.NewValidationFieldError(fv.FieldName, message, code)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok {
			if len(v) > max {
				message := fmt.Sprintf("%s must not exceed %d characters", fv.FieldName, max)
				return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeValidationFailed)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) OneOf(allowed ...string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok {
			for _, a := range allowed {
				if v == a {
					return nil
				}
			}
			message := fmt.Sprintf("%s must be one of %v", fv.FieldName, allowed)
			return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			if err := validator(field.Value); err != nil {
				if appErr, ok := errors.IsAppError(err); ok {
					if appErr.Details != nil {
						if details, ok := appErr.Details.(errors.ValidationErrors); ok {
							validationErrors = append(validationErrors, details.Errors...)
						} else {
							validationErrors = append(validationErrors, errors.ValidationError{
								Field:   field.FieldName,
								Message: appErr.Message,
								Code:    string(appErr.Code),
							})
						}
					} else {
						validationErrors = append(validationErrors, errors.ValidationError{
							Field:   field.FieldName,
							Message: appErr.Message,
							Code:    string(appErr.Code),
						})
					}
				}
			}
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}
