package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hopebloom/auth-service/internal/core/domain"
)

const tagSelfServiceRole = "selfservice_role"

// validate is safe for concurrent use; it only caches struct metadata.
var validate = newValidator()

type registerForm struct {
	Username string `label:"Username" validate:"required,min=3,max=64"`
	Password string `label:"Password" validate:"required,min=6,max=128"`
	Role     string `label:"Role"     validate:"omitempty,selfservice_role"`
}

type loginForm struct {
	Username string `label:"Username" validate:"required"`
	Password string `label:"Password" validate:"required"`
}

type assignAdminForm struct {
	TargetUserID string `label:"Target user id" validate:"required"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	_ = v.RegisterValidation(tagSelfServiceRole, func(fl validator.FieldLevel) bool {
		role, ok := domain.ParseRole(fl.Field().String())
		return ok && role.In(domain.SelfServiceRoles)
	})
	return v
}

// check runs the struct rules on form and converts failures into a
// *domain.ValidationError listing one message per failing field.
func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate input: %w", err)
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return domain.NewValidationError(msgs...)
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case tagSelfServiceRole:
		names := make([]string, 0, len(domain.SelfServiceRoles))
		for _, r := range domain.SelfServiceRoles {
			names = append(names, r.String())
		}
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(names, ", "))
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
