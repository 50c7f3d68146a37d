package validator

import (
	"log"

	"castlink_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует доменные правила валидации.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка регистрации правила - ошибка времени запуска,
			// с ней приложение стартовать не должно.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-review-status", validateReviewStatus)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		// Пустые значения ловит 'required'.
		return true
	}
	return models.ValidRole(models.UserRole(value))
}

// validateReviewStatus принимает только решения режиссера; возврат
// в pending не входит в допустимые значения.
func validateReviewStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidReviewStatus(models.ApplicationStatus(value))
}
