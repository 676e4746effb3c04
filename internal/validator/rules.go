package validator

import (
	"log"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var phoneCharsRe = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка регистрации правила - ошибка времени запуска приложения
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'phone_chars': телефон состоит только из цифр, пробелов и + - ( )
	mustRegister("phone_chars", validatePhoneChars)

	// 'phone_digits': телефон содержит от 5 до 15 цифр
	mustRegister("phone_digits", validatePhoneDigits)
}

func validatePhoneChars(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустые значения обрабатывает 'required'
	}
	return phoneCharsRe.MatchString(value)
}

func validatePhoneDigits(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	digits := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 5 && digits <= 15
}
