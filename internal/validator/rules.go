package validator

import (
	"log"
	"strings"

	"organmatch_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules wires the registry's domain rules into the
// validator instance.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Startup error, the app must not come up without its rules.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-blood-type", validateBloodType)
	mustRegister("is-organ", validateOrgan)
	mustRegister("is-gender", validateGender)
	mustRegister("is-unos-status", validateUnosStatus)
}

func validateBloodType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empties
	}
	for _, bt := range models.BloodTypes {
		if value == bt {
			return true
		}
	}
	return false
}

func validateOrgan(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, organ := range models.SupportedOrgans {
		if models.OrganType(value) == organ {
			return true
		}
	}
	return false
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch strings.ToLower(value) {
	case "male", "female", "other":
		return true
	default:
		return false
	}
}

// UNOS heart statuses plus the generic inactive code 7.
func validateUnosStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case "1A", "1B", "2", "3", "4", "7":
		return true
	default:
		return false
	}
}
