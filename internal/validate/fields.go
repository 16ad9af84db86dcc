package validate

import (
	"regexp"
	"strings"

	"github.com/sells-group/valuation-cli/internal/model"
)

// User-facing messages. The funnel serves a Spanish audience, so the
// messages stay in Spanish; callers treat them as opaque strings.
const (
	msgRequired     = "Este campo es obligatorio"
	msgInvalidEmail = "Introduce un email válido"
	msgInvalidPhone = "Introduce un teléfono válido"
	msgInvalidTaxID = "El CIF introducido no es válido"
	msgNotPositive  = "Debe ser un importe mayor que cero"
	msgBadOwnership = "El porcentaje debe estar entre 0 y 100"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 .-]{7,14}$`)
)

func valid() model.ValidationResult {
	return model.ValidationResult{Valid: true}
}

func invalid(msg string) model.ValidationResult {
	return model.ValidationResult{Valid: false, Message: msg}
}

// NonEmpty validates a required free-text field.
func NonEmpty(s string) model.ValidationResult {
	if strings.TrimSpace(s) == "" {
		return invalid(msgRequired)
	}
	return valid()
}

// Email validates the shape of an email address.
func Email(s string) model.ValidationResult {
	if strings.TrimSpace(s) == "" {
		return invalid(msgRequired)
	}
	if !emailRe.MatchString(s) {
		return invalid(msgInvalidEmail)
	}
	return valid()
}

// Phone validates the shape of a phone number.
func Phone(s string) model.ValidationResult {
	if strings.TrimSpace(s) == "" {
		return invalid(msgRequired)
	}
	if !phoneRe.MatchString(strings.TrimSpace(s)) {
		return invalid(msgInvalidPhone)
	}
	return valid()
}

// TaxID validates a CIF through the checksum validator.
func TaxID(s string) model.ValidationResult {
	if strings.TrimSpace(s) == "" {
		return invalid(msgRequired)
	}
	if !ValidateTaxID(s) {
		return invalid(msgInvalidTaxID)
	}
	return valid()
}

// Positive validates a strictly positive monetary amount.
func Positive(n float64) model.ValidationResult {
	if n <= 0 {
		return invalid(msgNotPositive)
	}
	return valid()
}

// Percentage validates an ownership percentage in (0, 100].
func Percentage(n float64) model.ValidationResult {
	if n <= 0 || n > 100 {
		return invalid(msgBadOwnership)
	}
	return valid()
}
