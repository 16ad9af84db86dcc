// Package validate holds the pure field validators used by the intake
// funnel: the CIF checksum, contact-field predicates, and the per-step
// validation state. Nothing here performs I/O or logs.
package validate

import "strings"

// controlLetters maps a control number 0-9 to its CIF control letter.
const controlLetters = "JABCDEFGHI"

// Organization-type classes. The first letter of a CIF decides whether
// the trailing control character must be a digit, a letter, or may be
// either.
const (
	numericControlTypes = "ABEH"
	letterControlTypes  = "NPQRSW"
	eitherControlTypes  = "CDFGJUV"
)

// ValidateTaxID reports whether code is a structurally valid Spanish CIF:
// one organization-type letter, seven digits and a control character that
// matches the checksum for the organization class. Usable standalone by
// any intake form.
func ValidateTaxID(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 9 {
		return false
	}

	orgType := code[0]
	if !strings.ContainsRune(numericControlTypes+letterControlTypes+eitherControlTypes, rune(orgType)) {
		return false
	}

	digits := code[1:8]
	sum := 0
	for i := 0; i < len(digits); i++ {
		d := int(digits[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if i%2 == 0 {
			// Positions 1,3,5,7 of the code double with digit folding.
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}

	controlNumber := (10 - sum%10) % 10
	controlLetter := controlLetters[controlNumber]
	actual := code[8]

	switch {
	case strings.ContainsRune(numericControlTypes, rune(orgType)):
		return actual == byte('0'+controlNumber)
	case strings.ContainsRune(letterControlTypes, rune(orgType)):
		return actual == controlLetter
	default:
		return actual == byte('0'+controlNumber) || actual == controlLetter
	}
}
