// Package services contains stateless domain services for the order bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"strings"
	"unicode/utf8"

	"github.com/ghuser/pizzaorder/services/order/domain/models"
)

// Field names accepted by the order form.
const (
	FieldFullName = "fullName"
	FieldSize     = "size"
	FieldToppings = "toppings"
)

// Validation messages shown next to the offending field.
const (
	MsgFullNameTooShort = "full name must be at least 3 characters"
	MsgFullNameTooLong  = "full name must be at most 20 characters"
	MsgSizeIncorrect    = "size must be S or M or L"
)

const (
	minFullNameLength = 3
	maxFullNameLength = 20
)

// ValidationResult is the whole-draft outcome: one message per field plus the
// conjunction of all rules.
type ValidationResult struct {
	Errors models.FieldErrors
	Valid  bool
}

// ValidateFullName checks the trimmed rune length against [3, 20].
// An empty name fails the minimum rule.
func ValidateFullName(v string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(v))
	switch {
	case n < minFullNameLength:
		return MsgFullNameTooShort
	case n > maxFullNameLength:
		return MsgFullNameTooLong
	default:
		return ""
	}
}

// ValidateSize requires one of S, M or L after trimming.
func ValidateSize(v string) string {
	if _, err := models.ParseSize(v); err != nil {
		return MsgSizeIncorrect
	}
	return ""
}

// ValidateField runs the rule for a single named field. ok is false for fields
// without a rule (toppings accept any subset of the menu).
func ValidateField(name, value string) (msg string, ok bool) {
	switch name {
	case FieldFullName:
		return ValidateFullName(value), true
	case FieldSize:
		return ValidateSize(value), true
	default:
		return "", false
	}
}

// ValidateDraft evaluates every rule against d. Callers re-run it on every
// change; the result is never cached.
func ValidateDraft(d models.OrderDraft) ValidationResult {
	errs := models.FieldErrors{
		FullName: ValidateFullName(d.FullName),
		Size:     ValidateSize(d.Size),
	}
	return ValidationResult{
		Errors: errs,
		Valid:  errs.Empty() && toppingsOnMenu(d.Toppings),
	}
}

func toppingsOnMenu(s models.ToppingSet) bool {
	menu := models.DefaultMenu()
	for _, id := range s.IDs() {
		if !menu.HasTopping(id) {
			return false
		}
	}
	return true
}
