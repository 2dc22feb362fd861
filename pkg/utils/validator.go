package utils

import (
	"fmt"
	"regexp"
)

// Project codes follow the gazette format: scheme prefix, allocation year,
// serial. Example: CDF-2026-0431.
var projectCodeRegex = regexp.MustCompile(`^[A-Z]{2,6}-\d{4}-\d{3,5}$`)

// Payment references follow PAY-<year>-<serial>.
var paymentRefRegex = regexp.MustCompile(`^PAY-\d{4}-\d{3,6}$`)

// ValidateProjectCode validates a project code against the gazette format
func ValidateProjectCode(code string) error {
	if !projectCodeRegex.MatchString(code) {
		return fmt.Errorf("invalid project code format: %s", code)
	}
	return nil
}

// ValidatePaymentReference validates a payment reference number
func ValidatePaymentReference(ref string) error {
	if !paymentRefRegex.MatchString(ref) {
		return fmt.Errorf("invalid payment reference format: %s", ref)
	}
	return nil
}
