// utils/validation.go
package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

var clockRegex = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// ValidateClock reports whether s is a well-formed HH:MM wall-clock time.
func ValidateClock(s string) bool {
	return clockRegex.MatchString(s)
}

// ClockToMinutes converts an HH:MM string to minutes since midnight.
func ClockToMinutes(s string) (int, error) {
	m := clockRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	var h, min int
	fmt.Sscanf(m[1], "%d", &h)
	fmt.Sscanf(m[2], "%d", &min)
	return h*60 + min, nil
}

// MinutesToClock formats minutes since midnight as HH:MM.
func MinutesToClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// ValidateSlug reports whether s is usable as a URL path segment.
func ValidateSlug(s string) bool {
	match, _ := regexp.MatchString(`^[a-z0-9]+(-[a-z0-9]+)*$`, s)
	return match && len(s) <= 60
}
