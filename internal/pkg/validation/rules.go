package validation

import (
	"regexp"
)

// Validation rule patterns and limits
var (
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// Enrollment numbers are school-assigned, alphanumeric with optional dashes
	EnrollmentNumberPattern = `^[A-Za-z0-9\-]{3,30}$`

	// School codes are short uppercase slugs
	SchoolCodePattern = `^[A-Z0-9]{3,12}$`

	PasswordMinLength = 8

	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns.
var CompiledPatterns = struct {
	Email            *regexp.Regexp
	EnrollmentNumber *regexp.Regexp
	SchoolCode       *regexp.Regexp
}{
	Email:            regexp.MustCompile(EmailPattern),
	EnrollmentNumber: regexp.MustCompile(EnrollmentNumberPattern),
	SchoolCode:       regexp.MustCompile(SchoolCodePattern),
}

// IsValidEmail reports whether the value looks like an email address.
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsValidEnrollmentNumber reports whether the value is an acceptable enrollment number.
func IsValidEnrollmentNumber(value string) bool {
	return CompiledPatterns.EnrollmentNumber.MatchString(value)
}

// IsValidSchoolCode reports whether the value is an acceptable school code.
func IsValidSchoolCode(value string) bool {
	return CompiledPatterns.SchoolCode.MatchString(value)
}

// IsValidPassword enforces the minimum password policy.
func IsValidPassword(value string) bool {
	return len(value) >= PasswordMinLength
}

// IsValidName reports whether a person or entity name is within bounds.
func IsValidName(value string) bool {
	return len(value) >= NameMinLength && len(value) <= NameMaxLength
}

// IsValidScore reports whether a grade score fits the assignment's maximum.
func IsValidScore(score, maxScore float64) bool {
	return maxScore > 0 && score >= 0 && score <= maxScore
}
