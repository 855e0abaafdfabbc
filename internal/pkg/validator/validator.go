package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Employee numbers are 3-10 digit codes issued by HR.
var employeeNumberRegex = regexp.MustCompile(`^\d{3,10}$`)

func IsValidEmployeeNumber(num string) bool {
	return employeeNumberRegex.MatchString(num)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// HasDomain reports whether email belongs to the given domain,
// case-insensitively. Domain comparison ignores a leading "@".
func HasDomain(email, domain string) bool {
	domain = strings.TrimPrefix(strings.ToLower(domain), "@")
	at := strings.LastIndex(email, "@")
	if at < 0 || domain == "" {
		return false
	}
	return strings.ToLower(email[at+1:]) == domain
}

// Hex color like #FF8800 or #f80.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func IsValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}
