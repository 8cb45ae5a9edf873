package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// Onboarding fields
	"FullName":        "Full name",
	"Location":        "Location",
	"HeightCM":        "Height",
	"Specialties":     "Specialties",
	"ExperienceLevel": "Experience level",
	"InstagramURL":    "Instagram URL",
	"PortfolioURL":    "Portfolio URL",

	// Client profile fields
	"CompanyName":  "Company name",
	"Website":      "Website",
	"Industry":     "Industry",
	"ContactPhone": "Contact phone",
	"Reason":       "Reason",

	// Gig fields
	"Title":           "Title",
	"Description":     "Description",
	"Category":        "Category",
	"CompensationMin": "Minimum compensation",
	"CompensationMax": "Maximum compensation",
	"Currency":        "Currency",
	"StartDate":       "Start date",
	"EndDate":         "End date",

	// Application fields
	"GigID":     "Gig",
	"CoverNote": "Cover note",

	// Portfolio fields
	"ImageURL": "Image URL",
	"Caption":  "Caption",
	"Position": "Position",

	// Auth fields
	"Email":    "Email",
	"Password": "Password",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	var messages []string
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", label, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, param)
	case "gte":
		return fmt.Sprintf("%s must be %s or more", label, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Split(param, " "), ", "))
	case "email":
		return fmt.Sprintf("%s is not a valid email address", label)
	case "url":
		return fmt.Sprintf("%s is not a valid URL", label)
	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, spaces, and common punctuation", label)
	case "valid_phone":
		return fmt.Sprintf("%s is not a valid phone number (7-15 digits, optional +)", label)
	case "no_emoji":
		return fmt.Sprintf("%s may not contain emoji or special symbols", label)
	case "full_name":
		return fmt.Sprintf("%s must include both first and last name", label)
	default:
		return fmt.Sprintf("%s failed validation (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
