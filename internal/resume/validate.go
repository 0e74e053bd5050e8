package resume

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError describes one validation problem at a named field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidatePersonal checks the fields the wizard requires before the personal
// step can be left: a non-blank full name and a plausible email address.
func ValidatePersonal(p PersonalInfo) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(p.FullName) == "" {
		errs = append(errs, FieldError{Field: "personal.fullName", Message: "full name is required"})
	}

	email := strings.TrimSpace(p.Email)
	if email == "" {
		errs = append(errs, FieldError{Field: "personal.email", Message: "email is required"})
	} else if !emailRe.MatchString(email) {
		errs = append(errs, FieldError{Field: "personal.email", Message: "email is not valid"})
	}

	return errs
}

// ValidateExperience checks per-entry completeness. The wizard does not gate
// step advancement on these, but the importer and finish-time schema check use
// them to report incomplete entries.
func ValidateExperience(entries []Experience) []FieldError {
	var errs []FieldError
	for i, exp := range entries {
		prefix := fmt.Sprintf("experience[%d]", i)
		if strings.TrimSpace(exp.Company) == "" {
			errs = append(errs, FieldError{Field: prefix + ".company", Message: "company is required"})
		}
		if strings.TrimSpace(exp.Position) == "" {
			errs = append(errs, FieldError{Field: prefix + ".position", Message: "position is required"})
		}
		if exp.StartDate == "" {
			errs = append(errs, FieldError{Field: prefix + ".startDate", Message: "start date is required"})
		}
		if !exp.Current && exp.EndDate == "" {
			errs = append(errs, FieldError{Field: prefix + ".endDate", Message: "end date is required unless the position is current"})
		}
	}
	return errs
}

// ValidateEducation checks per-entry completeness of education entries.
func ValidateEducation(entries []Education) []FieldError {
	var errs []FieldError
	for i, edu := range entries {
		prefix := fmt.Sprintf("education[%d]", i)
		if strings.TrimSpace(edu.Institution) == "" {
			errs = append(errs, FieldError{Field: prefix + ".institution", Message: "institution is required"})
		}
		if strings.TrimSpace(edu.Degree) == "" {
			errs = append(errs, FieldError{Field: prefix + ".degree", Message: "degree is required"})
		}
		if strings.TrimSpace(edu.Field) == "" {
			errs = append(errs, FieldError{Field: prefix + ".field", Message: "field of study is required"})
		}
	}
	return errs
}
