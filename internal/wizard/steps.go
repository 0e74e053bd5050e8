// Package wizard implements the multi-step resume building flow: an ordered
// step table, per-step advancement gates, and the session state that
// accumulates a resume document until it is handed to the persistence layer.
package wizard

import "github.com/yassine/cvbuilder/internal/resume"

// StepKey names one slice of the resume document edited by a wizard step.
type StepKey string

const (
	StepPersonal   StepKey = "personal"
	StepExperience StepKey = "experience"
	StepEducation  StepKey = "education"
	StepSkills     StepKey = "skills"
	StepSummary    StepKey = "summary"
	StepTemplate   StepKey = "template"
)

// StepDefinition describes one step of the flow. Validate is the gate checked
// before the step can be left going forward; a nil Validate means the step is
// optional content and always passes.
type StepDefinition struct {
	Key         StepKey
	Title       string
	Description string
	Validate    func(s *Session) error
}

// Steps is the single canonical flow. Order matters: the index into this
// slice is the wizard state. The last step (template selection) is terminal.
var Steps = []StepDefinition{
	{
		Key:         StepPersonal,
		Title:       "Personal Information",
		Description: "Name and basic information",
		Validate:    validatePersonalStep,
	},
	{
		Key:         StepExperience,
		Title:       "Work Experience",
		Description: "Your professional history and previous jobs",
	},
	{
		Key:         StepEducation,
		Title:       "Education",
		Description: "Academic qualifications and certificates",
	},
	{
		Key:         StepSkills,
		Title:       "Skills",
		Description: "Technical and personal skills",
	},
	{
		Key:         StepSummary,
		Title:       "Professional Summary",
		Description: "Overview of your experience and goals",
	},
	{
		Key:         StepTemplate,
		Title:       "Choose Template",
		Description: "Select a professional template for your resume",
		Validate:    validateTemplateStep,
	},
}

// terminalIndex is the index of the template-selection step.
func terminalIndex() int {
	return len(Steps) - 1
}

func validatePersonalStep(s *Session) error {
	if errs := resume.ValidatePersonal(s.Document.Personal); len(errs) > 0 {
		return &ValidationError{Step: StepPersonal, Fields: errs}
	}
	return nil
}

func validateTemplateStep(s *Session) error {
	if s.SelectedTemplateID == "" {
		return &ValidationError{Step: StepTemplate, Fields: []resume.FieldError{{
			Field:   "template",
			Message: "a template must be selected",
		}}}
	}
	return nil
}
