package wizard

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yassine/cvbuilder/internal/resume"
)

// ValidationError blocks a forward transition or a finish. It is local to the
// wizard: the document is never modified by a failed validation.
type ValidationError struct {
	Step   StepKey
	Fields []resume.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("step %s incomplete: %s", e.Step, strings.Join(msgs, "; "))
}

// PremiumRequiredError signals that a free-tier user tried to select a
// premium template. The selection is rejected and the caller is expected to
// route the user to the upgrade flow.
type PremiumRequiredError struct {
	TemplateID string
}

func (e *PremiumRequiredError) Error() string {
	return fmt.Sprintf("template %s requires a premium subscription", e.TemplateID)
}

// UnknownStepError indicates a step key that is not part of the flow.
type UnknownStepError struct {
	Key StepKey
}

func (e *UnknownStepError) Error() string {
	return fmt.Sprintf("unknown wizard step: %s", e.Key)
}

// NotAtFinalStepError indicates finish() was called before the template step.
type NotAtFinalStepError struct {
	StepIndex int
}

func (e *NotAtFinalStepError) Error() string {
	return fmt.Sprintf("cannot finish from step %d; the wizard must be at the final step", e.StepIndex)
}

// SessionNotFoundError indicates a wizard session id with no stored state,
// typically an expired or already-finished session.
type SessionNotFoundError struct {
	ID uuid.UUID
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("wizard session not found: %s", e.ID)
}
