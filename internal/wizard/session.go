package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yassine/cvbuilder/internal/resume"
	"github.com/yassine/cvbuilder/internal/templates"
)

// DocumentStore is the persistence contract finish() depends on. The wizard
// only cares about success or failure, never about storage mechanics.
type DocumentStore interface {
	CreateResume(ctx context.Context, userID uuid.UUID, title, templateID string, content resume.Document) (uuid.UUID, error)
	UpdateResume(ctx context.Context, id uuid.UUID, title, templateID string, content resume.Document) error
}

// Session is the state of one editing flow. A session belongs to exactly one
// user and is never shared, so it carries no locking; the store serializes
// access per session id.
type Session struct {
	ID                 uuid.UUID          `json:"id"`
	UserID             uuid.UUID          `json:"user_id"`
	StepIndex          int                `json:"step_index"`
	Document           resume.Document    `json:"document"`
	SelectedTemplateID string             `json:"selected_template_id,omitempty"`
	ResumeID           uuid.UUID          `json:"resume_id,omitempty"` // set when editing an existing resume
	StepVersions       map[StepKey]uint64 `json:"step_versions"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// NewSession starts a create-mode session at step 0. The caller pre-fills the
// personal slice from the authenticated user's identity where known; this is
// a convenience default, not a requirement.
func NewSession(userID uuid.UUID, fullName, email string) *Session {
	now := time.Now().UTC()
	doc := resume.NewEmptyDocument()
	doc.Personal.FullName = fullName
	doc.Personal.Email = email

	return &Session{
		ID:           uuid.New(),
		UserID:       userID,
		Document:     doc,
		StepVersions: make(map[StepKey]uint64),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewEditSession starts a session seeded from a stored resume. The flow is
// identical to create mode; only finish() switches to an update.
func NewEditSession(userID, resumeID uuid.UUID, doc resume.Document, templateID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:                 uuid.New(),
		UserID:             userID,
		Document:           doc,
		SelectedTemplateID: templateID,
		ResumeID:           resumeID,
		StepVersions:       make(map[StepKey]uint64),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// NewImportSession starts a create-mode session seeded from a document
// extracted out of an uploaded file. The user reviews every step before the
// document is saved, so extraction noise never reaches storage unseen.
func NewImportSession(userID uuid.UUID, doc resume.Document) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:           uuid.New(),
		UserID:       userID,
		Document:     doc,
		StepVersions: make(map[StepKey]uint64),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CurrentStep returns the definition of the step the session is on.
func (s *Session) CurrentStep() StepDefinition {
	return Steps[s.StepIndex]
}

// Validate runs the gate of the step at index, nil when the step may be left.
func (s *Session) Validate(index int) error {
	if index < 0 || index >= len(Steps) {
		return &UnknownStepError{Key: StepKey(fmt.Sprintf("#%d", index))}
	}
	if Steps[index].Validate == nil {
		return nil
	}
	return Steps[index].Validate(s)
}

// CanProceed reports whether the step at index passes its gate.
func (s *Session) CanProceed(index int) bool {
	return s.Validate(index) == nil
}

// Next advances to the following step if the current step's gate passes.
// At the terminal step it is a no-op. A failed gate returns the validation
// error and leaves the session untouched.
func (s *Session) Next() error {
	if s.StepIndex >= terminalIndex() {
		return nil
	}
	if err := s.Validate(s.StepIndex); err != nil {
		return err
	}
	s.StepIndex++
	s.touch()
	return nil
}

// Previous moves back one step. Going backward is never gated; at step 0 it
// is a no-op.
func (s *Session) Previous() {
	if s.StepIndex == 0 {
		return
	}
	s.StepIndex--
	s.touch()
}

// UpdateField replaces the named slice of the document wholesale with the
// given JSON value. The caller supplies the complete updated slice; the
// wizard never merges within a slice. Each successful update bumps the step's
// version counter, which is what invalidates in-flight AI generations.
func (s *Session) UpdateField(key StepKey, raw json.RawMessage) error {
	if err := s.applyField(key, raw); err != nil {
		return err
	}
	s.StepVersions[key]++
	s.touch()
	return nil
}

// Version returns the current version counter for a step. Callers snapshot
// it before issuing an AI generation request.
func (s *Session) Version(key StepKey) uint64 {
	return s.StepVersions[key]
}

// ApplyGenerated applies an AI-generated value to a step only if the step has
// not been edited since seenVersion was snapshotted. A stale result is
// discarded and (false, nil) is returned; the user's manual edit wins.
func (s *Session) ApplyGenerated(key StepKey, raw json.RawMessage, seenVersion uint64) (bool, error) {
	if s.StepVersions[key] != seenVersion {
		return false, nil
	}
	if err := s.applyField(key, raw); err != nil {
		return false, err
	}
	s.StepVersions[key]++
	s.touch()
	return true, nil
}

// applyField decodes raw into the document slice owned by key. A decode
// failure leaves the document untouched.
func (s *Session) applyField(key StepKey, raw json.RawMessage) error {
	switch key {
	case StepPersonal:
		var v resume.PersonalInfo
		if err := json.Unmarshal(raw, &v); err != nil {
			return &ValidationError{Step: key, Fields: []resume.FieldError{{Field: string(key), Message: "invalid payload: " + err.Error()}}}
		}
		s.Document.Personal = v
	case StepExperience:
		var v []resume.Experience
		if err := json.Unmarshal(raw, &v); err != nil {
			return &ValidationError{Step: key, Fields: []resume.FieldError{{Field: string(key), Message: "invalid payload: " + err.Error()}}}
		}
		s.Document.Experience = v
	case StepEducation:
		var v []resume.Education
		if err := json.Unmarshal(raw, &v); err != nil {
			return &ValidationError{Step: key, Fields: []resume.FieldError{{Field: string(key), Message: "invalid payload: " + err.Error()}}}
		}
		s.Document.Education = v
	case StepSkills:
		var v resume.Skills
		if err := json.Unmarshal(raw, &v); err != nil {
			return &ValidationError{Step: key, Fields: []resume.FieldError{{Field: string(key), Message: "invalid payload: " + err.Error()}}}
		}
		s.Document.Skills = v
	case StepSummary:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return &ValidationError{Step: key, Fields: []resume.FieldError{{Field: string(key), Message: "invalid payload: " + err.Error()}}}
		}
		s.Document.Summary = v
	case StepTemplate:
		// Template choice goes through SelectTemplate so the premium gate
		// cannot be bypassed.
		return &UnknownStepError{Key: key}
	default:
		return &UnknownStepError{Key: key}
	}
	return nil
}

// SelectTemplate records the chosen template after re-checking the premium
// gate at the point of use. A rejected selection leaves the previous choice
// in place.
func (s *Session) SelectTemplate(d *templates.Descriptor, subscriptionTier string) error {
	if !templates.CanUse(subscriptionTier, d) {
		return &PremiumRequiredError{TemplateID: d.ID}
	}
	s.SelectedTemplateID = d.ID
	s.StepVersions[StepTemplate]++
	s.touch()
	return nil
}

// Title derives the stored resume title from the document.
func (s *Session) Title() string {
	return strings.TrimSpace(s.Document.Personal.FullName) + " - Resume"
}

// Finish submits the assembled document. It is only callable from the
// terminal step with a template selected. On failure the session is left
// unchanged so the user can retry; discarding the session on success is the
// caller's responsibility.
func (s *Session) Finish(ctx context.Context, store DocumentStore) (uuid.UUID, error) {
	if s.StepIndex != terminalIndex() {
		return uuid.Nil, &NotAtFinalStepError{StepIndex: s.StepIndex}
	}
	if err := s.Validate(terminalIndex()); err != nil {
		return uuid.Nil, err
	}
	if err := s.Validate(0); err != nil {
		return uuid.Nil, err
	}
	if err := resume.ValidateDocument(s.Document); err != nil {
		return uuid.Nil, err
	}

	if s.ResumeID != uuid.Nil {
		if err := store.UpdateResume(ctx, s.ResumeID, s.Title(), s.SelectedTemplateID, s.Document); err != nil {
			return uuid.Nil, err
		}
		return s.ResumeID, nil
	}

	return store.CreateResume(ctx, s.UserID, s.Title(), s.SelectedTemplateID, s.Document)
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}
