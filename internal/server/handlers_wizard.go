package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/yassine/cvbuilder/internal/server/middleware"
	"github.com/yassine/cvbuilder/internal/wizard"
)

// stepView is the serialized form of one wizard step definition.
type stepView struct {
	Key         wizard.StepKey `json:"key"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
}

// sessionView is the wizard state returned to the client after every
// operation: enough to render the current step and the progress bar.
type sessionView struct {
	ID                 uuid.UUID         `json:"id"`
	StepIndex          int               `json:"step_index"`
	TotalSteps         int               `json:"total_steps"`
	CurrentStep        stepView          `json:"current_step"`
	CanProceed         bool              `json:"can_proceed"`
	Document           any               `json:"document"`
	SelectedTemplateID string            `json:"selected_template_id,omitempty"`
	ResumeID           *uuid.UUID        `json:"resume_id,omitempty"`
	Steps              []stepView        `json:"steps"`
	StepVersions       map[string]uint64 `json:"step_versions"`
}

func newSessionView(s *wizard.Session) sessionView {
	steps := make([]stepView, len(wizard.Steps))
	for i, def := range wizard.Steps {
		steps[i] = stepView{Key: def.Key, Title: def.Title, Description: def.Description}
	}
	cur := s.CurrentStep()

	versions := make(map[string]uint64, len(s.StepVersions))
	for k, v := range s.StepVersions {
		versions[string(k)] = v
	}

	view := sessionView{
		ID:                 s.ID,
		StepIndex:          s.StepIndex,
		TotalSteps:         len(wizard.Steps),
		CurrentStep:        stepView{Key: cur.Key, Title: cur.Title, Description: cur.Description},
		CanProceed:         s.CanProceed(s.StepIndex),
		Document:           s.Document,
		SelectedTemplateID: s.SelectedTemplateID,
		Steps:              steps,
		StepVersions:       versions,
	}
	if s.ResumeID != uuid.Nil {
		id := s.ResumeID
		view.ResumeID = &id
	}
	return view
}

// loadOwnedSession fetches a session and enforces ownership. A session owned
// by someone else reads as not found.
func (s *Server) loadOwnedSession(r *http.Request, userID uuid.UUID) (*wizard.Session, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return nil, &wizard.SessionNotFoundError{ID: uuid.Nil}
	}
	session, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, &wizard.SessionNotFoundError{ID: id}
	}
	return session, nil
}

// handleCreateSession starts a wizard session, blank or seeded from an
// existing resume when resume_id is given.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		ResumeID *uuid.UUID `json:"resume_id"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	var session *wizard.Session
	if req.ResumeID != nil {
		stored, err := s.store.GetResume(r.Context(), *req.ResumeID)
		if err != nil {
			s.handlerError(w, err)
			return
		}
		if stored == nil || stored.UserID != userID {
			s.handlerError(w, &ErrResumeNotFound{ResumeID: *req.ResumeID})
			return
		}
		session = wizard.NewEditSession(userID, stored.ID, stored.Content, stored.TemplateID)
	} else {
		user, err := s.store.GetUser(r.Context(), userID)
		if err != nil {
			s.handlerError(w, err)
			return
		}
		if user == nil {
			s.handlerError(w, &ErrUserNotFound{UserID: userID})
			return
		}
		session = wizard.NewSession(userID, user.Name, user.Email)
	}

	if err := s.sessions.Put(r.Context(), session); err != nil {
		s.handlerError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, newSessionView(session))
}

// handleGetSession returns the current wizard state.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	session, err := s.loadOwnedSession(r, userID)
	if err != nil {
		s.handlerError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newSessionView(session))
}

// handleSessionNext advances the wizard one step.
func (s *Server) handleSessionNext(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	session, err := s.loadOwnedSession(r, userID)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	if err := session.Next(); err != nil {
		s.handlerError(w, err)
		return
	}
	if err := s.sessions.Put(r.Context(), session); err != nil {
		s.handlerError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newSessionView(session))
}

// handleSessionPrevious moves the wizard one step back.
func (s *Server) handleSessionPrevious(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	session, err := s.loadOwnedSession(r, userID)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	session.Previous()
	if err := s.sessions.Put(r.Context(), session); err != nil {
		s.handlerError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newSessionView(session))
}

// handleSessionUpdateStep replaces one document slice with the request body.
func (s *Server) handleSessionUpdateStep(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	session, err := s.loadOwnedSession(r, userID)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	var req struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := session.UpdateField(wizard.StepKey(r.PathValue("step")), req.Value); err != nil {
		s.handlerError(w, err)
		return
	}
	if err := s.sessions.Put(r.Context(), session); err != nil {
		s.handlerError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newSessionView(session))
}

// handleSessionSelectTemplate records the template choice, re-checking the
// premium gate against the user's current tier.
func (s *Server) handleSessionSelectTemplate(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	session, err := s.loadOwnedSession(r, userID)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	var req struct {
		TemplateID string `json:"template_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	descriptor, err := s.registry.ByID(req.TemplateID)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	profile, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	if err := session.SelectTemplate(descriptor, profile.SubscriptionTier); err != nil {
		s.handlerError(w, err)
		return
	}
	if err := s.sessions.Put(r.Context(), session); err != nil {
		s.handlerError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newSessionView(session))
}

// handleSessionFinish persists the document and discards the session.
func (s *Server) handleSessionFinish(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	session, err := s.loadOwnedSession(r, userID)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	resumeID, err := session.Finish(r.Context(), s.store)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	// The session is working state; once saved it is gone. A failed delete
	// only means the session lingers until its TTL.
	if err := s.sessions.Delete(r.Context(), session.ID); err != nil {
		s.logger.Warn("failed to delete finished wizard session")
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"resume_id": resumeID,
		"title":     session.Title(),
	})
}
