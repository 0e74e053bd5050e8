package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yassine/cvbuilder/internal/db"
	"github.com/yassine/cvbuilder/internal/llm"
	"github.com/yassine/cvbuilder/internal/server/middleware"
	"github.com/yassine/cvbuilder/internal/wizard"
)

// generateRequest is the body of POST /ai/generate. Session fields are
// optional: when present the result is written into the wizard session,
// but only if the step has not been edited since the given version.
type generateRequest struct {
	ContentType string   `json:"content_type" validate:"required"`
	Language    string   `json:"language"`
	FullName    string   `json:"full_name"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Experience  []string `json:"experience"`
	Skills      []string `json:"skills"`
	Hints       string   `json:"hints"`

	SessionID   *uuid.UUID `json:"session_id"`
	StepVersion uint64     `json:"step_version"`
}

type generateResponse struct {
	Text                 string   `json:"text"`
	Skills               []string `json:"skills,omitempty"`
	GenerationsRemaining int      `json:"generations_remaining"`
	Applied              bool     `json:"applied"`
	Stale                bool     `json:"stale,omitempty"`
}

func supportedContentType(ct string) bool {
	for _, t := range llm.SupportedContentTypes {
		if llm.ContentType(ct) == t {
			return true
		}
	}
	return false
}

func supportedLanguage(lang string) bool {
	switch lang {
	case llm.LangEnglish, llm.LangFrench, llm.LangArabic:
		return true
	}
	return false
}

// handleGenerate runs one AI generation. The quota is consumed up front and
// refunded when the model call fails, so a user is only ever charged for
// content they received.
func (s *Server) handleAIGenerate(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Language == "" {
		req.Language = llm.LangEnglish
	}
	if !supportedContentType(req.ContentType) {
		s.handlerError(w, &ErrValidation{Field: "content_type", Message: "unsupported content type"})
		return
	}
	if !supportedLanguage(req.Language) {
		s.handlerError(w, &ErrValidation{Field: "language", Message: "supported languages are en, fr and ar"})
		return
	}

	remaining, err := s.store.ConsumeAIGeneration(r.Context(), userID)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	result, err := s.generator.Generate(r.Context(), llm.ContentType(req.ContentType), req.Language, llm.GenerationInput{
		FullName:   req.FullName,
		Title:      req.Title,
		Company:    req.Company,
		Position:   req.Position,
		Experience: req.Experience,
		Skills:     req.Skills,
		Hints:      req.Hints,
	})
	if err != nil {
		if refundErr := s.store.RefundAIGeneration(r.Context(), userID); refundErr != nil {
			s.logger.Error("failed to refund ai generation", zap.Error(refundErr))
		}
		s.handlerError(w, err)
		return
	}

	// Usage bookkeeping must not fail the request once content exists.
	tokens := len(result.Text) / 4
	if _, err := s.store.RecordAIGeneration(r.Context(), userID, req.ContentType, req.Language, tokens); err != nil {
		s.logger.Error("failed to record ai generation", zap.Error(err))
	}

	resp := generateResponse{
		Text:                 result.Text,
		Skills:               result.Skills,
		GenerationsRemaining: remaining,
	}

	if req.SessionID != nil {
		applied, stale, err := s.applyToSession(r, userID, *req.SessionID, req.StepVersion, llm.ContentType(req.ContentType), result)
		if err != nil {
			s.handlerError(w, err)
			return
		}
		resp.Applied = applied
		resp.Stale = stale
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleListAIGenerations returns the caller's recent generation history.
func (s *Server) handleListAIGenerations(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	generations, err := s.store.ListAIGenerationsByUser(r.Context(), userID, 50)
	if err != nil {
		s.handlerError(w, err)
		return
	}
	if generations == nil {
		generations = []db.AIGeneration{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"generations": generations})
}

// applyToSession writes a generation result into the wizard session the user
// was editing. The write is discarded when the step moved past the version
// the client generated against, so a slow model response never clobbers
// newer manual edits.
func (s *Server) applyToSession(r *http.Request, userID, sessionID uuid.UUID, seenVersion uint64, contentType llm.ContentType, result *llm.GenerationResult) (applied, stale bool, err error) {
	session, err := s.sessions.Get(r.Context(), sessionID)
	if err != nil {
		return false, false, err
	}
	if session.UserID != userID {
		return false, false, &wizard.SessionNotFoundError{ID: sessionID}
	}

	var (
		key = wizard.StepSummary
		raw json.RawMessage
	)
	switch contentType {
	case llm.ContentProfessionalSummary:
		raw, err = json.Marshal(result.Text)
	case llm.ContentSkillsOptimization:
		key = wizard.StepSkills
		skills := session.Document.Skills
		skills.Technical = result.Skills
		raw, err = json.Marshal(skills)
	default:
		// Job descriptions target one experience entry the server cannot
		// identify; the client applies those through the step update call.
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}

	applied, err = session.ApplyGenerated(key, raw, seenVersion)
	if err != nil {
		return false, false, err
	}
	if !applied {
		return false, true, nil
	}
	if err := s.sessions.Put(r.Context(), session); err != nil {
		return false, false, err
	}
	return true, false, nil
}
