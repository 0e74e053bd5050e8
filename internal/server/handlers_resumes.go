package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/yassine/cvbuilder/internal/db"
	"github.com/yassine/cvbuilder/internal/server/middleware"
)

// loadOwnedResume fetches a resume and enforces ownership. A resume owned by
// someone else reads as not found, same as the wizard sessions.
func (s *Server) loadOwnedResume(r *http.Request, userID uuid.UUID) (*db.Resume, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return nil, &ErrResumeNotFound{ResumeID: uuid.Nil}
	}
	stored, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if stored == nil || stored.UserID != userID {
		return nil, &ErrResumeNotFound{ResumeID: id}
	}
	return stored, nil
}

// handleListResumes returns the caller's saved resumes, newest first.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resumes, err := s.store.ListResumesByUser(r.Context(), userID)
	if err != nil {
		s.handlerError(w, err)
		return
	}
	if resumes == nil {
		resumes = []db.Resume{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": resumes})
}

// handleGetResume returns one saved resume with its full document.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stored, err := s.loadOwnedResume(r, userID)
	if err != nil {
		s.handlerError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stored)
}

// handleDeleteResume removes a saved resume.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stored, err := s.loadOwnedResume(r, userID)
	if err != nil {
		s.handlerError(w, err)
		return
	}
	if err := s.store.DeleteResume(r.Context(), stored.ID, userID); err != nil {
		s.handlerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleResumeHTML renders the saved resume with its selected template.
func (s *Server) handleResumeHTML(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stored, err := s.loadOwnedResume(r, userID)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	descriptor, err := s.registry.ByID(stored.TemplateID)
	if err != nil {
		s.handlerError(w, err)
		return
	}
	html, err := descriptor.Render(stored.Content)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// handleResumePDF renders the saved resume to PDF via headless Chrome.
func (s *Server) handleResumePDF(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stored, err := s.loadOwnedResume(r, userID)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	pdf, err := s.exporter.Export(r.Context(), stored.Content, stored.TemplateID)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", stored.Title+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
