package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yassine/cvbuilder/internal/importer"
	"github.com/yassine/cvbuilder/internal/server/middleware"
	"github.com/yassine/cvbuilder/internal/wizard"
)

// handleGetUpload returns one upload record, extracted text included.
func (s *Server) handleGetUpload(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "upload not found")
		return
	}
	upload, err := s.store.GetUpload(r.Context(), id, userID)
	if err != nil {
		s.handlerError(w, err)
		return
	}
	if upload == nil {
		s.errorResponse(w, http.StatusNotFound, "upload not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, upload)
}

// handleUpload accepts an existing CV file, extracts its text and opens a
// wizard session pre-filled from the extracted content. The multipart field
// name is "file".
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// The extra megabyte covers multipart framing around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, importer.MaxUploadBytes+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.handlerError(w, &importer.FileTooLargeError{SizeBytes: maxErr.Limit})
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	contentType, err := importer.ValidateUpload(header.Filename, header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	text, err := importer.ExtractText(data, contentType)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	uploadID, err := s.store.SaveUpload(r.Context(), userID, header.Filename, contentType, header.Size, text)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	doc, err := s.importer.SeedDocument(r.Context(), text)
	if err != nil {
		// The file itself was fine; keep the upload record and let the user
		// start from a blank wizard instead of failing the whole request.
		s.logger.Warn("failed to structure uploaded cv", zap.Error(err))
		user, userErr := s.store.GetUser(r.Context(), userID)
		if userErr != nil || user == nil {
			s.handlerError(w, err)
			return
		}
		session := wizard.NewSession(userID, user.Name, user.Email)
		if err := s.sessions.Put(r.Context(), session); err != nil {
			s.handlerError(w, err)
			return
		}
		s.jsonResponse(w, http.StatusCreated, map[string]any{
			"upload_id": uploadID,
			"seeded":    false,
			"session":   newSessionView(session),
		})
		return
	}

	session := wizard.NewImportSession(userID, doc)
	if err := s.sessions.Put(r.Context(), session); err != nil {
		s.handlerError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"upload_id": uploadID,
		"seeded":    true,
		"session":   newSessionView(session),
	})
}
