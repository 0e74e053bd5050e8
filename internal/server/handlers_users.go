package server

import (
	"net/http"

	"github.com/yassine/cvbuilder/internal/server/middleware"
)

// handleGetMe returns the authenticated user together with the subscription
// profile the premium gates run against.
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		s.handlerError(w, err)
		return
	}
	if user == nil {
		s.handlerError(w, &ErrUserNotFound{UserID: userID})
		return
	}

	profile, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"user":    user,
		"profile": profile,
	})
}
