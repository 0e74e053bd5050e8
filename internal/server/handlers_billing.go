package server

import (
	"encoding/json"
	"net/http"

	"github.com/yassine/cvbuilder/internal/server/middleware"
)

// handleCheckout creates a Stripe checkout session for a paid plan and
// returns the hosted payment page URL.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if s.stripe == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "billing is not configured")
		return
	}

	var req struct {
		Plan       string `json:"plan"`
		SuccessURL string `json:"success_url"`
		CancelURL  string `json:"cancel_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SuccessURL == "" || req.CancelURL == "" {
		s.handlerError(w, &ErrValidation{Field: "success_url", Message: "success_url and cancel_url are required"})
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

	session, err := s.stripe.CreateCheckoutSession(r.Context(), user.Email, req.Plan, req.SuccessURL, req.CancelURL)
	if err != nil {
		s.handlerError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"checkout_session_id": session.ID,
		"checkout_url":        session.URL,
	})
}

// handleBillingRefresh re-reads the subscription state from Stripe and syncs
// the local tier. The frontend calls this after returning from checkout, so
// tier changes land without webhooks.
func (s *Server) handleBillingRefresh(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if s.stripe == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "billing is not configured")
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

	tier, err := s.stripe.CheckSubscription(r.Context(), user.Email)
	if err != nil {
		s.handlerError(w, err)
		return
	}
	if err := s.store.SetSubscriptionTier(r.Context(), userID, tier); err != nil {
		s.handlerError(w, err)
		return
	}

	profile, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		s.handlerError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"subscription_tier": tier,
		"profile":           profile,
	})
}
