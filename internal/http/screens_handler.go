package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/YottademTech/ecommerce-mini-app/internal/service"
	"github.com/YottademTech/ecommerce-mini-app/internal/session"
)

// ScreensHandler exposes the navigation stack: the front end pushes a
// named screen to go forward and pops to go back, instead of leaning on
// browser history.
type ScreensHandler struct {
	svc     *service.Storefront
	timeout time.Duration
}

func NewScreensHandler(svc *service.Storefront, timeout time.Duration) *ScreensHandler {
	return &ScreensHandler{
		svc:     svc,
		timeout: timeout,
	}
}

type NavigateRequestDTO struct {
	Screen session.Screen `json:"screen"`
}

func (h *ScreensHandler) GetScreen(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no session id on request")
		return
	}

	sess, err := h.svc.Session(ctx, sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "session_error", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, ScreenDTO{Screen: sess.CurrentScreen()})
}

func (h *ScreensHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no session id on request")
		return
	}

	var req NavigateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if !req.Screen.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_screen", "unknown screen name")
		return
	}

	sess, err := h.svc.Navigate(ctx, sessionID, req.Screen)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, ScreenDTO{Screen: sess.CurrentScreen()})
}

func (h *ScreensHandler) Back(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no session id on request")
		return
	}

	sess, err := h.svc.Back(ctx, sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, ScreenDTO{Screen: sess.CurrentScreen()})
}
