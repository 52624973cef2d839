package http

import (
	"context"
	"net/http"
	"time"

	"github.com/YottademTech/ecommerce-mini-app/internal/service"
)

type MenuHandler struct {
	svc     *service.Storefront
	timeout time.Duration
}

func NewMenuHandler(svc *service.Storefront, timeout time.Duration) *MenuHandler {
	return &MenuHandler{
		svc:     svc,
		timeout: timeout,
	}
}

// GetMenu lists the catalog together with the caller's current cart
// quantities, which is what the menu grid renders its badges from.
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
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

	respondJSON(w, http.StatusOK, toMenuDTO(h.svc.Catalog(), sess))
}
