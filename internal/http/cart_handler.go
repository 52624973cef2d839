package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/YottademTech/ecommerce-mini-app/internal/cart"
	"github.com/YottademTech/ecommerce-mini-app/internal/service"
	"github.com/YottademTech/ecommerce-mini-app/internal/session"
)

type CartHandler struct {
	svc     *service.Storefront
	timeout time.Duration
}

func NewCartHandler(svc *service.Storefront, timeout time.Duration) *CartHandler {
	return &CartHandler{
		svc:     svc,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ItemID string `json:"item_id"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
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

	respondJSON(w, http.StatusOK, toCartDTO(h.svc.Catalog(), sess.Cart))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no session id on request")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ItemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must not be empty")
		return
	}

	sess, err := h.svc.AddItem(ctx, sessionID, req.ItemID)
	if err != nil {
		h.handleCartError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toCartDTO(h.svc.Catalog(), sess.Cart))
}

func (h *CartHandler) IncrementItem(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.svc.IncrementItem)
}

func (h *CartHandler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.svc.DecrementItem)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.svc.RemoveItem)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no session id on request")
		return
	}

	sess, err := h.svc.ClearCart(ctx, sessionID)
	if err != nil {
		h.handleCartError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartDTO(h.svc.Catalog(), sess.Cart))
}

func (h *CartHandler) mutateLine(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, sessionID, itemID string) (*session.Session, error),
) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no session id on request")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must not be empty")
		return
	}

	sess, err := op(ctx, sessionID, itemID)
	if err != nil {
		h.handleCartError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartDTO(h.svc.Catalog(), sess.Cart))
}

func (h *CartHandler) handleCartError(w http.ResponseWriter, err error) {
	if errors.Is(err, cart.ErrUnknownItem) {
		respondError(w, http.StatusNotFound, "unknown_item", "item is not in the catalog")
		return
	}
	respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
}
