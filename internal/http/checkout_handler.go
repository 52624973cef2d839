package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/YottademTech/ecommerce-mini-app/internal/checkout"
	"github.com/YottademTech/ecommerce-mini-app/internal/order"
	"github.com/YottademTech/ecommerce-mini-app/internal/service"
)

// InitDataHeader carries the raw Telegram WebApp init data from the front
// end; it is absent for anonymous buyers.
const InitDataHeader = "X-Telegram-Init-Data"

type CheckoutHandler struct {
	svc     *service.Storefront
	timeout time.Duration
}

func NewCheckoutHandler(svc *service.Storefront, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		svc:     svc,
		timeout: timeout,
	}
}

type CommentRequestDTO struct {
	Comment string `json:"comment"`
}

type ContactRequestDTO struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// GetCheckout returns the review screen state: cart snapshot, draft
// contents, completeness flags and a fresh cosmetic order number.
func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
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

	respondJSON(w, http.StatusOK, toCheckoutDTO(h.svc.Catalog(), sess))
}

func (h *CheckoutHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no session id on request")
		return
	}

	var req CommentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sess, err := h.svc.SetComment(ctx, sessionID, req.Comment)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, toCheckoutDTO(h.svc.Catalog(), sess))
}

func (h *CheckoutHandler) UpdateShipping(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no session id on request")
		return
	}

	var req checkout.Shipping
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sess, err := h.svc.SetShipping(ctx, sessionID, req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, toCheckoutDTO(h.svc.Catalog(), sess))
}

func (h *CheckoutHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no session id on request")
		return
	}

	var req checkout.Payment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Method == "" {
		req.Method = checkout.MethodCard
	}
	if req.Method != checkout.MethodCard && req.Method != checkout.MethodMomo {
		respondError(w, http.StatusBadRequest, "invalid_method", "method must be card or momo")
		return
	}

	sess, err := h.svc.SetPayment(ctx, sessionID, req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, toCheckoutDTO(h.svc.Catalog(), sess))
}

func (h *CheckoutHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no session id on request")
		return
	}

	var req ContactRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sess, err := h.svc.SetContact(ctx, sessionID, req.Name, req.Phone)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, toCheckoutDTO(h.svc.Catalog(), sess))
}

// Confirm runs the single submission attempt for this session's cart.
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no session id on request")
		return
	}

	sess, err := h.svc.Confirm(ctx, sessionID, r.Header.Get(InitDataHeader))
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "cannot confirm an empty cart")
		return
	case errors.Is(err, service.ErrSubmitInFlight):
		respondError(w, http.StatusConflict, "submit_in_flight", "a submission is already in progress")
		return
	case errors.Is(err, order.ErrSubmissionFailed):
		// Cart and draft are preserved; the user may confirm again.
		respondJSON(w, http.StatusBadGateway, SubmitResultDTO{
			Status:   sess.Submission.String(),
			Feedback: sess.Feedback,
			Cart:     toCartDTO(h.svc.Catalog(), sess.Cart),
		})
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, SubmitResultDTO{
		Status:   sess.Submission.String(),
		Feedback: sess.Feedback,
		Cart:     toCartDTO(h.svc.Catalog(), sess.Cart),
	})
}
