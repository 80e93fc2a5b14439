package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"fernwear/internal/idempotency"
	"fernwear/internal/model"
	"fernwear/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles checkout-session HTTP requests.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// CreateSession handles POST /api/checkout/session requests. On success it
// responds 200 with {"sessionId": ...}; any session-creation failure is a
// 400 carrying the error message, matching the redirect contract the
// storefront expects.
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	userID := r.Header.Get(userIDHeader)
	idemKey := idempotency.Key(r)

	resp, err := h.service.CreateSession(r.Context(), &req, userID, idemKey)
	if err != nil {
		// All checkout failures are client-visible 400s: validation errors
		// carry their own message, platform rejections the raw one.
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			writeError(w, http.StatusBadRequest, domainErr.Message, h.logger)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
