package checkout

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"bellavista/internal/logger"
	"bellavista/internal/models"
	"bellavista/internal/services/cart"
)

// Handler handles HTTP requests for the checkout wizard
type Handler struct {
	sessions *cart.Sessions
	manager  *Manager
	logger   *logger.Logger
}

// NewHandler creates a new checkout handler
func NewHandler(sessions *cart.Sessions, manager *Manager, log *logger.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		manager:  manager,
		logger:   log,
	}
}

// Register registers the checkout routes
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /carts/{id}/checkout", h.GetState)
	mux.HandleFunc("POST /carts/{id}/checkout/advance", h.Advance)
	mux.HandleFunc("POST /carts/{id}/checkout/back", h.Back)
	mux.HandleFunc("POST /carts/{id}/checkout/cancel", h.Cancel)
}

// GetState handles GET /carts/{id}/checkout
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	session, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "cart not found", requestID)
		return
	}

	writeJSON(w, http.StatusOK, h.manager.ForSession(session).View())
}

// Advance handles POST /carts/{id}/checkout/advance. An optional form update
// in the body is applied before the transition is attempted.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	session, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "cart not found", requestID)
		return
	}

	wizard := h.manager.ForSession(session)

	var update models.CheckoutFormUpdate
	if err := decodeOptional(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	if err := wizard.Update(update); err != nil {
		writeError(w, http.StatusConflict, err.Error(), requestID)
		return
	}

	if err := wizard.Advance(h.manager.Processor()); err != nil {
		h.logger.Debug("checkout_blocked", "Checkout transition blocked", requestID, map[string]interface{}{
			"cart_id": session.ID,
			"reason":  err.Error(),
		})
		writeError(w, http.StatusConflict, err.Error(), requestID)
		return
	}

	h.logger.Debug("checkout_advanced", "Checkout advanced", requestID, map[string]interface{}{
		"cart_id": session.ID,
		"stage":   wizard.View().Stage,
	})

	writeJSON(w, http.StatusOK, wizard.View())
}

// Back handles POST /carts/{id}/checkout/back
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	session, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "cart not found", requestID)
		return
	}

	wizard := h.manager.ForSession(session)
	if err := wizard.Back(); err != nil {
		writeError(w, http.StatusConflict, err.Error(), requestID)
		return
	}

	writeJSON(w, http.StatusOK, wizard.View())
}

// Cancel handles POST /carts/{id}/checkout/cancel. Cancelling during payment
// processing aborts the simulated payment and keeps the cart intact.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	session, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "cart not found", requestID)
		return
	}

	wizard := h.manager.ForSession(session)
	wizard.Cancel()

	h.logger.Debug("checkout_cancelled", "Checkout flow reset", requestID, map[string]interface{}{
		"cart_id": session.ID,
	})

	writeJSON(w, http.StatusOK, wizard.View())
}

// decodeOptional decodes a JSON body when one is present; an empty body is
// treated as an empty update
func decodeOptional(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, statusCode int, message, requestID string) {
	writeJSON(w, statusCode, map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}
