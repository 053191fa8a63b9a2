package reservation

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"bellavista/internal/logger"
	"bellavista/internal/models"
)

// Handler handles HTTP requests for the reservation wizard
type Handler struct {
	sessions  *Sessions
	publisher Publisher
	logger    *logger.Logger
}

// NewHandler creates a new reservation handler
func NewHandler(sessions *Sessions, publisher Publisher, log *logger.Logger) *Handler {
	return &Handler{
		sessions:  sessions,
		publisher: publisher,
		logger:    log,
	}
}

// Register registers the reservation routes
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /reservations", h.Create)
	mux.HandleFunc("GET /reservations/{id}", h.Get)
	mux.HandleFunc("GET /reservations/options", h.Options)
	mux.HandleFunc("POST /reservations/{id}/advance", h.Advance)
	mux.HandleFunc("POST /reservations/{id}/back", h.Back)
	mux.HandleFunc("DELETE /reservations/{id}", h.Close)
}

// Create handles POST /reservations
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	wizard := h.sessions.Create()

	h.logger.Debug("reservation_started", "Started reservation wizard", requestID, map[string]interface{}{
		"reservation_id": wizard.View().ReservationID,
	})

	writeJSON(w, http.StatusCreated, wizard.View())
}

// Get handles GET /reservations/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	wizard, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "reservation not found", requestID)
		return
	}

	writeJSON(w, http.StatusOK, wizard.View())
}

// Options handles GET /reservations/options, returning the bookable time
// slots and occasions
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"times":          models.AvailableTimes,
		"occasions":      models.Occasions,
		"max_party_size": models.MaxPartySize,
	})
}

// Advance handles POST /reservations/{id}/advance. An optional form update
// in the body is applied before the transition is attempted.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	wizard, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "reservation not found", requestID)
		return
	}

	var update models.ReservationFormUpdate
	if err := decodeOptional(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	if err := wizard.Update(update); err != nil {
		writeError(w, http.StatusConflict, err.Error(), requestID)
		return
	}

	if err := wizard.Advance(r.Context(), h.publisher, h.logger); err != nil {
		h.logger.Debug("reservation_blocked", "Reservation transition blocked", requestID, map[string]interface{}{
			"reservation_id": wizard.View().ReservationID,
			"reason":         err.Error(),
		})
		writeError(w, http.StatusConflict, err.Error(), requestID)
		return
	}

	view := wizard.View()
	if view.Stage == StageConfirmed {
		h.logger.Info("reservation_confirmed", "Reservation confirmed", requestID, map[string]interface{}{
			"reservation_id":     view.ReservationID,
			"reservation_number": view.Number,
			"date":               view.Form.Date,
			"time":               view.Form.Time,
			"guests":             view.Form.Guests,
		})
	}

	writeJSON(w, http.StatusOK, view)
}

// Back handles POST /reservations/{id}/back
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	wizard, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "reservation not found", requestID)
		return
	}

	if err := wizard.Back(); err != nil {
		writeError(w, http.StatusConflict, err.Error(), requestID)
		return
	}

	writeJSON(w, http.StatusOK, wizard.View())
}

// Close handles DELETE /reservations/{id}, discarding all wizard state
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	h.sessions.Remove(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
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
