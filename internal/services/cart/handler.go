package cart

import (
	"encoding/json"
	"net/http"
	"time"

	"bellavista/internal/logger"
	"bellavista/internal/models"
	"bellavista/internal/services/menu"
)

// Handler handles HTTP requests for cart sessions
type Handler struct {
	sessions *Sessions
	catalog  *menu.Catalog
	logger   *logger.Logger
}

// NewHandler creates a new cart handler
func NewHandler(sessions *Sessions, catalog *menu.Catalog, log *logger.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		catalog:  catalog,
		logger:   log,
	}
}

// Register registers the cart routes
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /carts", h.CreateCart)
	mux.HandleFunc("GET /carts/{id}", h.GetCart)
	mux.HandleFunc("POST /carts/{id}/items", h.AddItem)
	mux.HandleFunc("PUT /carts/{id}/items/{itemId}", h.SetQuantity)
	mux.HandleFunc("DELETE /carts/{id}/items/{itemId}", h.RemoveItem)
	mux.HandleFunc("DELETE /carts/{id}", h.ClearCart)
}

// CreateCart handles POST /carts
func (h *Handler) CreateCart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	session := h.sessions.Create()

	h.logger.Debug("cart_created", "Created cart session", requestID, map[string]interface{}{
		"cart_id": session.ID,
	})

	writeJSON(w, http.StatusCreated, session.Cart.View(session.ID))
}

// GetCart handles GET /carts/{id}
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	session, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "cart not found", requestID)
		return
	}

	writeJSON(w, http.StatusOK, session.Cart.View(session.ID))
}

// AddItem handles POST /carts/{id}/items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	session, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "cart not found", requestID)
		return
	}

	var req models.AddItemRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		writeError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	item, ok := h.catalog.ItemByID(req.ItemID)
	if !ok {
		writeError(w, http.StatusNotFound, "menu item not found", requestID)
		return
	}

	session.Cart.AddItem(item, req.Quantity)

	h.logger.Debug("cart_item_added", "Added item to cart", requestID, map[string]interface{}{
		"cart_id":  session.ID,
		"item_id":  item.ID,
		"quantity": req.Quantity,
	})

	writeJSON(w, http.StatusOK, session.Cart.View(session.ID))
}

// SetQuantity handles PUT /carts/{id}/items/{itemId}
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	session, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "cart not found", requestID)
		return
	}

	var req models.SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	session.Cart.SetQuantity(r.PathValue("itemId"), req.Quantity)

	writeJSON(w, http.StatusOK, session.Cart.View(session.ID))
}

// RemoveItem handles DELETE /carts/{id}/items/{itemId}
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	session, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "cart not found", requestID)
		return
	}

	session.Cart.RemoveItem(r.PathValue("itemId"))

	writeJSON(w, http.StatusOK, session.Cart.View(session.ID))
}

// ClearCart handles DELETE /carts/{id}
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	session, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "cart not found", requestID)
		return
	}

	session.Cart.Clear()

	writeJSON(w, http.StatusOK, session.Cart.View(session.ID))
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
