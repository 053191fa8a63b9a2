package menu

import (
	"encoding/json"
	"net/http"
	"time"

	"bellavista/internal/logger"
	"bellavista/internal/models"
)

// Handler handles HTTP requests for the menu catalog
type Handler struct {
	catalog *Catalog
	logger  *logger.Logger
}

// NewHandler creates a new menu handler
func NewHandler(catalog *Catalog, log *logger.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  log,
	}
}

// Register registers the menu routes
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /menu/categories", h.ListCategories)
	mux.HandleFunc("GET /menu/items", h.ListItems)
}

// ListCategories handles GET /menu/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.ListCategories())
}

// ListItems handles GET /menu/items?category=<id>&filter=<predicate>
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	categoryID := r.URL.Query().Get("category")
	if categoryID == "" {
		writeError(w, http.StatusBadRequest, "category query parameter is required", requestID)
		return
	}

	items := h.catalog.ListByCategory(categoryID)
	if filter := r.URL.Query().Get("filter"); filter != "" {
		items = Filter(items, FilterPredicate(filter))
	}

	h.logger.Debug("menu_listed", "Listed menu items", requestID, map[string]interface{}{
		"category": categoryID,
		"count":    len(items),
	})

	if items == nil {
		items = []models.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
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
