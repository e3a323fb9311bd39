package rest

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/musicshop/internal/service"
	"github.com/abgdnv/musicshop/pkg/web"
)

// ListProducts returns the catalog, optionally filtered by kind, genre and artist.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := service.ProductQuery{
		Kind:   r.URL.Query().Get("kind"),
		Genre:  r.URL.Query().Get("genre"),
		Artist: r.URL.Query().Get("artist"),
	}
	h.logger.DebugContext(r.Context(), "Received request to list products", "query", query)

	list, err := h.shop.ListProducts(r.Context(), query)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to fetch products")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// FindProduct retrieves a catalog item by its ID.
func (h *Handler) FindProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathValue(w, r, h.logger, "id")
	if !ok {
		return
	}

	found, err := h.shop.FindProduct(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to retrieve product "+id)
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product", slog.String("ID", found.ID))
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}
