package wire

import (
	"amana-travel/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/{kind}", catalogHandler.List)
	r.Get("/api/{kind}/{id}", catalogHandler.Get)
	r.Get("/api/{kind}/{id}/brochure", catalogHandler.Brochure)
}
