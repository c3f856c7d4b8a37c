package adaptor

import (
	"net/http"
	"strings"

	"amana-travel/internal/dto/request"
	"amana-travel/internal/usecase"
	"amana-travel/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service  usecase.CatalogService
	brochure usecase.BrochureService
	log      *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, brochure usecase.BrochureService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		brochure: brochure,
		log:      log.With(zap.String("handler", "catalog")),
	}
}

// List handles GET /api/{kind}
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := &request.CatalogQuery{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 0),
		},
		Search:      strings.TrimSpace(query.Get("search")),
		Destination: query.Get("destination"),
		Year:        query.Get("year"),
		Duration:    query.Get("duration"),
		PackageType: query.Get("package_type"),
		Month:       utils.ParseMonth(query.Get("month")),
		MinPrice:    utils.ParseOptionalFloat(query.Get("min_price")),
		MaxPrice:    utils.ParseOptionalFloat(query.Get("max_price")),
		Sort:        query.Get("sort"),
		Fingerprint: query.Get("fp"),
	}

	page, err := h.service.List(r.Context(), kind, req)
	if err != nil {
		handleServiceError(h.log, w, r, err, "list packages")
		return
	}

	utils.ResponseSuccess(w, "success", page)
}

// Get handles GET /api/{kind}/{id}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	pkg, err := h.service.Get(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, r, err, "get package")
		return
	}

	utils.ResponseSuccess(w, "success", pkg)
}

// Brochure handles GET /api/{kind}/{id}/brochure
func (h *CatalogHandler) Brochure(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	filename, body, err := h.brochure.Generate(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, r, err, "generate brochure")
		return
	}

	utils.ResponseAttachment(w, filename, "application/pdf", body)
}
