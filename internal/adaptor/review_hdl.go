package adaptor

import (
	"encoding/json"
	"net/http"

	"amana-travel/internal/dto/request"
	"amana-travel/internal/usecase"
	"amana-travel/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /api/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, r, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review submitted", review)
}

// GetPackageReviews handles GET /api/{kind}/{id}/reviews
func (h *ReviewHandler) GetPackageReviews(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	page := utils.ParseInt(r.URL.Query().Get("page"), 1)

	reviews, err := h.service.List(r.Context(), kind, chi.URLParam(r, "id"), page)
	if err != nil {
		handleServiceError(h.log, w, r, err, "get package reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetPackageRating handles GET /api/{kind}/{id}/rating
func (h *ReviewHandler) GetPackageRating(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	rating, err := h.service.Rating(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, r, err, "get package rating")
		return
	}

	utils.ResponseSuccess(w, "success", rating)
}
