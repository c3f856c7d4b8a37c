package wire

import (
	"amana-travel/internal/adaptor"
	"amana-travel/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	sessions middleware.SessionResolver,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/{kind}/{id}/reviews", reviewHandler.GetPackageReviews)
	r.Get("/api/{kind}/{id}/rating", reviewHandler.GetPackageRating)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.RequireSession(sessions, log)).
		Post("/api/reviews", reviewHandler.CreateReview)
}
