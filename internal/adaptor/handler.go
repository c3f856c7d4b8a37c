package adaptor

import (
	"net/http"

	"amana-travel/internal/data/entity"
	"amana-travel/internal/usecase"
	"amana-travel/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Catalog *CatalogHandler
	Booking *BookingHandler
	Review  *ReviewHandler
	Auth    *AuthHandler
	User    *UserHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Catalog: NewCatalogHandler(service.Catalog, service.Brochure, log),
		Booking: NewBookingHandler(service.Booking, log),
		Review:  NewReviewHandler(service.Review, log),
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
	}
}

// handleServiceError writes the envelope for a service error. Client errors
// are logged as warnings, everything else as errors.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, r *http.Request, err error, operation string) {
	appErr := utils.AsAppError(err)

	fields := []zap.Field{
		zap.Error(err),
		zap.String("operation", operation),
		zap.String("kind", string(appErr.Kind)),
		zap.String("request_id", utils.GetRequestIDFromContext(r.Context())),
	}

	switch appErr.Kind {
	case utils.KindValidation, utils.KindUnauthenticated, utils.KindNotFound:
		log.Warn(operation+" failed", fields...)
	default:
		log.Error("Failed to "+operation, fields...)
	}

	utils.ResponseAppError(w, appErr)
}

// kindParam reads the {kind} URL segment.
func kindParam(w http.ResponseWriter, r *http.Request) (entity.Kind, bool) {
	kind, ok := entity.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		utils.ResponseNotFound(w, "Unknown package kind")
		return "", false
	}
	return kind, true
}
