package wire

import (
	"net/http"

	"amana-travel/internal/adaptor"
	"amana-travel/internal/catalog"
	"amana-travel/internal/data/repository"
	"amana-travel/internal/session"
	"amana-travel/internal/usecase"
	"amana-travel/pkg/middleware"
	"amana-travel/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes
func Wiring(
	repo *repository.Repository,
	store *catalog.Store,
	sessions *session.Manager,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, store, sessions, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, sessions, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	sessions middleware.SessionResolver,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))
	r.Use(middleware.Session(logger))

	// Static segments are registered before /api/{kind}; chi prefers them.
	wireAuth(r, handler.Auth, handler.User, sessions, logger)
	wireBooking(r, handler.Booking, sessions, logger)
	wireReview(r, handler.Review, sessions, logger)
	wireCatalog(r, handler.Catalog)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
