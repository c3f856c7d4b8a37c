package usecase

import (
	"context"

	"amana-travel/internal/catalog"
	"amana-travel/internal/data/repository"
	"amana-travel/internal/session"
	"amana-travel/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionManager is the part of *session.Manager the services use.
type SessionManager interface {
	State(ctx context.Context, id uuid.UUID) (session.State, error)
	SignIn(ctx context.Context, fn session.SignInFunc) (uuid.UUID, session.State, error)
	SignOut(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	Catalog  CatalogService
	Brochure BrochureService
	Booking  BookingService
	Review   ReviewService
	Auth     AuthService
	User     UserService
}

func NewService(
	repo *repository.Repository,
	store *catalog.Store,
	sessions SessionManager,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Catalog:  NewCatalogService(store, config, log),
		Brochure: NewBrochureService(store, config, log),
		Booking:  NewBookingService(repo.Booking, sessions, log),
		Review:   NewReviewService(repo.Review, sessions, config, log),
		Auth:     NewAuthService(repo.Auth, sessions, log),
		User:     NewUserService(sessions, log),
	}
}

// currentState resolves the session on ctx. A request without a session id
// is anonymous.
func currentState(ctx context.Context, sessions SessionManager) (session.State, uuid.UUID, error) {
	raw, ok := utils.GetSessionIDFromContext(ctx)
	if !ok {
		return session.State{Status: session.Anonymous}, uuid.Nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return session.State{Status: session.Anonymous}, uuid.Nil, nil
	}

	st, err := sessions.State(ctx, id)
	if err != nil {
		return session.State{}, id, utils.NewInternalError(err)
	}
	return st, id, nil
}
