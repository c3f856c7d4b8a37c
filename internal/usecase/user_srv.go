package usecase

import (
	"context"

	"amana-travel/internal/dto/response"
	"amana-travel/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context) (*response.ProfileResponse, error)
}

type userService struct {
	sessions SessionManager
	log      *zap.Logger
}

func NewUserService(sessions SessionManager, log *zap.Logger) UserService {
	return &userService{
		sessions: sessions,
		log:      log.With(zap.String("service", "user")),
	}
}

// GetProfile returns the identity confirmed by the last revalidation.
func (s *userService) GetProfile(ctx context.Context) (*response.ProfileResponse, error) {
	st, _, err := currentState(ctx, s.sessions)
	if err != nil {
		return nil, err
	}
	if !st.IsAuthenticated() {
		return nil, utils.NewUnauthenticatedError("Please sign in to continue")
	}

	return &response.ProfileResponse{
		User:      response.UserToResponse(st.User),
		ExpiresAt: st.ExpiresAt,
	}, nil
}
