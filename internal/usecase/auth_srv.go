package usecase

import (
	"context"
	"strings"

	"amana-travel/internal/data/entity"
	"amana-travel/internal/data/repository"
	"amana-travel/internal/dto/request"
	"amana-travel/internal/dto/response"
	"amana-travel/internal/session"
	"amana-travel/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) (*response.MessageResponse, error)
	VerifyResetToken(ctx context.Context, req *request.VerifyResetTokenRequest) error
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) (*response.MessageResponse, error)
}

type authService struct {
	repo     repository.AuthRepository
	sessions SessionManager
	log      *zap.Logger
}

func NewAuthService(repo repository.AuthRepository, sessions SessionManager, log *zap.Logger) AuthService {
	return &authService{
		repo:     repo,
		sessions: sessions,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError("Validation failed", errs)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	return s.signIn(ctx, "register", email, func(ctx context.Context) (entity.User, string, error) {
		creds, err := s.repo.Register(ctx, strings.TrimSpace(req.Name), email, req.Password)
		if err != nil {
			return entity.User{}, "", err
		}
		return creds.User, creds.Token, nil
	})
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError("Validation failed", errs)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	return s.signIn(ctx, "login", email, func(ctx context.Context) (entity.User, string, error) {
		creds, err := s.repo.Login(ctx, email, req.Password)
		if err != nil {
			return entity.User{}, "", err
		}
		return creds.User, creds.Token, nil
	})
}

func (s *authService) signIn(ctx context.Context, operation, email string, fn session.SignInFunc) (*response.AuthResponse, error) {
	id, st, err := s.sessions.SignIn(ctx, fn)
	if err != nil {
		s.log.Warn(operation+" failed",
			zap.Error(err),
			zap.String("email", email))
		return nil, err
	}

	s.log.Info("User signed in",
		zap.String("operation", operation),
		zap.String("user_id", st.User.ID))

	return &response.AuthResponse{
		SessionID: id.String(),
		ExpiresAt: st.ExpiresAt,
		User:      response.UserToResponse(st.User),
	}, nil
}

func (s *authService) Logout(ctx context.Context) error {
	_, id, err := currentState(ctx, s.sessions)
	if err != nil {
		return err
	}
	if id == uuid.Nil {
		return utils.NewUnauthenticatedError("Please sign in to continue")
	}

	if err := s.sessions.SignOut(ctx, id); err != nil {
		return err
	}

	s.log.Info("User logged out", zap.String("session_id", id.String()))
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) (*response.MessageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.NewValidationError("Validation failed", errs)
	}

	msg, err := s.repo.ForgotPassword(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		s.log.Warn("Forgot password failed", zap.Error(err))
		return nil, err
	}
	if msg == "" {
		msg = "If the email is registered, a reset link has been sent"
	}

	return &response.MessageResponse{Message: msg}, nil
}

func (s *authService) VerifyResetToken(ctx context.Context, req *request.VerifyResetTokenRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return utils.NewValidationError("Validation failed", errs)
	}

	if err := s.repo.VerifyResetToken(ctx, req.Token); err != nil {
		s.log.Warn("Reset token rejected", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) (*response.MessageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.NewValidationError("Validation failed", errs)
	}

	msg, err := s.repo.ResetPassword(ctx, req.Token, req.Password)
	if err != nil {
		s.log.Warn("Reset password failed", zap.Error(err))
		return nil, err
	}
	if msg == "" {
		msg = "Your password has been reset successfully"
	}

	return &response.MessageResponse{Message: msg}, nil
}
