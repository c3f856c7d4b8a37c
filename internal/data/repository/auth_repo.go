package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"amana-travel/internal/data/entity"
	"amana-travel/pkg/remote"
	"amana-travel/pkg/utils"

	"go.uber.org/zap"
)

// Credentials is what the remote API hands back on login and registration.
type Credentials struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

type AuthRepository interface {
	Login(ctx context.Context, email, password string) (*Credentials, error)
	Register(ctx context.Context, name, email, password string) (*Credentials, error)
	Me(ctx context.Context, token string) (*entity.User, error)
	Logout(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	VerifyResetToken(ctx context.Context, resetToken string) error
	ResetPassword(ctx context.Context, resetToken, password string) (string, error)
}

type authRepository struct {
	client *remote.Client
	log    *zap.Logger
}

func NewAuthRepository(client *remote.Client, log *zap.Logger) AuthRepository {
	return &authRepository{
		client: client,
		log:    log.With(zap.String("repository", "auth")),
	}
}

type messageReply struct {
	Message string `json:"message"`
}

func (r *authRepository) Login(ctx context.Context, email, password string) (*Credentials, error) {
	body := map[string]string{"email": email, "password": password}

	var creds Credentials
	if err := r.client.Post(ctx, "/auth/login", "", body, &creds); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	return &creds, nil
}

func (r *authRepository) Register(ctx context.Context, name, email, password string) (*Credentials, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var creds Credentials
	if err := r.client.Post(ctx, "/auth/register", "", body, &creds); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	return &creds, nil
}

// Me accepts {user: {...}} as well as a bare user object.
func (r *authRepository) Me(ctx context.Context, token string) (*entity.User, error) {
	var raw json.RawMessage
	if err := r.client.Get(ctx, "/auth/me", nil, token, &raw); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}

	var reply struct {
		User *entity.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &reply); err == nil && reply.User != nil && reply.User.ID != "" {
		return reply.User, nil
	}

	var user entity.User
	if err := json.Unmarshal(raw, &user); err == nil && user.ID != "" {
		return &user, nil
	}

	r.log.Warn("Identity check returned no user")
	return nil, utils.NewUnauthenticatedError("Session is no longer valid")
}

func (r *authRepository) Logout(ctx context.Context, token string) error {
	if err := r.client.Post(ctx, "/auth/logout", token, struct{}{}, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (r *authRepository) ForgotPassword(ctx context.Context, email string) (string, error) {
	var reply messageReply
	if err := r.client.Post(ctx, "/auth/forgot-password", "", map[string]string{"email": email}, &reply); err != nil {
		return "", fmt.Errorf("forgot password: %w", err)
	}
	return reply.Message, nil
}

func (r *authRepository) VerifyResetToken(ctx context.Context, resetToken string) error {
	if err := r.client.Post(ctx, "/auth/verify-reset-token", "", map[string]string{"token": resetToken}, nil); err != nil {
		return fmt.Errorf("verify reset token: %w", err)
	}
	return nil
}

func (r *authRepository) ResetPassword(ctx context.Context, resetToken, password string) (string, error) {
	body := map[string]string{"token": resetToken, "password": password}

	var reply messageReply
	if err := r.client.Post(ctx, "/auth/reset-password", "", body, &reply); err != nil {
		return "", fmt.Errorf("reset password: %w", err)
	}
	return reply.Message, nil
}
