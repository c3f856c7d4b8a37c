package usecase

import (
	"context"
	"testing"

	"amana-travel/internal/data/entity"
	"amana-travel/internal/dto/request"
	"amana-travel/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoginNormalizesEmail(t *testing.T) {
	repo := &fakeAuthRepo{}
	sessions := newFakeSessions()
	sessions.nextID = uuid.MustParse("3f2504e0-4f89-41d3-9a0c-0305e82c3301")
	svc := NewAuthService(repo, sessions, zap.NewNop())

	resp, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "  Amina@Example.com ",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"amina@example.com"}, repo.logins)
	assert.Equal(t, "3f2504e0-4f89-41d3-9a0c-0305e82c3301", resp.SessionID)
	assert.Equal(t, "u1", resp.User.ID)

	st, err := sessions.State(context.Background(), sessions.nextID)
	require.NoError(t, err)
	assert.Equal(t, "remote-token", st.Token)
}

func TestLoginValidationMakesNoCall(t *testing.T) {
	repo := &fakeAuthRepo{}
	svc := NewAuthService(repo, newFakeSessions(), zap.NewNop())

	_, err := svc.Login(context.Background(), &request.LoginRequest{Email: "not-an-email"})

	appErr := utils.AsAppError(err)
	assert.Equal(t, utils.KindValidation, appErr.Kind)
	assert.Equal(t, "Invalid email format", appErr.Fields["email"])
	assert.Equal(t, "This field is required", appErr.Fields["password"])
	assert.Empty(t, repo.logins)
}

func TestLoginWrongPassword(t *testing.T) {
	sessions := newFakeSessions()
	svc := NewAuthService(&fakeAuthRepo{}, sessions, zap.NewNop())

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "amina@example.com",
		Password: "wrong-password",
	})

	assert.Equal(t, utils.KindUnauthenticated, utils.KindOf(err))
	assert.Empty(t, sessions.states)
}

func TestRegisterSignsIn(t *testing.T) {
	sessions := newFakeSessions()
	svc := NewAuthService(&fakeAuthRepo{}, sessions, zap.NewNop())

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     " Yusuf ",
		Email:    "Yusuf@Example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Yusuf", resp.User.Name)
	assert.Equal(t, "yusuf@example.com", resp.User.Email)
	assert.Len(t, sessions.states, 1)
}

func TestLogout(t *testing.T) {
	sessions := newFakeSessions()
	svc := NewAuthService(&fakeAuthRepo{}, sessions, zap.NewNop())

	err := svc.Logout(context.Background())
	assert.Equal(t, utils.KindUnauthenticated, utils.KindOf(err))

	id := sessions.signedIn(entity.User{ID: "u1"}, "remote-token")
	require.NoError(t, svc.Logout(withSession(id)))
	assert.Equal(t, []uuid.UUID{id}, sessions.signOuts)
}

func TestPasswordReset(t *testing.T) {
	svc := NewAuthService(&fakeAuthRepo{}, newFakeSessions(), zap.NewNop())
	ctx := context.Background()

	msg, err := svc.ForgotPassword(ctx, &request.ForgotPasswordRequest{Email: "amina@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "If the email is registered, a reset link has been sent", msg.Message)

	require.NoError(t, svc.VerifyResetToken(ctx, &request.VerifyResetTokenRequest{Token: "valid"}))
	assert.Equal(t, utils.KindRemote, utils.KindOf(svc.VerifyResetToken(ctx, &request.VerifyResetTokenRequest{Token: "stale"})))

	_, err = svc.ResetPassword(ctx, &request.ResetPasswordRequest{
		Token:           "valid",
		Password:        "secret2",
		ConfirmPassword: "secret3",
	})
	appErr := utils.AsAppError(err)
	assert.Equal(t, utils.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "confirm_password")

	msg, err = svc.ResetPassword(ctx, &request.ResetPasswordRequest{
		Token:           "valid",
		Password:        "secret2",
		ConfirmPassword: "secret2",
	})
	require.NoError(t, err)
	assert.Equal(t, "Password updated", msg.Message)
}

func TestGetProfile(t *testing.T) {
	sessions := newFakeSessions()
	svc := NewUserService(sessions, zap.NewNop())

	_, err := svc.GetProfile(context.Background())
	assert.Equal(t, utils.KindUnauthenticated, utils.KindOf(err))

	id := sessions.signedIn(entity.User{ID: "u1", Name: "Amina", Email: "amina@example.com"}, "remote-token")
	profile, err := svc.GetProfile(withSession(id))
	require.NoError(t, err)
	assert.Equal(t, "Amina", profile.User.Name)
	assert.False(t, profile.ExpiresAt.IsZero())
}
