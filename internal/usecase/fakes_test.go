package usecase

import (
	"context"
	"sync"
	"time"

	"amana-travel/internal/data/entity"
	"amana-travel/internal/data/repository"
	"amana-travel/internal/session"
	"amana-travel/pkg/utils"

	"github.com/google/uuid"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Remote: utils.RemoteConfig{
			ImageURL:     "http://img.test/images",
			ImageURLHajj: "http://cdn.test/hajj-images",
		},
		Catalog: utils.CatalogConfig{
			TTL:            time.Minute,
			PerPage:        3,
			ReviewsPerPage: 3,
			Timezone:       "UTC",
		},
		Brochure: utils.BrochureConfig{
			Company: "Amana Tours & Travels",
			Phone:   "+880 1324-418968",
		},
	}
}

// fakeSessions resolves session ids from a fixed table.
type fakeSessions struct {
	mu       sync.Mutex
	states   map[uuid.UUID]session.State
	signOuts []uuid.UUID
	nextID   uuid.UUID
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{states: make(map[uuid.UUID]session.State)}
}

func (f *fakeSessions) signedIn(user entity.User, token string) uuid.UUID {
	id := uuid.New()
	f.mu.Lock()
	f.states[id] = session.State{Status: session.Authenticated, User: user, Token: token, ExpiresAt: time.Now().Add(time.Hour)}
	f.mu.Unlock()
	return id
}

func (f *fakeSessions) State(ctx context.Context, id uuid.UUID) (session.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.states[id]
	if !ok {
		return session.State{Status: session.Anonymous}, nil
	}
	return st, nil
}

func (f *fakeSessions) SignIn(ctx context.Context, fn session.SignInFunc) (uuid.UUID, session.State, error) {
	user, token, err := fn(ctx)
	if err != nil {
		return uuid.Nil, session.State{}, err
	}
	id := f.nextID
	if id == uuid.Nil {
		id = uuid.New()
	}
	st := session.State{Status: session.Authenticated, User: user, Token: token, ExpiresAt: time.Now().Add(time.Hour)}

	f.mu.Lock()
	f.states[id] = st
	f.mu.Unlock()
	return id, st, nil
}

func (f *fakeSessions) SignOut(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.states[id]; !ok {
		return utils.NewUnauthenticatedError("Please sign in to continue")
	}
	delete(f.states, id)
	f.signOuts = append(f.signOuts, id)
	return nil
}

func withSession(id uuid.UUID) context.Context {
	return utils.SetSessionContext(context.Background(), id.String())
}

// fakeBookingRepo records what reached the network.
type fakeBookingRepo struct {
	mu      sync.Mutex
	created []*entity.Booking
	tokens  []string
	err     error
}

func (r *fakeBookingRepo) Create(ctx context.Context, token string, b *entity.Booking) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, b)
	r.tokens = append(r.tokens, token)

	if token == "" {
		return nil, utils.NewUnauthenticatedError("Not authorized, no token")
	}
	if r.err != nil {
		return nil, r.err
	}

	out := *b
	out.ID = "b1"
	out.Status = entity.BookingStatusPending
	return &out, nil
}

func (r *fakeBookingRepo) ListForPackage(ctx context.Context, token, userID, packageID string) ([]entity.Booking, error) {
	return []entity.Booking{{ID: "b1", UserID: userID, PackageID: packageID}}, nil
}

func (r *fakeBookingRepo) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.created)
}

// fakeReviewRepo keeps reviews in memory and logs the call order.
type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string][]entity.Review
	calls   []string
	listErr error
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string][]entity.Review)}
}

func (r *fakeReviewRepo) List(ctx context.Context, entityType, entityID string) ([]entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "list")
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]entity.Review(nil), r.reviews[entityType+":"+entityID]...), nil
}

func (r *fakeReviewRepo) Create(ctx context.Context, token string, review *repository.NewReview) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "create")

	created := entity.Review{
		ID:         uuid.NewString(),
		EntityID:   review.EntityID,
		EntityType: review.EntityType,
		Rating:     review.Rating,
		Comment:    review.Comment,
	}
	key := review.EntityType + ":" + review.EntityID
	r.reviews[key] = append(r.reviews[key], created)
	return &created, nil
}

func (r *fakeReviewRepo) Rating(ctx context.Context, entityType, entityID string) (*entity.Rating, error) {
	return &entity.Rating{AverageRating: 4.5, ReviewCount: 2}, nil
}

func (r *fakeReviewRepo) callLog() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// fakeAuthRepo answers for a single account.
type fakeAuthRepo struct {
	logins []string
}

func (r *fakeAuthRepo) Login(ctx context.Context, email, password string) (*repository.Credentials, error) {
	r.logins = append(r.logins, email)
	if email != "amina@example.com" || password != "secret1" {
		return nil, utils.NewUnauthenticatedError("Invalid email or password")
	}
	return &repository.Credentials{Token: "remote-token", User: entity.User{ID: "u1", Name: "Amina", Email: email}}, nil
}

func (r *fakeAuthRepo) Register(ctx context.Context, name, email, password string) (*repository.Credentials, error) {
	return &repository.Credentials{Token: "new-token", User: entity.User{ID: "u2", Name: name, Email: email}}, nil
}

func (r *fakeAuthRepo) Me(ctx context.Context, token string) (*entity.User, error) {
	return &entity.User{ID: "u1"}, nil
}

func (r *fakeAuthRepo) Logout(ctx context.Context, token string) error {
	return nil
}

func (r *fakeAuthRepo) ForgotPassword(ctx context.Context, email string) (string, error) {
	return "", nil
}

func (r *fakeAuthRepo) VerifyResetToken(ctx context.Context, resetToken string) error {
	if resetToken != "valid" {
		return utils.NewRemoteError("Invalid or expired reset token", nil)
	}
	return nil
}

func (r *fakeAuthRepo) ResetPassword(ctx context.Context, resetToken, password string) (string, error) {
	return "Password updated", nil
}

// fakeFetcher serves a fixed catalog.
type fakeFetcher struct {
	items map[entity.Kind][]entity.Package
}

func (f *fakeFetcher) List(ctx context.Context, kind entity.Kind) ([]entity.Package, error) {
	return f.items[kind], nil
}

func (f *fakeFetcher) FindByID(ctx context.Context, kind entity.Kind, id string) (entity.Package, error) {
	for _, p := range f.items[kind] {
		if p.Info().ID == id {
			return p, nil
		}
	}
	return nil, utils.NewNotFoundError("Package not found")
}
