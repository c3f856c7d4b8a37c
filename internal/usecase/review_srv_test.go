package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"amana-travel/internal/data/entity"
	"amana-travel/internal/dto/request"
	"amana-travel/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func reviewForm() *request.CreateReviewRequest {
	return &request.CreateReviewRequest{
		EntityID:   "t1",
		EntityType: "tour",
		Rating:     5,
		Comment:    "Wonderful trip",
	}
}

func TestCreateReviewAnonymousMakesNoPost(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewReviewService(repo, newFakeSessions(), testConfig(), zap.NewNop())

	_, err := svc.Create(context.Background(), reviewForm())

	assert.Equal(t, utils.KindUnauthenticated, utils.KindOf(err))
	assert.Empty(t, repo.callLog())
}

func TestCreateReviewRefetchesAfterCreate(t *testing.T) {
	repo := newFakeReviewRepo()
	sessions := newFakeSessions()
	ctx := withSession(sessions.signedIn(entity.User{ID: "u1", Name: "Amina"}, "remote-token"))
	svc := NewReviewService(repo, sessions, testConfig(), zap.NewNop())

	// warm the cache
	page, err := svc.List(ctx, entity.KindTour, "t1", 1)
	require.NoError(t, err)
	assert.Empty(t, page.Data)

	review, err := svc.Create(ctx, reviewForm())
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "Amina", review.UserName)

	assert.Equal(t, []string{"list", "create", "list"}, repo.callLog())

	// the refetched list is served from cache
	page, err = svc.List(ctx, entity.KindTour, "t1", 1)
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Len(t, repo.callLog(), 3)
}

func TestCreateReviewRefetchFailureIsNotSurfaced(t *testing.T) {
	repo := newFakeReviewRepo()
	sessions := newFakeSessions()
	ctx := withSession(sessions.signedIn(entity.User{ID: "u1"}, "remote-token"))
	svc := NewReviewService(repo, sessions, testConfig(), zap.NewNop())

	repo.listErr = errors.New("connection reset")

	_, err := svc.Create(ctx, reviewForm())
	require.NoError(t, err)

	repo.listErr = nil
	page, err := svc.List(ctx, entity.KindTour, "t1", 1)
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, []string{"create", "list", "list"}, repo.callLog())
}

func TestCreateReviewValidation(t *testing.T) {
	repo := newFakeReviewRepo()
	sessions := newFakeSessions()
	ctx := withSession(sessions.signedIn(entity.User{ID: "u1"}, "remote-token"))
	svc := NewReviewService(repo, sessions, testConfig(), zap.NewNop())

	form := reviewForm()
	form.Rating = 6
	form.Comment = "   "

	_, err := svc.Create(ctx, form)

	appErr := utils.AsAppError(err)
	assert.Equal(t, utils.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "rating")
	assert.Contains(t, appErr.Fields, "comment")
	assert.Empty(t, repo.callLog())
}

func TestListReviewsPagesInMemory(t *testing.T) {
	repo := newFakeReviewRepo()
	for i := 1; i <= 7; i++ {
		repo.reviews["Hajj:h1"] = append(repo.reviews["Hajj:h1"], entity.Review{
			ID:     fmt.Sprintf("r%d", i),
			Rating: 4,
		})
	}
	svc := NewReviewService(repo, newFakeSessions(), testConfig(), zap.NewNop())

	var sizes []int
	for p := 1; p <= 4; p++ {
		page, err := svc.List(context.Background(), entity.KindHajj, "h1", p)
		require.NoError(t, err)
		sizes = append(sizes, len(page.Data))
		assert.Equal(t, 3, page.Pagination.TotalPages)
		assert.EqualValues(t, 7, page.Pagination.Total)
	}

	assert.Equal(t, []int{3, 3, 1, 0}, sizes)
	assert.Equal(t, []string{"list"}, repo.callLog())
}

func TestRating(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo(), newFakeSessions(), testConfig(), zap.NewNop())

	rating, err := svc.Rating(context.Background(), entity.KindUmrah, "u1")
	require.NoError(t, err)

	assert.Equal(t, 4.5, rating.AverageRating)
	assert.Equal(t, 2, rating.ReviewCount)
}
