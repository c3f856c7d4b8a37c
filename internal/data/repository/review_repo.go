package repository

import (
	"context"
	"fmt"
	"net/url"

	"amana-travel/internal/data/entity"
	"amana-travel/pkg/remote"

	"go.uber.org/zap"
)

// NewReview is the body of POST /reviews.
type NewReview struct {
	EntityID   string `json:"entityId"`
	EntityType string `json:"entityType"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

type ReviewRepository interface {
	List(ctx context.Context, entityType, entityID string) ([]entity.Review, error)
	Create(ctx context.Context, token string, review *NewReview) (*entity.Review, error)
	Rating(ctx context.Context, entityType, entityID string) (*entity.Rating, error)
}

type reviewRepository struct {
	client *remote.Client
	log    *zap.Logger
}

func NewReviewRepository(client *remote.Client, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		client: client,
		log:    log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) List(ctx context.Context, entityType, entityID string) ([]entity.Review, error) {
	query := url.Values{}
	query.Set("entityId", entityID)
	query.Set("entityType", entityType)

	var reviews []entity.Review
	if err := r.client.Get(ctx, "/reviews", query, "", &reviews); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) Create(ctx context.Context, token string, review *NewReview) (*entity.Review, error) {
	var created entity.Review
	if err := r.client.Post(ctx, "/reviews", token, review, &created); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	return &created, nil
}

func (r *reviewRepository) Rating(ctx context.Context, entityType, entityID string) (*entity.Rating, error) {
	path := fmt.Sprintf("/reviews/rating/%s/%s", url.PathEscape(entityType), url.PathEscape(entityID))

	var rating entity.Rating
	if err := r.client.Get(ctx, path, nil, "", &rating); err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}

	return &rating, nil
}
