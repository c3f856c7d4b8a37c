package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"amana-travel/internal/data/entity"
	"amana-travel/internal/data/repository"
	"amana-travel/internal/dto/request"
	"amana-travel/internal/dto/response"
	"amana-travel/pkg/utils"

	"go.uber.org/zap"
)

type ReviewService interface {
	List(ctx context.Context, kind entity.Kind, entityID string, page int) (*response.PaginatedResponse[response.ReviewResponse], error)
	Create(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	Rating(ctx context.Context, kind entity.Kind, entityID string) (*response.RatingResponse, error)
}

type reviewList struct {
	reviews   []entity.Review
	fetchedAt time.Time
}

type reviewService struct {
	repo     repository.ReviewRepository
	sessions SessionManager
	perPage  int
	ttl      time.Duration
	now      func() time.Time
	log      *zap.Logger

	mu    sync.RWMutex
	lists map[string]reviewList
}

func NewReviewService(repo repository.ReviewRepository, sessions SessionManager, config *utils.Config, log *zap.Logger) ReviewService {
	perPage := config.Catalog.ReviewsPerPage
	if perPage < 1 {
		perPage = 3
	}

	return &reviewService{
		repo:     repo,
		sessions: sessions,
		perPage:  perPage,
		ttl:      config.Catalog.TTL,
		now:      time.Now,
		log:      log.With(zap.String("service", "review")),
		lists:    make(map[string]reviewList),
	}
}

func reviewKey(entityType, entityID string) string {
	return entityType + ":" + entityID
}

// List pages the entity's reviews in memory.
func (s *reviewService) List(ctx context.Context, kind entity.Kind, entityID string, page int) (*response.PaginatedResponse[response.ReviewResponse], error) {
	reviews, err := s.reviews(ctx, kind.ReviewEntity(), entityID)
	if err != nil {
		s.log.Error("Failed to list reviews",
			zap.Error(err),
			zap.String("entity_type", kind.ReviewEntity()),
			zap.String("entity_id", entityID))
		return nil, err
	}

	items := utils.Paginate(reviews, s.perPage, page)
	out := make([]response.ReviewResponse, 0, len(items))
	for i := range items {
		out = append(out, response.ReviewToResponse(&items[i]))
	}

	return response.NewPaginatedResponse(out, page, s.perPage, int64(len(reviews))), nil
}

func (s *reviewService) reviews(ctx context.Context, entityType, entityID string) ([]entity.Review, error) {
	key := reviewKey(entityType, entityID)

	s.mu.RLock()
	cached, ok := s.lists[key]
	s.mu.RUnlock()

	if ok && (s.ttl <= 0 || s.now().Sub(cached.fetchedAt) < s.ttl) {
		return cached.reviews, nil
	}

	return s.refetch(ctx, entityType, entityID)
}

func (s *reviewService) refetch(ctx context.Context, entityType, entityID string) ([]entity.Review, error) {
	reviews, err := s.repo.List(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lists[reviewKey(entityType, entityID)] = reviewList{reviews: reviews, fetchedAt: s.now()}
	s.mu.Unlock()

	return reviews, nil
}

// Create requires a signed-in session and never reaches the network
// otherwise. After a successful create the entity's list is fetched again.
func (s *reviewService) Create(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	st, _, err := currentState(ctx, s.sessions)
	if err != nil {
		return nil, err
	}
	if !st.IsAuthenticated() {
		return nil, utils.NewUnauthenticatedError("Please sign in to leave a review")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Review validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError("Validation failed", errs)
	}

	kind, _ := entity.ParseKind(req.EntityType)
	entityType := kind.ReviewEntity()

	created, err := s.repo.Create(ctx, st.Token, &repository.NewReview{
		EntityID:   req.EntityID,
		EntityType: entityType,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	})
	if err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("entity_id", req.EntityID),
			zap.String("user_id", st.User.ID))
		return nil, err
	}

	if _, err := s.refetch(ctx, entityType, req.EntityID); err != nil {
		s.log.Warn("Failed to refresh reviews after create",
			zap.Error(err),
			zap.String("entity_id", req.EntityID))

		s.mu.Lock()
		delete(s.lists, reviewKey(entityType, req.EntityID))
		s.mu.Unlock()
	}

	s.log.Info("Review created",
		zap.String("entity_type", entityType),
		zap.String("entity_id", req.EntityID),
		zap.String("user_id", st.User.ID))

	resp := response.ReviewToResponse(created)
	if resp.UserName == "" {
		resp.UserName = st.User.Name
	}
	return &resp, nil
}

func (s *reviewService) Rating(ctx context.Context, kind entity.Kind, entityID string) (*response.RatingResponse, error) {
	rating, err := s.repo.Rating(ctx, kind.ReviewEntity(), entityID)
	if err != nil {
		s.log.Error("Failed to get rating",
			zap.Error(err),
			zap.String("entity_id", entityID))
		return nil, err
	}

	return &response.RatingResponse{
		AverageRating: rating.AverageRating,
		ReviewCount:   rating.ReviewCount,
	}, nil
}
