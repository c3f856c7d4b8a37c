package repository

import (
	"context"
	"fmt"
	"net/url"

	"amana-travel/internal/data/entity"
	"amana-travel/pkg/remote"

	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, token string, booking *entity.Booking) (*entity.Booking, error)
	ListForPackage(ctx context.Context, token, userID, packageID string) ([]entity.Booking, error)
}

type bookingRepository struct {
	client *remote.Client
	log    *zap.Logger
}

func NewBookingRepository(client *remote.Client, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		client: client,
		log:    log.With(zap.String("repository", "booking")),
	}
}

// Create sends exactly one POST /bookings. token may be empty; the server
// decides whether an anonymous booking is acceptable.
func (r *bookingRepository) Create(ctx context.Context, token string, booking *entity.Booking) (*entity.Booking, error) {
	var created entity.Booking
	if err := r.client.Post(ctx, "/bookings", token, booking, &created); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if created.Status == "" {
		created.Status = entity.BookingStatusPending
	}

	return &created, nil
}

func (r *bookingRepository) ListForPackage(ctx context.Context, token, userID, packageID string) ([]entity.Booking, error) {
	path := fmt.Sprintf("/bookings/%s/%s", url.PathEscape(userID), url.PathEscape(packageID))

	var bookings []entity.Booking
	if err := r.client.Get(ctx, path, nil, token, &bookings); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return bookings, nil
}
