package repository

import (
	"amana-travel/pkg/database"
	"amana-travel/pkg/remote"
	"amana-travel/pkg/utils"

	"go.uber.org/zap"
)

// Repository groups the data sources. Everything but sessions lives behind
// the remote package API.
type Repository struct {
	Catalog CatalogRepository
	Booking BookingRepository
	Review  ReviewRepository
	Auth    AuthRepository
	Session SessionRepository
}

func NewRepository(db database.PgxIface, client *remote.Client, sealer *utils.Sealer, log *zap.Logger) *Repository {
	return &Repository{
		Catalog: NewCatalogRepository(client, log),
		Booking: NewBookingRepository(client, log),
		Review:  NewReviewRepository(client, log),
		Auth:    NewAuthRepository(client, log),
		Session: NewSessionRepository(db, sealer, log),
	}
}
