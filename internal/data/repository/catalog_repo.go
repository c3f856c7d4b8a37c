package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"amana-travel/internal/data/entity"
	"amana-travel/pkg/remote"
	"amana-travel/pkg/utils"

	"go.uber.org/zap"
)

type CatalogRepository interface {
	List(ctx context.Context, kind entity.Kind) ([]entity.Package, error)
	FindByID(ctx context.Context, kind entity.Kind, id string) (entity.Package, error)
}

type catalogRepository struct {
	client *remote.Client
	log    *zap.Logger
}

func NewCatalogRepository(client *remote.Client, log *zap.Logger) CatalogRepository {
	return &catalogRepository{
		client: client,
		log:    log.With(zap.String("repository", "catalog")),
	}
}

func (r *catalogRepository) List(ctx context.Context, kind entity.Kind) ([]entity.Package, error) {
	var raw json.RawMessage
	if err := r.client.Get(ctx, kind.Path(), nil, "", &raw); err != nil {
		return nil, fmt.Errorf("list %s packages: %w", kind, err)
	}

	items, err := entity.DecodePackages(kind, raw)
	if err != nil {
		r.log.Error("Failed to decode package list",
			zap.Error(err),
			zap.String("kind", kind.String()),
		)
		return nil, utils.NewRemoteError("Unexpected response from the booking server", err)
	}

	return items, nil
}

func (r *catalogRepository) FindByID(ctx context.Context, kind entity.Kind, id string) (entity.Package, error) {
	var raw json.RawMessage
	if err := r.client.Get(ctx, kind.Path()+"/"+url.PathEscape(id), nil, "", &raw); err != nil {
		return nil, fmt.Errorf("find %s %s: %w", kind, id, err)
	}

	if len(raw) == 0 || string(raw) == "null" {
		return nil, utils.NewNotFoundError("Package not found")
	}

	pkg, err := entity.DecodePackage(kind, raw)
	if err != nil {
		r.log.Error("Failed to decode package",
			zap.Error(err),
			zap.String("kind", kind.String()),
			zap.String("package_id", id),
		)
		return nil, utils.NewRemoteError("Unexpected response from the booking server", err)
	}

	return pkg, nil
}
