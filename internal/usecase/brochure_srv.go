package usecase

import (
	"bytes"
	"context"

	"amana-travel/internal/brochure"
	"amana-travel/internal/catalog"
	"amana-travel/internal/data/entity"
	"amana-travel/pkg/utils"

	"go.uber.org/zap"
)

type BrochureService interface {
	Generate(ctx context.Context, kind entity.Kind, id string) (filename string, pdf []byte, err error)
}

type brochureService struct {
	store  *catalog.Store
	agency brochure.Agency
	log    *zap.Logger
}

func NewBrochureService(store *catalog.Store, config *utils.Config, log *zap.Logger) BrochureService {
	return &brochureService{
		store: store,
		agency: brochure.Agency{
			Name:    config.Brochure.Company,
			Tagline: config.Brochure.Tagline,
			Phone:   config.Brochure.Phone,
			Email:   config.Brochure.Email,
			Website: config.Brochure.Website,
		},
		log: log.With(zap.String("service", "brochure")),
	}
}

func (s *brochureService) Generate(ctx context.Context, kind entity.Kind, id string) (string, []byte, error) {
	pkg, err := s.store.Get(ctx, kind, id)
	if err != nil {
		return "", nil, err
	}

	doc := brochure.Render(pkg, s.agency)

	var buf bytes.Buffer
	if err := brochure.WritePDF(doc, &buf); err != nil {
		s.log.Error("Failed to render brochure",
			zap.Error(err),
			zap.String("kind", kind.String()),
			zap.String("package_id", id))
		return "", nil, utils.NewInternalError(err)
	}

	s.log.Info("Brochure generated",
		zap.String("kind", kind.String()),
		zap.String("package_id", id),
		zap.Int("pages", len(doc.Pages)),
		zap.Int("bytes", buf.Len()))

	return doc.Filename, buf.Bytes(), nil
}
