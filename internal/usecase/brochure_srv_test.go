package usecase

import (
	"bytes"
	"context"
	"testing"
	"time"

	"amana-travel/internal/catalog"
	"amana-travel/internal/data/entity"
	"amana-travel/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBrochureGenerate(t *testing.T) {
	umrah := &entity.Umrah{MinimumGroupSize: 10}
	umrah.PackageInfo = entity.PackageInfo{ID: "u1", Title: "Ramadan Umrah", Status: entity.StatusActive}
	umrah.Duration = "14 Days"

	store := catalog.NewStore(&fakeFetcher{items: map[entity.Kind][]entity.Package{
		entity.KindUmrah: {umrah},
	}}, time.Minute, zap.NewNop())
	svc := NewBrochureService(store, testConfig(), zap.NewNop())

	filename, pdf, err := svc.Generate(context.Background(), entity.KindUmrah, "u1")
	require.NoError(t, err)

	assert.Equal(t, "umrah-ramadan-umrah-details.pdf", filename)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestBrochureUnknownPackage(t *testing.T) {
	store := catalog.NewStore(&fakeFetcher{}, time.Minute, zap.NewNop())
	svc := NewBrochureService(store, testConfig(), zap.NewNop())

	_, _, err := svc.Generate(context.Background(), entity.KindTour, "missing")

	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}
