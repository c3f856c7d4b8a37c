package usecase

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"amana-travel/internal/catalog"
	"amana-travel/internal/data/entity"
	"amana-travel/internal/dto/request"
	"amana-travel/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testTours() []entity.Package {
	items := make([]entity.Package, 0, 7)
	for i := 1; i <= 7; i++ {
		destination := "Nepal"
		if i%2 == 0 {
			destination = "Turkey"
		}
		items = append(items, &entity.Tour{
			PackageInfo:    entity.PackageInfo{ID: fmt.Sprintf("t%d", i), Title: fmt.Sprintf("Tour %d", i), Images: []string{fmt.Sprintf("t%d.jpg", i)}},
			Destination:    destination,
			PricePerPerson: float64(i * 100),
		})
	}
	return items
}

func newTestCatalog(items map[entity.Kind][]entity.Package) CatalogService {
	store := catalog.NewStore(&fakeFetcher{items: items}, time.Minute, zap.NewNop())
	return NewCatalogService(store, testConfig(), zap.NewNop())
}

func TestCatalogListDefaultPageSize(t *testing.T) {
	svc := newTestCatalog(map[entity.Kind][]entity.Package{entity.KindTour: testTours()})

	page, err := svc.List(context.Background(), entity.KindTour, &request.CatalogQuery{})
	require.NoError(t, err)

	assert.Len(t, page.Data, 3)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.EqualValues(t, 7, page.Pagination.Total)
	assert.True(t, page.ShowPagination)
	assert.Equal(t, []string{"Nepal", "Turkey"}, page.Facets.Destinations)
	assert.NotEmpty(t, page.Fingerprint)
}

func TestCatalogListFilterAndSort(t *testing.T) {
	svc := newTestCatalog(map[entity.Kind][]entity.Package{entity.KindTour: testTours()})

	page, err := svc.List(context.Background(), entity.KindTour, &request.CatalogQuery{
		Destination: "Turkey",
		Sort:        string(catalog.SortPriceDesc),
	})
	require.NoError(t, err)

	var got []string
	for _, p := range page.Data {
		got = append(got, p.Package.Info().ID)
	}
	assert.Equal(t, []string{"t6", "t4", "t2"}, got)
	assert.False(t, page.ShowPagination)
}

func TestCatalogListStaleFingerprintResetsPage(t *testing.T) {
	svc := newTestCatalog(map[entity.Kind][]entity.Package{entity.KindTour: testTours()})
	ctx := context.Background()

	first, err := svc.List(ctx, entity.KindTour, &request.CatalogQuery{})
	require.NoError(t, err)

	same, err := svc.List(ctx, entity.KindTour, &request.CatalogQuery{
		PaginatedRequest: request.PaginatedRequest{Page: 2},
		Fingerprint:      first.Fingerprint,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, same.Pagination.Page)

	changed, err := svc.List(ctx, entity.KindTour, &request.CatalogQuery{
		PaginatedRequest: request.PaginatedRequest{Page: 2},
		Destination:      "Nepal",
		Fingerprint:      first.Fingerprint,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, changed.Pagination.Page)
}

func TestCatalogImageURLs(t *testing.T) {
	hajj := &entity.Hajj{}
	hajj.PackageInfo = entity.PackageInfo{ID: "h1", Status: entity.StatusActive, Images: []string{"kaaba.jpg"}}

	tour := &entity.Tour{PackageInfo: entity.PackageInfo{
		ID:     "t1",
		Images: []string{"/nepal.jpg", "https://cdn.example.com/everest.jpg"},
	}}

	svc := newTestCatalog(map[entity.Kind][]entity.Package{
		entity.KindTour: {tour},
		entity.KindHajj: {hajj},
	})

	got, err := svc.Get(context.Background(), entity.KindTour, "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"http://img.test/images/tours/nepal.jpg",
		"https://cdn.example.com/everest.jpg",
	}, got.ImageURLs)

	got, err = svc.Get(context.Background(), entity.KindHajj, "h1")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://cdn.test/hajj-images/kaaba.jpg"}, got.ImageURLs)
}

func TestCatalogInactivePackageIsNotFound(t *testing.T) {
	umrah := &entity.Umrah{}
	umrah.PackageInfo = entity.PackageInfo{ID: "u1", Status: entity.StatusDraft}

	svc := newTestCatalog(map[entity.Kind][]entity.Package{entity.KindUmrah: {umrah}})

	_, err := svc.Get(context.Background(), entity.KindUmrah, "u1")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	page, err := svc.List(context.Background(), entity.KindUmrah, &request.CatalogQuery{})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
}

func TestCatalogListHugePageIsEmpty(t *testing.T) {
	svc := newTestCatalog(map[entity.Kind][]entity.Package{entity.KindTour: testTours()})

	page, err := svc.List(context.Background(), entity.KindTour, &request.CatalogQuery{
		PaginatedRequest: request.PaginatedRequest{Page: math.MaxInt},
	})
	require.NoError(t, err)

	assert.Empty(t, page.Data)
	assert.EqualValues(t, 7, page.Pagination.Total)
}
