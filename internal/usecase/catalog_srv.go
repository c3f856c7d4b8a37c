package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"amana-travel/internal/catalog"
	"amana-travel/internal/data/entity"
	"amana-travel/internal/dto/request"
	"amana-travel/internal/dto/response"
	"amana-travel/pkg/utils"

	"go.uber.org/zap"
)

type CatalogService interface {
	List(ctx context.Context, kind entity.Kind, req *request.CatalogQuery) (*response.CatalogPageResponse, error)
	Get(ctx context.Context, kind entity.Kind, id string) (*response.PackageResponse, error)
}

type catalogService struct {
	store  *catalog.Store
	images imageResolver
	config *utils.Config
	loc    *time.Location
	log    *zap.Logger

	mu     sync.RWMutex
	facets map[entity.Kind]catalog.Facets
}

func NewCatalogService(store *catalog.Store, config *utils.Config, log *zap.Logger) CatalogService {
	log = log.With(zap.String("service", "catalog"))

	loc, err := config.Catalog.FilterLocation()
	if err != nil {
		log.Warn("Unknown filter timezone, using local time",
			zap.String("timezone", config.Catalog.Timezone),
			zap.Error(err))
		loc = time.Local
	}

	s := &catalogService{
		store:  store,
		images: newImageResolver(config.Remote),
		config: config,
		loc:    loc,
		log:    log,
		facets: make(map[entity.Kind]catalog.Facets),
	}

	// facets only change when a snapshot does
	store.Subscribe(func(snap catalog.Snapshot) {
		f := catalog.BuildFacets(snap.Items)
		s.mu.Lock()
		s.facets[snap.Kind] = f
		s.mu.Unlock()
	})

	return s
}

func (s *catalogService) List(ctx context.Context, kind entity.Kind, req *request.CatalogQuery) (*response.CatalogPageResponse, error) {
	snap, err := s.store.List(ctx, kind)
	if err != nil {
		s.log.Error("Failed to load catalog", zap.Error(err), zap.String("kind", kind.String()))
		return nil, err
	}

	order, ok := catalog.ParseSortOrder(req.Sort)
	if !ok {
		s.log.Warn("Invalid sort order ignored", zap.String("sort", req.Sort))
	}

	perPage := req.PerPage
	if perPage < 1 {
		perPage = s.config.Catalog.PerPage
	}
	if perPage > 100 {
		perPage = 100
	}

	view := catalog.NewView().
		WithCriteria(catalog.Criteria{
			Search:      req.Search,
			Destination: req.Destination,
			Year:        req.Year,
			Duration:    req.Duration,
			PackageType: req.PackageType,
			MinPrice:    req.MinPrice,
			MaxPrice:    req.MaxPrice,
			Month:       req.Month,
		}).
		WithSort(order).
		WithPage(req.Page)

	// a page number only means something for the criteria it was issued for
	if req.Fingerprint != "" && req.Fingerprint != view.Fingerprint() {
		view = view.WithPage(1)
	}

	page := view.Apply(snap.Items, perPage, s.loc)

	items := make([]response.PackageResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, s.toResponse(p))
	}

	return &response.CatalogPageResponse{
		PaginatedResponse: *response.NewPaginatedResponse(items, page.Page, page.PerPage, int64(page.Total)),
		ShowPagination:    page.ShowControls,
		Facets:            s.facetsFor(snap),
		Fingerprint:       view.Fingerprint(),
	}, nil
}

func (s *catalogService) facetsFor(snap *catalog.Snapshot) catalog.Facets {
	s.mu.RLock()
	f, ok := s.facets[snap.Kind]
	s.mu.RUnlock()

	if ok {
		return f
	}
	return catalog.BuildFacets(snap.Items)
}

func (s *catalogService) Get(ctx context.Context, kind entity.Kind, id string) (*response.PackageResponse, error) {
	pkg, err := s.store.Get(ctx, kind, id)
	if err != nil {
		if utils.KindOf(err) != utils.KindNotFound {
			s.log.Error("Failed to load package",
				zap.Error(err),
				zap.String("kind", kind.String()),
				zap.String("package_id", id))
		}
		return nil, err
	}

	resp := s.toResponse(pkg)
	return &resp, nil
}

func (s *catalogService) toResponse(p entity.Package) response.PackageResponse {
	return response.PackageResponse{
		Kind:      p.Kind(),
		ImageURLs: s.images.resolve(p.Kind(), p.Info().Images),
		Package:   p,
	}
}

// imageResolver builds {IMAGE_URL}/{dir}/{file}. A per-kind override
// replaces the base and the directory.
type imageResolver struct {
	base      string
	overrides map[entity.Kind]string
}

func newImageResolver(config utils.RemoteConfig) imageResolver {
	return imageResolver{
		base: config.ImageURL,
		overrides: map[entity.Kind]string{
			entity.KindTour:  config.ImageURLTour,
			entity.KindHajj:  config.ImageURLHajj,
			entity.KindUmrah: config.ImageURLUmrah,
		},
	}
}

func (r imageResolver) resolve(kind entity.Kind, files []string) []string {
	dir := r.base + "/" + kind.ImageDir()
	if o := r.overrides[kind]; o != "" {
		dir = o
	}

	out := make([]string, 0, len(files))
	for _, f := range files {
		if strings.HasPrefix(f, "http://") || strings.HasPrefix(f, "https://") {
			out = append(out, f)
			continue
		}
		out = append(out, dir+"/"+strings.TrimLeft(f, "/"))
	}
	return out
}
