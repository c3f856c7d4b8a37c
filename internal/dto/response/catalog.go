package response

import (
	"amana-travel/internal/catalog"
	"amana-travel/internal/data/entity"
)

// PackageResponse wraps a package with its resolved image URLs.
type PackageResponse struct {
	Kind      entity.Kind    `json:"kind"`
	ImageURLs []string       `json:"image_urls"`
	Package   entity.Package `json:"package"`
}

type CatalogPageResponse struct {
	PaginatedResponse[PackageResponse]
	ShowPagination bool           `json:"show_pagination"`
	Facets         catalog.Facets `json:"facets"`
	Fingerprint    string         `json:"fp"`
}
