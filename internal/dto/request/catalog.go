package request

// CatalogQuery is the parsed query string of GET /api/{kind}.
type CatalogQuery struct {
	PaginatedRequest
	Search      string
	Destination string
	Year        string
	Duration    string
	PackageType string
	Month       int
	MinPrice    *float64
	MaxPrice    *float64
	Sort        string
	Fingerprint string
}
