package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"amana-travel/internal/data/entity"
	"amana-travel/pkg/utils"
)

// View is the listing state of one browser tab: what is filtered, how it is
// ordered and which page is showing. Values are immutable; the With methods
// return a new View.
type View struct {
	Criteria Criteria
	Sort     SortOrder
	Page     int
}

func NewView() View {
	return View{Page: 1}
}

// WithCriteria swaps the criteria. Any change sends the view back to page 1.
func (v View) WithCriteria(c Criteria) View {
	if !v.Criteria.Equal(c) {
		v.Page = 1
	}
	v.Criteria = c
	return v
}

// WithSort changes the ordering and, when it differs, resets to page 1.
func (v View) WithSort(order SortOrder) View {
	if v.Sort != order {
		v.Page = 1
	}
	v.Sort = order
	return v
}

func (v View) WithPage(page int) View {
	if page < 1 {
		page = 1
	}
	v.Page = page
	return v
}

// Fingerprint identifies the criteria and sort order. Clients echo it back
// so the server can tell when the filter changed under a page number.
func (v View) Fingerprint() string {
	c := v.Criteria
	parts := []string{
		normalize(c.Search),
		c.Destination,
		c.Year,
		c.Duration,
		c.PackageType,
		formatPrice(c.MinPrice),
		formatPrice(c.MaxPrice),
		strconv.Itoa(c.Month),
		string(v.Sort),
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:8])
}

func formatPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

// Page is one page of a filtered listing.
type Page struct {
	Items        []entity.Package
	Page         int
	PerPage      int
	Total        int
	TotalPages   int
	ShowControls bool
}

// Apply filters, sorts and pages items. The month filter reads dates in loc.
func (v View) Apply(items []entity.Package, perPage int, loc *time.Location) Page {
	filtered := Sort(Filter(items, v.Criteria.In(loc)), v.Sort)
	totalPages := utils.CalculateTotalPages(int64(len(filtered)), perPage)

	return Page{
		Items:        utils.Paginate(filtered, perPage, v.Page),
		Page:         v.Page,
		PerPage:      perPage,
		Total:        len(filtered),
		TotalPages:   totalPages,
		ShowControls: utils.ShowControls(totalPages),
	}
}
