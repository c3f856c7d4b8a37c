// Package catalog filters, sorts, pages and caches package listings.
package catalog

import (
	"strings"
	"time"

	"amana-travel/internal/data/entity"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Matcher decides whether a package belongs in a filtered listing.
type Matcher interface {
	Match(p entity.Package) bool
}

// MatcherFunc adapts a plain function to Matcher.
type MatcherFunc func(p entity.Package) bool

func (f MatcherFunc) Match(p entity.Package) bool { return f(p) }

// Filter returns the packages m accepts, in source order. items is never
// modified and the result never aliases it.
func Filter(items []entity.Package, m Matcher) []entity.Package {
	out := make([]entity.Package, 0, len(items))
	for _, p := range items {
		if m == nil || m.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

type allOf []Matcher

func (a allOf) Match(p entity.Package) bool {
	for _, m := range a {
		if m != nil && !m.Match(p) {
			return false
		}
	}
	return true
}

// All accepts a package only when every matcher does, so filtering by
// All(k1, k2) equals filtering by k1 then by k2.
func All(matchers ...Matcher) Matcher {
	return allOf(matchers)
}

// Criteria is the filter form. The zero value matches everything.
//
// A categorical field that is set only matches packages that carry it:
// Destination is tour-only, Year is hajj-only, Duration and PackageType are
// pilgrimage-only.
type Criteria struct {
	Search      string
	Destination string
	Year        string
	Duration    string
	PackageType string
	MinPrice    *float64
	MaxPrice    *float64
	// Month is 1..12, 0 for any. It is read from a tour's start date in
	// local time, the way the browser storefront always has. Dates close to
	// midnight UTC can land in the neighbouring month.
	Month int
}

func (c Criteria) IsZero() bool {
	return c.Equal(Criteria{})
}

func (c Criteria) Equal(o Criteria) bool {
	return normalize(c.Search) == normalize(o.Search) &&
		c.Destination == o.Destination &&
		c.Year == o.Year &&
		c.Duration == o.Duration &&
		c.PackageType == o.PackageType &&
		samePrice(c.MinPrice, o.MinPrice) &&
		samePrice(c.MaxPrice, o.MaxPrice) &&
		c.Month == o.Month
}

func samePrice(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Match reads months in time.Local. Use In to pick another location.
func (c Criteria) Match(p entity.Package) bool {
	return c.In(time.Local).Match(p)
}

// In binds the location used by the month filter.
func (c Criteria) In(loc *time.Location) Matcher {
	if loc == nil {
		loc = time.Local
	}
	return boundCriteria{c: c, search: normalize(c.Search), loc: loc}
}

type boundCriteria struct {
	c      Criteria
	search string
	loc    *time.Location
}

func (b boundCriteria) Match(p entity.Package) bool {
	c := b.c

	if b.search != "" && !matchSearch(p, b.search) {
		return false
	}
	if c.Destination != "" && !matchDestination(p, c.Destination) {
		return false
	}
	if c.Year != "" && !matchYear(p, c.Year) {
		return false
	}
	if c.Duration != "" && !matchDuration(p, c.Duration) {
		return false
	}
	if c.PackageType != "" && !matchPackageType(p, c.PackageType) {
		return false
	}

	price := entity.Price(p)
	if c.MinPrice != nil && price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && price > *c.MaxPrice {
		return false
	}

	if c.Month != 0 && !matchMonth(p, c.Month, b.loc) {
		return false
	}

	return true
}

// normalize composes to NFC and case-folds so "MAKKAH", "makkah" and a
// decomposed spelling compare equal.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Fold().String(norm.NFC.String(s))
}

func matchSearch(p entity.Package, term string) bool {
	info := p.Info()
	fields := []string{info.Title, info.Description}

	switch v := p.(type) {
	case *entity.Tour:
		fields = append(fields, v.Destination)
	case *entity.Hajj:
		fields = appendHotelNames(fields, v.Hotels)
	case *entity.Umrah:
		fields = appendHotelNames(fields, v.Hotels)
	}

	for _, f := range fields {
		if strings.Contains(normalize(f), term) {
			return true
		}
	}
	return false
}

func appendHotelNames(fields []string, hotels []entity.Hotel) []string {
	for _, h := range hotels {
		fields = append(fields, h.Name)
	}
	return fields
}

func matchDestination(p entity.Package, want string) bool {
	switch v := p.(type) {
	case *entity.Tour:
		return v.Destination == want
	case *entity.Hajj, *entity.Umrah:
		return false
	}
	return false
}

func matchYear(p entity.Package, want string) bool {
	switch v := p.(type) {
	case *entity.Hajj:
		return v.HajjYear == want
	case *entity.Tour, *entity.Umrah:
		return false
	}
	return false
}

func matchDuration(p entity.Package, want string) bool {
	switch v := p.(type) {
	case *entity.Hajj:
		return v.Duration == want
	case *entity.Umrah:
		return v.Duration == want
	case *entity.Tour:
		return false
	}
	return false
}

func matchPackageType(p entity.Package, want string) bool {
	var pricing []entity.Pricing

	switch v := p.(type) {
	case *entity.Hajj:
		pricing = v.Pricing
	case *entity.Umrah:
		pricing = v.Pricing
	case *entity.Tour:
		return false
	}

	for _, pr := range pricing {
		if pr.PackageType == want {
			return true
		}
	}
	return false
}

func matchMonth(p entity.Package, month int, loc *time.Location) bool {
	switch v := p.(type) {
	case *entity.Tour:
		start, ok := ParseBrowserDate(v.StartDate, loc)
		return ok && int(start.In(loc).Month()) == month
	case *entity.Hajj, *entity.Umrah:
		return false
	}
	return false
}

// ParseBrowserDate parses s the way a browser Date constructor does: a bare
// date is UTC midnight, a timestamp without an offset is local time, and an
// explicit offset is honoured.
func ParseBrowserDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
