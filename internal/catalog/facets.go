package catalog

import (
	"amana-travel/internal/data/entity"
)

// Facets are the choices offered by the categorical filters, taken from the
// packages themselves in first-seen order.
type Facets struct {
	Destinations []string `json:"destinations,omitempty"`
	Years        []string `json:"years,omitempty"`
	Durations    []string `json:"durations,omitempty"`
	PackageTypes []string `json:"package_types,omitempty"`
	MinPrice     float64  `json:"min_price"`
	MaxPrice     float64  `json:"max_price"`
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func BuildFacets(items []entity.Package) Facets {
	var destinations, years, durations, packageTypes orderedSet
	var facets Facets

	for i, p := range items {
		switch v := p.(type) {
		case *entity.Tour:
			destinations.add(v.Destination)
		case *entity.Hajj:
			years.add(v.HajjYear)
			durations.add(v.Duration)
			for _, t := range v.PackageTypes() {
				packageTypes.add(t)
			}
		case *entity.Umrah:
			durations.add(v.Duration)
			for _, t := range v.PackageTypes() {
				packageTypes.add(t)
			}
		}

		price := entity.Price(p)
		if i == 0 || price < facets.MinPrice {
			facets.MinPrice = price
		}
		if i == 0 || price > facets.MaxPrice {
			facets.MaxPrice = price
		}
	}

	facets.Destinations = destinations.items
	facets.Years = years.items
	facets.Durations = durations.items
	facets.PackageTypes = packageTypes.items
	return facets
}
