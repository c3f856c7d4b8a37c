package catalog

import (
	"sort"

	"amana-travel/internal/data/entity"

	"golang.org/x/text/cases"
)

type SortOrder string

const (
	SortSource    SortOrder = ""
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortTitle     SortOrder = "title"
)

func ParseSortOrder(value string) (SortOrder, bool) {
	switch o := SortOrder(value); o {
	case SortSource, SortPriceAsc, SortPriceDesc, SortTitle:
		return o, true
	}
	return SortSource, false
}

// Sort returns a sorted copy. Ties keep source order.
func Sort(items []entity.Package, order SortOrder) []entity.Package {
	out := make([]entity.Package, len(items))
	copy(out, items)

	switch order {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return entity.Price(out[i]) < entity.Price(out[j])
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return entity.Price(out[i]) > entity.Price(out[j])
		})
	case SortTitle:
		fold := cases.Fold()
		keys := make(map[entity.Package]string, len(out))
		for _, p := range out {
			keys[p] = fold.String(p.Info().Title)
		}
		sort.SliceStable(out, func(i, j int) bool {
			return keys[out[i]] < keys[out[j]]
		})
	}

	return out
}
