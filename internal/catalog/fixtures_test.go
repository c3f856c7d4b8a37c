package catalog

import (
	"fmt"

	"amana-travel/internal/data/entity"
)

func tour(id, title, destination string, price float64, start string) *entity.Tour {
	return &entity.Tour{
		PackageInfo:    entity.PackageInfo{ID: id, Title: title},
		Destination:    destination,
		PricePerPerson: price,
		StartDate:      start,
	}
}

func hajj(id, title, year, duration string, price float64, hotels ...string) *entity.Hajj {
	h := &entity.Hajj{HajjYear: year}
	h.PackageInfo = entity.PackageInfo{ID: id, Title: title, Status: entity.StatusActive}
	h.Duration = duration
	h.StartingPrice = price
	for _, name := range hotels {
		h.Hotels = append(h.Hotels, entity.Hotel{Name: name})
	}
	return h
}

func umrah(id, title, duration string, price float64, packageTypes ...string) *entity.Umrah {
	u := &entity.Umrah{}
	u.PackageInfo = entity.PackageInfo{ID: id, Title: title, Status: entity.StatusActive}
	u.Duration = duration
	u.StartingPrice = price
	for _, t := range packageTypes {
		u.Pricing = append(u.Pricing, entity.Pricing{PackageType: t})
	}
	return u
}

func sevenTours() []entity.Package {
	items := make([]entity.Package, 0, 7)
	for i := 1; i <= 7; i++ {
		items = append(items, tour(fmt.Sprintf("t%d", i), fmt.Sprintf("Tour %d", i), "Nepal", float64(i*500), "2026-05-10"))
	}
	return items
}

func ids(items []entity.Package) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Info().ID)
	}
	return out
}

func price(v float64) *float64 {
	return &v
}
