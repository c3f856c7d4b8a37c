package brochure

import (
	"bytes"
	"fmt"
	"testing"
	"unicode/utf8"

	"amana-travel/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAgency = Agency{
	Name:    "Amana Tours & Travels",
	Tagline: "A Journey With Trust",
	Phone:   "+880 1324-418968",
	Email:   "info@amanatourstravel.com",
	Website: "www.amanatourstravel.com",
}

func facts(doc *Document) map[string]string {
	out := map[string]string{}
	for _, p := range doc.Pages {
		for _, b := range p.Blocks {
			if b.Kind == BlockFact {
				out[b.Label] = b.Value
			}
		}
	}
	return out
}

func blocksOf(doc *Document, kind BlockKind) []Block {
	var out []Block
	for _, p := range doc.Pages {
		for _, b := range p.Blocks {
			if b.Kind == kind {
				out = append(out, b.Block)
			}
		}
	}
	return out
}

func TestRenderTourWithoutItineraryHasNoItineraryHeading(t *testing.T) {
	tour := &entity.Tour{
		PackageInfo:     entity.PackageInfo{ID: "t1", Title: "Kashmir Valley"},
		Destination:     "India",
		StartDate:       "2026-05-10",
		EndDate:         "2026-05-17",
		PricePerPerson:  125000,
		PackageIncludes: []string{"Hotel", "Breakfast"},
	}

	doc := Render(tour, testAgency)

	headings := doc.Headings()
	assert.NotContains(t, headings, "Itinerary:")
	assert.NotContains(t, headings, "Package Excludes")
	assert.NotContains(t, headings, "Hotels:")
	assert.Equal(t, []string{"Description:", "Package Includes"}, headings)

	f := facts(doc)
	assert.Equal(t, "India", f["Destination:"])
	assert.Equal(t, "10 May 2026 - 17 May 2026", f["Duration:"])
	assert.Equal(t, "BDT 125,000", f["Price per person:"])
}

func TestRenderMissingDescriptionUsesPlaceholder(t *testing.T) {
	doc := Render(&entity.Tour{PackageInfo: entity.PackageInfo{Title: "Tour"}}, testAgency)

	texts := blocksOf(doc, BlockText)
	require.Len(t, texts, 1)
	assert.Equal(t, "No description available", texts[0].Text)
	assert.Equal(t, "N/A", facts(doc)["Destination:"])
}

func TestRenderUmrahGroupSizeOnlyWhenSet(t *testing.T) {
	u := &entity.Umrah{}
	u.Title = "Umrah Express"
	u.Duration = "14 days"
	u.StartingPrice = 150000

	f := facts(Render(u, testAgency))
	assert.NotContains(t, f, "Group Size:")
	assert.Equal(t, "BDT 150,000", f["Starting Price:"])

	u.MinimumGroupSize = 10
	f = facts(Render(u, testAgency))
	assert.Equal(t, "Min 10 people", f["Group Size:"])
}

func TestRenderHajjPricingPivot(t *testing.T) {
	h := &entity.Hajj{HajjYear: "2026"}
	h.Title = "Premium Hajj"
	h.Duration = "21 days"
	h.Pricing = []entity.Pricing{
		{PackageType: "Economy", PriceDetails: []entity.PriceDetail{
			{AccommodationType: "Quad", Price: 600000},
			{AccommodationType: "Triple", Price: 650000},
		}},
		{PackageType: "VIP", PriceDetails: []entity.PriceDetail{
			{AccommodationType: "Double", Price: 1200000},
			{AccommodationType: "Quad", Price: 950000},
		}},
	}

	doc := Render(h, testAgency)

	assert.Contains(t, doc.Headings(), "Pricing:")
	assert.Equal(t, "2026", facts(doc)["Hajj Year:"])

	headers := blocksOf(doc, BlockTableHeader)
	require.Len(t, headers, 1)
	assert.Equal(t, [][]string{{"Package"}, {"Quad"}, {"Triple"}, {"Double"}}, headers[0].Cells)

	rows := blocksOf(doc, BlockTableRow)
	require.Len(t, rows, 2)
	assert.Equal(t, [][]string{{"Economy"}, {"600,000"}, {"650,000"}, {"-"}}, rows[0].Cells)
	assert.Equal(t, [][]string{{"VIP"}, {"950,000"}, {"-"}, {"1,200,000"}}, rows[1].Cells)
}

func TestRenderLongItineraryPaginatesWithFooters(t *testing.T) {
	h := &entity.Hajj{HajjYear: "2026"}
	h.Title = "Long Hajj"
	for i := 1; i <= 40; i++ {
		h.Itinerary = append(h.Itinerary, entity.PilgrimageDay{
			Day:         entity.DayLabel(fmt.Sprint(i)),
			Title:       "Ibadah",
			Description: "Prayers and rest at the hotel near Masjid al-Haram",
		})
	}
	h.Notes = []string{"Bring your passport"}

	doc := Render(h, testAgency)

	require.Greater(t, len(doc.Pages), 1)
	for i, p := range doc.Pages {
		assert.Equal(t, fmt.Sprintf("Page %d of %d", i+1, len(doc.Pages)), p.Footer.PageNumber)
		assert.Equal(t, []string{
			"Amana Tours & Travels | Phone: +880 1324-418968",
			"Email: info@amanatourstravel.com | www.amanatourstravel.com",
		}, p.Footer.Lines)

		for _, b := range p.Blocks {
			if len(p.Blocks) > 1 {
				assert.LessOrEqual(t, b.Y+b.Height, PageThreshold)
			}
		}
	}

	assert.Equal(t, []string{"Description:", "Itinerary:", "Notes"}, doc.Headings())
	assert.Len(t, blocksOf(doc, BlockTableRow), 40)
}

func TestRenderTourCouponsAndHotels(t *testing.T) {
	tour := &entity.Tour{
		PackageInfo: entity.PackageInfo{Title: "Bali"},
		Hotels:      []entity.TourHotel{{Name: "Ubud Resort", Location: "Ubud", Nights: 3}},
		Coupons: []entity.Coupon{
			{Name: "EARLY", Type: "percentage", Value: 10},
			{Name: "FLAT", Type: "fixed", Value: 5000},
		},
	}

	doc := Render(tour, testAgency)

	assert.Equal(t, []string{"Description:", "Hotels:", "Coupons"}, doc.Headings())

	var items []string
	for _, b := range blocksOf(doc, BlockListItem) {
		items = append(items, b.Text)
	}
	assert.Equal(t, []string{"EARLY: 10% off", "FLAT: BDT 5,000 off"}, items)
}

func TestFilename(t *testing.T) {
	tour := &entity.Tour{PackageInfo: entity.PackageInfo{Title: "Kashmir Valley & Gulmarg!"}}
	assert.Equal(t, "tour-kashmir-valley-and-gulmarg-details.pdf", Filename(tour))

	u := &entity.Umrah{}
	assert.Equal(t, "umrah-package-details.pdf", Filename(u))
}

func TestWrap(t *testing.T) {
	lines := wrap("the quick brown fox jumps over the lazy dog", 10)
	for _, l := range lines {
		assert.LessOrEqual(t, utf8.RuneCountInString(l), 10)
	}
	assert.Equal(t, []string{"the quick", "brown fox", "jumps over", "the lazy", "dog"}, lines)

	assert.Equal(t, []string{"abcde", "fghij", "k"}, wrap("abcdefghijk", 5))
	assert.Empty(t, wrap("   ", 10))
}

func TestWritePDF(t *testing.T) {
	tour := &entity.Tour{
		PackageInfo: entity.PackageInfo{Title: "Kashmir Valley", Description: "Lakes and gardens."},
		Destination: "India",
		Itinerary:   []entity.TourDay{{Day: "1", Activities: "Arrive in Srinagar", Accommodation: "Houseboat"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePDF(Render(tour, testAgency), &buf))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
