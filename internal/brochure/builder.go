package brochure

import (
	"fmt"
	"strings"
	"time"

	"amana-travel/internal/data/entity"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	defaultCurrency      = "BDT"
	descriptionWidth     = 90
	noDescriptionMessage = "No description available"
)

// Render lays out the brochure for pkg. Optional sections without data are
// left out entirely.
func Render(pkg entity.Package, agency Agency) *Document {
	b := &builder{printer: message.NewPrinter(language.English)}

	b.masthead(agency)
	b.add(Block{Kind: BlockTitle, Text: pkg.Info().Title})
	b.facts(pkg)
	b.description(pkg.Info().Description)

	switch v := pkg.(type) {
	case *entity.Tour:
		b.list("Package Includes", v.PackageIncludes)
		b.list("Package Excludes", v.PackageExcludes)
		b.tourItinerary(v.Itinerary)
		b.tourHotels(v.Hotels)
		b.coupons(v.Coupons)
	case *entity.Hajj:
		b.pilgrimage(&v.Pilgrimage)
	case *entity.Umrah:
		b.pilgrimage(&v.Pilgrimage)
	}

	pages := paginate(b.blocks)
	stampFooters(pages, agency)

	return &Document{
		Kind:     pkg.Kind(),
		Title:    pkg.Info().Title,
		Filename: Filename(pkg),
		Pages:    pages,
	}
}

type builder struct {
	printer *message.Printer
	blocks  []Block
}

func (b *builder) add(blocks ...Block) {
	b.blocks = append(b.blocks, blocks...)
}

func (b *builder) masthead(a Agency) {
	b.add(Block{Kind: BlockMasthead, Text: a.Name, Value: a.Tagline})
}

func (b *builder) fact(label, value string) {
	if strings.TrimSpace(value) == "" {
		value = "N/A"
	}
	b.add(Block{Kind: BlockFact, Label: label, Value: value})
}

func (b *builder) facts(pkg entity.Package) {
	switch v := pkg.(type) {
	case *entity.Tour:
		b.fact("Destination:", v.Destination)
		b.fact("Duration:", dateRange(v.StartDate, v.EndDate))
		currency := v.Currency
		if currency == "" {
			currency = defaultCurrency
		}
		b.fact("Price per person:", currency+" "+b.amount(v.PricePerPerson))
	case *entity.Hajj:
		b.fact("Hajj Year:", v.HajjYear)
		b.fact("Duration:", v.Duration)
		b.fact("Starting Price:", defaultCurrency+" "+b.amount(v.StartingPrice))
	case *entity.Umrah:
		b.fact("Duration:", v.Duration)
		if v.MinimumGroupSize > 0 {
			b.fact("Group Size:", fmt.Sprintf("Min %d people", v.MinimumGroupSize))
		}
		b.fact("Starting Price:", defaultCurrency+" "+b.amount(v.StartingPrice))
	}
	b.add(Block{Kind: BlockSpacer})
}

func (b *builder) description(text string) {
	if strings.TrimSpace(text) == "" {
		text = noDescriptionMessage
	}

	b.add(Block{Kind: BlockHeading, Text: "Description:"})
	for _, line := range wrap(text, descriptionWidth) {
		b.add(Block{Kind: BlockText, Text: line})
	}
	b.add(Block{Kind: BlockSpacer})
}

func (b *builder) list(heading string, items []string) {
	items = nonEmpty(items)
	if len(items) == 0 {
		return
	}

	b.add(Block{Kind: BlockHeading, Text: heading})
	for _, item := range items {
		b.add(Block{Kind: BlockListItem, Text: item})
	}
	b.add(Block{Kind: BlockSpacer})
}

// table emits a header and one block per row. Cells are wrapped to their
// column width.
func (b *builder) table(heading string, columns []string, widths []float64, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	b.add(Block{Kind: BlockHeading, Text: heading})
	b.add(Block{Kind: BlockTableHeader, Cells: wrapCells(columns, widths), Widths: widths})
	for _, row := range rows {
		b.add(Block{Kind: BlockTableRow, Cells: wrapCells(row, widths), Widths: widths})
	}
	b.add(Block{Kind: BlockSpacer})
}

func wrapCells(cells []string, widths []float64) [][]string {
	out := make([][]string, len(cells))
	for i, c := range cells {
		lines := wrap(c, charsFor(widths[i]))
		if len(lines) == 0 {
			lines = []string{""}
		}
		out[i] = lines
	}
	return out
}

func (b *builder) tourItinerary(days []entity.TourDay) {
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		accommodation := ""
		if d.Accommodation != "" {
			accommodation = "Accommodation: " + d.Accommodation
		}
		rows = append(rows, []string{"Day " + string(d.Day), d.Activities, accommodation})
	}

	b.table("Itinerary:", []string{"Day", "Activities", "Accommodation"}, []float64{20, 95, 55}, rows)
}

func (b *builder) tourHotels(hotels []entity.TourHotel) {
	rows := make([][]string, 0, len(hotels))
	for _, h := range hotels {
		rows = append(rows, []string{h.Name, h.Location, fmt.Sprintf("%d", h.Nights)})
	}

	b.table("Hotels:", []string{"Hotel", "Location", "Nights"}, []float64{70, 75, 25}, rows)
}

func (b *builder) coupons(coupons []entity.Coupon) {
	items := make([]string, 0, len(coupons))
	for _, c := range coupons {
		items = append(items, fmt.Sprintf("%s: %s", c.Name, b.couponValue(c)))
	}
	b.list("Coupons", items)
}

func (b *builder) couponValue(c entity.Coupon) string {
	if strings.EqualFold(c.Type, "percentage") || strings.EqualFold(c.Type, "percent") {
		return b.amount(c.Value) + "% off"
	}
	return defaultCurrency + " " + b.amount(c.Value) + " off"
}

func (b *builder) pilgrimage(p *entity.Pilgrimage) {
	b.list("Package Includes", p.PackageIncludes)
	b.list("Package Excludes", p.PackageExcludes)

	days := make([][]string, 0, len(p.Itinerary))
	for _, d := range p.Itinerary {
		days = append(days, []string{"Day " + string(d.Day), d.Title, d.Description})
	}
	b.table("Itinerary:", []string{"Day", "Title", "Description"}, []float64{20, 50, 100}, days)

	b.pricing(p.Pricing)

	hotels := make([][]string, 0, len(p.Hotels))
	for _, h := range p.Hotels {
		hotels = append(hotels, []string{h.PackageType, h.Name, h.Location, h.Distance})
	}
	b.table("Hotels:", []string{"Package", "Hotel", "Location", "Distance"}, []float64{30, 55, 50, 35}, hotels)

	b.list("Notes", p.Notes)
}

// pricing pivots packageType x accommodationType. Accommodation columns
// keep the order they first appear in.
func (b *builder) pricing(pricing []entity.Pricing) {
	if len(pricing) == 0 {
		return
	}

	var columns []string
	index := map[string]int{}
	for _, pr := range pricing {
		for _, d := range pr.PriceDetails {
			if _, ok := index[d.AccommodationType]; !ok {
				index[d.AccommodationType] = len(columns)
				columns = append(columns, d.AccommodationType)
			}
		}
	}
	if len(columns) == 0 {
		return
	}

	rows := make([][]string, 0, len(pricing))
	for _, pr := range pricing {
		row := make([]string, len(columns)+1)
		row[0] = pr.PackageType
		for i := range columns {
			row[i+1] = "-"
		}
		for _, d := range pr.PriceDetails {
			row[index[d.AccommodationType]+1] = b.amount(d.Price)
		}
		rows = append(rows, row)
	}

	first := 30.0
	rest := (ContentWidth - first) / float64(len(columns))
	widths := []float64{first}
	for range columns {
		widths = append(widths, rest)
	}

	b.table("Pricing:", append([]string{"Package"}, columns...), widths, rows)
}

// amount formats with thousands separators.
func (b *builder) amount(v float64) string {
	return b.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// dateRange shows dates by their UTC calendar day.
func dateRange(start, end string) string {
	s, okStart := parseDate(start)
	e, okEnd := parseDate(end)
	if !okStart || !okEnd {
		return ""
	}
	return s.Format("02 Jan 2006") + " - " + e.Format("02 Jan 2006")
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
