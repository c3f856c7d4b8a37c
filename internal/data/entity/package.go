package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type PackageStatus string

const (
	StatusActive   PackageStatus = "active"
	StatusInactive PackageStatus = "inactive"
	StatusDraft    PackageStatus = "draft"
)

// Package is one of *Tour, *Hajj or *Umrah. Read variant fields with a type
// switch; the common fields live on PackageInfo.
type Package interface {
	Kind() Kind
	Info() *PackageInfo
	sealed()
}

type PackageInfo struct {
	ID          string        `json:"_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Images      []string      `json:"images,omitempty"`
	Status      PackageStatus `json:"status,omitempty"`
	CreatedAt   string        `json:"createdAt,omitempty"`
	UpdatedAt   string        `json:"updatedAt,omitempty"`
}

// Active reports whether the package may be shown. Tours carry no status
// field, so an empty status counts as active.
func (p *PackageInfo) Active() bool {
	return p.Status == "" || p.Status == StatusActive
}

// DayLabel is an itinerary day. The API sends it as a number for tours and
// as a string for pilgrimages.
type DayLabel string

func (d *DayLabel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = DayLabel(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("itinerary day: %w", err)
	}
	*d = DayLabel(n.String())
	return nil
}

func (d DayLabel) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(d)); err == nil {
		return json.Marshal(n)
	}
	return json.Marshal(string(d))
}

// ==================== TOUR ====================

type TourDay struct {
	Day           DayLabel `json:"day"`
	Activities    string   `json:"activities"`
	Accommodation string   `json:"accommodation,omitempty"`
}

type TourHotel struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Nights   int    `json:"nights"`
}

type Coupon struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

type Tour struct {
	PackageInfo
	Destination     string      `json:"destination"`
	Locations       []string    `json:"locations,omitempty"`
	Itinerary       []TourDay   `json:"itinerary,omitempty"`
	StartDate       string      `json:"startDate"`
	EndDate         string      `json:"endDate"`
	PricePerPerson  float64     `json:"pricePerPerson"`
	Currency        string      `json:"currency,omitempty"`
	AirfareIncluded bool        `json:"airfareIncluded,omitempty"`
	Hotels          []TourHotel `json:"hotels,omitempty"`
	PackageIncludes []string    `json:"packageIncludes,omitempty"`
	PackageExcludes []string    `json:"packageExcludes,omitempty"`
	Coupons         []Coupon    `json:"coupons,omitempty"`
}

func (t *Tour) Kind() Kind         { return KindTour }
func (t *Tour) Info() *PackageInfo { return &t.PackageInfo }
func (t *Tour) sealed()            {}

// ==================== PILGRIMAGE (HAJJ / UMRAH) ====================

type PriceDetail struct {
	AccommodationType string  `json:"accommodationType"`
	Price             float64 `json:"price"`
}

type Pricing struct {
	PackageType  string        `json:"packageType"`
	PriceDetails []PriceDetail `json:"priceDetails"`
}

type Hotel struct {
	PackageType string `json:"packageType"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Distance    string `json:"distance"`
	MapLink     string `json:"mapLink,omitempty"`
	City        string `json:"city,omitempty"`
}

type PilgrimageDay struct {
	Day         DayLabel `json:"day"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

type ZiyarahTours struct {
	Makkah  []string `json:"makkah"`
	Madinah []string `json:"madinah"`
}

// Pilgrimage holds the fields Hajj and Umrah share.
type Pilgrimage struct {
	PackageInfo
	Subtitle        string          `json:"subtitle,omitempty"`
	Duration        string          `json:"duration"`
	Featured        bool            `json:"featured,omitempty"`
	StartingPrice   float64         `json:"startingPrice"`
	PackageIncludes []string        `json:"packageIncludes,omitempty"`
	PackageExcludes []string        `json:"packageExcludes,omitempty"`
	Pricing         []Pricing       `json:"pricing,omitempty"`
	Hotels          []Hotel         `json:"hotels,omitempty"`
	Itinerary       []PilgrimageDay `json:"itinerary,omitempty"`
	ZiyarahTours    ZiyarahTours    `json:"ziyarahTours"`
	Notes           []string        `json:"notes,omitempty"`
	Requirements    []string        `json:"requirements,omitempty"`
}

// PackageTypes lists pricing package types in the order they appear.
func (p *Pilgrimage) PackageTypes() []string {
	out := make([]string, 0, len(p.Pricing))
	for _, pricing := range p.Pricing {
		out = append(out, pricing.PackageType)
	}
	return out
}

type PreRegistration struct {
	Required   bool    `json:"required"`
	Amount     float64 `json:"amount"`
	Refundable bool    `json:"refundable"`
}

type Kurbani struct {
	Included        bool   `json:"included"`
	ApproximateCost string `json:"approximateCost,omitempty"`
}

type Transportation struct {
	Airline          []string `json:"airline"`
	BusService       []string `json:"busService"`
	SpecialTransport []string `json:"specialTransport"`
}

type Hajj struct {
	Pilgrimage
	HajjYear        string          `json:"hajjYear"`
	PreRegistration PreRegistration `json:"preRegistration"`
	Kurbani         Kurbani         `json:"kurbani"`
	Transportation  Transportation  `json:"transportation"`
}

func (h *Hajj) Kind() Kind         { return KindHajj }
func (h *Hajj) Info() *PackageInfo { return &h.PackageInfo }
func (h *Hajj) sealed()            {}

type FlightOptions struct {
	DirectFlight  bool     `json:"directFlight"`
	TransitFlight bool     `json:"transitFlight"`
	Airlines      []string `json:"airlines"`
	DepartureCity string   `json:"departureCity"`
	ArrivalCity   string   `json:"arrivalCity"`
}

type Meals struct {
	Included        bool   `json:"included"`
	MealPlan        string `json:"mealPlan,omitempty"`
	ApproximateCost string `json:"approximateCost,omitempty"`
}

type ValidityPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DateOptions struct {
	GroupTravelDates     []string       `json:"groupTravelDates"`
	CustomDatesAvailable bool           `json:"customDatesAvailable"`
	ValidityPeriod       ValidityPeriod `json:"validityPeriod"`
}

type Umrah struct {
	Pilgrimage
	MinimumGroupSize int           `json:"minimumGroupSize,omitempty"`
	FlightOptions    FlightOptions `json:"flightOptions"`
	Meals            Meals         `json:"meals"`
	DateOptions      DateOptions   `json:"dateOptions"`
}

func (u *Umrah) Kind() Kind         { return KindUmrah }
func (u *Umrah) Info() *PackageInfo { return &u.PackageInfo }
func (u *Umrah) sealed()            {}

// ==================== HELPERS ====================

// Price is the headline price: per person for tours, starting price for
// pilgrimages.
func Price(p Package) float64 {
	switch v := p.(type) {
	case *Tour:
		return v.PricePerPerson
	case *Hajj:
		return v.StartingPrice
	case *Umrah:
		return v.StartingPrice
	}
	return 0
}

// DecodePackage unmarshals a single record of the given kind.
func DecodePackage(kind Kind, raw []byte) (Package, error) {
	switch kind {
	case KindTour:
		var t Tour
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("decode tour: %w", err)
		}
		return &t, nil
	case KindHajj:
		var h Hajj
		if err := json.Unmarshal(raw, &h); err != nil {
			return nil, fmt.Errorf("decode hajj: %w", err)
		}
		return &h, nil
	case KindUmrah:
		var u Umrah
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, fmt.Errorf("decode umrah: %w", err)
		}
		return &u, nil
	}
	return nil, fmt.Errorf("unknown package kind %q", kind)
}

// DecodePackages unmarshals a list of records of the given kind.
func DecodePackages(kind Kind, raw []byte) ([]Package, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", kind, err)
	}

	out := make([]Package, 0, len(items))
	for _, item := range items {
		p, err := DecodePackage(kind, item)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
