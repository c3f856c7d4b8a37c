package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// TravellersMore stands for "more than 10" on the booking form.
const TravellersMore = "more"

// Travellers is a positive head count or TravellersMore. It travels as a
// JSON number, or as the literal string "more".
type Travellers string

func TravellersCount(n int) Travellers {
	return Travellers(strconv.Itoa(n))
}

func (t Travellers) IsMore() bool {
	return string(t) == TravellersMore
}

// Count returns the head count, false for "more" or a malformed value.
func (t Travellers) Count() (int, bool) {
	n, err := strconv.Atoi(string(t))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func (t *Travellers) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Travellers(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("numberOfTravellers must be a number or %q", TravellersMore)
	}
	*t = Travellers(n.String())
	return nil
}

func (t Travellers) MarshalJSON() ([]byte, error) {
	if n, ok := t.Count(); ok {
		return json.Marshal(n)
	}
	return json.Marshal(string(t))
}

// BookingClient mirrors the remote field names, including the capitalised Name.
type BookingClient struct {
	Name    string `json:"Name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Booking struct {
	ID                 string        `json:"_id,omitempty"`
	UserID             string        `json:"userId,omitempty"`
	PackageID          string        `json:"packageId"`
	PackageType        string        `json:"packageType"`
	NumberOfTravellers Travellers    `json:"numberOfTravellers"`
	Client             BookingClient `json:"client"`
	SpecialRequests    string        `json:"specialRequests,omitempty"`
	Status             BookingStatus `json:"status,omitempty"`
	CreatedAt          string        `json:"createdAt,omitempty"`
}
