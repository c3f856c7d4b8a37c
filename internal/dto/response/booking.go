package response

import (
	"time"

	"amana-travel/internal/data/entity"
)

type BookingFlowResponse struct {
	FlowID      string    `json:"flow_id"`
	PackageID   string    `json:"package_id"`
	PackageType string    `json:"package_type"`
	OpenedAt    time.Time `json:"opened_at"`
}

type BookingClientResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type BookingResponse struct {
	ID                 string                `json:"id"`
	PackageID          string                `json:"package_id"`
	PackageType        string                `json:"package_type"`
	NumberOfTravellers entity.Travellers     `json:"number_of_travellers"`
	Client             BookingClientResponse `json:"client"`
	SpecialRequests    string                `json:"special_requests,omitempty"`
	Status             entity.BookingStatus  `json:"status"`
	CreatedAt          string                `json:"created_at,omitempty"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:                 b.ID,
		PackageID:          b.PackageID,
		PackageType:        b.PackageType,
		NumberOfTravellers: b.NumberOfTravellers,
		Client: BookingClientResponse{
			Name:    b.Client.Name,
			Email:   b.Client.Email,
			Phone:   b.Client.Phone,
			Address: b.Client.Address,
		},
		SpecialRequests: b.SpecialRequests,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
	}
}
