package request

import "amana-travel/internal/data/entity"

type OpenBookingFlowRequest struct {
	PackageID   string `json:"package_id" validate:"required,notblank"`
	PackageType string `json:"package_type" validate:"required,oneof=tours hajj umrah"`
}

type BookingClientRequest struct {
	Name    string `json:"name" validate:"required,notblank"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,notblank"`
	Address string `json:"address" validate:"required,notblank"`
}

type CreateBookingRequest struct {
	FlowID             string               `json:"flow_id" validate:"required,uuid"`
	PackageID          string               `json:"package_id" validate:"required,notblank"`
	PackageType        string               `json:"package_type" validate:"required,oneof=tours hajj umrah"`
	NumberOfTravellers entity.Travellers    `json:"number_of_travellers" validate:"required,travellers"`
	Client             BookingClientRequest `json:"client"`
	SpecialRequests    string               `json:"special_requests,omitempty" validate:"max=1000"`
}
