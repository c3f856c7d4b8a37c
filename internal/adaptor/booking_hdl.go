package adaptor

import (
	"encoding/json"
	"net/http"

	"amana-travel/internal/dto/request"
	"amana-travel/internal/usecase"
	"amana-travel/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// OpenFlow handles POST /api/bookings/flows
func (h *BookingHandler) OpenFlow(w http.ResponseWriter, r *http.Request) {
	var req request.OpenBookingFlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	flow, err := h.service.OpenFlow(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, r, err, "open booking flow")
		return
	}

	utils.ResponseCreated(w, "Booking flow opened", flow)
}

// Submit handles POST /api/bookings
func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, r, err, "submit booking")
		return
	}

	utils.ResponseCreated(w, "Booking request submitted", booking)
}

// ListForPackage handles GET /api/bookings/{packageId} (protected)
func (h *BookingHandler) ListForPackage(w http.ResponseWriter, r *http.Request) {
	packageID := chi.URLParam(r, "packageId")
	if packageID == "" {
		utils.ResponseBadRequest(w, "Package ID is required", nil)
		return
	}

	bookings, err := h.service.ListForPackage(r.Context(), packageID)
	if err != nil {
		handleServiceError(h.log, w, r, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
