package wire

import (
	"amana-travel/internal/adaptor"
	"amana-travel/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	sessions middleware.SessionResolver,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Anonymous submissions reach the server, which decides.
	r.Post("/api/bookings/flows", bookingHandler.OpenFlow)
	r.Post("/api/bookings", bookingHandler.Submit)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.RequireSession(sessions, log)).
		Get("/api/bookings/{packageId}", bookingHandler.ListForPackage)
}
