package wire

import (
	"barber-booking/internal/adaptor"
	"barber-booking/internal/data/repository"
	"barber-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// POST /api/bookings - Submit a booking (public, no account needed)
	r.Post("/api/bookings", bookingHandler.SubmitBooking)

	// Admin booking management
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/", bookingHandler.ListBookings)
		r.Get("/{id}", bookingHandler.GetBooking)
		r.Put("/{id}/status", bookingHandler.UpdateBookingStatus)
	})

	// Admin archived history lookup
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/api/admin/history", bookingHandler.ListClientHistory)
	})
}
