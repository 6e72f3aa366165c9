package wire

import (
	"barber-booking/internal/adaptor"
	"barber-booking/internal/data/repository"
	"barber-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAvailability(
	r chi.Router,
	availabilityHandler *adaptor.AvailabilityHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// GET /api/availability?date= - Bookable slots for a date (public)
	r.Get("/api/availability", availabilityHandler.GetDaySlots)

	// Admin: per-date overrides
	r.Route("/api/admin/availability", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/", availabilityHandler.ListOverrides)
		r.Post("/", availabilityHandler.CreateOverride)
		r.Put("/{id}", availabilityHandler.UpdateOverride)
		r.Delete("/{id}", availabilityHandler.DeleteOverride)
	})

	// Admin: weekly recurring rules
	r.Route("/api/admin/recurring", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/", availabilityHandler.ListRecurringRules)
		r.Post("/", availabilityHandler.CreateRecurringRule)
		r.Put("/{id}", availabilityHandler.UpdateRecurringRule)
		r.Delete("/{id}", availabilityHandler.DeleteRecurringRule)
	})
}
