package response

import (
	"time"

	"barber-booking/internal/data/entity"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	Phone       string               `json:"phone"`
	Service     string               `json:"service"`
	BookingDate string               `json:"booking_date"`
	BookingTime string               `json:"booking_time"`
	Notes       *string              `json:"notes,omitempty"`
	Status      entity.BookingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		Email:       b.Email,
		Phone:       b.Phone,
		Service:     b.Service,
		BookingDate: b.BookingDate,
		BookingTime: b.BookingTime,
		Notes:       b.Notes,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}
}

type ClientHistoryResponse struct {
	ID        int64     `json:"id"`
	BookingID string    `json:"booking_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Service   string    `json:"service"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Notes     *string   `json:"notes,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func ClientHistoryToResponse(h *entity.ClientHistory) ClientHistoryResponse {
	return ClientHistoryResponse{
		ID:        h.ID,
		BookingID: h.BookingID.String(),
		Name:      h.Name,
		Email:     h.Email,
		Phone:     h.Phone,
		Service:   h.Service,
		Date:      h.Date,
		Time:      h.Time,
		Notes:     h.Notes,
		Status:    h.Status,
		CreatedAt: h.CreatedAt,
	}
}
