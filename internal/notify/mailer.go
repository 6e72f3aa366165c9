package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"barber-booking/internal/data/entity"
	"barber-booking/pkg/utils"

	"go.uber.org/zap"
)

// Sender delivers booking confirmations. Delivery is best effort: the
// booking path logs failures and continues.
type Sender interface {
	SendBookingConfirmation(ctx context.Context, booking *entity.Booking) error
}

type smtpSender struct {
	config utils.EmailConfig
	log    *zap.Logger
}

// NewSMTPSender builds a Sender over plain SMTP from the email config.
func NewSMTPSender(config utils.EmailConfig, log *zap.Logger) Sender {
	return &smtpSender{
		config: config,
		log:    log.With(zap.String("component", "mailer")),
	}
}

func (s *smtpSender) SendBookingConfirmation(ctx context.Context, booking *entity.Booking) error {
	recipients := []string{booking.Email}
	if s.config.Operator != "" {
		recipients = append(recipients, s.config.Operator)
	}

	msg := s.buildMessage(booking, recipients)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	var auth smtp.Auth
	if s.config.User != "" {
		auth = smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	}

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, s.config.From, recipients, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send confirmation to %s: %w", booking.Email, err)
		}
	case <-ctx.Done():
		return fmt.Errorf("send confirmation to %s: %w", booking.Email, ctx.Err())
	}

	s.log.Info("Booking confirmation sent",
		zap.String("booking_id", booking.ID.String()),
		zap.String("email", booking.Email),
	)
	return nil
}

func (s *smtpSender) buildMessage(booking *entity.Booking, recipients []string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.config.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&b, "Subject: Booking Confirmation - HOMEBOY Barbing Saloon\r\n")
	fmt.Fprintf(&b, "\r\n")
	fmt.Fprintf(&b, "Dear %s,\r\n\r\n", booking.Name)
	fmt.Fprintf(&b, "Your booking is being processed. We will get back to you shortly to confirm your appointment.\r\n\r\n")
	fmt.Fprintf(&b, "Booking Details:\r\n")
	fmt.Fprintf(&b, "- Service: %s\r\n", booking.Service)
	fmt.Fprintf(&b, "- Date: %s\r\n", booking.BookingDate)
	fmt.Fprintf(&b, "- Time: %s\r\n", booking.BookingTime)
	fmt.Fprintf(&b, "\r\nIf you need to make any changes, please contact us.\r\n")
	fmt.Fprintf(&b, "\r\nThank you for choosing HOMEBOY Barbing Saloon.\r\n")
	return []byte(b.String())
}

type nopSender struct {
	log *zap.Logger
}

// NewNopSender returns a Sender that only logs. Used when SMTP is not
// configured, so local setups can take bookings without a mail relay.
func NewNopSender(log *zap.Logger) Sender {
	return &nopSender{log: log.With(zap.String("component", "mailer"))}
}

func (s *nopSender) SendBookingConfirmation(ctx context.Context, booking *entity.Booking) error {
	s.log.Info("SMTP not configured, skipping confirmation email",
		zap.String("booking_id", booking.ID.String()),
		zap.String("email", booking.Email),
	)
	return nil
}
