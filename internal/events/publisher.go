// Package events publishes booking domain events. The notification service
// subscribes to these subjects and owns all user-visible messaging; the
// booking workflow's responsibility ends once the event is on the wire.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/jamesruscoe/dog-kennel/internal/models"
)

const (
	BookingCreated   = "created"
	BookingApproved  = "approved"
	BookingCancelled = "cancelled"
)

// BookingEvent is the JSON payload carried on every booking subject. It
// snapshots the booking's state after the transition committed.
type BookingEvent struct {
	BookingID    string    `json:"booking_id"`
	CompanyID    string    `json:"company_id"`
	DogID        string    `json:"dog_id"`
	CheckInDate  string    `json:"check_in_date"`
	CheckOutDate string    `json:"check_out_date"`
	Status       string    `json:"status"`
	AmountPence  int       `json:"amount_pence"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishBooking(ctx context.Context, event string, booking *models.Booking) error
}

// NATSPublisher publishes to kennel.<company_id>.booking.<event>.
type NATSPublisher struct {
	nc *nats.Conn
}

func NewNATSPublisher(nc *nats.Conn) *NATSPublisher {
	return &NATSPublisher{nc: nc}
}

func (p *NATSPublisher) PublishBooking(_ context.Context, event string, booking *models.Booking) error {
	payload := BookingEvent{
		BookingID:    booking.ID.String(),
		CompanyID:    booking.CompanyID.String(),
		DogID:        booking.DogID.String(),
		CheckInDate:  booking.CheckInDate.Format(time.DateOnly),
		CheckOutDate: booking.CheckOutDate.Format(time.DateOnly),
		Status:       string(booking.Status),
		AmountPence:  booking.AmountPence,
		OccurredAt:   time.Now().UTC(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}

	subject := fmt.Sprintf("kennel.%s.booking.%s", booking.CompanyID, event)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	log.Debug().Str("subject", subject).Str("booking_id", payload.BookingID).Msg("Published booking event")
	return nil
}

// NoopPublisher discards events. Used in tests and when NATS is not
// configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishBooking(context.Context, string, *models.Booking) error {
	return nil
}
