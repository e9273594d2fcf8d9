// Package notify announces committed appointments to other systems.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AppointmentBooked is emitted once a reservation has committed.
type AppointmentBooked struct {
	EventID       uuid.UUID `json:"event_id"`
	AppointmentID int64     `json:"appointment_id"`
	Patient       string    `json:"patient"`
	Caregiver     string    `json:"caregiver"`
	Vaccine       string    `json:"vaccine"`
	Date          string    `json:"date"`
	BookedAt      time.Time `json:"booked_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event AppointmentBooked) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, AppointmentBooked) error { return nil }

func (NopPublisher) Close() error { return nil }
