package floorplan

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking reserves a table for a meal window. PlatformOrderID links the
// booking to the order on the external platform, when one exists.
type Booking struct {
	ID              string         `json:"id"`
	CompanyID       string         `json:"company_id"`
	TableID         string         `json:"table_id"`
	PlatformOrderID string         `json:"platform_order_id,omitempty"`
	CustomerName    string         `json:"customer_name"`
	Pax             int            `json:"pax"`
	StartsAt        time.Time      `json:"starts_at"`
	EndsAt          time.Time      `json:"ends_at"`
	Status          BookingStatus  `json:"status"`
	Notes           string         `json:"notes,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Occupies reports whether the booking holds its table at the given time.
// Completed and cancelled bookings never occupy a table.
func (b *Booking) Occupies(at time.Time) bool {
	if b.Status == StatusCompleted || b.Status == StatusCancelled {
		return false
	}
	return !at.Before(b.StartsAt) && at.Before(b.EndsAt)
}
