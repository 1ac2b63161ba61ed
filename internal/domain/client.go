package domain

import "time"

// Client is the external identity referenced by bookings, upserted by email
type Client struct {
	ID    int64
	Name  string
	Email string

	CreatedAt time.Time
	UpdatedAt time.Time
}
