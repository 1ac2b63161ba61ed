package domain

// DateFormat is the wire format for booking dates
const DateFormat = "2006-01-02"

// Business validation constants
const (
	MaxClientNameLength  = 150
	MaxClientEmailLength = 254
)
