package model

type Customer struct {
	PersonID string    `json:"personId"`
	Name     string    `json:"name"`
	Age      int       `json:"age"`
	Money    float64   `json:"money"`
	Bookings []Booking `json:"bookings,omitempty"`
}

// NewCustomer is the payload for registering a customer. When AutoGenerate
// is set the authority fills in the remaining fields itself.
type NewCustomer struct {
	Name         string  `json:"name"`
	Age          int     `json:"age"`
	Money        float64 `json:"money"`
	AutoGenerate bool    `json:"autoGenerate,omitempty"`
}
