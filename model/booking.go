package model

const (
	BookingConfirmed = "Confirmed"
	BookingCancelled = "Cancelled"
)

type Booking struct {
	BookingID    string `json:"bookingId"`
	CustomerID   string `json:"customerId"`
	FlightNumber string `json:"flightNumber"`
	SeatID       string `json:"seatId"`
	BookingDate  string `json:"bookingDate,omitempty"`
	Status       string `json:"status"`
}

func (b Booking) IsConfirmed() bool {
	return b.Status == BookingConfirmed
}
