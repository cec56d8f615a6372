package model

const (
	SeatClassEconomy  = "Economy"
	SeatClassBusiness = "Business"
)

// FlightSummary is the shape returned by the flight listing endpoint:
// headline counts only, no seat inventory.
type FlightSummary struct {
	FlightNumber     string `json:"flightNumber"`
	Capacity         int    `json:"capacity"`
	BookedSeatsCount int    `json:"bookedSeatsCount"`
	IsFull           bool   `json:"isFull"`
}

// Flight is a point-in-time snapshot of a flight's full seat inventory.
// Snapshots are never mutated locally; a newer fetch replaces the whole value.
type Flight struct {
	FlightNumber     string `json:"flightNumber"`
	Capacity         int    `json:"capacity"`
	BookedSeatsCount int    `json:"bookedSeatsCount"`
	IsFull           bool   `json:"isFull"`
	Seats            []Seat `json:"seats"`
}

type Seat struct {
	SeatID             string  `json:"seatId"`
	SeatClass          string  `json:"seatClass"`
	Price              float64 `json:"price"`
	IsBooked           bool    `json:"isBooked"`
	BookedByCustomerID string  `json:"bookedByCustomerId,omitempty"`
	BookingID          string  `json:"bookingId,omitempty"`
}
