package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"airline-desk-cli/model"
)

// swapView drives the pairwise seat swap. Candidates come from the full
// booking list filtered to confirmed bookings and are re-derived whenever
// the refresh token moves past seenToken. The two picks are drawn from the
// same pool but mutually exclusive.
type swapView struct {
	phase     viewPhase
	bookings  []model.Booking
	pickA     string
	pickB     string
	status    string
	err       error
	seenToken uint64
}

func (v *swapView) clearPicks() {
	v.pickA = ""
	v.pickB = ""
}

// swapCandidates filters a booking list down to confirmed bookings not
// already picked for the other slot.
func swapCandidates(bookings []model.Booking, exclude ...string) []model.Booking {
	var out []model.Booking
	for _, booking := range bookings {
		if !booking.IsConfirmed() {
			continue
		}
		skip := false
		for _, id := range exclude {
			if id != "" && booking.BookingID == id {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		out = append(out, booking)
	}
	return out
}

// validateSwapIDs is the local guard run before any authority call.
func validateSwapIDs(bookingID1 string, bookingID2 string) error {
	if bookingID1 == "" || bookingID2 == "" {
		return errors.New("please select both bookings")
	}
	if bookingID1 == bookingID2 {
		return errors.New("booking IDs must be different")
	}
	return nil
}

type bookingItem struct {
	booking model.Booking
}

func (b bookingItem) Title() string {
	return fmt.Sprintf("ID: %s", b.booking.BookingID)
}

func (b bookingItem) Description() string {
	return fmt.Sprintf("Cust: %s • Flight: %s • Seat: %s", b.booking.CustomerID, b.booking.FlightNumber, b.booking.SeatID)
}

func (b bookingItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{
		b.booking.BookingID,
		b.booking.CustomerID,
		b.booking.FlightNumber,
		b.booking.SeatID,
	}, " "))
}

func buildBookingItems(bookings []model.Booking) []list.Item {
	items := make([]list.Item, 0, len(bookings))
	for _, booking := range bookings {
		items = append(items, bookingItem{booking: booking})
	}
	return items
}
