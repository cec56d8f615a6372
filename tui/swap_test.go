package tui

import (
	"testing"

	"airline-desk-cli/model"
)

func sampleBookings() []model.Booking {
	return []model.Booking{
		{BookingID: "B1", CustomerID: "C1", FlightNumber: "FL100", SeatID: "1A", Status: model.BookingConfirmed},
		{BookingID: "B2", CustomerID: "C2", FlightNumber: "FL100", SeatID: "1B", Status: model.BookingConfirmed},
		{BookingID: "B3", CustomerID: "C1", FlightNumber: "FL200", SeatID: "2A", Status: model.BookingCancelled},
		{BookingID: "B4", CustomerID: "C3", FlightNumber: "FL200", SeatID: "2B", Status: model.BookingConfirmed},
	}
}

func bookingIDs(bookings []model.Booking) []string {
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.BookingID)
	}
	return ids
}

func TestSwapCandidatesConfirmedOnly(t *testing.T) {
	got := bookingIDs(swapCandidates(sampleBookings()))
	want := []string{"B1", "B2", "B4"}
	if len(got) != len(want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("candidates = %v, want %v", got, want)
		}
	}
}

func TestSwapCandidatesExcludePicks(t *testing.T) {
	got := bookingIDs(swapCandidates(sampleBookings(), "B1", "B4"))
	if len(got) != 1 || got[0] != "B2" {
		t.Fatalf("candidates = %v, want [B2]", got)
	}
}

func TestSwapCandidatesEmptyExcludeIgnored(t *testing.T) {
	got := swapCandidates(sampleBookings(), "", "")
	if len(got) != 3 {
		t.Fatalf("candidates = %v, empty excludes must not filter", bookingIDs(got))
	}
}

func TestValidateSwapIDs(t *testing.T) {
	if err := validateSwapIDs("B1", "B2"); err != nil {
		t.Errorf("valid pair rejected: %v", err)
	}
	if err := validateSwapIDs("B1", ""); err == nil {
		t.Error("missing second pick accepted")
	}
	if err := validateSwapIDs("B1", "B1"); err == nil {
		t.Error("equal ids accepted, must be rejected locally")
	}
}

func TestSwapClearPicks(t *testing.T) {
	view := swapView{pickA: "B1", pickB: "B2"}
	view.clearPicks()
	if view.pickA != "" || view.pickB != "" {
		t.Errorf("picks = (%q, %q), want empty", view.pickA, view.pickB)
	}
}
