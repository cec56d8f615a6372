package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"airline-desk-cli/model"
)

// seatsPerRow matches the authority's cabin layout convention.
const seatsPerRow = 6

// viewPhase is the lifecycle of a remote-backed view. Closed views hold no
// snapshot; Loading marks an in-flight fetch; Error is terminal for that
// attempt and a forced refresh starts a new cycle.
type viewPhase int

const (
	phaseClosed viewPhase = iota
	phaseLoading
	phaseLoaded
	phaseError
)

// flightView is the seat inventory panel for one open flight. The snapshot
// is immutable once fetched; selection is the single client-owned piece of
// booking state and never survives a successful mutation.
type flightView struct {
	phase        viewPhase
	flightNumber string
	snapshot     model.Flight
	selection    string
	cursor       int
	status       string
	err          error
	seenToken    uint64
}

func (v flightView) open() bool {
	return v.phase != phaseClosed
}

func (v flightView) seatAtCursor() (model.Seat, bool) {
	if v.phase != phaseLoaded || v.cursor < 0 || v.cursor >= len(v.snapshot.Seats) {
		return model.Seat{}, false
	}
	return v.snapshot.Seats[v.cursor], true
}

// chooseSeat applies the selection rules: a booked seat only surfaces its
// occupant and never touches the current selection, an unbooked seat
// becomes the selection and replaces any prior status message.
func (v *flightView) chooseSeat(seat model.Seat) {
	if seat.IsBooked {
		v.status = bookedSeatStatus(seat)
		return
	}
	v.selection = seat.SeatID
	v.status = selectionStatus(seat)
}

func (v *flightView) moveCursor(delta int) {
	if v.phase != phaseLoaded || len(v.snapshot.Seats) == 0 {
		return
	}
	next := v.cursor + delta
	if next < 0 || next >= len(v.snapshot.Seats) {
		return
	}
	v.cursor = next
}

func (v *flightView) clampCursor() {
	if v.cursor >= len(v.snapshot.Seats) {
		v.cursor = len(v.snapshot.Seats) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// seatDisplay is the display class of a seat, derived purely from the
// snapshot and the local selection.
type seatDisplay int

const (
	seatDisplaySelected seatDisplay = iota
	seatDisplayBooked
	seatDisplayBusiness
	seatDisplayEconomy
)

// classifySeat picks the display class by precedence: selection first, then
// booked, then cabin class. A selected seat is by definition unbooked, but
// the selection rule still wins outright.
func classifySeat(seat model.Seat, selection string) seatDisplay {
	switch {
	case selection != "" && seat.SeatID == selection:
		return seatDisplaySelected
	case seat.IsBooked:
		return seatDisplayBooked
	case seat.SeatClass == model.SeatClassBusiness:
		return seatDisplayBusiness
	default:
		return seatDisplayEconomy
	}
}

func selectionStatus(seat model.Seat) string {
	return fmt.Sprintf("Selected seat: %s (%s, Price: %s)", seat.SeatID, seat.SeatClass, formatPrice(seat.Price))
}

func bookedSeatStatus(seat model.Seat) string {
	if seat.BookedByCustomerID != "" {
		return fmt.Sprintf("Seat %s: Booked by Customer ID %s.", seat.SeatID, seat.BookedByCustomerID)
	}
	return fmt.Sprintf("Seat %s: This seat is already booked.", seat.SeatID)
}

func formatPrice(price float64) string {
	return "$" + strconv.FormatFloat(price, 'f', -1, 64)
}

func formatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

var (
	seatStyleSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3"))
	seatStyleBooked   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	seatStyleBusiness = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	seatStyleEconomy  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatStyleCursor   = lipgloss.NewStyle().Reverse(true)
)

// renderSeatMap draws the inventory grid. Output is a pure function of the
// snapshot, selection and cursor: the same inputs always render the same
// text.
func renderSeatMap(flight model.Flight, selection string, cursor int, focused bool) string {
	if len(flight.Seats) == 0 {
		return "No seat information available for this flight."
	}

	cellWidth := 2
	for _, seat := range flight.Seats {
		if len(seat.SeatID) > cellWidth {
			cellWidth = len(seat.SeatID)
		}
	}

	var b strings.Builder
	booked := 0
	for i, seat := range flight.Seats {
		if seat.IsBooked {
			booked++
		}
		text := padCell(seat.SeatID, cellWidth)
		rendered := text
		switch classifySeat(seat, selection) {
		case seatDisplaySelected:
			rendered = seatStyleSelected.Render(text)
		case seatDisplayBooked:
			rendered = seatStyleBooked.Render(text)
		case seatDisplayBusiness:
			rendered = seatStyleBusiness.Render(text)
		case seatDisplayEconomy:
			rendered = seatStyleEconomy.Render(text)
		}
		if focused && i == cursor {
			rendered = seatStyleCursor.Render(text)
		}
		b.WriteString(rendered)
		if (i+1)%seatsPerRow == 0 || i == len(flight.Seats)-1 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}

	legend := "Legend: green economy • blue business • red booked • yellow selected"
	counts := fmt.Sprintf("Capacity: %d • Booked: %d • Available: %d", flight.Capacity, booked, flight.Capacity-booked)
	b.WriteString("\n")
	b.WriteString(hint(legend))
	b.WriteString("\n")
	b.WriteString(hint(counts))
	return b.String()
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}
