package tui

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"airline-desk-cli/model"
	"airline-desk-cli/service"
)

func newTestApp() appModel {
	m := New().(appModel)
	m.width = 80
	m.height = 24
	m.resizeLists()
	return m
}

func update(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(appModel)
	if !ok {
		t.Fatalf("Update returned %T", updated)
	}
	return next, cmd
}

func seatConflictErr() error {
	return &service.APIError{
		StatusCode: http.StatusConflict,
		Status:     "409 Conflict",
		Reason:     "Seat is already booked.",
	}
}

// drainCmd executes a command tree and collects every message it produces.
func drainCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, sub := range batch {
			out = append(out, drainCmd(sub)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestInitialFlightsLoadLands(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"flightNumber": "FL100", "capacity": 4, "bookedSeatsCount": 1}]`))
	}))
	defer srv.Close()
	t.Setenv("AIRDESK_API_URL", srv.URL+"/api")

	m := New().(appModel)
	var sawFlights bool
	for _, msg := range drainCmd(m.Init()) {
		flights, ok := msg.(flightsMsg)
		if !ok {
			continue
		}
		sawFlights = true
		m, _ = update(t, m, flights)
	}

	if !sawFlights {
		t.Fatal("Init dispatched no flights fetch")
	}
	if m.state != stateFlights {
		t.Fatalf("state = %v after initial flights response, want stateFlights", m.state)
	}
	if len(m.flightList.Items()) != 1 {
		t.Errorf("flight list has %d items, want 1", len(m.flightList.Items()))
	}
}

func TestInitialFlightsFailureSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	t.Setenv("AIRDESK_API_URL", srv.URL+"/api")

	m := New().(appModel)
	for _, msg := range drainCmd(m.Init()) {
		flights, ok := msg.(flightsMsg)
		if !ok {
			continue
		}
		var cmd tea.Cmd
		m, cmd = update(t, m, flights)
		for _, follow := range drainCmd(cmd) {
			m, _ = update(t, m, follow)
		}
	}

	if m.state != stateError {
		t.Fatalf("state = %v, initial fetch failure must reach the error screen, not hang loading", m.state)
	}
}

func TestBackgroundFlightsRefreshFailureWarns(t *testing.T) {
	m := newTestApp()
	m.state = stateFlights
	m, _ = update(t, m, flightsMsg{seq: m.flightsSeq.Next(), flights: []model.FlightSummary{{FlightNumber: "FL100", Capacity: 4}}})

	seq := m.flightsSeq.Next()
	m, _ = update(t, m, flightsMsg{seq: seq, err: errors.New("connection refused")})

	if m.state != stateFlights {
		t.Errorf("state = %v, a failed background refresh must not leave the flights screen", m.state)
	}
	if m.flightsWarn == "" {
		t.Error("failed background refresh must surface a warning")
	}
	if !strings.Contains(m.flightsView(), "Could not refresh flights") {
		t.Error("warning must be rendered on the flights screen")
	}

	m, _ = update(t, m, flightsMsg{seq: seq, flights: []model.FlightSummary{{FlightNumber: "FL100", Capacity: 4}}})
	if m.flightsWarn != "" {
		t.Errorf("warning = %q, a successful refresh must clear it", m.flightsWarn)
	}
}

func TestBookingSuccessClearsSelectionAndRefreshes(t *testing.T) {
	m := newTestApp()
	m.state = stateFlights
	m.flight = flightView{phase: phaseLoaded, flightNumber: "FL100", selection: "1A", snapshot: sampleFlight()}

	m, cmd := update(t, m, bookingCreatedMsg{
		flightNumber: "FL100",
		booking:      model.Booking{BookingID: "B9", CustomerID: "C1", SeatID: "1A", Status: model.BookingConfirmed},
	})

	if m.flight.selection != "" {
		t.Errorf("selection = %q, must be cleared on success", m.flight.selection)
	}
	if m.refresh.Value() != 1 {
		t.Errorf("refresh token = %d, want exactly one bump", m.refresh.Value())
	}
	if m.flight.status != "Booking successful! ID: B9. Seat: 1A for Customer: C1" {
		t.Errorf("status = %q", m.flight.status)
	}
	if m.flight.phase != phaseLoading {
		t.Errorf("flight phase = %v, open flight must re-fetch", m.flight.phase)
	}
	if cmd == nil {
		t.Error("success must dispatch re-fetch commands")
	}
}

func TestBookingFailureKeepsSelection(t *testing.T) {
	m := newTestApp()
	m.state = stateFlights
	m.flight = flightView{phase: phaseLoaded, flightNumber: "FL100", selection: "1A", snapshot: sampleFlight()}

	m, _ = update(t, m, bookingCreatedMsg{flightNumber: "FL100", err: seatConflictErr()})

	if m.flight.selection != "1A" {
		t.Errorf("selection = %q, must survive a failed booking", m.flight.selection)
	}
	if m.refresh.Value() != 0 {
		t.Errorf("refresh token = %d, failure must not bump", m.refresh.Value())
	}
	if m.flight.status != "Booking failed: Seat is already booked." {
		t.Errorf("status = %q", m.flight.status)
	}
	if m.flight.phase != phaseLoaded {
		t.Errorf("flight phase = %v, failure must not discard the snapshot", m.flight.phase)
	}
}

func TestStaleFlightDetailDropped(t *testing.T) {
	m := newTestApp()
	m.state = stateFlights
	m.flight = flightView{phase: phaseLoading, flightNumber: "FL100"}
	stale := m.flightSeq.Next()
	m.flightSeq.Next()

	m, _ = update(t, m, flightDetailMsg{flightNumber: "FL100", seq: stale, flight: sampleFlight()})

	if m.flight.phase != phaseLoading {
		t.Errorf("phase = %v, superseded response must be dropped", m.flight.phase)
	}
}

func TestDetailForDifferentFlightDropped(t *testing.T) {
	m := newTestApp()
	m.state = stateFlights
	m.flight = flightView{phase: phaseLoading, flightNumber: "FL200"}
	seq := m.flightSeq.Next()

	m, _ = update(t, m, flightDetailMsg{flightNumber: "FL100", seq: seq, flight: sampleFlight()})

	if m.flight.phase != phaseLoading || m.flight.snapshot.FlightNumber != "" {
		t.Error("response for another flight must not land")
	}
}

func TestFlightToggleOpenClose(t *testing.T) {
	m := newTestApp()
	m.state = stateFlights
	m, _ = update(t, m, flightsMsg{seq: m.flightsSeq.Next(), flights: []model.FlightSummary{{FlightNumber: "FL100", Capacity: 4}}})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.flight.open() || m.flight.flightNumber != "FL100" {
		t.Fatalf("flight = %+v, want FL100 opening", m.flight)
	}
	if !m.focusSeats {
		t.Error("opening a flight must focus the seat panel")
	}
	if cmd == nil {
		t.Error("opening must dispatch a detail fetch")
	}

	m.focusSeats = false
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.flight.open() {
		t.Error("re-selecting the open flight must close the panel")
	}
}

func TestBookWithoutSelection(t *testing.T) {
	m := newTestApp()
	m.state = stateFlights
	m.focusSeats = true
	m.flight = flightView{phase: phaseLoaded, flightNumber: "FL100", snapshot: sampleFlight()}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})

	if m.state != stateFlights {
		t.Errorf("state = %v, must stay on flights", m.state)
	}
	if m.flight.status != "Please select a seat first." {
		t.Errorf("status = %q", m.flight.status)
	}
}

func TestCancelSuccessRoutesToOrigin(t *testing.T) {
	m := newTestApp()
	m.state = stateConfirmCancel
	m.confirm = cancelPrompt{bookingID: "B1", origin: stateCustomerDetail}
	m.customer = customerView{phase: phaseLoaded, personID: "C1"}

	m, cmd := update(t, m, bookingCancelledMsg{
		bookingID: "B1",
		origin:    stateCustomerDetail,
		message:   "Booking B1 cancelled. Refund processed.",
	})

	if m.state != stateCustomerDetail {
		t.Errorf("state = %v, want origin", m.state)
	}
	if m.customer.status != "Booking B1 cancelled. Refund processed." {
		t.Errorf("status = %q", m.customer.status)
	}
	if m.refresh.Value() != 1 {
		t.Errorf("refresh token = %d, want one bump", m.refresh.Value())
	}
	if m.customer.phase != phaseLoading {
		t.Errorf("customer phase = %v, open customer must re-fetch", m.customer.phase)
	}
	if cmd == nil {
		t.Error("success must dispatch re-fetch commands")
	}
}

func TestCancelFailureDoesNotBump(t *testing.T) {
	m := newTestApp()
	m.state = stateConfirmCancel
	m.confirm = cancelPrompt{bookingID: "B1", origin: stateFlights}
	m.flight = flightView{phase: phaseLoaded, flightNumber: "FL100", snapshot: sampleFlight()}

	cancelErr := &service.APIError{StatusCode: http.StatusConflict, Status: "409 Conflict", Reason: "Booking is already cancelled."}
	m, _ = update(t, m, bookingCancelledMsg{bookingID: "B1", origin: stateFlights, err: cancelErr})

	if m.refresh.Value() != 0 {
		t.Errorf("refresh token = %d, failure must not bump", m.refresh.Value())
	}
	if !strings.Contains(m.flight.status, "Failed to cancel booking B1") {
		t.Errorf("status = %q", m.flight.status)
	}
	if m.state != stateFlights {
		t.Errorf("state = %v, want origin", m.state)
	}
}

func TestSwapFailureClearsPicks(t *testing.T) {
	m := newTestApp()
	m.state = stateSwap
	m.swap = swapView{phase: phaseLoaded, bookings: sampleBookings(), pickA: "B1", pickB: "B2"}

	swapErr := &service.APIError{StatusCode: http.StatusBadRequest, Status: "400 Bad Request", Reason: "Both bookings must be confirmed to swap."}
	m, _ = update(t, m, seatsSwappedMsg{err: swapErr})

	if m.swap.pickA != "" || m.swap.pickB != "" {
		t.Error("failed swap must clear both picks")
	}
	if m.refresh.Value() != 0 {
		t.Errorf("refresh token = %d, failure must not bump", m.refresh.Value())
	}
	if m.swap.status != "Failed to swap seats: Both bookings must be confirmed to swap." {
		t.Errorf("status = %q", m.swap.status)
	}
}

func TestSwapSuccessRefreshesBookings(t *testing.T) {
	m := newTestApp()
	m.state = stateSwap
	m.swap = swapView{phase: phaseLoaded, bookings: sampleBookings(), pickA: "B1", pickB: "B2"}

	m, cmd := update(t, m, seatsSwappedMsg{message: "Seats swapped successfully."})

	if m.refresh.Value() != 1 {
		t.Errorf("refresh token = %d, want one bump", m.refresh.Value())
	}
	if m.swap.pickA != "" || m.swap.pickB != "" {
		t.Error("successful swap must clear both picks")
	}
	if m.swap.phase != phaseLoading {
		t.Errorf("swap phase = %v, candidates must re-fetch", m.swap.phase)
	}
	if cmd == nil {
		t.Error("success must dispatch re-fetch commands")
	}
}

func TestPickerLoadFailureDegrades(t *testing.T) {
	m := newTestApp()
	m.state = statePickCustomer
	m.pickerLoading = true
	m.flight = flightView{phase: phaseLoaded, flightNumber: "FL100", selection: "1A", snapshot: sampleFlight()}

	m, _ = update(t, m, customersMsg{forPicker: true, err: errors.New("connection refused")})

	if m.pickerLoading {
		t.Error("picker must leave the loading state")
	}
	if m.customersWarn == "" {
		t.Error("degraded picker must show a warning")
	}
	if m.state != statePickCustomer {
		t.Errorf("state = %v, degraded picker is not a fatal error", m.state)
	}
	if len(m.picker.Items()) != 0 {
		t.Error("degraded picker must be empty")
	}
}

func TestCustomerAddedRefreshesList(t *testing.T) {
	m := newTestApp()
	m.state = stateAddCustomer

	m, cmd := update(t, m, customerAddedMsg{customer: model.Customer{PersonID: "C9", Name: "Alice"}})

	if m.state != stateLoadingCustomers {
		t.Errorf("state = %v, want reloading customers", m.state)
	}
	if m.customersStatus != "Customer added: Alice (ID: C9)" {
		t.Errorf("status = %q", m.customersStatus)
	}
	if cmd == nil {
		t.Error("add must dispatch a customer list fetch")
	}
}

func TestGoBackUnwindsSwapPicks(t *testing.T) {
	m := newTestApp()
	m.state = stateSwap
	m.swap = swapView{phase: phaseLoaded, bookings: sampleBookings(), pickA: "B1", pickB: "B2"}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.swap.pickB != "" {
		t.Fatal("first esc must unpick the second booking")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.swap.pickA != "" {
		t.Fatal("second esc must unpick the first booking")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateFlights {
		t.Errorf("state = %v, third esc must leave the swap screen", m.state)
	}
}

func TestRefetchOnReturnWhenTokenMoved(t *testing.T) {
	m := newTestApp()
	m.state = stateCustomers
	m.flights = []model.FlightSummary{{FlightNumber: "FL100"}}
	m.flightsToken = m.refresh.Value()
	m.refresh.Bump()

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateFlights {
		t.Fatalf("state = %v, want flights", m.state)
	}
	if cmd == nil {
		t.Error("stale flight list must re-fetch on return")
	}
}

func TestErrorStateRecovers(t *testing.T) {
	m := newTestApp()
	m.state = stateLoadingFlights

	m, _ = update(t, m, errMsg{err: errors.New("connection refused")})
	if m.state != stateError {
		t.Fatalf("state = %v, want error", m.state)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateFlights {
		t.Errorf("state = %v, esc must leave the error screen", m.state)
	}
}
