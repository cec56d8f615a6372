package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"airline-desk-cli/model"
	"airline-desk-cli/service"
	"airline-desk-cli/store"
)

type appState int

const (
	stateLoadingFlights appState = iota
	stateFlights
	statePickCustomer
	stateLoadingCustomers
	stateCustomers
	stateCustomerDetail
	stateAddCustomer
	stateSwap
	stateConfirmCancel
	stateError
)

type appModel struct {
	client *service.Client

	state     appState
	lastState appState
	err       error

	width  int
	height int

	// refresh is the synchronization spine: bumped once per confirmed
	// mutation, compared by every view that caches authority data.
	refresh store.Token

	flights      []model.FlightSummary
	flightList   list.Model
	flightsSeq   store.Sequencer
	flightsToken uint64
	flightsWarn  string

	customers       []model.Customer
	customerList    list.Model
	customersSeq    store.Sequencer
	customersToken  uint64
	customersLoaded bool
	customersWarn   string
	customersStatus string

	flight    flightView
	flightSeq store.Sequencer

	customer    customerView
	customerSeq store.Sequencer

	swap        swapView
	swapList    list.Model
	bookingsSeq store.Sequencer

	picker        list.Model
	pickerLoading bool

	form customerForm

	confirm cancelPrompt

	initFetch tea.Cmd

	focusSeats bool

	spinner spinner.Model
}

type cancelPrompt struct {
	bookingID string
	origin    appState
}

type errMsg struct {
	err error
}

type flightsMsg struct {
	seq     uint64
	flights []model.FlightSummary
	err     error
}

type flightDetailMsg struct {
	flightNumber string
	seq          uint64
	flight       model.Flight
	err          error
}

type customersMsg struct {
	seq       uint64
	customers []model.Customer
	err       error
	forPicker bool
}

type customerMsg struct {
	personID string
	seq      uint64
	customer model.Customer
	err      error
}

type bookingsMsg struct {
	seq      uint64
	bookings []model.Booking
	err      error
}

type bookingCreatedMsg struct {
	flightNumber string
	booking      model.Booking
	err          error
}

type bookingCancelledMsg struct {
	bookingID string
	origin    appState
	message   string
	err       error
}

type seatsSwappedMsg struct {
	message string
	err     error
}

type customerAddedMsg struct {
	customer model.Customer
	err      error
}

func New() tea.Model {
	m := appModel{
		client: service.NewClient(nil),
		state:  stateLoadingFlights,
	}

	m.flightList = newList("Flights")
	m.customerList = newList("Customers")
	m.picker = newList("Select Customer")
	m.swapList = newList("Swap Seats • Confirmed Bookings")
	m.form = newCustomerForm()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	// The fetch command must be built here so the sequencer increment
	// lands in the model the program keeps; Init runs on a copy.
	m.initFetch = m.fetchFlightsCmd()

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.initFetch, m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.handleFilterInput(msg) {
			return m, nil
		}
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		m = next

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		m.lastState = recoverStateFrom(m.state)
		m.state = stateError
		return m, nil

	case flightsMsg:
		if m.flightsSeq.Obsolete(msg.seq) {
			return m, nil
		}
		if msg.err != nil {
			if m.state == stateLoadingFlights {
				return m, errCmd(msg.err)
			}
			// The stale list stays on screen, but never silently.
			m.flightsWarn = "Could not refresh flights: " + service.Reason(msg.err)
			return m, nil
		}
		m.flightsWarn = ""
		m.flights = msg.flights
		m.flightsToken = m.refresh.Value()
		m.flightList.SetItems(buildFlightItems(msg.flights))
		if m.state == stateLoadingFlights {
			m.state = stateFlights
		}
		return m, nil

	case flightDetailMsg:
		if msg.flightNumber != m.flight.flightNumber || m.flightSeq.Obsolete(msg.seq) {
			return m, nil
		}
		if msg.err != nil {
			m.flight.phase = phaseError
			m.flight.err = msg.err
			return m, nil
		}
		m.flight.phase = phaseLoaded
		m.flight.snapshot = msg.flight
		m.flight.err = nil
		m.flight.seenToken = m.refresh.Value()
		m.flight.clampCursor()
		return m, nil

	case customersMsg:
		if m.customersSeq.Obsolete(msg.seq) {
			return m, nil
		}
		if msg.forPicker {
			m.pickerLoading = false
			if msg.err != nil {
				// The rest of the view stays usable: empty, disabled
				// selector plus a visible warning.
				m.customersWarn = "Could not load customers for selection."
				m.picker.SetItems(nil)
				return m, nil
			}
			m.customersWarn = ""
			m.rememberCustomers(msg.customers)
			m.picker.SetItems(buildCustomerItems(msg.customers))
			m.picker.Select(0)
			return m, nil
		}
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		m.rememberCustomers(msg.customers)
		m.customerList.SetItems(buildCustomerItems(msg.customers))
		if m.state == stateLoadingCustomers {
			m.state = stateCustomers
		}
		return m, nil

	case customerMsg:
		if msg.personID != m.customer.personID || m.customerSeq.Obsolete(msg.seq) {
			return m, nil
		}
		if msg.err != nil {
			m.customer.phase = phaseError
			m.customer.err = msg.err
			return m, nil
		}
		m.customer.phase = phaseLoaded
		m.customer.customer = msg.customer
		m.customer.err = nil
		m.customer.seenToken = m.refresh.Value()
		m.customer.clampCursor()
		return m, nil

	case bookingsMsg:
		if m.bookingsSeq.Obsolete(msg.seq) {
			return m, nil
		}
		if msg.err != nil {
			m.swap.phase = phaseError
			m.swap.err = msg.err
			return m, nil
		}
		m.swap.phase = phaseLoaded
		m.swap.bookings = msg.bookings
		m.swap.err = nil
		m.swap.seenToken = m.refresh.Value()
		m.rebuildSwapList()
		return m, nil

	case bookingCreatedMsg:
		if msg.err != nil {
			// Selection survives a failed booking so the user can retry
			// with another customer. No token bump: nothing changed.
			m.flight.status = "Booking failed: " + service.Reason(msg.err)
			return m, nil
		}
		m.refresh.Bump()
		m.flight.selection = ""
		m.flight.status = fmt.Sprintf("Booking successful! ID: %s. Seat: %s for Customer: %s",
			msg.booking.BookingID, msg.booking.SeatID, msg.booking.CustomerID)
		return m, tea.Batch(append(m.refreshAfterMutationCmds(), m.spinner.Tick)...)

	case bookingCancelledMsg:
		if msg.err != nil {
			m.routeStatus(msg.origin, fmt.Sprintf("Failed to cancel booking %s: %s", msg.bookingID, service.Reason(msg.err)))
			m.state = msg.origin
			return m, nil
		}
		m.refresh.Bump()
		text := msg.message
		if text == "" {
			text = fmt.Sprintf("Booking %s cancellation processed.", msg.bookingID)
		}
		m.routeStatus(msg.origin, text)
		m.state = msg.origin
		return m, tea.Batch(append(m.refreshAfterMutationCmds(), m.spinner.Tick)...)

	case seatsSwappedMsg:
		m.swap.clearPicks()
		if msg.err != nil {
			m.swap.status = "Failed to swap seats: " + service.Reason(msg.err)
			m.rebuildSwapList()
			return m, nil
		}
		m.refresh.Bump()
		m.swap.status = msg.message
		// The swap response does not say which flights were touched, so
		// refresh the lot: correctness over precision.
		m.swap.phase = phaseLoading
		cmds := append(m.refreshAfterMutationCmds(), m.fetchBookingsCmd(), m.spinner.Tick)
		return m, tea.Batch(cmds...)

	case customerAddedMsg:
		if msg.err != nil {
			m.form.status = "Failed to add customer: " + service.Reason(msg.err)
			return m, nil
		}
		m.form.reset()
		m.customersStatus = fmt.Sprintf("Customer added: %s (ID: %s)", msg.customer.Name, msg.customer.PersonID)
		m.state = stateLoadingCustomers
		return m, tea.Batch(m.fetchCustomersCmd(false), m.spinner.Tick)
	}

	var cmd tea.Cmd
	switch m.state {
	case stateFlights:
		if !m.focusSeats {
			m.flightList, cmd = m.flightList.Update(msg)
		}
	case stateCustomers:
		m.customerList, cmd = m.customerList.Update(msg)
	case statePickCustomer:
		m.picker, cmd = m.picker.Update(msg)
	case stateSwap:
		m.swapList, cmd = m.swapList.Update(msg)
	case stateAddCustomer:
		m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	}
	return m, cmd
}

func (m *appModel) rememberCustomers(customers []model.Customer) {
	m.customers = customers
	m.customersLoaded = true
	m.customersToken = m.refresh.Value()
}

func (m *appModel) routeStatus(origin appState, text string) {
	switch origin {
	case stateCustomerDetail:
		m.customer.status = text
	default:
		m.flight.status = text
	}
}

// refreshAfterMutationCmds re-fetches everything a mutation may have
// touched: the flight summaries and any open flight or customer view. Full
// re-fetch, never a local patch.
func (m *appModel) refreshAfterMutationCmds() []tea.Cmd {
	cmds := []tea.Cmd{m.fetchFlightsCmd()}
	if m.flight.open() {
		m.flight.phase = phaseLoading
		cmds = append(cmds, m.fetchFlightDetailCmd(m.flight.flightNumber))
	}
	if m.customer.open() {
		m.customer.phase = phaseLoading
		cmds = append(cmds, m.fetchCustomerCmd(m.customer.personID))
	}
	return cmds
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		return m.goBack()
	}

	switch m.state {
	case stateFlights:
		return m.handleFlightsKey(msg)
	case statePickCustomer:
		if msg.Type == tea.KeyEnter {
			return m.submitBooking()
		}
	case stateCustomers:
		return m.handleCustomersKey(msg)
	case stateCustomerDetail:
		return m.handleCustomerDetailKey(msg)
	case stateAddCustomer:
		return m.handleFormKey(msg)
	case stateSwap:
		return m.handleSwapKey(msg)
	case stateConfirmCancel:
		return m.handleConfirmKey(msg)
	}
	return m, nil, false
}

func (m appModel) handleFlightsKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "tab":
		if m.flight.open() {
			m.focusSeats = !m.focusSeats
		}
		return m, nil, true
	case "ctrl+t":
		return m.openCustomers()
	case "ctrl+s":
		return m.openSwap()
	case "ctrl+r":
		if m.focusSeats && m.flight.open() {
			return m.reloadFlightDetail()
		}
		return m, tea.Batch(m.fetchFlightsCmd(), m.spinner.Tick), true
	}

	if m.focusSeats {
		return m.handleSeatGridKey(msg)
	}

	if msg.Type == tea.KeyEnter {
		item, ok := m.flightList.SelectedItem().(flightItem)
		if !ok {
			return m, nil, true
		}
		if m.flight.open() && m.flight.flightNumber == item.flight.FlightNumber {
			// Toggle: re-selecting the open flight closes the panel.
			m.flight = flightView{}
			m.focusSeats = false
			return m, nil, true
		}
		m.flight = flightView{phase: phaseLoading, flightNumber: item.flight.FlightNumber}
		m.focusSeats = true
		return m, tea.Batch(m.fetchFlightDetailCmd(item.flight.FlightNumber), m.spinner.Tick), true
	}
	return m, nil, false
}

func (m appModel) handleSeatGridKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "up":
		m.flight.moveCursor(-seatsPerRow)
		return m, nil, true
	case "down":
		m.flight.moveCursor(seatsPerRow)
		return m, nil, true
	case "left":
		m.flight.moveCursor(-1)
		return m, nil, true
	case "right":
		m.flight.moveCursor(1)
		return m, nil, true
	case "enter":
		if seat, ok := m.flight.seatAtCursor(); ok {
			m.flight.chooseSeat(seat)
		}
		return m, nil, true
	case "b":
		return m.beginCustomerPick()
	case "c":
		seat, ok := m.flight.seatAtCursor()
		if !ok {
			return m, nil, true
		}
		if !seat.IsBooked || seat.BookingID == "" {
			m.flight.status = fmt.Sprintf("Seat %s has no booking to cancel.", seat.SeatID)
			return m, nil, true
		}
		m.confirm = cancelPrompt{bookingID: seat.BookingID, origin: stateFlights}
		m.state = stateConfirmCancel
		return m, nil, true
	case "r":
		return m.reloadFlightDetail()
	}
	return m, nil, true
}

func (m appModel) reloadFlightDetail() (appModel, tea.Cmd, bool) {
	if !m.flight.open() {
		return m, nil, true
	}
	m.flight.phase = phaseLoading
	return m, tea.Batch(m.fetchFlightDetailCmd(m.flight.flightNumber), m.spinner.Tick), true
}

func (m appModel) beginCustomerPick() (appModel, tea.Cmd, bool) {
	if m.flight.selection == "" {
		m.flight.status = "Please select a seat first."
		return m, nil, true
	}
	m.state = statePickCustomer
	m.pickerLoading = true
	m.customersWarn = ""
	m.picker.SetItems(nil)
	m.picker.ResetFilter()
	return m, tea.Batch(m.fetchCustomersCmd(true), m.spinner.Tick), true
}

func (m appModel) submitBooking() (appModel, tea.Cmd, bool) {
	if m.flight.selection == "" {
		m.flight.status = "Please select a seat first."
		m.state = stateFlights
		m.focusSeats = true
		return m, nil, true
	}
	item, ok := m.picker.SelectedItem().(customerItem)
	if !ok {
		m.customersWarn = "Please select a Customer for booking."
		return m, nil, true
	}
	m.flight.status = "Processing booking..."
	m.state = stateFlights
	m.focusSeats = true
	cmd := m.createBookingCmd(item.customer.PersonID, m.flight.flightNumber, m.flight.selection)
	return m, cmd, true
}

func (m appModel) openCustomers() (appModel, tea.Cmd, bool) {
	m.customersStatus = ""
	if m.customersLoaded && !m.refresh.ChangedSince(m.customersToken) {
		m.state = stateCustomers
		return m, nil, true
	}
	m.state = stateLoadingCustomers
	return m, tea.Batch(m.fetchCustomersCmd(false), m.spinner.Tick), true
}

func (m appModel) handleCustomersKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+n":
		m.form.reset()
		m.state = stateAddCustomer
		return m, nil, true
	case "ctrl+r":
		m.state = stateLoadingCustomers
		return m, tea.Batch(m.fetchCustomersCmd(false), m.spinner.Tick), true
	}
	if msg.Type == tea.KeyEnter {
		item, ok := m.customerList.SelectedItem().(customerItem)
		if !ok {
			return m, nil, true
		}
		m.customer = customerView{phase: phaseLoading, personID: item.customer.PersonID}
		m.state = stateCustomerDetail
		return m, tea.Batch(m.fetchCustomerCmd(item.customer.PersonID), m.spinner.Tick), true
	}
	return m, nil, false
}

func (m appModel) handleCustomerDetailKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "up":
		m.customer.moveCursor(-1)
		return m, nil, true
	case "down":
		m.customer.moveCursor(1)
		return m, nil, true
	case "enter", "c":
		booking, ok := m.customer.bookingAtCursor()
		if !ok {
			return m, nil, true
		}
		if booking.Status == model.BookingCancelled {
			m.customer.status = fmt.Sprintf("Booking %s is already cancelled.", booking.BookingID)
			return m, nil, true
		}
		m.confirm = cancelPrompt{bookingID: booking.BookingID, origin: stateCustomerDetail}
		m.state = stateConfirmCancel
		return m, nil, true
	case "r":
		if !m.customer.open() {
			return m, nil, true
		}
		m.customer.phase = phaseLoading
		return m, tea.Batch(m.fetchCustomerCmd(m.customer.personID), m.spinner.Tick), true
	}
	return m, nil, true
}

func (m appModel) handleFormKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "tab":
		m.form.advance()
		return m, nil, true
	case "ctrl+g":
		m.form.status = "Registering auto-generated customer..."
		return m, m.addCustomerCmd(model.NewCustomer{AutoGenerate: true}), true
	}
	if msg.Type == tea.KeyEnter {
		if !m.form.atLastField() {
			m.form.advance()
			return m, nil, true
		}
		request, err := parseCustomerForm(
			m.form.inputs[formFieldName].Value(),
			m.form.inputs[formFieldAge].Value(),
			m.form.inputs[formFieldMoney].Value(),
		)
		if err != nil {
			m.form.status = err.Error()
			return m, nil, true
		}
		m.form.status = "Registering customer..."
		return m, m.addCustomerCmd(request), true
	}
	return m, nil, false
}

func (m appModel) openSwap() (appModel, tea.Cmd, bool) {
	m.state = stateSwap
	if m.swap.phase == phaseLoaded && !m.refresh.ChangedSince(m.swap.seenToken) {
		m.rebuildSwapList()
		return m, nil, true
	}
	m.swap.phase = phaseLoading
	return m, tea.Batch(m.fetchBookingsCmd(), m.spinner.Tick), true
}

func (m appModel) handleSwapKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+r":
		m.swap.phase = phaseLoading
		return m, tea.Batch(m.fetchBookingsCmd(), m.spinner.Tick), true
	}
	if msg.Type != tea.KeyEnter {
		return m, nil, false
	}
	if m.swap.pickA != "" && m.swap.pickB != "" {
		if err := validateSwapIDs(m.swap.pickA, m.swap.pickB); err != nil {
			m.swap.status = err.Error()
			return m, nil, true
		}
		m.swap.status = "Processing seat swap..."
		return m, m.swapSeatsCmd(m.swap.pickA, m.swap.pickB), true
	}
	item, ok := m.swapList.SelectedItem().(bookingItem)
	if !ok {
		return m, nil, true
	}
	if m.swap.pickA == "" {
		m.swap.pickA = item.booking.BookingID
	} else {
		m.swap.pickB = item.booking.BookingID
	}
	m.swap.status = ""
	m.rebuildSwapList()
	return m, nil, true
}

func (m appModel) handleConfirmKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "y", "enter":
		prompt := m.confirm
		m.routeStatus(prompt.origin, fmt.Sprintf("Cancelling booking %s...", prompt.bookingID))
		m.state = prompt.origin
		return m, m.cancelBookingCmd(prompt.bookingID, prompt.origin), true
	case "n", "esc":
		m.state = m.confirm.origin
		return m, nil, true
	}
	return m, nil, true
}

func (m appModel) goBack() (appModel, tea.Cmd, bool) {
	switch m.state {
	case stateFlights:
		if m.focusSeats {
			m.focusSeats = false
		}
		return m, nil, true
	case statePickCustomer:
		m.state = stateFlights
		m.focusSeats = true
		return m, nil, true
	case stateLoadingCustomers, stateCustomers:
		m.state = stateFlights
		return m, m.refetchStaleFlightsCmd(), true
	case stateCustomerDetail:
		m.state = stateCustomers
		return m, nil, true
	case stateAddCustomer:
		m.state = stateCustomers
		return m, nil, true
	case stateSwap:
		if m.swap.pickB != "" {
			m.swap.pickB = ""
			m.rebuildSwapList()
			return m, nil, true
		}
		if m.swap.pickA != "" {
			m.swap.pickA = ""
			m.rebuildSwapList()
			return m, nil, true
		}
		m.state = stateFlights
		return m, m.refetchStaleFlightsCmd(), true
	case stateConfirmCancel:
		m.state = m.confirm.origin
		return m, nil, true
	case stateError:
		m.state = m.lastState
		return m, nil, true
	}
	return m, nil, true
}

// refetchStaleFlightsCmd is the subscription side of the refresh token: on
// returning to the flights screen, anything fetched before the last
// mutation is discarded and re-fetched.
func (m *appModel) refetchStaleFlightsCmd() tea.Cmd {
	var cmds []tea.Cmd
	if m.refresh.ChangedSince(m.flightsToken) {
		cmds = append(cmds, m.fetchFlightsCmd())
	}
	if m.flight.open() && m.refresh.ChangedSince(m.flight.seenToken) {
		m.flight.phase = phaseLoading
		cmds = append(cmds, m.fetchFlightDetailCmd(m.flight.flightNumber))
	}
	if len(cmds) == 0 {
		return nil
	}
	cmds = append(cmds, m.spinner.Tick)
	return tea.Batch(cmds...)
}

func (m *appModel) rebuildSwapList() {
	candidates := swapCandidates(m.swap.bookings, m.swap.pickA, m.swap.pickB)
	m.swapList.SetItems(buildBookingItems(candidates))
	if count := len(m.swapList.Items()); count > 0 && m.swapList.Index() >= count {
		m.swapList.Select(count - 1)
	}
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateFlights:
		if m.focusSeats {
			return nil
		}
		return &m.flightList
	case stateCustomers:
		return &m.customerList
	case statePickCustomer:
		return &m.picker
	case stateSwap:
		return &m.swapList
	default:
		return nil
	}
}

func (m appModel) isLoadingState() bool {
	switch m.state {
	case stateLoadingFlights, stateLoadingCustomers:
		return true
	case stateFlights:
		return m.flight.phase == phaseLoading
	case statePickCustomer:
		return m.pickerLoading
	case stateCustomerDetail:
		return m.customer.phase == phaseLoading
	case stateSwap:
		return m.swap.phase == phaseLoading
	}
	return false
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	listHeight := h
	if m.flight.open() {
		// Leave room for the seat panel under the flight list.
		listHeight = h / 2
		if listHeight < 6 {
			listHeight = 6
		}
	}
	m.flightList.SetSize(m.width, listHeight)
	m.customerList.SetSize(m.width, h)
	m.picker.SetSize(m.width, h)
	m.swapList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingFlights:
		return stateFlights
	case stateLoadingCustomers:
		return stateFlights
	case stateError:
		return stateFlights
	default:
		return state
	}
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

type flightItem struct {
	flight model.FlightSummary
}

func (f flightItem) Title() string {
	return f.flight.FlightNumber
}

func (f flightItem) Description() string {
	desc := fmt.Sprintf("Capacity: %d • Booked: %d", f.flight.Capacity, f.flight.BookedSeatsCount)
	if f.flight.IsFull {
		desc += " • Full"
	}
	return desc
}

func (f flightItem) FilterValue() string {
	return strings.ToLower(f.flight.FlightNumber)
}

func buildFlightItems(flights []model.FlightSummary) []list.Item {
	items := make([]list.Item, 0, len(flights))
	for _, flight := range flights {
		items = append(items, flightItem{flight: flight})
	}
	return items
}

type customerItem struct {
	customer model.Customer
}

func (c customerItem) Title() string {
	return fmt.Sprintf("%s (ID: %s)", c.customer.Name, c.customer.PersonID)
}

func (c customerItem) Description() string {
	return fmt.Sprintf("Age: %d • Money: %s", c.customer.Age, formatMoney(c.customer.Money))
}

func (c customerItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{c.customer.Name, c.customer.PersonID}, " "))
}

func buildCustomerItems(customers []model.Customer) []list.Item {
	items := make([]list.Item, 0, len(customers))
	for _, customer := range customers {
		items = append(items, customerItem{customer: customer})
	}
	return items
}

func (m *appModel) fetchFlightsCmd() tea.Cmd {
	seq := m.flightsSeq.Next()
	client := m.client
	return func() tea.Msg {
		flights, err := client.ListFlights(context.Background())
		return flightsMsg{seq: seq, flights: flights, err: err}
	}
}

func (m *appModel) fetchFlightDetailCmd(flightNumber string) tea.Cmd {
	seq := m.flightSeq.Next()
	client := m.client
	return func() tea.Msg {
		flight, err := client.GetFlight(context.Background(), flightNumber)
		return flightDetailMsg{flightNumber: flightNumber, seq: seq, flight: flight, err: err}
	}
}

func (m *appModel) fetchCustomersCmd(forPicker bool) tea.Cmd {
	seq := m.customersSeq.Next()
	client := m.client
	return func() tea.Msg {
		customers, err := client.ListCustomers(context.Background())
		return customersMsg{seq: seq, customers: customers, err: err, forPicker: forPicker}
	}
}

func (m *appModel) fetchCustomerCmd(personID string) tea.Cmd {
	seq := m.customerSeq.Next()
	client := m.client
	return func() tea.Msg {
		customer, err := client.GetCustomer(context.Background(), personID)
		return customerMsg{personID: personID, seq: seq, customer: customer, err: err}
	}
}

func (m *appModel) fetchBookingsCmd() tea.Cmd {
	seq := m.bookingsSeq.Next()
	client := m.client
	return func() tea.Msg {
		bookings, err := client.ListBookings(context.Background())
		return bookingsMsg{seq: seq, bookings: bookings, err: err}
	}
}

func (m *appModel) createBookingCmd(customerID string, flightNumber string, seatID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		booking, err := client.CreateBooking(context.Background(), service.BookingRequest{
			CustomerID:   customerID,
			FlightNumber: flightNumber,
			SeatID:       seatID,
		})
		return bookingCreatedMsg{flightNumber: flightNumber, booking: booking, err: err}
	}
}

func (m *appModel) cancelBookingCmd(bookingID string, origin appState) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		message, err := client.CancelBooking(context.Background(), bookingID)
		return bookingCancelledMsg{bookingID: bookingID, origin: origin, message: message, err: err}
	}
}

func (m *appModel) swapSeatsCmd(bookingID1 string, bookingID2 string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		message, err := client.SwapSeats(context.Background(), bookingID1, bookingID2)
		return seatsSwappedMsg{message: message, err: err}
	}
}

func (m *appModel) addCustomerCmd(request model.NewCustomer) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		customer, err := client.AddCustomer(context.Background(), request)
		return customerAddedMsg{customer: customer, err: err}
	}
}
