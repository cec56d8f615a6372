package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"airline-desk-cli/model"
)

// customerView is the detail panel for one customer, bookings included.
// Balance and booking list are authority-owned and only change through
// re-fetch.
type customerView struct {
	phase     viewPhase
	personID  string
	customer  model.Customer
	cursor    int
	status    string
	err       error
	seenToken uint64
}

func (v customerView) open() bool {
	return v.phase != phaseClosed
}

func (v customerView) bookingAtCursor() (model.Booking, bool) {
	if v.phase != phaseLoaded || v.cursor < 0 || v.cursor >= len(v.customer.Bookings) {
		return model.Booking{}, false
	}
	return v.customer.Bookings[v.cursor], true
}

func (v *customerView) moveCursor(delta int) {
	if v.phase != phaseLoaded || len(v.customer.Bookings) == 0 {
		return
	}
	next := v.cursor + delta
	if next < 0 || next >= len(v.customer.Bookings) {
		return
	}
	v.cursor = next
}

func (v *customerView) clampCursor() {
	if v.cursor >= len(v.customer.Bookings) {
		v.cursor = len(v.customer.Bookings) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func renderCustomerDetail(customer model.Customer, cursor int) string {
	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Customer: %s (ID: %s)", customer.Name, customer.PersonID))
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Age: %d • Money: %s\n\n", customer.Age, formatMoney(customer.Money)))

	if len(customer.Bookings) == 0 {
		b.WriteString("No bookings found for this customer.\n")
		return b.String()
	}

	b.WriteString("Bookings:\n")
	cancelled := lipgloss.NewStyle().Faint(true)
	for i, booking := range customer.Bookings {
		line := fmt.Sprintf("ID: %s • Flight: %s • Seat: %s • Status: %s", booking.BookingID, booking.FlightNumber, booking.SeatID, booking.Status)
		if booking.Status == model.BookingCancelled {
			line = cancelled.Render(line)
		}
		marker := "  "
		if i == cursor {
			marker = "> "
		}
		b.WriteString(marker + line + "\n")
	}
	return b.String()
}

// customerForm collects the fields for registering a customer.
type customerForm struct {
	inputs []textinput.Model
	focus  int
	status string
}

const (
	formFieldName = iota
	formFieldAge
	formFieldMoney
	formFieldCount
)

func newCustomerForm() customerForm {
	form := customerForm{inputs: make([]textinput.Model, formFieldCount)}
	labels := []string{"Name", "Age", "Money"}
	for i := range form.inputs {
		input := textinput.New()
		input.Prompt = labels[i] + ": "
		input.CharLimit = 64
		form.inputs[i] = input
	}
	form.inputs[formFieldName].Focus()
	return form
}

func (f *customerForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = formFieldName
	f.inputs[formFieldName].Focus()
	f.status = ""
}

func (f *customerForm) advance() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % formFieldCount
	f.inputs[f.focus].Focus()
}

func (f *customerForm) atLastField() bool {
	return f.focus == formFieldCount-1
}

func (f customerForm) view() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Add Customer"))
	b.WriteString("\n\n")
	for i := range f.inputs {
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	if f.status != "" {
		b.WriteString("\n" + f.status + "\n")
	}
	return b.String()
}

// parseCustomerForm validates the form fields into a request payload. Pure
// so the precondition checks run without any network plumbing.
func parseCustomerForm(name string, age string, money string) (model.NewCustomer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.NewCustomer{}, errors.New("name is required")
	}
	parsedAge, err := strconv.Atoi(strings.TrimSpace(age))
	if err != nil || parsedAge < 0 {
		return model.NewCustomer{}, errors.New("age must be a non-negative number")
	}
	parsedMoney, err := strconv.ParseFloat(strings.TrimSpace(money), 64)
	if err != nil || parsedMoney < 0 {
		return model.NewCustomer{}, errors.New("money must be a non-negative amount")
	}
	return model.NewCustomer{Name: name, Age: parsedAge, Money: parsedMoney}, nil
}
