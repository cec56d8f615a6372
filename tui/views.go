package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func (m appModel) View() string {
	var body string
	switch m.state {
	case stateLoadingFlights:
		body = m.loadingView("Loading flights")
	case stateFlights:
		body = m.flightsView()
	case statePickCustomer:
		body = m.pickCustomerView()
	case stateLoadingCustomers:
		body = m.loadingView("Loading customers")
	case stateCustomers:
		body = m.customersView()
	case stateCustomerDetail:
		body = m.customerDetailView()
	case stateAddCustomer:
		body = m.form.view() + "\n" + hint("enter next/submit • tab next field • ctrl+g auto-generate • esc back")
	case stateSwap:
		body = m.swapScreenView()
	case stateConfirmCancel:
		body = m.confirmView()
	case stateError:
		body = m.errorView()
	}
	return m.headerView() + "\n\n" + body
}

func (m appModel) headerView() string {
	title := titleStyle.Render("Airline Desk")
	var meta []string
	if m.flight.open() {
		meta = append(meta, "Flight: "+m.flight.flightNumber)
	}
	if m.flight.selection != "" {
		meta = append(meta, "Selected: "+m.flight.selection)
	}
	if len(meta) == 0 {
		return title
	}
	return title + "  " + hint(strings.Join(meta, " • "))
}

func (m appModel) loadingView(title string) string {
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Fetching data from the reservation service..."))
}

func (m appModel) flightsView() string {
	var b strings.Builder
	b.WriteString(m.flightList.View())
	b.WriteString("\n")

	if m.flightsWarn != "" {
		b.WriteString(warnStyle.Render(m.flightsWarn))
		b.WriteString("\n")
	}

	switch m.flight.phase {
	case phaseClosed:
		b.WriteString(hint("enter open seat map • ctrl+t customers • ctrl+s swap seats • ctrl+r refresh • ctrl+c quit"))
	case phaseLoading:
		b.WriteString(fmt.Sprintf("%s Loading seat map for %s", m.spinner.View(), m.flight.flightNumber))
	case phaseError:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Could not load flight %s: %v", m.flight.flightNumber, m.flight.err)))
		b.WriteString("\n")
		b.WriteString(hint("tab then r to retry • esc back"))
	case phaseLoaded:
		b.WriteString(titleStyle.Render("Seat Map for " + m.flight.flightNumber))
		b.WriteString("\n")
		b.WriteString(renderSeatMap(m.flight.snapshot, m.flight.selection, m.flight.cursor, m.focusSeats))
		b.WriteString("\n")
		if m.flight.status != "" {
			b.WriteString(statusStyle.Render(m.flight.status))
			b.WriteString("\n")
		}
		if m.focusSeats {
			b.WriteString(hint("arrows move • enter select • b book • c cancel booking • r reload • tab back to list"))
		} else {
			b.WriteString(hint("tab focus seats • enter toggle flight • ctrl+t customers • ctrl+s swap seats"))
		}
	}
	return b.String()
}

func (m appModel) pickCustomerView() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Booking seat %s on flight %s\n\n", m.flight.selection, m.flight.flightNumber))
	if m.pickerLoading {
		b.WriteString(fmt.Sprintf("%s Loading customers", m.spinner.View()))
		return b.String()
	}
	if m.customersWarn != "" {
		b.WriteString(warnStyle.Render(m.customersWarn))
		b.WriteString("\n\n")
	}
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	b.WriteString(hint("enter book • esc back"))
	return b.String()
}

func (m appModel) customersView() string {
	var b strings.Builder
	b.WriteString(m.customerList.View())
	b.WriteString("\n")
	if m.customersStatus != "" {
		b.WriteString(statusStyle.Render(m.customersStatus))
		b.WriteString("\n")
	}
	b.WriteString(hint("enter details • ctrl+n add customer • ctrl+r refresh • esc back"))
	return b.String()
}

func (m appModel) customerDetailView() string {
	var b strings.Builder
	switch m.customer.phase {
	case phaseLoading:
		b.WriteString(fmt.Sprintf("%s Loading customer %s", m.spinner.View(), m.customer.personID))
	case phaseError:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Could not load customer %s: %v", m.customer.personID, m.customer.err)))
		b.WriteString("\n")
		b.WriteString(hint("r retry • esc back"))
	case phaseLoaded:
		b.WriteString(renderCustomerDetail(m.customer.customer, m.customer.cursor))
		b.WriteString("\n")
		if m.customer.status != "" {
			b.WriteString(statusStyle.Render(m.customer.status))
			b.WriteString("\n")
		}
		b.WriteString(hint("arrows move • c cancel booking • r reload • esc back"))
	}
	return b.String()
}

func (m appModel) swapScreenView() string {
	var b strings.Builder
	switch m.swap.phase {
	case phaseLoading:
		b.WriteString(fmt.Sprintf("%s Loading bookings", m.spinner.View()))
		return b.String()
	case phaseError:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Could not load bookings: %v", m.swap.err)))
		b.WriteString("\n")
		b.WriteString(hint("ctrl+r retry • esc back"))
		return b.String()
	}

	first := m.swap.pickA
	if first == "" {
		first = "—"
	}
	second := m.swap.pickB
	if second == "" {
		second = "—"
	}
	b.WriteString(fmt.Sprintf("First booking: %s    Second booking: %s\n\n", first, second))
	b.WriteString(m.swapList.View())
	b.WriteString("\n")
	if m.swap.status != "" {
		b.WriteString(statusStyle.Render(m.swap.status))
		b.WriteString("\n")
	}
	if m.swap.pickA != "" && m.swap.pickB != "" {
		b.WriteString(hint("enter swap seats • esc unpick • ctrl+r refresh"))
	} else {
		b.WriteString(hint("enter pick booking • esc unpick/back • ctrl+r refresh"))
	}
	return b.String()
}

func (m appModel) confirmView() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Are you sure you want to cancel booking %s?\n\n", m.confirm.bookingID))
	b.WriteString(hint("y / enter confirm • n / esc back"))
	return b.String()
}

func (m appModel) errorView() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Something went wrong"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(m.err.Error())
		b.WriteString("\n\n")
	}
	b.WriteString(hint("esc back • ctrl+c quit"))
	return b.String()
}
