package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"airline-desk-cli/service"
)

var flightsCmd = &cobra.Command{
	Use:   "flights [flight-number]",
	Short: "List flights or show the seat inventory of one flight",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		client := service.NewClient(nil)
		if len(args) == 1 {
			return showFlight(ctx, client, args[0])
		}
		return listFlights(ctx, client)
	},
}

func listFlights(ctx context.Context, client *service.Client) error {
	flights, err := client.ListFlights(ctx)
	if err != nil {
		return fmt.Errorf("list flights: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Flight", "Capacity", "Booked", "Available", "Full"})
	for _, flight := range flights {
		full := ""
		if flight.IsFull {
			full = "yes"
		}
		t.AppendRow(table.Row{
			flight.FlightNumber,
			flight.Capacity,
			flight.BookedSeatsCount,
			flight.Capacity - flight.BookedSeatsCount,
			full,
		})
	}
	t.Render()
	return nil
}

func showFlight(ctx context.Context, client *service.Client, flightNumber string) error {
	flight, err := client.GetFlight(ctx, flightNumber)
	if err != nil {
		if service.IsNotFound(err) {
			return fmt.Errorf("flight %s not found", flightNumber)
		}
		return fmt.Errorf("get flight %s: %w", flightNumber, err)
	}

	fmt.Printf("Flight %s • Capacity %d\n\n", flight.FlightNumber, flight.Capacity)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Seat", "Class", "Price", "Status", "Customer", "Booking"})
	for _, seat := range flight.Seats {
		status := "Available"
		if seat.IsBooked {
			status = text.FgRed.Sprint("Booked")
		}
		t.AppendRow(table.Row{
			seat.SeatID,
			seat.SeatClass,
			fmt.Sprintf("$%.2f", seat.Price),
			status,
			seat.BookedByCustomerID,
			seat.BookingID,
		})
	}
	t.Render()
	return nil
}
