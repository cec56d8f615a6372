package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"airline-desk-cli/service"
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List bookings or manage them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		return listBookings(ctx, service.NewClient(nil))
	},
}

var bookingsBookCmd = &cobra.Command{
	Use:   "book <customer-id> <flight-number> <seat-id>",
	Short: "Book a seat for a customer",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		client := service.NewClient(nil)
		booking, err := client.CreateBooking(ctx, service.BookingRequest{
			CustomerID:   args[0],
			FlightNumber: args[1],
			SeatID:       args[2],
		})
		if err != nil {
			return fmt.Errorf("booking failed: %s", service.Reason(err))
		}
		fmt.Printf("Booking successful! ID: %s. Seat: %s for Customer: %s\n", booking.BookingID, booking.SeatID, booking.CustomerID)
		return nil
	},
}

var bookingsCancelCmd = &cobra.Command{
	Use:   "cancel <booking-id>",
	Short: "Cancel a booking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		bookingID := args[0]
		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("Cancel booking %s", bookingID),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			if errors.Is(err, promptui.ErrAbort) {
				fmt.Println("Aborted.")
				return nil
			}
			return err
		}

		client := service.NewClient(nil)
		message, err := client.CancelBooking(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("cancel booking %s: %s", bookingID, service.Reason(err))
		}
		if message == "" {
			message = fmt.Sprintf("Booking %s cancellation processed.", bookingID)
		}
		fmt.Println(message)
		return nil
	},
}

var bookingsSwapCmd = &cobra.Command{
	Use:   "swap <booking-id-1> <booking-id-2>",
	Short: "Swap the seats of two confirmed bookings",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if args[0] == args[1] {
			return errors.New("booking IDs must be different")
		}

		client := service.NewClient(nil)
		message, err := client.SwapSeats(ctx, args[0], args[1])
		if err != nil {
			return fmt.Errorf("swap seats: %s", service.Reason(err))
		}
		if message == "" {
			message = "Seats swapped successfully."
		}
		fmt.Println(message)
		return nil
	},
}

func init() {
	bookingsCmd.AddCommand(bookingsBookCmd)
	bookingsCmd.AddCommand(bookingsCancelCmd)
	bookingsCmd.AddCommand(bookingsSwapCmd)
}

func listBookings(ctx context.Context, client *service.Client) error {
	bookings, err := client.ListBookings(ctx)
	if err != nil {
		return fmt.Errorf("list bookings: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Booking", "Customer", "Flight", "Seat", "Date", "Status"})
	for _, booking := range bookings {
		t.AppendRow(table.Row{
			booking.BookingID,
			booking.CustomerID,
			booking.FlightNumber,
			booking.SeatID,
			booking.BookingDate,
			booking.Status,
		})
	}
	t.Render()
	return nil
}
