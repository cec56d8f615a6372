package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"airline-desk-cli/model"
	"airline-desk-cli/service"
)

var customersCmd = &cobra.Command{
	Use:   "customers [person-id]",
	Short: "List customers or show one customer with their bookings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		client := service.NewClient(nil)
		if len(args) == 1 {
			return showCustomer(ctx, client, args[0])
		}
		return listCustomers(ctx, client)
	},
}

var customersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new customer interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		request, err := promptNewCustomer()
		if err != nil {
			return err
		}

		client := service.NewClient(nil)
		customer, err := client.AddCustomer(ctx, request)
		if err != nil {
			return fmt.Errorf("add customer: %s", service.Reason(err))
		}
		fmt.Printf("Customer added: %s (ID: %s)\n", customer.Name, customer.PersonID)
		return nil
	},
}

func init() {
	customersCmd.AddCommand(customersAddCmd)
}

func promptNewCustomer() (model.NewCustomer, error) {
	namePrompt := promptui.Prompt{
		Label: "Name",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("name is required")
			}
			return nil
		},
	}
	name, err := namePrompt.Run()
	if err != nil {
		return model.NewCustomer{}, err
	}

	agePrompt := promptui.Prompt{
		Label: "Age",
		Validate: func(input string) error {
			value, err := strconv.Atoi(strings.TrimSpace(input))
			if err != nil || value < 0 {
				return fmt.Errorf("age must be a non-negative number")
			}
			return nil
		},
	}
	ageRaw, err := agePrompt.Run()
	if err != nil {
		return model.NewCustomer{}, err
	}
	age, _ := strconv.Atoi(strings.TrimSpace(ageRaw))

	moneyPrompt := promptui.Prompt{
		Label: "Money",
		Validate: func(input string) error {
			value, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
			if err != nil || value < 0 {
				return fmt.Errorf("money must be a non-negative amount")
			}
			return nil
		},
	}
	moneyRaw, err := moneyPrompt.Run()
	if err != nil {
		return model.NewCustomer{}, err
	}
	money, _ := strconv.ParseFloat(strings.TrimSpace(moneyRaw), 64)

	return model.NewCustomer{Name: strings.TrimSpace(name), Age: age, Money: money}, nil
}

func listCustomers(ctx context.Context, client *service.Client) error {
	customers, err := client.ListCustomers(ctx)
	if err != nil {
		return fmt.Errorf("list customers: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Age", "Money"})
	for _, customer := range customers {
		t.AppendRow(table.Row{
			customer.PersonID,
			customer.Name,
			customer.Age,
			fmt.Sprintf("$%.2f", customer.Money),
		})
	}
	t.Render()
	return nil
}

func showCustomer(ctx context.Context, client *service.Client, personID string) error {
	customer, err := client.GetCustomer(ctx, personID)
	if err != nil {
		if service.IsNotFound(err) {
			return fmt.Errorf("customer %s not found", personID)
		}
		return fmt.Errorf("get customer %s: %w", personID, err)
	}

	fmt.Printf("Customer: %s (ID: %s)\nAge: %d • Money: $%.2f\n\n", customer.Name, customer.PersonID, customer.Age, customer.Money)

	if len(customer.Bookings) == 0 {
		fmt.Println("No bookings found for this customer.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Booking", "Flight", "Seat", "Date", "Status"})
	for _, booking := range customer.Bookings {
		t.AppendRow(table.Row{
			booking.BookingID,
			booking.FlightNumber,
			booking.SeatID,
			booking.BookingDate,
			booking.Status,
		})
	}
	t.Render()
	return nil
}
