package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"airline-desk-cli/model"
)

const (
	defaultBaseURL     = "http://localhost:8080/api"
	baseURLEnv         = "AIRDESK_API_URL"
	defaultMaxAttempts = 3
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond
)

// Client wraps HTTP access to the reservation authority. It holds no cache:
// every call goes to the wire and callers own snapshot invalidation.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration
}

// APIError is returned when the authority responds with a non-2xx status.
// Reason carries the {"error": ...} body when the authority sent one.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Reason     string
}

func (e *APIError) Error() string {
	if e == nil {
		return "reservation api error"
	}
	if e.Reason != "" {
		return fmt.Sprintf("reservation api error: %s: %s", e.Status, e.Reason)
	}
	return fmt.Sprintf("reservation api error: %s", e.Status)
}

// Message returns the user-facing failure text: the authority's own reason
// verbatim, or a synthesized one from the status line.
func (e *APIError) Message() string {
	if e == nil {
		return "reservation api error"
	}
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("request failed with status %s", e.Status)
}

// Reason extracts the user-facing failure text from any error returned by
// this package.
func Reason(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

func statusIs(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// IsNotFound reports whether the error represents a 404 from the authority.
func IsNotFound(err error) bool {
	return statusIs(err, http.StatusNotFound)
}

// IsSeatUnavailable reports whether a booking attempt lost the race for a
// seat that another caller booked first (409 from the authority).
func IsSeatUnavailable(err error) bool {
	return statusIs(err, http.StatusConflict)
}

// IsInsufficientFunds reports whether the customer balance could not cover
// the seat price (402 from the authority).
func IsInsufficientFunds(err error) bool {
	return statusIs(err, http.StatusPaymentRequired)
}

// IsInvalidSwap reports whether a seat swap was rejected as malformed:
// equal booking ids or a booking that is not confirmed (400 from the
// authority).
func IsInvalidSwap(err error) bool {
	return statusIs(err, http.StatusBadRequest)
}

// NewClient creates a reservation authority client. If httpClient is nil, a
// default client is used. The base URL comes from AIRDESK_API_URL when set.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(os.Getenv(baseURLEnv)), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
	}
}

// ListFlights returns flight summaries: capacity and booked counts, no
// seat inventory.
func (c *Client) ListFlights(ctx context.Context) ([]model.FlightSummary, error) {
	endpoint := fmt.Sprintf("%s/airplanes", c.baseURL)
	var flights []model.FlightSummary
	if err := c.getJSON(ctx, endpoint, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// GetFlight returns the full seat inventory snapshot for one flight.
func (c *Client) GetFlight(ctx context.Context, flightNumber string) (model.Flight, error) {
	if strings.TrimSpace(flightNumber) == "" {
		return model.Flight{}, errors.New("flight number is required")
	}
	endpoint := fmt.Sprintf("%s/airplanes/%s", c.baseURL, url.PathEscape(flightNumber))
	var flight model.Flight
	if err := c.getJSON(ctx, endpoint, &flight); err != nil {
		return model.Flight{}, err
	}
	return flight, nil
}

// ListCustomers returns customer summaries without their booking lists.
func (c *Client) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	endpoint := fmt.Sprintf("%s/customers", c.baseURL)
	var customers []model.Customer
	if err := c.getJSON(ctx, endpoint, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// GetCustomer returns one customer including their bookings.
func (c *Client) GetCustomer(ctx context.Context, personID string) (model.Customer, error) {
	if strings.TrimSpace(personID) == "" {
		return model.Customer{}, errors.New("customer id is required")
	}
	endpoint := fmt.Sprintf("%s/customers/%s", c.baseURL, url.PathEscape(personID))
	var customer model.Customer
	if err := c.getJSON(ctx, endpoint, &customer); err != nil {
		return model.Customer{}, err
	}
	return customer, nil
}

// AddCustomer registers a new customer with the authority.
func (c *Client) AddCustomer(ctx context.Context, customer model.NewCustomer) (model.Customer, error) {
	endpoint := fmt.Sprintf("%s/customers", c.baseURL)
	var created model.Customer
	if err := c.doJSON(ctx, http.MethodPost, endpoint, customer, &created); err != nil {
		return model.Customer{}, err
	}
	return created, nil
}

// ListBookings returns every booking the authority knows about, confirmed
// and cancelled alike.
func (c *Client) ListBookings(ctx context.Context) ([]model.Booking, error) {
	endpoint := fmt.Sprintf("%s/bookings", c.baseURL)
	var bookings []model.Booking
	if err := c.getJSON(ctx, endpoint, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// BookingRequest identifies the seat a customer wants.
type BookingRequest struct {
	CustomerID   string `json:"customerId"`
	FlightNumber string `json:"flightNumber"`
	SeatID       string `json:"seatId"`
}

// CreateBooking books a seat for a customer. The caller's cached snapshots
// are not touched; the caller must re-fetch on success.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (model.Booking, error) {
	if req.CustomerID == "" || req.FlightNumber == "" || req.SeatID == "" {
		return model.Booking{}, errors.New("customer id, flight number and seat id are required")
	}
	endpoint := fmt.Sprintf("%s/bookings", c.baseURL)
	var booking model.Booking
	if err := c.doJSON(ctx, http.MethodPost, endpoint, req, &booking); err != nil {
		return model.Booking{}, err
	}
	return booking, nil
}

// CancelBooking cancels a booking and returns the authority's message.
func (c *Client) CancelBooking(ctx context.Context, bookingID string) (string, error) {
	if strings.TrimSpace(bookingID) == "" {
		return "", errors.New("booking id is required")
	}
	endpoint := fmt.Sprintf("%s/bookings/%s", c.baseURL, url.PathEscape(bookingID))
	var result struct {
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodDelete, endpoint, nil, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

// SwapSeats exchanges the seats of two confirmed bookings and returns the
// authority's message.
func (c *Client) SwapSeats(ctx context.Context, bookingID1 string, bookingID2 string) (string, error) {
	if bookingID1 == "" || bookingID2 == "" {
		return "", errors.New("both booking ids are required")
	}
	endpoint := fmt.Sprintf("%s/bookings/swap", c.baseURL)
	payload := struct {
		BookingID1 string `json:"bookingId1"`
		BookingID2 string `json:"bookingId2"`
	}{bookingID1, bookingID2}
	var result struct {
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, endpoint, payload, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

// getJSON performs a GET with retry on transient failures. Only reads are
// retried; a replayed mutation could double-book a seat.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	maxAttempts := c.maxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := c.send(ctx, http.MethodGet, endpoint, nil, out)
		if err == nil {
			return nil
		}
		if attempt == maxAttempts || !c.shouldRetry(err) {
			return err
		}
		if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
			return waitErr
		}
	}
	return errors.New("request failed after retries")
}

// doJSON performs a mutating call. No retry: the authority owns seat
// uniqueness and a duplicate request would surface as a spurious conflict.
func (c *Client) doJSON(ctx context.Context, method string, endpoint string, body any, out any) error {
	return c.send(ctx, method, endpoint, body, out)
}

func (c *Client) send(ctx context.Context, method string, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
		return &APIError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Endpoint:   endpoint,
			Reason:     reasonFromBody(snippet),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}

func reasonFromBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return trimmed
}

func (c *Client) shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}

func (c *Client) waitRetry(ctx context.Context, attempt int) error {
	delay := c.retryDelay(attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := c.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	cap := c.retryCap
	if cap <= 0 {
		cap = defaultRetryCap
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= cap/2 {
			return cap
		}
		delay *= 2
	}
	if delay > cap {
		return cap
	}
	return delay
}
