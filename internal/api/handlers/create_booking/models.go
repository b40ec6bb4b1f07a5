package create_booking

import (
	"time"

	"github.com/m04kA/CourtBookingService/internal/domain"
	createBooking "github.com/m04kA/CourtBookingService/internal/usecase/create_booking"
	"github.com/m04kA/CourtBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VenueID       int64    `json:"venueId"`
	BookingDate   string   `json:"bookingDate"` // "2026-03-15"
	StartTime     string   `json:"startTime"`   // "10:00"
	EndTime       string   `json:"endTime"`     // "11:00"
	CustomerName  string   `json:"customerName"`
	CustomerPhone *string  `json:"customerPhone,omitempty"`
	CustomerEmail *string  `json:"customerEmail,omitempty"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
	Total         *float64 `json:"total,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64    `json:"id"`
	VenueID       int64    `json:"venueId"`
	CustomerID    int64    `json:"customerId"`
	BookingDate   string   `json:"bookingDate"`
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	Status        string   `json:"status"`
	CustomerName  string   `json:"customerName"`
	CustomerPhone *string  `json:"customerPhone,omitempty"`
	CustomerEmail *string  `json:"customerEmail,omitempty"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
	Total         *float64 `json:"total,omitempty"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим времена
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:    customerID,
		VenueID:       r.VenueID,
		Date:          bookingDate,
		StartTime:     startTime,
		EndTime:       endTime,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		PaymentMethod: r.PaymentMethod,
		Total:         r.Total,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		VenueID:       resp.VenueID,
		CustomerID:    resp.CustomerID,
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		Status:        resp.Status,
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		CustomerEmail: resp.CustomerEmail,
		PaymentMethod: resp.PaymentMethod,
		Total:         resp.Total,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
