package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is a closed set of lifecycle states. Only StatusPending is
// reachable today; CONFIRMED and CANCELLED exist so future transitions can
// be added without reshaping the entity.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// Booking is an immutable record of a stay reserved against one hotel.
// Reference is the human-facing identifier (TH-XXXXXXXX), distinct from ID.
type Booking struct {
	ID            int64           `json:"id"`
	Reference     string          `json:"booking_reference"`
	CustomerEmail string          `json:"customer_email"`
	CustomerName  string          `json:"customer_name"`
	HotelID       int64           `json:"hotel_id"`
	Hotel         *Hotel          `json:"hotel,omitempty"`
	CheckIn       Date            `json:"check_in_date"`
	CheckOut      Date            `json:"check_out_date"`
	Guests        int             `json:"number_of_guests"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        BookingStatus   `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Nights returns the whole-day span of the stay, the pricing multiplier.
func (b Booking) Nights() int {
	return b.CheckIn.DaysUntil(b.CheckOut)
}
