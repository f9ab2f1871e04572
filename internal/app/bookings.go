package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/beauuks/travelhub-api/internal/domain"
)

// refAttempts bounds the reference retry loop. The 8-char space makes a
// collision astronomically unlikely; hitting the bound five times in a row
// means something else is wrong.
const refAttempts = 5

// BookingService runs the booking workflow: resolve hotel, check
// availability, price the stay, draw a unique reference, persist.
type BookingService struct {
	bookings domain.BookingRepository
	hotels   *HotelService
}

func NewBookingService(b domain.BookingRepository, h *HotelService) *BookingService {
	return &BookingService{bookings: b, hotels: h}
}

// CreateBooking executes the workflow for a validated request.
//
// The availability check here runs on the hotel as read (possibly cached);
// the repository re-checks under a row lock inside the same transaction as
// the insert, so concurrent requests cannot over-book.
func (s *BookingService) CreateBooking(ctx context.Context, req BookingRequest) (*domain.Booking, error) {
	hotel, err := s.hotels.FindByID(ctx, req.HotelID)
	if err != nil {
		return nil, err
	}
	if !hotel.HasRoomFor(req.NumberOfGuests) {
		return nil, domain.ErrNoAvailability
	}

	nights := req.CheckInDate.DaysUntil(req.CheckOutDate)
	total := hotel.PricePerNight.Mul(decimal.NewFromInt(int64(nights)))

	b := &domain.Booking{
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		HotelID:       hotel.ID,
		CheckIn:       req.CheckInDate,
		CheckOut:      req.CheckOutDate,
		Guests:        req.NumberOfGuests,
		TotalAmount:   total,
		Status:        domain.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	for attempt := 0; attempt < refAttempts; attempt++ {
		b.Reference = NewReference()
		err = s.bookings.CreateBooking(ctx, b)
		if errors.Is(err, domain.ErrDuplicateReference) {
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	s.hotels.InvalidateHotel(ctx, hotel.ID)

	hotel.AvailableRooms -= req.NumberOfGuests
	b.Hotel = &hotel
	return b, nil
}

// FindBookingsByEmail returns a customer's bookings, newest first.
func (s *BookingService) FindBookingsByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	bs, err := s.bookings.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bs, nil
}

// NewReference draws a booking reference: TH- plus the first 8 hex chars of
// a random UUID, upper-cased.
func NewReference() string {
	return "TH-" + strings.ToUpper(uuid.NewString()[:8])
}
