package domain

import "context"

type HotelRepository interface {
	// Write path (seeding/administration only)
	UpsertHotel(ctx context.Context, h Hotel) error

	// Read paths
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	ListByCity(ctx context.Context, city string) ([]Hotel, error)
	ListAvailable(ctx context.Context) ([]Hotel, error)
}

type BookingRepository interface {
	// CreateBooking persists b and decrements the hotel's availability as a
	// single transaction: the hotel row is locked, availability is re-checked
	// under the lock, and the insert relies on the unique constraint on the
	// booking reference (ErrDuplicateReference on collision). On success the
	// assigned id is written back to b.
	CreateBooking(ctx context.Context, b *Booking) error

	// ListByEmail returns bookings for an exact (case-sensitive) customer
	// email, newest first, with the hotel record joined in.
	ListByEmail(ctx context.Context, email string) ([]Booking, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
