package domain

import "github.com/shopspring/decimal"

// Hotel is a catalog entry with a live availability counter.
// AvailableRooms is only ever mutated by the booking workflow.
type Hotel struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	City           string          `json:"city"`
	Country        string          `json:"country"`
	StarRating     int             `json:"star_rating"`
	PricePerNight  decimal.Decimal `json:"price_per_night"`
	AvailableRooms int             `json:"available_rooms"`
}

// HasRoomFor reports whether the hotel can take a booking for n guests.
// Rooms are compared against the guest count, not a room count; that is
// the product rule as it stands today.
func (h Hotel) HasRoomFor(guests int) bool {
	return h.AvailableRooms >= guests
}
