package domain

import "errors"

var (
	// ErrNotFound is the generic "no value" signal for read queries.
	ErrNotFound = errors.New("not found")

	// ErrHotelNotFound means the referenced hotel id does not exist.
	ErrHotelNotFound = errors.New("hotel not found")

	// ErrNoAvailability means the hotel cannot cover the requested guests.
	ErrNoAvailability = errors.New("not enough rooms available")

	// ErrDuplicateReference means the generated booking reference collided
	// with an existing one; callers re-draw and retry.
	ErrDuplicateReference = errors.New("booking reference already exists")
)
