package mysql

const upsertHotelSQL = `
INSERT INTO hotels
  (id, name, city, country, star_rating, price_per_night, available_rooms)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name            = VALUES(name),
  city            = VALUES(city),
  country         = VALUES(country),
  star_rating     = VALUES(star_rating),
  price_per_night = VALUES(price_per_night),
  available_rooms = VALUES(available_rooms),
  updated_at      = CURRENT_TIMESTAMP
`

const hotelColumns = `id, name, city, country, star_rating, price_per_night, available_rooms`

const getHotelSQL = `
SELECT ` + hotelColumns + `
FROM hotels
WHERE id = ?
`

// Case-insensitive exact match; hotels.city uses a *_ci collation so the
// comparison stays index-friendly.
const listByCitySQL = `
SELECT ` + hotelColumns + `
FROM hotels
WHERE LOWER(city) = LOWER(?)
ORDER BY id
`

const listAvailableSQL = `
SELECT ` + hotelColumns + `
FROM hotels
WHERE available_rooms > 0
ORDER BY id
`

// Row lock serializes concurrent bookings against the same hotel.
const lockHotelRoomsSQL = `
SELECT available_rooms
FROM hotels
WHERE id = ?
FOR UPDATE
`

const decrementRoomsSQL = `
UPDATE hotels
SET available_rooms = available_rooms - ?
WHERE id = ?
`

const insertBookingSQL = `
INSERT INTO bookings
  (booking_reference, customer_email, customer_name, hotel_id,
   check_in_date, check_out_date, number_of_guests, total_amount, status, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const listBookingsByEmailSQL = `
SELECT
  b.id,
  b.booking_reference,
  b.customer_email,
  b.customer_name,
  b.hotel_id,
  b.check_in_date,
  b.check_out_date,
  b.number_of_guests,
  b.total_amount,
  b.status,
  b.created_at,
  h.id,
  h.name,
  h.city,
  h.country,
  h.star_rating,
  h.price_per_night,
  h.available_rooms
FROM bookings b
JOIN hotels h ON h.id = b.hotel_id
-- customer_email carries a _bin collation, so the match is case-sensitive.
WHERE b.customer_email = ?
ORDER BY b.created_at DESC, b.id DESC
`
