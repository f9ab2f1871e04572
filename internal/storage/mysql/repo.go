package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/beauuks/travelhub-api/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

const dupEntryErrNo = 1062

func isDupEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == dupEntryErrNo
}

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	var id any
	if h.ID > 0 {
		id = h.ID
	}
	_, err := r.db.ExecContext(ctx, upsertHotelSQL,
		id,
		h.Name,
		h.City,
		h.Country,
		h.StarRating,
		h.PricePerNight,
		h.AvailableRooms,
	)
	return err
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, getHotelSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Hotel{}, domain.ErrHotelNotFound
	}
	return h, err
}

func (r *Repo) ListByCity(ctx context.Context, city string) ([]domain.Hotel, error) {
	return r.listHotels(ctx, listByCitySQL, city)
}

func (r *Repo) ListAvailable(ctx context.Context) ([]domain.Hotel, error) {
	return r.listHotels(ctx, listAvailableSQL)
}

func (r *Repo) listHotels(ctx context.Context, query string, args ...any) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanHotel(row rowScanner) (domain.Hotel, error) {
	var h domain.Hotel
	var stars sql.NullInt64
	if err := row.Scan(
		&h.ID,
		&h.Name,
		&h.City,
		&h.Country,
		&stars,
		&h.PricePerNight,
		&h.AvailableRooms,
	); err != nil {
		return domain.Hotel{}, err
	}
	if stars.Valid {
		h.StarRating = int(stars.Int64)
	}
	return h, nil
}

// CreateBooking runs the decrement + insert as one transaction. The hotel row
// is locked first so two concurrent requests cannot both pass the availability
// check on the same snapshot.
func (r *Repo) CreateBooking(ctx context.Context, b *domain.Booking) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var rooms int
	if err = tx.QueryRowContext(ctx, lockHotelRoomsSQL, b.HotelID).Scan(&rooms); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrHotelNotFound
		}
		return fmt.Errorf("lock hotel row: %w", err)
	}
	if rooms < b.Guests {
		err = domain.ErrNoAvailability
		return err
	}

	if _, err = tx.ExecContext(ctx, decrementRoomsSQL, b.Guests, b.HotelID); err != nil {
		return fmt.Errorf("decrement rooms: %w", err)
	}

	res, err := tx.ExecContext(ctx, insertBookingSQL,
		b.Reference,
		b.CustomerEmail,
		b.CustomerName,
		b.HotelID,
		b.CheckIn,
		b.CheckOut,
		b.Guests,
		b.TotalAmount,
		string(b.Status),
		b.CreatedAt,
	)
	if err != nil {
		if isDupEntry(err) {
			return domain.ErrDuplicateReference
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	b.ID = id
	return nil
}

func (r *Repo) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, listBookingsByEmailSQL, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var h domain.Hotel
		var status string
		var stars sql.NullInt64
		if err := rows.Scan(
			&b.ID,
			&b.Reference,
			&b.CustomerEmail,
			&b.CustomerName,
			&b.HotelID,
			&b.CheckIn,
			&b.CheckOut,
			&b.Guests,
			&b.TotalAmount,
			&status,
			&b.CreatedAt,
			&h.ID,
			&h.Name,
			&h.City,
			&h.Country,
			&stars,
			&h.PricePerNight,
			&h.AvailableRooms,
		); err != nil {
			return nil, err
		}
		if stars.Valid {
			h.StarRating = int(stars.Int64)
		}
		b.Status = domain.BookingStatus(status)
		b.Hotel = &h
		out = append(out, b)
	}
	return out, rows.Err()
}
