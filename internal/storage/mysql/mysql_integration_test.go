//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/shopspring/decimal"

	"github.com/beauuks/travelhub-api/internal/app"
	"github.com/beauuks/travelhub-api/internal/domain"
	mysqlrepo "github.com/beauuks/travelhub-api/internal/storage/mysql"
)

// ---------- helpers ----------

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=travelhub",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "travelhub")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func seedHotel(t *testing.T, repo *mysqlrepo.Repo, id int64, price string, rooms int) domain.Hotel {
	t.Helper()
	h := domain.Hotel{
		ID:             id,
		Name:           fmt.Sprintf("Hotel %d", id),
		City:           "Istanbul",
		Country:        "Turkey",
		StarRating:     4,
		PricePerNight:  decimal.RequireFromString(price),
		AvailableRooms: rooms,
	}
	if err := repo.UpsertHotel(context.Background(), h); err != nil {
		t.Fatalf("UpsertHotel: %v", err)
	}
	return h
}

func pendingBooking(hotelID int64, email, ref string, guests int, total string) *domain.Booking {
	return &domain.Booking{
		Reference:     ref,
		CustomerEmail: email,
		CustomerName:  "Ana Silva",
		HotelID:       hotelID,
		CheckIn:       domain.NewDate(2030, time.December, 15),
		CheckOut:      domain.NewDate(2030, time.December, 18),
		Guests:        guests,
		TotalAmount:   decimal.RequireFromString(total),
		Status:        domain.StatusPending,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}
}

// ---------- the tests ----------

func TestRepo_MySQL_HotelsAndBookings(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	seedHotel(t, repo, 10001, "150.00", 10)
	seedHotel(t, repo, 10002, "74.25", 0)

	t.Run("get hotel round trip", func(t *testing.T) {
		h, err := repo.GetHotel(ctx, 10001)
		if err != nil {
			t.Fatalf("GetHotel: %v", err)
		}
		if h.Name != "Hotel 10001" || !h.PricePerNight.Equal(decimal.RequireFromString("150.00")) {
			t.Fatalf("unexpected hotel: %+v", h)
		}
	})

	t.Run("get hotel missing", func(t *testing.T) {
		if _, err := repo.GetHotel(ctx, 99999); !errors.Is(err, domain.ErrHotelNotFound) {
			t.Fatalf("expected ErrHotelNotFound, got %v", err)
		}
	})

	t.Run("city search is case-insensitive", func(t *testing.T) {
		hs, err := repo.ListByCity(ctx, "ISTANBUL")
		if err != nil {
			t.Fatalf("ListByCity: %v", err)
		}
		if len(hs) != 2 {
			t.Fatalf("want 2 hotels, got %d", len(hs))
		}
		none, err := repo.ListByCity(ctx, "Oslo")
		if err != nil {
			t.Fatalf("ListByCity: %v", err)
		}
		if len(none) != 0 {
			t.Fatalf("want none, got %d", len(none))
		}
	})

	t.Run("available listing excludes sold out", func(t *testing.T) {
		hs, err := repo.ListAvailable(ctx)
		if err != nil {
			t.Fatalf("ListAvailable: %v", err)
		}
		if len(hs) != 1 || hs[0].ID != 10001 {
			t.Fatalf("unexpected listing: %+v", hs)
		}
	})

	t.Run("create booking decrements rooms", func(t *testing.T) {
		b := pendingBooking(10001, "ana@example.com", app.NewReference(), 2, "450.00")
		if err := repo.CreateBooking(ctx, b); err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		if b.ID == 0 {
			t.Fatal("expected assigned id")
		}
		h, _ := repo.GetHotel(ctx, 10001)
		if h.AvailableRooms != 8 {
			t.Fatalf("rooms: got %d want 8", h.AvailableRooms)
		}
	})

	t.Run("create booking insufficient availability", func(t *testing.T) {
		b := pendingBooking(10002, "ana@example.com", app.NewReference(), 2, "148.50")
		if err := repo.CreateBooking(ctx, b); !errors.Is(err, domain.ErrNoAvailability) {
			t.Fatalf("expected ErrNoAvailability, got %v", err)
		}
		h, _ := repo.GetHotel(ctx, 10002)
		if h.AvailableRooms != 0 {
			t.Fatalf("rooms must not change, got %d", h.AvailableRooms)
		}
	})

	t.Run("create booking unknown hotel", func(t *testing.T) {
		b := pendingBooking(99999, "ana@example.com", app.NewReference(), 1, "150.00")
		if err := repo.CreateBooking(ctx, b); !errors.Is(err, domain.ErrHotelNotFound) {
			t.Fatalf("expected ErrHotelNotFound, got %v", err)
		}
	})

	t.Run("duplicate reference is reported", func(t *testing.T) {
		ref := app.NewReference()
		first := pendingBooking(10001, "bob@example.com", ref, 1, "450.00")
		if err := repo.CreateBooking(ctx, first); err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		dup := pendingBooking(10001, "bob@example.com", ref, 1, "450.00")
		if err := repo.CreateBooking(ctx, dup); !errors.Is(err, domain.ErrDuplicateReference) {
			t.Fatalf("expected ErrDuplicateReference, got %v", err)
		}
		// failed insert must not leak the decrement
		h, _ := repo.GetHotel(ctx, 10001)
		if h.AvailableRooms != 7 {
			t.Fatalf("rooms: got %d want 7", h.AvailableRooms)
		}
	})

	t.Run("list by email newest first", func(t *testing.T) {
		older := pendingBooking(10001, "carol@example.com", app.NewReference(), 1, "450.00")
		older.CreatedAt = time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
		if err := repo.CreateBooking(ctx, older); err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		newer := pendingBooking(10001, "carol@example.com", app.NewReference(), 1, "450.00")
		if err := repo.CreateBooking(ctx, newer); err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}

		bs, err := repo.ListByEmail(ctx, "carol@example.com")
		if err != nil {
			t.Fatalf("ListByEmail: %v", err)
		}
		if len(bs) != 2 {
			t.Fatalf("want 2 bookings, got %d", len(bs))
		}
		if bs[0].ID != newer.ID {
			t.Fatalf("expected newest first, got ids %d then %d", bs[0].ID, bs[1].ID)
		}
		if bs[0].Hotel == nil || bs[0].Hotel.Name != "Hotel 10001" {
			t.Fatalf("expected hotel joined in: %+v", bs[0].Hotel)
		}
		if bs[0].Status != domain.StatusPending {
			t.Fatalf("status %s", bs[0].Status)
		}

		// case-sensitive match
		none, err := repo.ListByEmail(ctx, "CAROL@example.com")
		if err != nil {
			t.Fatalf("ListByEmail: %v", err)
		}
		if len(none) != 0 {
			t.Fatalf("email match must be case-sensitive, got %d", len(none))
		}
	})
}
