package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/beauuks/travelhub-api/internal/adapters/observability"
	"github.com/beauuks/travelhub-api/internal/domain"
	"github.com/beauuks/travelhub-api/internal/shared"
	mysqlrepo "github.com/beauuks/travelhub-api/internal/storage/mysql"
)

// Seeds the hotel catalog from a JSON file. Runs outside the request path;
// the API never writes to the hotels table except for availability.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("file", cfg.SeedFile).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	raw, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("read seed file failed")
	}
	var hotels []domain.Hotel
	if err := json.Unmarshal(raw, &hotels); err != nil {
		log.Fatal().Err(err).Msg("parse seed file failed")
	}

	repo := mysqlrepo.New(db)
	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, h := range hotels {
		h := h

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(hotel domain.Hotel) {
			defer wg.Done()
			defer sem.Release(1)

			if err := repo.UpsertHotel(ctx, hotel); err != nil {
				log.Warn().Int64("id", hotel.ID).Str("name", hotel.Name).Err(err).Msg("seed failed")
				return
			}
			log.Info().Int64("id", hotel.ID).Str("name", hotel.Name).Msg("seed ok")
		}(h)
	}

	wg.Wait()
	log.Info().Int("hotels", len(hotels)).Msg("seeding completed")
}
