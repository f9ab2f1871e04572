package app

import (
	"context"
	"fmt"
	"time"

	"github.com/beauuks/travelhub-api/internal/domain"
)

// HotelService answers read-only catalog queries. Single-hotel reads and the
// availability listing go through a read-through cache; city search always
// hits the store (there is no sane invalidation key per city).
type HotelService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewHotelService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *HotelService {
	return &HotelService{repo: r, cache: c, cacheTTL: ttl}
}

func hotelKey(id int64) string { return fmt.Sprintf("hotel:%d", id) }

const availableKey = "hotels:available"

func (s *HotelService) FindByID(ctx context.Context, id int64) (domain.Hotel, error) {
	key := hotelKey(id)
	var h domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}

func (s *HotelService) FindByCity(ctx context.Context, city string) ([]domain.Hotel, error) {
	return s.repo.ListByCity(ctx, city)
}

func (s *HotelService) FindAvailable(ctx context.Context) ([]domain.Hotel, error) {
	var hs []domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, availableKey, &hs); ok {
			return hs, nil
		}
	}
	hs, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, availableKey, hs, int(s.cacheTTL.Seconds()))
	}
	return hs, nil
}

// InvalidateHotel drops the cached entries a booking makes stale.
func (s *HotelService) InvalidateHotel(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, hotelKey(id))
	_ = s.cache.Del(ctx, availableKey)
}
