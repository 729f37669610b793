package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/logger"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	// FavoritesKey is the KV key holding the favorites array.
	FavoritesKey = "favorites"
	// MaxFavorites caps the list length.
	MaxFavorites = 5
)

// Favorite is a saved city with the snapshot taken when it was saved.
// Weather is nil for entries stored as bare city names.
type Favorite struct {
	CityName string                     `json:"cityName"`
	Coords   weather.Coordinates        `json:"coords"`
	Weather  *weather.NormalizedWeather `json:"weather,omitempty"`
	SavedAt  time.Time                  `json:"savedAt"`
}

// Favorites is a most-recently-saved-first list persisted under one key.
type Favorites struct {
	mu  sync.Mutex
	kv  KV
	log logger.Logger
	now func() time.Time
}

func NewFavorites(kv KV, log logger.Logger) *Favorites {
	if log == nil {
		log = logger.Discard()
	}
	return &Favorites{
		kv:  kv,
		log: logger.Component(log, "favorites"),
		now: time.Now,
	}
}

// List returns the saved favorites, newest first. Absent or unreadable data
// is an empty list.
func (f *Favorites) List(ctx context.Context) ([]Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load(ctx)
}

// Get returns the favorite named city, compared case-insensitively.
func (f *Favorites) Get(ctx context.Context, city string) (Favorite, bool, error) {
	favs, err := f.List(ctx)
	if err != nil {
		return Favorite{}, false, err
	}
	for _, fav := range favs {
		if sameCity(fav.CityName, city) {
			return fav, true, nil
		}
	}
	return Favorite{}, false, nil
}

// Save puts nw's city at the front of the list, replacing any entry with the
// same name, and keeps at most MaxFavorites.
func (f *Favorites) Save(ctx context.Context, nw *weather.NormalizedWeather) error {
	if nw == nil || strings.TrimSpace(nw.Location.City) == "" {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	favs, err := f.load(ctx)
	if err != nil {
		return err
	}

	updated := make([]Favorite, 0, MaxFavorites)
	updated = append(updated, Favorite{
		CityName: nw.Location.City,
		Coords:   nw.Coordinates,
		Weather:  nw,
		SavedAt:  f.now().UTC(),
	})
	for _, fav := range favs {
		if len(updated) == MaxFavorites {
			break
		}
		if !sameCity(fav.CityName, nw.Location.City) {
			updated = append(updated, fav)
		}
	}
	return f.store(ctx, updated)
}

// Remove deletes the favorite named city. It reports whether one was removed.
func (f *Favorites) Remove(ctx context.Context, city string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	favs, err := f.load(ctx)
	if err != nil {
		return false, err
	}

	kept := favs[:0]
	for _, fav := range favs {
		if !sameCity(fav.CityName, city) {
			kept = append(kept, fav)
		}
	}
	if len(kept) == len(favs) {
		return false, nil
	}
	return true, f.store(ctx, kept)
}

func (f *Favorites) load(ctx context.Context) ([]Favorite, error) {
	raw, err := f.kv.Get(ctx, FavoritesKey)
	if errors.Is(err, ErrNotFound) {
		return []Favorite{}, nil
	}
	if errors.Is(err, ErrCorrupt) {
		f.log.Warnf("discarding corrupt favorites store: %v", err)
		return []Favorite{}, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		f.log.Warnf("discarding malformed favorites: %v", err)
		return []Favorite{}, nil
	}

	favs := make([]Favorite, 0, len(entries))
	for _, e := range entries {
		fav, ok := decodeFavorite(e)
		if !ok {
			f.log.WithField("entry", string(e)).Warn("skipping malformed favorite")
			continue
		}
		favs = append(favs, fav)
		if len(favs) == MaxFavorites {
			break
		}
	}
	return favs, nil
}

// decodeFavorite accepts both the full object and a bare city name.
func decodeFavorite(raw json.RawMessage) (Favorite, bool) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		name = strings.TrimSpace(name)
		return Favorite{CityName: name}, name != ""
	}

	var fav Favorite
	if err := json.Unmarshal(raw, &fav); err != nil {
		return Favorite{}, false
	}
	fav.CityName = strings.TrimSpace(fav.CityName)
	return fav, fav.CityName != ""
}

func (f *Favorites) store(ctx context.Context, favs []Favorite) error {
	raw, err := json.Marshal(favs)
	if err != nil {
		return err
	}
	return f.kv.Set(ctx, FavoritesKey, raw)
}

func sameCity(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
