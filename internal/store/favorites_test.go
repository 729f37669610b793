package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

func snapshot(city string, temp float64) *weather.NormalizedWeather {
	return &weather.NormalizedWeather{
		Location:    weather.Location{City: city, Country: "Somewhere"},
		Coordinates: weather.Coordinates{Latitude: 10, Longitude: 20},
		Timezone:    "UTC",
		Current:     weather.CurrentConditions{Temperature: &temp},
		Hourly:      []weather.HourRecord{},
		Daily:       []weather.DayRecord{},
	}
}

func names(favs []Favorite) []string {
	out := make([]string, len(favs))
	for i, f := range favs {
		out[i] = f.CityName
	}
	return out
}

func TestFavorites_MostRecentFirstAndCapped(t *testing.T) {
	ctx := context.Background()
	favs := NewFavorites(NewMemoryStore(), nil)

	for i := 1; i <= 7; i++ {
		require.NoError(t, favs.Save(ctx, snapshot(fmt.Sprintf("City%d", i), float64(i))))
	}

	list, err := favs.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"City7", "City6", "City5", "City4", "City3"}, names(list))
}

func TestFavorites_ResaveMovesToFrontAndReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	favs := NewFavorites(NewMemoryStore(), nil)

	require.NoError(t, favs.Save(ctx, snapshot("Paris", 10)))
	require.NoError(t, favs.Save(ctx, snapshot("Rome", 20)))
	require.NoError(t, favs.Save(ctx, snapshot("paris", 30)))

	list, err := favs.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"paris", "Rome"}, names(list))
	require.NotNil(t, list[0].Weather)
	assert.Equal(t, 30.0, *list[0].Weather.Current.Temperature)
}

func TestFavorites_Get(t *testing.T) {
	ctx := context.Background()
	favs := NewFavorites(NewMemoryStore(), nil)
	saved := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	favs.now = func() time.Time { return saved }

	require.NoError(t, favs.Save(ctx, snapshot("Oslo", -3)))

	fav, ok, err := favs.Get(ctx, " OSLO ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Oslo", fav.Weather.Location.City)
	assert.Equal(t, weather.Coordinates{Latitude: 10, Longitude: 20}, fav.Coords)
	assert.True(t, saved.Equal(fav.SavedAt))

	_, ok, err = favs.Get(ctx, "Bergen")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFavorites_Remove(t *testing.T) {
	ctx := context.Background()
	favs := NewFavorites(NewMemoryStore(), nil)
	require.NoError(t, favs.Save(ctx, snapshot("Paris", 1)))
	require.NoError(t, favs.Save(ctx, snapshot("Rome", 2)))

	removed, err := favs.Remove(ctx, "PARIS")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = favs.Remove(ctx, "Paris")
	require.NoError(t, err)
	assert.False(t, removed)

	list, err := favs.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rome"}, names(list))
}

func TestFavorites_TolerantRead(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		stored string
		want   []string
	}{
		{"not json", `{oops`, []string{}},
		{"not an array", `{"cityName":"Paris"}`, []string{}},
		{"bare names", `["Paris","Rome"]`, []string{"Paris", "Rome"}},
		{"mixed and junk", `["Paris", 42, {"cityName":""}, null, {"cityName":"Rome","coords":{"latitude":1,"longitude":2}}]`, []string{"Paris", "Rome"}},
		{"too many", `["a","b","c","d","e","f","g"]`, []string{"a", "b", "c", "d", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryStore()
			require.NoError(t, kv.Set(ctx, FavoritesKey, []byte(tt.stored)))

			list, err := NewFavorites(kv, nil).List(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(list))
		})
	}
}

func TestFavorites_SaveOverMalformedData(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(ctx, FavoritesKey, []byte(`garbage`)))

	favs := NewFavorites(kv, nil)
	require.NoError(t, favs.Save(ctx, snapshot("Lima", 18)))

	list, err := favs.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lima"}, names(list))
}

func TestFavorites_RecoversFromCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "favorites.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	favs := NewFavorites(NewFileStore(path), nil)

	list, err := favs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, favs.Save(ctx, snapshot("Lima", 18)))

	list, err = favs.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lima"}, names(list))

	// a fresh store over the same file sees the rewritten document
	list, err = NewFavorites(NewFileStore(path), nil).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lima"}, names(list))
}

func TestFavorites_SnapshotRoundTripsThroughFile(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/favorites.json"

	require.NoError(t, NewFavorites(NewFileStore(path), nil).Save(ctx, snapshot("Quito", 14.5)))

	fav, ok, err := NewFavorites(NewFileStore(path), nil).Get(ctx, "quito")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, fav.Weather)
	require.NotNil(t, fav.Weather.Current.Temperature)
	assert.Equal(t, 14.5, *fav.Weather.Current.Temperature)
}

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) ([]byte, error) {
	return nil, f.err
}

func (f failingKV) Set(context.Context, string, []byte) error {
	return f.err
}

func (f failingKV) Delete(context.Context, string) error {
	return f.err
}

func TestFavorites_BackendErrorsSurface(t *testing.T) {
	boom := errors.New("backend down")
	favs := NewFavorites(failingKV{err: boom}, nil)

	_, err := favs.List(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, favs.Save(context.Background(), snapshot("X", 1)), boom)
}

func TestFavorites_IgnoresNamelessSnapshot(t *testing.T) {
	kv := NewMemoryStore()
	require.NoError(t, NewFavorites(kv, nil).Save(context.Background(), snapshot("  ", 1)))

	_, err := kv.Get(context.Background(), FavoritesKey)
	assert.ErrorIs(t, err, ErrNotFound)
}
