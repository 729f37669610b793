package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/logger"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var day0 = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func record(city string, temp float64) *weather.NormalizedWeather {
	nw := &weather.NormalizedWeather{
		Location:    weather.Location{City: city, Country: "Testland"},
		Coordinates: weather.Coordinates{Latitude: 1, Longitude: 2},
		Timezone:    "UTC",
		Current:     weather.CurrentConditions{Temperature: &temp},
	}
	for d := 0; d < 2; d++ {
		date := day0.AddDate(0, 0, d)
		rise, set := date.Add(6*time.Hour), date.Add(20*time.Hour)
		nw.Daily = append(nw.Daily, weather.DayRecord{Date: date, Sunrise: &rise, Sunset: &set})
	}
	for h := 0; h < 48; h++ {
		nw.Hourly = append(nw.Hourly, weather.HourRecord{Time: day0.Add(time.Duration(h) * time.Hour)})
	}
	return nw
}

type fakeSearcher struct {
	mu      sync.Mutex
	results map[string]*weather.NormalizedWeather
	err     error
	calls   int32
	gate    chan struct{}
}

func (f *fakeSearcher) Search(ctx context.Context, city string) (*weather.NormalizedWeather, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	nw, ok := f.results[city]
	if !ok {
		return nil, &weather.NotFoundError{Query: city}
	}
	return nw, nil
}

func newDashboard(s Searcher, favs FavoriteStore, now time.Time) *Dashboard {
	return New(s, favs, logger.Discard()).WithClock(func() time.Time { return now })
}

func TestSearch_InstallsRecordAndLiveView(t *testing.T) {
	paris := record("Paris", 18)
	favs := store.NewFavorites(store.NewMemoryStore(), nil)
	now := day0.Add(13 * time.Hour)
	d := newDashboard(&fakeSearcher{results: map[string]*weather.NormalizedWeather{"Paris": paris}}, favs, now)

	assert.Nil(t, d.Current())

	st, err := d.Search(context.Background(), "  Paris ")
	require.NoError(t, err)
	assert.Same(t, st, d.Current())
	assert.Same(t, paris, st.Weather)
	assert.False(t, st.FromFavorite)
	assert.Equal(t, Status{}, d.Status())

	require.NotNil(t, st.Live.Sun)
	assert.InDelta(t, 0.5, st.Live.Sun.Progress, 1e-9)
	assert.Len(t, st.Live.Hourly.Records, 24)
	assert.Equal(t, 13, st.Live.Hourly.NowIndex)
	assert.Equal(t, 13, st.Live.Hourly.ClosestIndex)

	list, err := favs.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Paris", list[0].CityName)
}

func TestSearch_FailureKeepsPreviousRecord(t *testing.T) {
	paris := record("Paris", 18)
	s := &fakeSearcher{results: map[string]*weather.NormalizedWeather{"Paris": paris}}
	d := newDashboard(s, nil, day0.Add(10*time.Hour))

	before, err := d.Search(context.Background(), "Paris")
	require.NoError(t, err)

	_, err = d.Search(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.Equal(t, Status{Error: MsgCityNotFound}, d.Status())
	assert.Same(t, before, d.Current())

	s.err = &weather.NetworkError{Op: "forecast", Err: errors.New("reset")}
	_, err = d.Search(context.Background(), "Paris")
	require.Error(t, err)
	assert.Equal(t, Status{Error: MsgFetchFailed}, d.Status())
	assert.Same(t, before, d.Current())

	s.err = nil
	_, err = d.Search(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Empty(t, d.Status().Error, "a successful search clears the message")
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, MsgCityNotFound, UserMessage(&weather.NotFoundError{Query: "x"}))
	assert.Equal(t, MsgFetchFailed, UserMessage(&weather.ProviderError{StatusCode: 500}))
	assert.Equal(t, MsgFetchFailed, UserMessage(context.DeadlineExceeded))
}

func TestSearch_LoadingWhileInFlight(t *testing.T) {
	s := &fakeSearcher{
		results: map[string]*weather.NormalizedWeather{"Paris": record("Paris", 1)},
		gate:    make(chan struct{}),
	}
	d := newDashboard(s, nil, day0)

	done := make(chan error)
	go func() {
		_, err := d.Search(context.Background(), "Paris")
		done <- err
	}()

	require.Eventually(t, func() bool { return d.Status().Loading }, time.Second, time.Millisecond)
	close(s.gate)
	require.NoError(t, <-done)
	assert.False(t, d.Status().Loading)
}

func TestSelect(t *testing.T) {
	d := newDashboard(&fakeSearcher{results: map[string]*weather.NormalizedWeather{"Paris": record("Paris", 1)}}, nil, day0.Add(9*time.Hour+30*time.Minute))

	_, err := d.Select(nil)
	assert.ErrorIs(t, err, ErrNoWeather)

	_, err = d.Search(context.Background(), "Paris")
	require.NoError(t, err)

	tomorrow := day0.AddDate(0, 0, 1)
	st, err := d.Select(&tomorrow)
	require.NoError(t, err)
	require.Len(t, st.Live.Hourly.Records, 24)
	assert.Equal(t, 2, st.Live.Hourly.Records[0].Time.Day())
	assert.Equal(t, weather.NoIndex, st.Live.Hourly.NowIndex)
	assert.Equal(t, 0, st.Live.Hourly.ClosestIndex)
	assert.InDelta(t, 0.25, st.Live.Sun.Progress, 1e-9, "sun arc always tracks today")

	st, err = d.Select(nil)
	require.NoError(t, err)
	assert.Nil(t, st.SelectedDay)
	assert.Equal(t, 9, st.Live.Hourly.NowIndex)
}

func TestRefresh(t *testing.T) {
	d := newDashboard(&fakeSearcher{results: map[string]*weather.NormalizedWeather{"Paris": record("Paris", 1)}}, nil, day0.Add(6*time.Hour))

	assert.NotPanics(t, func() { d.Refresh(day0) }, "no-op before the first search")
	assert.Nil(t, d.Current())

	first, err := d.Search(context.Background(), "Paris")
	require.NoError(t, err)
	assert.InDelta(t, 0, first.Live.Sun.Progress, 1e-9)

	d.Refresh(day0.Add(20 * time.Hour))
	after := d.Current()
	assert.NotSame(t, first, after)
	assert.Same(t, first.Weather, after.Weather)
	assert.InDelta(t, 1, after.Live.Sun.Progress, 1e-9)
	assert.Equal(t, 20, after.Live.Hourly.NowIndex)
	assert.InDelta(t, 0, first.Live.Sun.Progress, 1e-9, "old snapshot is untouched")

	d.Close()
	d.Refresh(day0.Add(7 * time.Hour))
	assert.Same(t, after, d.Current())

	_, err = d.Search(context.Background(), "Paris")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRefresh_NoSunOnUnknownDay(t *testing.T) {
	d := newDashboard(&fakeSearcher{results: map[string]*weather.NormalizedWeather{"Paris": record("Paris", 1)}}, nil, day0.AddDate(0, 0, 5))
	st, err := d.Search(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Nil(t, st.Live.Sun)
	assert.Empty(t, st.Live.Hourly.Records)
}

func TestLoadFavorite(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	favs := store.NewFavorites(kv, nil)
	rome := record("Rome", 25)
	require.NoError(t, favs.Save(ctx, rome))

	s := &fakeSearcher{results: map[string]*weather.NormalizedWeather{"Oslo": record("Oslo", -2)}}
	d := newDashboard(s, favs, day0.Add(12*time.Hour))

	st, err := d.LoadFavorite(ctx, "rome")
	require.NoError(t, err)
	assert.True(t, st.FromFavorite)
	assert.Equal(t, "Rome", st.Weather.Location.City)
	assert.Equal(t, 25.0, *st.Weather.Current.Temperature)
	assert.Zero(t, atomic.LoadInt32(&s.calls), "snapshots are replayed, not fetched")

	_, err = d.LoadFavorite(ctx, "Lima")
	assert.ErrorIs(t, err, ErrFavoriteNotFound)

	// A bare-name favorite has nothing to replay.
	require.NoError(t, kv.Set(ctx, store.FavoritesKey, []byte(`["Oslo"]`)))
	st, err = d.LoadFavorite(ctx, "Oslo")
	require.NoError(t, err)
	assert.False(t, st.FromFavorite)
	assert.Equal(t, int32(1), atomic.LoadInt32(&s.calls))
}

func TestFavoritesPassthrough(t *testing.T) {
	ctx := context.Background()
	favs := store.NewFavorites(store.NewMemoryStore(), nil)
	d := newDashboard(&fakeSearcher{results: map[string]*weather.NormalizedWeather{
		"Paris": record("Paris", 1),
		"Rome":  record("Rome", 2),
	}}, favs, day0)

	for _, c := range []string{"Paris", "Rome"} {
		_, err := d.Search(ctx, c)
		require.NoError(t, err)
	}

	list, err := d.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Rome", list[0].CityName)

	require.NoError(t, d.RemoveFavorite(ctx, "paris"))
	assert.ErrorIs(t, d.RemoveFavorite(ctx, "paris"), ErrFavoriteNotFound)

	list, err = New(nil, nil, nil).Favorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	s := &fakeSearcher{results: map[string]*weather.NormalizedWeather{
		"Paris": record("Paris", 1),
		"Rome":  record("Rome", 2),
	}}
	d := newDashboard(s, nil, day0.Add(12*time.Hour))
	_, err := d.Search(context.Background(), "Paris")
	require.NoError(t, err)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				st := d.Current()
				city := st.Weather.Location.City
				temp := *st.Weather.Current.Temperature
				if (city == "Paris" && temp != 1) || (city == "Rome" && temp != 2) {
					t.Errorf("torn snapshot: %s with %v", city, temp)
					return
				}
				d.Refresh(day0.Add(13 * time.Hour))
			}
		}()
	}

	for i := 0; i < 20; i++ {
		city := []string{"Paris", "Rome"}[i%2]
		_, err := d.Search(context.Background(), city)
		require.NoError(t, err)
	}
	close(stop)
	wg.Wait()
}
