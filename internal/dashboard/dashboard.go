package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/i474232898/weather-dashboard/internal/logger"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// User-facing failure messages. Nothing else is ever shown.
const (
	MsgCityNotFound = "City not found"
	MsgFetchFailed  = "Failed to fetch weather data"
)

var (
	ErrNoWeather        = errors.New("no weather loaded")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrClosed           = errors.New("dashboard closed")
)

// Searcher runs a full city search. *weather.Service implements it.
type Searcher interface {
	Search(ctx context.Context, city string) (*weather.NormalizedWeather, error)
}

// FavoriteStore persists favorite snapshots. *store.Favorites implements it.
type FavoriteStore interface {
	Save(ctx context.Context, nw *weather.NormalizedWeather) error
	Get(ctx context.Context, city string) (store.Favorite, bool, error)
	List(ctx context.Context) ([]store.Favorite, error)
	Remove(ctx context.Context, city string) (bool, error)
}

// Status is the search progress shown next to the search box.
type Status struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Live is the time-dependent part of the page, recomputed on a timer.
type Live struct {
	At     time.Time          `json:"at"`
	Sun    *weather.SunArc    `json:"sun,omitempty"`
	Hourly weather.HourlyView `json:"hourly"`
}

// State is one immutable page snapshot. It is replaced whole, never edited.
type State struct {
	Weather     *weather.NormalizedWeather `json:"weather"`
	SelectedDay *time.Time                 `json:"selectedDay,omitempty"`
	Live        Live                       `json:"live"`

	// FromFavorite is set when Weather is a saved snapshot rather than a fresh fetch.
	FromFavorite bool `json:"fromFavorite"`
}

// Dashboard owns the page state. Reads are lock-free; searches are serialised.
type Dashboard struct {
	searcher  Searcher
	favorites FavoriteStore
	log       logger.Logger
	now       func() time.Time

	searchMu sync.Mutex
	state    atomic.Pointer[State]
	status   atomic.Pointer[Status]
	closed   atomic.Bool
}

// New creates a Dashboard. favorites may be nil.
func New(searcher Searcher, favorites FavoriteStore, log logger.Logger) *Dashboard {
	if log == nil {
		log = logger.Discard()
	}
	d := &Dashboard{
		searcher:  searcher,
		favorites: favorites,
		log:       logger.Component(log, "dashboard"),
		now:       time.Now,
	}
	d.status.Store(&Status{})
	return d
}

// WithClock overrides the dashboard clock. Used by tests.
func (d *Dashboard) WithClock(now func() time.Time) *Dashboard {
	d.now = now
	return d
}

// Now returns the dashboard clock reading.
func (d *Dashboard) Now() time.Time {
	return d.now()
}

// UserMessage maps a search failure to the message shown to the user.
func UserMessage(err error) string {
	if weather.IsNotFound(err) {
		return MsgCityNotFound
	}
	return MsgFetchFailed
}

// Current returns the current page snapshot, or nil before the first search.
func (d *Dashboard) Current() *State {
	return d.state.Load()
}

func (d *Dashboard) Status() Status {
	return *d.status.Load()
}

// Search fetches city and installs the result. On failure the previous
// record stays in place and the status carries the user message.
func (d *Dashboard) Search(ctx context.Context, city string) (*State, error) {
	if d.closed.Load() {
		return nil, ErrClosed
	}

	d.searchMu.Lock()
	defer d.searchMu.Unlock()

	d.status.Store(&Status{Loading: true})

	nw, err := d.searcher.Search(ctx, strings.TrimSpace(city))
	if err != nil {
		msg := UserMessage(err)
		d.log.WithFields(map[string]interface{}{
			"city":    city,
			"message": msg,
		}).Warnf("search failed: %v", err)
		d.status.Store(&Status{Error: msg})
		return nil, err
	}

	if d.favorites != nil {
		if err := d.favorites.Save(ctx, nw); err != nil {
			d.log.Warnf("could not save favorite %q: %v", nw.Location.City, err)
		}
	}

	st := d.install(nw, nil, false)
	d.status.Store(&Status{})
	return st, nil
}

// Select changes the day shown in the hourly view. A nil day means today.
func (d *Dashboard) Select(day *time.Time) (*State, error) {
	for {
		old := d.state.Load()
		if old == nil {
			return nil, ErrNoWeather
		}
		next := &State{
			Weather:      old.Weather,
			SelectedDay:  day,
			FromFavorite: old.FromFavorite,
			Live:         computeLive(old.Weather, day, d.now()),
		}
		if d.state.CompareAndSwap(old, next) {
			return next, nil
		}
	}
}

// LoadFavorite replays a saved snapshot without fetching. Favorites saved as
// bare names carry no snapshot, so those are searched instead.
func (d *Dashboard) LoadFavorite(ctx context.Context, city string) (*State, error) {
	if d.favorites == nil {
		return nil, ErrFavoriteNotFound
	}

	fav, ok, err := d.favorites.Get(ctx, city)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrFavoriteNotFound
	}
	if fav.Weather == nil {
		return d.Search(ctx, fav.CityName)
	}

	d.searchMu.Lock()
	defer d.searchMu.Unlock()

	st := d.install(fav.Weather, nil, true)
	d.status.Store(&Status{})
	return st, nil
}

// Favorites lists saved favorites, newest first.
func (d *Dashboard) Favorites(ctx context.Context) ([]store.Favorite, error) {
	if d.favorites == nil {
		return []store.Favorite{}, nil
	}
	return d.favorites.List(ctx)
}

func (d *Dashboard) RemoveFavorite(ctx context.Context, city string) error {
	if d.favorites == nil {
		return ErrFavoriteNotFound
	}
	removed, err := d.favorites.Remove(ctx, city)
	if err != nil {
		return err
	}
	if !removed {
		return ErrFavoriteNotFound
	}
	return nil
}

// Refresh recomputes the live view for now. It is a no-op before the first
// search and after Close.
func (d *Dashboard) Refresh(now time.Time) {
	if d.closed.Load() {
		return
	}
	for {
		old := d.state.Load()
		if old == nil {
			return
		}
		next := *old
		next.Live = computeLive(old.Weather, old.SelectedDay, now)
		if d.state.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Tick refreshes with the dashboard clock.
func (d *Dashboard) Tick() {
	d.Refresh(d.now())
}

// Close stops further searches and refreshes.
func (d *Dashboard) Close() {
	d.closed.Store(true)
}

func (d *Dashboard) install(nw *weather.NormalizedWeather, day *time.Time, fromFavorite bool) *State {
	st := &State{
		Weather:      nw,
		SelectedDay:  day,
		FromFavorite: fromFavorite,
		Live:         computeLive(nw, day, d.now()),
	}
	d.state.Store(st)
	return st
}

func computeLive(nw *weather.NormalizedWeather, day *time.Time, now time.Time) Live {
	live := Live{
		At:     now,
		Hourly: weather.DeriveHourly(nw, day, now),
	}
	if today, ok := nw.Today(now); ok && today.Sunrise != nil && today.Sunset != nil {
		arc := weather.ComputeSunArc(*today.Sunrise, *today.Sunset, now)
		live.Sun = &arc
	}
	return live
}
