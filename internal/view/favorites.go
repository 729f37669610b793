package view

import (
	"time"

	"github.com/i474232898/weather-dashboard/internal/store"
)

// FavoriteChip is one entry of the favorites strip.
type FavoriteChip struct {
	City        string     `json:"city"`
	Country     string     `json:"country,omitempty"`
	Temperature string     `json:"temperature,omitempty"`
	SavedAt     *time.Time `json:"savedAt,omitempty"`
	HasSnapshot bool       `json:"hasSnapshot"`
}

// FavoritesStrip keeps the stored most-recent-first order.
func FavoritesStrip(favs []store.Favorite) []FavoriteChip {
	chips := make([]FavoriteChip, 0, len(favs))
	for _, f := range favs {
		chip := FavoriteChip{City: f.CityName}
		if !f.SavedAt.IsZero() {
			saved := f.SavedAt
			chip.SavedAt = &saved
		}
		if f.Weather != nil {
			chip.HasSnapshot = true
			chip.Country = f.Weather.Location.Country
			chip.Temperature = formatDegrees(f.Weather.Current.Temperature)
		}
		chips = append(chips, chip)
	}
	return chips
}
