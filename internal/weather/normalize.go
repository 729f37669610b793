package weather

import (
	"time"

	"github.com/i474232898/weather-dashboard/internal/astro"
)

// Normalize merges the forecast, optional air-quality payload and moon data
// into one NormalizedWeather. It performs no I/O; now is used only for the
// current day/night flag and as the current timestamp when the provider
// omits one. A nil moon is computed locally from the daily dates.
func Normalize(f *RawForecast, air *AirQuality, place Place, moon *astro.MoonData, now time.Time) *NormalizedWeather {
	if f == nil {
		f = &RawForecast{}
	}
	zone := zoneFor(f.Timezone, f.UTCOffsetSeconds)

	out := &NormalizedWeather{
		Location:    Location{City: place.Name, Country: place.Country},
		Coordinates: place.Coordinates,
		Timezone:    f.Timezone,
		UTCOffset:   f.UTCOffsetSeconds,
	}

	out.Daily = normalizeDaily(f, zone, place.Coordinates, moon)
	out.Hourly = normalizeHourly(f, zone, out.Daily)

	src := sources{forecast: f, air: air, zone: zone, currentIndex: -1}
	currentTime := resolveCurrentTime(src)
	ref := now.In(zone)
	if currentTime != nil {
		ref = *currentTime
	}
	src.currentIndex = hourIndex(f.Hourly.Times(), ref, zone)

	out.Current = CurrentConditions{
		Time:             currentTime,
		Temperature:      resolveTemperature(src),
		FeelsLike:        resolveFeelsLike(src),
		WindSpeedKmh:     resolveWindSpeed(src),
		WindGustKmh:      resolveWindGust(src),
		WindDirectionDeg: resolveWindDirection(src),
		WeatherCode:      resolveWeatherCode(src),
		HumidityPct:      resolveHumidity(src),
		VisibilityKm:     resolveVisibility(src),
		PressureMb:       resolvePressure(src),
		CloudCoverPct:    resolveCloudCover(src),
		AQI:              resolveAQI(src),
	}
	out.AQI = out.Current.AQI

	today, ok := out.DayOf(now)
	if ok {
		out.Current.IsDaytime = IsDaytime(now.In(zone), today.Sunrise, today.Sunset)
	} else {
		out.Current.IsDaytime = IsDaytime(now.In(zone), nil, nil)
	}

	return out
}

func normalizeDaily(f *RawForecast, zone *time.Location, coords Coordinates, moon *astro.MoonData) []DayRecord {
	times := f.Daily.Times()
	if len(times) == 0 {
		return []DayRecord{}
	}

	dates := dailyDates(f)

	if moon == nil {
		computed := astro.ComputeMoonData(dates, coords.Latitude, coords.Longitude)
		moon = &computed
	}

	var (
		maxT     = f.Daily.Floats("temperature_2m_max")
		minT     = f.Daily.Floats("temperature_2m_min")
		codes    = f.Daily.Floats(fieldCode...)
		sunrise  = f.Daily.Strings("sunrise")
		sunset   = f.Daily.Strings("sunset")
		uv       = f.Daily.Floats("uv_index_max")
		precip   = f.Daily.Floats("precipitation_sum")
		moonrise = f.Daily.Strings("moonrise")
		moonset  = f.Daily.Strings("moonset")
		phase    = f.Daily.Floats("moon_phase")
	)

	days := make([]DayRecord, len(times))
	for i := range times {
		day := DayRecord{
			Date:             dates[i],
			TempMax:          at(maxT, i),
			TempMin:          at(minT, i),
			Sunrise:          parseTimePtr(atString(sunrise, i), zone),
			Sunset:           parseTimePtr(atString(sunset, i), zone),
			UVIndexMax:       at(uv, i),
			PrecipitationSum: at(precip, i),
			Moonrise:         parseTimePtr(atString(moonrise, i), zone),
			Moonset:          parseTimePtr(atString(moonset, i), zone),
			MoonPhase:        astro.IndeterminatePhase,
		}
		if c := at(codes, i); c != nil {
			day.WeatherCode = int(*c)
		}

		if day.Moonrise == nil && i < len(moon.Moonrise) {
			day.Moonrise = moon.Moonrise[i]
		}
		if day.Moonset == nil && i < len(moon.Moonset) {
			day.Moonset = moon.Moonset[i]
		}
		if p := at(phase, i); p != nil && *p >= 0 && *p < 1 {
			day.MoonPhase = *p
			day.MoonPhaseKnown = true
		} else if i < len(moon.MoonPhase) {
			day.MoonPhase = moon.MoonPhase[i]
			day.MoonPhaseKnown = i < len(moon.PhaseKnown) && moon.PhaseKnown[i]
		}

		days[i] = day
	}
	return days
}

func normalizeHourly(f *RawForecast, zone *time.Location, daily []DayRecord) []HourRecord {
	times := f.Hourly.Times()
	if len(times) == 0 {
		return []HourRecord{}
	}

	byDate := make(map[string]DayRecord, len(daily))
	for _, d := range daily {
		byDate[d.Date.Format(time.DateOnly)] = d
	}

	var (
		temp     = f.Hourly.Floats(fieldTemperature...)
		feels    = f.Hourly.Floats(fieldApparent...)
		precip   = f.Hourly.Floats(fieldPrecip...)
		prob     = f.Hourly.Floats(fieldPrecipProb...)
		wind     = f.Hourly.Floats(fieldWind...)
		windUnit = unitFor(f.HourlyUnits, fieldWind)
		humidity = f.Hourly.Floats(fieldHumidity...)
		codes    = f.Hourly.Floats(fieldCode...)
	)

	hours := make([]HourRecord, len(times))
	for i, raw := range times {
		ts, _ := parseTime(raw, zone)

		h := HourRecord{
			Time:                        ts,
			TemperatureC:                at(temp, i),
			FeelsLikeC:                  at(feels, i),
			PrecipitationMm:             at(precip, i),
			PrecipitationProbabilityPct: at(prob, i),
			WindKmh:                     windToKmh(at(wind, i), windUnit),
			HumidityPct:                 at(humidity, i),
		}
		if h.FeelsLikeC == nil {
			h.FeelsLikeC = h.TemperatureC
		}
		if c := at(codes, i); c != nil {
			h.WeatherCode = int(*c)
		}

		if day, ok := byDate[ts.Format(time.DateOnly)]; ok && !ts.IsZero() {
			h.IsDaytime = IsDaytime(ts, day.Sunrise, day.Sunset)
		} else {
			h.IsDaytime = IsDaytime(ts, nil, nil)
		}

		switch {
		case h.PrecipitationMm != nil && *h.PrecipitationMm > 0:
			h.PrecipDisplay = *h.PrecipitationMm
		case h.PrecipitationProbabilityPct != nil:
			h.PrecipDisplay = *h.PrecipitationProbabilityPct
			h.PrecipIsProbability = true
		}

		hours[i] = h
	}
	return hours
}
