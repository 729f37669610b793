package httpapi

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/view"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// ErrorHandler renders every error as the JSON error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, dash *dashboard.Dashboard) {
	v1 := app.Group("/api/v1")

	v1.Post("/search", func(c *fiber.Ctx) error {
		q := searchQuery{City: strings.TrimSpace(c.Query("city"))}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "city query parameter is required")
		}

		st, err := dash.Search(c.UserContext(), q.City)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(view.NewCurrentPanel(st.Weather, dash.Now()))
	})

	v1.Get("/status", func(c *fiber.Ctx) error {
		return c.JSON(dash.Status())
	})

	w := v1.Group("/weather")

	w.Get("/", func(c *fiber.Ctx) error {
		st, err := current(dash)
		if err != nil {
			return err
		}
		return c.JSON(st.Weather)
	})

	w.Get("/current", func(c *fiber.Ctx) error {
		st, err := current(dash)
		if err != nil {
			return err
		}
		return c.JSON(view.NewCurrentPanel(st.Weather, dash.Now()))
	})

	w.Get("/details", func(c *fiber.Ctx) error {
		st, err := current(dash)
		if err != nil {
			return err
		}
		return c.JSON(view.DetailCards(st.Weather, dash.Now()))
	})

	w.Get("/daily", func(c *fiber.Ctx) error {
		st, err := current(dash)
		if err != nil {
			return err
		}
		return c.JSON(view.DailyStrip(st.Weather, st.SelectedDay, dash.Now()))
	})

	w.Get("/hourly", func(c *fiber.Ctx) error {
		st, err := current(dash)
		if err != nil {
			return err
		}
		day, err := parseDay(c.Query("day"))
		if err != nil {
			return err
		}
		if day == nil {
			return c.JSON(view.NewHourlyChart(st.Live.Hourly))
		}
		return c.JSON(view.NewHourlyChart(weather.DeriveHourly(st.Weather, day, dash.Now())))
	})

	w.Post("/select", func(c *fiber.Ctx) error {
		day, err := parseDay(c.Query("day"))
		if err != nil {
			return err
		}
		st, err := dash.Select(day)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(fiber.Map{
			"daily":  view.DailyStrip(st.Weather, st.SelectedDay, dash.Now()),
			"hourly": view.NewHourlyChart(st.Live.Hourly),
		})
	})

	w.Get("/sun", func(c *fiber.Ctx) error {
		st, err := current(dash)
		if err != nil {
			return err
		}
		var q sunQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(view.NewSunCard(st.Weather, dash.Now(), q.viewport()))
	})

	w.Get("/background", func(c *fiber.Ctx) error {
		st, err := current(dash)
		if err != nil {
			return err
		}
		return c.JSON(view.BackgroundFor(st.Weather.Current))
	})

	f := v1.Group("/favorites")

	f.Get("/", func(c *fiber.Ctx) error {
		favs, err := dash.Favorites(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read favorites")
		}
		return c.JSON(view.FavoritesStrip(favs))
	})

	f.Post("/:city/load", func(c *fiber.Ctx) error {
		city, err := cityParam(c)
		if err != nil {
			return err
		}
		st, err := dash.LoadFavorite(c.UserContext(), city)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(view.NewCurrentPanel(st.Weather, dash.Now()))
	})

	f.Delete("/:city", func(c *fiber.Ctx) error {
		city, err := cityParam(c)
		if err != nil {
			return err
		}
		if err := dash.RemoveFavorite(c.UserContext(), city); err != nil {
			return toHTTPError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// searchQuery holds the search endpoint's query parameters.
type searchQuery struct {
	City string `validate:"required,max=100"`
}

// sunQuery holds the requested SVG box. Zero values keep the defaults.
type sunQuery struct {
	Width  float64 `validate:"omitempty,gte=100,lte=10000"`
	Height float64 `validate:"omitempty,gte=100,lte=10000"`
}

func (q *sunQuery) bind(c *fiber.Ctx) error {
	var err error
	if q.Width, err = parseFloat(c.Query("width")); err != nil {
		return errors.New("width must be a number")
	}
	if q.Height, err = parseFloat(c.Query("height")); err != nil {
		return errors.New("height must be a number")
	}
	return nil
}

// viewport scales the default sun card box to the requested size.
func (q sunQuery) viewport() weather.Viewport {
	vp := weather.DefaultViewport
	if q.Width > 0 {
		vp.MarginX = vp.MarginX * q.Width / vp.Width
		vp.Width = q.Width
	}
	if q.Height > 0 {
		vp.CenterY = vp.CenterY * q.Height / vp.Height
		vp.Height = q.Height
	}
	return vp
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// dayQuery is a calendar date in YYYY-MM-DD form.
type dayQuery struct {
	Day string `validate:"omitempty,datetime=2006-01-02"`
}

func parseDay(s string) (*time.Time, error) {
	q := dayQuery{Day: strings.TrimSpace(s)}
	if err := validate.Struct(q); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "day must be formatted as YYYY-MM-DD")
	}
	if q.Day == "" {
		return nil, nil
	}
	day, err := time.Parse(time.DateOnly, q.Day)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "day must be formatted as YYYY-MM-DD")
	}
	return &day, nil
}

func cityParam(c *fiber.Ctx) (string, error) {
	city, err := url.PathUnescape(c.Params("city"))
	if err != nil || strings.TrimSpace(city) == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid city")
	}
	return city, nil
}

func current(dash *dashboard.Dashboard) (*dashboard.State, error) {
	st := dash.Current()
	if st == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "no weather loaded; search for a city first")
	}
	return st, nil
}

// toHTTPError maps dashboard and search failures onto status codes. Search
// failures carry only the user-facing message.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, dashboard.ErrNoWeather):
		return fiber.NewError(fiber.StatusNotFound, "no weather loaded; search for a city first")
	case errors.Is(err, dashboard.ErrFavoriteNotFound):
		return fiber.NewError(fiber.StatusNotFound, "favorite not found")
	case errors.Is(err, dashboard.ErrClosed):
		return fiber.NewError(fiber.StatusServiceUnavailable, "shutting down")
	case weather.IsNotFound(err):
		return fiber.NewError(fiber.StatusNotFound, dashboard.MsgCityNotFound)
	default:
		return fiber.NewError(fiber.StatusBadGateway, dashboard.MsgFetchFailed)
	}
}
