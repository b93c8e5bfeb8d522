package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/shoresquad/shoresquad-weather/internal/store"
	"github.com/shoresquad/shoresquad-weather/internal/weather"
)

var validate = validator.New()

// WeatherService is what the handlers need from weather.Service.
type WeatherService interface {
	Location() string
	Latest() (weather.Report, error)
	History(from, to time.Time) ([]weather.Report, error)
	Refresh(ctx context.Context) weather.Report
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service WeatherService) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		report, err := latest(service)
		if err != nil {
			return err
		}
		return c.JSON(report)
	})

	v1.Get("/weather/advisory", func(c *fiber.Ctx) error {
		report, err := latest(service)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"location":  report.Snapshot.Location,
			"source":    report.Origin,
			"fetchedAt": report.FetchedAt,
			"advisory":  report.Advisory,
		})
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		var req forecastQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "days must be between 1 and 4")
		}

		report, err := latest(service)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"location":  report.Snapshot.Location,
			"source":    report.Origin,
			"fetchedAt": report.FetchedAt,
			"forecast":  report.Snapshot.Forecast[:req.Days],
		})
	})

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		reports, err := service.History(req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather history")
		}

		return c.JSON(fiber.Map{
			"location": service.Location(),
			"from":     req.From,
			"to":       req.To,
			"reports":  reports,
		})
	})

	v1.Post("/weather/refresh", func(c *fiber.Ctx) error {
		return c.JSON(service.Refresh(c.UserContext()))
	})
}

func latest(service WeatherService) (weather.Report, error) {
	report, err := service.Latest()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return weather.Report{}, fiber.NewError(fiber.StatusNotFound, "no weather report yet")
		}
		return weather.Report{}, fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather report")
	}
	return report, nil
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	Days int `validate:"min=1,max=4"`
}

func (f *forecastQuery) bind(c *fiber.Ctx) error {
	f.Days = weather.ForecastLength

	s := c.Query("days")
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("days must be an integer")
	}
	f.Days = n
	return nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
