package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/olegk04/weather-lookup/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		var req forecastQuery
		req.Q = c.Query("q")
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "q query parameter is required")
		}

		result, err := service.Lookup(c.Context(), req.Q)
		if err != nil {
			return mapLookupError(err)
		}

		return c.JSON(result)
	})

	v1.Get("/recent", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"recent": service.Recent(),
		})
	})
}

// forecastQuery holds the raw search text. Grammar-level validation (zip vs
// city) belongs to the classifier; this only rejects a missing parameter.
type forecastQuery struct {
	Q string `validate:"required,max=120"`
}

// mapLookupError translates the lookup error taxonomy into HTTP statuses.
func mapLookupError(err error) error {
	switch {
	case errors.Is(err, weather.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, "enter a US city (optionally with state) or a 5-digit zip code")
	case errors.Is(err, weather.ErrBadQuery):
		return fiber.NewError(fiber.StatusBadRequest, "the weather provider rejected this query")
	case errors.Is(err, weather.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "no matching location found")
	case errors.Is(err, weather.ErrUpstream):
		return fiber.NewError(fiber.StatusBadGateway, "weather provider is unavailable")
	case errors.Is(err, weather.ErrNetwork):
		return fiber.NewError(fiber.StatusGatewayTimeout, "could not reach the weather provider")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "weather lookup failed")
	}
}
