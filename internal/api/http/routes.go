package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/akarakus27/weather-telegram-bot/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the daemon-mode HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, st *store.MemoryStore) {
	v1 := app.Group("/api/v1")

	v1.Get("/runs/latest", func(c *fiber.Ctx) error {
		rec, err := st.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no report runs recorded yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read run history")
		}
		return c.JSON(rec)
	})

	v1.Get("/runs", func(c *fiber.Ctx) error {
		req, err := parseRunsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{
			"limit": req.Limit,
			"runs":  st.Recent(req.Limit),
		})
	})
}

// runsQuery holds query parameters for the run history endpoint.
type runsQuery struct {
	Limit int `validate:"gte=1,lte=100"`
}

func parseRunsQuery(c *fiber.Ctx) (runsQuery, error) {
	q := runsQuery{Limit: 10}

	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, errors.New("limit must be an integer")
		}
		q.Limit = n
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
