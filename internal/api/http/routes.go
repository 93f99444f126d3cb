package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/downtime-prediction/internal/risk"
	"github.com/i474232898/downtime-prediction/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *risk.Service, thresholds risk.Thresholds) {
	v1 := app.Group("/api/v1")

	v1.Post("/predictions", func(c *fiber.Ctx) error {
		var req predictionRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result := service.Predict(c.UserContext(), req.toInput())
		return c.JSON(result)
	})

	v1.Post("/predictions/region", func(c *fiber.Ctx) error {
		var req regionRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result := service.PredictRegion(c.UserContext(), req.Region)
		return c.JSON(result)
	})

	v1.Get("/predictions/cities", func(c *fiber.Ctx) error {
		country := c.Query("country")
		if country == "" {
			return fiber.NewError(fiber.StatusBadRequest, "country query parameter is required")
		}

		preds := service.CityPredictions(c.UserContext(), country)

		rows, err := risk.ClassifyCities(preds, thresholds)
		if err != nil {
			if errors.Is(err, risk.ErrNoCityData) {
				return c.JSON(fiber.Map{
					"country": country,
					"cities":  []risk.CityRisk{},
					"no_data": true,
				})
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to classify city predictions")
		}

		return c.JSON(fiber.Map{
			"country": country,
			"cities":  rows,
			"no_data": false,
		})
	})

	v1.Get("/predictions/latest", func(c *fiber.Ctx) error {
		region, err := parseRegionQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snap, err := service.GetLatest(region)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no risk data for requested region")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch risk data")
		}

		return c.JSON(snap)
	})

	v1.Get("/predictions/history", func(c *fiber.Ctx) error {
		var req rangeQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshots, err := service.GetRange(req.Region, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no risk history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch risk history")
		}

		return c.JSON(fiber.Map{
			"region":    req.Region,
			"from":      req.From,
			"to":        req.To,
			"snapshots": snapshots,
		})
	})

	v1.Get("/predictions/summary", func(c *fiber.Ctx) error {
		var req rangeQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		summary, err := service.SummarizeRange(req.Region, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no risk history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to summarize risk history")
		}

		return c.JSON(fiber.Map{
			"region":  req.Region,
			"from":    req.From,
			"to":      req.To,
			"summary": summary,
		})
	})

	v1.Get("/alerts/recent", func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 20)
		return c.JSON(fiber.Map{
			"alerts": service.RecentAlerts(limit),
		})
	})
}

// predictionRequest holds the body of a direct prediction call. Readings are
// bounds-checked at this edge; the scorer itself accepts anything.
type predictionRequest struct {
	Region      string  `json:"region" validate:"required"`
	LatencyMS   float64 `json:"latency_ms" validate:"gte=0"`
	PacketLoss  float64 `json:"packet_loss" validate:"gte=0,lte=100"`
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"wind_speed" validate:"gte=0"`
	Humidity    float64 `json:"humidity" validate:"gte=0,lte=100"`
}

func (r predictionRequest) toInput() risk.PredictionInput {
	return risk.PredictionInput{
		Region:      r.Region,
		LatencyMS:   r.LatencyMS,
		PacketLoss:  r.PacketLoss,
		Temperature: r.Temperature,
		WindSpeed:   r.WindSpeed,
		Humidity:    r.Humidity,
	}
}

// regionRequest holds the body of a simplified prediction call.
type regionRequest struct {
	Region string `json:"region" validate:"required"`
}

func parseRegionQuery(c *fiber.Ctx) (string, error) {
	region := c.Query("region")
	if region == "" {
		return "", errors.New("region query parameter is required")
	}
	return region, nil
}

// rangeQuery holds query parameters for the history and summary endpoints.
type rangeQuery struct {
	Region string    `validate:"required"`
	From   time.Time `validate:"required"`
	To     time.Time `validate:"required,gtefield=From"`
}

func (r *rangeQuery) bind(c *fiber.Ctx) error {
	region, err := parseRegionQuery(c)
	if err != nil {
		return err
	}
	r.Region = region

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

	r.From = from
	r.To = to
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
