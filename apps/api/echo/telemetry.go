package echoapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/trezcool/timetable/core"
)

var (
	loadingStuckTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "timetable",
		Subsystem: "telemetry",
		Name:      "loading_stuck_total",
		Help:      "Number of loading-stuck banners shown to users.",
	})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "timetable",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests handled, by route and status code.",
	}, []string{"method", "route", "code"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "timetable",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests, by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

type (
	// LoadingStuckEvent is reported by the frontend when its loading banner stays up too long.
	LoadingStuckEvent struct {
		Event      string `json:"event" validate:"required"`
		OccurredAt string `json:"occurredAt" validate:"required"`
		Path       string `json:"path,omitempty"`
		Search     string `json:"search,omitempty"`
	}

	TelemetryResponse struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}
)

var errInvalidPayload = TelemetryResponse{Success: false, Error: "Invalid payload"}

type telemetryApi struct {
	logger   core.Logger
	validate *validator.Validate
}

func registerTelemetryAPI(g *echo.Group, logger core.Logger, validate *validator.Validate) {
	api := telemetryApi{logger: logger, validate: validate}

	tg := g.Group("/telemetry")
	tg.POST("/loading-stuck", api.loadingStuck)
}

// loadingStuck answers malformed payloads itself: the body is fixed and carries no field detail.
func (api *telemetryApi) loadingStuck(ctx echo.Context) error {
	var event LoadingStuckEvent
	if err := json.NewDecoder(ctx.Request().Body).Decode(&event); err != nil {
		return ctx.JSON(http.StatusBadRequest, errInvalidPayload)
	}
	if err := api.validate.Struct(event); err != nil {
		return ctx.JSON(http.StatusBadRequest, errInvalidPayload)
	}

	loadingStuckTotal.Inc()
	api.logger.Warn("[telemetry] loading stuck", map[string]interface{}{
		"id":         uuid.New().String(),
		"event":      event.Event,
		"occurredAt": event.OccurredAt,
		"path":       event.Path,
		"search":     event.Search,
		"userAgent":  ctx.Request().UserAgent(),
	}, currentSession(ctx))

	return ctx.JSON(http.StatusOK, TelemetryResponse{Success: true})
}

// metricsMiddleware counts and times every request by its route pattern.
func metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		start := time.Now()
		err := next(ctx)

		code := ctx.Response().Status
		if err != nil {
			code = http.StatusInternalServerError
			if herr, ok := errors.Cause(err).(*echo.HTTPError); ok {
				code = herr.Code
			}
		}
		route := ctx.Path()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(ctx.Request().Method, route, strconv.Itoa(code)).Inc()
		httpRequestDuration.WithLabelValues(ctx.Request().Method, route).Observe(time.Since(start).Seconds())
		return err
	}
}
