package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"suimei/internal/advisor"
	"suimei/internal/bazi"
	"suimei/internal/domain"
	"suimei/internal/service"
)

const requestIDHeader = "X-Request-ID"

type Advisor interface {
	Reading(ctx context.Context, b domain.BirthData, year int) (domain.Reading, error)
}

type Handler struct {
	tracer  trace.Tracer
	logger  *zap.Logger
	charts  *service.ChartService
	advisor Advisor
}

func New(tracer trace.Tracer, logger *zap.Logger, charts *service.ChartService, advisor Advisor) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		tracer:  tracer,
		logger:  logger,
		charts:  charts,
		advisor: advisor,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(RequestID())
	r.GET("/health", h.Health)
	api := r.Group("/api")
	api.POST("/fortune", h.PostFortune)
	api.POST("/fortune/timeline", h.PostTimeline)
	api.POST("/fortune/timeline.png", h.PostTimelineImage)
	api.POST("/fortune/reading", h.PostReading)
	api.GET("/annual/:year", h.GetAnnual)
}

// RequestID tags every request with an id, reusing the caller's when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// statusFor maps engine and transport failures onto HTTP status codes.
func statusFor(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, bazi.ErrInvalidDate),
		errors.Is(err, bazi.ErrInvalidHour):
		return http.StatusBadRequest
	case errors.Is(err, bazi.ErrOutsideTimeline):
		return http.StatusUnprocessableEntity
	case errors.Is(err, bazi.ErrCalendarResolution),
		errors.Is(err, bazi.ErrNoTransitionFound):
		return http.StatusBadGateway
	case errors.Is(err, advisor.ErrDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
	}
	body := gin.H{"error": err.Error()}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body["field"] = verr.Field
	}
	c.JSON(status, body)
}
