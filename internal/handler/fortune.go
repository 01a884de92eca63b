package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"suimei/internal/domain"
)

type readingRequest struct {
	Birth domain.BirthData `json:"birth"`
	Year  int              `json:"year"`
}

// PostFortune godoc
// @Summary      Compute a four-pillar chart
// @Description  Returns pillars, ten gods, twelve stages, strength, favourable gods and luck pillars
// @Tags         fortune
// @Accept       json
// @Produce      json
// @Param        birth  body      domain.BirthData  true  "Birth data"
// @Success      200    {object}  domain.ChartView
// @Failure      400    {object}  map[string]string
// @Failure      502    {object}  map[string]string
// @Router       /api/fortune [post]
func (h *Handler) PostFortune(c *gin.Context) {
	if h.charts == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chart service unavailable"})
		return
	}
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.post-fortune")
	defer span.End()

	var birth domain.BirthData
	if err := c.ShouldBindJSON(&birth); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	span.SetAttributes(attribute.String("birth", birth.String()))

	view, err := h.charts.ComputeChartView(ctx, birth)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PostTimeline godoc
// @Summary      Score a range of years
// @Tags         fortune
// @Accept       json
// @Produce      json
// @Param        request  body      domain.TimelineRequest  true  "Birth data and year window"
// @Success      200      {object}  domain.TimelineView
// @Failure      400      {object}  map[string]string
// @Failure      502      {object}  map[string]string
// @Router       /api/fortune/timeline [post]
func (h *Handler) PostTimeline(c *gin.Context) {
	if h.charts == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chart service unavailable"})
		return
	}
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.post-timeline")
	defer span.End()

	var req domain.TimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	view, err := h.charts.Timeline(ctx, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PostTimelineImage godoc
// @Summary      Render a timeline chart
// @Tags         fortune
// @Accept       json
// @Produce      png
// @Param        request  body  domain.TimelineRequest  true  "Birth data and year window"
// @Success      200  {file}    binary
// @Failure      400  {object}  map[string]string
// @Router       /api/fortune/timeline.png [post]
func (h *Handler) PostTimelineImage(c *gin.Context) {
	if h.charts == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chart service unavailable"})
		return
	}
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.post-timeline-image")
	defer span.End()

	var req domain.TimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	img, err := h.charts.RenderTimeline(ctx, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, img.MimeType, img.Bytes)
}

// PostReading godoc
// @Summary      Narrative reading of a chart
// @Tags         fortune
// @Accept       json
// @Produce      json
// @Param        request  body      readingRequest  true  "Birth data and focus year"
// @Success      200      {object}  domain.Reading
// @Failure      400      {object}  map[string]string
// @Failure      503      {object}  map[string]string
// @Router       /api/fortune/reading [post]
func (h *Handler) PostReading(c *gin.Context) {
	if h.advisor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "advisor unavailable"})
		return
	}
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.post-reading")
	defer span.End()

	var req readingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if err := req.Birth.Validate(); err != nil {
		h.fail(c, err)
		return
	}
	if req.Year == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year is required"})
		return
	}

	reading, err := h.advisor.Reading(ctx, req.Birth, req.Year)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reading)
}

// GetAnnual godoc
// @Summary      Annual pillar of a year
// @Tags         fortune
// @Produce      json
// @Param        year  path      int  true  "Gregorian year"
// @Success      200   {object}  domain.AnnualView
// @Failure      400   {object}  map[string]string
// @Router       /api/annual/{year} [get]
func (h *Handler) GetAnnual(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-annual")
	defer span.End()

	year, err := strconv.Atoi(strings.TrimSpace(c.Param("year")))
	if err != nil || year < 1 || year > 9999 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer between 1 and 9999"})
		return
	}
	span.SetAttributes(attribute.Int("year", year))
	c.JSON(http.StatusOK, domain.NewAnnualView(year))
}
