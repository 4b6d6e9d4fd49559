package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/analytics"
	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/dto"
	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/service"
)

type Handler struct {
	eventService     service.EventServicer
	analyticsService service.AnalyticsServicer
	router           *gin.Engine
	log              *zap.Logger
}

func NewHandler(eventService service.EventServicer, analyticsService service.AnalyticsServicer, log *zap.Logger) *Handler {
	h := &Handler{
		eventService:     eventService,
		analyticsService: analyticsService,
		router:           gin.Default(),
		log:              log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.POST("/events", h.publishEvent)
	h.router.POST("/events/bulk", h.publishEventsBulk)
	h.router.GET("/analytics/ltv", h.getLTV)
	h.router.GET("/analytics/cac", h.getCAC)
	h.router.GET("/analytics/segments", h.getSegments)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// bindAnalyticsRequest binds the shared metric query parameters, writing
// the validation error response itself on failure.
func (h *Handler) bindAnalyticsRequest(c *gin.Context) (*dto.AnalyticsRequest, bool) {
	var req dto.AnalyticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid analytics request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return nil, false
	}
	return &req, true
}

// writeAnalyticsError maps window validation failures to 400 and
// everything else to 500.
func (h *Handler) writeAnalyticsError(c *gin.Context, req *dto.AnalyticsRequest, metric string, err error) {
	if errors.Is(err, analytics.ErrInvalidWindow) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	h.log.Error("Failed to compute metric",
		zap.String("metric", metric),
		zap.String("account_id", req.AccountID),
		zap.String("period", req.Period),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}

// getLTV handles GET /analytics/ltv
// @Summary Customer lifetime value report
// @Description Per-customer LTV detail and roll-up for the requested window
// @Tags analytics
// @Produce json
// @Param account_id query string true "Tenant account ID"
// @Param period query string false "Reporting period" Enums(today, week, month, year, custom)
// @Param start_date query string false "Custom window start (ISO-8601)"
// @Param end_date query string false "Custom window end (ISO-8601)"
// @Param plan query string false "Plan tier" Enums(free, growth, business)
// @Success 200 {object} dto.GetLTVResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analytics/ltv [get]
func (h *Handler) getLTV(c *gin.Context) {
	req, ok := h.bindAnalyticsRequest(c)
	if !ok {
		return
	}

	response, err := h.analyticsService.GetLTV(c.Request.Context(), req)
	if err != nil {
		h.writeAnalyticsError(c, req, "ltv", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// getCAC handles GET /analytics/cac
// @Summary Customer acquisition cost report
// @Description Per-channel conversion attribution with estimated CAC
// @Tags analytics
// @Produce json
// @Param account_id query string true "Tenant account ID"
// @Param period query string false "Reporting period" Enums(today, week, month, year, custom)
// @Param start_date query string false "Custom window start (ISO-8601)"
// @Param end_date query string false "Custom window end (ISO-8601)"
// @Param plan query string false "Plan tier" Enums(free, growth, business)
// @Success 200 {object} dto.GetCACResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analytics/cac [get]
func (h *Handler) getCAC(c *gin.Context) {
	req, ok := h.bindAnalyticsRequest(c)
	if !ok {
		return
	}

	response, err := h.analyticsService.GetCAC(c.Request.Context(), req)
	if err != nil {
		h.writeAnalyticsError(c, req, "cac", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// getSegments handles GET /analytics/segments
// @Summary Behavioral customer segments
// @Description Non-exclusive behavioral segment classification for the window
// @Tags analytics
// @Produce json
// @Param account_id query string true "Tenant account ID"
// @Param period query string false "Reporting period" Enums(today, week, month, year, custom)
// @Param start_date query string false "Custom window start (ISO-8601)"
// @Param end_date query string false "Custom window end (ISO-8601)"
// @Param plan query string false "Plan tier" Enums(free, growth, business)
// @Success 200 {object} dto.GetSegmentsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analytics/segments [get]
func (h *Handler) getSegments(c *gin.Context) {
	req, ok := h.bindAnalyticsRequest(c)
	if !ok {
		return
	}

	response, err := h.analyticsService.GetSegments(c.Request.Context(), req)
	if err != nil {
		h.writeAnalyticsError(c, req, "segments", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// publishEvent handles POST /events
// @Summary Publish a single checkout event
// @Description Publish a single checkout telemetry event to the queue
// @Tags events
// @Accept json
// @Produce json
// @Param event body dto.PublishEventRequest true "Event data"
// @Success 202 {object} dto.PublishEventResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events [post]
func (h *Handler) publishEvent(c *gin.Context) {
	var req dto.PublishEventRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid event request",
			zap.Error(err),
			zap.String("event_type", req.EventType))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	eventID, err := h.eventService.ProcessEvent(&req)
	if err != nil {
		h.log.Error("Failed to process event",
			zap.Error(err),
			zap.String("event_type", req.EventType),
			zap.String("session_id", req.SessionID))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	h.log.Info("Event accepted",
		zap.String("event_id", eventID),
		zap.String("event_type", req.EventType))

	c.JSON(http.StatusAccepted, dto.PublishEventResponse{
		EventID: eventID,
		Status:  "accepted",
	})
}

// publishEventsBulk handles POST /events/bulk
// @Summary Publish multiple checkout events
// @Description Publish multiple checkout telemetry events in bulk to the queue
// @Tags events
// @Accept json
// @Produce json
// @Param events body dto.PublishEventsBulkRequest true "Bulk events data"
// @Success 202 {object} dto.PublishBulkEventsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events/bulk [post]
func (h *Handler) publishEventsBulk(c *gin.Context) {
	var bulkRequest dto.PublishEventsBulkRequest

	if err := c.ShouldBindJSON(&bulkRequest); err != nil {
		h.log.Warn("Invalid bulk event request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	eventIDs, errors, err := h.eventService.ProcessBulkEvents(bulkRequest.Events)
	if err != nil {
		h.log.Error("Failed to process bulk events",
			zap.Error(err),
			zap.Int("event_count", len(bulkRequest.Events)))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	accepted := len(eventIDs)
	rejected := len(errors)

	h.log.Info("Bulk events processed",
		zap.Int("accepted", accepted),
		zap.Int("rejected", rejected),
		zap.Int("total", len(bulkRequest.Events)))

	c.JSON(http.StatusAccepted, dto.PublishBulkEventsResponse{
		Accepted: accepted,
		Rejected: rejected,
		EventIDs: eventIDs,
		Errors:   errors,
	})
}
