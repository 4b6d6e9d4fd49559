package dto

// PublishEventRequest represents a checkout telemetry event submission
type PublishEventRequest struct {
	AccountID   string                 `json:"account_id" binding:"required" example:"acct_merchant_42"`
	SessionID   string                 `json:"session_id" binding:"required" example:"sess_9f2c1a"`
	OrderFormID string                 `json:"order_form_id" example:"of_7b1e22"`
	EventType   string                 `json:"event_type" binding:"required" example:"checkout_complete"`
	Timestamp   int64                  `json:"timestamp" binding:"required" example:"1723475612"`
	Metadata    map[string]interface{} `json:"metadata" example:"revenue:129.99,utm_source:google"`
}

// PublishEventsBulkRequest represents a bulk event submission
type PublishEventsBulkRequest struct {
	Events []PublishEventRequest `json:"events" binding:"required,min=1,max=1000,dive"`
}

// AnalyticsRequest represents the shared query parameters of the metric endpoints
type AnalyticsRequest struct {
	AccountID string `form:"account_id" binding:"required" example:"acct_merchant_42"`
	Period    string `form:"period" example:"month"`
	StartDate string `form:"start_date" example:"2026-08-01"`
	EndDate   string `form:"end_date" example:"2026-08-07"`
	Plan      string `form:"plan" example:"growth"`
}
