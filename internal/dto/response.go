package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"account_id is required"`
}

// PublishEventResponse represents a successful event ingestion response
type PublishEventResponse struct {
	EventID string `json:"event_id" example:"evt_1a2b3c4d5e6f"`
	Status  string `json:"status" example:"accepted"`
}

// PublishBulkEventsResponse represents a successful bulk event ingestion response
type PublishBulkEventsResponse struct {
	Accepted int      `json:"accepted" example:"5"`
	Rejected int      `json:"rejected" example:"0"`
	EventIDs []string `json:"event_ids,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// PeriodInfo echoes the resolved reporting window
type PeriodInfo struct {
	Period string `json:"period" example:"month"`
	From   int64  `json:"from" example:"1723475612"`
	To     int64  `json:"to" example:"1726067612"`
}

// LTVSegmentCounts counts customers per relative value segment
type LTVSegmentCounts struct {
	High   int `json:"high" example:"12"`
	Medium int `json:"medium" example:"45"`
	Low    int `json:"low" example:"30"`
}

// LTVSummary represents the LTV roll-up
type LTVSummary struct {
	TotalCustomers       int              `json:"total_customers" example:"87"`
	TotalRevenue         float64          `json:"total_revenue" example:"10450.20"`
	AvgLTV               float64          `json:"avg_ltv" example:"120.12"`
	AvgOrdersPerCustomer float64          `json:"avg_orders_per_customer" example:"1.4"`
	RecurringRate        float64          `json:"recurring_rate" example:"0.23"`
	LTVSegments          LTVSegmentCounts `json:"ltv_segments"`
}

// CustomerLTV represents a single customer row in the LTV detail list
type CustomerLTV struct {
	IdentityKey        string  `json:"identity_key" example:"cust_551"`
	Orders             int     `json:"orders" example:"3"`
	Revenue            float64 `json:"revenue" example:"500"`
	AvgOrderValue      float64 `json:"avg_order_value" example:"166.67"`
	PurchaseFrequency  float64 `json:"purchase_frequency" example:"2.5"`
	DaysSinceLastOrder float64 `json:"days_since_last_order" example:"12"`
	IsRecurring        bool    `json:"is_recurring" example:"true"`
	Segment            string  `json:"segment" example:"high"`
	FirstOrderAt       int64   `json:"first_order_at" example:"1723475612"`
	LastOrderAt        int64   `json:"last_order_at" example:"1726067612"`
}

// LTVBySegment averages LTV across recurring vs single-order customers
type LTVBySegment struct {
	Recurring float64 `json:"recurring" example:"240.10"`
	New       float64 `json:"new" example:"85.30"`
}

// GetLTVResponse represents the LTV endpoint payload
type GetLTVResponse struct {
	Summary      LTVSummary    `json:"summary"`
	Customers    []CustomerLTV `json:"customers"`
	LTVBySegment LTVBySegment  `json:"ltv_by_segment"`
	Period       PeriodInfo    `json:"period"`
}

// CACSummary represents the CAC roll-up
type CACSummary struct {
	TotalNewCustomers            int     `json:"total_new_customers" example:"42"`
	AvgCAC                       float64 `json:"avg_cac" example:"31.50"`
	AvgLTV                       float64 `json:"avg_ltv" example:"96.40"`
	LTVCACRatio                  float64 `json:"ltv_cac_ratio" example:"3.06"`
	TotalEstimatedMarketingSpend float64 `json:"total_estimated_marketing_spend" example:"1323.00"`
	AcquisitionEfficiency        string  `json:"acquisition_efficiency" example:"excellent"`
}

// ChannelStats represents a single channel row in the CAC detail list
type ChannelStats struct {
	Channel        string  `json:"channel" example:"google"`
	Sessions       int     `json:"sessions" example:"320"`
	Conversions    int     `json:"conversions" example:"18"`
	ConversionRate float64 `json:"conversion_rate" example:"0.056"`
	Revenue        float64 `json:"revenue" example:"864.00"`
	AvgOrderValue  float64 `json:"avg_order_value" example:"48.00"`
	EstimatedCAC   float64 `json:"estimated_cac" example:"45.50"`
	EstimatedSpend float64 `json:"estimated_spend" example:"819.00"`
}

// GetCACResponse represents the CAC endpoint payload
type GetCACResponse struct {
	Summary  CACSummary     `json:"summary"`
	Channels []ChannelStats `json:"channels"`
	Period   PeriodInfo     `json:"period"`
	Note     string         `json:"note" example:"CAC values are estimated from industry-average channel costs, not measured ad spend"`
}

// SegmentsSummary represents the segmentation roll-up
type SegmentsSummary struct {
	TotalCustomers int     `json:"total_customers" example:"87"`
	TotalRevenue   float64 `json:"total_revenue" example:"10450.20"`
	OverallAvgLTV  float64 `json:"overall_avg_ltv" example:"120.12"`
	AvgAOV         float64 `json:"avg_aov" example:"84.60"`
	AvgOrders      float64 `json:"avg_orders" example:"1.4"`
}

// SegmentMetrics aggregates the customers carrying one segment tag
type SegmentMetrics struct {
	Customers     int     `json:"customers" example:"9"`
	TotalRevenue  float64 `json:"total_revenue" example:"4820.00"`
	AvgOrderValue float64 `json:"avg_order_value" example:"210.40"`
	AvgOrders     float64 `json:"avg_orders" example:"3.1"`
}

// SegmentData represents a single behavioral segment
type SegmentData struct {
	Name        string         `json:"name" example:"vip"`
	Description string         `json:"description" example:"Average order value at least one standard deviation above the window mean"`
	Metrics     SegmentMetrics `json:"metrics"`
}

// GetSegmentsResponse represents the segments endpoint payload
type GetSegmentsResponse struct {
	Summary  SegmentsSummary `json:"summary"`
	Segments []SegmentData   `json:"segments"`
	Period   PeriodInfo      `json:"period"`
}
