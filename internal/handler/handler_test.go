package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/analytics"
	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/dto"
)

const (
	testTimestamp int64 = 1766702551
)

// MockEventService is a mock implementation of service.EventServicer
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) ProcessEvent(event *dto.PublishEventRequest) (string, error) {
	args := m.Called(event)
	return args.String(0), args.Error(1)
}

func (m *MockEventService) ProcessBulkEvents(events []dto.PublishEventRequest) ([]string, []string, error) {
	args := m.Called(events)
	return args.Get(0).([]string), args.Get(1).([]string), args.Error(2)
}

// MockAnalyticsService is a mock implementation of service.AnalyticsServicer
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) GetLTV(ctx context.Context, req *dto.AnalyticsRequest) (*dto.GetLTVResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GetLTVResponse), args.Error(1)
}

func (m *MockAnalyticsService) GetCAC(ctx context.Context, req *dto.AnalyticsRequest) (*dto.GetCACResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GetCACResponse), args.Error(1)
}

func (m *MockAnalyticsService) GetSegments(ctx context.Context, req *dto.AnalyticsRequest) (*dto.GetSegmentsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GetSegmentsResponse), args.Error(1)
}

func newTestHandler() (*Handler, *MockEventService, *MockAnalyticsService) {
	mockEvents := new(MockEventService)
	mockAnalytics := new(MockAnalyticsService)
	h := NewHandler(mockEvents, mockAnalytics, zap.NewNop())
	return h, mockEvents, mockAnalytics
}

func TestHandler_HealthCheck(t *testing.T) {
	handler, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ok", response["status"])
}

func TestHandler_GetLTV_Success(t *testing.T) {
	handler, _, mockAnalytics := newTestHandler()

	expected := &dto.GetLTVResponse{
		Summary:   dto.LTVSummary{TotalCustomers: 1, TotalRevenue: 500, AvgLTV: 500},
		Customers: []dto.CustomerLTV{{IdentityKey: "s1", Orders: 3, Revenue: 500}},
		Period:    dto.PeriodInfo{Period: "month"},
	}
	mockAnalytics.On("GetLTV", mock.Anything, mock.MatchedBy(func(req *dto.AnalyticsRequest) bool {
		return req.AccountID == "acct_1" && req.Period == "month"
	})).Return(expected, nil)

	req := httptest.NewRequest(http.MethodGet, "/analytics/ltv?account_id=acct_1&period=month", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.GetLTVResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 1, response.Summary.TotalCustomers)
	assert.Equal(t, "s1", response.Customers[0].IdentityKey)
	mockAnalytics.AssertExpectations(t)
}

func TestHandler_GetLTV_MissingAccountID(t *testing.T) {
	handler, _, mockAnalytics := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/analytics/ltv", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "validation_error", response.Error)
	mockAnalytics.AssertNotCalled(t, "GetLTV")
}

func TestHandler_GetLTV_InvalidWindowIsBadRequest(t *testing.T) {
	handler, _, mockAnalytics := newTestHandler()

	windowErr := fmt.Errorf("%w: requested range of 30 days exceeds the plan maximum of 7 days", analytics.ErrInvalidWindow)
	mockAnalytics.On("GetLTV", mock.Anything, mock.Anything).Return(nil, windowErr)

	req := httptest.NewRequest(http.MethodGet, "/analytics/ltv?account_id=acct_1&period=custom&start_date=2026-07-01&end_date=2026-07-31", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "validation_error", response.Error)
	assert.Contains(t, response.Message, "30 days")
}

func TestHandler_GetLTV_UpstreamFailureIsInternalError(t *testing.T) {
	handler, _, mockAnalytics := newTestHandler()

	mockAnalytics.On("GetLTV", mock.Anything, mock.Anything).
		Return(nil, errors.New("failed to fetch completion events: clickhouse unavailable"))

	req := httptest.NewRequest(http.MethodGet, "/analytics/ltv?account_id=acct_1", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "internal_error", response.Error)
}

func TestHandler_GetCAC_Success(t *testing.T) {
	handler, _, mockAnalytics := newTestHandler()

	expected := &dto.GetCACResponse{
		Summary:  dto.CACSummary{TotalNewCustomers: 1, AvgCAC: 45.50},
		Channels: []dto.ChannelStats{{Channel: "google", Conversions: 1, Revenue: 50}},
		Period:   dto.PeriodInfo{Period: "week"},
		Note:     analytics.CACNote,
	}
	mockAnalytics.On("GetCAC", mock.Anything, mock.Anything).Return(expected, nil)

	req := httptest.NewRequest(http.MethodGet, "/analytics/cac?account_id=acct_1&period=week", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.GetCACResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "google", response.Channels[0].Channel)
	assert.Equal(t, analytics.CACNote, response.Note)
}

func TestHandler_GetSegments_Success(t *testing.T) {
	handler, _, mockAnalytics := newTestHandler()

	expected := &dto.GetSegmentsResponse{
		Summary: dto.SegmentsSummary{TotalCustomers: 2},
		Segments: []dto.SegmentData{
			{Name: "vip", Metrics: dto.SegmentMetrics{Customers: 1}},
			{Name: "frequent", Metrics: dto.SegmentMetrics{Customers: 1}},
		},
		Period: dto.PeriodInfo{Period: "month"},
	}
	mockAnalytics.On("GetSegments", mock.Anything, mock.Anything).Return(expected, nil)

	req := httptest.NewRequest(http.MethodGet, "/analytics/segments?account_id=acct_1", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.GetSegmentsResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Segments, 2)
}

func TestHandler_PublishEvent_Success(t *testing.T) {
	handler, mockEvents, _ := newTestHandler()

	eventReq := dto.PublishEventRequest{
		AccountID: "acct_1",
		SessionID: "sess_1",
		EventType: "checkout_complete",
		Timestamp: testTimestamp,
	}

	mockEvents.On("ProcessEvent", &eventReq).Return("event-id-123", nil)

	body, _ := json.Marshal(eventReq)
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var response dto.PublishEventResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "event-id-123", response.EventID)
	assert.Equal(t, "accepted", response.Status)
	mockEvents.AssertExpectations(t)
}

func TestHandler_PublishEvent_InvalidJSON(t *testing.T) {
	handler, mockEvents, _ := newTestHandler()

	invalidJSON := []byte(`{"event_type": "checkout_start", invalid}`)
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(invalidJSON))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "validation_error", response.Error)
	mockEvents.AssertNotCalled(t, "ProcessEvent")
}

func TestHandler_PublishEvent_MissingRequiredFields(t *testing.T) {
	handler, mockEvents, _ := newTestHandler()

	body, _ := json.Marshal(map[string]interface{}{"event_type": "checkout_start"})
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockEvents.AssertNotCalled(t, "ProcessEvent")
}

func TestHandler_PublishEventsBulk_Success(t *testing.T) {
	handler, mockEvents, _ := newTestHandler()

	bulkReq := dto.PublishEventsBulkRequest{
		Events: []dto.PublishEventRequest{
			{AccountID: "acct_1", SessionID: "s1", EventType: "checkout_start", Timestamp: testTimestamp},
			{AccountID: "acct_1", SessionID: "s2", EventType: "checkout_start", Timestamp: testTimestamp},
		},
	}

	mockEvents.On("ProcessBulkEvents", bulkReq.Events).Return([]string{"id1", "id2"}, []string(nil), nil)

	body, _ := json.Marshal(bulkReq)
	req := httptest.NewRequest(http.MethodPost, "/events/bulk", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var response dto.PublishBulkEventsResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 2, response.Accepted)
	assert.Equal(t, 0, response.Rejected)
	mockEvents.AssertExpectations(t)
}
