package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CineLoot_Go/internal/domain"
)

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewBufferString(s)
	}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func sampleOutcome() *domain.SpinOutcome {
	id := uuid.MustParse("6f1c2b4e-8a55-4d51-9d0a-5f3f0f8d9b11")
	remaining := 2
	critics, audience, imdb := 90, 88, 8.1
	return &domain.SpinOutcome{
		SpinID: &id,
		Content: domain.ContentItem{
			ID: 42, Type: domain.ContentTypeMovie, Title: "Heat",
			CriticsScore: &critics, AudienceScore: &audience, IMDBRating: &imdb, IsActive: true,
		},
		Rarity:         domain.RarityInfo{Tier: domain.RarityLegendary, Label: "Legendary", Icon: "🟠"},
		QualityScore:   96,
		WasNewUnlock:   true,
		SpinsRemaining: &remaining,
	}
}

func TestHandleSpin(t *testing.T) {
	resetAt := time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		body           interface{}
		setup          func(*MockSpinService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			body: SpinRequest{UserID: "u1", Type: "movie"},
			setup: func(m *MockSpinService) {
				m.On("OpenLootbox", mock.Anything, "u1", "movie").Return(sampleOutcome(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"was_new_unlock":true`,
		},
		{
			name:           "Invalid JSON",
			body:           "not json",
			setup:          func(*MockSpinService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Unknown field",
			body:           `{"user_id":"u1","type":"movie","extra":1}`,
			setup:          func(*MockSpinService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Missing user",
			body:           SpinRequest{Type: "movie"},
			setup:          func(*MockSpinService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"user_id":"This field is required"`,
		},
		{
			name:           "Invalid type",
			body:           SpinRequest{UserID: "u1", Type: "anime"},
			setup:          func(*MockSpinService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidTypeError,
		},
		{
			name: "Daily limit",
			body: SpinRequest{UserID: "u1", Type: "series"},
			setup: func(m *MockSpinService) {
				m.On("OpenLootbox", mock.Anything, "u1", "series").
					Return(nil, domain.DailyLimitError{UserID: "u1", ResetAt: resetAt})
			},
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   `"reset_at":"2026-05-11T00:00:00Z","remaining":0`,
		},
		{
			name: "No content",
			body: SpinRequest{UserID: "u1", Type: "movie"},
			setup: func(m *MockSpinService) {
				m.On("OpenLootbox", mock.Anything, "u1", "movie").
					Return(nil, fmt.Errorf("%w: movie", domain.ErrNoContentAvailable))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   ErrMsgNoContentError,
		},
		{
			name: "Unknown user",
			body: SpinRequest{UserID: "ghost", Type: "movie"},
			setup: func(m *MockSpinService) {
				m.On("OpenLootbox", mock.Anything, "ghost", "movie").Return(nil, domain.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgUserNotFoundError,
		},
		{
			name: "Persistence failure hides details",
			body: SpinRequest{UserID: "u1", Type: "movie"},
			setup: func(m *MockSpinService) {
				m.On("OpenLootbox", mock.Anything, "u1", "movie").
					Return(nil, fmt.Errorf("%w: connection reset by peer", domain.ErrPersistenceFailure))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgGenericServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSpinService)
			tt.setup(svc)
			h := NewSpinHandler(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/spin", jsonBody(t, tt.body))
			w := httptest.NewRecorder()
			h.HandleSpin(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			assert.NotContains(t, w.Body.String(), "connection reset")
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleSpin_ResponseShape(t *testing.T) {
	svc := new(MockSpinService)
	svc.On("OpenLootbox", mock.Anything, "u1", "movie").Return(sampleOutcome(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/spin", jsonBody(t, SpinRequest{UserID: "u1", Type: "movie"}))
	w := httptest.NewRecorder()
	NewSpinHandler(svc).HandleSpin(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got domain.SpinOutcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.RarityLegendary, got.Rarity.Tier)
	assert.Equal(t, 96, got.QualityScore)
	require.NotNil(t, got.SpinsRemaining)
	assert.Equal(t, 2, *got.SpinsRemaining)
	assert.Contains(t, w.Body.String(), `"tier":"legendary"`)
}

func TestHandleGuestSpin(t *testing.T) {
	outcome := sampleOutcome()
	outcome.SpinID = nil
	outcome.SpinsRemaining = nil

	svc := new(MockSpinService)
	svc.On("OpenGuestLootbox", mock.Anything, "series").Return(outcome, nil)
	h := NewSpinHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/guest/spin", jsonBody(t, GuestSpinRequest{Type: "series"}))
	w := httptest.NewRecorder()
	h.HandleGuestSpin(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "spin_id")
	assert.NotContains(t, w.Body.String(), "spins_remaining")

	req = httptest.NewRequest(http.MethodPost, "/api/v1/guest/spin", jsonBody(t, GuestSpinRequest{}))
	w = httptest.NewRecorder()
	h.HandleGuestSpin(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}

func TestHandleStatus(t *testing.T) {
	status := &domain.SpinStatus{Used: 1, Remaining: 2, DailyLimit: 3, ResetDate: "2026-05-10", Timezone: "UTC"}

	svc := new(MockSpinService)
	svc.On("GetStatus", mock.Anything, "u1").Return(status, nil)
	svc.On("GetStatus", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)
	h := NewSpinHandler(svc)

	w := httptest.NewRecorder()
	h.HandleStatus(w, httptest.NewRequest(http.MethodGet, "/api/v1/spin/status?user_id=u1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"remaining":2`)

	w = httptest.NewRecorder()
	h.HandleStatus(w, httptest.NewRequest(http.MethodGet, "/api/v1/spin/status?user_id=ghost", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.HandleStatus(w, httptest.NewRequest(http.MethodGet, "/api/v1/spin/status", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing user_id query parameter")

	svc.AssertExpectations(t)
}

func TestHandleGrant(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setup          func(*MockSpinService)
		expectedStatus int
	}{
		{
			name: "Success",
			body: GrantRequest{UserID: "u1", Amount: 5},
			setup: func(m *MockSpinService) {
				m.On("GrantOverrideSpins", mock.Anything, "u1", 5).Return(&domain.SpinStatus{AdminOverride: 5}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Zero amount",
			body:           GrantRequest{UserID: "u1", Amount: 0},
			setup:          func(*MockSpinService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Negative amount",
			body:           GrantRequest{UserID: "u1", Amount: -3},
			setup:          func(*MockSpinService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Service rejects amount",
			body: GrantRequest{UserID: "u1", Amount: 1},
			setup: func(m *MockSpinService) {
				m.On("GrantOverrideSpins", mock.Anything, "u1", 1).Return(nil, domain.ErrInvalidAmount)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSpinService)
			tt.setup(svc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/spins/grant", jsonBody(t, tt.body))
			NewSpinHandler(svc).HandleGrant(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleSetTimezone(t *testing.T) {
	svc := new(MockSpinService)
	svc.On("SetTimezone", mock.Anything, "u1", "Asia/Tokyo").Return(&domain.SpinStatus{Timezone: "Asia/Tokyo"}, nil)
	svc.On("SetTimezone", mock.Anything, "u1", "").Return(&domain.SpinStatus{Timezone: "UTC"}, nil)
	h := NewSpinHandler(svc)

	w := httptest.NewRecorder()
	h.HandleSetTimezone(w, httptest.NewRequest(http.MethodPut, "/api/v1/user/timezone",
		jsonBody(t, TimezoneRequest{UserID: "u1", Timezone: "Asia/Tokyo"})))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Asia/Tokyo")

	w = httptest.NewRecorder()
	h.HandleSetTimezone(w, httptest.NewRequest(http.MethodPut, "/api/v1/user/timezone",
		jsonBody(t, TimezoneRequest{UserID: "u1"})))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.HandleSetTimezone(w, httptest.NewRequest(http.MethodPut, "/api/v1/user/timezone",
		jsonBody(t, TimezoneRequest{UserID: "u1", Timezone: "Mars/Olympus"})))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"timezone":"Unknown timezone"`)

	svc.AssertExpectations(t)
}

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrInvalidType, http.StatusBadRequest},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrInvalidTimezone, http.StatusBadRequest},
		{domain.ErrDailyLimitReached, http.StatusTooManyRequests},
		{fmt.Errorf("wrapped: %w", domain.ErrUserNotFound), http.StatusNotFound},
		{domain.ErrNoContentAvailable, http.StatusServiceUnavailable},
		{domain.ErrPersistenceFailure, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
		{nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		status, msg := mapServiceErrorToUserMessage(tt.err)
		assert.Equal(t, tt.status, status, "%v", tt.err)
		assert.NotEmpty(t, msg)
	}
}
