package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-StudioService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	gotReq createBooking.Request
	resp   *createBooking.Response
	err    error
	called bool
}

func (f *fakeUseCase) Execute(_ context.Context, req createBooking.Request) (*createBooking.Response, error) {
	f.called = true
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// serve прогоняет запрос через Auth middleware, как в боевом роутере
func serve(uc *fakeUseCase, userID string, body string) *httptest.ResponseRecorder {
	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()

	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{
		BookingID:     100,
		Status:        "confirmed",
		ClassTypeName: "Yoga Flow",
		StartTime:     "2026-09-10T18:00:00Z",
		CreditsUsed:   2,
		NewBalance:    8,
	}}

	rec := serve(uc, "7", `{"classScheduleId": 5}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), uc.gotReq.UserID)
	assert.Equal(t, int64(5), uc.gotReq.ClassScheduleID)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(100), resp.BookingID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 8, resp.NewBalance)
}

func TestHandle_MissingUser(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, "", `{"classScheduleId": 5}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, uc.called)
}

func TestHandle_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"broken json", `{"classScheduleId":`},
		{"unknown field", `{"scheduleId": 5}`},
		{"zero schedule id", `{"classScheduleId": 0}`},
		{"negative schedule id", `{"classScheduleId": -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}

			rec := serve(uc, "7", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, uc.called)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"schedule not found", createBooking.ErrScheduleNotFound, http.StatusNotFound},
		{"schedule inactive", createBooking.ErrScheduleInactive, http.StatusConflict},
		{"class started", createBooking.ErrClassInPast, http.StatusConflict},
		{"class full", createBooking.ErrClassFull, http.StatusConflict},
		{"insufficient credits", createBooking.ErrInsufficientCredits, http.StatusPaymentRequired},
		{"profile not registered", createBooking.ErrProfileNotFound, http.StatusForbidden},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err}

			rec := serve(uc, "7", `{"classScheduleId": 5}`)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}
