package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval8/ClassBookingService/internal/api/handlers"
	getAvailability "github.com/dkoval8/ClassBookingService/internal/usecase/get_availability"
)

type fakeUseCase struct {
	executeFunc func(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error)
}

func (f *fakeUseCase) Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	return f.executeFunc(ctx, req)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func doRequest(t *testing.T, uc GetAvailabilityUseCase, url string) *httptest.ResponseRecorder {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/class-assignments/{assignmentId}/available-slots", NewHandler(uc, noopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ReturnsSlots(t *testing.T) {
	uc := &fakeUseCase{
		executeFunc: func(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
			assert.Equal(t, int64(10), req.ClassAssignmentID)
			assert.Equal(t, "2026-09-02", req.Date.Format("2006-01-02"))
			return &getAvailability.Response{
				Date:              req.Date,
				ClassAssignmentID: req.ClassAssignmentID,
				Slots: []getAvailability.Slot{
					{SlotAssignmentID: 101, StartTime: "09:00", EndTime: "10:00", Capacity: 3, AvailableSpots: 2},
					{SlotAssignmentID: 102, StartTime: "12:00", EndTime: "13:00", Capacity: 2, AvailableSpots: 2},
				},
			}, nil
		},
	}

	rec := doRequest(t, uc, "/api/v1/class-assignments/10/available-slots?date=2026-09-02")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-09-02", resp.Date)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime)
	assert.Equal(t, 2, resp.Slots[0].AvailableSpots)
}

func TestHandle_EmptySlotsIsValidResponse(t *testing.T) {
	uc := &fakeUseCase{
		executeFunc: func(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
			return &getAvailability.Response{
				Date:              req.Date,
				ClassAssignmentID: req.ClassAssignmentID,
				Slots:             []getAvailability.Slot{},
			}, nil
		},
	}

	rec := doRequest(t, uc, "/api/v1/class-assignments/10/available-slots?date=2026-09-02")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2026-09-02","classAssignmentId":10,"slots":[]}`, rec.Body.String())
}

func TestHandle_InvalidAssignmentID(t *testing.T) {
	uc := &fakeUseCase{
		executeFunc: func(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
			t.Fatal("use case must not be called")
			return nil, nil
		},
	}

	rec := doRequest(t, uc, "/api/v1/class-assignments/abc/available-slots?date=2026-09-02")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.KindInvalidInput, resp.Error.Kind)
}

func TestHandle_MissingOrBadDate(t *testing.T) {
	uc := &fakeUseCase{
		executeFunc: func(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
			t.Fatal("use case must not be called")
			return nil, nil
		},
	}

	for _, url := range []string{
		"/api/v1/class-assignments/10/available-slots",
		"/api/v1/class-assignments/10/available-slots?date=02.09.2026",
	} {
		rec := doRequest(t, uc, url)
		assert.Equal(t, http.StatusBadRequest, rec.Code, url)

		var resp handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "date", resp.Error.Field, url)
	}
}

func TestHandle_AssignmentNotFound(t *testing.T) {
	uc := &fakeUseCase{
		executeFunc: func(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
			return nil, getAvailability.ErrClassAssignmentNotFound
		},
	}

	rec := doRequest(t, uc, "/api/v1/class-assignments/999/available-slots?date=2026-09-02")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.KindInvalidSlot, resp.Error.Kind)
}

func TestHandle_InternalErrorIsOpaque(t *testing.T) {
	uc := &fakeUseCase{
		executeFunc: func(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
			return nil, getAvailability.ErrInternal
		},
	}

	rec := doRequest(t, uc, "/api/v1/class-assignments/10/available-slots?date=2026-09-02")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.KindInternal, resp.Error.Kind)
	assert.NotContains(t, rec.Body.String(), "internal error:")
}
