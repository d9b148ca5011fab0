package history_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kaleab-kali/FPPMS-sub005/internal/history"
	historyerrors "github.com/kaleab-kali/FPPMS-sub005/internal/history/errors"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeHistoryService struct {
	timelineFn      func(ctx context.Context, tenantID, employeeID string) (history.TimelineResponse, error)
	eventsInRangeFn func(ctx context.Context, tenantID string, from, to time.Time) ([]history.ProgressionEventResponse, error)
	getByIDFn       func(ctx context.Context, tenantID, id string) (history.ProgressionEventResponse, error)
}

func (f *fakeHistoryService) Timeline(ctx context.Context, tenantID, employeeID string) (history.TimelineResponse, error) {
	return f.timelineFn(ctx, tenantID, employeeID)
}
func (f *fakeHistoryService) EventsInRange(ctx context.Context, tenantID string, from, to time.Time) ([]history.ProgressionEventResponse, error) {
	return f.eventsInRangeFn(ctx, tenantID, from, to)
}
func (f *fakeHistoryService) GetByID(ctx context.Context, tenantID, id string) (history.ProgressionEventResponse, error) {
	return f.getByIDFn(ctx, tenantID, id)
}

func TestHistoryHandler_Timeline(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tenantID := uuid.New().String()
		employeeID := uuid.New().String()

		svc := &fakeHistoryService{
			timelineFn: func(ctx context.Context, tid, eid string) (history.TimelineResponse, error) {
				assert.Equal(t, tenantID, tid)
				assert.Equal(t, employeeID, eid)
				return history.TimelineResponse{
					EmployeeID: employeeID,
					Events: []history.ProgressionEventResponse{
						{ID: uuid.New().String(), Kind: "STEP_INCREMENT", FromStep: 0, ToStep: 1},
					},
				}, nil
			},
		}

		h := history.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/history/employees/"+employeeID, nil)
		c.Params = []gin.Param{{Key: "employeeId", Value: employeeID}}
		c.Set("tenant_id", tenantID)

		h.Timeline(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got history.TimelineResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, employeeID, got.EmployeeID)
		assert.Len(t, got.Events, 1)
		assert.Equal(t, "STEP_INCREMENT", got.Events[0].Kind)
	})
}

func TestHistoryHandler_EventsInRange(t *testing.T) {
	t.Run("explicit range is parsed and forwarded", func(t *testing.T) {
		svc := &fakeHistoryService{
			eventsInRangeFn: func(ctx context.Context, tenantID string, from, to time.Time) ([]history.ProgressionEventResponse, error) {
				assert.Equal(t, "2025-01-01", from.Format("2006-01-02"))
				assert.Equal(t, "2025-06-30", to.Format("2006-01-02"))
				return []history.ProgressionEventResponse{}, nil
			},
		}

		h := history.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/history/events?from=2025-01-01&to=2025-06-30", nil)
		c.Set("tenant_id", uuid.New().String())

		h.EventsInRange(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative malformed from date", func(t *testing.T) {
		h := history.NewHandler(&fakeHistoryService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/history/events?from=01-01-2025", nil)

		h.EventsInRange(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
		assert.Equal(t, historyerrors.ErrInvalidDateFormat.Message, env.Error.Message)
	})

	t.Run("negative inverted range", func(t *testing.T) {
		svc := &fakeHistoryService{
			eventsInRangeFn: func(ctx context.Context, tenantID string, from, to time.Time) ([]history.ProgressionEventResponse, error) {
				return nil, historyerrors.ErrInvalidDateRange
			},
		}
		h := history.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/history/events?from=2025-06-30&to=2025-01-01", nil)

		h.EventsInRange(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestHistoryHandler_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		eventID := uuid.New().String()

		svc := &fakeHistoryService{
			getByIDFn: func(ctx context.Context, tenantID, id string) (history.ProgressionEventResponse, error) {
				assert.Equal(t, eventID, id)
				return history.ProgressionEventResponse{ID: eventID, Kind: "MANUAL_JUMP", ToStep: 4}, nil
			},
		}

		h := history.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/history/events/"+eventID, nil)
		c.Params = []gin.Param{{Key: "id", Value: eventID}}
		c.Set("tenant_id", uuid.New().String())

		h.GetByID(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got history.ProgressionEventResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, eventID, got.ID)
		assert.Equal(t, "MANUAL_JUMP", got.Kind)
	})

	t.Run("negative not found", func(t *testing.T) {
		svc := &fakeHistoryService{
			getByIDFn: func(ctx context.Context, tenantID, id string) (history.ProgressionEventResponse, error) {
				return history.ProgressionEventResponse{}, historyerrors.ErrEventNotFound
			},
		}
		h := history.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		eventID := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodGet, "/history/events/"+eventID, nil)
		c.Params = []gin.Param{{Key: "id", Value: eventID}}

		h.GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}
