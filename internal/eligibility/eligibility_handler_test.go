package eligibility_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kaleab-kali/FPPMS-sub005/internal/eligibility"
	eligibilityerrors "github.com/kaleab-kali/FPPMS-sub005/internal/eligibility/errors"
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

type fakeEligibilityService struct {
	evaluateTenantFn func(ctx context.Context, tenantID string, now time.Time) (eligibility.EvaluationSummary, error)
	getAllFn         func(ctx context.Context, tenantID, status string) ([]eligibility.EligibilityRecordResponse, error)
	getByIDFn        func(ctx context.Context, tenantID, id string) (eligibility.EligibilityRecordResponse, error)
	approveFn        func(ctx context.Context, tenantID, actorID, id string) (eligibility.EligibilityRecordResponse, error)
}

func (f *fakeEligibilityService) EvaluateTenant(ctx context.Context, tenantID string, now time.Time) (eligibility.EvaluationSummary, error) {
	return f.evaluateTenantFn(ctx, tenantID, now)
}
func (f *fakeEligibilityService) GetAll(ctx context.Context, tenantID, status string) ([]eligibility.EligibilityRecordResponse, error) {
	return f.getAllFn(ctx, tenantID, status)
}
func (f *fakeEligibilityService) GetByID(ctx context.Context, tenantID, id string) (eligibility.EligibilityRecordResponse, error) {
	return f.getByIDFn(ctx, tenantID, id)
}
func (f *fakeEligibilityService) Approve(ctx context.Context, tenantID, actorID, id string) (eligibility.EligibilityRecordResponse, error) {
	return f.approveFn(ctx, tenantID, actorID, id)
}

func TestEligibilityHandler_Evaluate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tenantID := uuid.New().String()

		svc := &fakeEligibilityService{
			evaluateTenantFn: func(ctx context.Context, tid string, now time.Time) (eligibility.EvaluationSummary, error) {
				assert.Equal(t, tenantID, tid)
				assert.False(t, now.IsZero())
				return eligibility.EvaluationSummary{Evaluated: 5, Created: 2, Skipped: 3}, nil
			},
		}

		h := eligibility.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/eligibility/evaluate", nil)
		c.Set("tenant_id", tenantID)

		h.Evaluate(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got eligibility.EvaluationSummary
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, 5, got.Evaluated)
		assert.Equal(t, 2, got.Created)
		assert.Equal(t, 3, got.Skipped)
	})

	t.Run("negative service error", func(t *testing.T) {
		svc := &fakeEligibilityService{
			evaluateTenantFn: func(ctx context.Context, tenantID string, now time.Time) (eligibility.EvaluationSummary, error) {
				return eligibility.EvaluationSummary{}, errors.New("evaluation failed")
			},
		}
		h := eligibility.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/eligibility/evaluate", nil)

		h.Evaluate(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	})
}

func TestEligibilityHandler_GetAll(t *testing.T) {
	t.Run("passes status filter through", func(t *testing.T) {
		svc := &fakeEligibilityService{
			getAllFn: func(ctx context.Context, tenantID, status string) ([]eligibility.EligibilityRecordResponse, error) {
				assert.Equal(t, "ELIGIBLE", status)
				return []eligibility.EligibilityRecordResponse{
					{ID: uuid.New().String(), Status: "ELIGIBLE", ProposedStep: 1},
				}, nil
			},
		}

		h := eligibility.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/eligibility?status=ELIGIBLE", nil)
		c.Set("tenant_id", uuid.New().String())

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got []eligibility.EligibilityRecordResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 1)
		assert.Equal(t, "ELIGIBLE", got[0].Status)
	})

	t.Run("negative unknown status filter", func(t *testing.T) {
		svc := &fakeEligibilityService{
			getAllFn: func(ctx context.Context, tenantID, status string) ([]eligibility.EligibilityRecordResponse, error) {
				return nil, eligibilityerrors.ErrInvalidStatusFilter
			},
		}
		h := eligibility.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/eligibility?status=BOGUS", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestEligibilityHandler_Approve(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tenantID := uuid.New().String()
		actorID := uuid.New().String()
		recordID := uuid.New().String()

		svc := &fakeEligibilityService{
			approveFn: func(ctx context.Context, tid, aid, id string) (eligibility.EligibilityRecordResponse, error) {
				assert.Equal(t, tenantID, tid)
				assert.Equal(t, actorID, aid)
				assert.Equal(t, recordID, id)
				return eligibility.EligibilityRecordResponse{
					ID:        recordID,
					Status:    "APPROVED",
					DecidedBy: &aid,
				}, nil
			},
		}

		h := eligibility.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/eligibility/"+recordID+"/approve", nil)
		c.Params = []gin.Param{{Key: "id", Value: recordID}}
		c.Set("tenant_id", tenantID)
		c.Set("employee_id", actorID)

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got eligibility.EligibilityRecordResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "APPROVED", got.Status)
		assert.NotNil(t, got.DecidedBy)
		assert.Equal(t, actorID, *got.DecidedBy)
	})

	t.Run("negative missing actor", func(t *testing.T) {
		h := eligibility.NewHandler(&fakeEligibilityService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		recordID := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodPost, "/eligibility/"+recordID+"/approve", nil)
		c.Params = []gin.Param{{Key: "id", Value: recordID}}
		c.Set("tenant_id", uuid.New().String())

		h.Approve(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	})

	t.Run("negative concurrent decision maps to conflict", func(t *testing.T) {
		svc := &fakeEligibilityService{
			approveFn: func(ctx context.Context, tenantID, actorID, id string) (eligibility.EligibilityRecordResponse, error) {
				return eligibility.EligibilityRecordResponse{}, eligibilityerrors.ErrRecordModified
			},
		}
		h := eligibility.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		recordID := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodPost, "/eligibility/"+recordID+"/approve", nil)
		c.Params = []gin.Param{{Key: "id", Value: recordID}}
		c.Set("tenant_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("negative not found", func(t *testing.T) {
		svc := &fakeEligibilityService{
			approveFn: func(ctx context.Context, tenantID, actorID, id string) (eligibility.EligibilityRecordResponse, error) {
				return eligibility.EligibilityRecordResponse{}, eligibilityerrors.ErrRecordNotFound
			},
		}
		h := eligibility.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		recordID := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodPost, "/eligibility/"+recordID+"/approve", nil)
		c.Params = []gin.Param{{Key: "id", Value: recordID}}
		c.Set("tenant_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())

		h.Approve(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}
