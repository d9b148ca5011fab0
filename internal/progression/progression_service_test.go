package progression_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/kaleab-kali/FPPMS-sub005/internal/directory"
	"github.com/kaleab-kali/FPPMS-sub005/internal/eligibility"
	"github.com/kaleab-kali/FPPMS-sub005/internal/history"
	"github.com/kaleab-kali/FPPMS-sub005/internal/messaging/kafka"
	"github.com/kaleab-kali/FPPMS-sub005/internal/paystate"
	"github.com/kaleab-kali/FPPMS-sub005/internal/progression"
	progressionerrors "github.com/kaleab-kali/FPPMS-sub005/internal/progression/errors"
	"github.com/kaleab-kali/FPPMS-sub005/internal/salaryscale"
)

type fakeRecordRepo struct {
	findByIDFn        func(ctx context.Context, tenantID, id string) (*eligibility.EligibilityRecord, error)
	updateVersionedFn func(ctx context.Context, rec *eligibility.EligibilityRecord) (int64, error)
}

func (f *fakeRecordRepo) WithTx(tx *sql.Tx) eligibility.Repository { return f }

func (f *fakeRecordRepo) Create(ctx context.Context, rec *eligibility.EligibilityRecord) error {
	return nil
}

func (f *fakeRecordRepo) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*eligibility.EligibilityRecord, error) {
	return f.findByIDFn(ctx, tenantID, id)
}

func (f *fakeRecordRepo) FindOpenByEmployee(ctx context.Context, tenantID, employeeID string) (*eligibility.EligibilityRecord, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecordRepo) FindAllByTenant(ctx context.Context, tenantID, status string) ([]eligibility.EligibilityRecord, error) {
	return nil, nil
}

func (f *fakeRecordRepo) UpdateVersioned(ctx context.Context, rec *eligibility.EligibilityRecord) (int64, error) {
	if f.updateVersionedFn != nil {
		return f.updateVersionedFn(ctx, rec)
	}
	return 1, nil
}

type fakePayStateRepo struct {
	t               *testing.T
	lockForUpdateFn func(ctx context.Context, tenantID, employeeID string) (*paystate.EmployeePayState, error)
	updateFn        func(ctx context.Context, state *paystate.EmployeePayState) error
}

func (f *fakePayStateRepo) WithTx(tx *sql.Tx) paystate.Repository {
	assert.NotNil(f.t, tx, "pay state writes must run inside the transaction")
	return f
}

func (f *fakePayStateRepo) Create(ctx context.Context, state *paystate.EmployeePayState) error {
	return nil
}

func (f *fakePayStateRepo) FindByEmployee(ctx context.Context, tenantID, employeeID string) (*paystate.EmployeePayState, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayStateRepo) FindAllByTenant(ctx context.Context, tenantID string) ([]paystate.EmployeePayState, error) {
	return nil, nil
}

func (f *fakePayStateRepo) LockForUpdate(ctx context.Context, tenantID, employeeID string) (*paystate.EmployeePayState, error) {
	return f.lockForUpdateFn(ctx, tenantID, employeeID)
}

func (f *fakePayStateRepo) Update(ctx context.Context, state *paystate.EmployeePayState) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, state)
	}
	return nil
}

type fakeLedgerRepo struct {
	t        *testing.T
	appendFn func(ctx context.Context, event *history.ProgressionEvent) error
}

func (f *fakeLedgerRepo) WithTx(tx *sql.Tx) history.Repository {
	assert.NotNil(f.t, tx, "ledger appends must run inside the transaction")
	return f
}

func (f *fakeLedgerRepo) Append(ctx context.Context, event *history.ProgressionEvent) error {
	if f.appendFn != nil {
		return f.appendFn(ctx, event)
	}
	return nil
}

func (f *fakeLedgerRepo) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*history.ProgressionEvent, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLedgerRepo) FindByEmployee(ctx context.Context, tenantID, employeeID string) ([]history.ProgressionEvent, error) {
	return nil, nil
}

func (f *fakeLedgerRepo) FindByDateRange(ctx context.Context, tenantID string, from, to time.Time) ([]history.ProgressionEvent, error) {
	return nil, nil
}

func (f *fakeLedgerRepo) CountByEmployee(ctx context.Context, tenantID, employeeID string) (int64, error) {
	return 0, nil
}

type fakeOutboxRepo struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepo) ListDue(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id, reason string) error { return nil }

type fakeEmployeeProvider struct {
	getEmployeeFn func(ctx context.Context, tenantID, employeeID string) (*directory.Employee, error)
}

func (f *fakeEmployeeProvider) ActiveEmployees(ctx context.Context, tenantID string) ([]directory.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeProvider) GetEmployee(ctx context.Context, tenantID, employeeID string) (*directory.Employee, error) {
	if f.getEmployeeFn != nil {
		return f.getEmployeeFn(ctx, tenantID, employeeID)
	}
	return &directory.Employee{ID: uuid.MustParse(employeeID)}, nil
}

type fakeScaleResolver struct {
	resolveSalaryFn func(ctx context.Context, tenantID, rankCode string, step int, asOf time.Time) (salaryscale.ResolvedSalary, error)
	activeVersionFn func(ctx context.Context, tenantID string) (*salaryscale.ScaleVersion, error)
}

func (f *fakeScaleResolver) ResolveSalary(ctx context.Context, tenantID, rankCode string, step int, asOf time.Time) (salaryscale.ResolvedSalary, error) {
	return f.resolveSalaryFn(ctx, tenantID, rankCode, step, asOf)
}

func (f *fakeScaleResolver) ActiveVersion(ctx context.Context, tenantID string) (*salaryscale.ScaleVersion, error) {
	return f.activeVersionFn(ctx, tenantID)
}

type progressionServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   progression.Service
	records   *fakeRecordRepo
	payStates *fakePayStateRepo
	ledger    *fakeLedgerRepo
	outbox    *fakeOutboxRepo
	employees *fakeEmployeeProvider
	scales    *fakeScaleResolver
}

func setupProgressionServiceTest(t *testing.T) *progressionServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	records := &fakeRecordRepo{}
	payStates := &fakePayStateRepo{t: t}
	ledger := &fakeLedgerRepo{t: t}
	outbox := &fakeOutboxRepo{}
	employees := &fakeEmployeeProvider{}
	scales := &fakeScaleResolver{}

	svc := progression.NewService(db, records, payStates, ledger, outbox, employees, scales)

	return &progressionServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		records:   records,
		payStates: payStates,
		ledger:    ledger,
		outbox:    outbox,
		employees: employees,
		scales:    scales,
	}
}

func lockNotAvailable() error {
	return &pgconn.PgError{Code: "55P03", Message: "could not obtain lock on row"}
}

func TestProgressionService_ProcessSingle(t *testing.T) {
	ctx := context.Background()
	tenantUUID := uuid.New()
	tenantID := tenantUUID.String()
	actorID := uuid.New().String()
	employeeID := uuid.New()
	recordID := uuid.New().String()
	scaleVersionID := uuid.New()
	effectiveDate := "2025-06-01"

	eligibleRecord := func() *eligibility.EligibilityRecord {
		return &eligibility.EligibilityRecord{
			ID:           uuid.MustParse(recordID),
			TenantID:     tenantUUID,
			EmployeeID:   employeeID,
			RankCode:     "R1",
			CurrentStep:  0,
			ProposedStep: 1,
			Status:       eligibility.StatusEligible,
			Version:      1,
		}
	}

	lockedState := func() *paystate.EmployeePayState {
		return &paystate.EmployeePayState{
			EmployeeID:        employeeID,
			TenantID:          tenantUUID,
			RankCode:          "R1",
			CurrentStep:       0,
			CurrentSalary:     5000,
			StepEffectiveDate: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("success awards the increment in one transaction", func(t *testing.T) {
		deps := setupProgressionServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.records.findByIDFn = func(ctx context.Context, tid, id string) (*eligibility.EligibilityRecord, error) {
			return eligibleRecord(), nil
		}
		deps.payStates.lockForUpdateFn = func(ctx context.Context, tid, eid string) (*paystate.EmployeePayState, error) {
			return lockedState(), nil
		}
		deps.scales.resolveSalaryFn = func(ctx context.Context, tid, rankCode string, step int, asOf time.Time) (salaryscale.ResolvedSalary, error) {
			assert.Equal(t, "R1", rankCode)
			assert.Equal(t, 1, step)
			assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), asOf)
			return salaryscale.ResolvedSalary{Amount: 5500, ScaleVersionID: scaleVersionID, ScaleCode: "V1"}, nil
		}

		var appended *history.ProgressionEvent
		deps.ledger.appendFn = func(ctx context.Context, event *history.ProgressionEvent) error {
			appended = event
			return nil
		}

		var updatedState *paystate.EmployeePayState
		deps.payStates.updateFn = func(ctx context.Context, state *paystate.EmployeePayState) error {
			updatedState = state
			return nil
		}

		var terminal *eligibility.EligibilityRecord
		deps.records.updateVersionedFn = func(ctx context.Context, rec *eligibility.EligibilityRecord) (int64, error) {
			terminal = rec
			return 1, nil
		}

		var staged *kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			staged = &event
			return nil
		}

		result, err := deps.service.ProcessSingle(ctx, tenantID, actorID, recordID, progression.ProcessSingleRequest{
			EffectiveDate: &effectiveDate,
		})

		assert.NoError(t, err)
		assert.Equal(t, 0, result.FromStep)
		assert.Equal(t, 1, result.ToStep)
		assert.Equal(t, int64(5500), result.AmountAfter)
		assert.Equal(t, history.KindAutomatic, result.Kind)

		assert.Equal(t, int64(5000), appended.AmountBefore)
		assert.Equal(t, int64(5500), appended.AmountAfter)
		assert.Equal(t, scaleVersionID, appended.ScaleVersionID)

		assert.Equal(t, 1, updatedState.CurrentStep)
		assert.Equal(t, int64(5500), updatedState.CurrentSalary)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), updatedState.StepEffectiveDate)

		assert.Equal(t, eligibility.StatusAwarded, terminal.Status)
		assert.NotNil(t, terminal.DecidedBy)

		assert.Equal(t, "salary.progression.awarded", staged.EventType)
		assert.Equal(t, kafka.OutboxStatusPending, staged.Status)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative awarded record is not actionable", func(t *testing.T) {
		deps := setupProgressionServiceTest(t)
		defer deps.db.Close()

		deps.records.findByIDFn = func(ctx context.Context, tid, id string) (*eligibility.EligibilityRecord, error) {
			rec := eligibleRecord()
			rec.Status = eligibility.StatusAwarded
			return rec, nil
		}

		_, err := deps.service.ProcessSingle(ctx, tenantID, actorID, recordID, progression.ProcessSingleRequest{})

		assert.ErrorIs(t, err, progressionerrors.ErrRecordNotActionable)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative locked employee", func(t *testing.T) {
		deps := setupProgressionServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.records.findByIDFn = func(ctx context.Context, tid, id string) (*eligibility.EligibilityRecord, error) {
			return eligibleRecord(), nil
		}
		deps.payStates.lockForUpdateFn = func(ctx context.Context, tid, eid string) (*paystate.EmployeePayState, error) {
			return nil, lockNotAvailable()
		}

		_, err := deps.service.ProcessSingle(ctx, tenantID, actorID, recordID, progression.ProcessSingleRequest{})

		assert.ErrorIs(t, err, progressionerrors.ErrEmployeeBusy)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative stale record after manual jump", func(t *testing.T) {
		deps := setupProgressionServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.records.findByIDFn = func(ctx context.Context, tid, id string) (*eligibility.EligibilityRecord, error) {
			return eligibleRecord(), nil
		}
		deps.payStates.lockForUpdateFn = func(ctx context.Context, tid, eid string) (*paystate.EmployeePayState, error) {
			state := lockedState()
			state.CurrentStep = 3
			return state, nil
		}

		_, err := deps.service.ProcessSingle(ctx, tenantID, actorID, recordID, progression.ProcessSingleRequest{})

		assert.ErrorIs(t, err, progressionerrors.ErrRecordStale)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative lost version race rolls everything back", func(t *testing.T) {
		deps := setupProgressionServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.records.findByIDFn = func(ctx context.Context, tid, id string) (*eligibility.EligibilityRecord, error) {
			return eligibleRecord(), nil
		}
		deps.payStates.lockForUpdateFn = func(ctx context.Context, tid, eid string) (*paystate.EmployeePayState, error) {
			return lockedState(), nil
		}
		deps.scales.resolveSalaryFn = func(ctx context.Context, tid, rankCode string, step int, asOf time.Time) (salaryscale.ResolvedSalary, error) {
			return salaryscale.ResolvedSalary{Amount: 5500, ScaleVersionID: scaleVersionID}, nil
		}
		deps.records.updateVersionedFn = func(ctx context.Context, rec *eligibility.EligibilityRecord) (int64, error) {
			return 0, nil
		}

		_, err := deps.service.ProcessSingle(ctx, tenantID, actorID, recordID, progression.ProcessSingleRequest{})

		assert.ErrorIs(t, err, progressionerrors.ErrRecordModified)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative missing pay state", func(t *testing.T) {
		deps := setupProgressionServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.records.findByIDFn = func(ctx context.Context, tid, id string) (*eligibility.EligibilityRecord, error) {
			return eligibleRecord(), nil
		}
		deps.payStates.lockForUpdateFn = func(ctx context.Context, tid, eid string) (*paystate.EmployeePayState, error) {
			return nil, sql.ErrNoRows
		}

		_, err := deps.service.ProcessSingle(ctx, tenantID, actorID, recordID, progression.ProcessSingleRequest{})

		assert.ErrorIs(t, err, progressionerrors.ErrPayStateNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestProgressionService_ProcessBatch(t *testing.T) {
	ctx := context.Background()
	tenantUUID := uuid.New()
	tenantID := tenantUUID.String()
	actorID := uuid.New().String()
	scaleVersionID := uuid.New()

	awardedID := uuid.New().String()
	goodIDs := []string{uuid.New().String(), uuid.New().String()}

	t.Run("success one awarded member is skipped and the rest proceed", func(t *testing.T) {
		deps := setupProgressionServiceTest(t)
		defer deps.db.Close()

		// One transaction per processable member.
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.records.findByIDFn = func(ctx context.Context, tid, id string) (*eligibility.EligibilityRecord, error) {
			rec := &eligibility.EligibilityRecord{
				ID:           uuid.MustParse(id),
				TenantID:     tenantUUID,
				EmployeeID:   uuid.New(),
				RankCode:     "R1",
				CurrentStep:  0,
				ProposedStep: 1,
				Status:       eligibility.StatusEligible,
				Version:      1,
			}
			if id == awardedID {
				rec.Status = eligibility.StatusAwarded
			}
			return rec, nil
		}
		deps.payStates.lockForUpdateFn = func(ctx context.Context, tid, eid string) (*paystate.EmployeePayState, error) {
			return &paystate.EmployeePayState{
				EmployeeID:    uuid.MustParse(eid),
				TenantID:      tenantUUID,
				RankCode:      "R1",
				CurrentStep:   0,
				CurrentSalary: 5000,
			}, nil
		}
		deps.scales.resolveSalaryFn = func(ctx context.Context, tid, rankCode string, step int, asOf time.Time) (salaryscale.ResolvedSalary, error) {
			return salaryscale.ResolvedSalary{Amount: 5500, ScaleVersionID: scaleVersionID}, nil
		}

		summary, err := deps.service.ProcessBatch(ctx, tenantID, actorID, progression.ProcessBatchRequest{
			EligibilityIDs: []string{goodIDs[0], awardedID, goodIDs[1]},
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, summary.Processed)
		assert.Equal(t, 1, summary.Skipped)
		assert.Equal(t, 0, summary.Failed)
		assert.Len(t, summary.Errors, 1)
		assert.Equal(t, awardedID, summary.Errors[0].EligibilityID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative empty batch", func(t *testing.T) {
		deps := setupProgressionServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.ProcessBatch(ctx, tenantID, actorID, progression.ProcessBatchRequest{})

		assert.ErrorIs(t, err, progressionerrors.ErrEmptyBatch)
	})

	t.Run("success cancellation stops issuing new units", func(t *testing.T) {
		deps := setupProgressionServiceTest(t)
		defer deps.db.Close()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		summary, err := deps.service.ProcessBatch(cancelled, tenantID, actorID, progression.ProcessBatchRequest{
			EligibilityIDs: []string{uuid.New().String(), uuid.New().String()},
		})

		assert.NoError(t, err)
		assert.Equal(t, 0, summary.Processed)
		assert.Equal(t, 0, summary.Failed)
	})
}

func TestProgressionService_Reject(t *testing.T) {
	ctx := context.Background()
	tenantUUID := uuid.New()
	tenantID := tenantUUID.String()
	actorID := uuid.New().String()
	recordID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupProgressionServiceTest(t)
		defer deps.db.Close()

		deps.records.findByIDFn = func(ctx context.Context, tid, id string) (*eligibility.EligibilityRecord, error) {
			return &eligibility.EligibilityRecord{
				ID:       uuid.MustParse(id),
				TenantID: tenantUUID,
				Status:   eligibility.StatusEligible,
				Version:  1,
			}, nil
		}

		var rejected *eligibility.EligibilityRecord
		deps.records.updateVersionedFn = func(ctx context.Context, rec *eligibility.EligibilityRecord) (int64, error) {
			rejected = rec
			return 1, nil
		}

		err := deps.service.Reject(ctx, tenantID, actorID, recordID, progression.RejectRequest{
			Reason: "pending audit finding",
		})

		assert.NoError(t, err)
		assert.Equal(t, eligibility.StatusRejected, rejected.Status)
		assert.Equal(t, "pending audit finding", rejected.Reason)
		assert.NotNil(t, rejected.DecidedBy)
	})

	t.Run("negative empty reason", func(t *testing.T) {
		deps := setupProgressionServiceTest(t)
		defer deps.db.Close()

		err := deps.service.Reject(ctx, tenantID, actorID, recordID, progression.RejectRequest{})

		assert.ErrorIs(t, err, progressionerrors.ErrReasonRequired)
	})

	t.Run("negative awarded record cannot be rejected", func(t *testing.T) {
		deps := setupProgressionServiceTest(t)
		defer deps.db.Close()

		deps.records.findByIDFn = func(ctx context.Context, tid, id string) (*eligibility.EligibilityRecord, error) {
			return &eligibility.EligibilityRecord{
				ID:       uuid.MustParse(id),
				TenantID: tenantUUID,
				Status:   eligibility.StatusAwarded,
			}, nil
		}

		err := deps.service.Reject(ctx, tenantID, actorID, recordID, progression.RejectRequest{Reason: "x"})

		assert.ErrorIs(t, err, progressionerrors.ErrRecordNotActionable)
	})
}

func TestProgressionService_ManualJump(t *testing.T) {
	ctx := context.Background()
	tenantUUID := uuid.New()
	tenantID := tenantUUID.String()
	actorID := uuid.New().String()
	employeeID := uuid.New()

	activeVersion := func() *salaryscale.ScaleVersion {
		versionID := uuid.New()
		rankID := uuid.New()
		return &salaryscale.ScaleVersion{
			ID:       versionID,
			TenantID: tenantUUID,
			Code:     "V1",
			Status:   salaryscale.StatusActive,
			RankConfigs: []salaryscale.RankSalaryConfig{
				{
					ID:             rankID,
					ScaleVersionID: versionID,
					RankCode:       "R1",
					Steps: []salaryscale.SalaryStep{
						{ID: uuid.New(), RankConfigID: rankID, StepNumber: 0, Amount: 5000},
						{ID: uuid.New(), RankConfigID: rankID, StepNumber: 1, Amount: 5500},
						{ID: uuid.New(), RankConfigID: rankID, StepNumber: 2, Amount: 6000},
					},
				},
			},
		}
	}

	validRequest := func(toStep int) progression.ManualJumpRequest {
		return progression.ManualJumpRequest{
			EmployeeID:     employeeID.String(),
			ToStep:         &toStep,
			OrderReference: "ORD-2025-014",
			Reason:         "commissioner order",
		}
	}

	t.Run("success writes a manual jump event", func(t *testing.T) {
		deps := setupProgressionServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		version := activeVersion()
		deps.scales.activeVersionFn = func(ctx context.Context, tid string) (*salaryscale.ScaleVersion, error) {
			return version, nil
		}
		deps.payStates.lockForUpdateFn = func(ctx context.Context, tid, eid string) (*paystate.EmployeePayState, error) {
			return &paystate.EmployeePayState{
				EmployeeID:    employeeID,
				TenantID:      tenantUUID,
				RankCode:      "R1",
				CurrentStep:   0,
				CurrentSalary: 5000,
			}, nil
		}

		var appended *history.ProgressionEvent
		deps.ledger.appendFn = func(ctx context.Context, event *history.ProgressionEvent) error {
			appended = event
			return nil
		}

		var updatedState *paystate.EmployeePayState
		deps.payStates.updateFn = func(ctx context.Context, state *paystate.EmployeePayState) error {
			updatedState = state
			return nil
		}

		result, err := deps.service.ManualJump(ctx, tenantID, actorID, validRequest(2))

		assert.NoError(t, err)
		assert.Equal(t, history.KindManualJump, result.Kind)
		assert.Equal(t, 0, result.FromStep)
		assert.Equal(t, 2, result.ToStep)
		assert.Equal(t, int64(6000), result.AmountAfter)

		assert.Equal(t, "ORD-2025-014", appended.OrderReference)
		assert.Equal(t, "commissioner order", appended.Reason)
		assert.Equal(t, version.ID, appended.ScaleVersionID)

		assert.Equal(t, 2, updatedState.CurrentStep)
		assert.Equal(t, int64(6000), updatedState.CurrentSalary)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative step outside the rank writes nothing", func(t *testing.T) {
		deps := setupProgressionServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.scales.activeVersionFn = func(ctx context.Context, tid string) (*salaryscale.ScaleVersion, error) {
			return activeVersion(), nil
		}
		deps.payStates.lockForUpdateFn = func(ctx context.Context, tid, eid string) (*paystate.EmployeePayState, error) {
			return &paystate.EmployeePayState{
				EmployeeID: employeeID,
				TenantID:   tenantUUID,
				RankCode:   "R1",
			}, nil
		}
		deps.ledger.appendFn = func(ctx context.Context, event *history.ProgressionEvent) error {
			t.Fatal("ledger must not record a rejected jump")
			return nil
		}
		deps.payStates.updateFn = func(ctx context.Context, state *paystate.EmployeePayState) error {
			t.Fatal("pay state must not change on a rejected jump")
			return nil
		}

		_, err := deps.service.ManualJump(ctx, tenantID, actorID, validRequest(12))

		assert.ErrorIs(t, err, progressionerrors.ErrStepOutOfRange)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		deps := setupProgressionServiceTest(t)
		defer deps.db.Close()

		deps.employees.getEmployeeFn = func(ctx context.Context, tid, eid string) (*directory.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.ManualJump(ctx, tenantID, actorID, validRequest(1))

		assert.ErrorIs(t, err, progressionerrors.ErrEmployeeNotFound)
	})

	t.Run("negative missing order reference", func(t *testing.T) {
		deps := setupProgressionServiceTest(t)
		defer deps.db.Close()

		req := validRequest(1)
		req.OrderReference = ""

		_, err := deps.service.ManualJump(ctx, tenantID, actorID, req)

		assert.ErrorIs(t, err, progressionerrors.ErrOrderReferenceRequired)
	})
}
