package progression

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kaleab-kali/FPPMS-sub005/internal/directory"
	"github.com/kaleab-kali/FPPMS-sub005/internal/eligibility"
	"github.com/kaleab-kali/FPPMS-sub005/internal/events"
	"github.com/kaleab-kali/FPPMS-sub005/internal/history"
	"github.com/kaleab-kali/FPPMS-sub005/internal/messaging/kafka"
	"github.com/kaleab-kali/FPPMS-sub005/internal/paystate"
	progressionerrors "github.com/kaleab-kali/FPPMS-sub005/internal/progression/errors"
	"github.com/kaleab-kali/FPPMS-sub005/internal/salaryscale"
	"github.com/kaleab-kali/FPPMS-sub005/internal/shared/apperror"
	"github.com/kaleab-kali/FPPMS-sub005/internal/shared/contextutil"
)

// ScaleResolver is the slice of the scale registry the processor needs.
type ScaleResolver interface {
	ResolveSalary(ctx context.Context, tenantID, rankCode string, step int, asOf time.Time) (salaryscale.ResolvedSalary, error)
	ActiveVersion(ctx context.Context, tenantID string) (*salaryscale.ScaleVersion, error)
}

//go:generate mockgen -source=progression_service.go -destination=mock/progression_service_mock.go -package=mock
type Service interface {
	ProcessSingle(ctx context.Context, tenantID, actorID, eligibilityID string, req ProcessSingleRequest) (ProgressionResultResponse, error)
	ProcessBatch(ctx context.Context, tenantID, actorID string, req ProcessBatchRequest) (BatchSummary, error)
	Reject(ctx context.Context, tenantID, actorID, eligibilityID string, req RejectRequest) error
	ManualJump(ctx context.Context, tenantID, actorID string, req ManualJumpRequest) (ProgressionResultResponse, error)
}

type service struct {
	db        *sql.DB
	records   eligibility.Repository
	payStates paystate.Repository
	ledger    history.Repository
	outbox    kafka.OutboxRepository
	employees directory.Provider
	scales    ScaleResolver
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	records eligibility.Repository,
	payStates paystate.Repository,
	ledger history.Repository,
	outbox kafka.OutboxRepository,
	employees directory.Provider,
	scales ScaleResolver,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("progression.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("progression.service")
	}
	return &service{
		db:        db,
		records:   records,
		payStates: payStates,
		ledger:    ledger,
		outbox:    outbox,
		employees: employees,
		scales:    scales,
		logger:    l,
	}
}

// ProcessSingle applies one approved increment. The status check, salary
// resolution, ledger append, pay-state update and record terminalization
// commit as one unit; if any of them fails none are applied.
func (s *service) ProcessSingle(ctx context.Context, tenantID, actorID, eligibilityID string, req ProcessSingleRequest) (ProgressionResultResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ProgressionResultResponse{}, progressionerrors.ErrInvalidActorID
	}

	effectiveDate, err := resolveEffectiveDate(req.EffectiveDate)
	if err != nil {
		return ProgressionResultResponse{}, err
	}

	rec, err := s.records.FindByIDAndTenant(ctx, tenantID, eligibilityID)
	if err != nil {
		if eligibility.IsNotFound(err) {
			return ProgressionResultResponse{}, progressionerrors.ErrRecordNotFound
		}
		return ProgressionResultResponse{}, err
	}

	if rec.Status != eligibility.StatusEligible && rec.Status != eligibility.StatusApproved {
		return ProgressionResultResponse{}, progressionerrors.ErrRecordNotActionable.WithDetail(describeState(rec))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("process single begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ProgressionResultResponse{}, err
	}
	defer tx.Rollback()

	qStates := s.payStates.WithTx(tx)

	state, err := qStates.LockForUpdate(ctx, tenantID, rec.EmployeeID.String())
	if err != nil {
		if paystate.IsLockUnavailable(err) {
			return ProgressionResultResponse{}, progressionerrors.ErrEmployeeBusy
		}
		if errors.Is(err, sql.ErrNoRows) {
			return ProgressionResultResponse{}, progressionerrors.ErrPayStateNotFound
		}
		s.logger.Error("process single lock failed",
			zap.String("request_id", rid),
			zap.String("employee_id", rec.EmployeeID.String()),
			zap.Error(err),
		)
		return ProgressionResultResponse{}, err
	}

	// The record proposed currentStep+1 against the state it saw. A manual
	// jump in between makes the proposal stale.
	if state.CurrentStep != rec.CurrentStep || state.RankCode != rec.RankCode {
		return ProgressionResultResponse{}, progressionerrors.ErrRecordStale
	}

	resolved, err := s.scales.ResolveSalary(ctx, tenantID, state.RankCode, rec.ProposedStep, effectiveDate)
	if err != nil {
		return ProgressionResultResponse{}, err
	}

	event := &history.ProgressionEvent{
		ID:             uuid.New(),
		TenantID:       state.TenantID,
		EmployeeID:     state.EmployeeID,
		Kind:           history.KindAutomatic,
		RankCode:       state.RankCode,
		FromStep:       state.CurrentStep,
		ToStep:         rec.ProposedStep,
		AmountBefore:   state.CurrentSalary,
		AmountAfter:    resolved.Amount,
		EffectiveDate:  effectiveDate,
		ScaleVersionID: resolved.ScaleVersionID,
		Notes:          req.Notes,
		ActorID:        actorUUID,
		RecordedAt:     time.Now().UTC(),
	}
	if err := s.ledger.WithTx(tx).Append(ctx, event); err != nil {
		s.logger.Error("process single ledger append failed", zap.String("request_id", rid), zap.Error(err))
		return ProgressionResultResponse{}, err
	}

	state.CurrentStep = rec.ProposedStep
	state.CurrentSalary = resolved.Amount
	state.StepEffectiveDate = effectiveDate
	state.ScaleVersionID = resolved.ScaleVersionID
	if err := qStates.Update(ctx, state); err != nil {
		s.logger.Error("process single pay state update failed", zap.String("request_id", rid), zap.Error(err))
		return ProgressionResultResponse{}, err
	}

	now := time.Now().UTC()
	rec.Status = eligibility.StatusAwarded
	rec.DecidedBy = &actorUUID
	rec.DecidedAt = &now
	affected, err := s.records.WithTx(tx).UpdateVersioned(ctx, rec)
	if err != nil {
		return ProgressionResultResponse{}, err
	}
	if affected == 0 {
		// The evaluator or another operator touched the record mid-flight.
		return ProgressionResultResponse{}, progressionerrors.ErrRecordModified
	}

	if err := s.enqueueAwarded(ctx, tx, rid, event); err != nil {
		return ProgressionResultResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("process single commit failed", zap.String("request_id", rid), zap.Error(err))
		return ProgressionResultResponse{}, err
	}

	s.logger.Info("progression applied",
		zap.String("request_id", rid),
		zap.String("eligibility_id", eligibilityID),
		zap.String("employee_id", state.EmployeeID.String()),
		zap.Int("from_step", event.FromStep),
		zap.Int("to_step", event.ToStep),
	)

	return mapEventToResult(event), nil
}

// ProcessBatch fans the ids out as independent units of work. One member's
// failure never aborts the others and committed members are never rolled
// back. Cancellation is cooperative: the in-flight unit finishes, no new
// units start.
func (s *service) ProcessBatch(ctx context.Context, tenantID, actorID string, req ProcessBatchRequest) (BatchSummary, error) {
	if len(req.EligibilityIDs) == 0 {
		return BatchSummary{}, progressionerrors.ErrEmptyBatch
	}

	summary := BatchSummary{Errors: make([]BatchError, 0)}
	unitReq := ProcessSingleRequest{EffectiveDate: req.EffectiveDate, Notes: req.Notes}

	for _, id := range req.EligibilityIDs {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("batch processing cancelled",
				zap.String("tenant_id", tenantID),
				zap.Int("processed", summary.Processed),
			)
			break
		}

		_, err := s.ProcessSingle(ctx, tenantID, actorID, id, unitReq)
		if err == nil {
			summary.Processed++
			continue
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.CodeInvalidState {
			summary.Skipped++
			summary.Errors = append(summary.Errors, BatchError{
				EligibilityID: id,
				Kind:          appErr.Code,
				Message:       appErr.Message,
			})
			continue
		}

		summary.Failed++
		kind := apperror.CodeInternalError
		message := err.Error()
		if appErr != nil {
			kind = appErr.Code
			message = appErr.Message
		}
		summary.Errors = append(summary.Errors, BatchError{
			EligibilityID: id,
			Kind:          kind,
			Message:       message,
		})
	}

	s.logger.Info("batch processing finished",
		zap.String("tenant_id", tenantID),
		zap.Int("processed", summary.Processed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)

	return summary, nil
}

// Reject closes a record without a salary change. The decision lives on the
// record's own audit fields; the ledger stays untouched.
func (s *service) Reject(ctx context.Context, tenantID, actorID, eligibilityID string, req RejectRequest) error {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return progressionerrors.ErrInvalidActorID
	}
	if req.Reason == "" {
		return progressionerrors.ErrReasonRequired
	}

	rec, err := s.records.FindByIDAndTenant(ctx, tenantID, eligibilityID)
	if err != nil {
		if eligibility.IsNotFound(err) {
			return progressionerrors.ErrRecordNotFound
		}
		return err
	}

	if !eligibility.CanTransition(rec.Status, eligibility.StatusRejected) {
		return progressionerrors.ErrRecordNotActionable.WithDetail(describeState(rec))
	}

	now := time.Now().UTC()
	rec.Status = eligibility.StatusRejected
	rec.Reason = req.Reason
	rec.DecidedBy = &actorUUID
	rec.DecidedAt = &now

	affected, err := s.records.UpdateVersioned(ctx, rec)
	if err != nil {
		return err
	}
	if affected == 0 {
		return progressionerrors.ErrRecordModified
	}

	s.logger.Info("eligibility record rejected",
		zap.String("eligibility_id", eligibilityID),
		zap.String("actor_id", actorID),
	)

	return nil
}

// ManualJump applies a commissioner-ordered step change outside the normal
// cycle. It neither requires nor consumes an eligibility record; the next
// evaluator run recomputes from the new step effective date.
func (s *service) ManualJump(ctx context.Context, tenantID, actorID string, req ManualJumpRequest) (ProgressionResultResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ProgressionResultResponse{}, progressionerrors.ErrInvalidActorID
	}
	if req.OrderReference == "" {
		return ProgressionResultResponse{}, progressionerrors.ErrOrderReferenceRequired
	}
	if req.Reason == "" {
		return ProgressionResultResponse{}, progressionerrors.ErrReasonRequired
	}
	if req.ToStep == nil || *req.ToStep < 0 {
		return ProgressionResultResponse{}, progressionerrors.ErrStepOutOfRange
	}
	toStep := *req.ToStep

	effectiveDate, err := resolveEffectiveDate(req.EffectiveDate)
	if err != nil {
		return ProgressionResultResponse{}, err
	}

	if _, err := s.employees.GetEmployee(ctx, tenantID, req.EmployeeID); err != nil {
		if directory.IsNotFound(err) {
			return ProgressionResultResponse{}, progressionerrors.ErrEmployeeNotFound
		}
		return ProgressionResultResponse{}, err
	}

	version, err := s.scales.ActiveVersion(ctx, tenantID)
	if err != nil {
		return ProgressionResultResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("manual jump begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ProgressionResultResponse{}, err
	}
	defer tx.Rollback()

	qStates := s.payStates.WithTx(tx)

	state, err := qStates.LockForUpdate(ctx, tenantID, req.EmployeeID)
	if err != nil {
		if paystate.IsLockUnavailable(err) {
			return ProgressionResultResponse{}, progressionerrors.ErrEmployeeBusy
		}
		if errors.Is(err, sql.ErrNoRows) {
			return ProgressionResultResponse{}, progressionerrors.ErrPayStateNotFound
		}
		return ProgressionResultResponse{}, err
	}

	rc, ok := version.RankConfig(state.RankCode)
	if !ok {
		return ProgressionResultResponse{}, progressionerrors.ErrStepOutOfRange.WithDetail(
			fmt.Sprintf("rank %s is not in the active scale", state.RankCode))
	}
	amount, ok := rc.StepAmount(toStep)
	if !ok {
		return ProgressionResultResponse{}, progressionerrors.ErrStepOutOfRange.WithDetail(
			fmt.Sprintf("step %d is not defined for rank %s", toStep, state.RankCode))
	}

	event := &history.ProgressionEvent{
		ID:             uuid.New(),
		TenantID:       state.TenantID,
		EmployeeID:     state.EmployeeID,
		Kind:           history.KindManualJump,
		RankCode:       state.RankCode,
		FromStep:       state.CurrentStep,
		ToStep:         toStep,
		AmountBefore:   state.CurrentSalary,
		AmountAfter:    amount,
		EffectiveDate:  effectiveDate,
		ScaleVersionID: version.ID,
		OrderReference: req.OrderReference,
		Reason:         req.Reason,
		Notes:          req.Notes,
		DocumentPath:   req.DocumentPath,
		ActorID:        actorUUID,
		RecordedAt:     time.Now().UTC(),
	}
	if err := s.ledger.WithTx(tx).Append(ctx, event); err != nil {
		s.logger.Error("manual jump ledger append failed", zap.String("request_id", rid), zap.Error(err))
		return ProgressionResultResponse{}, err
	}

	state.CurrentStep = toStep
	state.CurrentSalary = amount
	state.StepEffectiveDate = effectiveDate
	state.ScaleVersionID = version.ID
	if err := qStates.Update(ctx, state); err != nil {
		s.logger.Error("manual jump pay state update failed", zap.String("request_id", rid), zap.Error(err))
		return ProgressionResultResponse{}, err
	}

	if err := s.enqueueAwarded(ctx, tx, rid, event); err != nil {
		return ProgressionResultResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("manual jump commit failed", zap.String("request_id", rid), zap.Error(err))
		return ProgressionResultResponse{}, err
	}

	s.logger.Info("manual jump applied",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("order_reference", req.OrderReference),
		zap.Int("from_step", event.FromStep),
		zap.Int("to_step", event.ToStep),
	)

	return mapEventToResult(event), nil
}

func (s *service) enqueueAwarded(ctx context.Context, tx *sql.Tx, rid string, event *history.ProgressionEvent) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.ProgressionAwardedEvent{
		EventType:   "salary.progression.awarded",
		EmployeeID:  event.EmployeeID.String(),
		TenantID:    event.TenantID.String(),
		Kind:        event.Kind,
		FromStep:    event.FromStep,
		ToStep:      event.ToStep,
		AmountAfter: event.AmountAfter,
		EffectiveAt: event.EffectiveDate,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "progression_event",
		AggregateID:   event.ID.String(),
		EventType:     "salary.progression.awarded",
		Topic:         events.ProgressionAwardedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("progression outbox persist failed",
			zap.String("request_id", rid),
			zap.String("event_id", event.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func resolveEffectiveDate(override *string) (time.Time, error) {
	if override == nil || *override == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}
	t, err := time.Parse("2006-01-02", *override)
	if err != nil {
		return time.Time{}, progressionerrors.ErrInvalidDateFormat
	}
	return t, nil
}

// describeState renders a record's state for operators, e.g. in batch
// summaries.
func describeState(rec *eligibility.EligibilityRecord) string {
	switch rec.Status {
	case eligibility.StatusAwarded:
		return "already awarded"
	case eligibility.StatusRejected:
		if rec.DecidedAt != nil {
			return "rejected on " + rec.DecidedAt.Format("2006-01-02")
		}
		return "rejected"
	default:
		return "status is " + rec.Status
	}
}

func mapEventToResult(event *history.ProgressionEvent) ProgressionResultResponse {
	return ProgressionResultResponse{
		EventID:       event.ID.String(),
		EmployeeID:    event.EmployeeID.String(),
		RankCode:      event.RankCode,
		Kind:          event.Kind,
		FromStep:      event.FromStep,
		ToStep:        event.ToStep,
		AmountBefore:  event.AmountBefore,
		AmountAfter:   event.AmountAfter,
		EffectiveDate: event.EffectiveDate.Format("2006-01-02"),
	}
}
