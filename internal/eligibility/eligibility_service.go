package eligibility

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kaleab-kali/FPPMS-sub005/internal/calendar"
	"github.com/kaleab-kali/FPPMS-sub005/internal/directory"
	eligibilityerrors "github.com/kaleab-kali/FPPMS-sub005/internal/eligibility/errors"
	"github.com/kaleab-kali/FPPMS-sub005/internal/paystate"
	"github.com/kaleab-kali/FPPMS-sub005/internal/salaryscale"
)

// ScaleSource is the slice of the scale registry the evaluator needs.
type ScaleSource interface {
	ActiveVersion(ctx context.Context, tenantID string) (*salaryscale.ScaleVersion, error)
}

//go:generate mockgen -source=eligibility_service.go -destination=mock/eligibility_service_mock.go -package=mock
type Service interface {
	EvaluateTenant(ctx context.Context, tenantID string, now time.Time) (EvaluationSummary, error)
	GetAll(ctx context.Context, tenantID, status string) ([]EligibilityRecordResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (EligibilityRecordResponse, error)
	Approve(ctx context.Context, tenantID, actorID, id string) (EligibilityRecordResponse, error)
}

type service struct {
	repo      Repository
	payStates paystate.Repository
	employees directory.Provider
	scales    ScaleSource
	cal       calendar.Calendar
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	payStates paystate.Repository,
	employees directory.Provider,
	scales ScaleSource,
	cal calendar.Calendar,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("eligibility.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("eligibility.service")
	}
	return &service{
		repo:      repo,
		payStates: payStates,
		employees: employees,
		scales:    scales,
		cal:       cal,
		logger:    l,
	}
}

// EvaluateTenant runs one evaluation pass. It is a pure function of "now"
// plus current state: re-running it with no intervening pay-state change
// updates existing open records in place and creates nothing new.
func (s *service) EvaluateTenant(ctx context.Context, tenantID string, now time.Time) (EvaluationSummary, error) {
	var summary EvaluationSummary

	version, err := s.scales.ActiveVersion(ctx, tenantID)
	if err != nil {
		return summary, err
	}

	employees, err := s.employees.ActiveEmployees(ctx, tenantID)
	if err != nil {
		return summary, err
	}

	s.logger.Info("evaluation pass started",
		zap.String("tenant_id", tenantID),
		zap.Int("employees", len(employees)),
		zap.String("scale_version_id", version.ID.String()),
	)

	for _, emp := range employees {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		summary.Evaluated++
		if err := s.evaluateEmployee(ctx, tenantID, version, emp, now, &summary); err != nil {
			// One employee's bad data must not sink the whole pass.
			s.logger.Warn("employee evaluation failed",
				zap.String("employee_id", emp.ID.String()),
				zap.Error(err),
			)
			summary.Skipped++
		}
	}

	s.logger.Info("evaluation pass finished",
		zap.String("tenant_id", tenantID),
		zap.Int("evaluated", summary.Evaluated),
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
	)

	return summary, nil
}

func (s *service) evaluateEmployee(
	ctx context.Context,
	tenantID string,
	version *salaryscale.ScaleVersion,
	emp directory.Employee,
	now time.Time,
	summary *EvaluationSummary,
) error {
	state, err := s.payStates.FindByEmployee(ctx, tenantID, emp.ID.String())
	if err != nil {
		if IsNotFound(err) {
			// Not yet seeded onto the scale; nothing to evaluate.
			summary.Skipped++
			return nil
		}
		return err
	}

	rc, ok := version.RankConfig(state.RankCode)
	if !ok {
		s.logger.Warn("rank missing from active scale",
			zap.String("employee_id", emp.ID.String()),
			zap.String("rank_code", state.RankCode),
		)
		summary.Skipped++
		return nil
	}

	existing, err := s.repo.FindOpenByEmployee(ctx, tenantID, emp.ID.String())
	if err != nil && !IsNotFound(err) {
		return err
	}
	if existing != nil && (existing.Status == StatusApproved) {
		// An operator already signed off; the evaluator does not second-guess.
		summary.Skipped++
		return nil
	}

	proposedStep := state.CurrentStep + 1
	yearsRequired, inRange := version.YearsRequiredFor(rc, proposedStep)
	if !inRange {
		// Final step reached. An open record proposing a step that no longer
		// exists is stale and gets parked.
		if existing != nil {
			return s.transitionInPlace(ctx, existing, StatusPostponed, "employee is at the final step", now, summary)
		}
		summary.Skipped++
		return nil
	}

	dueDate := s.cal.AddYears(state.StepEffectiveDate, yearsRequired)
	yearsInStep := s.cal.ElapsedYears(state.StepEffectiveDate, now)

	var target string
	var reason string
	switch {
	case emp.HasPendingDiscipline:
		target = StatusDisqualified
		reason = "pending disciplinary action"
	case yearsInStep >= float64(yearsRequired):
		target = StatusEligible
	default:
		// Not yet due. Park an open record if one exists (a manual jump may
		// have reset the clock); otherwise there is nothing to materialize.
		if existing != nil {
			return s.transitionInPlace(ctx, existing, StatusPostponed, "years-in-step requirement not met", now, summary)
		}
		summary.Skipped++
		return nil
	}

	if existing == nil {
		rec := &EligibilityRecord{
			ID:             uuid.New(),
			TenantID:       state.TenantID,
			EmployeeID:     state.EmployeeID,
			RankCode:       state.RankCode,
			CurrentStep:    state.CurrentStep,
			ProposedStep:   proposedStep,
			DueDate:        dueDate,
			Status:         target,
			Reason:         reason,
			ScaleVersionID: version.ID,
			EvaluatedAt:    now,
			Version:        1,
		}
		if err := s.repo.Create(ctx, rec); err != nil {
			return err
		}
		summary.Created++
		if target == StatusDisqualified {
			summary.Disqualified++
		}
		return nil
	}

	// Refresh the open record in place. Same status is a plain refresh of the
	// computed fields; a status change must be a legal transition.
	if existing.Status != target && !CanTransition(existing.Status, target) {
		summary.Skipped++
		return nil
	}

	existing.Status = target
	existing.Reason = reason
	existing.CurrentStep = state.CurrentStep
	existing.ProposedStep = proposedStep
	existing.DueDate = dueDate
	existing.ScaleVersionID = version.ID
	existing.EvaluatedAt = now

	affected, err := s.repo.UpdateVersioned(ctx, existing)
	if err != nil {
		return err
	}
	if affected == 0 {
		// Lost the race to the processor; its write wins.
		summary.Skipped++
		return nil
	}

	summary.Updated++
	if target == StatusDisqualified {
		summary.Disqualified++
	}
	return nil
}

func (s *service) transitionInPlace(
	ctx context.Context,
	rec *EligibilityRecord,
	target, reason string,
	now time.Time,
	summary *EvaluationSummary,
) error {
	if rec.Status != target && !CanTransition(rec.Status, target) {
		summary.Skipped++
		return nil
	}

	rec.Status = target
	rec.Reason = reason
	rec.EvaluatedAt = now

	affected, err := s.repo.UpdateVersioned(ctx, rec)
	if err != nil {
		return err
	}
	if affected == 0 {
		summary.Skipped++
		return nil
	}

	summary.Updated++
	if target == StatusPostponed {
		summary.Postponed++
	}
	return nil
}

func (s *service) GetAll(ctx context.Context, tenantID, status string) ([]EligibilityRecordResponse, error) {
	if status != "" && !knownStatus(status) {
		return nil, eligibilityerrors.ErrInvalidStatusFilter
	}

	records, err := s.repo.FindAllByTenant(ctx, tenantID, status)
	if err != nil {
		return nil, err
	}

	res := make([]EligibilityRecordResponse, len(records))
	for i, rec := range records {
		res[i] = mapToResponse(rec)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, tenantID, id string) (EligibilityRecordResponse, error) {
	rec, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		if IsNotFound(err) {
			return EligibilityRecordResponse{}, eligibilityerrors.ErrRecordNotFound
		}
		return EligibilityRecordResponse{}, err
	}
	return mapToResponse(*rec), nil
}

// Approve is the operator's sign-off on an ELIGIBLE record ahead of batch
// processing.
func (s *service) Approve(ctx context.Context, tenantID, actorID, id string) (EligibilityRecordResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return EligibilityRecordResponse{}, eligibilityerrors.ErrInvalidActorID
	}

	rec, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		if IsNotFound(err) {
			return EligibilityRecordResponse{}, eligibilityerrors.ErrRecordNotFound
		}
		return EligibilityRecordResponse{}, err
	}

	if !CanTransition(rec.Status, StatusApproved) {
		return EligibilityRecordResponse{}, eligibilityerrors.ErrInvalidTransition.WithDetail("status is " + rec.Status)
	}

	now := time.Now().UTC()
	rec.Status = StatusApproved
	rec.DecidedBy = &actorUUID
	rec.DecidedAt = &now

	affected, err := s.repo.UpdateVersioned(ctx, rec)
	if err != nil {
		return EligibilityRecordResponse{}, err
	}
	if affected == 0 {
		return EligibilityRecordResponse{}, eligibilityerrors.ErrRecordModified
	}

	s.logger.Info("eligibility record approved",
		zap.String("record_id", id),
		zap.String("actor_id", actorID),
	)

	return mapToResponse(*rec), nil
}

func knownStatus(status string) bool {
	switch status {
	case StatusPendingReview, StatusEligible, StatusApproved,
		StatusAwarded, StatusRejected, StatusDisqualified, StatusPostponed:
		return true
	}
	return false
}

func mapToResponse(rec EligibilityRecord) EligibilityRecordResponse {
	resp := EligibilityRecordResponse{
		ID:             rec.ID.String(),
		EmployeeID:     rec.EmployeeID.String(),
		RankCode:       rec.RankCode,
		CurrentStep:    rec.CurrentStep,
		ProposedStep:   rec.ProposedStep,
		DueDate:        rec.DueDate.Format("2006-01-02"),
		Status:         rec.Status,
		Reason:         rec.Reason,
		ScaleVersionID: rec.ScaleVersionID.String(),
		EvaluatedAt:    rec.EvaluatedAt.Format(time.RFC3339),
	}
	if rec.DecidedBy != nil {
		v := rec.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if rec.DecidedAt != nil {
		v := rec.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}
