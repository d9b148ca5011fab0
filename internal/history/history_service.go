package history

import (
	"context"
	"time"

	"go.uber.org/zap"

	historyerrors "github.com/kaleab-kali/FPPMS-sub005/internal/history/errors"
)

//go:generate mockgen -source=history_service.go -destination=mock/history_service_mock.go -package=mock
type Service interface {
	Timeline(ctx context.Context, tenantID, employeeID string) (TimelineResponse, error)
	EventsInRange(ctx context.Context, tenantID string, from, to time.Time) ([]ProgressionEventResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (ProgressionEventResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("history.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("history.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Timeline(ctx context.Context, tenantID, employeeID string) (TimelineResponse, error) {
	events, err := s.repo.FindByEmployee(ctx, tenantID, employeeID)
	if err != nil {
		return TimelineResponse{}, err
	}

	resp := TimelineResponse{
		EmployeeID: employeeID,
		Events:     make([]ProgressionEventResponse, len(events)),
	}
	for i, e := range events {
		resp.Events[i] = mapToResponse(e)
	}
	return resp, nil
}

func (s *service) EventsInRange(ctx context.Context, tenantID string, from, to time.Time) ([]ProgressionEventResponse, error) {
	if from.After(to) {
		return nil, historyerrors.ErrInvalidDateRange
	}

	events, err := s.repo.FindByDateRange(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	res := make([]ProgressionEventResponse, len(events))
	for i, e := range events {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, tenantID, id string) (ProgressionEventResponse, error) {
	event, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		if IsNotFound(err) {
			return ProgressionEventResponse{}, historyerrors.ErrEventNotFound
		}
		return ProgressionEventResponse{}, err
	}
	return mapToResponse(*event), nil
}

func mapToResponse(e ProgressionEvent) ProgressionEventResponse {
	return ProgressionEventResponse{
		ID:             e.ID.String(),
		EmployeeID:     e.EmployeeID.String(),
		Kind:           e.Kind,
		RankCode:       e.RankCode,
		FromStep:       e.FromStep,
		ToStep:         e.ToStep,
		AmountBefore:   e.AmountBefore,
		AmountAfter:    e.AmountAfter,
		EffectiveDate:  e.EffectiveDate.Format("2006-01-02"),
		ScaleVersionID: e.ScaleVersionID.String(),
		OrderReference: e.OrderReference,
		Reason:         e.Reason,
		Notes:          e.Notes,
		DocumentPath:   e.DocumentPath,
		ActorID:        e.ActorID.String(),
		RecordedAt:     e.RecordedAt.Format(time.RFC3339),
	}
}
