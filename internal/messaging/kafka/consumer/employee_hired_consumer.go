package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/kaleab-kali/FPPMS-sub005/internal/events"
	"github.com/kaleab-kali/FPPMS-sub005/internal/paystate"
	"github.com/kaleab-kali/FPPMS-sub005/internal/salaryscale"
)

// ConsumeEmployeeLifecycle seeds a pay state at step 0 for every hired
// employee, anchoring the years-in-step clock to the hire date. Re-delivery
// is harmless: a duplicate pay state is detected and the message committed.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	payStates paystate.Repository,
	scaleService salaryscale.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeHiredEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_hired event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		retryable, err := seedPayState(ctx, payStates, scaleService, event)
		if err != nil {
			if retryable {
				// Leave the message uncommitted; it comes back on the next
				// fetch.
				log.Error("seed pay state failed",
					zap.String("employee_id", event.EmployeeID),
					zap.String("tenant_id", event.TenantID),
					zap.Error(err),
				)
				continue
			}

			log.Warn("seed pay state skipped",
				zap.String("employee_id", event.EmployeeID),
				zap.String("tenant_id", event.TenantID),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("pay state seeded from employee_hired event",
			zap.String("employee_id", event.EmployeeID),
			zap.String("tenant_id", event.TenantID),
			zap.String("rank_code", event.RankCode),
		)
	}
}

// seedPayState returns (retryable, err). Duplicates and bad event data are
// not retryable; infrastructure failures are.
func seedPayState(
	ctx context.Context,
	payStates paystate.Repository,
	scaleService salaryscale.Service,
	event events.EmployeeHiredEvent,
) (bool, error) {
	employeeID, err := uuid.Parse(event.EmployeeID)
	if err != nil {
		return false, err
	}
	tenantID, err := uuid.Parse(event.TenantID)
	if err != nil {
		return false, err
	}

	version, err := scaleService.ActiveVersion(ctx, event.TenantID)
	if err != nil {
		// No active scale yet; retry until an operator activates one.
		return true, err
	}

	rc, ok := version.RankConfig(event.RankCode)
	if !ok {
		return false, fmt.Errorf("rank %s is not in the active scale", event.RankCode)
	}
	amount, ok := rc.StepAmount(0)
	if !ok {
		return false, fmt.Errorf("rank %s has no step 0", event.RankCode)
	}

	hireDate := event.HireDate
	if hireDate.IsZero() {
		hireDate = time.Now().UTC()
	}

	err = payStates.Create(ctx, &paystate.EmployeePayState{
		EmployeeID:        employeeID,
		TenantID:          tenantID,
		RankCode:          event.RankCode,
		CurrentStep:       0,
		CurrentSalary:     amount,
		StepEffectiveDate: hireDate,
		ScaleVersionID:    version.ID,
	})
	if err != nil {
		if paystate.IsDuplicate(err) {
			return false, err
		}
		return true, err
	}

	return false, nil
}
