package history

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kaleab-kali/FPPMS-sub005/internal/tenant"
)

//go:generate mockgen -source=history_repo.go -destination=mock/history_repo_mock.go -package=mock

// Repository is insert plus ranged reads. There is deliberately no update or
// delete; the ledger only grows.
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Append(ctx context.Context, event *ProgressionEvent) error
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*ProgressionEvent, error)
	FindByEmployee(ctx context.Context, tenantID, employeeID string) ([]ProgressionEvent, error)
	FindByDateRange(ctx context.Context, tenantID string, from, to time.Time) ([]ProgressionEvent, error)
	CountByEmployee(ctx context.Context, tenantID, employeeID string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Append(ctx context.Context, event *ProgressionEvent) error {
	query := `
INSERT INTO progression_events (
	id, tenant_id, employee_id, kind, rank_code, from_step, to_step,
	amount_before, amount_after, effective_date, scale_version_id,
	order_reference, reason, notes, document_path, actor_id, recorded_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
`

	exec := r.execer()
	_, err := exec.ExecContext(
		ctx, query,
		event.ID, event.TenantID, event.EmployeeID, event.Kind, event.RankCode,
		event.FromStep, event.ToStep, event.AmountBefore, event.AmountAfter,
		event.EffectiveDate, event.ScaleVersionID, event.OrderReference,
		event.Reason, event.Notes, event.DocumentPath, event.ActorID, event.RecordedAt,
	)
	return err
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*ProgressionEvent, error) {
	var event ProgressionEvent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByEmployee returns the employee's full pay timeline, oldest first.
func (r *repository) FindByEmployee(ctx context.Context, tenantID, employeeID string) ([]ProgressionEvent, error) {
	var events []ProgressionEvent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ?", employeeID).
		Order("effective_date ASC, recorded_at ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) FindByDateRange(ctx context.Context, tenantID string, from, to time.Time) ([]ProgressionEvent, error) {
	var events []ProgressionEvent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("effective_date >= ? AND effective_date <= ?", from, to).
		Order("effective_date ASC, recorded_at ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) CountByEmployee(ctx context.Context, tenantID, employeeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ProgressionEvent{}).
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	db, err := r.db.DB()
	if err != nil {
		return failingExecer{err: err}
	}
	return db
}

type failingExecer struct{ err error }

func (f failingExecer) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, f.err
}

// IsNotFound reports whether the error is gorm's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
