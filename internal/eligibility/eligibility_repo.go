package eligibility

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/kaleab-kali/FPPMS-sub005/internal/tenant"
)

//go:generate mockgen -source=eligibility_repo.go -destination=mock/eligibility_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *EligibilityRecord) error
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*EligibilityRecord, error)
	FindOpenByEmployee(ctx context.Context, tenantID, employeeID string) (*EligibilityRecord, error)
	FindAllByTenant(ctx context.Context, tenantID, status string) ([]EligibilityRecord, error)
	UpdateVersioned(ctx context.Context, rec *EligibilityRecord) (int64, error)
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

func (r *repository) Create(ctx context.Context, rec *EligibilityRecord) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
INSERT INTO eligibility_records (
	id, tenant_id, employee_id, rank_code, current_step, proposed_step,
	due_date, status, reason, scale_version_id, evaluated_at, version,
	created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
`, rec.ID, rec.TenantID, rec.EmployeeID, rec.RankCode, rec.CurrentStep,
			rec.ProposedStep, rec.DueDate, rec.Status, rec.Reason,
			rec.ScaleVersionID, rec.EvaluatedAt, rec.Version)
		return err
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*EligibilityRecord, error) {
	var rec EligibilityRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindOpenByEmployee returns the employee's non-terminal record if one
// exists. Terminal records stay behind as audit rows and never block a new
// evaluation cycle.
func (r *repository) FindOpenByEmployee(ctx context.Context, tenantID, employeeID string) (*EligibilityRecord, error) {
	var rec EligibilityRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ?", employeeID).
		Where("status NOT IN ?", []string{StatusAwarded, StatusRejected}).
		Order("created_at DESC").
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindAllByTenant(ctx context.Context, tenantID, status string) ([]EligibilityRecord, error) {
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID))
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var records []EligibilityRecord
	err := q.Order("due_date ASC").Find(&records).Error
	return records, err
}

// UpdateVersioned writes the record guarded by its optimistic version token.
// Zero rows affected means the row changed since it was read; callers decide
// whether that is a retry or a conflict error.
func (r *repository) UpdateVersioned(ctx context.Context, rec *EligibilityRecord) (int64, error) {
	res, err := r.execer().ExecContext(ctx, `
UPDATE eligibility_records
SET status = $1, proposed_step = $2, current_step = $3, due_date = $4,
	reason = $5, scale_version_id = $6, evaluated_at = $7,
	decided_by = $8, decided_at = $9,
	version = version + 1, updated_at = NOW()
WHERE id = $10 AND tenant_id = $11 AND version = $12
`, rec.Status, rec.ProposedStep, rec.CurrentStep, rec.DueDate,
		rec.Reason, rec.ScaleVersionID, rec.EvaluatedAt,
		rec.DecidedBy, rec.DecidedAt,
		rec.ID, rec.TenantID, rec.Version)
	if err != nil {
		return 0, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		rec.Version++
	}
	return affected, nil
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
