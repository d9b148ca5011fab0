package paystate

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/kaleab-kali/FPPMS-sub005/internal/tenant"
)

// ErrNoTransaction is returned when a lock is requested outside a
// transaction scope.
var ErrNoTransaction = errors.New("pay state lock requires a transaction")

//go:generate mockgen -source=pay_state_repo.go -destination=mock/pay_state_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, state *EmployeePayState) error
	FindByEmployee(ctx context.Context, tenantID, employeeID string) (*EmployeePayState, error)
	FindAllByTenant(ctx context.Context, tenantID string) ([]EmployeePayState, error)
	LockForUpdate(ctx context.Context, tenantID, employeeID string) (*EmployeePayState, error)
	Update(ctx context.Context, state *EmployeePayState) error
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

func (r *repository) Create(ctx context.Context, state *EmployeePayState) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
INSERT INTO employee_pay_states (
	employee_id, tenant_id, rank_code, current_step, current_salary,
	step_effective_date, scale_version_id, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
`, state.EmployeeID, state.TenantID, state.RankCode, state.CurrentStep,
			state.CurrentSalary, state.StepEffectiveDate, state.ScaleVersionID)
		return err
	}
	return r.db.WithContext(ctx).Create(state).Error
}

func (r *repository) FindByEmployee(ctx context.Context, tenantID, employeeID string) (*EmployeePayState, error) {
	var state EmployeePayState
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ?", employeeID).
		First(&state).Error
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *repository) FindAllByTenant(ctx context.Context, tenantID string) ([]EmployeePayState, error) {
	var states []EmployeePayState
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Find(&states).Error
	return states, err
}

// LockForUpdate takes the employee's row lock without waiting. NOWAIT turns
// a second concurrent progression on the same employee into an immediate
// lock_not_available error instead of a silent overwrite.
func (r *repository) LockForUpdate(ctx context.Context, tenantID, employeeID string) (*EmployeePayState, error) {
	if r.tx == nil {
		return nil, ErrNoTransaction
	}

	row := r.tx.QueryRowContext(ctx, `
SELECT employee_id, tenant_id, rank_code, current_step, current_salary,
	step_effective_date, scale_version_id
FROM employee_pay_states
WHERE tenant_id = $1 AND employee_id = $2
FOR UPDATE NOWAIT
`, tenantID, employeeID)

	var state EmployeePayState
	err := row.Scan(
		&state.EmployeeID,
		&state.TenantID,
		&state.RankCode,
		&state.CurrentStep,
		&state.CurrentSalary,
		&state.StepEffectiveDate,
		&state.ScaleVersionID,
	)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *repository) Update(ctx context.Context, state *EmployeePayState) error {
	if r.tx == nil {
		return ErrNoTransaction
	}

	_, err := r.tx.ExecContext(ctx, `
UPDATE employee_pay_states
SET rank_code = $1, current_step = $2, current_salary = $3,
	step_effective_date = $4, scale_version_id = $5, updated_at = NOW()
WHERE tenant_id = $6 AND employee_id = $7
`, state.RankCode, state.CurrentStep, state.CurrentSalary,
		state.StepEffectiveDate, state.ScaleVersionID, state.TenantID, state.EmployeeID)
	return err
}

// IsLockUnavailable reports whether the error is postgres' lock_not_available,
// i.e. another progression holds this employee's row.
func IsLockUnavailable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "55P03"
}

// IsDuplicate reports a unique violation, used by the hire consumer to skip
// employees whose pay state was already seeded.
func IsDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
