package directory

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kaleab-kali/FPPMS-sub005/internal/tenant"
)

//go:generate mockgen -source=directory_repo.go -destination=mock/directory_repo_mock.go -package=mock

// Provider is what the engine consumes from the employee directory. Inputs
// only; identity records are owned elsewhere.
type Provider interface {
	ActiveEmployees(ctx context.Context, tenantID string) ([]Employee, error)
	GetEmployee(ctx context.Context, tenantID, employeeID string) (*Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Provider {
	return &repository{db: db}
}

func (r *repository) ActiveEmployees(ctx context.Context, tenantID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("employment_status = ?", EmploymentActive).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) GetEmployee(ctx context.Context, tenantID, employeeID string) (*Employee, error) {
	var employee Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", employeeID).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// IsNotFound reports whether the error is gorm's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
