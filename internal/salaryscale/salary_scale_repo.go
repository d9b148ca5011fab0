package salaryscale

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kaleab-kali/FPPMS-sub005/internal/tenant"
)

//go:generate mockgen -source=salary_scale_repo.go -destination=mock/salary_scale_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, v *ScaleVersion) error
	FindAllByTenant(ctx context.Context, tenantID string) ([]ScaleVersion, error)
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*ScaleVersion, error)
	CodeExists(ctx context.Context, tenantID, code string) (bool, error)
	FindActive(ctx context.Context, tenantID string) (*ScaleVersion, error)
	FindCovering(ctx context.Context, tenantID string, asOf time.Time) (*ScaleVersion, error)
	ReplaceAggregate(ctx context.Context, v *ScaleVersion) error
	ArchiveActive(ctx context.Context, tenantID string, expiry time.Time) (int64, error)
	PromoteDraft(ctx context.Context, tenantID, id string) (int64, error)
	ArchiveVersion(ctx context.Context, tenantID, id string, expiry time.Time) (int64, error)
	Delete(ctx context.Context, tenantID, id string) error
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

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return failingExecer{err: err}
	}
	return sqlDB
}

type failingExecer struct{ err error }

func (f failingExecer) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, f.err
}

// Create writes the whole aggregate (version, rank configs, steps) in one
// gorm transaction.
func (r *repository) Create(ctx context.Context, v *ScaleVersion) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) FindAllByTenant(ctx context.Context, tenantID string) ([]ScaleVersion, error) {
	var versions []ScaleVersion
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("effective_date DESC, created_at DESC").
		Find(&versions).Error
	return versions, err
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*ScaleVersion, error) {
	var v ScaleVersion
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Preload("RankConfigs", func(db *gorm.DB) *gorm.DB {
			return db.Order("rank_salary_configs.rank_level ASC")
		}).
		Preload("RankConfigs.Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("salary_steps.step_number ASC")
		}).
		Where("id = ?", id).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) CodeExists(ctx context.Context, tenantID, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ScaleVersion{}).
		Scopes(tenant.Scope(tenantID)).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindActive(ctx context.Context, tenantID string) (*ScaleVersion, error) {
	var v ScaleVersion
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Preload("RankConfigs.Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("salary_steps.step_number ASC")
		}).
		Preload("RankConfigs").
		Where("status = ?", StatusActive).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FindCovering answers back-dated lookups: the version (ACTIVE or ARCHIVED)
// whose effective/expiry window brackets asOf.
func (r *repository) FindCovering(ctx context.Context, tenantID string, asOf time.Time) (*ScaleVersion, error) {
	var v ScaleVersion
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Preload("RankConfigs.Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("salary_steps.step_number ASC")
		}).
		Preload("RankConfigs").
		Where("status IN ?", []string{StatusActive, StatusArchived}).
		Where("effective_date <= ?", asOf).
		Where("expiry_date IS NULL OR expiry_date > ?", asOf).
		Order("effective_date DESC").
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ReplaceAggregate rewrites a DRAFT version's children and scalar fields as
// one unit. The registry is the only writer of rank/step rows.
func (r *repository) ReplaceAggregate(ctx context.Context, v *ScaleVersion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("rank_config_id IN (?)",
				tx.Model(&RankSalaryConfig{}).Select("id").Where("scale_version_id = ?", v.ID),
			).
			Delete(&SalaryStep{}).Error; err != nil {
			return err
		}
		if err := tx.Where("scale_version_id = ?", v.ID).Delete(&RankSalaryConfig{}).Error; err != nil {
			return err
		}
		return tx.Save(v).Error
	})
}

// ArchiveActive flips whichever version is ACTIVE to ARCHIVED and stamps its
// expiry. Returns rows affected; zero means the tenant had no active scale.
func (r *repository) ArchiveActive(ctx context.Context, tenantID string, expiry time.Time) (int64, error) {
	res, err := r.execer().ExecContext(ctx, `
UPDATE scale_versions
SET status = $1, expiry_date = $2, updated_at = NOW()
WHERE tenant_id = $3 AND status = $4
`, StatusArchived, expiry, tenantID, StatusActive)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// PromoteDraft activates a version only if it is still DRAFT. The status
// predicate makes the activate a compare-and-swap: a concurrent activation
// of the same version affects zero rows here.
func (r *repository) PromoteDraft(ctx context.Context, tenantID, id string) (int64, error) {
	res, err := r.execer().ExecContext(ctx, `
UPDATE scale_versions
SET status = $1, expiry_date = NULL, updated_at = NOW()
WHERE id = $2 AND tenant_id = $3 AND status = $4
`, StatusActive, id, tenantID, StatusDraft)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) ArchiveVersion(ctx context.Context, tenantID, id string, expiry time.Time) (int64, error) {
	res, err := r.execer().ExecContext(ctx, `
UPDATE scale_versions
SET status = $1, expiry_date = $2, updated_at = NOW()
WHERE id = $3 AND tenant_id = $4 AND status = $5
`, StatusArchived, expiry, id, tenantID, StatusActive)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a DRAFT aggregate. Activated versions are never deleted.
func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v ScaleVersion
		err := tx.Scopes(tenant.Scope(tenantID)).Where("id = ?", id).First(&v).Error
		if err != nil {
			return err
		}
		if v.Status != StatusDraft {
			return gorm.ErrInvalidData
		}
		if err := tx.
			Where("rank_config_id IN (?)",
				tx.Model(&RankSalaryConfig{}).Select("id").Where("scale_version_id = ?", v.ID),
			).
			Delete(&SalaryStep{}).Error; err != nil {
			return err
		}
		if err := tx.Where("scale_version_id = ?", v.ID).Delete(&RankSalaryConfig{}).Error; err != nil {
			return err
		}
		return tx.Delete(&v).Error
	})
}

// IsNotFound reports whether the error is gorm's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
