package salaryscale

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft    = "DRAFT"
	StatusActive   = "ACTIVE"
	StatusArchived = "ARCHIVED"
)

// ScaleVersion is the aggregate root of one complete pay scale. Once
// activated the aggregate is immutable; changes go through Duplicate into a
// fresh draft. At most one version per tenant is ACTIVE at any instant.
type ScaleVersion struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_scale_versions_tenant_status;uniqueIndex:uq_scale_versions_tenant_code"`
	Code            string     `gorm:"type:varchar(40);not null;uniqueIndex:uq_scale_versions_tenant_code"`
	Name            string     `gorm:"type:varchar(120);not null"`
	EffectiveDate   time.Time  `gorm:"type:date;not null"`
	ExpiryDate      *time.Time `gorm:"type:date"`
	Status          string     `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_scale_versions_tenant_status"`
	StepCount       int        `gorm:"type:int;not null"`
	StepPeriodYears int        `gorm:"type:int;not null;default:2"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`

	RankConfigs []RankSalaryConfig `gorm:"foreignKey:ScaleVersionID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RankSalaryConfig belongs to exactly one ScaleVersion and carries the
// ordered step table for one rank.
type RankSalaryConfig struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ScaleVersionID uuid.UUID `gorm:"type:uuid;not null;index"`
	RankCode       string    `gorm:"type:varchar(20);not null"`
	RankCategory   string    `gorm:"type:varchar(40)"`
	RankLevel      int       `gorm:"type:int;not null"`
	BaseSalary     int64     `gorm:"type:bigint;not null"`
	CeilingSalary  int64     `gorm:"type:bigint;not null"`

	Steps []SalaryStep `gorm:"foreignKey:RankConfigID;constraint:OnDelete:CASCADE"`
}

// SalaryStep is one salary tier inside a rank. YearsRequired nil means the
// version-level StepPeriodYears applies.
type SalaryStep struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RankConfigID  uuid.UUID `gorm:"type:uuid;not null;index"`
	StepNumber    int       `gorm:"type:int;not null"`
	Amount        int64     `gorm:"type:bigint;not null"`
	YearsRequired *int      `gorm:"type:int"`
}

// StepTable returns the steps of the rank ordered by step number.
func (rc *RankSalaryConfig) StepTable() []SalaryStep {
	steps := make([]SalaryStep, len(rc.Steps))
	copy(steps, rc.Steps)
	for i := 1; i < len(steps); i++ {
		for j := i; j > 0 && steps[j-1].StepNumber > steps[j].StepNumber; j-- {
			steps[j-1], steps[j] = steps[j], steps[j-1]
		}
	}
	return steps
}

// StepCount is the number of steps in this rank's table.
func (rc *RankSalaryConfig) StepCount() int {
	return len(rc.Steps)
}

// StepAmount returns the salary at a step, or false when the step is out of
// range.
func (rc *RankSalaryConfig) StepAmount(step int) (int64, bool) {
	for _, s := range rc.Steps {
		if s.StepNumber == step {
			return s.Amount, true
		}
	}
	return 0, false
}

// YearsRequiredFor returns the years an employee must spend on the previous
// step before reaching the given step. The per-step value governs; the
// version default fills the gap when a step omits its own.
func (v *ScaleVersion) YearsRequiredFor(rc *RankSalaryConfig, step int) (int, bool) {
	for _, s := range rc.Steps {
		if s.StepNumber == step {
			if s.YearsRequired != nil {
				return *s.YearsRequired, true
			}
			return v.StepPeriodYears, true
		}
	}
	return 0, false
}

// RankConfig finds the config for a rank code within the version.
func (v *ScaleVersion) RankConfig(rankCode string) (*RankSalaryConfig, bool) {
	for i := range v.RankConfigs {
		if v.RankConfigs[i].RankCode == rankCode {
			return &v.RankConfigs[i], true
		}
	}
	return nil, false
}
