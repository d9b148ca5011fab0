package paystate

import (
	"time"

	"github.com/google/uuid"
)

// EmployeePayState is the engine-owned record of where an employee sits on
// the pay scale. Only the progression processor and the manual override path
// write it; eligibility evaluation reads it and nothing else.
type EmployeePayState struct {
	EmployeeID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID          uuid.UUID `gorm:"type:uuid;not null;index"`
	RankCode          string    `gorm:"type:varchar(20);not null"`
	CurrentStep       int       `gorm:"type:int;not null;default:0"`
	CurrentSalary     int64     `gorm:"type:bigint;not null;default:0"`
	StepEffectiveDate time.Time `gorm:"type:date;not null"`
	ScaleVersionID    uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EmployeePayState) TableName() string {
	return "employee_pay_states"
}
