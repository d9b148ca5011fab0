package directory

import (
	"time"

	"github.com/google/uuid"
)

const (
	EmploymentActive    = "ACTIVE"
	EmploymentSuspended = "SUSPENDED"
	EmploymentRetired   = "RETIRED"
)

// Employee is the read-only projection of the directory service's employee
// record. The engine never writes this table.
type Employee struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID             uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName             string    `gorm:"type:varchar(120)"`
	RankCode             string    `gorm:"type:varchar(20);not null"`
	EmploymentStatus     string    `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	HasPendingDiscipline bool      `gorm:"not null;default:false"`
	HireDate             time.Time `gorm:"type:date"`
}

func (Employee) TableName() string {
	return "employees"
}
