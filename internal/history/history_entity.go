package history

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindAutomatic  = "AUTOMATIC"
	KindManualJump = "MANUAL_JUMP"
)

// ProgressionEvent is one row of the append-only ledger. Rows are inserted
// inside the same transaction as the pay-state change they describe and are
// never updated or deleted afterwards. The ledger is the source of truth for
// what changed and why.
type ProgressionEvent struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_progression_events_tenant_date"`
	EmployeeID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_progression_events_employee"`
	Kind           string     `gorm:"type:varchar(20);not null"`
	RankCode       string     `gorm:"type:varchar(20);not null"`
	FromStep       int        `gorm:"type:int;not null"`
	ToStep         int        `gorm:"type:int;not null"`
	AmountBefore   int64      `gorm:"type:bigint;not null"`
	AmountAfter    int64      `gorm:"type:bigint;not null"`
	EffectiveDate  time.Time  `gorm:"type:date;not null;index:idx_progression_events_tenant_date"`
	ScaleVersionID uuid.UUID  `gorm:"type:uuid;not null"`
	OrderReference string     `gorm:"type:varchar(100)"`
	Reason         string     `gorm:"type:varchar(500)"`
	Notes          string     `gorm:"type:varchar(1000)"`
	DocumentPath   string     `gorm:"type:varchar(500)"`
	ActorID        uuid.UUID  `gorm:"type:uuid;not null"`
	RecordedAt     time.Time  `gorm:"not null"`
}

func (ProgressionEvent) TableName() string {
	return "progression_events"
}
