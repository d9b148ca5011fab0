package events

import "time"

const ProgressionAwardedTopic = "pms.salary.progression.v1"

type ProgressionAwardedEvent struct {
	EventType    string    `json:"event_type"`
	EmployeeID   string    `json:"employee_id"`
	TenantID     string    `json:"tenant_id"`
	Kind         string    `json:"kind"`
	FromStep     int       `json:"from_step"`
	ToStep       int       `json:"to_step"`
	AmountAfter  int64     `json:"amount_after"`
	EffectiveAt  time.Time `json:"effective_at"`
	OccurredAt   time.Time `json:"occurred_at"`
}
