package events

import "time"

const EmployeeHiredTopic = "pms.employee.lifecycle.v1"

type EmployeeHiredEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	TenantID   string    `json:"tenant_id"`
	RankCode   string    `json:"rank_code"`
	HireDate   time.Time `json:"hire_date"`
	OccurredAt time.Time `json:"occurred_at"`
}
