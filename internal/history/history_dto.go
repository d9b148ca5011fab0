package history

type ProgressionEventResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	Kind           string `json:"kind"`
	RankCode       string `json:"rank_code"`
	FromStep       int    `json:"from_step"`
	ToStep         int    `json:"to_step"`
	AmountBefore   int64  `json:"amount_before"`
	AmountAfter    int64  `json:"amount_after"`
	EffectiveDate  string `json:"effective_date"`
	ScaleVersionID string `json:"scale_version_id"`
	OrderReference string `json:"order_reference,omitempty"`
	Reason         string `json:"reason,omitempty"`
	Notes          string `json:"notes,omitempty"`
	DocumentPath   string `json:"document_path,omitempty"`
	ActorID        string `json:"actor_id"`
	RecordedAt     string `json:"recorded_at"`
}

// TimelineResponse is an employee's reconstructed pay history.
type TimelineResponse struct {
	EmployeeID string                     `json:"employee_id"`
	Events     []ProgressionEventResponse `json:"events"`
}
