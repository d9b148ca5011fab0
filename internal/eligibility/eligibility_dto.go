package eligibility

type EligibilityRecordResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	RankCode       string  `json:"rank_code"`
	CurrentStep    int     `json:"current_step"`
	ProposedStep   int     `json:"proposed_step"`
	DueDate        string  `json:"due_date"`
	Status         string  `json:"status"`
	Reason         string  `json:"reason,omitempty"`
	ScaleVersionID string  `json:"scale_version_id"`
	EvaluatedAt    string  `json:"evaluated_at"`
	DecidedBy      *string `json:"decided_by,omitempty"`
	DecidedAt      *string `json:"decided_at,omitempty"`
}

// EvaluationSummary reports one evaluator pass over a tenant.
type EvaluationSummary struct {
	Evaluated    int `json:"evaluated"`
	Created      int `json:"created"`
	Updated      int `json:"updated"`
	Disqualified int `json:"disqualified"`
	Postponed    int `json:"postponed"`
	Skipped      int `json:"skipped"`
}
