package progression

type ProcessSingleRequest struct {
	EffectiveDate *string `json:"effective_date,omitempty"`
	Notes         string  `json:"notes"`
}

type ProcessBatchRequest struct {
	EligibilityIDs []string `json:"eligibility_ids" binding:"required,min=1,dive,uuid"`
	EffectiveDate  *string  `json:"effective_date,omitempty"`
	Notes          string   `json:"notes"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ManualJumpRequest struct {
	EmployeeID     string  `json:"employee_id" binding:"required,uuid"`
	ToStep         *int    `json:"to_step" binding:"required,min=0"`
	OrderReference string  `json:"order_reference" binding:"required"`
	Reason         string  `json:"reason" binding:"required"`
	EffectiveDate  *string `json:"effective_date,omitempty"`
	DocumentPath   string  `json:"document_path"`
	Notes          string  `json:"notes"`
}

// ProgressionResultResponse describes one applied increment or jump.
type ProgressionResultResponse struct {
	EventID       string `json:"event_id"`
	EmployeeID    string `json:"employee_id"`
	RankCode      string `json:"rank_code"`
	Kind          string `json:"kind"`
	FromStep      int    `json:"from_step"`
	ToStep        int    `json:"to_step"`
	AmountBefore  int64  `json:"amount_before"`
	AmountAfter   int64  `json:"amount_after"`
	EffectiveDate string `json:"effective_date"`
}

// BatchError is one per-id failure or skip inside a batch summary.
type BatchError struct {
	EligibilityID string `json:"eligibility_id"`
	Kind          string `json:"kind"`
	Message       string `json:"message"`
}

// BatchSummary is the batch contract: per-id outcomes, never all-or-nothing.
type BatchSummary struct {
	Processed int          `json:"processed"`
	Skipped   int          `json:"skipped"`
	Failed    int          `json:"failed"`
	Errors    []BatchError `json:"errors"`
}
