package salaryscale

type SalaryStepInput struct {
	StepNumber    int   `json:"step_number"`
	Amount        int64 `json:"amount" binding:"required"`
	YearsRequired *int  `json:"years_required,omitempty"`
}

type RankConfigInput struct {
	RankCode      string            `json:"rank_code" binding:"required"`
	RankCategory  string            `json:"rank_category"`
	RankLevel     int               `json:"rank_level" binding:"required"`
	BaseSalary    int64             `json:"base_salary" binding:"required"`
	CeilingSalary int64             `json:"ceiling_salary" binding:"required"`
	Steps         []SalaryStepInput `json:"steps" binding:"required,min=1"`
}

type CreateScaleVersionRequest struct {
	Code            string            `json:"code" binding:"required"`
	Name            string            `json:"name" binding:"required"`
	EffectiveDate   string            `json:"effective_date" binding:"required"`
	StepPeriodYears int               `json:"step_period_years"`
	RankConfigs     []RankConfigInput `json:"rank_configs" binding:"required,min=1"`
}

// UpdateScaleVersionRequest patches a DRAFT version. A nil RankConfigs leaves
// the existing aggregate untouched; a non-nil value replaces it whole.
type UpdateScaleVersionRequest struct {
	Name            *string           `json:"name,omitempty"`
	EffectiveDate   *string           `json:"effective_date,omitempty"`
	StepPeriodYears *int              `json:"step_period_years,omitempty"`
	RankConfigs     []RankConfigInput `json:"rank_configs,omitempty"`
}

type DuplicateScaleVersionRequest struct {
	NewCode string `json:"new_code" binding:"required"`
	NewName string `json:"new_name"`
}

type SalaryStepResponse struct {
	StepNumber    int   `json:"step_number"`
	Amount        int64 `json:"amount"`
	YearsRequired *int  `json:"years_required,omitempty"`
}

type RankConfigResponse struct {
	ID            string               `json:"id"`
	RankCode      string               `json:"rank_code"`
	RankCategory  string               `json:"rank_category,omitempty"`
	RankLevel     int                  `json:"rank_level"`
	BaseSalary    int64                `json:"base_salary"`
	CeilingSalary int64                `json:"ceiling_salary"`
	Steps         []SalaryStepResponse `json:"steps"`
}

type ScaleVersionResponse struct {
	ID              string               `json:"id"`
	Code            string               `json:"code"`
	Name            string               `json:"name"`
	EffectiveDate   string               `json:"effective_date"`
	ExpiryDate      *string              `json:"expiry_date,omitempty"`
	Status          string               `json:"status"`
	StepCount       int                  `json:"step_count"`
	StepPeriodYears int                  `json:"step_period_years"`
	RankConfigs     []RankConfigResponse `json:"rank_configs,omitempty"`
}

type ResolveSalaryResponse struct {
	RankCode       string `json:"rank_code"`
	Step           int    `json:"step"`
	AsOf           string `json:"as_of"`
	Amount         int64  `json:"amount"`
	ScaleVersionID string `json:"scale_version_id"`
	ScaleCode      string `json:"scale_code"`
}
