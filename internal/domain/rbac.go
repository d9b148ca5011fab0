package domain

// EnforceRequest is the tuple evaluated by the casbin enforcer. Subjects are
// employees acting inside one tenant domain.
type EnforceRequest struct {
	EmployeeID string
	TenantID   string
	Resource   string
	Action     string
}
