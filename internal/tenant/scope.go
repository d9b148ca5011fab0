package tenant

import "gorm.io/gorm"

// Scope restricts a query to one tenant. Every engine table carries a
// tenant_id column; repositories apply this on every read.
func Scope(tenantID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}
