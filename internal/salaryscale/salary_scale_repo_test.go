package salaryscale

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// A gorm handle without a connection pool must surface the pool error from
// status updates, not panic.
func TestRepositoryExecerSurfacesPoolError(t *testing.T) {
	r := &repository{db: &gorm.DB{Config: &gorm.Config{}}}

	rows, err := r.ArchiveActive(context.Background(), "7c9e6679-7425-40de-944b-e07fc1f90ae7", time.Now().UTC())
	assert.ErrorIs(t, err, gorm.ErrInvalidDB)
	assert.Zero(t, rows)

	rows, err = r.PromoteDraft(context.Background(), "7c9e6679-7425-40de-944b-e07fc1f90ae7", "id")
	assert.ErrorIs(t, err, gorm.ErrInvalidDB)
	assert.Zero(t, rows)
}
