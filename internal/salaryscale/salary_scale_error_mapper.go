package salaryscale

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	salaryscaleerrors "github.com/kaleab-kali/FPPMS-sub005/internal/salaryscale/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_scale_versions_tenant_code" {
			return salaryscaleerrors.ErrScaleCodeExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_scale_versions_tenant_code") {
		return salaryscaleerrors.ErrScaleCodeExists
	}

	return err
}
