package eligibilityerrors

import (
	"net/http"

	"github.com/kaleab-kali/FPPMS-sub005/internal/shared/apperror"
)

var (
	ErrInvalidTenantID = apperror.New(
		apperror.CodeInvalidInput,
		"Tenant ID must be a valid UUID",
		http.StatusBadRequest,
	)

	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"Actor ID must be a valid UUID",
		http.StatusBadRequest,
	)

	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"Status filter is not a known eligibility status",
		http.StatusBadRequest,
	)

	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Eligibility record not found",
		http.StatusNotFound,
	)

	ErrRecordModified = apperror.New(
		apperror.CodeConflict,
		"Eligibility record was modified by another operation, re-read and retry",
		http.StatusConflict,
	)

	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"Eligibility record is not in a state that allows this action",
		http.StatusUnprocessableEntity,
	)
)
