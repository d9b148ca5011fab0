package historyerrors

import (
	"net/http"

	"github.com/kaleab-kali/FPPMS-sub005/internal/shared/apperror"
)

var (
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"From date must not be after to date",
		http.StatusBadRequest,
	)

	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrEventNotFound = apperror.New(
		apperror.CodeNotFound,
		"Progression event not found",
		http.StatusNotFound,
	)
)
