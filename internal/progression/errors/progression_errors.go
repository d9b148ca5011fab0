package progressionerrors

import (
	"net/http"

	"github.com/kaleab-kali/FPPMS-sub005/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"Actor ID must be a valid UUID",
		http.StatusBadRequest,
	)

	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Effective date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"A reason is required for this action",
		http.StatusBadRequest,
	)

	ErrOrderReferenceRequired = apperror.New(
		apperror.CodeInvalidInput,
		"An authorizing order reference is required for a manual jump",
		http.StatusBadRequest,
	)

	ErrStepOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"Target step is outside the rank's step table",
		http.StatusBadRequest,
	)

	ErrEmptyBatch = apperror.New(
		apperror.CodeInvalidInput,
		"Batch must contain at least one eligibility record ID",
		http.StatusBadRequest,
	)

	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Eligibility record not found",
		http.StatusNotFound,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrPayStateNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee has no pay state on the scale",
		http.StatusNotFound,
	)

	ErrRecordNotActionable = apperror.New(
		apperror.CodeInvalidState,
		"Eligibility record is not in a processable state",
		http.StatusUnprocessableEntity,
	)

	ErrRecordModified = apperror.New(
		apperror.CodeConflict,
		"Eligibility record was modified by another operation, re-read and retry",
		http.StatusConflict,
	)

	ErrRecordStale = apperror.New(
		apperror.CodeConflict,
		"Employee pay state changed since this record was evaluated, re-run the evaluator",
		http.StatusConflict,
	)

	ErrEmployeeBusy = apperror.New(
		apperror.CodeConflict,
		"Another progression is in flight for this employee",
		http.StatusConflict,
	)
)
