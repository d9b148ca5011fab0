package salaryscaleerrors

import (
	"net/http"

	"github.com/kaleab-kali/FPPMS-sub005/internal/shared/apperror"
)

var (
	ErrInvalidTenantID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid tenant id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrNoRankConfigs = apperror.New(
		apperror.CodeInvalidInput,
		"a scale version requires at least one rank config",
		http.StatusBadRequest,
	)
	ErrDuplicateRankCode = apperror.New(
		apperror.CodeInvalidInput,
		"duplicate rank code within the scale version",
		http.StatusBadRequest,
	)
	ErrNonContiguousSteps = apperror.New(
		apperror.CodeInvalidInput,
		"salary steps must be contiguous starting at step 0",
		http.StatusBadRequest,
	)
	ErrNonMonotonicSalary = apperror.New(
		apperror.CodeInvalidInput,
		"salary amounts must not decrease with step number",
		http.StatusBadRequest,
	)
	ErrCeilingBelowFinalStep = apperror.New(
		apperror.CodeInvalidInput,
		"ceiling salary must be at least the final step amount",
		http.StatusBadRequest,
	)
	ErrNegativeYearsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"years required must not be negative",
		http.StatusBadRequest,
	)
	ErrFutureEffectiveDate = apperror.New(
		apperror.CodeInvalidInput,
		"effective date must not be in the future at activation time",
		http.StatusBadRequest,
	)
	ErrNoActiveScale = apperror.New(
		apperror.CodeNotFound,
		"tenant has no active scale version",
		http.StatusNotFound,
	)
	ErrScaleNotFound = apperror.New(
		apperror.CodeNotFound,
		"scale version not found",
		http.StatusNotFound,
	)
	ErrNoScaleCoversDate = apperror.New(
		apperror.CodeNotFound,
		"no scale version covers the requested date",
		http.StatusNotFound,
	)
	ErrRankNotInScale = apperror.New(
		apperror.CodeNotFound,
		"rank is not part of the scale version",
		http.StatusNotFound,
	)
	ErrStepNotInRank = apperror.New(
		apperror.CodeNotFound,
		"step does not exist for this rank",
		http.StatusNotFound,
	)
	ErrScaleNotEditable = apperror.New(
		apperror.CodeConflict,
		"only DRAFT scale versions can be edited",
		http.StatusConflict,
	)
	ErrScaleNotDraft = apperror.New(
		apperror.CodeConflict,
		"only DRAFT scale versions can be activated",
		http.StatusConflict,
	)
	ErrScaleNotActive = apperror.New(
		apperror.CodeConflict,
		"only ACTIVE scale versions can be archived",
		http.StatusConflict,
	)
	ErrScaleCodeExists = apperror.New(
		apperror.CodeConflict,
		"a scale version with this code already exists for the tenant",
		http.StatusConflict,
	)
)
