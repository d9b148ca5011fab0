package salaryscale

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	salaryscaleerrors "github.com/kaleab-kali/FPPMS-sub005/internal/salaryscale/errors"
)

// ResolvedSalary is the registry's answer to "what does rank R earn at step S
// as of date D".
type ResolvedSalary struct {
	Amount         int64
	ScaleVersionID uuid.UUID
	ScaleCode      string
}

//go:generate mockgen -source=salary_scale_service.go -destination=mock/salary_scale_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tenantID, actorID string, req CreateScaleVersionRequest) (ScaleVersionResponse, error)
	GetAll(ctx context.Context, tenantID string) ([]ScaleVersionResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (ScaleVersionResponse, error)
	Update(ctx context.Context, tenantID, id string, req UpdateScaleVersionRequest) (ScaleVersionResponse, error)
	Activate(ctx context.Context, tenantID, id string) (ScaleVersionResponse, error)
	Archive(ctx context.Context, tenantID, id string) (ScaleVersionResponse, error)
	Duplicate(ctx context.Context, tenantID, actorID, id string, req DuplicateScaleVersionRequest) (ScaleVersionResponse, error)
	ResolveSalary(ctx context.Context, tenantID, rankCode string, step int, asOf time.Time) (ResolvedSalary, error)
	ActiveVersion(ctx context.Context, tenantID string) (*ScaleVersion, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	cache  *ActiveScaleCache
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, cache *ActiveScaleCache, logger ...*zap.Logger) Service {
	l := zap.L().Named("salaryscale.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salaryscale.service")
	}
	return &service{db: db, repo: repo, cache: cache, logger: l}
}

func (s *service) Create(ctx context.Context, tenantID, actorID string, req CreateScaleVersionRequest) (ScaleVersionResponse, error) {
	s.logger.Debug("create scale version requested",
		zap.String("tenant_id", tenantID),
		zap.String("code", req.Code),
		zap.Int("rank_configs", len(req.RankConfigs)),
	)

	tenantUUID, err := uuid.Parse(tenantID)
	if err != nil {
		return ScaleVersionResponse{}, salaryscaleerrors.ErrInvalidTenantID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ScaleVersionResponse{}, salaryscaleerrors.ErrInvalidActorID
	}
	effectiveDate, err := parseDate(req.EffectiveDate)
	if err != nil {
		return ScaleVersionResponse{}, err
	}

	if err := validateRankConfigs(req.RankConfigs); err != nil {
		s.logger.Warn("create scale version validation failed",
			zap.String("tenant_id", tenantID),
			zap.String("code", req.Code),
			zap.Error(err),
		)
		return ScaleVersionResponse{}, err
	}

	exists, err := s.repo.CodeExists(ctx, tenantID, req.Code)
	if err != nil {
		return ScaleVersionResponse{}, err
	}
	if exists {
		return ScaleVersionResponse{}, salaryscaleerrors.ErrScaleCodeExists
	}

	stepPeriod := req.StepPeriodYears
	if stepPeriod <= 0 {
		stepPeriod = 2
	}

	v := &ScaleVersion{
		ID:              uuid.New(),
		TenantID:        tenantUUID,
		Code:            req.Code,
		Name:            req.Name,
		EffectiveDate:   effectiveDate,
		Status:          StatusDraft,
		StepCount:       maxStepCount(req.RankConfigs),
		StepPeriodYears: stepPeriod,
		CreatedBy:       actorUUID,
		RankConfigs:     buildRankConfigs(req.RankConfigs),
	}

	if err := s.repo.Create(ctx, v); err != nil {
		s.logger.Error("create scale version persist failed", zap.Error(err))
		return ScaleVersionResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create scale version success",
		zap.String("scale_version_id", v.ID.String()),
		zap.String("tenant_id", tenantID),
		zap.String("code", v.Code),
	)

	return mapToResponse(*v), nil
}

func (s *service) GetAll(ctx context.Context, tenantID string) ([]ScaleVersionResponse, error) {
	versions, err := s.repo.FindAllByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	res := make([]ScaleVersionResponse, len(versions))
	for i, v := range versions {
		res[i] = mapToResponse(v)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, tenantID, id string) (ScaleVersionResponse, error) {
	v, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		if IsNotFound(err) {
			return ScaleVersionResponse{}, salaryscaleerrors.ErrScaleNotFound
		}
		return ScaleVersionResponse{}, err
	}
	return mapToResponse(*v), nil
}

func (s *service) Update(ctx context.Context, tenantID, id string, req UpdateScaleVersionRequest) (ScaleVersionResponse, error) {
	v, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		if IsNotFound(err) {
			return ScaleVersionResponse{}, salaryscaleerrors.ErrScaleNotFound
		}
		return ScaleVersionResponse{}, err
	}

	if v.Status != StatusDraft {
		s.logger.Warn("update rejected for non-draft scale version",
			zap.String("scale_version_id", id),
			zap.String("status", v.Status),
		)
		return ScaleVersionResponse{}, salaryscaleerrors.ErrScaleNotEditable
	}

	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.EffectiveDate != nil {
		effectiveDate, err := parseDate(*req.EffectiveDate)
		if err != nil {
			return ScaleVersionResponse{}, err
		}
		v.EffectiveDate = effectiveDate
	}
	if req.StepPeriodYears != nil {
		if *req.StepPeriodYears <= 0 {
			return ScaleVersionResponse{}, salaryscaleerrors.ErrNegativeYearsRequired
		}
		v.StepPeriodYears = *req.StepPeriodYears
	}
	if req.RankConfigs != nil {
		if err := validateRankConfigs(req.RankConfigs); err != nil {
			return ScaleVersionResponse{}, err
		}
		v.RankConfigs = buildRankConfigs(req.RankConfigs)
		for i := range v.RankConfigs {
			v.RankConfigs[i].ScaleVersionID = v.ID
		}
		v.StepCount = maxStepCount(req.RankConfigs)
	}

	if err := s.repo.ReplaceAggregate(ctx, v); err != nil {
		s.logger.Error("update scale version persist failed", zap.String("scale_version_id", id), zap.Error(err))
		return ScaleVersionResponse{}, mapRepositoryError(err)
	}

	s.cache.Invalidate(ctx, tenantID)
	s.logger.Info("update scale version success", zap.String("scale_version_id", id))

	return mapToResponse(*v), nil
}

// Activate promotes a DRAFT version and archives whichever version was
// active, in one transaction. The row predicates make the pair a
// compare-and-swap rather than a read-then-write.
func (s *service) Activate(ctx context.Context, tenantID, id string) (ScaleVersionResponse, error) {
	v, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		if IsNotFound(err) {
			return ScaleVersionResponse{}, salaryscaleerrors.ErrScaleNotFound
		}
		return ScaleVersionResponse{}, err
	}

	if v.Status != StatusDraft {
		return ScaleVersionResponse{}, salaryscaleerrors.ErrScaleNotDraft
	}

	now := time.Now().UTC()
	if v.EffectiveDate.After(now) {
		return ScaleVersionResponse{}, salaryscaleerrors.ErrFutureEffectiveDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("activate scale version begin tx failed", zap.Error(err))
		return ScaleVersionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// The outgoing version stops covering dates from the incoming version's
	// effective date onward.
	if _, err := qtx.ArchiveActive(ctx, tenantID, v.EffectiveDate); err != nil {
		s.logger.Error("activate scale version archive step failed", zap.Error(err))
		return ScaleVersionResponse{}, err
	}

	promoted, err := qtx.PromoteDraft(ctx, tenantID, id)
	if err != nil {
		s.logger.Error("activate scale version promote step failed", zap.Error(err))
		return ScaleVersionResponse{}, err
	}
	if promoted == 0 {
		// Lost the race: someone else activated or archived it first.
		return ScaleVersionResponse{}, salaryscaleerrors.ErrScaleNotDraft
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("activate scale version commit failed", zap.Error(err))
		return ScaleVersionResponse{}, err
	}

	s.cache.Invalidate(ctx, tenantID)
	s.logger.Info("activate scale version success",
		zap.String("scale_version_id", id),
		zap.String("tenant_id", tenantID),
	)

	v.Status = StatusActive
	v.ExpiryDate = nil
	return mapToResponse(*v), nil
}

// Archive retires the active version with no replacement. Callers are
// expected to activate a successor; until then the tenant has no active
// scale and progression operations will fail with not-found.
func (s *service) Archive(ctx context.Context, tenantID, id string) (ScaleVersionResponse, error) {
	v, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		if IsNotFound(err) {
			return ScaleVersionResponse{}, salaryscaleerrors.ErrScaleNotFound
		}
		return ScaleVersionResponse{}, err
	}

	now := time.Now().UTC()
	archived, err := s.repo.ArchiveVersion(ctx, tenantID, id, now)
	if err != nil {
		s.logger.Error("archive scale version failed", zap.String("scale_version_id", id), zap.Error(err))
		return ScaleVersionResponse{}, err
	}
	if archived == 0 {
		return ScaleVersionResponse{}, salaryscaleerrors.ErrScaleNotActive
	}

	s.cache.Invalidate(ctx, tenantID)
	s.logger.Info("archive scale version success", zap.String("scale_version_id", id))

	v.Status = StatusArchived
	v.ExpiryDate = &now
	return mapToResponse(*v), nil
}

// Duplicate clones the full aggregate into a new DRAFT. The copies get fresh
// identities so edits to the draft never touch the source version's rows.
func (s *service) Duplicate(ctx context.Context, tenantID, actorID, id string, req DuplicateScaleVersionRequest) (ScaleVersionResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ScaleVersionResponse{}, salaryscaleerrors.ErrInvalidActorID
	}

	src, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		if IsNotFound(err) {
			return ScaleVersionResponse{}, salaryscaleerrors.ErrScaleNotFound
		}
		return ScaleVersionResponse{}, err
	}

	exists, err := s.repo.CodeExists(ctx, tenantID, req.NewCode)
	if err != nil {
		return ScaleVersionResponse{}, err
	}
	if exists {
		return ScaleVersionResponse{}, salaryscaleerrors.ErrScaleCodeExists
	}

	name := req.NewName
	if name == "" {
		name = src.Name + " (copy)"
	}

	clone := &ScaleVersion{
		ID:              uuid.New(),
		TenantID:        src.TenantID,
		Code:            req.NewCode,
		Name:            name,
		EffectiveDate:   src.EffectiveDate,
		Status:          StatusDraft,
		StepCount:       src.StepCount,
		StepPeriodYears: src.StepPeriodYears,
		CreatedBy:       actorUUID,
	}

	clone.RankConfigs = make([]RankSalaryConfig, len(src.RankConfigs))
	for i, rc := range src.RankConfigs {
		newRank := RankSalaryConfig{
			ID:             uuid.New(),
			ScaleVersionID: clone.ID,
			RankCode:       rc.RankCode,
			RankCategory:   rc.RankCategory,
			RankLevel:      rc.RankLevel,
			BaseSalary:     rc.BaseSalary,
			CeilingSalary:  rc.CeilingSalary,
		}
		newRank.Steps = make([]SalaryStep, len(rc.Steps))
		for j, st := range rc.Steps {
			years := st.YearsRequired
			if years != nil {
				y := *years
				years = &y
			}
			newRank.Steps[j] = SalaryStep{
				ID:            uuid.New(),
				RankConfigID:  newRank.ID,
				StepNumber:    st.StepNumber,
				Amount:        st.Amount,
				YearsRequired: years,
			}
		}
		clone.RankConfigs[i] = newRank
	}

	if err := s.repo.Create(ctx, clone); err != nil {
		s.logger.Error("duplicate scale version persist failed", zap.Error(err))
		return ScaleVersionResponse{}, mapRepositoryError(err)
	}

	s.cache.Invalidate(ctx, tenantID)
	s.logger.Info("duplicate scale version success",
		zap.String("source_id", id),
		zap.String("clone_id", clone.ID.String()),
		zap.String("code", clone.Code),
	)

	return mapToResponse(*clone), nil
}

// ResolveSalary answers from whichever version covered asOf, which may be an
// archived one for back-dated recomputation.
func (s *service) ResolveSalary(ctx context.Context, tenantID, rankCode string, step int, asOf time.Time) (ResolvedSalary, error) {
	v, err := s.repo.FindCovering(ctx, tenantID, asOf)
	if err != nil {
		if IsNotFound(err) {
			return ResolvedSalary{}, salaryscaleerrors.ErrNoScaleCoversDate
		}
		return ResolvedSalary{}, err
	}

	rc, ok := v.RankConfig(rankCode)
	if !ok {
		return ResolvedSalary{}, salaryscaleerrors.ErrRankNotInScale
	}

	amount, ok := rc.StepAmount(step)
	if !ok {
		return ResolvedSalary{}, salaryscaleerrors.ErrStepNotInRank
	}

	return ResolvedSalary{
		Amount:         amount,
		ScaleVersionID: v.ID,
		ScaleCode:      v.Code,
	}, nil
}

// ActiveVersion serves the evaluator and the manual-override path through
// the redis cache.
func (s *service) ActiveVersion(ctx context.Context, tenantID string) (*ScaleVersion, error) {
	v, err := s.cache.GetActive(ctx, tenantID)
	if err != nil {
		if IsNotFound(err) {
			return nil, salaryscaleerrors.ErrNoActiveScale
		}
		return nil, err
	}
	return v, nil
}

func validateRankConfigs(configs []RankConfigInput) error {
	if len(configs) == 0 {
		return salaryscaleerrors.ErrNoRankConfigs
	}

	seen := make(map[string]struct{}, len(configs))
	for _, rc := range configs {
		if _, dup := seen[rc.RankCode]; dup {
			return salaryscaleerrors.ErrDuplicateRankCode.WithDetail(rc.RankCode)
		}
		seen[rc.RankCode] = struct{}{}

		if len(rc.Steps) == 0 {
			return salaryscaleerrors.ErrNonContiguousSteps.WithDetail(rc.RankCode)
		}

		steps := make([]SalaryStepInput, len(rc.Steps))
		copy(steps, rc.Steps)
		sort.Slice(steps, func(i, j int) bool { return steps[i].StepNumber < steps[j].StepNumber })

		for i, st := range steps {
			if st.StepNumber != i {
				return salaryscaleerrors.ErrNonContiguousSteps.WithDetail(rc.RankCode)
			}
			if i > 0 && st.Amount < steps[i-1].Amount {
				return salaryscaleerrors.ErrNonMonotonicSalary.WithDetail(rc.RankCode)
			}
			if st.YearsRequired != nil && *st.YearsRequired < 0 {
				return salaryscaleerrors.ErrNegativeYearsRequired.WithDetail(rc.RankCode)
			}
		}

		if rc.CeilingSalary < steps[len(steps)-1].Amount {
			return salaryscaleerrors.ErrCeilingBelowFinalStep.WithDetail(rc.RankCode)
		}
	}

	return nil
}

func buildRankConfigs(inputs []RankConfigInput) []RankSalaryConfig {
	configs := make([]RankSalaryConfig, len(inputs))
	for i, in := range inputs {
		rc := RankSalaryConfig{
			ID:            uuid.New(),
			RankCode:      in.RankCode,
			RankCategory:  in.RankCategory,
			RankLevel:     in.RankLevel,
			BaseSalary:    in.BaseSalary,
			CeilingSalary: in.CeilingSalary,
		}
		rc.Steps = make([]SalaryStep, len(in.Steps))
		for j, st := range in.Steps {
			years := st.YearsRequired
			if years != nil {
				y := *years
				years = &y
			}
			rc.Steps[j] = SalaryStep{
				ID:            uuid.New(),
				RankConfigID:  rc.ID,
				StepNumber:    st.StepNumber,
				Amount:        st.Amount,
				YearsRequired: years,
			}
		}
		configs[i] = rc
	}
	return configs
}

func maxStepCount(configs []RankConfigInput) int {
	max := 0
	for _, rc := range configs {
		if len(rc.Steps) > max {
			max = len(rc.Steps)
		}
	}
	return max
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, salaryscaleerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(v ScaleVersion) ScaleVersionResponse {
	resp := ScaleVersionResponse{
		ID:              v.ID.String(),
		Code:            v.Code,
		Name:            v.Name,
		EffectiveDate:   v.EffectiveDate.Format("2006-01-02"),
		Status:          v.Status,
		StepCount:       v.StepCount,
		StepPeriodYears: v.StepPeriodYears,
	}
	if v.ExpiryDate != nil {
		d := v.ExpiryDate.Format("2006-01-02")
		resp.ExpiryDate = &d
	}
	resp.RankConfigs = make([]RankConfigResponse, len(v.RankConfigs))
	for i, rc := range v.RankConfigs {
		rankResp := RankConfigResponse{
			ID:            rc.ID.String(),
			RankCode:      rc.RankCode,
			RankCategory:  rc.RankCategory,
			RankLevel:     rc.RankLevel,
			BaseSalary:    rc.BaseSalary,
			CeilingSalary: rc.CeilingSalary,
		}
		steps := rc.StepTable()
		rankResp.Steps = make([]SalaryStepResponse, len(steps))
		for j, st := range steps {
			rankResp.Steps[j] = SalaryStepResponse{
				StepNumber:    st.StepNumber,
				Amount:        st.Amount,
				YearsRequired: st.YearsRequired,
			}
		}
		resp.RankConfigs[i] = rankResp
	}
	return resp
}
