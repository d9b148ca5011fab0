package app

import (
	"database/sql"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/kaleab-kali/FPPMS-sub005/internal/calendar"
	"github.com/kaleab-kali/FPPMS-sub005/internal/directory"
	"github.com/kaleab-kali/FPPMS-sub005/internal/eligibility"
	"github.com/kaleab-kali/FPPMS-sub005/internal/history"
	"github.com/kaleab-kali/FPPMS-sub005/internal/messaging/kafka"
	"github.com/kaleab-kali/FPPMS-sub005/internal/paystate"
	"github.com/kaleab-kali/FPPMS-sub005/internal/progression"
	"github.com/kaleab-kali/FPPMS-sub005/internal/rbac"
	"github.com/kaleab-kali/FPPMS-sub005/internal/rbac/infra"
	"github.com/kaleab-kali/FPPMS-sub005/internal/salaryscale"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	scaleRepo := salaryscale.NewRepository(gormDB)
	payStateRepo := paystate.NewRepository(gormDB)
	eligibilityRepo := eligibility.NewRepository(gormDB)
	historyRepo := history.NewRepository(gormDB)
	directoryRepo := directory.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	cal := calendar.NewGregorian()
	scaleCache := salaryscale.NewActiveScaleCache(rdb, scaleRepo)
	scaleService := salaryscale.NewService(db, scaleRepo, scaleCache)
	eligibilityService := eligibility.NewService(eligibilityRepo, payStateRepo, directoryRepo, scaleService, cal)
	historyService := history.NewService(historyRepo)
	progressionService := progression.NewService(
		db, eligibilityRepo, payStateRepo, historyRepo, outboxRepo, directoryRepo, scaleService,
	)

	// --- Handlers ---
	scaleHandler := salaryscale.NewHandler(scaleService)
	eligibilityHandler := eligibility.NewHandler(eligibilityService)
	historyHandler := history.NewHandler(historyService)
	progressionHandler := progression.NewHandler(progressionService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		salaryscale.RegisterRoutes(api, scaleHandler, rbacService)
		eligibility.RegisterRoutes(api, eligibilityHandler, rbacService)
		progression.RegisterRoutes(api, progressionHandler, rbacService, rdb)
		history.RegisterRoutes(api, historyHandler, rbacService)
	}

	return nil
}
