package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kaleab-kali/FPPMS-sub005/internal/calendar"
	"github.com/kaleab-kali/FPPMS-sub005/internal/directory"
	"github.com/kaleab-kali/FPPMS-sub005/internal/eligibility"
	"github.com/kaleab-kali/FPPMS-sub005/internal/messaging/kafka"
	"github.com/kaleab-kali/FPPMS-sub005/internal/messaging/kafka/producer"
	"github.com/kaleab-kali/FPPMS-sub005/internal/paystate"
	"github.com/kaleab-kali/FPPMS-sub005/internal/salaryscale"
	"github.com/kaleab-kali/FPPMS-sub005/internal/shared/connection"
)

// RunWorker runs the two background loops: the outbox drain and the
// scheduled eligibility evaluation over every tenant with an active scale.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	scaleRepo := salaryscale.NewRepository(gormDB)
	scaleCache := salaryscale.NewActiveScaleCache(redisClient, scaleRepo)
	scaleService := salaryscale.NewService(sqlDB, scaleRepo, scaleCache)
	eligibilityService := eligibility.NewService(
		eligibility.NewRepository(gormDB),
		paystate.NewRepository(gormDB),
		directory.NewRepository(gormDB),
		scaleService,
		calendar.NewGregorian(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.Run(ctx, outboxRepo, kafkaWriter, logger, pollInterval())
	go runEvaluationLoop(ctx, sqlDB, eligibilityService, logger, evaluationInterval())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

// runEvaluationLoop ticks the evaluator for every tenant that has an active
// scale version. Each tenant's pass is independent; one failure is logged
// and the loop moves on.
func runEvaluationLoop(
	ctx context.Context,
	db *sql.DB,
	evaluator eligibility.Service,
	logger *zap.Logger,
	interval time.Duration,
) {
	log := logger.Named("evaluation.loop")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("evaluation loop started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			log.Info("evaluation loop stopped")
			return
		case <-ticker.C:
			tenants, err := activeTenants(ctx, db)
			if err != nil {
				log.Error("list active tenants failed", zap.Error(err))
				continue
			}

			now := time.Now().UTC()
			for _, tenantID := range tenants {
				if ctx.Err() != nil {
					return
				}
				summary, err := evaluator.EvaluateTenant(ctx, tenantID, now)
				if err != nil {
					log.Error("scheduled evaluation failed",
						zap.String("tenant_id", tenantID),
						zap.Error(err),
					)
					continue
				}
				log.Info("scheduled evaluation finished",
					zap.String("tenant_id", tenantID),
					zap.Int("evaluated", summary.Evaluated),
					zap.Int("created", summary.Created),
					zap.Int("updated", summary.Updated),
				)
			}
		}
	}
}

func activeTenants(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
SELECT DISTINCT tenant_id::text FROM scale_versions WHERE status = 'ACTIVE'
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		tenants = append(tenants, id)
	}
	return tenants, rows.Err()
}

func pollInterval() time.Duration {
	if raw := os.Getenv("OUTBOX_POLL_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
	}
	return 3 * time.Second
}

func evaluationInterval() time.Duration {
	if raw := os.Getenv("EVALUATION_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
	}
	return 1 * time.Hour
}
