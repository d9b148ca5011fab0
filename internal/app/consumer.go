package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/kaleab-kali/FPPMS-sub005/internal/events"
	"github.com/kaleab-kali/FPPMS-sub005/internal/messaging/kafka/consumer"
	"github.com/kaleab-kali/FPPMS-sub005/internal/paystate"
	"github.com/kaleab-kali/FPPMS-sub005/internal/salaryscale"
	"github.com/kaleab-kali/FPPMS-sub005/internal/shared/connection"
)

// RunConsumer listens for hire events and seeds each new employee's pay
// state at step 0 of the tenant's active scale.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

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

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	payStateRepo := paystate.NewRepository(gormDB)
	scaleRepo := salaryscale.NewRepository(gormDB)
	scaleCache := salaryscale.NewActiveScaleCache(redisClient, scaleRepo)
	scaleService := salaryscale.NewService(sqlDB, scaleRepo, scaleCache)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.EmployeeHiredTopic,
		GroupID:        "pms-pay-state-seeder",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, reader, payStateRepo, scaleService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
