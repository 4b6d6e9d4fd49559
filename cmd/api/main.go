package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/analytics"
	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/config"
	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/handler"
	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/logger"
	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/queue/sqs"
	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/repository/clickhouse"
	"github.com/wesveio/BOLT-dashboard-customer-sub005/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort))

	ctx := context.Background()

	sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		log.Fatal("Failed to create SQS client", zap.Error(err))
	}

	clickhouseClient, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
	if err != nil {
		log.Fatal("Failed to create ClickHouse client", zap.Error(err))
	}
	defer func(clickhouseClient *clickhouse.Client) {
		if err := clickhouseClient.Close(); err != nil {
			log.Error("Failed to close ClickHouse client", zap.Error(err))
		}
	}(clickhouseClient)

	repo := clickhouse.NewRepository(clickhouseClient, log)

	eventService := service.NewEventService(sqsClient, log)
	analyticsService := service.NewAnalyticsService(repo, analytics.IndustryAverageCosts{}, cfg.Plans, log)

	h := handler.NewHandler(eventService, analyticsService, log)

	addr := fmt.Sprintf(":%s", cfg.Service.APIPort)
	log.Info("API server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Failed to start API server", zap.Error(err))
	}
}
