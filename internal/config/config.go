package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Service holds general service configuration
type Service struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" required:"true"`
	APIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
	Host        string `envconfig:"SERVICE_HOST" default:"localhost:8080"`
}

// ClickHouse holds the event store connection configuration
type ClickHouse struct {
	Host            string `envconfig:"CLICKHOUSE_HOST" required:"true"`
	Port            string `envconfig:"CLICKHOUSE_PORT" required:"true"`
	Database        string `envconfig:"CLICKHOUSE_DB" required:"true"`
	User            string `envconfig:"CLICKHOUSE_USER" default:""`
	Password        string `envconfig:"CLICKHOUSE_PASSWORD" default:""`
	UseTLS          bool   `envconfig:"CLICKHOUSE_USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"CLICKHOUSE_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"CLICKHOUSE_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CLICKHOUSE_CONN_MAX_LIFETIME_SEC" default:"3600"`
}

// SQS holds the telemetry queue configuration
type SQS struct {
	Endpoint string `envconfig:"SQS_ENDPOINT"`
	QueueURL string `envconfig:"SQS_QUEUE_URL" required:"true"`
	Region   string `envconfig:"SQS_REGION" required:"true"`
}

// Consumer holds the ingestion consumer configuration
type Consumer struct {
	BatchSizeMax    int    `envconfig:"CONSUMER_BATCH_SIZE_MAX" default:"2000"`
	BatchTimeoutSec int    `envconfig:"CONSUMER_BATCH_TIMEOUT_SEC" default:"10"`
	HealthCheckPort string `envconfig:"CONSUMER_HEALTH_CHECK_PORT" default:"8081"`
}

// Plans holds the per-plan custom date range ceilings, in days
type Plans struct {
	FreeMaxRangeDays     int `envconfig:"PLAN_FREE_MAX_RANGE_DAYS" default:"7"`
	GrowthMaxRangeDays   int `envconfig:"PLAN_GROWTH_MAX_RANGE_DAYS" default:"90"`
	BusinessMaxRangeDays int `envconfig:"PLAN_BUSINESS_MAX_RANGE_DAYS" default:"365"`
}

type Config struct {
	Service    Service
	ClickHouse ClickHouse
	SQS        SQS
	Consumer   Consumer
	Plans      Plans
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

// MaxCustomRangeDays returns the custom window ceiling for a plan name.
// Unknown or empty plans get the free tier ceiling.
func (p Plans) MaxCustomRangeDays(plan string) int {
	switch plan {
	case "business":
		return p.BusinessMaxRangeDays
	case "growth":
		return p.GrowthMaxRangeDays
	default:
		return p.FreeMaxRangeDays
	}
}
