package config

import "time"

type Config struct {
	AppName                       string   `env:"APP_NAME" env-default:"protea-api"`
	Port                          int      `env:"PORT" env-default:"3004"`
	LogLevel                      string   `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs                    bool     `env:"PRETTY_LOGS" env-default:"false"`
	HttpServerWriteTimeoutSeconds int      `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerReadTimeoutSeconds  int      `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerIdleTimeoutSeconds  int      `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	AllowOrigins                  []string `env:"HTTP_SERVER_ALLOW_ORIGINS" env-default:"*"`
	AllowMethods                  []string `env:"HTTP_SERVER_ALLOW_METHODS" env-default:"GET,POST,PUT,PATCH,DELETE"`
	StartupMaxAttempts            int      `env:"STARTUP_MAX_ATTEMPTS" env-default:"5"`

	// PostgreSQL
	DatabaseDriver                string        `env:"DB_DRIVER" env-default:"postgres"`
	DatabaseHost                  string        `env:"DB_HOST" env-default:"localhost"`
	DatabasePort                  string        `env:"DB_PORT" env-default:"5432"`
	DatabaseUserName              string        `env:"DB_USER_NAME" env-default:""`
	DatabasePassword              string        `env:"DB_PASSWORD" env-default:""`
	DatabaseName                  string        `env:"DB_NAME" env-default:"protea"`
	DatabaseSSLMode               string        `env:"DB_SQL_MODE" env-default:"disable"`
	DatabaseMaxOpenConns          int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	DatabaseMaxIdleConns          int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	DatabaseConnMaxLifetime       time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"10s"`
	DatabaseMigrationFolderPath   string        `env:"DB_MIGRATION_FOLDER_PATH" env-default:"db/pg"`
	DatabaseMigrationVersion      int           `env:"DB_MIGRATION_VERSION" env-default:"0"`
	DatabaseMigrationAutoRollback bool          `env:"DB_MIGRATION_AUTO_ROLLBACK" env-default:"true"`

	// Kafka CDC (Debezium topics for the four record tables). Any change event
	// on these topics triggers a full dataset refetch.
	KafkaBrokers             []string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	KafkaConsumerEnabled     bool     `env:"KAFKA_CONSUMER_ENABLED" env-default:"true"`
	KafkaConsumerGroup       string   `env:"KAFKA_CONSUMER_GROUP" env-default:"protea-refresh-consumer"`
	KafkaInterventionsTopic  string   `env:"KAFKA_INTERVENTIONS_TOPIC" env-default:"protea.public.interventions"`
	KafkaDecisionsTopic      string   `env:"KAFKA_DECISIONS_TOPIC" env-default:"protea.public.decisions"`
	KafkaActionsTopic        string   `env:"KAFKA_ACTIONS_TOPIC" env-default:"protea.public.actions"`
	KafkaOutcomesTopic       string   `env:"KAFKA_OUTCOMES_TOPIC" env-default:"protea.public.outcomes"`

	// Kafka producer (record-change events published after successful writes)
	KafkaProducerEnabled bool   `env:"KAFKA_PRODUCER_ENABLED" env-default:"true"`
	KafkaOutputTopic     string `env:"KAFKA_OUTPUT_TOPIC" env-default:"record-change-events"`

	// Snapshot refresher
	RefreshDebounce    time.Duration `env:"REFRESH_DEBOUNCE" env-default:"500ms"`
	RefreshMaxInterval time.Duration `env:"REFRESH_MAX_INTERVAL" env-default:"5m"`

	// Redis (dashboard stats cache)
	RedisEnabled  bool          `env:"REDIS_ENABLED" env-default:"false"`
	RedisHost     string        `env:"REDIS_HOST" env-default:"localhost"`
	RedisPort     int           `env:"REDIS_PORT" env-default:"6379"`
	RedisPassword string        `env:"REDIS_PASSWORD" env-default:""`
	RedisDB       int           `env:"REDIS_DB" env-default:"0"`
	StatsCacheTTL time.Duration `env:"STATS_CACHE_TTL" env-default:"30s"`

	// Tracing
	TracingEnabled      bool   `env:"TRACING_ENABLED" env-default:"false"`
	TracingOTLPEndpoint string `env:"TRACING_OTLP_ENDPOINT" env-default:"localhost:4317"`
	TracingOTLPProtocol string `env:"TRACING_OTLP_PROTOCOL" env-default:"grpc"`
	TracingOTLPInsecure bool   `env:"TRACING_OTLP_INSECURE" env-default:"true"`
}
