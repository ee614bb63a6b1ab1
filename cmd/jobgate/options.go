package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/voidshard/jobgate/internal/utils"
	"github.com/voidshard/jobgate/pkg/auth"
	"github.com/voidshard/jobgate/pkg/queue"
)

type optsGeneral struct {
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// logger returns a text logger writing to stderr, & sets it as the default.
func (o *optsGeneral) logger() *slog.Logger {
	level := slog.LevelInfo
	if o.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return log
}

type optsQueue struct {
	QueueURL       string        `long:"queue-url" env:"QUEUE_URL" default:"localhost:6379" description:"Redis address (host:port)"`
	QueuePassword  string        `long:"queue-password" env:"QUEUE_PASSWORD" description:"Redis password"`
	QueueDB        int           `long:"queue-db" env:"QUEUE_DB" default:"0" description:"Redis database number"`
	QueueTLSCaCert string        `long:"queue-tls-ca-cert" env:"QUEUE_TLS_CA_CERT" description:"Path to CA cert for redis TLS"`
	QueueTLSCert   string        `long:"queue-tls-cert" env:"QUEUE_TLS_CERT" description:"Path to client cert for redis TLS"`
	QueueTLSKey    string        `long:"queue-tls-key" env:"QUEUE_TLS_KEY" description:"Path to client key for redis TLS"`
	QueueRetention time.Duration `long:"queue-retention" env:"QUEUE_RETENTION" default:"24h" description:"How long finished jobs are kept for status lookups"`
}

func (o *optsQueue) queue(log *slog.Logger, concurrency int) (*queue.Asynq, error) {
	tlsCfg, err := utils.TLSConfig(o.QueueTLSCaCert, o.QueueTLSCert, o.QueueTLSKey)
	if err != nil {
		return nil, err
	}
	return queue.NewAsynqQueue(&queue.Options{
		URL:         o.QueueURL,
		Password:    o.QueuePassword,
		DB:          o.QueueDB,
		TLSConfig:   tlsCfg,
		Concurrency: concurrency,
		Retention:   o.QueueRetention,
		Logger:      log,
	})
}

type optsDatabase struct {
	DatabaseURL   string `long:"database-url" env:"DATABASE_URL" description:"Postgres connection string; $DATABASE_USER & $DATABASE_PASSWORD are substituted from the environment"`
	DatabaseTable string `long:"database-table" env:"DATABASE_TABLE" default:"api_keys" description:"Table of api keys"`
}

func (o *optsDatabase) postgres() *auth.PostgresOptions {
	return &auth.PostgresOptions{URL: o.DatabaseURL, Table: o.DatabaseTable}
}

type optsRegistry struct {
	optsDatabase

	KeyDir string `long:"key-dir" env:"KEY_DIR" default:"./api_keys" description:"Directory of api keys (one directory per key); used when no database url is given"`
}

// registry returns the postgres registry if a database is configured, otherwise the directory registry.
func (o *optsRegistry) registry(log *slog.Logger) (auth.Registry, func() error, error) {
	if o.DatabaseURL == "" {
		log.Info("using directory credential registry", "dir", o.KeyDir)
		return auth.NewDirRegistry(o.KeyDir), func() error { return nil }, nil
	}
	reg, err := auth.NewPostgresRegistry(o.postgres())
	if err != nil {
		return nil, nil, err
	}
	log.Info("using postgres credential registry", "table", o.DatabaseTable)
	return reg, reg.Close, nil
}

type optsSchema struct {
	SchemaDir string `long:"schema-dir" env:"SCHEMA_DIR" default:"./json_schemas" description:"Directory of <resource>_<request|response>.json schema files"`
}
