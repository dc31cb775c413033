package main

import (
	"errors"
	"flag"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hardware-pos/config"
	"hardware-pos/pkg/logger"
	"hardware-pos/pkg/postgres"
)

func main() {
	down := flag.Bool("down", false, "roll back all migrations instead of applying them")
	path := flag.String("path", "file://migrations", "migration source path")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.LoadEnv()

	log := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment: true,
		Encoding:      "console",
		Level:         "info",
		DisableCaller: true,
	})
	defer log.Sync()

	pgCfg := &postgres.Config{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		DBName:   cfg.Postgres.DBName,
		SSLMode:  cfg.Postgres.SSLMode,
	}

	m, err := migrate.New(*path, pgCfg.DSN())
	if err != nil {
		log.Fatal("migration setup failed", zap.Error(err))
	}
	defer m.Close()

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("migrations applied")
}
