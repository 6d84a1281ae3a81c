package main

import (
	"context"
	"flag"
	"os"
	"time"

	"job-portal/internal/config"
	"job-portal/internal/database/migration"
	dbpostgres "job-portal/internal/database/postgres"
	"job-portal/internal/database/seeder"
	"job-portal/internal/pkg/logger"
	"job-portal/migrations"

	"go.uber.org/zap"
)

func main() {
	seedName := flag.String("seed-institution-name", "", "create an institution account with this name")
	seedEmail := flag.String("seed-institution-email", "", "email of the seeded institution")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	log, err := logger.New(cfg.App.LogLevel, cfg.App.IsDevelopment(), cfg.App.AppName+"-migrate")
	if err != nil {
		zap.NewExample().Fatal("failed to init logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	r := migration.Runner{FS: migrations.FS, Logger: log.Named("migration")}
	applied, err := r.Run(ctx, db.SQLDB())
	if err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("migrations complete", zap.Int("applied", applied))

	if *seedEmail == "" {
		return
	}

	// The password is read from the environment so it stays out of shell history.
	s := seeder.InstitutionSeeder{
		InstitutionName: *seedName,
		Email:           *seedEmail,
		Password:        os.Getenv("SEED_INSTITUTION_PASSWORD"),
	}
	seeds := seeder.Runner{Seeders: []seeder.Seeder{s}, Logger: log.Named("seeder")}
	if _, err := seeds.Run(ctx, db); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
}
