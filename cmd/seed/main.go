// Command seed creates the first super admin account from SEED_ADMIN_* settings.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	"github.com/man-in-dev/goal-backend-sub001/internal/repository"
	"github.com/man-in-dev/goal-backend-sub001/internal/service"
	"github.com/man-in-dev/goal-backend-sub001/pkg/config"
	"github.com/man-in-dev/goal-backend-sub001/pkg/database"
	"github.com/man-in-dev/goal-backend-sub001/pkg/logger"
)

func main() {
	timeout := flag.Duration("timeout", 30*time.Second, "overall time allowed for the seed run")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		log.Fatalf("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		logr.Fatal("failed to configure mongodb", zap.Error(err))
	}
	defer conn.Close(context.Background()) //nolint:errcheck

	policy := database.NewRetryPolicy(cfg.Mongo)
	if policy.MaxAttempts == 0 {
		policy.MaxAttempts = 5
	}
	if err := database.WaitFor(ctx, "mongodb", conn.Ping, policy, logr); err != nil {
		logr.Fatal("mongodb unreachable", zap.Error(err))
	}
	if err := repository.EnsureIndexes(ctx, conn.DB); err != nil {
		logr.Fatal("failed to ensure indexes", zap.Error(err))
	}

	users := repository.NewUserRepository(conn.DB)
	auth := service.NewAuthService(users, nil, nil, logr, service.AuthConfig{Secret: cfg.JWT.Secret, Expiration: cfg.JWT.Expiration})

	name := cfg.Seed.AdminName
	if name == "" {
		name = "Super Admin"
	}
	info, created, err := auth.EnsureAccount(ctx, models.RegisterRequest{
		Name:     name,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		Role:     models.RoleSuperAdmin,
	})
	if err != nil {
		logr.Fatal("failed to seed super admin", zap.Error(err))
	}

	admins, err := users.CountByRole(ctx, models.RoleSuperAdmin)
	if err != nil {
		logr.Warn("failed to count super admins", zap.Error(err))
	}
	logr.Info("seed complete",
		zap.String("email", info.Email),
		zap.Bool("created", created),
		zap.Int64("super_admins", admins),
	)
}
