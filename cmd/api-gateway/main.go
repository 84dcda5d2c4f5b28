package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	"github.com/man-in-dev/goal-backend-sub001/internal/repository"
	"github.com/man-in-dev/goal-backend-sub001/internal/router"
	"github.com/man-in-dev/goal-backend-sub001/internal/service"
	"github.com/man-in-dev/goal-backend-sub001/pkg/cache"
	"github.com/man-in-dev/goal-backend-sub001/pkg/config"
	"github.com/man-in-dev/goal-backend-sub001/pkg/database"
	"github.com/man-in-dev/goal-backend-sub001/pkg/jobs"
	"github.com/man-in-dev/goal-backend-sub001/pkg/logger"
	"github.com/man-in-dev/goal-backend-sub001/pkg/storage"
)

// @title GOAL Institute Forms API
// @version 1.0.0
// @description Public form intake and operator review API
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoConn, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		logr.Fatal("failed to configure mongodb", zap.Error(err))
	}
	go connectMongo(ctx, mongoConn, cfg.Mongo, logr)

	files, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		logr.Fatal("failed to prepare upload directory", zap.Error(err))
	}

	metrics := service.NewMetricsService()
	cacheSvc, redisClient := newCache(ctx, cfg, metrics, logr)
	auditSvc, auditDB, auditQueue := newAudit(ctx, cfg, logr)

	users := repository.NewUserRepository(mongoConn.DB)
	authSvc := service.NewAuthService(users, cacheSvc, auditSvc, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
	})

	deps := service.SubmissionDeps{
		Files:    files,
		Guard:    cacheSvc,
		GuardTTL: cfg.Cache.SubmissionGuardTTL,
		Metrics:  metrics,
		Audit:    auditSvc,
		Logger:   logr,
	}
	db := mongoConn.DB

	engine := router.New(router.Dependencies{
		Config:  cfg,
		Logger:  logr,
		Metrics: metrics,
		Auth:    authSvc,
		Audit:   auditSvc,
		Files:   files,
		Ready:   mongoConn.Ping,
		Forms: router.Forms{
			Enquiries: service.NewSubmissionService[models.Enquiry, *models.Enquiry](
				service.EnquiryForm, repository.NewCollectionRepository[models.Enquiry](db, repository.CollectionEnquiries), deps),
			Complaints: service.NewSubmissionService[models.Complaint, *models.Complaint](
				service.ComplaintForm, repository.NewCollectionRepository[models.Complaint](db, repository.CollectionComplaints), deps),
			Admissions: service.NewSubmissionService[models.AdmissionForm, *models.AdmissionForm](
				service.AdmissionForm, repository.NewCollectionRepository[models.AdmissionForm](db, repository.CollectionAdmissions), deps),
			ExamRegistrations: service.NewSubmissionService[models.ExamRegistration, *models.ExamRegistration](
				service.ExamRegistrationForm, repository.NewCollectionRepository[models.ExamRegistration](db, repository.CollectionExamRegistrations), deps),
			Careers: service.NewSubmissionService[models.CareerApplication, *models.CareerApplication](
				service.CareerForm, repository.NewCollectionRepository[models.CareerApplication](db, repository.CollectionCareers), deps),
		},
		Catalogs: router.Catalogs{
			GAETDates: service.NewCatalogService[models.GAETDate, *models.GAETDate](
				service.GAETDateCatalog, repository.NewCollectionRepository[models.GAETDate](db, repository.CollectionGAETDates),
				cacheSvc, cfg.Cache.TTL, logr),
			AITSVideoSolutions: service.NewCatalogService[models.AITSVideoSolution, *models.AITSVideoSolution](
				service.AITSVideoSolutionCatalog, repository.NewCollectionRepository[models.AITSVideoSolution](db, repository.CollectionAITSVideoSolutions),
				cacheSvc, cfg.Cache.TTL, logr),
		},
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
	if err := mongoConn.Close(shutdownCtx); err != nil {
		logr.Warn("failed to close mongodb client", zap.Error(err))
	}
	if auditQueue != nil {
		auditQueue.Stop()
	}
	closeOptional(redisClient, auditDB, logr)
}

// connectMongo waits for the server and then creates the indexes. The API keeps
// serving while the database is unreachable.
func connectMongo(ctx context.Context, conn *database.Mongo, cfg config.MongoConfig, logr *zap.Logger) {
	if err := database.WaitFor(ctx, "mongodb", conn.Ping, database.NewRetryPolicy(cfg), logr); err != nil {
		logr.Error("giving up on mongodb", zap.Error(err))
		return
	}
	if err := repository.EnsureIndexes(ctx, conn.DB); err != nil {
		logr.Error("failed to ensure indexes", zap.Error(err))
	}
}

func newCache(ctx context.Context, cfg *config.Config, metrics *service.MetricsService, logr *zap.Logger) (*service.CacheService, *redis.Client) {
	if !cfg.Redis.Enabled {
		return service.NewCacheService(nil, metrics, cfg.Cache.TTL, logr, false), nil
	}
	client, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		return service.NewCacheService(nil, metrics, cfg.Cache.TTL, logr, false), nil
	}
	repo := repository.NewCacheRepository(client, "goal", logr)
	return service.NewCacheService(repo, metrics, cfg.Cache.TTL, logr, true), client
}

// newAudit returns a disabled service when the audit database is off or
// unreachable. With workers configured entries are written in the background.
func newAudit(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*service.AuditService, *sqlx.DB, *jobs.Queue[*models.AuditLog]) {
	if !cfg.Audit.Enabled {
		return service.NewAuditService(nil, logr), nil, nil
	}
	db, err := database.NewPostgres(cfg.Audit)
	if err != nil {
		logr.Warn("audit database unavailable, audit trail disabled", zap.Error(err))
		return service.NewAuditService(nil, logr), nil, nil
	}
	repo := repository.NewAuditRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		logr.Warn("failed to prepare audit schema", zap.Error(err))
	}
	svc := service.NewAuditService(repo, logr)
	if cfg.Audit.Workers <= 0 {
		return svc, db, nil
	}

	queue := jobs.New("audit", svc.Write, jobs.Config{
		Workers:    cfg.Audit.Workers,
		BufferSize: cfg.Audit.BufferSize,
		MaxRetries: 2,
		RetryDelay: 500 * time.Millisecond,
		Logger:     logr,
	})
	queue.Start(ctx)
	return svc.WithQueue(queue), db, queue
}

func closeOptional(redisClient *redis.Client, auditDB *sqlx.DB, logr *zap.Logger) {
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logr.Warn("failed to close redis client", zap.Error(err))
		}
	}
	if auditDB != nil {
		if err := auditDB.Close(); err != nil {
			logr.Warn("failed to close audit database", zap.Error(err))
		}
	}
}
