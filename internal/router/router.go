// Package router assembles the HTTP surface: middleware order, route groups
// and the role required by each route.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/man-in-dev/goal-backend-sub001/api/swagger"
	"github.com/man-in-dev/goal-backend-sub001/internal/handler"
	"github.com/man-in-dev/goal-backend-sub001/internal/middleware"
	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	"github.com/man-in-dev/goal-backend-sub001/internal/schemas"
	"github.com/man-in-dev/goal-backend-sub001/internal/service"
	"github.com/man-in-dev/goal-backend-sub001/pkg/config"
	"github.com/man-in-dev/goal-backend-sub001/pkg/logger"
	corsmiddleware "github.com/man-in-dev/goal-backend-sub001/pkg/middleware/cors"
	reqidmiddleware "github.com/man-in-dev/goal-backend-sub001/pkg/middleware/requestid"
	securitymiddleware "github.com/man-in-dev/goal-backend-sub001/pkg/middleware/security"
	"github.com/man-in-dev/goal-backend-sub001/pkg/schema"
	"github.com/man-in-dev/goal-backend-sub001/pkg/storage"
)

// Forms groups the submission services.
type Forms struct {
	Enquiries         *service.SubmissionService[models.Enquiry, *models.Enquiry]
	Complaints        *service.SubmissionService[models.Complaint, *models.Complaint]
	Admissions        *service.SubmissionService[models.AdmissionForm, *models.AdmissionForm]
	ExamRegistrations *service.SubmissionService[models.ExamRegistration, *models.ExamRegistration]
	Careers           *service.SubmissionService[models.CareerApplication, *models.CareerApplication]
}

// Catalogs groups the reference list services.
type Catalogs struct {
	GAETDates          *service.CatalogService[models.GAETDate, *models.GAETDate]
	AITSVideoSolutions *service.CatalogService[models.AITSVideoSolution, *models.AITSVideoSolution]
}

// Dependencies is everything the router needs. Files is required.
type Dependencies struct {
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *service.MetricsService
	Auth     *service.AuthService
	Audit    *service.AuditService
	Files    *storage.LocalStorage
	Forms    Forms
	Catalogs Catalogs
	Ready    handler.Pinger
}

type routes struct {
	deps    Dependencies
	auth    gin.HandlerFunc
	idParam gin.HandlerFunc
}

// New builds the gin engine.
func New(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	production := cfg.IsProduction()

	r := gin.New()
	r.Use(middleware.Recovery(production, deps.Logger))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(securitymiddleware.Headers(production))
	r.Use(middleware.Metrics(deps.Metrics, "/metrics"))
	r.Use(middleware.ErrorHandler(production, deps.Logger))
	r.NoRoute(middleware.NotFound())

	rt := routes{
		deps:    deps,
		auth:    middleware.JWT(deps.Auth),
		idParam: middleware.ValidateParams(schemas.IDParams()),
	}

	metricsHandler := handler.NewMetricsHandler(deps.Metrics, deps.Ready)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if deps.Files != nil {
		r.Static(publicPath(cfg), deps.Files.Dir())
	}
	if !production {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/health", metricsHandler.Health)
	api.GET("/metrics/summary", rt.auth, middleware.RequireRoles(models.ManagerRoles...), metricsHandler.Stats)

	rt.registerAuth(api)

	uploads := cfg.Uploads
	admissionUploads := middleware.AdmissionUploads(uploads.MaxFileSize, uploads.MaxFiles)
	complaintUploads := middleware.ComplaintUploads(uploads.MaxFileSize)
	careerUploads := middleware.CareerUploads(uploads.MaxFileSize)

	f := deps.Forms
	registerForm(rt, api, schemas.Enquiry(), handler.NewSubmissionHandler[models.Enquiry](f.Enquiries), nil, false)
	registerForm(rt, api, schemas.Complaint(), handler.NewSubmissionHandler[models.Complaint](f.Complaints), &complaintUploads, true)
	registerForm(rt, api, schemas.Admission(), handler.NewSubmissionHandler[models.AdmissionForm](f.Admissions), &admissionUploads, true)
	registerForm(rt, api, schemas.ExamRegistration(), handler.NewSubmissionHandler[models.ExamRegistration](f.ExamRegistrations), nil, true)
	registerForm(rt, api, schemas.Career(), handler.NewSubmissionHandler[models.CareerApplication](f.Careers), &careerUploads, true)

	c := deps.Catalogs
	registerCatalog(rt, api, service.GAETDateCatalog, schemas.GAETDate(),
		handler.NewCatalogHandler[models.GAETDate](c.GAETDates, "GAET date", "GAET dates"))
	registerCatalog(rt, api, service.AITSVideoSolutionCatalog, schemas.AITSVideoSolution(),
		handler.NewCatalogHandler[models.AITSVideoSolution](c.AITSVideoSolutions, "Video solution", "Video solutions"))

	auditHandler := handler.NewAuditHandler(deps.Audit)
	api.GET("/audit-logs", rt.auth, middleware.RequireRoles(models.RoleSuperAdmin), rt.query(schemas.AuditQuery()), auditHandler.List)

	return r
}

func (rt routes) query(s *schema.Schema) gin.HandlerFunc {
	return middleware.ValidateQuery(s, rt.deps.Config.Validation.StrictQuery, rt.deps.Logger)
}

func (rt routes) registerAuth(api *gin.RouterGroup) {
	h := handler.NewAuthHandler(rt.deps.Auth)
	group := api.Group("/auth")
	group.POST("/login", middleware.ValidateBody(schemas.Login()), h.Login)
	group.POST("/register", rt.auth, middleware.RequireRoles(models.RoleSuperAdmin), middleware.ValidateBody(schemas.Register()), h.Register)
	group.GET("/me", rt.auth, h.Me)
	group.POST("/logout", rt.auth, h.Logout)
}

// registerForm mounts the public create route and the reviewer routes of one
// form. Deletion is limited to managers.
func registerForm[T any](rt routes, api *gin.RouterGroup, form schemas.Form, h *handler.SubmissionHandler[T], uploads *middleware.UploadPolicy, deletable bool) {
	group := api.Group("/" + h.Name())

	create := make([]gin.HandlerFunc, 0, 3)
	if uploads != nil {
		create = append(create, middleware.Upload(rt.deps.Files, *uploads, rt.deps.Metrics, rt.deps.Logger))
	}
	create = append(create, middleware.ValidateBody(form.Create), h.Create)
	group.POST("", create...)

	reviewers := middleware.RequireRoles(models.ReviewerRoles...)
	group.GET("", rt.auth, reviewers, rt.query(form.List), h.List)
	group.GET("/export", rt.auth, reviewers, rt.query(form.Export), h.Export)
	group.GET("/:id", rt.auth, reviewers, rt.idParam, h.Get)
	group.PATCH("/:id/status", rt.auth, reviewers, rt.idParam, middleware.ValidateBody(form.Status), h.UpdateStatus)
	if deletable {
		group.DELETE("/:id", rt.auth, middleware.RequireRoles(models.ManagerRoles...), rt.idParam, h.Delete)
	}
}

// registerCatalog mounts public reads and audited publisher writes.
func registerCatalog[T any](rt routes, api *gin.RouterGroup, def service.CatalogDefinition, catalog schemas.Catalog, h *handler.CatalogHandler[T]) {
	group := api.Group("/" + def.Name)
	group.GET("", rt.query(catalog.List), h.List)
	group.GET("/:id", rt.idParam, h.Get)

	publishers := middleware.RequireRoles(models.PublisherRoles...)
	audit := rt.deps.Audit
	group.POST("", rt.auth, publishers, middleware.ValidateBody(catalog.Create), middleware.Audit(audit, models.AuditActionCreate, def.Name), h.Create)
	group.PUT("/:id", rt.auth, publishers, rt.idParam, middleware.ValidateBody(catalog.Update), middleware.Audit(audit, models.AuditActionUpdate, def.Name), h.Update)
	group.DELETE("/:id", rt.auth, publishers, rt.idParam, middleware.Audit(audit, models.AuditActionDelete, def.Name), h.Delete)
}

func publicPath(cfg *config.Config) string {
	if cfg.Uploads.PublicPath == "" {
		return "/uploads"
	}
	return cfg.Uploads.PublicPath
}
