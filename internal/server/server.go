package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"anoa.com/jobportal/internal/config"
	"anoa.com/jobportal/internal/entity"
	"anoa.com/jobportal/internal/middleware"
	"anoa.com/jobportal/internal/scheduler"
	"anoa.com/jobportal/pkg/events"
	"anoa.com/jobportal/pkg/storage"
	"anoa.com/jobportal/pkg/token"

	applicationHttp "anoa.com/jobportal/internal/modules/application/delivery/http"
	applicationRepo "anoa.com/jobportal/internal/modules/application/repository"
	applicationService "anoa.com/jobportal/internal/modules/application/service"

	companyHttp "anoa.com/jobportal/internal/modules/company/delivery/http"
	companyRepo "anoa.com/jobportal/internal/modules/company/repository"
	companyService "anoa.com/jobportal/internal/modules/company/service"

	jobHttp "anoa.com/jobportal/internal/modules/job/delivery/http"
	jobRepo "anoa.com/jobportal/internal/modules/job/repository"
	jobService "anoa.com/jobportal/internal/modules/job/service"

	notiHttp "anoa.com/jobportal/internal/modules/notification/delivery/http"
	notifRepo "anoa.com/jobportal/internal/modules/notification/repository"
	notifService "anoa.com/jobportal/internal/modules/notification/service"

	searchService "anoa.com/jobportal/internal/modules/search/service"

	userHttp "anoa.com/jobportal/internal/modules/user/delivery/http"
	userRepo "anoa.com/jobportal/internal/modules/user/repository"
	userService "anoa.com/jobportal/internal/modules/user/service"

	viewService "anoa.com/jobportal/internal/modules/view/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const healthPath = "/api/v1/health"

type Server struct {
	httpServer *http.Server
	scheduler  *scheduler.Scheduler
	stopViews  context.CancelFunc
}

// Deps are the long-lived clients opened by main. RedisClient and Storage may
// be nil; the features that need them degrade instead of failing.
type Deps struct {
	DB          *gorm.DB
	RedisClient *redis.Client
	Storage     storage.FileStorage
	Events      events.Publisher
}

func NewServer(cfg *config.Config, deps Deps) *Server {
	db, redisClient := deps.DB, deps.RedisClient
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	jobSearch := newSearch(cfg)

	// User Module
	userRepository := userRepo.NewUserRepository(db)
	authSvc := userService.NewAuthService(userRepository, deps.Storage, tokens)
	authHandler := userHttp.NewAuthHandler(authSvc, cfg.CookieSecure, tokens.TTL())

	// Notification Module
	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient, cfg.AllowedOrigins)

	// Company Module
	companyRepository := companyRepo.NewCompanyRepository(db)
	companySvc := companyService.NewCompanyService(companyRepository, deps.Storage)
	companyHandler := companyHttp.NewCompanyHandler(companySvc)

	// Job Module
	jobRepository := jobRepo.NewJobRepository(db)
	viewSvc := viewService.NewViewService(redisClient, jobRepository)
	jobSvc := jobService.NewJobService(jobRepository, companyRepository, jobService.Options{
		RedisClient:  redisClient,
		PostCooldown: cfg.RateLimitPostJob,
		Search:       jobSearch,
		Views:        viewSvc,
		Events:       deps.Events,
	})
	jobHandler := jobHttp.NewJobHandler(jobSvc)

	// Application Module
	applicationRepository := applicationRepo.NewApplicationRepository(db)
	applicationSvc := applicationService.NewApplicationService(applicationRepository, jobRepository, applicationService.Options{
		RedisClient:   redisClient,
		ApplyCooldown: cfg.RateLimitApply,
		Notifications: notificationSvc,
		Events:        deps.Events,
	})
	applicationHandler := applicationHttp.NewApplicationHandler(applicationSvc)

	// Background work
	viewCtx, stopViews := context.WithCancel(context.Background())
	go viewSvc.StartViewSyncWorker(viewCtx, cfg.ViewSyncInterval)

	sched := scheduler.New(10 * time.Minute)
	if jobSearch != nil {
		if err := sched.Register(scheduler.NewTask("search-reindex", cfg.SearchReindexCron, jobSvc.ReindexAll)); err != nil {
			log.Printf("⚠️  %v", err)
		}
		// Fill the index once on boot so search works against existing rows.
		go func() {
			if err := jobSvc.ReindexAll(context.Background()); err != nil {
				log.Printf("⚠️  initial reindex failed: %v", err)
			}
		}()
	}

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{healthPath},
	}))

	authMiddleware := middleware.NewAuthMiddleware(userRepository, tokens)
	recruiterOnly := authMiddleware.RequireRole(entity.RoleRecruiter)
	studentOnly := authMiddleware.RequireRole(entity.RoleStudent)

	router.GET(healthPath, healthCheck(db))

	api := router.Group("/api/v1")

	user := api.Group("/user")
	{
		user.POST("/register", authHandler.Register)
		user.POST("/login", authHandler.Login)
		user.GET("/logout", authHandler.Logout)
		user.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
		user.POST("/profile/update", authMiddleware.RequireAuth(), authHandler.UpdateProfile)
	}

	company := api.Group("/company")
	company.Use(authMiddleware.RequireAuth())
	{
		company.POST("/register", recruiterOnly, companyHandler.RegisterCompany)
		company.GET("/get", recruiterOnly, companyHandler.ListOwnCompanies)
		company.GET("/get/:id", companyHandler.GetCompany)
		company.PUT("/update/:id", recruiterOnly, companyHandler.UpdateCompany)
	}

	job := api.Group("/job")
	{
		job.POST("/post", authMiddleware.RequireAuth(), recruiterOnly, jobHandler.PostJob)
		job.GET("/get", jobHandler.ListJobs)
		job.GET("/get/:id", authMiddleware.OptionalAuth(), jobHandler.GetJob)
		job.GET("/getadminjobs", authMiddleware.RequireAuth(), recruiterOnly, jobHandler.ListOwnJobs)
		job.GET("/search", jobHandler.SearchJobs)
	}

	application := api.Group("/application")
	application.Use(authMiddleware.RequireAuth())
	{
		application.GET("/apply/:id", studentOnly, applicationHandler.Apply)
		application.POST("/apply/:id", studentOnly, applicationHandler.Apply)
		application.GET("/get", studentOnly, applicationHandler.ListAppliedJobs)
		application.GET("/:id/applicants", recruiterOnly, applicationHandler.ListApplicants)
		application.POST("/status/:id/update", recruiterOnly, applicationHandler.UpdateStatus)
	}

	notification := api.Group("/notification")
	notification.Use(authMiddleware.RequireAuth())
	{
		notification.GET("", notificationHandler.GetNotifications)
		notification.GET("/unread-count", notificationHandler.UnreadCount)
		notification.PUT("/:id/read", notificationHandler.MarkAsRead)
		notification.PUT("/read-all", notificationHandler.MarkAllAsRead)
		notification.GET("/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		scheduler: sched,
		stopViews: stopViews,
	}
}

// Run blocks until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.scheduler.Start()
	log.Printf("🚀 Server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains HTTP traffic, then stops background work. The view worker
// flushes pending counters on its way out.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.scheduler.Stop()
	s.stopViews()
	return err
}

func newSearch(cfg *config.Config) searchService.JobSearchService {
	client := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	if !client.IsHealthy() {
		log.Printf("⚠️  Meilisearch at %s is unreachable, job search disabled", cfg.MeiliSearchHost)
		return nil
	}
	log.Println("✅ Connected to Meilisearch")
	return searchService.NewMeiliSearchService(client)
}

func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok"})
	}
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
