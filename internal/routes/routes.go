package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/kristins-brudesalong/salon-scheduler/internal/audit"
	"github.com/kristins-brudesalong/salon-scheduler/internal/config"
	"github.com/kristins-brudesalong/salon-scheduler/internal/handlers"
	infraRepo "github.com/kristins-brudesalong/salon-scheduler/internal/infra/repository"
	"github.com/kristins-brudesalong/salon-scheduler/internal/middleware"
	"github.com/kristins-brudesalong/salon-scheduler/internal/payments/vipps"
	"github.com/kristins-brudesalong/salon-scheduler/internal/storage"
	ucAppointment "github.com/kristins-brudesalong/salon-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	vippsClient := vipps.NewClient(vipps.Options{
		BaseURL:         cfg.VippsBaseURL,
		ClientID:        cfg.VippsClientID,
		ClientSecret:    cfg.VippsClientSecret,
		MSN:             cfg.VippsMSN,
		SubscriptionKey: cfg.VippsSubscriptionKey,
	})

	var media *storage.MediaStore
	if cfg.S3AccessKey != "" {
		media = storage.NewMediaStore(storage.MediaOptions{
			Endpoint:   cfg.S3Endpoint,
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			PublicBase: cfg.MediaPublicBase,
		})
	}

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
		cfg.Timezone,
	)

	cancelByCustomerUC := ucAppointment.NewCancelByCustomer(
		appointmentRepo,
		auditDispatcher,
		cfg.Timezone,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		appointmentRepo,
		auditDispatcher,
		cfg.Timezone,
	)

	applyPaymentEventUC := ucAppointment.NewApplyPaymentEvent(
		appointmentRepo,
		auditDispatcher,
		cfg.Timezone,
	)

	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo, cfg.Timezone)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo, cfg.Timezone)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	publicHandler := handlers.NewPublicHandler(
		db,
		cfg.Timezone,
		availabilityUC,
		createAppointmentUC,
		cancelByCustomerUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		cfg.Timezone,
		updateStatusUC,
		listByDateUC,
		listByMonthUC,
	)

	paymentHandler := handlers.NewPaymentHandler(
		appointmentRepo,
		vippsClient,
		applyPaymentEventUC,
	)

	stripeWebhookHandler := handlers.NewStripeWebhookHandler(
		cfg.StripeWebhookSecret,
		applyPaymentEventUC,
	)

	serviceHandler := handlers.NewServiceHandler(db)
	staffHandler := handlers.NewStaffHandler(db)
	ruleHandler := handlers.NewAvailabilityRuleHandler(db)
	blackoutHandler := handlers.NewBlackoutHandler(db, cfg.Timezone)
	dressHandler := handlers.NewDressHandler(db, media)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")

		if cfg.RedisAddr != "" {
			rdb := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
			})
			limiter := middleware.NewRateLimiter(rdb, 60, time.Minute)
			publicAPI.Use(limiter.Handler())
		}

		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/staff", publicHandler.ListStaff)
			publicAPI.GET("/dresses", publicHandler.ListDresses)

			publicAPI.GET("/availability", publicHandler.Availability)

			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/appointments/:id", publicHandler.GetAppointment)
			publicAPI.POST("/appointments/:id/cancel", publicHandler.CancelAppointment)

			publicAPI.POST("/appointments/:id/payments/stripe-intent", paymentHandler.CreateStripeIntent)
			publicAPI.POST("/appointments/:id/payments/vipps-session", paymentHandler.CreateVippsSession)
			publicAPI.GET("/payments/vipps/callback", paymentHandler.VippsCallback)
		}

		// ------------------------------
		// WEBHOOKS (signature-authenticated)
		// ------------------------------
		api.POST("/webhooks/stripe", stripeWebhookHandler.Handle)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)

			admin.GET("/staff", staffHandler.List)
			admin.POST("/staff", staffHandler.Create)
			admin.PATCH("/staff/:id", staffHandler.Update)

			admin.GET("/staff/:staffId/rules", ruleHandler.Get)
			admin.PUT("/staff/:staffId/rules", ruleHandler.Update)

			admin.GET("/blackouts", blackoutHandler.List)
			admin.POST("/blackouts", blackoutHandler.Create)
			admin.DELETE("/blackouts/:id", blackoutHandler.Delete)

			admin.GET("/appointments", appointmentHandler.ListByDate)
			admin.GET("/appointments/month", appointmentHandler.ListByMonth)
			admin.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			admin.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			admin.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			admin.PATCH("/appointments/:id/no-show", appointmentHandler.MarkNoShow)

			admin.GET("/dresses", dressHandler.List)
			admin.POST("/dresses", dressHandler.Create)
			admin.PATCH("/dresses/:id", dressHandler.Update)
			admin.DELETE("/dresses/:id", dressHandler.Delete)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
