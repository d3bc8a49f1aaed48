package api

import (
	"context"
	"errors"
	"log"

	"contracthub/config"
	"contracthub/infra/queue"
	"contracthub/internal/api/rest/handlers"
	"contracthub/internal/api/rest/middleware"
	"contracthub/internal/domain"
	"contracthub/internal/helper"
	"contracthub/internal/repository"
	"contracthub/internal/services"
	"contracthub/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION + SEED (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260314

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Contract{},
		&domain.Notification{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	seedAdmin(db)

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	fileStore, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("file store init error: %v", err)
	}

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	contractRepo := repository.NewContractRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// ---------- Services ----------
	authSvc := services.NewAuthService(userRepo, contractRepo, fileStore, kafkaProducer, authHelper)
	contractSvc := services.NewContractService(contractRepo, fileStore)
	notificationSvc := services.NewNotificationService(notificationRepo, contractRepo)
	expirySvc := services.NewExpiryService(contractRepo)

	// ---------- Handlers ----------
	authHandler := handlers.NewAuthHandler(authSvc, authHelper)
	authHandler.SetupRoutes(app)

	// everything below requires a valid session
	app.Use(middleware.AuthMiddleware(authHelper, authSvc))

	contractHandler := handlers.NewContractHandler(contractSvc, notificationSvc, fileStore)
	contractHandler.SetupRoutes(app)

	notificationHandler := handlers.NewNotificationHandler(notificationSvc)
	notificationHandler.SetupRoutes(app)

	settingsHandler := handlers.NewSettingsHandler(authSvc)
	settingsHandler.SetupRoutes(app)

	admin := app.Group("/admin", middleware.AdminOnly())
	adminHandler := handlers.NewAdminHandler(authSvc)
	adminHandler.SetupRoutes(admin)

	// ---------- Background expiry scan ----------
	go expirySvc.Run(context.Background())

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

func seedAdmin(db *gorm.DB) {
	var existing domain.User
	err := db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("seed admin lookup error:", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Println("seed admin hash error:", err)
		return
	}

	_ = db.Create(&domain.User{
		FullName:     "Administrator",
		Username:     "admin",
		Email:        "admin@contracthub.local",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Status:       domain.UserActive,
	}).Error
}
