package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/convergenps/backend/internal/api/handlers"
	"github.com/convergenps/backend/internal/api/middleware"
	"github.com/convergenps/backend/internal/config"
	"github.com/convergenps/backend/internal/repository"
	"github.com/convergenps/backend/internal/service"
	"github.com/convergenps/backend/internal/smartsheet"
)

func main() {

	// LOAD ENV
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed load config:", err)
	}

	// INIT DB
	repo, err := repository.NewPostgresRepoFromConfig(&repository.DBConfig{
		Host: cfg.DBHost,
		Port: cfg.DBPort,
		User: cfg.DBUser,
		Pass: cfg.DBPass,
		Name: cfg.DBName,
	})
	if err != nil {
		log.Fatal("failed connecting to database:", err)
	}

	// MIGRATIONS
	if err := repo.RunMigrations(context.Background()); err != nil {
		log.Fatal("migration error:", err)
	}

	// ADMIN SEED
	hashed, _ := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err := repo.UpsertAdmin(context.Background(), cfg.AdminEmail, string(hashed)); err != nil {
		log.Println("failed seeding admin:", err)
	} else {
		log.Println("admin seeded OK")
	}

	// SERVICES
	queue := smartsheet.NewRequestQueue(cfg.QueueDelay)
	client := smartsheet.NewClient(cfg.SmartsheetAPIKey)
	exportService := service.NewExportService(repo, client, queue, cfg)
	importService := service.NewImportService(repo, client, queue, cfg)
	statusService := service.NewStatusService(repo, exportService)

	// HANDLERS
	authHandler := handlers.NewAuthHandler(repo, cfg.JWTSecret)
	sheetHandler := handlers.NewSmartsheetHandler(exportService, importService, statusService)

	// ROUTER
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	api := r.Group("/api/v1")

	// AUTH ROUTES
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	// ADMIN SMARTSHEET ROUTES
	sheet := api.Group("/admin/smartsheet")
	sheet.Use(middleware.AdminAuth(cfg.JWTSecret))
	{
		sheet.GET("/status", sheetHandler.GetStatus)
		sheet.GET("/failures", sheetHandler.GetFailures)
		sheet.DELETE("/failures", sheetHandler.ClearFailures)
		sheet.POST("/sync/:kind", sheetHandler.TriggerSync)
		sheet.POST("/retry/:id", sheetHandler.RetrySync)
		sheet.POST("/import/:kind", sheetHandler.ImportKind)
		sheet.GET("/inspect/:kind", sheetHandler.Inspect)
	}

	// START SERVER
	log.Println("Server running on port:", cfg.Port)
	r.Run(":" + cfg.Port)
}
