package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dossiervault/api"
	"dossiervault/config"
	"dossiervault/db"
	_ "dossiervault/docs" // Import for side effect: registers swagger spec via init()
	"dossiervault/utils"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           DossierVault API
// @version         1.0.0

// @description     ## DossierVault API
// @description
// @description     A dead-man's-switch registry for encrypted dossiers. Owners register
// @description     bundles of encrypted-file hashes together with the recipients allowed to
// @description     decrypt them, then keep the bundles sealed by checking in periodically.
// @description     Miss the check-in interval plus the grace period and the dossier becomes
// @description     eligible for release; optional guardians must co-sign before recipients
// @description     can actually decrypt.
// @description
// @description     **Vocabulary:**
// @description     *   **Owner**: the user who registered a dossier. All dossier IDs are scoped to their owner.
// @description     *   **Recipient**: a profile allowed to decrypt the payload once the dossier is released.
// @description     *   **Guardian**: a profile whose confirmation counts toward the release threshold.
// @description     *   **Check-in**: the periodic proof of life that keeps a dossier sealed.
// @description
// @description     **Content Querying (`content_query` on `GET /dossiers`):**
// @description     Each `content_query` parameter is `path operator value`, evaluated against
// @description     the dossier record's JSON. Operators: `equals`, `notequals`, `greaterthan`,
// @description     `lessthan`, `greaterthanorequals`, `lessthanorequals`, `contains`,
// @description     `startswith`, `endswith` (append `-insensitive` to the string operators for
// @description     case-insensitive matching). String values must be quoted; numbers, booleans,
// @description     and `null` are bare. Chain conditions by alternating them with `and` / `or`
// @description     parameters.
// @description
// @description     Examples:
// @description     *   `?content_query=status equals "paused"`
// @description     *   `?content_query=guardian_threshold greaterthanorequals 2&content_query=and&content_query=status equals "active"`
// @description     *   `?content_query=name contains "will"&content_query=or&content_query=recipients contains "a1b2"`

// @license.name  MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.jwt BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL: Failed to load configuration: %v", err)
	}

	// --- Database ---
	database, err := db.NewDatabase(cfg)
	if err != nil {
		// NewDatabase logs specifics, including critical parse errors
		log.Fatalf("CRITICAL: Failed to initialize database: %v", err)
	}

	// --- Gin Router Setup ---
	router := gin.Default()
	registerRoutes(router, database, cfg)

	// --- Swagger Route ---
	router.StaticFS("/docs", http.Dir("docs"))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/docs/swagger.json")))

	// --- Start Server ---
	listenAddr := fmt.Sprintf("%s:%s", cfg.ListenAddress, cfg.ListenPort)
	log.Printf("INFO: Starting server on %s", listenAddr)

	server := &http.Server{
		Addr:    listenAddr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("CRITICAL: Server failed to start: %v", err)
		}
	}()

	// Block until interrupted, then drain connections and flush the vault file.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("INFO: Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("ERROR: Server shutdown failed: %v", err)
	}
	if err := database.Close(); err != nil {
		log.Printf("ERROR: Failed to flush database on shutdown: %v", err)
	}
	log.Println("INFO: Shutdown complete")
}

// registerRoutes mounts every API route on the router. Kept separate from
// main so the integration tests can build an identical router.
func registerRoutes(router *gin.Engine, database *db.Database, cfg *config.Config) {
	// --- Public Routes (No Auth Required) ---
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", func(c *gin.Context) {
			api.SignupHandler(c, database, cfg)
		})
		authGroup.POST("/login", func(c *gin.Context) {
			api.LoginHandler(c, database, cfg)
		})
	}

	// --- Protected Routes (Auth Required) ---
	authMiddleware := utils.AuthMiddleware(cfg)

	router.POST("/auth/logout", authMiddleware, func(c *gin.Context) {
		api.LogoutHandler(c, database, cfg)
	})

	// Profile Routes
	profileGroup := router.Group("/profiles")
	profileGroup.Use(authMiddleware)
	{
		profileGroup.GET("/me", func(c *gin.Context) {
			api.GetProfileMeHandler(c, database, cfg)
		})
		profileGroup.PUT("/me", func(c *gin.Context) {
			api.UpdateProfileMeHandler(c, database, cfg)
		})
		profileGroup.DELETE("/me", func(c *gin.Context) {
			api.DeleteProfileMeHandler(c, database, cfg)
		})
		profileGroup.GET("", func(c *gin.Context) {
			api.SearchProfilesHandler(c, database, cfg)
		})
	}

	// Dossier Routes (owner-scoped)
	dossierGroup := router.Group("/dossiers")
	dossierGroup.Use(authMiddleware)
	{
		dossierGroup.POST("", func(c *gin.Context) {
			api.CreateDossierHandler(c, database, cfg)
		})
		dossierGroup.GET("", func(c *gin.Context) {
			api.GetDossiersHandler(c, database, cfg)
		})
		dossierGroup.GET("/:id", func(c *gin.Context) {
			api.GetDossierByIDHandler(c, database, cfg)
		})

		// Lifecycle transitions
		dossierGroup.POST("/:id/checkin", func(c *gin.Context) {
			api.CheckInHandler(c, database, cfg)
		})
		dossierGroup.POST("/:id/pause", func(c *gin.Context) {
			api.PauseHandler(c, database, cfg)
		})
		dossierGroup.POST("/:id/resume", func(c *gin.Context) {
			api.ResumeHandler(c, database, cfg)
		})
		dossierGroup.POST("/:id/release", func(c *gin.Context) {
			api.ReleaseHandler(c, database, cfg)
		})
		dossierGroup.POST("/:id/disable", func(c *gin.Context) {
			api.DisableHandler(c, database, cfg)
		})

		// Edits
		dossierGroup.PUT("/:id/interval", func(c *gin.Context) {
			api.UpdateIntervalHandler(c, database, cfg)
		})
		dossierGroup.POST("/:id/files", func(c *gin.Context) {
			api.AddFileHashesHandler(c, database, cfg)
		})
		dossierGroup.PUT("/:id/recipients/:profile_id", func(c *gin.Context) {
			api.AddRecipientHandler(c, database, cfg)
		})
		dossierGroup.DELETE("/:id/recipients/:profile_id", func(c *gin.Context) {
			api.RemoveRecipientHandler(c, database, cfg)
		})

		// Guardian management (owner side)
		dossierGroup.GET("/:id/guardians", func(c *gin.Context) {
			api.GetGuardiansHandler(c, database, cfg)
		})
		dossierGroup.PUT("/:id/guardians/:profile_id", func(c *gin.Context) {
			api.AddGuardianHandler(c, database, cfg)
		})
		dossierGroup.DELETE("/:id/guardians/:profile_id", func(c *gin.Context) {
			api.RemoveGuardianHandler(c, database, cfg)
		})
		dossierGroup.PUT("/:id/threshold", func(c *gin.Context) {
			api.UpdateThresholdHandler(c, database, cfg)
		})
	}

	// Batch lifecycle operations
	router.POST("/checkin-all", authMiddleware, func(c *gin.Context) {
		api.CheckInAllHandler(c, database, cfg)
	})
	router.POST("/pause-all", authMiddleware, func(c *gin.Context) {
		api.PauseAllHandler(c, database, cfg)
	})
	router.POST("/resume-all", authMiddleware, func(c *gin.Context) {
		api.ResumeAllHandler(c, database, cfg)
	})

	// Guardian-side views
	guardianGroup := router.Group("/guardian")
	guardianGroup.Use(authMiddleware)
	{
		guardianGroup.GET("/dossiers", func(c *gin.Context) {
			api.GuardianDossiersHandler(c, database, cfg)
		})
		guardianGroup.GET("/dossiers/:owner_id/:id", func(c *gin.Context) {
			api.GuardianStatusHandler(c, database, cfg)
		})
		guardianGroup.POST("/dossiers/:owner_id/:id/confirm", func(c *gin.Context) {
			api.ConfirmReleaseHandler(c, database, cfg)
		})
		guardianGroup.POST("/dossiers/:owner_id/:id/revoke", func(c *gin.Context) {
			api.RevokeConfirmationHandler(c, database, cfg)
		})
	}

	// Recipient-side view
	router.GET("/recipient/dossiers", authMiddleware, func(c *gin.Context) {
		api.RecipientDossiersHandler(c, database, cfg)
	})

	// Vault status (what a decrypting client polls)
	vaultGroup := router.Group("/vault")
	vaultGroup.Use(authMiddleware)
	{
		vaultGroup.GET("/:owner_id", func(c *gin.Context) {
			api.VaultOwnerHandler(c, database, cfg)
		})
		vaultGroup.GET("/:owner_id/:id/status", func(c *gin.Context) {
			api.VaultStatusHandler(c, database, cfg)
		})
	}
}
