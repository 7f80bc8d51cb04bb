package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panelops/backend/internal/application/services"
	"github.com/panelops/backend/internal/bootstrap"
	"github.com/panelops/backend/internal/infrastructure/ai"
	"github.com/panelops/backend/internal/infrastructure/database"
	"github.com/panelops/backend/internal/interfaces/middleware"
	"github.com/panelops/backend/internal/interfaces/rest"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("📄 Loaded environment from .env")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	// Initialize database connection
	db, err := database.GetInstance()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("✅ Database connection established")

	ctx := context.Background()
	if err := bootstrap.EnsureSchema(ctx, db.DB()); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// The AI interpreter is optional; a nil interpreter disables the
	// fallback regardless of per-org flags.
	interpreter := ai.NewHTTPInterpreterFromEnv()
	if interpreter != nil {
		log.Println("🤖 AI interpreter configured")
	}

	svcMgr := newServiceManager(db, interpreter)
	log.Println("🔧 Service manager initialized")

	if err := bootstrap.InitializeSystemData(ctx, db.DB(), bootstrap.Repositories{
		Library:  svcMgr.Repos.Library,
		OpTypes:  svcMgr.Repos.OpTypes,
		Rules:    svcMgr.Repos.Rules,
		Accounts: svcMgr.Repos.Accounts,
	}); err != nil {
		log.Fatalf("Failed to initialize system data: %v", err)
	}

	router := buildRouter(svcMgr)

	log.Println("\n═══════════════════════════════════════════════════════════════════════════")
	log.Println("🚀 PanelOps Resolution Engine Started Successfully")
	log.Println("═══════════════════════════════════════════════════════════════════════════")
	log.Printf("\n📍 Server:        http://localhost:%s", port)
	log.Printf("🔐 Auth API:      http://localhost:%s/api/auth", port)
	log.Printf("🧩 Resolve API:   http://localhost:%s/api/resolve", port)
	log.Printf("📚 Library API:   http://localhost:%s/api/library", port)
	log.Printf("💚 Health check:  http://localhost:%s/api/health\n", port)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM with a 5 second drain
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}

// newServiceManager keeps the interpreter port nil when no AI endpoint is
// configured, so the resolution pipeline's nil check stays meaningful
func newServiceManager(db *database.TiDBConnection, interpreter *ai.HTTPInterpreter) *services.ServiceManager {
	if interpreter == nil {
		return services.NewServiceManager(db, nil)
	}
	return services.NewServiceManager(db, interpreter)
}

func buildRouter(svcMgr *services.ServiceManager) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.Cors())

	authHandler := rest.NewAuthHandler(svcMgr)
	resolveHandler := rest.NewResolveHandler(svcMgr)
	libraryHandler := rest.NewLibraryHandler(svcMgr)
	dialectHandler := rest.NewDialectHandler(svcMgr)
	opTypeHandler := rest.NewOperationTypeHandler(svcMgr)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth())
		{
			protected.POST("/resolve", resolveHandler.Resolve)
			protected.POST("/resolve/batch", resolveHandler.ResolveBatch)

			protected.GET("/library/:category", libraryHandler.List)
			protected.POST("/library/:category", libraryHandler.Create)
			protected.PUT("/library/:category/:id", libraryHandler.Update)
			protected.DELETE("/library/:category/:id", libraryHandler.Delete)
			protected.POST("/library/:category/:id/usage", libraryHandler.IncrementUsage)

			protected.GET("/dialect", dialectHandler.Get)
			protected.POST("/dialect/aliases", dialectHandler.AddAlias)
			protected.DELETE("/dialect/aliases/:category/:external", dialectHandler.RemoveAlias)
			protected.PUT("/dialect/flags", dialectHandler.UpdateFlags)

			protected.GET("/optypes/:category", opTypeHandler.List)
			protected.POST("/optypes", opTypeHandler.Create)
			protected.PUT("/optypes/:id", opTypeHandler.Update)
			protected.DELETE("/optypes/:id", opTypeHandler.Delete)
		}
	}

	return router
}
