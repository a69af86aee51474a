package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arnavshah/workload-governance-go/pkg/auth"
	"github.com/arnavshah/workload-governance-go/pkg/config"
	"github.com/arnavshah/workload-governance-go/pkg/database"
	"github.com/arnavshah/workload-governance-go/pkg/handlers"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

func main() {
	// Load .env if it exists
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB(cfg)
	if err := auth.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Printf("could not create default admin: %v", err)
	}

	router := handlers.NewRouter(handlers.New(db, cfg))

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		})(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("could not run server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
