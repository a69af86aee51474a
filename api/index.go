package handler

import (
	"log"
	"net/http"

	"github.com/arnavshah/workload-governance-go/pkg/auth"
	"github.com/arnavshah/workload-governance-go/pkg/config"
	"github.com/arnavshah/workload-governance-go/pkg/database"
	"github.com/arnavshah/workload-governance-go/pkg/handlers"
	"github.com/gin-gonic/gin"
)

var r http.Handler

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	db := database.InitDB(cfg)
	_ = auth.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword)

	gin.SetMode(gin.ReleaseMode)
	r = handlers.NewRouter(handlers.New(db, cfg))
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
