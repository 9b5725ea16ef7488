package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/clinic-scheduler/internal/cache"
	"github.com/clinicdesk/clinic-scheduler/internal/config"
	dbpkg "github.com/clinicdesk/clinic-scheduler/internal/db"
	"github.com/clinicdesk/clinic-scheduler/internal/middleware"
	"github.com/clinicdesk/clinic-scheduler/internal/routes"
	"github.com/clinicdesk/clinic-scheduler/internal/storage"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	slotsCache := cache.New(cfg.RedisAddr, cfg.RedisPassword)
	if slotsCache == nil {
		log.Println("redis not configured, slot caching disabled")
	}

	uploader := storage.NewUploader(cfg)
	if uploader == nil {
		log.Println("object storage not configured, slider uploads disabled")
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, slotsCache, uploader)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
