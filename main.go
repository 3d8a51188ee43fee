package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"immicv/config"
	"immicv/handlers"
	"immicv/middleware"
	"immicv/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	cfg := config.GetAppConfig()
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	limiters := middleware.CreateRateLimiters(cfg.RateLimit, cfg.RateWindow)
	refCache := middleware.NewResponseCache(cfg.CacheTTL)

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(cors.Default())
	r.Use(middleware.MaxRequestSize(cfg.MaxUploadBytes))

	api := r.Group("/api")

	cv := api.Group("/cv")
	cv.POST("/parse", limiters["analyze"].Limit(), middleware.ValidateJSON(), handlers.ParseCV)
	cv.POST("/extract", limiters["extract"].Limit(), handlers.ExtractAndParseCV)
	cv.POST("/analyze", limiters["analyze"].Limit(), middleware.ValidateJSON(), handlers.AnalyzeCV)
	cv.POST("/enhance", limiters["analyze"].Limit(), middleware.ValidateJSON(), handlers.EnhanceCV)
	cv.POST("/export/word", limiters["general"].Limit(), middleware.ValidateJSON(), handlers.ExportCVWord)

	ref := api.Group("/reference", limiters["general"].Limit(), refCache.Cache())
	ref.GET("/visas", handlers.ListVisaPrograms)
	ref.GET("/industries", handlers.ListIndustries)
	ref.GET("/templates", handlers.ListCVTemplates)

	utils.LogInfo("starting CV toolkit API", map[string]string{"port": cfg.Port, "env": cfg.Environment})
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
