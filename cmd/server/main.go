package main

import (
	"os"
	"time"

	"template-studio/internal/api"
	"template-studio/internal/config"
	"template-studio/internal/database"
	"template-studio/internal/webhook"
	"template-studio/internal/whatsapp"
	"template-studio/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.LoadConfig()
	database.Init(cfg)

	r := gin.Default()

	// CORS Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	client := whatsapp.NewClient(cfg)
	hub := ws.NewHub()
	go hub.Run()

	webhookHandler := webhook.NewHandler(cfg, hub)
	templateHandler := api.NewTemplateHandler(client, hub)
	mediaHandler := api.NewMediaHandler(client)

	// Webhook Routes
	r.GET("/webhook", webhookHandler.VerifyWebhook)
	r.POST("/webhook", webhookHandler.HandleUpdate)

	// Dashboard API Routes
	apiGroup := r.Group("/api")
	{
		// Template Routes
		apiGroup.GET("/templates", templateHandler.ListTemplates)
		apiGroup.GET("/templates/:id", templateHandler.GetTemplate)
		apiGroup.POST("/templates", templateHandler.SubmitTemplate)
		apiGroup.DELETE("/templates", templateHandler.DeleteTemplate)
		apiGroup.POST("/templates/validate", templateHandler.ValidateDraft)
		apiGroup.POST("/templates/preview", templateHandler.PreviewDraft)
		apiGroup.POST("/templates/category", templateHandler.ChangeCategory)
		apiGroup.POST("/templates/sync", templateHandler.SyncTemplates)

		// Media Routes
		apiGroup.POST("/media", mediaHandler.Upload)
		apiGroup.GET("/media/:id", mediaHandler.RetrieveURL)
		apiGroup.DELETE("/media/:id", mediaHandler.Delete)
	}

	// Live template status updates for the dashboard
	r.GET("/ws", func(c *gin.Context) {
		hub.ServeWs(c.Writer, c.Request)
	})

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to run server")
	}
}
