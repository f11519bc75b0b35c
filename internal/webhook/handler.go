package webhook

import (
	"net/http"

	"template-studio/internal/config"
	"template-studio/internal/database"
	"template-studio/internal/ws"
	"template-studio/pkg/models"

	internalmodels "template-studio/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	Config *config.Config
	Hub    *ws.Hub
}

func NewHandler(cfg *config.Config, hub *ws.Hub) *Handler {
	return &Handler{Config: cfg, Hub: hub}
}

func (h *Handler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode != "" && token != "" {
		if mode == "subscribe" && token == h.Config.VerifyToken {
			log.Info().Msg("webhook verified")
			c.String(http.StatusOK, challenge)
		} else {
			c.Status(http.StatusForbidden)
		}
	} else {
		c.Status(http.StatusBadRequest)
	}
}

// HandleUpdate processes template review decisions pushed by the platform
// and mirrors them into the stored template records.
func (h *Handler) HandleUpdate(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Error().Err(err).Msg("failed to bind webhook payload")
		c.Status(http.StatusBadRequest)
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "message_template_status_update" {
				continue
			}
			h.applyStatusUpdate(change.Value)
		}
	}

	c.Status(http.StatusOK)
}

func (h *Handler) applyStatusUpdate(update models.TemplateStatusUpdate) {
	log.Info().
		Str("template", update.MessageTemplateName).
		Str("language", update.MessageTemplateLanguage).
		Str("event", update.Event).
		Msg("template status update received")

	var tmpl internalmodels.Template
	result := database.DB.
		Where("name = ? AND language = ?", update.MessageTemplateName, update.MessageTemplateLanguage).
		First(&tmpl)
	if result.Error != nil {
		log.Warn().
			Str("template", update.MessageTemplateName).
			Msg("status update for unknown template, skipping")
		return
	}

	tmpl.Status = update.Event
	if err := database.DB.Save(&tmpl).Error; err != nil {
		log.Error().Err(err).Str("template", tmpl.Name).Msg("failed to persist status update")
		return
	}

	if h.Hub != nil {
		h.Hub.NotifyTemplateStatus(tmpl)
	}
}
