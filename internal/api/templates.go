package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"template-studio/internal/database"
	"template-studio/internal/models"
	"template-studio/internal/template"
	"template-studio/internal/whatsapp"
	"template-studio/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TemplateHandler wires the compiler entry points (validate, build, parse)
// to the dashboard API.
type TemplateHandler struct {
	Client *whatsapp.Client
	Hub    *ws.Hub
	Limits template.Limits
}

func NewTemplateHandler(client *whatsapp.Client, hub *ws.Hub) *TemplateHandler {
	return &TemplateHandler{Client: client, Hub: hub, Limits: template.DefaultLimits()}
}

// ValidateDraft runs the rule engine and returns the field errors without
// side effects, for inline form feedback.
func (h *TemplateHandler) ValidateDraft(c *gin.Context) {
	var draft template.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	errs := template.Validate(draft, h.Limits)
	if errs == nil {
		errs = []template.FieldError{}
	}
	c.JSON(http.StatusOK, gin.H{"valid": len(errs) == 0, "errors": errs})
}

type previewRequest struct {
	Text   string            `json:"text"`
	Values map[string]string `json:"values"`
}

// PreviewDraft renders body text with placeholder substitution and inline
// markup for the live preview pane.
func (h *TemplateHandler) PreviewDraft(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	values := make(map[int]string, len(req.Values))
	for k, v := range req.Values {
		if idx, err := strconv.Atoi(k); err == nil {
			values[idx] = v
		}
	}
	c.JSON(http.StatusOK, gin.H{"preview": template.RenderPreview(req.Text, values)})
}

type categoryChangeRequest struct {
	Draft    template.Draft    `json:"draft"`
	Category template.Category `json:"category"`
}

// ChangeCategory applies the category transition, resetting every field
// exclusive to the category being left.
func (h *TemplateHandler) ChangeCategory(c *gin.Context) {
	var req categoryChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown template category"})
		return
	}
	c.JSON(http.StatusOK, template.OnCategoryChange(req.Draft, req.Category))
}

// SubmitTemplate validates, compiles and submits a draft, then stores the
// compiled record locally.
func (h *TemplateHandler) SubmitTemplate(c *gin.Context) {
	var draft template.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if errs := template.Validate(draft, h.Limits); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	nodes, err := template.Build(draft, h.Limits)
	if err != nil {
		// Unreachable after a clean Validate; a bug, not user input.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	req := whatsapp.TemplateRequest{
		Name:       draft.Name,
		Language:   draft.Language,
		Category:   string(draft.Category),
		Components: nodes,
	}
	switch draft.Category {
	case template.CategoryAuthentication:
		req.Auth = &draft.Auth
	case template.CategoryLimitedTimeOffer:
		req.Offer = &draft.Offer
	}

	resp, err := h.Client.CreateTemplate(req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "template submission failed: " + err.Error()})
		return
	}

	record, err := h.storeTemplate(draft, nodes, resp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.Hub != nil {
		h.Hub.NotifyTemplateSubmitted(record)
	}
	c.JSON(http.StatusOK, record)
}

func (h *TemplateHandler) storeTemplate(draft template.Draft, nodes []template.Component, resp *whatsapp.TemplateResponse) (models.Template, error) {
	componentsJSON, err := json.Marshal(nodes)
	if err != nil {
		return models.Template{}, err
	}

	record := models.Template{
		ID:         resp.ID,
		Name:       draft.Name,
		Language:   draft.Language,
		Category:   string(draft.Category),
		Status:     resp.Status,
		AccountRef: draft.AccountRef,
		Components: string(componentsJSON),
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Status == "" {
		record.Status = "PENDING"
	}

	switch draft.Category {
	case template.CategoryAuthentication:
		sidecar, err := json.Marshal(draft.Auth)
		if err != nil {
			return models.Template{}, err
		}
		record.Auth = string(sidecar)
	case template.CategoryLimitedTimeOffer:
		sidecar, err := json.Marshal(draft.Offer)
		if err != nil {
			return models.Template{}, err
		}
		record.Offer = string(sidecar)
	}

	if err := database.DB.Save(&record).Error; err != nil {
		return models.Template{}, err
	}
	return record, nil
}

// ListTemplates returns the locally stored templates.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	var templates []models.Template
	if err := database.DB.Order("updated_at desc").Find(&templates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetTemplate loads a stored record and reconstructs the editable draft
// from its component tree for the edit screen.
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	var record models.Template
	if err := database.DB.First(&record, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		return
	}

	draft, err := draftFromRecord(record)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": record, "draft": draft})
}

func draftFromRecord(record models.Template) (template.Draft, error) {
	var nodes []template.Component
	if record.Components != "" {
		if err := json.Unmarshal([]byte(record.Components), &nodes); err != nil {
			return template.Draft{}, err
		}
	}

	ctx := template.Context{
		Name:       record.Name,
		Category:   template.Category(record.Category),
		Language:   record.Language,
		AccountRef: record.AccountRef,
	}
	if record.Auth != "" {
		var auth template.AuthSettings
		if err := json.Unmarshal([]byte(record.Auth), &auth); err == nil {
			ctx.Auth = &auth
		}
	}
	if record.Offer != "" {
		var offer template.OfferSettings
		if err := json.Unmarshal([]byte(record.Offer), &offer); err == nil {
			ctx.Offer = &offer
		}
	}

	return template.Parse(nodes, ctx), nil
}

// DeleteTemplate removes a template remotely and locally by name.
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Template name required (query param 'name')"})
		return
	}

	if err := h.Client.DeleteTemplate(name); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if err := database.DB.Where("name = ?", name).Delete(&models.Template{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Template deleted"})
}

// SyncTemplates pulls the remote template list and upserts it locally, so
// templates created elsewhere become editable here.
func (h *TemplateHandler) SyncTemplates(c *gin.Context) {
	if h.Client.Config.WhatsAppBusinessAccountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "WABA_ID not configured"})
		return
	}

	remote, err := h.Client.GetTemplates()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch templates: " + err.Error()})
		return
	}

	synced := 0
	for _, tmpl := range remote.Data {
		componentsJSON, err := json.Marshal(tmpl.Components)
		if err != nil {
			log.Error().Err(err).Str("template", tmpl.Name).Msg("failed to marshal synced components")
			continue
		}

		record := models.Template{
			ID:         tmpl.ID,
			Name:       tmpl.Name,
			Language:   tmpl.Language,
			Category:   tmpl.Category,
			Status:     tmpl.Status,
			AccountRef: h.Client.Config.WhatsAppBusinessAccountID,
			Components: string(componentsJSON),
		}
		if err := database.DB.Save(&record).Error; err != nil {
			log.Error().Err(err).Str("template", tmpl.Name).Msg("failed to save synced template")
			continue
		}
		synced++
	}

	c.JSON(http.StatusOK, gin.H{"status": "Templates synced", "count": synced})
}
