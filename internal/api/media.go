package api

import (
	"io"
	"net/http"

	"template-studio/internal/database"
	"template-studio/internal/models"
	"template-studio/internal/whatsapp"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// MediaHandler exposes the upload collaborator. Handles are opaque: the
// service records and forwards them, never interpreting the content.
type MediaHandler struct {
	Client *whatsapp.Client
}

func NewMediaHandler(client *whatsapp.Client) *MediaHandler {
	return &MediaHandler{Client: client}
}

// Upload accepts a file and returns the handle (plus a direct preview URL
// when available) for use as a template header.
func (h *MediaHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	mimeType := header.Header.Get("Content-Type")

	resp, err := h.Client.UploadMedia(fileBytes, mimeType, header.Filename)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	// Preview URL is best effort; the handle alone is enough to compile.
	previewURL, err := h.Client.RetrieveMediaURL(resp.ID)
	if err != nil {
		log.Warn().Err(err).Str("handle", resp.ID).Msg("could not resolve preview URL")
	}

	record := models.Media{
		Handle:     resp.ID,
		Filename:   header.Filename,
		MimeType:   mimeType,
		FileSize:   header.Size,
		PreviewURL: previewURL,
	}
	if err := database.DB.Save(&record).Error; err != nil {
		log.Error().Err(err).Str("handle", resp.ID).Msg("failed to record uploaded media")
	}

	c.JSON(http.StatusOK, gin.H{"handle": resp.ID, "preview_url": previewURL})
}

// RetrieveURL resolves a handle to a direct URL.
func (h *MediaHandler) RetrieveURL(c *gin.Context) {
	handle := c.Param("id")
	if handle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Media handle required"})
		return
	}

	url, err := h.Client.RetrieveMediaURL(handle)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Delete removes an uploaded asset remotely and locally.
func (h *MediaHandler) Delete(c *gin.Context) {
	handle := c.Param("id")
	if handle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Media handle required"})
		return
	}

	if err := h.Client.DeleteMedia(handle); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if err := database.DB.Where("handle = ?", handle).Delete(&models.Media{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Media deleted"})
}
