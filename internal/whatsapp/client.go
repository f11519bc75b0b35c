package whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"template-studio/internal/config"
	"template-studio/internal/template"
)

// Client talks to the Graph API template and media endpoints. It never
// inspects media content; handles pass through verbatim.
type Client struct {
	Config  *config.Config
	BaseURL string
	HTTP    *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		Config:  cfg,
		BaseURL: "https://graph.facebook.com/v19.0",
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// --- Template Structures ---

// TemplateRequest is the submission payload: the compiled component tree
// plus the sidecar settings for categories that do not encode everything
// in the tree.
type TemplateRequest struct {
	Name       string               `json:"name"`
	Language   string               `json:"language"`
	Category   string               `json:"category"`
	Components []template.Component `json:"components,omitempty"`

	Auth  *template.AuthSettings  `json:"auth_settings,omitempty"`
	Offer *template.OfferSettings `json:"offer_settings,omitempty"`
}

type TemplateResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

// StoredTemplate is one entry of the remote template list.
type StoredTemplate struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Language   string               `json:"language"`
	Category   string               `json:"category"`
	Status     string               `json:"status"`
	Components []template.Component `json:"components"`
}

type TemplateList struct {
	Data []StoredTemplate `json:"data"`
}

// --- Helper Functions ---

func (c *Client) sendRequest(method, url string, body interface{}, headers map[string]string) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.Config.WhatsAppToken)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("Content-Type") == "" && body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return respBody, fmt.Errorf("API error: %s - %s", resp.Status, string(respBody))
	}

	return respBody, nil
}

// --- Template Management Methods ---

func (c *Client) CreateTemplate(req TemplateRequest) (*TemplateResponse, error) {
	url := fmt.Sprintf("%s/%s/message_templates", c.BaseURL, c.Config.WhatsAppBusinessAccountID)
	resp, err := c.sendRequest("POST", url, req, nil)
	if err != nil {
		return nil, err
	}

	var result TemplateResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetTemplates() (*TemplateList, error) {
	url := fmt.Sprintf("%s/%s/message_templates", c.BaseURL, c.Config.WhatsAppBusinessAccountID)
	resp, err := c.sendRequest("GET", url, nil, nil)
	if err != nil {
		return nil, err
	}

	var result TemplateList
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteTemplate(templateName string) error {
	// DELETE {waba_id}/message_templates?name={name}
	u := fmt.Sprintf("%s/%s/message_templates?name=%s",
		c.BaseURL, c.Config.WhatsAppBusinessAccountID, url.QueryEscape(templateName))
	_, err := c.sendRequest("DELETE", u, nil, nil)
	return err
}

// --- Media Methods ---

type MediaResponse struct {
	ID string `json:"id"`
}

// UploadMedia uploads a file and returns the opaque handle issued for it.
func (c *Client) UploadMedia(fileData []byte, mimeType, filename string) (*MediaResponse, error) {
	url := fmt.Sprintf("%s/%s/media", c.BaseURL, c.Config.PhoneNumberID)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	part.Write(fileData)

	writer.WriteField("messaging_product", "whatsapp")
	writer.Close()

	req, err := http.NewRequest("POST", url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.Config.WhatsAppToken)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("upload failed: %s - %s", resp.Status, string(respBody))
	}

	var mediaResp MediaResponse
	if err := json.Unmarshal(respBody, &mediaResp); err != nil {
		return nil, err
	}

	return &mediaResp, nil
}

func (c *Client) RetrieveMediaURL(mediaID string) (string, error) {
	url := fmt.Sprintf("%s/%s", c.BaseURL, mediaID)
	resp, err := c.sendRequest("GET", url, nil, nil)
	if err != nil {
		return "", err
	}

	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(resp, &obj); err != nil {
		return "", err
	}
	return obj.URL, nil
}

func (c *Client) DeleteMedia(mediaID string) error {
	url := fmt.Sprintf("%s/%s", c.BaseURL, mediaID)
	_, err := c.sendRequest("DELETE", url, nil, nil)
	return err
}
