package models

// WebhookPayload is the incoming JSON envelope for business-account
// webhooks. Template review decisions arrive on the
// message_template_status_update field.
type WebhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Time    int64  `json:"time"`
		Changes []struct {
			Value TemplateStatusUpdate `json:"value"`
			Field string               `json:"field"`
		} `json:"changes"`
	} `json:"entry"`
}

// TemplateStatusUpdate carries one review-status transition.
type TemplateStatusUpdate struct {
	Event                   string `json:"event"` // APPROVED, REJECTED, PENDING, PAUSED
	MessageTemplateID       int64  `json:"message_template_id"`
	MessageTemplateName     string `json:"message_template_name"`
	MessageTemplateLanguage string `json:"message_template_language"`
	Reason                  string `json:"reason,omitempty"`
}
