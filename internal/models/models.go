package models

import (
	"time"
)

// Template is a stored message template: the compiled wire component tree
// as JSON plus the sidecar metadata that is not encoded in the tree
// (category, auth/offer settings, review status).
type Template struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(512);index" json:"name"`
	Language   string    `gorm:"type:varchar(50)" json:"language"`
	Category   string    `gorm:"type:varchar(50)" json:"category"`
	Status     string    `gorm:"type:varchar(50)" json:"status"` // PENDING, APPROVED, REJECTED
	AccountRef string    `gorm:"type:varchar(255)" json:"account_ref"`
	Components string    `gorm:"type:text" json:"components"` // JSON component tree
	Auth       string    `gorm:"type:text" json:"auth_settings"`
	Offer      string    `gorm:"type:text" json:"offer_settings"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Template) TableName() string {
	return "templates"
}

// Media tracks an uploaded asset and the opaque handle the upload service
// issued for it.
type Media struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Handle     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"handle"`
	Filename   string    `gorm:"type:varchar(255)" json:"filename"`
	MimeType   string    `gorm:"type:varchar(100)" json:"mime_type"`
	FileSize   int64     `json:"file_size"`
	PreviewURL string    `gorm:"type:text" json:"preview_url"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (Media) TableName() string {
	return "media"
}
