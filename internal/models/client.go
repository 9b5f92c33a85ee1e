package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Client is the portal-owned profile record. The generation engine only
// reads these rows; the CRM side of the application writes them.
type Client struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DisplayName   string         `gorm:"not null" json:"display_name"`
	BusinessName  string         `json:"business_name"`
	Address       string         `json:"address"`
	ContactFields datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"contact_fields"`
	Notes         string         `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ClientAsset is one uploaded file belonging to a client, also portal-owned.
// Prompts enumerate these most recent first.
type ClientAsset struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID    uuid.UUID `gorm:"type:uuid;index;not null" json:"client_id"`
	Client      *Client   `gorm:"foreignKey:ClientID" json:"-"`
	Name        string    `gorm:"not null" json:"name"`
	URL         string    `gorm:"not null" json:"url"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *ClientAsset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
