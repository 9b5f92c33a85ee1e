package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SiteArtifact is the single current website source for one client.
// There is exactly one row per client: every write is a full replacement,
// never an additional version. History lives in the conversation log only.
type SiteArtifact struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"client_id"`
	Client       *Client   `gorm:"foreignKey:ClientID" json:"-"`
	HTML         string    `gorm:"type:text;not null" json:"html"`
	CSS          string    `gorm:"type:text" json:"css"`
	JS           string    `gorm:"type:text" json:"js"`
	PromptUsed   string    `gorm:"type:text" json:"prompt_used"`
	IsManualEdit bool      `gorm:"default:false" json:"is_manual_edit"`
	GeneratedAt  time.Time `json:"generated_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *SiteArtifact) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// SitePointer maps a client to its stable public path. Created with the
// first artifact and kept for the lifetime of the client.
type SitePointer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"client_id"`
	Path      string    `gorm:"not null" json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *SitePointer) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
