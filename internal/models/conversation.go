package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TurnRoleOperator  = "operator"
	TurnRoleAssistant = "assistant"
)

// ConversationTurn is one entry of a client's site-editing dialogue,
// serialized into the jsonb turns column.
type ConversationTurn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// SiteConversation holds the append-only turn log for one client.
// Turns are never mutated or removed after append.
type SiteConversation struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID  uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"client_id"`
	Client    *Client        `gorm:"foreignKey:ClientID" json:"-"`
	Turns     datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"turns"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (c *SiteConversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
