// Package crm gives the generation engine read access to the client
// records owned by the portal side of the application. Profiles and
// assets are never written from here.
package crm

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/sitesmith/sitesmith/internal/models"
	"gorm.io/gorm"
)

var ErrClientNotFound = errors.New("client not found")

// Profile is the slice of a client record needed for prompt grounding.
// It is a snapshot: immutable for the duration of one generation call.
type Profile struct {
	ID            uuid.UUID
	DisplayName   string
	BusinessName  string
	Address       string
	ContactFields map[string]string
	Notes         string
}

// Asset describes one uploaded file, used verbatim in prompts.
type Asset struct {
	URL         string
	Name        string
	ContentType string
}

// Directory resolves profiles and asset lists by client id.
type Directory interface {
	Profile(ctx context.Context, clientID uuid.UUID) (*Profile, error)
	Assets(ctx context.Context, clientID uuid.UUID) ([]Asset, error)
}

type gormDirectory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) Directory {
	return &gormDirectory{db: db}
}

func (d *gormDirectory) Profile(ctx context.Context, clientID uuid.UUID) (*Profile, error) {
	var client models.Client
	if err := d.db.WithContext(ctx).First(&client, "id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	contacts := map[string]string{}
	if len(client.ContactFields) > 0 {
		// A malformed contacts column degrades to an empty map rather
		// than blocking generation.
		_ = json.Unmarshal(client.ContactFields, &contacts)
	}

	return &Profile{
		ID:            client.ID,
		DisplayName:   client.DisplayName,
		BusinessName:  client.BusinessName,
		Address:       client.Address,
		ContactFields: contacts,
		Notes:         client.Notes,
	}, nil
}

// Assets returns the client's uploads, most recent first.
func (d *gormDirectory) Assets(ctx context.Context, clientID uuid.UUID) ([]Asset, error) {
	var rows []models.ClientAsset
	if err := d.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("uploaded_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	assets := make([]Asset, len(rows))
	for i, row := range rows {
		assets[i] = Asset{URL: row.URL, Name: row.Name, ContentType: row.ContentType}
	}
	return assets, nil
}
