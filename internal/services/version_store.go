package services

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/sitesmith/sitesmith/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VersionStore exclusively owns the artifact row, the published-site
// pointer and the conversation log for each client. Invariant: at most
// one artifact row per client; writes are full replacements. The turn
// log is append-only.
type VersionStore struct {
	db *gorm.DB
}

func NewVersionStore(db *gorm.DB) *VersionStore {
	return &VersionStore{db: db}
}

// GetLatestArtifact returns the current artifact, or nil if the client
// has never generated one.
func (s *VersionStore) GetLatestArtifact(clientID uuid.UUID) (*models.SiteArtifact, error) {
	var artifact models.SiteArtifact
	err := s.db.Where("client_id = ?", clientID).Order("updated_at DESC").First(&artifact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}

// SetArtifact replaces the client's artifact entirely. Callers must
// supply the complete html/css/js, even when only one part changed.
// The published-site pointer is created on the first write and left
// alone afterwards.
func (s *VersionStore) SetArtifact(clientID uuid.UUID, artifact *models.SiteArtifact) error {
	artifact.ClientID = clientID

	var existing models.SiteArtifact
	err := s.db.Where("client_id = ?", clientID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.Create(artifact).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if err := s.db.Model(&existing).Updates(map[string]interface{}{
			"html":           artifact.HTML,
			"css":            artifact.CSS,
			"js":             artifact.JS,
			"prompt_used":    artifact.PromptUsed,
			"is_manual_edit": artifact.IsManualEdit,
			"generated_at":   artifact.GeneratedAt,
		}).Error; err != nil {
			return err
		}
		artifact.ID = existing.ID
		artifact.CreatedAt = existing.CreatedAt
	}

	return s.ensurePointer(clientID)
}

// PointerPath returns the client's stable public path, or "" if no
// artifact has ever been written.
func (s *VersionStore) PointerPath(clientID uuid.UUID) (string, error) {
	var ptr models.SitePointer
	err := s.db.Where("client_id = ?", clientID).First(&ptr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return ptr.Path, nil
}

// AppendTurn adds one turn to the client's conversation log, creating
// the log on first use. Each call is a distinct turn; nothing here is
// idempotent and nothing is ever rewritten.
func (s *VersionStore) AppendTurn(clientID uuid.UUID, turn models.ConversationTurn) error {
	var conv models.SiteConversation
	err := s.db.Where("client_id = ?", clientID).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		conv = models.SiteConversation{ClientID: clientID, Turns: datatypes.JSON("[]")}
		if err := s.db.Create(&conv).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	turns, err := decodeTurns(conv.Turns)
	if err != nil {
		return err
	}
	turns = append(turns, turn)

	raw, err := json.Marshal(turns)
	if err != nil {
		return err
	}
	return s.db.Model(&conv).Update("turns", datatypes.JSON(raw)).Error
}

// History returns the client's full transcript in append order. A
// client with no conversation yet gets an empty slice, not an error.
func (s *VersionStore) History(clientID uuid.UUID) ([]models.ConversationTurn, error) {
	var conv models.SiteConversation
	err := s.db.Where("client_id = ?", clientID).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.ConversationTurn{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeTurns(conv.Turns)
}

func (s *VersionStore) ensurePointer(clientID uuid.UUID) error {
	var ptr models.SitePointer
	err := s.db.Where("client_id = ?", clientID).First(&ptr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&models.SitePointer{
			ClientID: clientID,
			Path:     "/sites/" + clientID.String(),
		}).Error
	}
	return err
}

func decodeTurns(raw datatypes.JSON) ([]models.ConversationTurn, error) {
	turns := []models.ConversationTurn{}
	if len(raw) == 0 {
		return turns, nil
	}
	if err := json.Unmarshal(raw, &turns); err != nil {
		return nil, err
	}
	return turns, nil
}
