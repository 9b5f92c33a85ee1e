package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sitesmith/sitesmith/internal/crm"
	"github.com/sitesmith/sitesmith/internal/generator"
	"github.com/sitesmith/sitesmith/internal/models"
)

// Validation failures, rejected before any store or upstream call.
var (
	ErrInstructionRequired = errors.New("instruction is required")
	ErrHTMLRequired        = errors.New("html is required")
)

// Reconciler arbitrates between machine-authored and human-authored
// writes to a client's site, enforcing a single current version. The
// two entry modes are mutually exclusive per call; there is no merge
// of a manual edit with a concurrent generation. Concurrent writes to
// the same client resolve by last full write wins — acceptable because
// one operator drives one edit session at a time.
type Reconciler struct {
	dir      crm.Directory
	store    *VersionStore
	gen      generator.TextGenerator
	notifier *Notifier
}

func NewReconciler(dir crm.Directory, store *VersionStore, gen generator.TextGenerator, notifier *Notifier) *Reconciler {
	return &Reconciler{dir: dir, store: store, gen: gen, notifier: notifier}
}

// Generate runs one conversational turn: assemble context, call the
// generation service, extract the artifact, then persist turn pair and
// artifact. Any generation failure returns before the first write, so
// the prior artifact and the transcript stay exactly as they were and
// the failed attempt leaves no trace in history.
func (r *Reconciler) Generate(ctx context.Context, clientID uuid.UUID, instruction string) (*models.SiteArtifact, error) {
	if strings.TrimSpace(instruction) == "" {
		return nil, ErrInstructionRequired
	}

	profile, err := r.dir.Profile(ctx, clientID)
	if err != nil {
		return nil, err
	}
	assets, err := r.dir.Assets(ctx, clientID)
	if err != nil {
		return nil, err
	}
	prior, err := r.store.GetLatestArtifact(clientID)
	if err != nil {
		return nil, err
	}

	prompt := generator.Assemble(profile, assets, profile.Notes, instruction, prior)
	raw, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	ext := generator.Extract(raw)
	now := time.Now().UTC()
	artifact := &models.SiteArtifact{
		ClientID:     clientID,
		HTML:         ext.HTML,
		CSS:          ext.CSS,
		JS:           ext.JS,
		PromptUsed:   instruction,
		IsManualEdit: false,
		GeneratedAt:  now,
	}

	if err := r.store.AppendTurn(clientID, models.ConversationTurn{
		Role: models.TurnRoleOperator, Content: instruction, Timestamp: now,
	}); err != nil {
		return nil, err
	}
	if err := r.store.AppendTurn(clientID, models.ConversationTurn{
		Role: models.TurnRoleAssistant, Content: generator.Summary(raw), Timestamp: now,
	}); err != nil {
		return nil, err
	}
	if err := r.store.SetArtifact(clientID, artifact); err != nil {
		return nil, err
	}

	r.notifier.Publish(clientID)
	slog.Info("site generated",
		"client_id", clientID,
		"shape", string(ext.Shape),
		"html_bytes", len(ext.HTML),
		"had_prior", prior != nil,
	)
	return artifact, nil
}

// SaveManualEdit overwrites the artifact with operator-supplied html,
// bypassing generation entirely. A manual edit is not part of the AI
// dialogue, so no conversation turn is recorded.
func (r *Reconciler) SaveManualEdit(ctx context.Context, clientID uuid.UUID, html string) (*models.SiteArtifact, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ErrHTMLRequired
	}
	if _, err := r.dir.Profile(ctx, clientID); err != nil {
		return nil, err
	}

	artifact := &models.SiteArtifact{
		ClientID:     clientID,
		HTML:         html,
		IsManualEdit: true,
		GeneratedAt:  time.Now().UTC(),
	}
	if err := r.store.SetArtifact(clientID, artifact); err != nil {
		return nil, err
	}

	r.notifier.Publish(clientID)
	slog.Info("manual edit saved", "client_id", clientID, "html_bytes", len(html))
	return artifact, nil
}
