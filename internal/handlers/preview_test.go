package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sitesmith/sitesmith/internal/models"
	"github.com/sitesmith/sitesmith/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Client{},
		&models.ClientAsset{},
		&models.SiteArtifact{},
		&models.SitePointer{},
		&models.SiteConversation{},
	))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func seedClient(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	client := models.Client{DisplayName: "Jamie Doe", BusinessName: "Bean There"}
	require.NoError(t, db.Create(&client).Error)
	return client.ID
}

func newPreviewApp(store *services.VersionStore) *fiber.App {
	app := fiber.New()
	app.Get("/sites/:clientId", NewPreviewHandler(store).RenderSite)
	return app
}

func TestRenderSitePlaceholder(t *testing.T) {
	db := newTestDB(t)
	store := services.NewVersionStore(db)
	clientID := seedClient(t, db)
	app := newPreviewApp(store)

	// The placeholder is a stable 200 page, identical on every call.
	var firstBody string
	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/sites/"+clientID.String(), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "hasn't been created yet")
		if i == 0 {
			firstBody = string(body)
		} else {
			assert.Equal(t, firstBody, string(body))
		}
	}
}

func TestRenderSiteServesArtifactVerbatim(t *testing.T) {
	db := newTestDB(t)
	store := services.NewVersionStore(db)
	clientID := seedClient(t, db)

	html := "<!DOCTYPE html><html><body><h1>Bean There</h1></body></html>"
	require.NoError(t, store.SetArtifact(clientID, &models.SiteArtifact{HTML: html}))

	resp, err := newPreviewApp(store).Test(httptest.NewRequest("GET", "/sites/"+clientID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, html, string(body))
}

func TestRenderSiteInvalidID(t *testing.T) {
	db := newTestDB(t)
	store := services.NewVersionStore(db)

	resp, err := newPreviewApp(store).Test(httptest.NewRequest("GET", "/sites/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
