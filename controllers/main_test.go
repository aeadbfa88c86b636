package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	dbpkg "lumen/db"
	"lumen/models"
	"lumen/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "Failed to open test database")
	dbpkg.AutoMigrate(database)

	t.Cleanup(func() {
		assert.NoError(t, database.Close())
	})
	return database
}

// newTestRouter registra as rotas do jeito que o router de produção faz,
// sem importar o pacote router (ciclo com os testes in-package).
func newTestRouter(database *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))

	api := r.Group("/api")
	api.POST("/users", CreateUser)
	api.POST("/login", Login)
	api.GET("/feed", GetPublicContents)
	api.GET("/feed/:id", GetPublicContentByID)
	api.GET("/contents/:id/likes", GetLikes)
	api.GET("/contents/:id/dislikes", GetDislikes)
	api.GET("/contents/:id/comments", GetContentComments)
	api.GET("/contents/:id/reaction", AuthOptional(), GetReaction)

	auth := api.Group("")
	auth.Use(AuthRequired())
	auth.GET("/me", Me)
	auth.PUT("/me", UpdateMe)
	auth.POST("/search", Search)
	auth.GET("/contents", GetContents)
	auth.GET("/contents/:id", GetContentByID)
	auth.POST("/contents/:id/visibility", ToggleVisibility)
	auth.PUT("/contents/visibility", BulkSetVisibility)
	auth.DELETE("/contents/:id", DeleteContent)
	auth.DELETE("/contents", BulkDeleteContents)
	auth.POST("/contents/:id/reaction", SetReaction)
	auth.POST("/contents/:id/comments", CreateContentComment)

	return r
}

func createTestUser(t *testing.T, database *gorm.DB, name, email string) models.User {
	t.Helper()

	user := models.User{
		Name:     name,
		Email:    email,
		Password: tools.EncodePassword(email, "secret123"),
	}
	require.NoError(t, database.Create(&user).Error)
	return user
}

func createTestProfile(t *testing.T, database *gorm.DB, user models.User, username, fullName string) models.Profile {
	t.Helper()

	profile := models.Profile{
		UserID:   user.ID,
		Username: username,
		FullName: fullName,
	}
	require.NoError(t, database.Create(&profile).Error)
	return profile
}

func createTestContent(t *testing.T, database *gorm.DB, owner models.User, visibility string) models.Content {
	t.Helper()

	content := models.Content{
		SourceType: models.CONTENT_SOURCE_EXA_SEARCH,
		UserID:     owner.ID,
		Visibility: visibility,
		URL:        "http://example.com/" + tools.RandomString(8),
		Title:      "Artigo de teste",
		Body:       "corpo do artigo",
	}
	content.ContentHash = models.ContentHashOf(content.URL, content.Title, content.Body)
	require.NoError(t, database.Create(&content).Error)
	return content
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := SignUserToken(user.ID, getJWTSecret(), 1)
	require.NoError(t, err)
	return token
}

func performRequest(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func contentByID(t *testing.T, database *gorm.DB, id string) models.Content {
	t.Helper()

	var content models.Content
	require.NoError(t, database.Where("id = ?", id).First(&content).Error)
	return content
}
