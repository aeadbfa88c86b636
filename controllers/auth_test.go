package controllers

import (
	"net/http"
	"testing"

	"lumen/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParseUserToken(t *testing.T) {
	token, err := SignUserToken(42, "segredo", 1)
	require.NoError(t, err)

	userID, err := ParseUserToken(token, "segredo")
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	// Assinatura errada não passa.
	_, err = ParseUserToken(token, "outro-segredo")
	assert.Error(t, err)

	// Token expirado não passa.
	expired, err := SignUserToken(42, "segredo", -1)
	require.NoError(t, err)
	_, err = ParseUserToken(expired, "segredo")
	assert.Error(t, err)
}

func TestCreateUserCreatesProfile(t *testing.T) {
	database := setupTestDB(t)
	r := newTestRouter(database)

	w := performRequest(r, "POST", "/api/users", "", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, database.Where("email = ?", "alice@example.com").First(&user).Error)

	var profile models.Profile
	require.NoError(t, database.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "alice", profile.Username, "username default vem do email")
	assert.Equal(t, "Alice", profile.FullName)

	// Email repetido é rejeitado.
	w = performRequest(r, "POST", "/api/users", "", gin.H{
		"name":     "Alice 2",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Senha curta é rejeitada.
	w = performRequest(r, "POST", "/api/users", "", gin.H{
		"name":     "Bob",
		"email":    "bob@example.com",
		"password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginAndMe(t *testing.T) {
	database := setupTestDB(t)
	r := newTestRouter(database)

	w := performRequest(r, "POST", "/api/users", "", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, "POST", "/api/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, token)

	w = performRequest(r, "GET", "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]any)
	assert.Equal(t, "Alice", user["name"])
	assert.Empty(t, user["password"])

	// Senha errada.
	w = performRequest(r, "POST", "/api/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "errada123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateMePropagatesToProfile(t *testing.T) {
	database := setupTestDB(t)
	r := newTestRouter(database)

	performRequest(r, "POST", "/api/users", "", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})

	var user models.User
	require.NoError(t, database.Where("email = ?", "alice@example.com").First(&user).Error)
	token := tokenFor(t, user)

	w := performRequest(r, "PUT", "/api/me", token, gin.H{"name": "Alice Atualizada"})
	require.Equal(t, http.StatusOK, w.Code)

	var profile models.Profile
	require.NoError(t, database.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "Alice Atualizada", profile.FullName)
}
