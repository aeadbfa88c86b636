package controllers

import (
	"net/http"
	"strings"

	dbpkg "lumen/db"
	"lumen/models"
	"lumen/tools"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// POST /api/users (public)
// Cria o usuário e o profile correspondente (username derivado do email).
func CreateUser(c *gin.Context) {
	var user models.User
	if err := c.Bind(&user); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if missing := user.MissingFields(); missing != "" {
		RespondError(c, missing+" é obrigatório", http.StatusBadRequest)
		return
	}
	if !tools.ValidateEmail(user.Email) {
		RespondError(c, "email inválido", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		RespondError(c, "email já cadastrado", http.StatusConflict)
		return
	}

	user.Password = tools.EncodePassword(user.Email, user.Password)
	user.Admin = false

	if err := db.Create(&user).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	// Profile acompanha o usuário desde o cadastro. Falha aqui não desfaz o
	// cadastro: o display name degrada para username/anônimo.
	profile := models.Profile{
		UserID:   user.ID,
		Username: tools.UsernameFromEmail(user.Email),
		FullName: user.Name,
	}
	if err := db.Create(&profile).Error; err != nil {
		logError("create profile for user %d: %v", user.ID, err)
	}

	user.Password = ""
	RespondSuccess(c, gin.H{"user": user})
}

// POST /api/login (public)
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		RespondError(c, "email e password são obrigatórios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		RespondError(c, "usuário ou senha inválidos", http.StatusUnauthorized)
		return
	}

	if user.Password != tools.EncodePassword(email, req.Password) {
		RespondError(c, "usuário ou senha inválidos", http.StatusUnauthorized)
		return
	}

	validHours := conf.Security.TokenValidHours
	if validHours <= 0 {
		validHours = 24
	}
	signed, err := SignUserToken(user.ID, getJWTSecret(), validHours)
	if err != nil {
		RespondError(c, "falha ao gerar token", http.StatusInternalServerError)
		return
	}

	user.Password = ""
	RespondSuccess(c, LoginResponse{Token: signed, User: user})
}

// GET /api/me (auth)
func Me(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	user.Password = ""
	RespondSuccess(c, gin.H{"user": user})
}

type UpdateMeRequest struct {
	Name string `json:"name" form:"name"`
}

// PUT /api/me (auth)
// Atualiza o nome e propaga para o full name do profile.
func UpdateMe(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateMeRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		RespondError(c, "name é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("name", name).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Update("full_name", name).Error; err != nil {
		logError("update profile name for user %d: %v", user.ID, err)
	}

	user.Name = name
	user.Password = ""
	RespondSuccess(c, gin.H{"user": user})
}
