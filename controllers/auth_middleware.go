package controllers

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	dbpkg "lumen/db"
	"lumen/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ctxUserKey = "auth_user"

// AuthRequired validates the Bearer token and loads the user from DB into context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := userFromBearer(c)
		if !ok {
			RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// AuthOptional loads the user when a valid token is present and degrades to
// anonymous otherwise. Usado nas rotas que respondem valores neutros para
// quem não está logado (ex: reaction = none).
func AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := userFromBearer(c); ok {
			c.Set(ctxUserKey, user)
		}
		c.Next()
	}
}

// GetUserLogged returns the user loaded by AuthRequired/AuthOptional.
func GetUserLogged(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

func userFromBearer(c *gin.Context) (models.User, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return models.User{}, false
	}
	token := strings.TrimSpace(h[len("Bearer "):])

	userID, err := ParseUserToken(token, getJWTSecret())
	if err != nil {
		return models.User{}, false
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		return models.User{}, false
	}
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return models.User{}, false
	}
	return user, true
}

// SignUserToken emite um JWT HS256 com o padrão:
//   { "sub": <userId>, "iat": ..., "exp": ... }
func SignUserToken(userID int64, secret string, validHours int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(time.Duration(validHours) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseUserToken verifica a assinatura e expiração e devolve o "sub".
func ParseUserToken(tokenString, secret string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid claims")
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, fmt.Errorf("invalid sub")
	}
	return int64(sub), nil
}

func getJWTSecret() string {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("LUMEN_JWT_SECRET"))
	}
	if secret == "" {
		secret = strings.TrimSpace(conf.Security.JwtSecret)
	}
	if secret == "" {
		// último fallback: mesmo default do config.json, só pra dev.
		secret = "CHANGE_ME"
	}
	return secret
}
