package router

import (
	"lumen/controllers"
	"lumen/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Initialize wires all routes and middlewares.
// Public routes degradam para conteúdo público; o grupo auth exige token.
func Initialize(r *gin.Engine) {
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")

	// Public (no auth)
	api.POST("/users", Logger(), controllers.CreateUser)
	api.POST("/login", Logger(), controllers.Login)

	// Feed público: variante sem login das listagens de conteúdo
	api.GET("/feed", Logger(), controllers.GetPublicContents)
	api.GET("/feed/:id", Logger(), controllers.GetPublicContentByID)

	// Dados secundários de conteúdo: abertos, com degradação segura
	api.GET("/contents/:id/likes", Logger(), controllers.GetLikes)
	api.GET("/contents/:id/dislikes", Logger(), controllers.GetDislikes)
	api.GET("/contents/:id/comments", Logger(), controllers.GetContentComments)
	api.GET("/contents/:id/reaction", Logger(), controllers.AuthOptional(), controllers.GetReaction)

	// Authenticated routes (token required)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())

	auth.GET("/me", Logger(), controllers.Me)
	auth.PUT("/me", Logger(), controllers.UpdateMe)

	// Busca externa (ingest roda em background)
	auth.POST("/search", Logger(), controllers.Search)

	// Conteúdos (escopo: público ou do usuário)
	auth.GET("/contents", Logger(), controllers.GetContents)
	auth.GET("/contents/:id", Logger(), controllers.GetContentByID)
	auth.POST("/contents/:id/visibility", Logger(), controllers.ToggleVisibility)
	auth.PUT("/contents/visibility", Logger(), controllers.BulkSetVisibility)
	auth.DELETE("/contents/:id", Logger(), controllers.DeleteContent)
	auth.DELETE("/contents", Logger(), controllers.BulkDeleteContents)

	// Reações e comentários
	auth.POST("/contents/:id/reaction", Logger(), controllers.SetReaction)
	auth.POST("/contents/:id/comments", Logger(), controllers.CreateContentComment)

	logrus.Info("Routes initialized")
}
