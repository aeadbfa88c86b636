package controllers

import (
	"net/http"
	"time"

	dbpkg "lumen/db"
	"lumen/models"

	"github.com/gin-gonic/gin"
)

type CommentRequest struct {
	UserID  int64  `json:"user_id" form:"user_id"`
	Comment string `json:"comment" form:"comment"`
}

// CommentWithAuthor é a linha devolvida na listagem, já com o join de profile.
type CommentWithAuthor struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Comment     string     `json:"comment"`
	CreatedAt   *time.Time `json:"created_at"`
	Username    string     `json:"username"`
	FullName    string     `json:"full_name"`
	DisplayName string     `json:"display_name"`
}

// POST /api/contents/:id/comments (auth)
// O user_id do body, quando presente, precisa bater com o usuário logado —
// defesa contra spoof de autor.
func CreateContentComment(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamContentID(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID != 0 && req.UserID != user.ID {
		RespondError(c, "forbidden", http.StatusForbidden)
		return
	}

	comment := models.ContentComment{
		ContentID: id,
		UserID:    user.ID,
		Comment:   req.Comment,
	}
	if missing := comment.MissingFields(); missing != "" {
		RespondError(c, missing+" é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := db.First(&models.Content{}, "id = ?", id).Error; err != nil {
		RespondError(c, "conteúdo não encontrado", http.StatusNotFound)
		return
	}

	if err := db.Create(&comment).Error; err != nil {
		RespondError(c, "falha ao criar comentário", http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"comment": comment})
}

// GET /api/contents/:id/comments (public)
// Mais recentes primeiro, com display name resolvido via profiles.
// Erros degradam para lista vazia: comentário é dado secundário.
func GetContentComments(c *gin.Context) {
	id, ok := ParamContentID(c)
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondSuccess(c, gin.H{"comments": []CommentWithAuthor{}})
		return
	}

	var comments []CommentWithAuthor
	err := db.Table("content_comments").
		Select("content_comments.id, content_comments.user_id, content_comments.comment, "+
			"content_comments.created_at, profiles.username, profiles.full_name").
		Joins("left join profiles on profiles.user_id = content_comments.user_id").
		Where("content_comments.content_id = ?", id).
		Order("content_comments.created_at desc, content_comments.id desc").
		Scan(&comments).Error
	if err != nil {
		logError("list comments for content %s: %v", id, err)
		RespondSuccess(c, gin.H{"comments": []CommentWithAuthor{}})
		return
	}

	for i := range comments {
		profile := models.Profile{
			Username: comments[i].Username,
			FullName: comments[i].FullName,
		}
		comments[i].DisplayName = profile.DisplayName()
	}

	RespondSuccess(c, gin.H{"comments": comments})
}
