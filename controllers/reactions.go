package controllers

import (
	"net/http"

	dbpkg "lumen/db"
	"lumen/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

/************************************************
/**** MARK: REACTION ACTIONS ****/
/************************************************/
const REACTION_ACTION_ADDED = "added"
const REACTION_ACTION_REMOVED = "removed"
const REACTION_NONE = "none"

type ReactionRequest struct {
	Type string `json:"type" form:"type"`
}

// POST /api/contents/:id/reaction (auth)
// Toggle: repetir a mesma reação remove; a reação oposta é trocada.
func SetReaction(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamContentID(c)
	if !ok {
		return
	}

	var req ReactionRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if !models.IsReactionTypeValid(req.Type) {
		RespondError(c, "type deve ser like ou dislike", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	action, err := applyReaction(db, user.ID, id, req.Type)
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondError(c, "conteúdo não encontrado", http.StatusNotFound)
			return
		}
		logError("set reaction %s on %s by user %d: %v", req.Type, id, user.ID, err)
		RespondError(c, "falha ao registrar reação", http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"action": action, "type": req.Type})
}

// applyReaction executa o toggle em uma única transação.
//
// Os contadores desnormalizados só mudam por expressão SQL e o decremento só
// roda quando o delete confirmou (RowsAffected == 1) que a linha existia, então
// nunca ficam negativos nem divergem do ledger. Toggles concorrentes no mesmo
// par (user, content) serializam no banco: a unique(user_id, content_id, type)
// derruba a inserção perdedora e a transação inteira desfaz.
func applyReaction(db *gorm.DB, userID int64, contentID, reactionType string) (string, error) {
	opposite := models.REACTION_TYPE_DISLIKE
	if reactionType == models.REACTION_TYPE_DISLIKE {
		opposite = models.REACTION_TYPE_LIKE
	}

	tx := db.Begin()
	if tx.Error != nil {
		return "", tx.Error
	}

	var content models.Content
	if err := tx.Where("id = ?", contentID).First(&content).Error; err != nil {
		tx.Rollback()
		return "", err
	}

	// Mesma reação já existe: toggle remove.
	res := tx.Where("user_id = ? AND content_id = ? AND type = ?", userID, contentID, reactionType).
		Delete(&models.Reaction{})
	if res.Error != nil {
		tx.Rollback()
		return "", res.Error
	}
	if res.RowsAffected == 1 {
		if err := adjustCounter(tx, contentID, reactionType, -1); err != nil {
			tx.Rollback()
			return "", err
		}
		if err := tx.Commit().Error; err != nil {
			return "", err
		}
		return REACTION_ACTION_REMOVED, nil
	}

	// Exclusividade: remove a reação oposta antes de adicionar.
	res = tx.Where("user_id = ? AND content_id = ? AND type = ?", userID, contentID, opposite).
		Delete(&models.Reaction{})
	if res.Error != nil {
		tx.Rollback()
		return "", res.Error
	}
	if res.RowsAffected == 1 {
		if err := adjustCounter(tx, contentID, opposite, -1); err != nil {
			tx.Rollback()
			return "", err
		}
	}

	reaction := models.Reaction{
		UserID:    userID,
		ContentID: contentID,
		Type:      reactionType,
	}
	if err := tx.Create(&reaction).Error; err != nil {
		tx.Rollback()
		return "", err
	}
	if err := adjustCounter(tx, contentID, reactionType, +1); err != nil {
		tx.Rollback()
		return "", err
	}

	if err := tx.Commit().Error; err != nil {
		return "", err
	}
	return REACTION_ACTION_ADDED, nil
}

func adjustCounter(tx *gorm.DB, contentID, reactionType string, delta int) error {
	column := "likes_count"
	if reactionType == models.REACTION_TYPE_DISLIKE {
		column = "dislikes_count"
	}
	expr := column + " + 1"
	if delta < 0 {
		expr = column + " - 1"
	}
	return tx.Model(&models.Content{}).Where("id = ?", contentID).
		Update(column, gorm.Expr(expr)).Error
}

// GET /api/contents/:id/reaction (auth opcional)
// Sem login a resposta é sempre "none"; erros também degradam para "none".
func GetReaction(c *gin.Context) {
	id, ok := ParamContentID(c)
	if !ok {
		return
	}

	user, logged := GetUserLogged(c)
	if !logged {
		RespondSuccess(c, gin.H{"reaction": REACTION_NONE})
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondSuccess(c, gin.H{"reaction": REACTION_NONE})
		return
	}

	var reaction models.Reaction
	if err := db.Where("user_id = ? AND content_id = ?", user.ID, id).
		First(&reaction).Error; err != nil {
		RespondSuccess(c, gin.H{"reaction": REACTION_NONE})
		return
	}

	RespondSuccess(c, gin.H{"reaction": reaction.Type})
}

// GET /api/contents/:id/likes (public)
// Item ausente ou erro devolvem 0.
func GetLikes(c *gin.Context) {
	id, ok := ParamContentID(c)
	if !ok {
		return
	}
	RespondSuccess(c, gin.H{"likes": counterValue(c, id, "likes_count")})
}

// GET /api/contents/:id/dislikes (public)
func GetDislikes(c *gin.Context) {
	id, ok := ParamContentID(c)
	if !ok {
		return
	}
	RespondSuccess(c, gin.H{"dislikes": counterValue(c, id, "dislikes_count")})
}

func counterValue(c *gin.Context, id string, column string) int64 {
	db := dbpkg.DBInstance(c)
	if db == nil {
		return 0
	}

	var content models.Content
	if err := db.Select(column).Where("id = ?", id).First(&content).Error; err != nil {
		return 0
	}
	if column == "dislikes_count" {
		return content.DislikesCount
	}
	return content.LikesCount
}
