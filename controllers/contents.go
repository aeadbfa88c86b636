package controllers

import (
	"net/http"

	dbpkg "lumen/db"
	"lumen/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// Colunas devolvidas em listagens: body truncado para carregamento rápido,
// raw_data e embedding ficam de fora.
const contentListColumns = "id, source_type, content_hash, user_id, visibility, " +
	"show_on_profile, url, title, author, substr(body, 1, 300) as body, " +
	"ai_summary, ai_questions, thumbnail, favicon, published_at, views, " +
	"likes_count, dislikes_count, created_at, updated_at"

// GET /api/contents (auth)
// Lista conteúdos visíveis para o usuário: públicos ou dele.
func GetContents(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	limit, offset := QueryPagination(c)

	q := db.Model(&models.Content{}).
		Select(contentListColumns).
		Where("visibility = ? OR user_id = ?", models.CONTENT_VISIBILITY_PUBLIC, user.ID)

	if search := c.Query("query"); search != "" {
		q = q.Where("title LIKE ? OR body LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var contents []models.Content
	if err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&contents).Error; err != nil {
		RespondError(c, "falha ao listar conteúdos", http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"contents": contents})
}

// GET /api/feed (public)
// Variante sem autenticação: só conteúdos públicos.
func GetPublicContents(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	limit, offset := QueryPagination(c)

	q := db.Model(&models.Content{}).
		Select(contentListColumns).
		Where("visibility = ?", models.CONTENT_VISIBILITY_PUBLIC)

	if search := c.Query("query"); search != "" {
		q = q.Where("title LIKE ?", "%"+search+"%")
	}

	var contents []models.Content
	if err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&contents).Error; err != nil {
		RespondError(c, "falha ao listar conteúdos", http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"contents": contents})
}

// GET /api/contents/:id (auth)
// Item completo, se público ou do usuário. Incrementa views.
func GetContentByID(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamContentID(c)
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var content models.Content
	if err := db.Where("id = ?", id).First(&content).Error; err != nil {
		RespondError(c, "conteúdo não encontrado", http.StatusNotFound)
		return
	}

	// Item privado de outro usuário é invisível, não "proibido".
	if !content.CanBeSeenBy(user.ID) {
		RespondError(c, "conteúdo não encontrado", http.StatusNotFound)
		return
	}

	// Contagem de views é best-effort: falha não bloqueia a leitura.
	if err := db.Model(&models.Content{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error; err != nil {
		logError("increment views for content %s: %v", id, err)
	} else {
		content.Views++
	}

	RespondSuccess(c, gin.H{"content": content})
}

// GET /api/feed/:id (public)
func GetPublicContentByID(c *gin.Context) {
	id, ok := ParamContentID(c)
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var content models.Content
	if err := db.Where("id = ? AND visibility = ?", id, models.CONTENT_VISIBILITY_PUBLIC).
		First(&content).Error; err != nil {
		RespondError(c, "conteúdo não encontrado", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{"content": content})
}

// POST /api/contents/:id/visibility (auth, dono)
// Alterna public <-> private.
func ToggleVisibility(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamContentID(c)
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var content models.Content
	if err := db.Where("id = ?", id).First(&content).Error; err != nil {
		RespondError(c, "conteúdo não encontrado", http.StatusNotFound)
		return
	}
	if !content.IsOwnedBy(user.ID) {
		RespondError(c, "forbidden", http.StatusForbidden)
		return
	}

	visibility := models.CONTENT_VISIBILITY_PUBLIC
	if content.Visibility == models.CONTENT_VISIBILITY_PUBLIC {
		visibility = models.CONTENT_VISIBILITY_PRIVATE
	}

	if err := db.Model(&models.Content{}).Where("id = ?", id).
		Update("visibility", visibility).Error; err != nil {
		RespondError(c, "falha ao atualizar visibilidade", http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"visibility": visibility})
}

type BulkVisibilityRequest struct {
	ContentIDs []string `json:"content_ids" form:"content_ids"`
	Visibility string   `json:"visibility" form:"visibility"`
}

// PUT /api/contents/visibility (auth)
// Aplica a visibilidade somente às linhas do usuário: ids de terceiros no
// conjunto são ignorados em silêncio (filtro por user_id na própria query).
func BulkSetVisibility(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req BulkVisibilityRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.ContentIDs) == 0 {
		RespondError(c, "content_ids é obrigatório", http.StatusBadRequest)
		return
	}
	if req.Visibility != models.CONTENT_VISIBILITY_PUBLIC &&
		req.Visibility != models.CONTENT_VISIBILITY_PRIVATE {
		RespondError(c, "visibility inválida", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	res := db.Model(&models.Content{}).
		Where("id IN (?) AND user_id = ?", req.ContentIDs, user.ID).
		Update("visibility", req.Visibility)
	if res.Error != nil {
		RespondError(c, "falha ao atualizar visibilidade", http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"updated": res.RowsAffected})
}

// DELETE /api/contents/:id (auth, dono)
func DeleteContent(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamContentID(c)
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var content models.Content
	if err := db.Where("id = ?", id).First(&content).Error; err != nil {
		RespondError(c, "conteúdo não encontrado", http.StatusNotFound)
		return
	}
	if !content.IsOwnedBy(user.ID) {
		RespondError(c, "forbidden", http.StatusForbidden)
		return
	}

	if err := deleteContents(db, []string{id}); err != nil {
		RespondError(c, "falha ao remover conteúdo", http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"status": "deleted"})
}

type BulkDeleteRequest struct {
	ContentIDs []string `json:"content_ids" form:"content_ids"`
}

// DELETE /api/contents (auth)
// Mesma semântica do bulk de visibilidade: só remove linhas do usuário.
func BulkDeleteContents(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req BulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.ContentIDs) == 0 {
		RespondError(c, "content_ids é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var owned []models.Content
	if err := db.Select("id").
		Where("id IN (?) AND user_id = ?", req.ContentIDs, user.ID).
		Find(&owned).Error; err != nil {
		RespondError(c, "falha ao remover conteúdos", http.StatusInternalServerError)
		return
	}

	ids := make([]string, 0, len(owned))
	for _, content := range owned {
		ids = append(ids, content.ID)
	}

	if len(ids) > 0 {
		if err := deleteContents(db, ids); err != nil {
			RespondError(c, "falha ao remover conteúdos", http.StatusInternalServerError)
			return
		}
	}

	RespondSuccess(c, gin.H{"deleted": len(ids)})
}

// deleteContents remove os itens e suas linhas dependentes (reações e
// comentários) na mesma transação. O automigrate não cria FKs com cascade,
// então a limpeza é explícita.
func deleteContents(db *gorm.DB, ids []string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("content_id IN (?)", ids).Delete(&models.Reaction{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("content_id IN (?)", ids).Delete(&models.ContentComment{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("id IN (?)", ids).Delete(&models.Content{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
