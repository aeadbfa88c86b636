package models

import "time"

// Tamanho mínimo de um comentário.
const COMMENT_MIN_LEN = 2

// ContentComment é um comentário em um conteúdo. Append-only: não existe
// edição nem remoção.
type ContentComment struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ContentID string     `gorm:"not null;size:36;index" json:"content_id" form:"content_id"`
	UserID    int64      `gorm:"not null;index" json:"user_id" form:"user_id"`
	Comment   string     `gorm:"type:text;not null" json:"comment" form:"comment"`
	CreatedAt *time.Time `json:"created_at"`
}

func (comment ContentComment) MissingFields() string {
	if comment.ContentID == "" {
		return "content_id"
	} else if comment.UserID == 0 {
		return "user_id"
	} else if len(comment.Comment) < COMMENT_MIN_LEN {
		return "comment"
	}
	return ""
}
