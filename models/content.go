package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

/************************************************
/**** MARK: CONTENT SOURCE TYPES ****/
/************************************************/
const CONTENT_SOURCE_EXA_SEARCH = "exa_search"

/************************************************
/**** MARK: CONTENT VISIBILITY ****/
/************************************************/
const CONTENT_VISIBILITY_PUBLIC = "public"
const CONTENT_VISIBILITY_PRIVATE = "private"

// Tamanho máximo do body devolvido em listagens.
const CONTENT_BODY_PREVIEW_LEN = 300

// Content representa um item agregado (resultado de busca armazenado).
// ContentHash é a chave de deduplicação: única quando presente.
// LikesCount/DislikesCount são contadores desnormalizados mantidos em sincronia
// com a tabela reactions dentro da mesma transação (ver controllers).
type Content struct {
	ID            string     `gorm:"primary_key;size:36" json:"id"`
	SourceType    string     `gorm:"column:source_type;not null" json:"source_type"`
	ContentHash   string     `gorm:"column:content_hash;unique" json:"content_hash"`
	UserID        int64      `gorm:"column:user_id;index" json:"user_id"`
	Visibility    string     `gorm:"not null;default:'private';index" json:"visibility"`
	ShowOnProfile bool       `gorm:"column:show_on_profile;default:true" json:"show_on_profile"`
	URL           string     `gorm:"type:text" json:"url"`
	Title         string     `gorm:"type:text" json:"title"`
	Author        string     `json:"author"`
	Body          string     `gorm:"type:text" json:"body"`
	AISummary     string     `gorm:"column:ai_summary;type:text" json:"ai_summary"`
	AIQuestions   string     `gorm:"column:ai_questions;type:text" json:"ai_questions"`
	Thumbnail     string     `gorm:"type:text" json:"thumbnail"`
	Favicon       string     `gorm:"type:text" json:"favicon"`
	PublishedAt   *time.Time `gorm:"column:published_at" json:"published_at"`
	Views         int64      `gorm:"default:0" json:"views"`
	LikesCount    int64      `gorm:"column:likes_count;default:0" json:"likes_count"`
	DislikesCount int64      `gorm:"column:dislikes_count;default:0" json:"dislikes_count"`
	Embedding     []byte     `json:"-"`
	RawData       string     `gorm:"column:raw_data;type:text" json:"-"`
	CreatedAt     *time.Time `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

func (content *Content) BeforeCreate(scope *gorm.Scope) error {
	if content.ID == "" {
		return scope.SetColumn("ID", uuid.NewString())
	}
	return nil
}

// IsOwnedBy diz se o usuário é dono do item.
func (content Content) IsOwnedBy(userID int64) bool {
	return content.UserID != 0 && content.UserID == userID
}

// CanBeSeenBy aplica a regra de leitura: público ou dono.
func (content Content) CanBeSeenBy(userID int64) bool {
	return content.Visibility == CONTENT_VISIBILITY_PUBLIC || content.IsOwnedBy(userID)
}

// ContentHashOf calcula o fingerprint de deduplicação de um resultado.
// Campos ausentes entram como string vazia; o delimitador é fixo para que
// o hash seja estável entre execuções.
func ContentHashOf(url, title, body string) string {
	sum := sha256.Sum256([]byte(url + "|" + title + "|" + body))
	return hex.EncodeToString(sum[:])
}
