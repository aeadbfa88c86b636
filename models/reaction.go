package models

import "time"

/************************************************
/**** MARK: REACTION TYPES ****/
/************************************************/
const REACTION_TYPE_LIKE = "like"
const REACTION_TYPE_DISLIKE = "dislike"

func IsReactionTypeValid(reactionType string) bool {
	return reactionType == REACTION_TYPE_LIKE || reactionType == REACTION_TYPE_DISLIKE
}

// Reaction é o ledger: uma linha por reação de um usuário a um conteúdo.
// Regra: unique(user_id, content_id, type); a exclusividade like vs dislike
// é garantida pela lógica de toggle, nunca pelas duas linhas coexistirem.
type Reaction struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID    int64      `gorm:"not null;index;unique_index:ux_user_content_type" json:"user_id"`
	ContentID string     `gorm:"not null;size:36;index;unique_index:ux_user_content_type" json:"content_id"`
	Type      string     `gorm:"not null;unique_index:ux_user_content_type" json:"type"`
	CreatedAt *time.Time `json:"created_at"`
}
