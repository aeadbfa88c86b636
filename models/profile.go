package models

import "time"

/************************************************
/**** MARK: PROFILE VISIBILITY ****/
/************************************************/
const PROFILE_VISIBILITY_PUBLIC = "public"
const PROFILE_VISIBILITY_PRIVATE = "private"

// Profile guarda os dados públicos de um usuário.
// É criado automaticamente no cadastro (username derivado do email) e é a
// fonte do display name exibido nos comentários.
type Profile struct {
	ID         int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID     int64      `gorm:"not null;unique_index" json:"user_id"`
	Username   string     `gorm:"unique" json:"username" form:"username"`
	FullName   string     `gorm:"column:full_name" json:"full_name" form:"full_name"`
	AvatarURL  string     `gorm:"column:avatar_url" json:"avatar_url" form:"avatar_url"`
	Bio        string     `gorm:"type:text" json:"bio" form:"bio"`
	Location   string     `json:"location" form:"location"`
	Visibility string     `gorm:"default:'public'" json:"visibility" form:"visibility"`
	CreatedAt  *time.Time `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

// DisplayName resolve o nome exibido: full name, senão username, senão anônimo.
func (profile Profile) DisplayName() string {
	if profile.FullName != "" {
		return profile.FullName
	}
	if profile.Username != "" {
		return profile.Username
	}
	return "Anonymous User"
}
