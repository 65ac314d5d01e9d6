package models

import "time"

// Comment é um comentário de usuário numa promoção. LikeCount e BlockComment
// são escritos por fluxos de moderação/engajamento que ficam fora deste serviço.
type Comment struct {
	ID          int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID      int64  `gorm:"not null;index" json:"user_id"`
	PromotionID int64  `gorm:"not null;index" json:"promotion_id"`
	Text        string `gorm:"column:comment;size:500;not null" json:"comment" form:"comment"`

	LikeCount    int  `gorm:"not null;default:0" json:"like_count"`
	BlockComment bool `gorm:"not null;default:false" json:"block_comment"`

	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
