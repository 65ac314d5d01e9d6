package models

import "time"

/************************************************
/**** MARK: PROMOTION TYPES ****/
/************************************************/
const PROMOTION_TYPE_PROMOTION = "promotion"
const PROMOTION_TYPE_EVENT = "event"

// Promotion representa a promoção única que um usuário pode publicar (0 ou 1 por
// usuário). Active é a visibilidade pedida pelo dono; AllowUserActivePromotion é
// a trava controlada pelo sistema (engine de ativação e reconciler) e nunca é
// alterada diretamente por request de usuário.
type Promotion struct {
	ID            int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID        int64  `gorm:"not null;unique_index" json:"user_id"`
	Title         string `gorm:"not null" json:"title" form:"title"`
	Description   string `gorm:"type:text" json:"description" form:"description"`
	Obs           string `json:"obs" form:"obs"`
	PromotionType string `gorm:"default:'promotion'" json:"promotion_type" form:"promotion_type"`

	AddressStreet     string `gorm:"column:address_street" json:"address_street" form:"address_street"`
	AddressNumber     string `gorm:"column:address_number" json:"address_number" form:"address_number"`
	AddressComplement string `gorm:"column:address_complement" json:"address_complement" form:"address_complement"`
	AddressReference  string `gorm:"column:address_reference" json:"address_reference" form:"address_reference"`
	AddressPostal     string `gorm:"column:address_postal" json:"address_postal" form:"address_postal"`
	AddressObs        string `gorm:"column:address_obs" json:"address_obs" form:"address_obs"`

	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`

	Active                   bool `gorm:"not null;default:false" json:"active"`
	AllowUserActivePromotion bool `gorm:"column:allow_user_active_promotion;not null;default:false" json:"allow_user_active_promotion"`

	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
