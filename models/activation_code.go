package models

import "time"

/************************************************
/**** MARK: ACTIVATION CODE STATUS ****/
/************************************************/
const ACTIVATION_CODE_STATUS_PENDING = 0
const ACTIVATION_CODE_STATUS_VALIDATED = 1
const ACTIVATION_CODE_STATUS_EXPIRED = 2

// ActivationCode é o código numérico de confirmação de conta.
// O envio (e-mail) fica fora deste serviço; em dev o código sai no log.
type ActivationCode struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID    int64      `json:"user_id" form:"user_id" gorm:"not null;index"`
	Code      string     `json:"code" form:"code" gorm:"not null;unique"`
	Status    int64      `json:"status" form:"status" gorm:"default:0"`
	ExpiresAt *time.Time `json:"expires_at" form:"expires_at"`
	CreatedAt *time.Time `json:"created_at" form:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" form:"updated_at"`
}
