package models

import "time"

/************************************************
/**** MARK: USER PLAN STATUS ****/
/************************************************/
// Gravado em minúsculas na coluna status, igual ao schema legado.
const PLAN_STATUS_ACTIVE = "active"
const PLAN_STATUS_READYTOACTIVE = "readytoactive"
const PLAN_STATUS_PAUSED = "paused"
const PLAN_STATUS_INACTIVE = "inactive"

// UserPlan representa o vínculo de um usuário com um plano do catálogo dentro de
// uma janela de tempo. Regras:
// - no máximo 1 vínculo "active" por usuário a cada instante;
// - no máximo 1 vínculo "readytoactive" (o próximo plano, agendado);
// - vínculos "inactive" nunca são ressuscitados: cria-se uma nova linha.
type UserPlan struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID    int64      `gorm:"not null;index" json:"user_id"`
	PlanID    int64      `gorm:"not null;index" json:"plan_id"`
	Status    string     `gorm:"column:status;not null;index" json:"status"`
	StartedAt *time.Time `json:"started_at"`
	FinishAt  *time.Time `json:"finish_at"`

	// PaymentMade é informativo: quem escreve é o collaborator de billing, não o app.
	PaymentMade bool `gorm:"not null;default:false" json:"payment_made"`

	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
