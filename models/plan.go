package models

import "time"

/************************************************
/**** MARK: PLAN TYPES ****/
/************************************************/
const PLAN_TYPE_FREE = "free"
const PLAN_TYPE_MONTHLY = "monthly"
const PLAN_TYPE_PARTNER = "partner"

// Plan representa um plano comercial do catálogo (free, monthly ou partner).
// Dados de referência: criados via seed/admin, nunca pelo fluxo normal do app.
type Plan struct {
	ID         int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name       string     `gorm:"not null;unique" json:"name" form:"name"`
	Type       string     `gorm:"not null;index" json:"type" form:"type"`
	PriceCents int64      `gorm:"not null;default:0" json:"price_cents" form:"price_cents"`
	CreatedAt  *time.Time `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

// PlanFinishAt calcula a data de término de um vínculo a partir do tipo do plano
// e do instante de início. É a única definição dessa regra: criação, edição e o
// reconciler chamam todos aqui para não divergirem.
// Retorna nil quando não dá pra calcular (início nulo ou tipo desconhecido).
func PlanFinishAt(planType string, startedAt *time.Time) *time.Time {
	if startedAt == nil {
		return nil
	}
	var finish time.Time
	switch planType {
	case PLAN_TYPE_FREE:
		finish = startedAt.Add(24 * time.Hour)
	case PLAN_TYPE_MONTHLY:
		finish = startedAt.AddDate(0, 0, 30)
	case PLAN_TYPE_PARTNER:
		// "ilimitado" na prática, mas gravamos uma data concreta para auditoria
		finish = startedAt.AddDate(0, 0, 365)
	default:
		return nil
	}
	return &finish
}
