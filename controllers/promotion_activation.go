package controllers

import (
	"errors"
	"fmt"
	"time"

	"wtg/models"

	"github.com/jinzhu/gorm"
)

// Mensagens do fluxo de ativação. Conflitos de plano nunca viram erro HTTP:
// a edição da promoção segue e a mensagem explica o que aconteceu com o plano.
const msgPromotionUpdated = "Promoção atualizada com sucesso."
const msgPlanAlreadyExists = msgPromotionUpdated + " O plano não foi alterado pois o usuário já possui este plano ativo ou agendado."
const msgActivePlanNoFinish = "Promoção atualizada, mas não foi possível agendar o novo plano pois o plano atual não possui data de término."
const msgStatusChangeBlocked = " No entanto, o status do evento não pode ser alterado no momento. Aguarde a reativação do seu plano."

var ErrPlanNotFound = errors.New("plano não encontrado")

// handlePromotionActivation decide o que acontece com o vínculo de plano quando o
// dono pede pra (des)ativar a promoção. Deve rodar dentro da transação do caller;
// a promoção recebida é mutada em memória e salva pelo caller.
//
// Ordem das regras:
//  1. desativação nunca mexe em plano;
//  2. com planId: idempotente se o plano já está ativo/agendado; agenda um
//     sucessor se há plano ativo com término conhecido; senão ativa na hora;
//  3. sem planId: promove o agendado, ou cai no plano gratuito se o usuário
//     está descoberto.
func handlePromotionActivation(tx *gorm.DB, user models.User, promotion *models.Promotion, active bool, planID *int64, now time.Time) (string, error) {
	promotion.Active = active

	if !active {
		return msgPromotionUpdated, nil
	}

	if planID != nil {
		return assignRequestedPlan(tx, user, promotion, *planID, now)
	}

	var ready models.UserPlan
	err := tx.Where("user_id = ? AND status = ?", user.ID, models.PLAN_STATUS_READYTOACTIVE).
		First(&ready).Error
	switch {
	case err == nil:
		// havia um plano agendado: o pedido de ativação antecipa ele pra agora,
		// desde que não exista outro plano ativo (no máximo 1 "active" por usuário)
		var actives int
		if err := tx.Model(&models.UserPlan{}).
			Where("user_id = ? AND status = ?", user.ID, models.PLAN_STATUS_ACTIVE).
			Count(&actives).Error; err != nil {
			return "", err
		}
		if actives > 0 {
			return msgPromotionUpdated, nil
		}

		var plan models.Plan
		if err := tx.First(&plan, ready.PlanID).Error; err != nil {
			return "", err
		}
		startedAt := now
		ready.Status = models.PLAN_STATUS_ACTIVE
		ready.StartedAt = &startedAt
		ready.FinishAt = models.PlanFinishAt(plan.Type, &startedAt)
		if err := tx.Save(&ready).Error; err != nil {
			return "", err
		}
		if err := allowUserPromotions(tx, user.ID, promotion); err != nil {
			return "", err
		}

	case gorm.IsRecordNotFoundError(err):
		covered, err := hasActiveOrFuturePausedPlan(tx, user.ID, now)
		if err != nil {
			return "", err
		}
		if covered {
			// já existe cobertura válida; nada a criar
			return msgPromotionUpdated, nil
		}
		var free models.Plan
		if err := tx.Where("type = ?", models.PLAN_TYPE_FREE).First(&free).Error; err != nil {
			// invariante de deploy: o seed do catálogo garante esse plano
			return "", fmt.Errorf("plano 'free' não encontrado no banco de dados: %v", err)
		}
		if err := createActiveUserPlan(tx, user.ID, free, now); err != nil {
			return "", err
		}
		if err := allowUserPromotions(tx, user.ID, promotion); err != nil {
			return "", err
		}

	default:
		return "", err
	}

	return msgPromotionUpdated, nil
}

// assignRequestedPlan trata o caso "ativar com planId explícito".
func assignRequestedPlan(tx *gorm.DB, user models.User, promotion *models.Promotion, planID int64, now time.Time) (string, error) {
	// idempotência: chamar de novo com o mesmo plano não cria linha duplicada
	var count int
	if err := tx.Model(&models.UserPlan{}).
		Where("user_id = ? AND plan_id = ? AND status IN (?)", user.ID, planID,
			[]string{models.PLAN_STATUS_ACTIVE, models.PLAN_STATUS_READYTOACTIVE}).
		Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return msgPlanAlreadyExists, nil
	}

	var plan models.Plan
	if err := tx.First(&plan, planID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return "", ErrPlanNotFound
		}
		return "", err
	}

	var current models.UserPlan
	err := tx.Where("user_id = ? AND status = ?", user.ID, models.PLAN_STATUS_ACTIVE).
		First(&current).Error
	switch {
	case err == nil:
		if current.FinishAt == nil {
			// sem data de término não dá pra agendar o sucessor
			return msgActivePlanNoFinish, nil
		}
		future := models.UserPlan{
			UserID:    user.ID,
			PlanID:    plan.ID,
			Status:    models.PLAN_STATUS_READYTOACTIVE,
			StartedAt: current.FinishAt,
			FinishAt:  models.PlanFinishAt(plan.Type, current.FinishAt),
		}
		if err := tx.Create(&future).Error; err != nil {
			return "", err
		}

	case gorm.IsRecordNotFoundError(err):
		if err := createActiveUserPlan(tx, user.ID, plan, now); err != nil {
			return "", err
		}
		if err := allowUserPromotions(tx, user.ID, promotion); err != nil {
			return "", err
		}

	default:
		return "", err
	}

	return msgPromotionUpdated, nil
}

func createActiveUserPlan(tx *gorm.DB, userID int64, plan models.Plan, now time.Time) error {
	startedAt := now
	link := models.UserPlan{
		UserID:    userID,
		PlanID:    plan.ID,
		Status:    models.PLAN_STATUS_ACTIVE,
		StartedAt: &startedAt,
		FinishAt:  models.PlanFinishAt(plan.Type, &startedAt),
	}
	return tx.Create(&link).Error
}

// allowUserPromotions libera a trava de visibilidade em todas as promoções do
// usuário. A promoção em edição (se houver) também é atualizada em memória,
// porque o caller ainda vai salvá-la por cima.
func allowUserPromotions(tx *gorm.DB, userID int64, editing *models.Promotion) error {
	if editing != nil {
		editing.AllowUserActivePromotion = true
	}
	return tx.Model(&models.Promotion{}).
		Where("user_id = ?", userID).
		Update("allow_user_active_promotion", true).Error
}

// hasActiveOrFuturePausedPlan: cobertura válida = plano ativo, ou pausado que
// ainda vai começar (started_at >= agora).
func hasActiveOrFuturePausedPlan(tx *gorm.DB, userID int64, now time.Time) (bool, error) {
	var count int
	err := tx.Model(&models.UserPlan{}).
		Where("user_id = ? AND (status = ? OR (status = ? AND started_at >= ?))",
			userID, models.PLAN_STATUS_ACTIVE, models.PLAN_STATUS_PAUSED, now).
		Count(&count).Error
	return count > 0, err
}
