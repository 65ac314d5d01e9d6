package workers

import (
	"log"
	"time"

	"wtg/models"

	"github.com/jinzhu/gorm"
)

// StartPlanReconciler inicia o loop que expira planos vencidos e ativa planos
// agendados. Uma instância só por deploy: rodar isso em mais de um nó processaria
// os mesmos vínculos duas vezes.
// Retorna a função de stop usada no shutdown do processo.
func StartPlanReconciler(db *gorm.DB, interval time.Duration) (stop func()) {
	quit := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ReconcilePlans(db, time.Now())
			case <-quit:
				return
			}
		}
	}()

	return func() { close(quit) }
}

// ReconcilePlans roda as duas varreduras do ciclo, sempre nessa ordem: expirar
// antes de ativar, pra que um plano agendado possa assumir no mesmo tick em que
// o plano ativo do usuário venceu.
// Cada varredura é uma transação própria; erro numa não impede a outra (o
// próximo tick tenta de novo).
func ReconcilePlans(db *gorm.DB, now time.Time) {
	if err := expireDuePlans(db, now); err != nil {
		log.Printf("plan reconciler: erro ao expirar planos: %v", err)
	}
	if err := activateReadyPlans(db, now); err != nil {
		log.Printf("plan reconciler: erro ao ativar planos: %v", err)
	}
}

// expireDuePlans desativa todo vínculo "active" com finish_at vencido e derruba
// a visibilidade das promoções dos donos (active e allow_user_active_promotion).
func expireDuePlans(db *gorm.DB, now time.Time) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	// leitura dentro da transação, pra serializar com edições interativas
	var expired []models.UserPlan
	if err := tx.
		Where("status = ? AND finish_at IS NOT NULL AND finish_at <= ?", models.PLAN_STATUS_ACTIVE, now).
		Find(&expired).Error; err != nil {
		tx.Rollback()
		return err
	}
	if len(expired) == 0 {
		tx.Rollback()
		return nil
	}

	userIDs := make([]int64, 0, len(expired))
	for i := range expired {
		expired[i].Status = models.PLAN_STATUS_INACTIVE
		if err := tx.Save(&expired[i]).Error; err != nil {
			tx.Rollback()
			return err
		}
		userIDs = append(userIDs, expired[i].UserID)
	}

	if err := tx.Model(&models.Promotion{}).
		Where("user_id IN (?)", userIDs).
		Updates(map[string]interface{}{
			"active":                      false,
			"allow_user_active_promotion": false,
		}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	log.Printf("plan reconciler: %d plano(s) expirado(s)", len(expired))
	return nil
}

// activateReadyPlans ativa, por usuário, o vínculo "readytoactive" mais antigo já
// devido (started_at <= now). Usuário que ainda tem plano ativo é pulado no ciclo
// inteiro; vínculo que venceu antes mesmo de começar vira "inactive".
func activateReadyPlans(db *gorm.DB, now time.Time) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var due []models.UserPlan
	if err := tx.
		Where("status = ? AND started_at IS NOT NULL AND started_at <= ?", models.PLAN_STATUS_READYTOACTIVE, now).
		Order("started_at asc, id asc").
		Find(&due).Error; err != nil {
		tx.Rollback()
		return err
	}
	if len(due) == 0 {
		tx.Rollback()
		return nil
	}

	// primeiro vínculo devido por usuário (a query já vem ordenada)
	byUser := make(map[int64]models.UserPlan)
	for _, link := range due {
		if _, ok := byUser[link.UserID]; !ok {
			byUser[link.UserID] = link
		}
	}

	activated := 0
	discarded := 0

	for userID, link := range byUser {
		var count int
		if err := tx.Model(&models.UserPlan{}).
			Where("user_id = ? AND status = ? AND id <> ?", userID, models.PLAN_STATUS_ACTIVE, link.ID).
			Count(&count).Error; err != nil {
			tx.Rollback()
			return err
		}
		if count > 0 {
			// ainda existe plano ativo; fica pro próximo ciclo
			continue
		}

		if link.FinishAt != nil && link.FinishAt.Before(now) {
			// venceu antes mesmo de começar
			link.Status = models.PLAN_STATUS_INACTIVE
			if err := tx.Save(&link).Error; err != nil {
				tx.Rollback()
				return err
			}
			discarded++
			continue
		}

		var plan models.Plan
		if err := tx.First(&plan, link.PlanID).Error; err != nil {
			tx.Rollback()
			return err
		}

		link.Status = models.PLAN_STATUS_ACTIVE
		if link.StartedAt == nil {
			startedAt := now
			link.StartedAt = &startedAt
		}
		link.FinishAt = models.PlanFinishAt(plan.Type, link.StartedAt)
		if err := tx.Save(&link).Error; err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Model(&models.Promotion{}).
			Where("user_id = ?", userID).
			Update("allow_user_active_promotion", true).Error; err != nil {
			tx.Rollback()
			return err
		}
		activated++
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	if activated > 0 || discarded > 0 {
		log.Printf("plan reconciler: %d plano(s) ativado(s), %d descartado(s)", activated, discarded)
	}
	return nil
}
