package controllers

import (
	"wtg/models"

	"github.com/jinzhu/gorm"
)

// findLatestUserPlan retorna o vínculo de plano mais recente do usuário (qualquer
// status). Se não existir vínculo, retorna (nil, nil).
func findLatestUserPlan(db *gorm.DB, userID int64) (*models.UserPlan, error) {
	var link models.UserPlan
	if err := db.Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		First(&link).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// findUserPlans retorna o histórico de vínculos do usuário, do mais novo pro mais antigo.
func findUserPlans(db *gorm.DB, userID int64) ([]models.UserPlan, error) {
	var links []models.UserPlan
	if err := db.Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&links).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return links, nil
}
