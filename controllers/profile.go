package controllers

import (
	"net/http"

	dbpkg "wtg/db"
	"wtg/models"

	"github.com/gin-gonic/gin"
)

// PATCH /api/user/deactivate (validated)
// Desativação voluntária: a conta some do app mas nada é apagado; o próximo
// login reativa (ver Login).
func DeactivateMe(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("status", models.USER_STATUS_DEACTIVATED).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	user.Status = models.USER_STATUS_DEACTIVATED
	user.Password = ""
	RespondSuccess(c, gin.H{"user": user, "message": "usuário desativado"})
}

// DELETE /api/user (validated)
// Exclusão definitiva da própria conta. Tudo que pertence ao usuário sai junto
// na mesma transação (promoção, vínculos de plano, comentários, códigos).
func DeleteMe(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	tx := db.Begin()
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserPlan{}).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Promotion{}).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.ActivationCode{}).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Delete(&models.User{}, "id = ?", user.ID).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"status": "deleted"})
}
