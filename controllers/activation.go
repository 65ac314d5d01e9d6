package controllers

import (
	"log"
	"net/http"
	"time"

	dbpkg "wtg/db"
	"wtg/models"
	"wtg/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// CreateActivationCode cria o código de confirmação de conta dentro da transação
// do caller (usado pelo CreateUser).
func CreateActivationCode(tx *gorm.DB, code string, user models.User) (*models.ActivationCode, error) {
	exp := time.Now().Add(24 * time.Hour)

	activation := models.ActivationCode{
		UserID:    user.ID,
		Code:      code,
		Status:    models.ACTIVATION_CODE_STATUS_PENDING,
		ExpiresAt: &exp,
	}

	if err := tx.Create(&activation).Error; err != nil {
		return nil, err
	}
	return &activation, nil
}

// ActivateUserByCode valida um código de ativação e libera o usuário.
// Rota: POST /api/user/activate/:code
func ActivateUserByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		RespondError(c, "code é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var activation models.ActivationCode
	if err := db.Where("code = ?", code).First(&activation).Error; err != nil {
		RespondError(c, "código inválido", http.StatusNotFound)
		return
	}

	// Expiração
	if activation.ExpiresAt != nil && time.Now().After(*activation.ExpiresAt) {
		_ = db.Model(&activation).Update("status", models.ACTIVATION_CODE_STATUS_EXPIRED).Error
		RespondError(c, "código expirado", http.StatusForbidden)
		return
	}
	if activation.Status == models.ACTIVATION_CODE_STATUS_VALIDATED {
		RespondSuccess(c, gin.H{"status": "already_validated"})
		return
	}

	var user models.User
	if err := db.Where("id = ?", activation.UserID).First(&user).Error; err != nil {
		RespondError(c, "usuário não encontrado", http.StatusNotFound)
		return
	}

	tx := db.Begin()
	if err := tx.Model(&activation).Update("status", models.ACTIVATION_CODE_STATUS_VALIDATED).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Model(&user).Update("status", models.USER_STATUS_AVAILABLE).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	user.Password = ""
	user.Status = models.USER_STATUS_AVAILABLE
	RespondSuccess(c, gin.H{"status": "activated", "user": user})
}

// ResendActivationCode gera outro código de ativação para o usuário logado.
// Rota: POST /api/user/resend-code
func ResendActivationCode(c *gin.Context) {
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

	if user.Status == models.USER_STATUS_AVAILABLE {
		RespondSuccess(c, gin.H{"status": "already_active"})
		return
	}

	var activation models.ActivationCode
	if err := db.Where(
		"status = ? AND user_id = ?",
		models.ACTIVATION_CODE_STATUS_PENDING,
		user.ID,
	).First(&activation).Error; err != nil {
		RespondError(c, "nenhum código pendente encontrado", http.StatusNotFound)
		return
	}

	newCode := tools.RandomNumbers(activationCodeLen())
	exp := time.Now().Add(24 * time.Hour)

	activation.Code = newCode
	activation.ExpiresAt = &exp
	activation.Status = models.ACTIVATION_CODE_STATUS_PENDING

	tx := db.Begin()
	if err := tx.Save(&activation).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	// Envio por e-mail fica fora deste serviço; em dev o código sai no log.
	log.Printf("Código de ativação reenviado para %s: %s", user.Email, newCode)

	RespondSuccess(c, gin.H{"status": "sent"})
}
