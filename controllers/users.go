package controllers

import (
	"log"
	"net/http"

	dbpkg "wtg/db"
	"wtg/models"
	"wtg/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

func CheckUserExists(c *gin.Context, email string) (bool, *models.User) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		return false, nil
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return false, nil
	}
	return true, &user
}

// POST /api/users
// Registro não atribui plano nenhum: a primeira cobertura (free ou paga) nasce
// quando o usuário tenta ativar a promoção dele.
func CreateUser(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	user := models.User{}
	if err := c.Bind(&user); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	missing := user.MissingFields()
	if missing != "" {
		RespondError(c, "Faltando campo "+missing, http.StatusBadRequest)
		return
	}

	if !tools.ValidateEmail(user.Email) {
		RespondError(c, "E-mail inválido!", http.StatusBadRequest)
		return
	}

	exists, _ := CheckUserExists(c, user.Email)
	if exists {
		RespondError(c, "Usuário já existe", http.StatusBadRequest)
		return
	}

	passwordEncode := tools.EncryptTextSHA512(user.Password)
	passwordEncode = user.Email + ":" + passwordEncode
	passwordEncode = tools.EncryptTextSHA512(passwordEncode)
	user.Password = passwordEncode

	user.Admin = false
	user.Type = models.USER_TYPE_NORMAL
	user.Status = models.USER_STATUS_PENDING

	tx := db.Begin()
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	code := tools.RandomNumbers(activationCodeLen())
	if _, err := CreateActivationCode(tx, code, user); err != nil {
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
	log.Printf("Código de ativação gerado para %s: %s", user.Email, code)

	user.Password = ""
	RespondSuccess(c, user)
}

// UpdateCurrentUser updates the logged user ("me").
// Route: PUT /api/user
//
// Forbidden fields: id, email, password, admin, type, status, created_at, updated_at.
func UpdateCurrentUser(c *gin.Context) {
	logged, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	// Bind to a generic map so we can ignore forbidden keys safely.
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	forbidden := map[string]struct{}{
		"id":         {},
		"email":      {},
		"password":   {},
		"admin":      {},
		"type":       {},
		"status":     {},
		"created_at": {},
		"updated_at": {},
	}
	for k := range payload {
		if _, bad := forbidden[k]; bad {
			delete(payload, k)
		}
	}
	if len(payload) == 0 {
		RespondSuccess(c, gin.H{"status": "nothing_to_update"})
		return
	}

	var user models.User
	if err := db.First(&user, logged.ID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondError(c, "usuário não encontrado", http.StatusNotFound)
			return
		}
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if err := db.Model(&user).Updates(payload).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	user.Password = ""
	RespondSuccess(c, gin.H{"user": user})
}
