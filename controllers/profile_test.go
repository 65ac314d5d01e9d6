package controllers

import (
	"net/http"
	"testing"
	"time"

	"wtg/models"
	"wtg/tools"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func derivePassword(email, password string) string {
	encoded := tools.EncryptTextSHA512(password)
	encoded = email + ":" + encoded
	return tools.EncryptTextSHA512(encoded)
}

func TestDeactivateMe(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "desativa@wtg.test")

	r := newTestRouter(db, user)
	w := doJSON(t, r, "PATCH", "/api/user/deactivate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, models.USER_STATUS_DEACTIVATED, reloaded.Status)
}

func TestLoginReactivatesDeactivatedUser(t *testing.T) {
	db := setupTestDB(t)

	email := "volta@wtg.test"
	user := models.User{
		Name:     "Fulano",
		Email:    email,
		Password: derivePassword(email, "senha123"),
		Status:   models.USER_STATUS_DEACTIVATED,
	}
	require.NoError(t, db.Create(&user).Error)

	r := newTestRouter(db, user)
	w := doJSON(t, r, "POST", "/api/login", gin.H{
		"email":    email,
		"password": "senha123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, models.USER_STATUS_AVAILABLE, reloaded.Status)
}

func TestDeleteMeRemovesEverything(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "apaga@wtg.test")

	promotion := models.Promotion{UserID: user.ID, Title: "Some comigo"}
	require.NoError(t, db.Create(&promotion).Error)

	now := time.Now()
	free := planByType(t, db, models.PLAN_TYPE_FREE)
	link := models.UserPlan{UserID: user.ID, PlanID: free.ID, Status: models.PLAN_STATUS_ACTIVE, StartedAt: &now}
	require.NoError(t, db.Create(&link).Error)

	comment := models.Comment{UserID: user.ID, PromotionID: promotion.ID, Text: "tchau"}
	require.NoError(t, db.Create(&comment).Error)

	code := models.ActivationCode{UserID: user.ID, Code: "123456"}
	require.NoError(t, db.Create(&code).Error)

	r := newTestRouter(db, user)
	w := doJSON(t, r, "DELETE", "/api/user", nil)
	require.Equal(t, http.StatusOK, w.Code)

	for name, model := range map[string]interface{}{
		"users":            &models.User{},
		"promotions":       &models.Promotion{},
		"user_plans":       &models.UserPlan{},
		"comments":         &models.Comment{},
		"activation_codes": &models.ActivationCode{},
	} {
		var count int
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Equal(t, 0, count, "tabela %s deveria estar vazia", name)
	}

	// o catálogo de planos fica intacto
	var plans int
	require.NoError(t, db.Model(&models.Plan{}).Count(&plans).Error)
	assert.Equal(t, 3, plans)
}

func TestMeIncludesLatestPlan(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "home@wtg.test")

	now := time.Now()
	monthly := planByType(t, db, models.PLAN_TYPE_MONTHLY)
	link := models.UserPlan{UserID: user.ID, PlanID: monthly.ID, Status: models.PLAN_STATUS_ACTIVE, StartedAt: &now}
	require.NoError(t, db.Create(&link).Error)

	r := newTestRouter(db, user)
	w := doJSON(t, r, "GET", "/api/me", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	userMap, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, user.Email, userMap["email"])
	assert.Equal(t, "", userMap["password"])

	planMap, ok := body["user_plan"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(monthly.ID), planMap["plan_id"])
	assert.Equal(t, models.PLAN_STATUS_ACTIVE, planMap["status"])
}
