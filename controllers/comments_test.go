package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"wtg/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPromotion(t *testing.T, db *gorm.DB, userID int64) models.Promotion {
	t.Helper()
	promotion := models.Promotion{UserID: userID, Title: "Happy hour"}
	require.NoError(t, db.Create(&promotion).Error)
	return promotion
}

func TestCreateComment(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "dona@wtg.test")
	visitor := createTestUser(t, db, "visitante@wtg.test")
	promotion := createTestPromotion(t, db, owner.ID)

	r := newTestRouter(db, visitor)
	w := doJSON(t, r, "POST", "/api/comments", gin.H{
		"promotion_id": promotion.ID,
		"comment":      "Melhor happy hour da região!",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var saved models.Comment
	require.NoError(t, db.Where("promotion_id = ?", promotion.ID).First(&saved).Error)
	assert.Equal(t, visitor.ID, saved.UserID)
	assert.Equal(t, "Melhor happy hour da região!", saved.Text)
	assert.Equal(t, 0, saved.LikeCount)
}

func TestCreateCommentOnMissingPromotion(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "perdido@wtg.test")

	r := newTestRouter(db, user)
	w := doJSON(t, r, "POST", "/api/comments", gin.H{
		"promotion_id": 999,
		"comment":      "Oi?",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCommentValidation(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "valida@wtg.test")
	promotion := createTestPromotion(t, db, owner.ID)
	r := newTestRouter(db, owner)

	w := doJSON(t, r, "POST", "/api/comments", gin.H{
		"promotion_id": promotion.ID,
		"comment":      "",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/api/comments", gin.H{
		"promotion_id": promotion.ID,
		"comment":      strings.Repeat("a", 501),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Equal(t, 0, count)
}

func TestDeleteCommentByAuthor(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "autora@wtg.test")
	promotion := createTestPromotion(t, db, owner.ID)

	comment := models.Comment{UserID: owner.ID, PromotionID: promotion.ID, Text: "meu comentário"}
	require.NoError(t, db.Create(&comment).Error)

	r := newTestRouter(db, owner)
	w := doJSON(t, r, "DELETE", fmt.Sprintf("/api/comments/%d", comment.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Equal(t, 0, count)
}

func TestDeleteCommentByOtherUserForbidden(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "autor@wtg.test")
	other := createTestUser(t, db, "outro@wtg.test")
	promotion := createTestPromotion(t, db, author.ID)

	comment := models.Comment{UserID: author.ID, PromotionID: promotion.ID, Text: "fica fora disso"}
	require.NoError(t, db.Create(&comment).Error)

	r := newTestRouter(db, other)
	w := doJSON(t, r, "DELETE", fmt.Sprintf("/api/comments/%d", comment.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Equal(t, 1, count)
}

func TestDeleteCommentByAdmin(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "comum@wtg.test")
	promotion := createTestPromotion(t, db, author.ID)

	admin := models.User{Name: "Admin", Email: "admin@wtg.test", Password: "x", Admin: true}
	require.NoError(t, db.Create(&admin).Error)

	comment := models.Comment{UserID: author.ID, PromotionID: promotion.ID, Text: "impróprio"}
	require.NoError(t, db.Create(&comment).Error)

	r := newTestRouter(db, admin)
	w := doJSON(t, r, "DELETE", fmt.Sprintf("/api/comments/%d", comment.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Equal(t, 0, count)
}
