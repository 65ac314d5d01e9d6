package controllers

import (
	"net/http"

	dbpkg "wtg/db"
	"wtg/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

const commentMaxLen = 500

type CommentRequest struct {
	PromotionID int64  `json:"promotion_id" form:"promotion_id"`
	Comment     string `json:"comment" form:"comment"`
}

// POST /api/comments (validated)
func CreateComment(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PromotionID <= 0 {
		RespondError(c, "promotion_id é obrigatório", http.StatusBadRequest)
		return
	}
	if req.Comment == "" {
		RespondError(c, "O comentário não pode estar em branco.", http.StatusBadRequest)
		return
	}
	if len(req.Comment) > commentMaxLen {
		RespondError(c, "O comentário não pode exceder 500 caracteres.", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var promotion models.Promotion
	if err := db.First(&promotion, req.PromotionID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondError(c, "promoção não encontrada", http.StatusNotFound)
			return
		}
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	comment := models.Comment{
		UserID:      user.ID,
		PromotionID: promotion.ID,
		Text:        req.Comment,
	}
	if err := db.Create(&comment).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"comment": comment, "user_name": user.Name})
}

// DELETE /api/comments/:id (validated)
// Só o autor ou um admin podem excluir.
func DeleteComment(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

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

	var comment models.Comment
	if err := db.First(&comment, id).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondError(c, "comentário não encontrado", http.StatusNotFound)
			return
		}
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if comment.UserID != user.ID && !user.Admin {
		RespondError(c, "Você não tem permissão para excluir este comentário.", http.StatusForbidden)
		return
	}

	if err := db.Delete(&comment).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"status": "deleted"})
}
