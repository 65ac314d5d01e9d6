package controllers

import (
	"net/http"

	dbpkg "wtg/db"
	"wtg/models"

	"github.com/gin-gonic/gin"
)

// GET /api/plans
func GetPlans(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var plans []models.Plan
	if err := db.Order("id asc").Find(&plans).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"plans": plans})
}

// GET /api/plans/:id
func GetPlanByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var plan models.Plan
	if err := db.First(&plan, id).Error; err != nil {
		RespondError(c, "plano não encontrado", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{"plan": plan})
}

// POST /api/plans (admin)
func CreatePlan(c *gin.Context) {
	var plan models.Plan
	if err := c.Bind(&plan); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if plan.Name == "" {
		RespondError(c, "name é obrigatório", http.StatusBadRequest)
		return
	}
	if plan.Type != models.PLAN_TYPE_FREE &&
		plan.Type != models.PLAN_TYPE_MONTHLY &&
		plan.Type != models.PLAN_TYPE_PARTNER {
		RespondError(c, "type inválido", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := db.Create(&plan).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"plan": plan})
}

// PUT /api/plans/:id (admin)
func UpdatePlan(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.Plan
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var plan models.Plan
	if err := db.First(&plan, id).Error; err != nil {
		RespondError(c, "plano não encontrado", http.StatusNotFound)
		return
	}

	if body.Name != "" {
		plan.Name = body.Name
	}
	// tipo é imutável: o engine e o reconciler dependem dele pra calcular vigência
	if body.PriceCents >= 0 {
		plan.PriceCents = body.PriceCents
	}

	if err := db.Save(&plan).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"plan": plan})
}

// DELETE /api/plans/:id (admin)
func DeletePlan(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var count int
	if err := db.Model(&models.UserPlan{}).Where("plan_id = ?", id).Count(&count).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if count > 0 {
		RespondError(c, "plano possui vínculos de usuários e não pode ser removido", http.StatusBadRequest)
		return
	}

	if err := db.Delete(&models.Plan{}, "id = ?", id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}

// GET /api/plans/user (validated)
// Devolve o vínculo mais recente (com o plano do catálogo) e o histórico.
func GetUserPlans(c *gin.Context) {
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

	latest, err := findLatestUserPlan(db, user.ID)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if latest == nil {
		RespondSuccess(c, gin.H{"user_plan": nil, "plan": nil, "history": nil})
		return
	}

	var plan models.Plan
	if err := db.First(&plan, latest.PlanID).Error; err != nil {
		// vínculo inconsistente -> tratamos como sem plano
		RespondSuccess(c, gin.H{"user_plan": nil, "plan": nil, "history": nil})
		return
	}

	history, err := findUserPlans(db, user.ID)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"user_plan": latest, "plan": plan, "history": history})
}
