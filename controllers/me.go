package controllers

import (
	"net/http"

	dbpkg "wtg/db"

	"github.com/gin-gonic/gin"
)

// GET /api/me (validated)
// Perfil do usuário logado junto com o vínculo de plano mais recente, que é o
// que o app precisa pra montar a home sem uma segunda chamada.
func Me(c *gin.Context) {
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

	user.Password = ""
	RespondSuccess(c, gin.H{"user": user, "user_plan": latest})
}
