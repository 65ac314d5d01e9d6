package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope padrão das respostas: erro sempre em {"error": msg}; sucesso é o
// payload direto (conflitos de política de plano viram "message" dentro dele,
// nunca status de erro).
func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
