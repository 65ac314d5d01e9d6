package controllers

import (
	"net/http"

	"wtg/tools"

	"github.com/gin-gonic/gin"
)

// GET /api/geocode?address=...
// Proxy fino pro serviço de geocoding: o app mobile confirma o endereço no mapa
// antes de salvar a promoção com as coordenadas.
func GeocodeAddress(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		RespondError(c, "address é obrigatório", http.StatusBadRequest)
		return
	}

	result, err := tools.GeocodeAddress(c.Request.Context(), address)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadGateway)
		return
	}

	RespondSuccess(c, gin.H{"result": result})
}
