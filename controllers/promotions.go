package controllers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	dbpkg "wtg/db"
	"wtg/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// PromotionRequest é o corpo de criação/edição. Active e PlanID são ponteiros
// porque "ausente" e "false/zero" significam coisas diferentes pro engine.
type PromotionRequest struct {
	Title         string `json:"title" form:"title"`
	Description   string `json:"description" form:"description"`
	Obs           string `json:"obs" form:"obs"`
	PromotionType string `json:"promotion_type" form:"promotion_type"`

	AddressStreet     string `json:"address_street" form:"address_street"`
	AddressNumber     string `json:"address_number" form:"address_number"`
	AddressComplement string `json:"address_complement" form:"address_complement"`
	AddressReference  string `json:"address_reference" form:"address_reference"`
	AddressPostal     string `json:"address_postal" form:"address_postal"`
	AddressObs        string `json:"address_obs" form:"address_obs"`

	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`

	Active *bool  `json:"active" form:"active"`
	PlanID *int64 `json:"plan_id" form:"plan_id"`
}

// POST /api/promotions (validated)
func CreatePromotion(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req PromotionRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		RespondError(c, "title é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	// 0 ou 1 promoção por usuário
	var existing models.Promotion
	if err := db.Where("user_id = ?", user.ID).First(&existing).Error; err == nil {
		RespondError(c, "não é possível criar uma nova promoção, pois já existe uma vinculada a este usuário", http.StatusBadRequest)
		return
	} else if !gorm.IsRecordNotFoundError(err) {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	promotion := models.Promotion{UserID: user.ID}
	copyPromotionFields(&promotion, req)

	active := req.Active != nil && *req.Active

	tx := db.Begin()
	message, err := handlePromotionActivation(tx, user, &promotion, active, req.PlanID, time.Now())
	if err != nil {
		tx.Rollback()
		if err == ErrPlanNotFound {
			RespondError(c, err.Error(), http.StatusNotFound)
			return
		}
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tx.Create(&promotion).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"promotion": promotion, "message": message})
}

// PUT /api/promotions/:id (validated)
// Edições de campos descritivos nunca são bloqueadas por conflito de plano: o
// pior caso é a mensagem explicando por que o status não mudou.
func EditPromotion(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req PromotionRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var promotion models.Promotion
	if err := db.Where("id = ? AND user_id = ?", id, user.ID).First(&promotion).Error; err != nil {
		RespondError(c, "promoção não encontrada ou não pertence a este usuário", http.StatusNotFound)
		return
	}

	copyPromotionFields(&promotion, req)

	message := msgPromotionUpdated
	statusChangeAttempted := req.Active != nil && *req.Active != promotion.Active

	tx := db.Begin()

	if statusChangeAttempted {
		if !promotion.AllowUserActivePromotion {
			message += msgStatusChangeBlocked
		} else {
			var err error
			message, err = handlePromotionActivation(tx, user, &promotion, *req.Active, req.PlanID, time.Now())
			if err != nil {
				tx.Rollback()
				if err == ErrPlanNotFound {
					RespondError(c, err.Error(), http.StatusNotFound)
					return
				}
				RespondError(c, err.Error(), http.StatusInternalServerError)
				return
			}
		}
	}

	if err := tx.Save(&promotion).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	// plano mais recente do usuário, só informativo na resposta
	latest, err := findLatestUserPlan(db, user.ID)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{
		"promotion": promotion,
		"user_plan": latest,
		"message":   message,
	})
}

// GET /api/promotions (public)
// Filtros: promotion_type e, opcionalmente, latitude+longitude+radius (km).
// Só promoções visíveis saem aqui: active e allow_user_active_promotion.
func GetPromotions(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	latStr := c.Query("latitude")
	lngStr := c.Query("longitude")
	radiusStr := c.Query("radius")

	hasGeoFilter := latStr != "" || lngStr != "" || radiusStr != ""
	if hasGeoFilter && (latStr == "" || lngStr == "" || radiusStr == "") {
		RespondError(c, "para filtrar por localização, latitude, longitude e radius são obrigatórios", http.StatusBadRequest)
		return
	}

	query := db.Where("active = ? AND allow_user_active_promotion = ?", true, true)
	if pt := c.Query("promotion_type"); pt != "" {
		query = query.Where("promotion_type = ?", pt)
	}

	var promotions []models.Promotion
	if err := query.Order("id asc").Find(&promotions).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if hasGeoFilter {
		lat, err1 := strconv.ParseFloat(latStr, 64)
		lng, err2 := strconv.ParseFloat(lngStr, 64)
		radius, err3 := strconv.ParseFloat(radiusStr, 64)
		if err1 != nil || err2 != nil || err3 != nil || radius <= 0 {
			RespondError(c, "latitude, longitude ou radius inválidos", http.StatusBadRequest)
			return
		}

		filtered := make([]models.Promotion, 0, len(promotions))
		for _, p := range promotions {
			if p.Latitude == nil || p.Longitude == nil {
				continue
			}
			if haversineKm(lat, lng, *p.Latitude, *p.Longitude) <= radius {
				filtered = append(filtered, p)
			}
		}
		promotions = filtered
	}

	RespondSuccess(c, gin.H{"promotions": promotions})
}

// GET /api/promotions/user (validated)
func GetUserPromotion(c *gin.Context) {
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

	var promotion models.Promotion
	if err := db.Where("user_id = ?", user.ID).First(&promotion).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondSuccess(c, gin.H{"promotion": nil})
			return
		}
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"promotion": promotion})
}

func copyPromotionFields(promotion *models.Promotion, req PromotionRequest) {
	promotion.Title = req.Title
	promotion.Description = req.Description
	promotion.Obs = req.Obs
	if req.PromotionType != "" {
		promotion.PromotionType = req.PromotionType
	}
	promotion.AddressStreet = req.AddressStreet
	promotion.AddressNumber = req.AddressNumber
	promotion.AddressComplement = req.AddressComplement
	promotion.AddressReference = req.AddressReference
	promotion.AddressPostal = req.AddressPostal
	promotion.AddressObs = req.AddressObs
	if req.Latitude != nil && req.Longitude != nil {
		promotion.Latitude = req.Latitude
		promotion.Longitude = req.Longitude
	}
}

// haversineKm: distância aproximada entre dois pontos em km.
// Substitui o filtro por raio que antes ficava no banco (PostGIS).
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0

	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
