package controllers

import (
	"testing"
	"time"

	dbpkg "wtg/db"
	"wtg/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.LogMode(false)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ActivationCode{},
		&models.Plan{},
		&models.UserPlan{},
		&models.Promotion{},
		&models.Comment{},
	).Error)
	require.NoError(t, dbpkg.SeedPlans(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		Name:     "Fulano",
		Email:    email,
		Password: "x",
		Status:   models.USER_STATUS_AVAILABLE,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func planByType(t *testing.T, db *gorm.DB, planType string) models.Plan {
	t.Helper()
	var plan models.Plan
	require.NoError(t, db.Where("type = ?", planType).First(&plan).Error)
	return plan
}

func userPlans(t *testing.T, db *gorm.DB, userID int64) []models.UserPlan {
	t.Helper()
	var links []models.UserPlan
	require.NoError(t, db.Where("user_id = ?", userID).Order("id asc").Find(&links).Error)
	return links
}

func TestActivationAssignsFreePlanWhenUncovered(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "free@wtg.test")
	promotion := models.Promotion{UserID: user.ID, Title: "Happy hour"}
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	msg, err := handlePromotionActivation(db, user, &promotion, true, nil, now)
	require.NoError(t, err)
	assert.Equal(t, msgPromotionUpdated, msg)

	assert.True(t, promotion.Active)
	assert.True(t, promotion.AllowUserActivePromotion)

	links := userPlans(t, db, user.ID)
	require.Len(t, links, 1)
	free := planByType(t, db, models.PLAN_TYPE_FREE)
	assert.Equal(t, free.ID, links[0].PlanID)
	assert.Equal(t, models.PLAN_STATUS_ACTIVE, links[0].Status)
	require.NotNil(t, links[0].StartedAt)
	require.NotNil(t, links[0].FinishAt)
	assert.True(t, links[0].FinishAt.Equal(now.Add(24*time.Hour)))
}

func TestActivationDeactivateNeverTouchesPlans(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "off@wtg.test")
	promotion := models.Promotion{UserID: user.ID, Title: "Evento", Active: true}

	monthly := planByType(t, db, models.PLAN_TYPE_MONTHLY)
	msg, err := handlePromotionActivation(db, user, &promotion, false, &monthly.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, msgPromotionUpdated, msg)

	assert.False(t, promotion.Active)
	assert.Empty(t, userPlans(t, db, user.ID))
}

func TestActivationSchedulesSuccessorAfterActivePlan(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "upgrade@wtg.test")
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	free := planByType(t, db, models.PLAN_TYPE_FREE)
	started := now.Add(-22 * time.Hour)
	finish := now.Add(2 * time.Hour)
	current := models.UserPlan{
		UserID:    user.ID,
		PlanID:    free.ID,
		Status:    models.PLAN_STATUS_ACTIVE,
		StartedAt: &started,
		FinishAt:  &finish,
	}
	require.NoError(t, db.Create(&current).Error)

	promotion := models.Promotion{UserID: user.ID, Title: "Evento", Active: true, AllowUserActivePromotion: true}
	monthly := planByType(t, db, models.PLAN_TYPE_MONTHLY)

	msg, err := handlePromotionActivation(db, user, &promotion, true, &monthly.ID, now)
	require.NoError(t, err)
	assert.Equal(t, msgPromotionUpdated, msg)

	links := userPlans(t, db, user.ID)
	require.Len(t, links, 2)

	// o plano ativo não muda
	assert.Equal(t, models.PLAN_STATUS_ACTIVE, links[0].Status)
	assert.True(t, links[0].FinishAt.Equal(finish))

	// o sucessor nasce agendado, começando quando o atual termina
	successor := links[1]
	assert.Equal(t, monthly.ID, successor.PlanID)
	assert.Equal(t, models.PLAN_STATUS_READYTOACTIVE, successor.Status)
	require.NotNil(t, successor.StartedAt)
	assert.True(t, successor.StartedAt.Equal(finish))
	require.NotNil(t, successor.FinishAt)
	assert.True(t, successor.FinishAt.Equal(finish.AddDate(0, 0, 30)))
}

func TestActivationIdempotentWhenPlanAlreadyHeld(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "idem@wtg.test")
	now := time.Now()

	monthly := planByType(t, db, models.PLAN_TYPE_MONTHLY)
	promotion := models.Promotion{UserID: user.ID, Title: "Evento"}

	_, err := handlePromotionActivation(db, user, &promotion, true, &monthly.ID, now)
	require.NoError(t, err)
	require.Len(t, userPlans(t, db, user.ID), 1)

	// segunda chamada com os mesmos argumentos não cria linha nova
	msg, err := handlePromotionActivation(db, user, &promotion, true, &monthly.ID, now)
	require.NoError(t, err)
	assert.Equal(t, msgPlanAlreadyExists, msg)
	assert.Len(t, userPlans(t, db, user.ID), 1)
}

func TestActivationRejectsSuccessorWithoutFinishDate(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "nofinish@wtg.test")
	now := time.Now()

	partner := planByType(t, db, models.PLAN_TYPE_PARTNER)
	started := now.Add(-time.Hour)
	current := models.UserPlan{
		UserID:    user.ID,
		PlanID:    partner.ID,
		Status:    models.PLAN_STATUS_ACTIVE,
		StartedAt: &started,
		// FinishAt nulo: não dá pra saber quando o sucessor começaria
	}
	require.NoError(t, db.Create(&current).Error)

	promotion := models.Promotion{UserID: user.ID, Title: "Evento", AllowUserActivePromotion: true}
	monthly := planByType(t, db, models.PLAN_TYPE_MONTHLY)

	msg, err := handlePromotionActivation(db, user, &promotion, true, &monthly.ID, now)
	require.NoError(t, err)
	assert.Equal(t, msgActivePlanNoFinish, msg)

	// a ativação da promoção em si é mantida, mas nenhum vínculo novo aparece
	assert.True(t, promotion.Active)
	assert.Len(t, userPlans(t, db, user.ID), 1)
}

func TestActivationPlanNotFound(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "notfound@wtg.test")
	promotion := models.Promotion{UserID: user.ID, Title: "Evento"}

	bogus := int64(99999)
	_, err := handlePromotionActivation(db, user, &promotion, true, &bogus, time.Now())
	assert.Equal(t, ErrPlanNotFound, err)
	assert.Empty(t, userPlans(t, db, user.ID))
}

func TestActivationPromotesQueuedPlan(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "queued@wtg.test")
	now := time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)

	monthly := planByType(t, db, models.PLAN_TYPE_MONTHLY)
	futureStart := now.Add(48 * time.Hour)
	queued := models.UserPlan{
		UserID:    user.ID,
		PlanID:    monthly.ID,
		Status:    models.PLAN_STATUS_READYTOACTIVE,
		StartedAt: &futureStart,
		FinishAt:  models.PlanFinishAt(models.PLAN_TYPE_MONTHLY, &futureStart),
	}
	require.NoError(t, db.Create(&queued).Error)

	promotion := models.Promotion{UserID: user.ID, Title: "Evento", AllowUserActivePromotion: true}

	msg, err := handlePromotionActivation(db, user, &promotion, true, nil, now)
	require.NoError(t, err)
	assert.Equal(t, msgPromotionUpdated, msg)

	links := userPlans(t, db, user.ID)
	require.Len(t, links, 1)
	assert.Equal(t, models.PLAN_STATUS_ACTIVE, links[0].Status)
	require.NotNil(t, links[0].StartedAt)
	assert.True(t, links[0].StartedAt.Equal(now))
	require.NotNil(t, links[0].FinishAt)
	assert.True(t, links[0].FinishAt.Equal(now.AddDate(0, 0, 30)))
	assert.True(t, promotion.AllowUserActivePromotion)
}

func TestActivationNoopWithFuturePausedPlan(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "pausadofuturo@wtg.test")
	now := time.Date(2025, 5, 3, 9, 0, 0, 0, time.UTC)

	// plano pausado que ainda vai começar conta como cobertura válida
	monthly := planByType(t, db, models.PLAN_TYPE_MONTHLY)
	futureStart := now.Add(48 * time.Hour)
	paused := models.UserPlan{
		UserID:    user.ID,
		PlanID:    monthly.ID,
		Status:    models.PLAN_STATUS_PAUSED,
		StartedAt: &futureStart,
		FinishAt:  models.PlanFinishAt(models.PLAN_TYPE_MONTHLY, &futureStart),
	}
	require.NoError(t, db.Create(&paused).Error)

	promotion := models.Promotion{UserID: user.ID, Title: "Evento", AllowUserActivePromotion: true}

	msg, err := handlePromotionActivation(db, user, &promotion, true, nil, now)
	require.NoError(t, err)
	assert.Equal(t, msgPromotionUpdated, msg)

	// nada de plano gratuito: o vínculo pausado continua sendo o único
	links := userPlans(t, db, user.ID)
	require.Len(t, links, 1)
	assert.Equal(t, models.PLAN_STATUS_PAUSED, links[0].Status)
}

func TestActivationFreeFallbackWithPastPausedPlan(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "pausadopassado@wtg.test")
	now := time.Date(2025, 5, 3, 9, 0, 0, 0, time.UTC)

	// pausado que já deveria ter começado não cobre o usuário
	monthly := planByType(t, db, models.PLAN_TYPE_MONTHLY)
	pastStart := now.Add(-48 * time.Hour)
	paused := models.UserPlan{
		UserID:    user.ID,
		PlanID:    monthly.ID,
		Status:    models.PLAN_STATUS_PAUSED,
		StartedAt: &pastStart,
		FinishAt:  models.PlanFinishAt(models.PLAN_TYPE_MONTHLY, &pastStart),
	}
	require.NoError(t, db.Create(&paused).Error)

	promotion := models.Promotion{UserID: user.ID, Title: "Evento"}

	msg, err := handlePromotionActivation(db, user, &promotion, true, nil, now)
	require.NoError(t, err)
	assert.Equal(t, msgPromotionUpdated, msg)

	links := userPlans(t, db, user.ID)
	require.Len(t, links, 2)
	free := planByType(t, db, models.PLAN_TYPE_FREE)
	assert.Equal(t, free.ID, links[1].PlanID)
	assert.Equal(t, models.PLAN_STATUS_ACTIVE, links[1].Status)
}

func TestActivationNoopWhenAlreadyCovered(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "covered@wtg.test")
	now := time.Now()

	partner := planByType(t, db, models.PLAN_TYPE_PARTNER)
	started := now.Add(-time.Hour)
	current := models.UserPlan{
		UserID:    user.ID,
		PlanID:    partner.ID,
		Status:    models.PLAN_STATUS_ACTIVE,
		StartedAt: &started,
		FinishAt:  models.PlanFinishAt(models.PLAN_TYPE_PARTNER, &started),
	}
	require.NoError(t, db.Create(&current).Error)

	promotion := models.Promotion{UserID: user.ID, Title: "Evento", AllowUserActivePromotion: true}

	msg, err := handlePromotionActivation(db, user, &promotion, true, nil, now)
	require.NoError(t, err)
	assert.Equal(t, msgPromotionUpdated, msg)
	assert.Len(t, userPlans(t, db, user.ID), 1)
}
