package router

import (
	"log"

	"wtg/controllers"
	"wtg/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares.
// Public routes + authenticated routes + "validated" routes (Authorizer) + admin.
func Initialize(r *gin.Engine) {
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")

	// Public (no auth)
	api.POST("/users", Logger(), controllers.CreateUser)
	api.POST("/login", Logger(), controllers.Login)
	api.GET("/promotions", Logger(), controllers.GetPromotions)
	api.GET("/geocode", Logger(), controllers.GeocodeAddress)

	// Authenticated routes (token required)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())
	auth.POST("/user/resend-code", Logger(), controllers.ResendActivationCode)
	auth.POST("/user/activate/:code", Logger(), controllers.ActivateUserByCode)

	// Validated routes (token + active user)
	validated := auth.Group("")
	validated.Use(Authorizer())

	validated.GET("/me", Logger(), controllers.Me)
	validated.PUT("/user", Logger(), controllers.UpdateCurrentUser)
	validated.PATCH("/user/deactivate", Logger(), controllers.DeactivateMe)
	validated.DELETE("/user", Logger(), controllers.DeleteMe)

	// Plans
	validated.GET("/plans", Logger(), controllers.GetPlans)
	validated.GET("/plans/user", Logger(), controllers.GetUserPlans)
	validated.GET("/plans/:id", Logger(), controllers.GetPlanByID)

	// Promotions (user)
	validated.GET("/promotions/user", Logger(), controllers.GetUserPromotion)
	validated.POST("/promotions", Logger(), controllers.CreatePromotion)
	validated.PUT("/promotions/:id", Logger(), controllers.EditPromotion)

	// Comments
	validated.POST("/comments", Logger(), controllers.CreateComment)
	validated.DELETE("/comments/:id", Logger(), controllers.DeleteComment)

	// Admin routes
	admin := validated.Group("")
	admin.Use(Adminizer())

	// Plans CRUD (admin)
	admin.POST("/plans", Logger(), controllers.CreatePlan)
	admin.PUT("/plans/:id", Logger(), controllers.UpdatePlan)
	admin.DELETE("/plans/:id", Logger(), controllers.DeletePlan)

	log.Printf("Routes initialized")
}
