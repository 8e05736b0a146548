package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kittipos/equiptrack/internal/app/controllers"
	"github.com/kittipos/equiptrack/internal/app/models"
	"github.com/kittipos/equiptrack/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	ticketController *controllers.TicketController,
	equipmentController *controllers.EquipmentController,
	statusController *controllers.StatusController,
	userController *controllers.UserController,
	authMiddleware *middleware.AuthMiddleware,
	uploadsDir string,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// Uploaded ticket photos
	router.Static("/uploads", uploadsDir)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.POST("/auth/logout-all", authController.LogoutAll)
		authenticated.GET("/auth/me", authController.Me)

		// Ticket routes; every authenticated role may report and browse its
		// own slice, the services narrow visibility further
		tickets := authenticated.Group("/tickets")
		{
			tickets.POST("", ticketController.CreateTicket)
			tickets.GET("", ticketController.ListTickets)
			tickets.GET("/:id", ticketController.GetTicket)

			ticketsStaff := tickets.Group("")
			ticketsStaff.Use(authMiddleware.RoleRequired(
				models.RoleAdmin, models.RoleEquipmentManager, models.RoleEquipmentAssistant))
			{
				ticketsStaff.POST("/:id/assign", ticketController.AssignTicket)
				ticketsStaff.POST("/:id/transition", ticketController.TransitionTicket)
			}

			ticketsPrivileged := tickets.Group("")
			ticketsPrivileged.Use(authMiddleware.RoleRequired(
				models.RoleAdmin, models.RoleEquipmentManager))
			{
				ticketsPrivileged.POST("/bulk-transition", ticketController.BulkTransitionTickets)
				ticketsPrivileged.POST("/referrals/export", ticketController.ExportReferrals)
				ticketsPrivileged.DELETE("/:id", ticketController.DeleteTicket)
			}
		}

		// Equipment routes; reading is open to all authenticated users
		equipment := authenticated.Group("/equipment")
		{
			equipment.GET("", equipmentController.ListEquipment)
			equipment.GET("/:id", equipmentController.GetEquipment)

			equipmentProtected := equipment.Group("")
			equipmentProtected.Use(authMiddleware.RoleRequired(
				models.RoleAdmin, models.RoleEquipmentManager))
			{
				equipmentProtected.POST("", equipmentController.CreateEquipment)
				equipmentProtected.PUT("/:id", equipmentController.UpdateEquipment)
				equipmentProtected.PUT("/:id/status", equipmentController.SetEquipmentStatus)
				equipmentProtected.DELETE("/:id", equipmentController.DeleteEquipment)
			}
		}

		// Status taxonomy routes
		statuses := authenticated.Group("/statuses")
		{
			statuses.GET("", statusController.ListStatuses)

			statusesProtected := statuses.Group("")
			statusesProtected.Use(authMiddleware.RoleRequired(
				models.RoleAdmin, models.RoleEquipmentManager))
			{
				statusesProtected.POST("", statusController.CreateStatus)
				statusesProtected.PUT("/:id", statusController.UpdateStatus)
				statusesProtected.DELETE("/:id", statusController.DeleteStatus)
			}
		}

		// User administration routes
		users := authenticated.Group("/users")
		users.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleEquipmentManager))
		{
			users.GET("", userController.ListUsers)
			users.POST("", userController.CreateUser)
			users.PUT("/:id/role", userController.ChangeRole)
			users.DELETE("/:id", userController.DeleteUser)
		}
	}
}
