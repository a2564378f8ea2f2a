package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/HenryFerreira/bedelias-backend/internal/app/controllers"
	"github.com/HenryFerreira/bedelias-backend/internal/app/models"
	"github.com/HenryFerreira/bedelias-backend/internal/app/models/dto"
	"github.com/HenryFerreira/bedelias-backend/internal/middleware"
	"github.com/HenryFerreira/bedelias-backend/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	materiaController *controllers.MateriaController,
	historialController *controllers.HistorialController,
	elegibilidadController *controllers.ElegibilidadController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/usuarios/me", authController.GetProfile)

		// Catalog routes. Reads are open to every authenticated user,
		// mutations require the administrator role.
		materias := authenticated.Group("/materias")
		{
			materias.GET("", materiaController.ListarMaterias)
			materias.GET("/:id", materiaController.ObtenerMateria)

			materiasAdminProtected := materias.Group("")
			materiasAdminProtected.Use(authMiddleware.RoleRequired(models.RolAdministrador))
			{
				materiasAdminProtected.POST("", materiaController.CrearMateria)
				materiasAdminProtected.PUT("/:id", materiaController.ActualizarMateria)
				materiasAdminProtected.DELETE("/:id", materiaController.EliminarMateria)
			}
		}

		// Student-scoped routes. Students only reach their own records,
		// administrators reach everyone's.
		estudiantes := authenticated.Group("/estudiantes/:id")
		estudiantes.Use(authMiddleware.SelfOrAdmin("id"))
		{
			estudiantes.GET("/historial", historialController.ListarHistorial)
			estudiantes.GET("/elegibilidad", elegibilidadController.ComputarElegibilidad)
			estudiantes.POST("/verificacion-seleccion", elegibilidadController.VerificarSeleccion)

			historialAdminProtected := estudiantes.Group("")
			historialAdminProtected.Use(authMiddleware.RoleRequired(models.RolAdministrador))
			{
				historialAdminProtected.PUT("/historial", historialController.ActualizarEntrada)
			}
		}

		// Domain event stream
		authenticated.GET("/ws", wsHandler.HandleConnection)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})
}
