package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emre/coursehub/internal/app/controllers"
	"github.com/emre/coursehub/internal/app/models"
	"github.com/emre/coursehub/internal/app/models/dto"
	"github.com/emre/coursehub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	userController *controllers.UserController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Public catalog routes ---
	// Browsing the catalog requires no account; the fixed paths must be
	// registered before the :id routes so gin does not shadow them.
	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.GET("/:id", courseController.GetCourse)
		courses.GET("/:id/lessons", courseController.ListLessons)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.GetProfile)

		coursesProtected := authenticated.Group("/courses")
		{
			// Authoring routes for instructors and admins
			authoring := coursesProtected.Group("")
			authoring.Use(authMiddleware.RoleRequired(models.RoleInstructor, models.RoleAdmin))
			{
				authoring.GET("/mycourses", courseController.ListMyCourses)
				authoring.POST("", courseController.CreateCourse)
				authoring.PUT("/:id", courseController.UpdateCourse)
				authoring.DELETE("/:id", courseController.DeleteCourse)
				authoring.POST("/:id/lessons", courseController.AddLesson)
				authoring.PUT("/:id/lessons/:lessonId", courseController.UpdateLesson)
				authoring.DELETE("/:id/lessons/:lessonId", courseController.DeleteLesson)
			}

			// Enrollment routes for students
			enrolling := coursesProtected.Group("")
			enrolling.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				enrolling.GET("/myenrollments", enrollmentController.ListMyEnrollments)
				enrolling.POST("/:id/enroll", enrollmentController.Enroll)
			}
		}

		// Admin-only user management
		users := authenticated.Group("/users")
		users.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			users.GET("", userController.ListUsers)
			users.GET("/:id", userController.GetUser)
			users.PUT("/:id", userController.UpdateUser)
			users.DELETE("/:id", userController.DeleteUser)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
