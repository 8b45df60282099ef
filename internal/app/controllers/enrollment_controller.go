package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/coursehub/internal/app/models/dto"
	"github.com/emre/coursehub/internal/app/services"
	"github.com/emre/coursehub/internal/middleware"
)

// EnrollmentController handles enrollment operations
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// Enroll records the authenticated student's enrollment in a course
// @Summary Enroll in a course
// @Description Enrolls the authenticated student in the course. Enrolling twice is rejected.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrolled"
// @Failure 400 {object} dto.ErrorResponse "Already enrolled or own course"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Insufficient role"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx.Request.Context(), userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.EnrollmentResponse{
			EnrollmentID: enrollment.ID,
			CourseID:     enrollment.CourseID,
			Message:      "Successfully enrolled",
		},
	})
}

// ListMyEnrollments returns the authenticated student's courses
// @Summary List own enrollments
// @Description Returns the courses the authenticated student is enrolled in
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Enrolled courses"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Insufficient role"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/myenrollments [get]
func (c *EnrollmentController) ListMyEnrollments(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	courses, err := c.enrollmentService.ListForStudent(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: courses,
	})
}
