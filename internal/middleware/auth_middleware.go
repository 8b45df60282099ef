package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/coursehub/internal/app/models"
	"github.com/emre/coursehub/internal/app/models/dto"
	"github.com/emre/coursehub/internal/app/repositories"
	"github.com/emre/coursehub/internal/pkg/apperrors"
	"github.com/emre/coursehub/internal/pkg/auth"
	"github.com/emre/coursehub/internal/pkg/logger"
)

// Context keys set by JWTAuth for downstream handlers
const (
	ContextUserID   = "userID"
	ContextEmail    = "email"
	ContextRoleType = "roleType"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService     *auth.JWTService
	userRepo       repositories.IUserRepository
	resolveTimeout time.Duration
}

// NewAuthMiddleware creates a new AuthMiddleware. resolveTimeout bounds the
// identity lookup done on every authenticated request.
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo repositories.IUserRepository, resolveTimeout time.Duration) *AuthMiddleware {
	if resolveTimeout <= 0 {
		resolveTimeout = 5 * time.Second
	}
	return &AuthMiddleware{
		jwtService:     jwtService,
		userRepo:       userRepo,
		resolveTimeout: resolveTimeout,
	}
}

// JWTAuth validates the bearer token and resolves the acting identity.
// The user record is re-read on every request so a deleted account or a
// role change takes effect immediately, not at token expiry.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Invalid token format")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"

			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			} else if errors.Is(err, auth.ErrInvalidFormat) {
				errorDetails = "Invalid token format"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
			errorDetail = errorDetail.WithDetails(errorDetails)
			errorDetail = errorDetail.WithSeverity(dto.ErrorSeverityError)

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), m.resolveTimeout)
		defer cancel()

		user, err := m.userRepo.GetByID(ctx, claims.UserID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrUserNotFound) {
				logger.Error().Err(err).Int64("userID", claims.UserID).Msg("Failed to resolve token subject")
			}
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication failed")
			errorDetail = errorDetail.WithDetails("Token subject no longer valid")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextEmail, user.Email)
		c.Set(ContextRoleType, user.RoleType)

		c.Next()
	}
}

// RoleRequired allows the request through only when the resolved identity
// holds one of the given roles. It must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	allowed := make([]string, len(roles))
	for i, role := range roles {
		allowed[i] = string(role)
	}
	requiredRoles := strings.Join(allowed, ", ")

	return func(c *gin.Context) {
		role, exists := c.Get(ContextRoleType)
		if !exists {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			errorDetail = errorDetail.WithDetails("User role not found")

			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		roleType, ok := role.(models.RoleType)
		if ok {
			for _, allowed := range roles {
				if roleType == allowed {
					c.Next()
					return
				}
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
		errorDetail = errorDetail.WithDetails("This operation requires one of the following roles: " + requiredRoles)
		errorDetail = errorDetail.WithSeverity(dto.ErrorSeverityError)

		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}

// GetUserID reads the acting user id set by JWTAuth
func GetUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	userID, ok := value.(int64)
	return userID, ok
}
