package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/jobly/internal/app/models/dto"
	"github.com/yigit/jobly/internal/app/services"
	"github.com/yigit/jobly/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Token handles login
// @Summary Log in
// @Description Exchanges a username and password for a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Invalid username/password"
// @Router /auth/token [post]
func (c *AuthController) Token(ctx *gin.Context) {
	var req dto.TokenRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		fail(ctx, err)
		return
	}

	token, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Register handles user registration
// @Summary Register a new user
// @Description Creates a non-admin account and returns a token for it
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration information"
// @Success 201 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or duplicate username"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		c.logger.Debug().Err(err).Msg("Invalid registration request payload")
		fail(ctx, err)
		return
	}

	token, err := c.authService.Register(ctx.Request.Context(), req.ToModel())
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.TokenResponse{Token: token})
}
