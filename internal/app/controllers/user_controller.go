package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	authz "github.com/yigit/jobly/internal/app/auth"
	"github.com/yigit/jobly/internal/app/models/dto"
	"github.com/yigit/jobly/internal/app/services"
	"github.com/yigit/jobly/internal/middleware"
)

// UserController handles user and application endpoints
type UserController struct {
	userService services.UserService
	authService services.AuthService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, authService services.AuthService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		authService: authService,
		logger:      logger,
	}
}

// Create lets an admin add an account, possibly another admin
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User"
// @Success 201 {object} dto.CreatedUserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or duplicate username"
// @Failure 401 {object} dto.ErrorResponse "Admin required"
// @Security BearerAuth
// @Router /users [post]
func (c *UserController) Create(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		fail(ctx, err)
		return
	}

	user, err := c.userService.Register(ctx.Request.Context(), req.ToModel())
	if err != nil {
		fail(ctx, err)
		return
	}

	token, err := c.authService.TokenFor(user)
	if err != nil {
		fail(ctx, err)
		return
	}

	c.logger.Info().Str("username", user.Username).Bool("isAdmin", user.IsAdmin).Msg("User created by admin")
	ctx.JSON(http.StatusCreated, dto.CreatedUserResponse{User: user, Token: token})
}

// List returns every user
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} dto.UsersResponse
// @Failure 401 {object} dto.ErrorResponse "Admin required"
// @Security BearerAuth
// @Router /users [get]
func (c *UserController) List(ctx *gin.Context) {
	users, err := c.userService.FindAll(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.UsersResponse{Users: users})
}

// Get returns a user with the ids of the jobs they applied to
// @Summary Get a user
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.UserDetailResponse
// @Failure 401 {object} dto.ErrorResponse "Admin or same user required"
// @Failure 404 {object} dto.ErrorResponse "No user"
// @Security BearerAuth
// @Router /users/{username} [get]
func (c *UserController) Get(ctx *gin.Context) {
	user, err := c.userService.Get(ctx.Request.Context(), ctx.Param("username"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.UserDetailResponse{User: user})
}

// Update patches a user. Only admins may change the admin flag.
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Admin or same user required"
// @Failure 404 {object} dto.ErrorResponse "No user"
// @Security BearerAuth
// @Router /users/{username} [patch]
func (c *UserController) Update(ctx *gin.Context) {
	var req dto.UpdateUserRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		fail(ctx, err)
		return
	}

	if req.IsAdmin != nil && !authz.CanGrantAdmin(middleware.CurrentIdentity(ctx)) {
		fail(ctx, middleware.ErrUnauthorized)
		return
	}

	user, err := c.userService.Update(ctx.Request.Context(), ctx.Param("username"), req.ToModel())
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.UserResponse{User: user})
}

// Remove deletes a user and their applications
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.DeletedResponse
// @Failure 401 {object} dto.ErrorResponse "Admin or same user required"
// @Failure 404 {object} dto.ErrorResponse "No user"
// @Security BearerAuth
// @Router /users/{username} [delete]
func (c *UserController) Remove(ctx *gin.Context) {
	username := ctx.Param("username")
	if err := c.userService.Remove(ctx.Request.Context(), username); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.DeletedResponse{Deleted: username})
}

// Apply records an application of the user to a job
// @Summary Apply to a job
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Param id path int true "Job ID"
// @Success 201 {object} dto.AppliedResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid id or already applied"
// @Failure 401 {object} dto.ErrorResponse "Admin or same user required"
// @Failure 404 {object} dto.ErrorResponse "No user or no job"
// @Security BearerAuth
// @Router /users/{username}/jobs/{id} [post]
func (c *UserController) Apply(ctx *gin.Context) {
	jobID, err := int64Param(ctx, "id")
	if err != nil {
		fail(ctx, err)
		return
	}

	app, err := c.userService.ApplyToJob(ctx.Request.Context(), ctx.Param("username"), jobID)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.AppliedResponse{Applied: app.JobID})
}
