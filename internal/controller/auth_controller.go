package controller

import (
	"learnpath_backend/internal/service"
	"learnpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Signup godoc
// @Summary Register a new user
// @Description Creates the account and returns it with a session token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body service.SignupRequest true "Account details"
// @Success 201 {object} service.AuthResponse
// @Failure 400 {object} util.ErrorResponse "Invalid input or username/email taken"
// @Failure 500 {object} util.ErrorResponse
// @Router /user/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req service.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Signup(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, resp)
}

// Signin godoc
// @Summary Sign in
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body service.SigninRequest true "Credentials"
// @Success 200 {object} service.AuthResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 401 {object} util.ErrorResponse "Invalid username or password"
// @Router /user/signin [post]
func (c *AuthController) Signin(ctx *gin.Context) {
	var req service.SigninRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Signin(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// currentUserID returns the authenticated user's ID. It writes a 401 and
// returns false when the request carries no user.
func currentUserID(ctx *gin.Context) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return 0, false
	}
	return claims.UserID, true
}
