package controller

import (
	"learnpath_backend/internal/service"
	"learnpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary Current user's profile
// @Tags user
// @Produce  json
// @Success 200 {object} model.User
// @Failure 401 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	user, err := c.UserService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

// UpdateProfile godoc
// @Summary Update profile fields
// @Description Only the fields present in the body are changed
// @Tags user
// @Accept  json
// @Produce  json
// @Param   body body service.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} model.User
// @Failure 400 {object} util.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(ctx.Request.Context(), userID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

// ChangePassword godoc
// @Summary Change password
// @Tags user
// @Accept  json
// @Produce  json
// @Param   body body service.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} util.MessageResponse
// @Failure 400 {object} util.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.ChangePassword(ctx.Request.Context(), userID, req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Message(ctx, "Password updated successfully")
}

// DeleteAccount godoc
// @Summary Delete the current account
// @Description Roadmaps the user created are kept
// @Tags user
// @Produce  json
// @Success 200 {object} util.MessageResponse
// @Failure 404 {object} util.ErrorResponse
// @Security ApiKeyAuth
// @Router /user [delete]
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.UserService.DeleteAccount(ctx.Request.Context(), userID); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Message(ctx, "Account deleted successfully")
}

// TouchActivity godoc
// @Summary Record activity
// @Description Sets lastActive to now
// @Tags user
// @Produce  json
// @Success 200 {object} model.User
// @Security ApiKeyAuth
// @Router /user/activity [put]
func (c *UserController) TouchActivity(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	user, err := c.UserService.TouchActivity(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, user)
}
