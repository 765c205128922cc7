package controller

import (
	"learnpath_backend/internal/service"
	"learnpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RoadmapController struct {
	RoadmapService *service.RoadmapService
}

func NewRoadmapController(roadmapService *service.RoadmapService) *RoadmapController {
	return &RoadmapController{RoadmapService: roadmapService}
}

// Generate godoc
// @Summary Generate a roadmap
// @Description Asks the generation service for a course outline and stores it for the caller.
// @Description Profile fields left empty are taken from the caller's stored profile.
// @Tags roadmap
// @Accept  json
// @Produce  json
// @Param   body body service.GenerateRoadmapRequest true "Course title and learner profile"
// @Success 201 {object} model.Roadmap
// @Failure 400 {object} util.ErrorResponse
// @Failure 502 {object} util.ErrorResponse "Generation service unreachable or malformed reply"
// @Security ApiKeyAuth
// @Router /roadmap [post]
func (c *RoadmapController) Generate(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.GenerateRoadmapRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	roadmap, err := c.RoadmapService.Generate(ctx.Request.Context(), userID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, roadmap)
}

// Import godoc
// @Summary Create a roadmap from an outline
// @Tags roadmap
// @Accept  json
// @Produce  json
// @Param   body body service.RoadmapOutline true "Roadmap outline"
// @Success 201 {object} model.Roadmap
// @Failure 400 {object} util.ErrorResponse
// @Security ApiKeyAuth
// @Router /roadmap/import [post]
func (c *RoadmapController) Import(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var outline service.RoadmapOutline
	if err := ctx.ShouldBindJSON(&outline); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	roadmap, err := c.RoadmapService.Import(ctx.Request.Context(), userID, outline)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, roadmap)
}

// List godoc
// @Summary List the caller's roadmaps
// @Tags roadmap
// @Produce  json
// @Success 200 {array} model.Roadmap
// @Security ApiKeyAuth
// @Router /roadmap [get]
func (c *RoadmapController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	roadmaps, err := c.RoadmapService.List(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, roadmaps)
}

// Get godoc
// @Summary Get one roadmap
// @Description Roadmaps owned by other users are reported as not found
// @Tags roadmap
// @Produce  json
// @Param   id path int true "Roadmap ID"
// @Success 200 {object} model.Roadmap
// @Failure 404 {object} util.ErrorResponse
// @Security ApiKeyAuth
// @Router /roadmap/{id} [get]
func (c *RoadmapController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	roadmapID := util.MustParseUint(ctx.Param("id"))
	if roadmapID == 0 {
		util.NotFound(ctx, util.ErrRoadmapNotFound.Error())
		return
	}

	roadmap, err := c.RoadmapService.Get(ctx.Request.Context(), userID, roadmapID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, roadmap)
}

// UpdateProgress godoc
// @Summary Mark a topic complete
// @Description Idempotent. Returns the module's and the roadmap's progress after the update.
// @Tags roadmap
// @Accept  json
// @Produce  json
// @Param   body body service.ProgressRequest true "Roadmap, module and topic"
// @Success 200 {object} service.ProgressResult
// @Failure 400 {object} util.ErrorResponse "Topic is not part of the module"
// @Failure 404 {object} util.ErrorResponse
// @Failure 409 {object} util.ErrorResponse "Concurrent update, retry"
// @Security ApiKeyAuth
// @Router /roadmap/progress [post]
func (c *RoadmapController) UpdateProgress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.RoadmapService.MarkTopicComplete(ctx.Request.Context(), userID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
