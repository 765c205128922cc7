package controller

import (
	"learnpath_backend/internal/model"
	"learnpath_backend/internal/service"
	"learnpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// swagger:model ContentResponse
type ContentResponse struct {
	Message string               `json:"message"`
	Content *model.ModuleContent `json:"content"`
}

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// Generate godoc
// @Summary Get or generate lesson content for a topic
// @Description Stored content is returned as is (200). Otherwise it is generated and stored (201).
// @Tags module-content
// @Accept  json
// @Produce  json
// @Param   body body service.TopicRequest true "Topic"
// @Success 200 {object} ContentResponse "Already stored"
// @Success 201 {object} ContentResponse "Generated"
// @Failure 400 {object} util.ErrorResponse
// @Failure 502 {object} util.ErrorResponse
// @Security ApiKeyAuth
// @Router /module-content/generate [post]
func (c *ContentController) Generate(ctx *gin.Context) {
	var req service.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content, created, err := c.ContentService.GetOrGenerate(ctx.Request.Context(), req.Topic)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	if created {
		util.Created(ctx, ContentResponse{Message: "Content generated successfully", Content: content})
		return
	}
	util.Success(ctx, ContentResponse{Message: "Content retrieved from database", Content: content})
}

// Get godoc
// @Summary Get stored lesson content
// @Tags module-content
// @Produce  json
// @Param   topic path string true "Topic"
// @Success 200 {object} model.ModuleContent
// @Failure 404 {object} util.ErrorResponse
// @Security ApiKeyAuth
// @Router /module-content/{topic} [get]
func (c *ContentController) Get(ctx *gin.Context) {
	content, err := c.ContentService.Get(ctx.Request.Context(), ctx.Param("topic"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, content)
}
