package controller

import (
	"learnpath_backend/internal/model"
	"learnpath_backend/internal/service"
	"learnpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// swagger:model QuizResponse
type QuizResponse struct {
	Message string      `json:"message"`
	Quiz    *model.Quiz `json:"quiz"`
}

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// Generate godoc
// @Summary Get or generate a quiz for a topic
// @Tags quiz
// @Accept  json
// @Produce  json
// @Param   body body service.TopicRequest true "Topic"
// @Success 200 {object} QuizResponse "Already stored"
// @Success 201 {object} QuizResponse "Generated"
// @Failure 400 {object} util.ErrorResponse
// @Failure 502 {object} util.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz/generate [post]
func (c *QuizController) Generate(ctx *gin.Context) {
	var req service.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, created, err := c.QuizService.GetOrGenerate(ctx.Request.Context(), req.Topic)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	if created {
		util.Created(ctx, QuizResponse{Message: "Quiz generated successfully", Quiz: quiz})
		return
	}
	util.Success(ctx, QuizResponse{Message: "Quiz retrieved from database", Quiz: quiz})
}

// Get godoc
// @Summary Get a stored quiz
// @Tags quiz
// @Produce  json
// @Param   topic path string true "Topic"
// @Success 200 {object} model.Quiz
// @Failure 404 {object} util.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz/{topic} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	quiz, err := c.QuizService.Get(ctx.Request.Context(), ctx.Param("topic"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}
