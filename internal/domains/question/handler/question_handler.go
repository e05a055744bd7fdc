package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"devflow-backend/internal/domains/question/model"
	"devflow-backend/internal/domains/question/service"
	"devflow-backend/internal/shared/response"
)

// =====================================================
// QUESTION HANDLER
// =====================================================

type QuestionHandler struct {
	questionService service.ServiceInterface
}

func NewQuestionHandler(questionService service.ServiceInterface) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

// CreateQuestion creates a new question with its tags
// POST /api/v1/questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req model.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	detail, err := h.questionService.CreateQuestion(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create question")
		return
	}

	response.Success(c, http.StatusCreated, detail)
}

// EditQuestion overwrites a question's title and content
// PUT /api/v1/questions/:id
func (h *QuestionHandler) EditQuestion(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid question ID")
		return
	}

	var req model.EditQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.questionService.EditQuestion(c.Request.Context(), questionID, req); err != nil {
		h.respondError(c, err, "Failed to edit question")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": questionID})
}

// DeleteQuestion removes a question and everything hanging off it
// DELETE /api/v1/questions/:id
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid question ID")
		return
	}

	path := c.Query("path")

	if err := h.questionService.DeleteQuestion(c.Request.Context(), questionID, path); err != nil {
		h.respondError(c, err, "Failed to delete question")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": questionID})
}

// GetQuestions lists questions with search, filter and pagination
// GET /api/v1/questions
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	var req model.ListQuestionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.questionService.GetQuestions(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to list questions")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Questions, &response.Meta{
		Page:   req.Page,
		Limit:  req.PageSize,
		IsNext: result.IsNext,
	})
}

// GetQuestionByID returns the full question page payload
// GET /api/v1/questions/:id
func (h *QuestionHandler) GetQuestionByID(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid question ID")
		return
	}

	detail, err := h.questionService.GetQuestionByID(c.Request.Context(), questionID)
	if err != nil {
		h.respondError(c, err, "Failed to get question")
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// GetHotQuestions returns the top questions by views then upvotes
// GET /api/v1/questions/hot
func (h *QuestionHandler) GetHotQuestions(c *gin.Context) {
	questions, err := h.questionService.GetHotQuestions(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list hot questions")
		return
	}

	response.Success(c, http.StatusOK, questions)
}

// UpvoteQuestion toggles the caller's upvote
// POST /api/v1/questions/:id/upvote
func (h *QuestionHandler) UpvoteQuestion(c *gin.Context) {
	h.voteQuestion(c, h.questionService.UpvoteQuestion)
}

// DownvoteQuestion toggles the caller's downvote
// POST /api/v1/questions/:id/downvote
func (h *QuestionHandler) DownvoteQuestion(c *gin.Context) {
	h.voteQuestion(c, h.questionService.DownvoteQuestion)
}

// ViewQuestion records a view for the question
// POST /api/v1/questions/:id/view
func (h *QuestionHandler) ViewQuestion(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid question ID")
		return
	}

	var req model.ViewQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.questionService.ViewQuestion(c.Request.Context(), questionID, req.UserID); err != nil {
		h.respondError(c, err, "Failed to record view")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"viewed": questionID})
}

// =====================================================
// HELPERS
// =====================================================

func (h *QuestionHandler) voteQuestion(
	c *gin.Context,
	vote func(ctx context.Context, questionID uuid.UUID, req model.VoteRequest) error,
) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid question ID")
		return
	}

	var req model.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := vote(c.Request.Context(), questionID, req); err != nil {
		h.respondError(c, err, "Failed to apply vote")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": questionID})
}

// respondError logs at the request boundary and maps domain errors to HTTP.
func (h *QuestionHandler) respondError(c *gin.Context, err error, msg string) {
	log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg(msg)

	var qErr *model.QuestionError
	switch {
	case errors.Is(err, model.ErrQuestionNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeQuestionNotFound, "Question not found")
	case errors.As(err, &qErr) && qErr.Code == model.ErrCodeInvalidInput:
		response.ErrorResponse(c, http.StatusBadRequest, qErr.Code, qErr.Error())
	default:
		response.InternalServerError(c, msg)
	}
}
