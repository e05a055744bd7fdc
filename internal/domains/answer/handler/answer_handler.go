package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"devflow-backend/internal/domains/answer/model"
	"devflow-backend/internal/domains/answer/service"
	"devflow-backend/internal/shared/response"
)

// =====================================================
// ANSWER HANDLER
// =====================================================

type AnswerHandler struct {
	answerService service.ServiceInterface
}

func NewAnswerHandler(answerService service.ServiceInterface) *AnswerHandler {
	return &AnswerHandler{
		answerService: answerService,
	}
}

// CreateAnswer posts a new answer to a question
// POST /api/v1/answers
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	var req model.CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	answer, err := h.answerService.CreateAnswer(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create answer")
		return
	}

	response.Success(c, http.StatusCreated, answer)
}

// GetAnswers lists a question's answers with sort and pagination
// GET /api/v1/questions/:id/answers
func (h *AnswerHandler) GetAnswers(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid question ID")
		return
	}

	var req model.ListAnswersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.answerService.GetAnswers(c.Request.Context(), questionID, req)
	if err != nil {
		h.respondError(c, err, "Failed to list answers")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Answers, &response.Meta{
		Page:   req.Page,
		Limit:  req.PageSize,
		IsNext: result.IsNext,
	})
}

// UpvoteAnswer toggles the caller's upvote
// POST /api/v1/answers/:id/upvote
func (h *AnswerHandler) UpvoteAnswer(c *gin.Context) {
	h.voteAnswer(c, h.answerService.UpvoteAnswer)
}

// DownvoteAnswer toggles the caller's downvote
// POST /api/v1/answers/:id/downvote
func (h *AnswerHandler) DownvoteAnswer(c *gin.Context) {
	h.voteAnswer(c, h.answerService.DownvoteAnswer)
}

// DeleteAnswer removes an answer with its votes and interactions
// DELETE /api/v1/answers/:id
func (h *AnswerHandler) DeleteAnswer(c *gin.Context) {
	answerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid answer ID")
		return
	}

	path := c.Query("path")

	if err := h.answerService.DeleteAnswer(c.Request.Context(), answerID, path); err != nil {
		h.respondError(c, err, "Failed to delete answer")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": answerID})
}

// =====================================================
// HELPERS
// =====================================================

func (h *AnswerHandler) voteAnswer(
	c *gin.Context,
	vote func(ctx context.Context, answerID uuid.UUID, req model.VoteRequest) error,
) {
	answerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid answer ID")
		return
	}

	var req model.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := vote(c.Request.Context(), answerID, req); err != nil {
		h.respondError(c, err, "Failed to apply vote")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": answerID})
}

// respondError logs at the request boundary and maps domain errors to HTTP.
func (h *AnswerHandler) respondError(c *gin.Context, err error, msg string) {
	log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg(msg)

	var aErr *model.AnswerError
	switch {
	case errors.Is(err, model.ErrAnswerNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeAnswerNotFound, "Answer not found")
	case errors.As(err, &aErr) && aErr.Code == model.ErrCodeQuestionNotFound:
		response.ErrorResponse(c, http.StatusNotFound, aErr.Code, "Question not found")
	case errors.As(err, &aErr) && aErr.Code == model.ErrCodeInvalidInput:
		response.ErrorResponse(c, http.StatusBadRequest, aErr.Code, aErr.Error())
	default:
		response.InternalServerError(c, msg)
	}
}
