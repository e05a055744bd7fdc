package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"devflow-backend/internal/domains/tag/model"
	"devflow-backend/internal/domains/tag/service"
	"devflow-backend/internal/shared/response"
)

// =====================================================
// TAG HANDLER
// =====================================================

type TagHandler struct {
	tagService service.ServiceInterface
}

func NewTagHandler(tagService service.ServiceInterface) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

// GetAllTags lists tags with search, filter and pagination
// GET /api/v1/tags
func (h *TagHandler) GetAllTags(c *gin.Context) {
	var req model.ListTagsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.tagService.GetAllTags(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to list tags")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Tags, &response.Meta{
		Page:   req.Page,
		Limit:  req.PageSize,
		IsNext: result.IsNext,
	})
}

// GetQuestionsByTag lists a tag's questions, newest first
// GET /api/v1/tags/:id/questions
func (h *TagHandler) GetQuestionsByTag(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tag ID")
		return
	}

	var req model.QuestionsByTagRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.tagService.GetQuestionsByTag(c.Request.Context(), tagID, req)
	if err != nil {
		h.respondError(c, err, "Failed to list tag questions")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetTopPopularTags returns the tags with the most questions
// GET /api/v1/tags/popular
func (h *TagHandler) GetTopPopularTags(c *gin.Context) {
	tags, err := h.tagService.GetTopPopularTags(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list popular tags")
		return
	}

	response.Success(c, http.StatusOK, tags)
}

// GetTopInteractedTags returns the tags a user interacts with most
// GET /api/v1/tags/top-interacted?user_id=...&limit=...
func (h *TagHandler) GetTopInteractedTags(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	tags, err := h.tagService.GetTopInteractedTags(c.Request.Context(), userID, limit)
	if err != nil {
		h.respondError(c, err, "Failed to list interacted tags")
		return
	}

	response.Success(c, http.StatusOK, tags)
}

// respondError logs at the request boundary and maps domain errors to HTTP.
func (h *TagHandler) respondError(c *gin.Context, err error, msg string) {
	log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg(msg)

	var tErr *model.TagError
	switch {
	case errors.Is(err, model.ErrTagNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeTagNotFound, "Tag not found")
	case errors.Is(err, model.ErrUserNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeUserNotFound, "User not found")
	case errors.As(err, &tErr) && tErr.Code == model.ErrCodeInvalidInput:
		response.ErrorResponse(c, http.StatusBadRequest, tErr.Code, tErr.Error())
	default:
		response.InternalServerError(c, msg)
	}
}
