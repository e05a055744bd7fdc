package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"devflow-backend/internal/domains/user/model"
	"devflow-backend/internal/domains/user/service"
	"devflow-backend/internal/shared/response"
)

// =====================================================
// USER HANDLER
// =====================================================

type UserHandler struct {
	userService service.ServiceInterface
}

func NewUserHandler(userService service.ServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser provisions a user on first sign-in
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create user")
		return
	}

	response.Success(c, http.StatusCreated, user)
}

// GetUserByAuthID resolves a user by external identity
// GET /api/v1/users/:auth_id
func (h *UserHandler) GetUserByAuthID(c *gin.Context) {
	user, err := h.userService.GetUserByAuthID(c.Request.Context(), c.Param("auth_id"))
	if err != nil {
		h.respondError(c, err, "Failed to get user")
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UpdateUser overwrites the mutable profile fields
// PUT /api/v1/users/:auth_id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("auth_id"), req)
	if err != nil {
		h.respondError(c, err, "Failed to update user")
		return
	}

	response.Success(c, http.StatusOK, user)
}

// DeleteUser removes a user and everything they own
// DELETE /api/v1/users/:auth_id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	user, err := h.userService.DeleteUser(c.Request.Context(), c.Param("auth_id"))
	if err != nil {
		h.respondError(c, err, "Failed to delete user")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": user.ID})
}

// GetAllUsers lists community members with search, filter and pagination
// GET /api/v1/users
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	var req model.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.userService.GetAllUsers(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to list users")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Users, &response.Meta{
		Page:   req.Page,
		Limit:  req.PageSize,
		IsNext: result.IsNext,
	})
}

// ToggleSaveQuestion flips a question's membership in the saved set
// POST /api/v1/users/saved/toggle
func (h *UserHandler) ToggleSaveQuestion(c *gin.Context) {
	var req model.ToggleSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	saved, err := h.userService.ToggleSaveQuestion(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to toggle saved question")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"saved": saved})
}

// GetSavedQuestions lists the user's saved questions
// GET /api/v1/users/:auth_id/saved
func (h *UserHandler) GetSavedQuestions(c *gin.Context) {
	var req model.GetSavedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.userService.GetSavedQuestions(c.Request.Context(), c.Param("auth_id"), req)
	if err != nil {
		h.respondError(c, err, "Failed to list saved questions")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Questions, &response.Meta{
		Page:   req.Page,
		Limit:  req.PageSize,
		IsNext: result.IsNext,
	})
}

// GetUserInfo returns the profile payload with content counts
// GET /api/v1/users/:auth_id/info
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	info, err := h.userService.GetUserInfo(c.Request.Context(), c.Param("auth_id"))
	if err != nil {
		h.respondError(c, err, "Failed to get user info")
		return
	}

	response.Success(c, http.StatusOK, info)
}

// respondError logs at the request boundary and maps domain errors to HTTP.
func (h *UserHandler) respondError(c *gin.Context, err error, msg string) {
	log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg(msg)

	var uErr *model.UserError
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeUserNotFound, "User not found")
	case errors.Is(err, model.ErrDuplicateUser):
		response.Conflict(c, "User already exists")
	case errors.As(err, &uErr) && uErr.Code == model.ErrCodeInvalidInput:
		response.ErrorResponse(c, http.StatusBadRequest, uErr.Code, uErr.Error())
	default:
		response.InternalServerError(c, msg)
	}
}
