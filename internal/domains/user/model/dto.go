package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	questionModel "devflow-backend/internal/domains/question/model"
)

// ========================================
// USER REQUEST DTOs
// ========================================

// CreateUserRequest provisions a user on first sign-in. The identity itself
// comes from the external auth provider; we only mirror its profile fields.
type CreateUserRequest struct {
	AuthID   string `json:"auth_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Picture  string `json:"picture"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AuthID, validation.Required.Error("auth id is required")),
		validation.Field(&r.Name, validation.Required.Error("name is required")),
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 50).Error("username must be 3-50 characters"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("email must be valid"),
		),
	)
}

// UpdateUserRequest overwrites the mutable profile fields.
type UpdateUserRequest struct {
	Name             string  `json:"name" binding:"required"`
	Username         string  `json:"username" binding:"required"`
	Bio              *string `json:"bio"`
	Location         *string `json:"location"`
	PortfolioWebsite *string `json:"portfolio_website"`
	Path             string  `json:"path"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("name is required")),
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 50).Error("username must be 3-50 characters"),
		),
	)
}

// ListUsersRequest drives the community page listing.
type ListUsersRequest struct {
	SearchQuery string `form:"q"`
	Filter      string `form:"filter"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

func (r ListUsersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Filter,
			validation.In(FilterNewUsers, FilterOldUsers, FilterTopContributors, "").
				Error("unknown filter"),
		),
	)
}

// ToggleSaveRequest flips a question's membership in the user's saved set.
type ToggleSaveRequest struct {
	UserID     uuid.UUID `json:"user_id" binding:"required"`
	QuestionID uuid.UUID `json:"question_id" binding:"required"`
	Path       string    `json:"path"`
}

func (r ToggleSaveRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID,
			validation.Required.Error("user is required"),
			validation.By(notNilUUID),
		),
		validation.Field(&r.QuestionID,
			validation.Required.Error("question is required"),
			validation.By(notNilUUID),
		),
	)
}

// GetSavedRequest drives the saved-questions collection listing.
type GetSavedRequest struct {
	SearchQuery string `form:"q"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

// UserListResponse pairs a page of users with the isNext flag.
type UserListResponse struct {
	Users  []*User `json:"users"`
	IsNext bool    `json:"is_next"`
}

// SavedQuestionsResponse is the collection page payload.
type SavedQuestionsResponse struct {
	Questions []*questionModel.QuestionSummary `json:"questions"`
	IsNext    bool                             `json:"is_next"`
}

func notNilUUID(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return validation.NewError("validation_uuid", "must be a valid id")
	}
	return nil
}
