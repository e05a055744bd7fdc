package service

import (
	"context"

	"devflow-backend/internal/domains/user/model"
)

// ServiceInterface defines user business operations
type ServiceInterface interface {
	CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	GetUserByAuthID(ctx context.Context, authID string) (*model.User, error)
	UpdateUser(ctx context.Context, authID string, req model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, authID string) (*model.User, error)
	GetAllUsers(ctx context.Context, req model.ListUsersRequest) (*model.UserListResponse, error)
	ToggleSaveQuestion(ctx context.Context, req model.ToggleSaveRequest) (bool, error)
	GetSavedQuestions(ctx context.Context, authID string, req model.GetSavedRequest) (*model.SavedQuestionsResponse, error)
	GetUserInfo(ctx context.Context, authID string) (*model.UserInfo, error)
}
