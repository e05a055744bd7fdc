package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	questionModel "devflow-backend/internal/domains/question/model"
	"devflow-backend/internal/domains/user/model"
	"devflow-backend/internal/domains/user/repository"
	"devflow-backend/internal/shared/pagination"
	"devflow-backend/pkg/revalidate"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type userService struct {
	userRepo repository.UserRepository
	signaler revalidate.Signaler
}

func NewUserService(userRepo repository.UserRepository, signaler revalidate.Signaler) ServiceInterface {
	return &userService{
		userRepo: userRepo,
		signaler: signaler,
	}
}

// =====================================================
// PROVISIONING
// =====================================================

func (s *userService) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	// Step 2: Insert the user
	user := &model.User{
		ID:       uuid.New(),
		AuthID:   req.AuthID,
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Picture:  req.Picture,
		JoinedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicateUser) {
			return nil, model.NewDuplicateUserError()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *userService) GetUserByAuthID(ctx context.Context, authID string) (*model.User, error) {
	user, err := s.userRepo.GetByAuthID(ctx, authID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// =====================================================
// PROFILE
// =====================================================

func (s *userService) UpdateUser(ctx context.Context, authID string, req model.UpdateUserRequest) (*model.User, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	// Step 2: Overwrite the mutable profile fields
	if err := s.userRepo.Update(ctx, authID, req); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	// Step 3: Signal the rendering layer
	s.signaler.Revalidate(ctx, req.Path)

	return s.userRepo.GetByAuthID(ctx, authID)
}

func (s *userService) DeleteUser(ctx context.Context, authID string) (*model.User, error) {
	user, err := s.userRepo.Delete(ctx, authID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return user, nil
}

// =====================================================
// LISTINGS
// =====================================================

func (s *userService) GetAllUsers(ctx context.Context, req model.ListUsersRequest) (*model.UserListResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	// Step 2: Normalize pagination
	params := pagination.Params{Page: req.Page, PageSize: req.PageSize}
	params.Normalize()

	// Step 3: Query users with the requested ordering
	users, total, err := s.userRepo.List(ctx, model.ListOptions{
		SearchQuery: req.SearchQuery,
		Filter:      req.Filter,
		Skip:        params.Skip(),
		Limit:       params.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &model.UserListResponse{
		Users:  users,
		IsNext: pagination.IsNext(total, params.Skip(), len(users)),
	}, nil
}

// =====================================================
// SAVED QUESTIONS
// =====================================================

// ToggleSaveQuestion flips the question's membership in the user's saved set
// and reports the new state: true when the question is now saved.
func (s *userService) ToggleSaveQuestion(ctx context.Context, req model.ToggleSaveRequest) (bool, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return false, model.NewInvalidInputError(err)
	}

	// Step 2: Verify the user exists
	exists, err := s.userRepo.Exists(ctx, req.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return false, model.NewUserNotFoundError()
	}

	// Step 3: Toggle membership
	saved, err := s.userRepo.IsSaved(ctx, req.UserID, req.QuestionID)
	if err != nil {
		return false, err
	}

	if saved {
		if err := s.userRepo.Unsave(ctx, req.UserID, req.QuestionID); err != nil {
			return false, err
		}
	} else {
		if err := s.userRepo.Save(ctx, req.UserID, req.QuestionID); err != nil {
			return false, err
		}
	}

	// Step 4: Signal the rendering layer
	s.signaler.Revalidate(ctx, req.Path)

	return !saved, nil
}

func (s *userService) GetSavedQuestions(ctx context.Context, authID string, req model.GetSavedRequest) (*model.SavedQuestionsResponse, error) {
	// Step 1: Resolve the user
	user, err := s.userRepo.GetByAuthID(ctx, authID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Step 2: Normalize pagination
	params := pagination.Params{Page: req.Page, PageSize: req.PageSize}
	params.Normalize()

	// Step 3: Query the saved set, most recently saved first
	questions, total, err := s.userRepo.SavedQuestions(ctx, user.ID, req.SearchQuery, params.Skip(), params.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved questions: %w", err)
	}
	if questions == nil {
		questions = []*questionModel.QuestionSummary{}
	}

	return &model.SavedQuestionsResponse{
		Questions: questions,
		IsNext:    pagination.IsNext(total, params.Skip(), len(questions)),
	}, nil
}

// =====================================================
// PROFILE INFO
// =====================================================

func (s *userService) GetUserInfo(ctx context.Context, authID string) (*model.UserInfo, error) {
	// Step 1: Resolve the user
	user, err := s.userRepo.GetByAuthID(ctx, authID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Step 2: Count authored content
	totalQuestions, err := s.userRepo.CountQuestions(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	totalAnswers, err := s.userRepo.CountAnswers(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count answers: %w", err)
	}

	return &model.UserInfo{
		User:           user,
		TotalQuestions: totalQuestions,
		TotalAnswers:   totalAnswers,
	}, nil
}
