package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	interactionRepo "devflow-backend/internal/domains/interaction/repository"
	"devflow-backend/internal/domains/tag/model"
	"devflow-backend/internal/domains/tag/repository"
	"devflow-backend/internal/shared/pagination"
)

const (
	topPopularLimit           = 5
	defaultTopInteractedLimit = 2
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type tagService struct {
	tagRepo         repository.TagRepository
	interactionRepo interactionRepo.InteractionRepository
	users           UserChecker
}

func NewTagService(
	tagRepo repository.TagRepository,
	interactions interactionRepo.InteractionRepository,
	users UserChecker,
) ServiceInterface {
	return &tagService{
		tagRepo:         tagRepo,
		interactionRepo: interactions,
		users:           users,
	}
}

// =====================================================
// RESOLVE OR CREATE
// =====================================================

func (s *tagService) ResolveOrCreate(ctx context.Context, name string, questionID uuid.UUID, position int) (uuid.UUID, error) {
	return s.tagRepo.ResolveOrCreate(ctx, name, questionID, position)
}

// =====================================================
// LISTINGS
// =====================================================

func (s *tagService) GetAllTags(ctx context.Context, req model.ListTagsRequest) (*model.TagListResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	// Step 2: Normalize pagination
	params := pagination.Params{Page: req.Page, PageSize: req.PageSize}
	params.Normalize()

	// Step 3: Query tags with the requested ordering
	tags, total, err := s.tagRepo.List(ctx, model.ListOptions{
		SearchQuery: req.SearchQuery,
		Filter:      req.Filter,
		Skip:        params.Skip(),
		Limit:       params.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return &model.TagListResponse{
		Tags:   tags,
		IsNext: pagination.IsNext(total, params.Skip(), len(tags)),
	}, nil
}

func (s *tagService) GetQuestionsByTag(ctx context.Context, tagID uuid.UUID, req model.QuestionsByTagRequest) (*model.TagQuestionsResponse, error) {
	// Step 1: Normalize pagination
	params := pagination.Params{Page: req.Page, PageSize: req.PageSize}
	params.Normalize()

	// Step 2: Query the tag's questions, newest first
	tagTitle, questions, total, err := s.tagRepo.QuestionsByTag(ctx, tagID, req.SearchQuery, params.Skip(), params.PageSize)
	if err != nil {
		return nil, err
	}

	return &model.TagQuestionsResponse{
		TagTitle:  tagTitle,
		Questions: questions,
		IsNext:    pagination.IsNext(total, params.Skip(), len(questions)),
	}, nil
}

func (s *tagService) GetTopPopularTags(ctx context.Context) ([]*model.TagWithStats, error) {
	tags, err := s.tagRepo.TopPopular(ctx, topPopularLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get popular tags: %w", err)
	}
	return tags, nil
}

// =====================================================
// TOP INTERACTED TAGS
// =====================================================

func (s *tagService) GetTopInteractedTags(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Tag, error) {
	// Step 1: Verify the user exists
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}

	if limit <= 0 {
		limit = defaultTopInteractedLimit
	}

	// Step 2: Rank the user's interaction tags by frequency
	tagIDs, err := s.interactionRepo.TopTagIDs(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank interaction tags: %w", err)
	}

	// Step 3: Resolve ids to tags, keeping the ranking order
	tags, err := s.tagRepo.GetByIDs(ctx, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve interaction tags: %w", err)
	}

	return tags, nil
}
