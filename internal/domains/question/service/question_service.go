package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	interactionModel "devflow-backend/internal/domains/interaction/model"
	interactionRepo "devflow-backend/internal/domains/interaction/repository"
	"devflow-backend/internal/domains/question/model"
	"devflow-backend/internal/domains/question/repository"
	"devflow-backend/internal/domains/reputation"
	"devflow-backend/internal/shared/pagination"
	"devflow-backend/pkg/revalidate"
)

const hotQuestionLimit = 5

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type questionService struct {
	questionRepo    repository.QuestionRepository
	tagResolver     TagResolver
	interactionRepo interactionRepo.InteractionRepository
	ledger          *reputation.Ledger
	signaler        revalidate.Signaler
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	tagResolver TagResolver,
	interactions interactionRepo.InteractionRepository,
	ledger *reputation.Ledger,
	signaler revalidate.Signaler,
) ServiceInterface {
	return &questionService{
		questionRepo:    questionRepo,
		tagResolver:     tagResolver,
		interactionRepo: interactions,
		ledger:          ledger,
		signaler:        signaler,
	}
}

// =====================================================
// CREATE QUESTION
// =====================================================

func (s *questionService) CreateQuestion(ctx context.Context, req model.CreateQuestionRequest) (*model.QuestionDetail, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	// Step 2: Create the question entity
	question := &model.Question{
		ID:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		AuthorID:  req.AuthorID,
		CreatedAt: time.Now(),
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	// Step 3: Resolve each tag name and link it to the question
	for i, name := range req.Tags {
		if _, err := s.tagResolver.ResolveOrCreate(ctx, name, question.ID, i); err != nil {
			return nil, fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}
	}

	// Note: the +5 ask-question reputation award is documented in the
	// policy but intentionally not applied (see reputation package).

	// Step 4: Signal the rendering layer
	s.signaler.Revalidate(ctx, req.Path)

	return s.questionRepo.GetByID(ctx, question.ID)
}

// =====================================================
// EDIT QUESTION
// =====================================================

func (s *questionService) EditQuestion(ctx context.Context, questionID uuid.UUID, req model.EditQuestionRequest) error {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return model.NewInvalidInputError(err)
	}

	// Step 2: Overwrite title/content. Tags are not mutated by edits.
	if err := s.questionRepo.UpdateContent(ctx, questionID, req.Title, req.Content); err != nil {
		if err == model.ErrQuestionNotFound {
			return model.NewQuestionNotFoundError()
		}
		return fmt.Errorf("failed to edit question: %w", err)
	}

	// Step 3: Signal the rendering layer
	s.signaler.Revalidate(ctx, req.Path)

	return nil
}

// =====================================================
// DELETE QUESTION
// =====================================================

func (s *questionService) DeleteQuestion(ctx context.Context, questionID uuid.UUID, path string) error {
	if err := s.questionRepo.Delete(ctx, questionID); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	s.signaler.Revalidate(ctx, path)
	return nil
}

// =====================================================
// LISTINGS
// =====================================================

func (s *questionService) GetQuestions(ctx context.Context, req model.ListQuestionsRequest) (*model.QuestionListResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	page := pagination.Params{Page: req.Page, PageSize: req.PageSize}
	page.Normalize()

	questions, total, err := s.questionRepo.List(ctx, model.ListOptions{
		SearchQuery: req.SearchQuery,
		Filter:      req.Filter,
		Skip:        page.Skip(),
		Limit:       page.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	return &model.QuestionListResponse{
		Questions: questions,
		IsNext:    pagination.IsNext(total, page.Skip(), len(questions)),
	}, nil
}

func (s *questionService) GetQuestionByID(ctx context.Context, questionID uuid.UUID) (*model.QuestionDetail, error) {
	detail, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		if err == model.ErrQuestionNotFound {
			return nil, model.NewQuestionNotFoundError()
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return detail, nil
}

func (s *questionService) GetHotQuestions(ctx context.Context) ([]*model.QuestionSummary, error) {
	questions, err := s.questionRepo.ListHot(ctx, hotQuestionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list hot questions: %w", err)
	}
	return questions, nil
}

// =====================================================
// VOTING
// =====================================================

func (s *questionService) UpvoteQuestion(ctx context.Context, questionID uuid.UUID, req model.VoteRequest) error {
	return s.vote(ctx, questionID, req, true)
}

func (s *questionService) DownvoteQuestion(ctx context.Context, questionID uuid.UUID, req model.VoteRequest) error {
	return s.vote(ctx, questionID, req, false)
}

// vote implements the three-way toggle: retract when the user already voted
// in this direction, otherwise cast (which also absorbs a direction switch
// thanks to the vote upsert).
func (s *questionService) vote(ctx context.Context, questionID uuid.UUID, req model.VoteRequest, up bool) error {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return model.NewInvalidInputError(err)
	}

	// Step 2: Resolve the author (also the existence check)
	authorID, err := s.questionRepo.AuthorOf(ctx, questionID)
	if err != nil {
		if err == model.ErrQuestionNotFound {
			return model.NewQuestionNotFoundError()
		}
		return fmt.Errorf("failed to resolve question author: %w", err)
	}

	// Step 3: Toggle the vote
	retracting := (up && req.HasUpvoted) || (!up && req.HasDownvoted)
	if retracting {
		if err := s.questionRepo.RemoveVote(ctx, questionID, req.UserID); err != nil {
			return err
		}
	} else {
		value := 1
		if !up {
			value = -1
		}
		if err := s.questionRepo.SetVote(ctx, questionID, req.UserID, value); err != nil {
			return err
		}
	}

	// Step 4: Apply the paired reputation deltas
	if err := s.applyVoteReputation(ctx, req.UserID, authorID, up, retracting); err != nil {
		return err
	}

	// Step 5: Signal the rendering layer
	s.signaler.Revalidate(ctx, req.Path)

	return nil
}

func (s *questionService) applyVoteReputation(ctx context.Context, voterID, authorID uuid.UUID, up, retracting bool) error {
	switch {
	case up && retracting:
		return s.ledger.UpvoteRetracted(ctx, voterID, authorID)
	case up:
		return s.ledger.UpvoteGranted(ctx, voterID, authorID)
	case retracting:
		return s.ledger.DownvoteRetracted(ctx, voterID, authorID)
	default:
		return s.ledger.DownvoteGranted(ctx, voterID, authorID)
	}
}

// =====================================================
// VIEW TRACKING
// =====================================================

func (s *questionService) ViewQuestion(ctx context.Context, questionID uuid.UUID, userID *uuid.UUID) error {
	// Step 1: Bump the counter
	if err := s.questionRepo.IncrementViews(ctx, questionID); err != nil {
		if err == model.ErrQuestionNotFound {
			return model.NewQuestionNotFoundError()
		}
		return fmt.Errorf("failed to increment views: %w", err)
	}

	// Anonymous views only bump the counter
	if userID == nil {
		return nil
	}

	// Step 2: Record at most one view interaction per user and question
	viewed, err := s.interactionRepo.HasViewed(ctx, *userID, questionID)
	if err != nil {
		return fmt.Errorf("failed to check view interaction: %w", err)
	}
	if viewed {
		return nil
	}

	tagIDs, err := s.questionRepo.TagIDs(ctx, questionID)
	if err != nil {
		return fmt.Errorf("failed to load question tags: %w", err)
	}

	if err := s.interactionRepo.Record(ctx, &interactionModel.Interaction{
		UserID:     *userID,
		Action:     interactionModel.ActionView,
		QuestionID: &questionID,
		TagIDs:     tagIDs,
	}); err != nil {
		return fmt.Errorf("failed to record view interaction: %w", err)
	}

	return nil
}
