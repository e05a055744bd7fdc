package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"devflow-backend/internal/domains/answer/model"
	"devflow-backend/internal/domains/answer/repository"
	interactionModel "devflow-backend/internal/domains/interaction/model"
	interactionRepo "devflow-backend/internal/domains/interaction/repository"
	questionModel "devflow-backend/internal/domains/question/model"
	questionRepo "devflow-backend/internal/domains/question/repository"
	"devflow-backend/internal/domains/reputation"
	"devflow-backend/internal/shared/pagination"
	"devflow-backend/pkg/revalidate"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type answerService struct {
	answerRepo      repository.AnswerRepository
	questionRepo    questionRepo.QuestionRepository
	interactionRepo interactionRepo.InteractionRepository
	ledger          *reputation.Ledger
	signaler        revalidate.Signaler
}

func NewAnswerService(
	answerRepo repository.AnswerRepository,
	questions questionRepo.QuestionRepository,
	interactions interactionRepo.InteractionRepository,
	ledger *reputation.Ledger,
	signaler revalidate.Signaler,
) ServiceInterface {
	return &answerService{
		answerRepo:      answerRepo,
		questionRepo:    questions,
		interactionRepo: interactions,
		ledger:          ledger,
		signaler:        signaler,
	}
}

// =====================================================
// CREATE ANSWER
// =====================================================

func (s *answerService) CreateAnswer(ctx context.Context, req model.CreateAnswerRequest) (*model.Answer, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	// Step 2: Verify the question exists
	if _, err := s.questionRepo.AuthorOf(ctx, req.QuestionID); err != nil {
		if errors.Is(err, questionModel.ErrQuestionNotFound) {
			return nil, model.NewQuestionNotFoundError(err)
		}
		return nil, fmt.Errorf("failed to resolve question: %w", err)
	}

	// Step 3: Insert the answer
	answer := &model.Answer{
		ID:         uuid.New(),
		QuestionID: req.QuestionID,
		AuthorID:   req.AuthorID,
		Content:    req.Content,
		CreatedAt:  time.Now(),
	}

	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return nil, fmt.Errorf("failed to create answer: %w", err)
	}

	// Step 4: Record the interaction with the question's tags denormalized
	tagIDs, err := s.questionRepo.TagIDs(ctx, req.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load question tags: %w", err)
	}

	if err := s.interactionRepo.Record(ctx, &interactionModel.Interaction{
		UserID:     req.AuthorID,
		Action:     interactionModel.ActionAnswer,
		QuestionID: &req.QuestionID,
		AnswerID:   &answer.ID,
		TagIDs:     tagIDs,
	}); err != nil {
		return nil, fmt.Errorf("failed to record answer interaction: %w", err)
	}

	// Step 5: Award the answer-created reputation
	if err := s.ledger.AnswerCreated(ctx, req.AuthorID); err != nil {
		return nil, fmt.Errorf("failed to award reputation: %w", err)
	}

	// Step 6: Signal the rendering layer
	s.signaler.Revalidate(ctx, req.Path)

	return answer, nil
}

// =====================================================
// LIST ANSWERS
// =====================================================

func (s *answerService) GetAnswers(ctx context.Context, questionID uuid.UUID, req model.ListAnswersRequest) (*model.AnswerListResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	// Step 2: Normalize pagination
	params := pagination.Params{Page: req.Page, PageSize: req.PageSize}
	params.Normalize()

	// Step 3: Query the question's answers with the requested sort
	answers, total, err := s.answerRepo.ListByQuestion(ctx, model.ListOptions{
		QuestionID: questionID,
		SortBy:     req.SortBy,
		Skip:       params.Skip(),
		Limit:      params.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}

	return &model.AnswerListResponse{
		Answers: answers,
		IsNext:  pagination.IsNext(total, params.Skip(), len(answers)),
	}, nil
}

// =====================================================
// VOTING
// =====================================================

func (s *answerService) UpvoteAnswer(ctx context.Context, answerID uuid.UUID, req model.VoteRequest) error {
	return s.vote(ctx, answerID, req, true)
}

func (s *answerService) DownvoteAnswer(ctx context.Context, answerID uuid.UUID, req model.VoteRequest) error {
	return s.vote(ctx, answerID, req, false)
}

// vote implements the three-way toggle: retract when the user already voted
// in this direction, otherwise cast (which also absorbs a direction switch
// thanks to the vote upsert).
func (s *answerService) vote(ctx context.Context, answerID uuid.UUID, req model.VoteRequest, up bool) error {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return model.NewInvalidInputError(err)
	}

	// Step 2: Resolve the author (also the existence check)
	authorID, err := s.answerRepo.AuthorOf(ctx, answerID)
	if err != nil {
		if errors.Is(err, model.ErrAnswerNotFound) {
			return model.NewAnswerNotFoundError()
		}
		return fmt.Errorf("failed to resolve answer author: %w", err)
	}

	// Step 3: Toggle the vote
	retracting := (up && req.HasUpvoted) || (!up && req.HasDownvoted)
	if retracting {
		if err := s.answerRepo.RemoveVote(ctx, answerID, req.UserID); err != nil {
			return err
		}
	} else {
		value := 1
		if !up {
			value = -1
		}
		if err := s.answerRepo.SetVote(ctx, answerID, req.UserID, value); err != nil {
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

func (s *answerService) applyVoteReputation(ctx context.Context, voterID, authorID uuid.UUID, up, retracting bool) error {
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
// DELETE ANSWER
// =====================================================

func (s *answerService) DeleteAnswer(ctx context.Context, answerID uuid.UUID, path string) error {
	if err := s.answerRepo.Delete(ctx, answerID); err != nil {
		if errors.Is(err, model.ErrAnswerNotFound) {
			return model.NewAnswerNotFoundError()
		}
		return fmt.Errorf("failed to delete answer: %w", err)
	}

	s.signaler.Revalidate(ctx, path)
	return nil
}
