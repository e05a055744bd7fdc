package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	interactionModel "devflow-backend/internal/domains/interaction/model"
	"devflow-backend/internal/domains/question/model"
	"devflow-backend/internal/domains/reputation"
	"devflow-backend/pkg/revalidate"
)

// =====================================================
// TEST FAKES
// =====================================================

type voteKey struct {
	questionID uuid.UUID
	userID     uuid.UUID
}

type fakeQuestionRepo struct {
	questions map[uuid.UUID]*model.Question
	votes     map[voteKey]int
	views     map[uuid.UUID]int64
	tagIDs    map[uuid.UUID][]uuid.UUID
	listOpts  model.ListOptions
	listItems []*model.QuestionSummary
	listTotal int
	deleted   []uuid.UUID
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{
		questions: make(map[uuid.UUID]*model.Question),
		votes:     make(map[voteKey]int),
		views:     make(map[uuid.UUID]int64),
		tagIDs:    make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeQuestionRepo) Create(ctx context.Context, q *model.Question) error {
	f.questions[q.ID] = q
	return nil
}

func (f *fakeQuestionRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.QuestionDetail, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, model.ErrQuestionNotFound
	}

	detail := &model.QuestionDetail{Content: q.Content}
	detail.ID = q.ID
	detail.Title = q.Title
	detail.Upvotes = []uuid.UUID{}
	detail.Downvotes = []uuid.UUID{}
	for key, value := range f.votes {
		if key.questionID != id {
			continue
		}
		if value > 0 {
			detail.Upvotes = append(detail.Upvotes, key.userID)
		} else {
			detail.Downvotes = append(detail.Downvotes, key.userID)
		}
	}
	return detail, nil
}

func (f *fakeQuestionRepo) UpdateContent(ctx context.Context, id uuid.UUID, title, content string) error {
	q, ok := f.questions[id]
	if !ok {
		return model.ErrQuestionNotFound
	}
	q.Title = title
	q.Content = content
	return nil
}

func (f *fakeQuestionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.questions, id)
	return nil
}

func (f *fakeQuestionRepo) List(ctx context.Context, opts model.ListOptions) ([]*model.QuestionSummary, int, error) {
	f.listOpts = opts
	return f.listItems, f.listTotal, nil
}

func (f *fakeQuestionRepo) ListHot(ctx context.Context, limit int) ([]*model.QuestionSummary, error) {
	if limit < len(f.listItems) {
		return f.listItems[:limit], nil
	}
	return f.listItems, nil
}

func (f *fakeQuestionRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.questions[id]; !ok {
		return model.ErrQuestionNotFound
	}
	f.views[id]++
	return nil
}

func (f *fakeQuestionRepo) AuthorOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	q, ok := f.questions[id]
	if !ok {
		return uuid.Nil, model.ErrQuestionNotFound
	}
	return q.AuthorID, nil
}

func (f *fakeQuestionRepo) SetVote(ctx context.Context, questionID, userID uuid.UUID, value int) error {
	f.votes[voteKey{questionID, userID}] = value
	return nil
}

func (f *fakeQuestionRepo) RemoveVote(ctx context.Context, questionID, userID uuid.UUID) error {
	delete(f.votes, voteKey{questionID, userID})
	return nil
}

func (f *fakeQuestionRepo) TagIDs(ctx context.Context, questionID uuid.UUID) ([]uuid.UUID, error) {
	return f.tagIDs[questionID], nil
}

type fakeTagResolver struct {
	resolved []string
	byName   map[string]uuid.UUID
}

func newFakeTagResolver() *fakeTagResolver {
	return &fakeTagResolver{byName: make(map[string]uuid.UUID)}
}

func (f *fakeTagResolver) ResolveOrCreate(ctx context.Context, name string, questionID uuid.UUID, position int) (uuid.UUID, error) {
	f.resolved = append(f.resolved, name)
	if id, ok := f.byName[name]; ok {
		return id, nil
	}
	id := uuid.New()
	f.byName[name] = id
	return id, nil
}

type fakeInteractionRepo struct {
	records []*interactionModel.Interaction
	viewed  map[voteKey]bool
}

func newFakeInteractionRepo() *fakeInteractionRepo {
	return &fakeInteractionRepo{viewed: make(map[voteKey]bool)}
}

func (f *fakeInteractionRepo) Record(ctx context.Context, i *interactionModel.Interaction) error {
	f.records = append(f.records, i)
	if i.Action == interactionModel.ActionView && i.QuestionID != nil {
		f.viewed[voteKey{*i.QuestionID, i.UserID}] = true
	}
	return nil
}

func (f *fakeInteractionRepo) HasViewed(ctx context.Context, userID, questionID uuid.UUID) (bool, error) {
	return f.viewed[voteKey{questionID, userID}], nil
}

func (f *fakeInteractionRepo) TopTagIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error) {
	return nil, nil
}

type reputationStore struct {
	deltas map[uuid.UUID]int
}

func newReputationStore() *reputationStore {
	return &reputationStore{deltas: make(map[uuid.UUID]int)}
}

func (s *reputationStore) IncrementReputation(ctx context.Context, userID uuid.UUID, delta int) error {
	s.deltas[userID] += delta
	return nil
}

type fixture struct {
	repo         *fakeQuestionRepo
	tags         *fakeTagResolver
	interactions *fakeInteractionRepo
	store        *reputationStore
	service      ServiceInterface
}

func newFixture() *fixture {
	repo := newFakeQuestionRepo()
	tags := newFakeTagResolver()
	interactions := newFakeInteractionRepo()
	store := newReputationStore()

	return &fixture{
		repo:         repo,
		tags:         tags,
		interactions: interactions,
		store:        store,
		service:      NewQuestionService(repo, tags, interactions, reputation.NewLedger(store), revalidate.Noop{}),
	}
}

func (f *fixture) seedQuestion(authorID uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.repo.questions[id] = &model.Question{ID: id, Title: "How do goroutines leak?", AuthorID: authorID}
	return id
}

// =====================================================
// CREATE
// =====================================================

func TestCreateQuestionResolvesTagsInOrder(t *testing.T) {
	f := newFixture()

	detail, err := f.service.CreateQuestion(context.Background(), model.CreateQuestionRequest{
		Title:    "How do I read a file line by line?",
		Content:  "I need to process a large log file without loading it into memory.",
		Tags:     []string{"go", "files", "io"},
		AuthorID: uuid.New(),
	})
	require.NoError(t, err)
	require.NotNil(t, detail)

	assert.Equal(t, []string{"go", "files", "io"}, f.tags.resolved)
	assert.Len(t, f.repo.questions, 1)
}

func TestCreateQuestionRejectsShortTitle(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateQuestion(context.Background(), model.CreateQuestionRequest{
		Title:    "Why",
		Content:  "This content is definitely long enough to pass validation.",
		Tags:     []string{"go"},
		AuthorID: uuid.New(),
	})

	var qErr *model.QuestionError
	require.ErrorAs(t, err, &qErr)
	assert.Equal(t, model.ErrCodeInvalidInput, qErr.Code)
}

func TestCreateQuestionDoesNotAwardReputation(t *testing.T) {
	f := newFixture()
	authorID := uuid.New()

	_, err := f.service.CreateQuestion(context.Background(), model.CreateQuestionRequest{
		Title:    "What does context cancellation propagate to?",
		Content:  "Wondering whether child contexts observe parent cancellation.",
		Tags:     []string{"go"},
		AuthorID: authorID,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, f.store.deltas[authorID])
}

// =====================================================
// EDIT & DELETE
// =====================================================

func TestEditQuestionOverwritesContent(t *testing.T) {
	f := newFixture()
	questionID := f.seedQuestion(uuid.New())

	err := f.service.EditQuestion(context.Background(), questionID, model.EditQuestionRequest{
		Title:   "How do goroutines leak, exactly?",
		Content: "Rewritten with a reproducible example and pprof output attached.",
	})
	require.NoError(t, err)

	assert.Equal(t, "How do goroutines leak, exactly?", f.repo.questions[questionID].Title)
}

func TestEditQuestionMissingReturnsNotFound(t *testing.T) {
	f := newFixture()

	err := f.service.EditQuestion(context.Background(), uuid.New(), model.EditQuestionRequest{
		Title:   "A perfectly valid title",
		Content: "A perfectly valid content body exceeding the minimum.",
	})

	assert.ErrorIs(t, err, model.ErrQuestionNotFound)
}

func TestDeleteQuestionDelegatesCascade(t *testing.T) {
	f := newFixture()
	questionID := f.seedQuestion(uuid.New())

	require.NoError(t, f.service.DeleteQuestion(context.Background(), questionID, "/"))
	assert.Equal(t, []uuid.UUID{questionID}, f.repo.deleted)
}

// =====================================================
// LISTINGS
// =====================================================

func TestGetQuestionsNormalizesPagination(t *testing.T) {
	f := newFixture()
	f.repo.listItems = []*model.QuestionSummary{{ID: uuid.New()}}
	f.repo.listTotal = 1

	_, err := f.service.GetQuestions(context.Background(), model.ListQuestionsRequest{
		Filter: model.FilterUnanswered,
		Page:   0, // normalized to 1
	})
	require.NoError(t, err)

	assert.Equal(t, model.FilterUnanswered, f.repo.listOpts.Filter)
	assert.Equal(t, 0, f.repo.listOpts.Skip)
	assert.Equal(t, 10, f.repo.listOpts.Limit)
}

func TestGetQuestionsIsNext(t *testing.T) {
	f := newFixture()
	f.repo.listItems = []*model.QuestionSummary{{ID: uuid.New()}, {ID: uuid.New()}}

	// Two of three on page one: one more remains.
	f.repo.listTotal = 3
	result, err := f.service.GetQuestions(context.Background(), model.ListQuestionsRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.True(t, result.IsNext)

	// Two of two: nothing beyond this page.
	f.repo.listTotal = 2
	result, err = f.service.GetQuestions(context.Background(), model.ListQuestionsRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.False(t, result.IsNext)
}

func TestGetQuestionsRejectsUnknownFilter(t *testing.T) {
	f := newFixture()

	_, err := f.service.GetQuestions(context.Background(), model.ListQuestionsRequest{Filter: "trending"})

	var qErr *model.QuestionError
	require.ErrorAs(t, err, &qErr)
	assert.Equal(t, model.ErrCodeInvalidInput, qErr.Code)
}

// =====================================================
// VOTING
// =====================================================

func TestUpvoteFreshCast(t *testing.T) {
	f := newFixture()
	author := uuid.New()
	voter := uuid.New()
	questionID := f.seedQuestion(author)

	err := f.service.UpvoteQuestion(context.Background(), questionID, model.VoteRequest{UserID: voter})
	require.NoError(t, err)

	assert.Equal(t, 1, f.repo.votes[voteKey{questionID, voter}])
	assert.Equal(t, 2, f.store.deltas[voter])
	assert.Equal(t, 10, f.store.deltas[author])
}

func TestUpvoteRetract(t *testing.T) {
	f := newFixture()
	author := uuid.New()
	voter := uuid.New()
	questionID := f.seedQuestion(author)
	f.repo.votes[voteKey{questionID, voter}] = 1

	err := f.service.UpvoteQuestion(context.Background(), questionID, model.VoteRequest{
		UserID:     voter,
		HasUpvoted: true,
	})
	require.NoError(t, err)

	_, exists := f.repo.votes[voteKey{questionID, voter}]
	assert.False(t, exists)
	assert.Equal(t, -2, f.store.deltas[voter])
	assert.Equal(t, -10, f.store.deltas[author])
}

func TestUpvoteSwitchFromDownvote(t *testing.T) {
	f := newFixture()
	author := uuid.New()
	voter := uuid.New()
	questionID := f.seedQuestion(author)
	f.repo.votes[voteKey{questionID, voter}] = -1

	err := f.service.UpvoteQuestion(context.Background(), questionID, model.VoteRequest{
		UserID:       voter,
		HasDownvoted: true,
	})
	require.NoError(t, err)

	// The upsert flips the single vote row; only the new direction is granted.
	assert.Equal(t, 1, f.repo.votes[voteKey{questionID, voter}])
	assert.Equal(t, 2, f.store.deltas[voter])
	assert.Equal(t, 10, f.store.deltas[author])
}

func TestVoteNeverLeavesBothDirections(t *testing.T) {
	f := newFixture()
	voter := uuid.New()
	questionID := f.seedQuestion(uuid.New())

	require.NoError(t, f.service.UpvoteQuestion(context.Background(), questionID, model.VoteRequest{UserID: voter}))
	require.NoError(t, f.service.DownvoteQuestion(context.Background(), questionID, model.VoteRequest{
		UserID:     voter,
		HasUpvoted: true,
	}))

	detail, err := f.repo.GetByID(context.Background(), questionID)
	require.NoError(t, err)
	assert.Empty(t, detail.Upvotes)
	assert.Equal(t, []uuid.UUID{voter}, detail.Downvotes)
}

func TestVoteMissingQuestion(t *testing.T) {
	f := newFixture()

	err := f.service.UpvoteQuestion(context.Background(), uuid.New(), model.VoteRequest{UserID: uuid.New()})
	assert.ErrorIs(t, err, model.ErrQuestionNotFound)
}

// =====================================================
// VIEW TRACKING
// =====================================================

func TestViewQuestionAnonymousOnlyBumpsCounter(t *testing.T) {
	f := newFixture()
	questionID := f.seedQuestion(uuid.New())

	require.NoError(t, f.service.ViewQuestion(context.Background(), questionID, nil))

	assert.Equal(t, int64(1), f.repo.views[questionID])
	assert.Empty(t, f.interactions.records)
}

func TestViewQuestionRecordsOnceWithTags(t *testing.T) {
	f := newFixture()
	questionID := f.seedQuestion(uuid.New())
	tagID := uuid.New()
	f.repo.tagIDs[questionID] = []uuid.UUID{tagID}
	userID := uuid.New()

	require.NoError(t, f.service.ViewQuestion(context.Background(), questionID, &userID))
	require.NoError(t, f.service.ViewQuestion(context.Background(), questionID, &userID))

	// The counter moves every time, the interaction log only once.
	assert.Equal(t, int64(2), f.repo.views[questionID])
	require.Len(t, f.interactions.records, 1)
	assert.Equal(t, interactionModel.ActionView, f.interactions.records[0].Action)
	assert.Equal(t, []uuid.UUID{tagID}, f.interactions.records[0].TagIDs)
}
