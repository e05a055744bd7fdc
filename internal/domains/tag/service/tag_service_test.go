package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	interactionModel "devflow-backend/internal/domains/interaction/model"
	questionModel "devflow-backend/internal/domains/question/model"
	"devflow-backend/internal/domains/tag/model"
)

// =====================================================
// TEST FAKES
// =====================================================

type fakeTagRepo struct {
	tags        map[uuid.UUID]*model.Tag
	listOpts    model.ListOptions
	listItems   []*model.TagWithStats
	listTotal   int
	popular     []*model.TagWithStats
	tagTitle    string
	questions   []*questionModel.QuestionSummary
	questionCnt int
	byIDsArg    []uuid.UUID
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: make(map[uuid.UUID]*model.Tag)}
}

func (f *fakeTagRepo) ResolveOrCreate(ctx context.Context, name string, questionID uuid.UUID, position int) (uuid.UUID, error) {
	for id, tag := range f.tags {
		if tag.Name == name {
			return id, nil
		}
	}
	id := uuid.New()
	f.tags[id] = &model.Tag{ID: id, Name: name}
	return id, nil
}

func (f *fakeTagRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	tag, ok := f.tags[id]
	if !ok {
		return nil, model.ErrTagNotFound
	}
	return tag, nil
}

func (f *fakeTagRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Tag, error) {
	f.byIDsArg = ids
	var tags []*model.Tag
	for _, id := range ids {
		if tag, ok := f.tags[id]; ok {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (f *fakeTagRepo) List(ctx context.Context, opts model.ListOptions) ([]*model.TagWithStats, int, error) {
	f.listOpts = opts
	return f.listItems, f.listTotal, nil
}

func (f *fakeTagRepo) TopPopular(ctx context.Context, limit int) ([]*model.TagWithStats, error) {
	if limit < len(f.popular) {
		return f.popular[:limit], nil
	}
	return f.popular, nil
}

func (f *fakeTagRepo) QuestionsByTag(ctx context.Context, tagID uuid.UUID, searchQuery string, skip, limit int) (string, []*questionModel.QuestionSummary, int, error) {
	if _, ok := f.tags[tagID]; !ok {
		return "", nil, 0, model.ErrTagNotFound
	}
	return f.tagTitle, f.questions, f.questionCnt, nil
}

type fakeInteractionRepo struct {
	topTagIDs  []uuid.UUID
	limitAsked int
}

func (f *fakeInteractionRepo) Record(ctx context.Context, i *interactionModel.Interaction) error {
	return nil
}

func (f *fakeInteractionRepo) HasViewed(ctx context.Context, userID, questionID uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeInteractionRepo) TopTagIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error) {
	f.limitAsked = limit
	if limit < len(f.topTagIDs) {
		return f.topTagIDs[:limit], nil
	}
	return f.topTagIDs, nil
}

type fakeUserChecker struct {
	known map[uuid.UUID]bool
}

func (f *fakeUserChecker) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	return f.known[userID], nil
}

type fixture struct {
	tags         *fakeTagRepo
	interactions *fakeInteractionRepo
	users        *fakeUserChecker
	service      ServiceInterface
}

func newFixture() *fixture {
	tags := newFakeTagRepo()
	interactions := &fakeInteractionRepo{}
	users := &fakeUserChecker{known: make(map[uuid.UUID]bool)}

	return &fixture{
		tags:         tags,
		interactions: interactions,
		users:        users,
		service:      NewTagService(tags, interactions, users),
	}
}

// =====================================================
// LISTINGS
// =====================================================

func TestGetAllTagsPassesFilterAndPagination(t *testing.T) {
	f := newFixture()
	f.tags.listItems = []*model.TagWithStats{{Tag: model.Tag{ID: uuid.New(), Name: "go"}}}
	f.tags.listTotal = 40

	result, err := f.service.GetAllTags(context.Background(), model.ListTagsRequest{
		Filter:   model.FilterPopular,
		Page:     2,
		PageSize: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, model.FilterPopular, f.tags.listOpts.Filter)
	assert.Equal(t, 10, f.tags.listOpts.Skip)
	assert.True(t, result.IsNext)
}

func TestGetAllTagsRejectsUnknownFilter(t *testing.T) {
	f := newFixture()

	_, err := f.service.GetAllTags(context.Background(), model.ListTagsRequest{Filter: "alphabetical"})

	var tErr *model.TagError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, model.ErrCodeInvalidInput, tErr.Code)
}

func TestGetQuestionsByTagMissingTag(t *testing.T) {
	f := newFixture()

	_, err := f.service.GetQuestionsByTag(context.Background(), uuid.New(), model.QuestionsByTagRequest{})
	assert.ErrorIs(t, err, model.ErrTagNotFound)
}

func TestGetQuestionsByTagReturnsTitle(t *testing.T) {
	f := newFixture()
	tagID := uuid.New()
	f.tags.tags[tagID] = &model.Tag{ID: tagID, Name: "concurrency"}
	f.tags.tagTitle = "concurrency"
	f.tags.questions = []*questionModel.QuestionSummary{{ID: uuid.New()}}
	f.tags.questionCnt = 1

	result, err := f.service.GetQuestionsByTag(context.Background(), tagID, model.QuestionsByTagRequest{})
	require.NoError(t, err)

	assert.Equal(t, "concurrency", result.TagTitle)
	assert.Len(t, result.Questions, 1)
	assert.False(t, result.IsNext)
}

func TestGetTopPopularTags(t *testing.T) {
	f := newFixture()
	for i := 0; i < 8; i++ {
		f.tags.popular = append(f.tags.popular, &model.TagWithStats{Tag: model.Tag{ID: uuid.New()}})
	}

	tags, err := f.service.GetTopPopularTags(context.Background())
	require.NoError(t, err)
	assert.Len(t, tags, 5)
}

// =====================================================
// TOP INTERACTED TAGS
// =====================================================

func TestGetTopInteractedTagsMissingUser(t *testing.T) {
	f := newFixture()

	_, err := f.service.GetTopInteractedTags(context.Background(), uuid.New(), 0)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestGetTopInteractedTagsDefaultsLimit(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	f.users.known[userID] = true

	first := uuid.New()
	second := uuid.New()
	f.tags.tags[first] = &model.Tag{ID: first, Name: "go"}
	f.tags.tags[second] = &model.Tag{ID: second, Name: "postgres"}
	f.interactions.topTagIDs = []uuid.UUID{first, second}

	tags, err := f.service.GetTopInteractedTags(context.Background(), userID, 0)
	require.NoError(t, err)

	assert.Equal(t, defaultTopInteractedLimit, f.interactions.limitAsked)
	// Ranking order preserved
	require.Len(t, tags, 2)
	assert.Equal(t, "go", tags[0].Name)
	assert.Equal(t, "postgres", tags[1].Name)
}
