package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	questionModel "devflow-backend/internal/domains/question/model"
	"devflow-backend/internal/domains/user/model"
	"devflow-backend/pkg/revalidate"
)

// =====================================================
// TEST FAKES
// =====================================================

type saveKey struct {
	userID     uuid.UUID
	questionID uuid.UUID
}

type fakeUserRepo struct {
	users     map[uuid.UUID]*model.User
	byAuthID  map[string]uuid.UUID
	saved     map[saveKey]bool
	questions map[uuid.UUID]int
	answers   map[uuid.UUID]int
	listOpts  model.ListOptions
	listItems []*model.User
	listTotal int
	deleted   []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:     make(map[uuid.UUID]*model.User),
		byAuthID:  make(map[string]uuid.UUID),
		saved:     make(map[saveKey]bool),
		questions: make(map[uuid.UUID]int),
		answers:   make(map[uuid.UUID]int),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if _, ok := f.byAuthID[user.AuthID]; ok {
		return model.ErrDuplicateUser
	}
	f.users[user.ID] = user
	f.byAuthID[user.AuthID] = user.ID
	return nil
}

func (f *fakeUserRepo) GetByAuthID(ctx context.Context, authID string) (*model.User, error) {
	id, ok := f.byAuthID[authID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, authID string, req model.UpdateUserRequest) error {
	id, ok := f.byAuthID[authID]
	if !ok {
		return model.ErrUserNotFound
	}
	f.users[id].Name = req.Name
	f.users[id].Username = req.Username
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, authID string) (*model.User, error) {
	id, ok := f.byAuthID[authID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user := f.users[id]
	delete(f.users, id)
	delete(f.byAuthID, authID)
	f.deleted = append(f.deleted, authID)
	return user, nil
}

func (f *fakeUserRepo) List(ctx context.Context, opts model.ListOptions) ([]*model.User, int, error) {
	f.listOpts = opts
	return f.listItems, f.listTotal, nil
}

func (f *fakeUserRepo) IncrementReputation(ctx context.Context, userID uuid.UUID, delta int) error {
	user, ok := f.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	user.Reputation += delta
	return nil
}

func (f *fakeUserRepo) IsSaved(ctx context.Context, userID, questionID uuid.UUID) (bool, error) {
	return f.saved[saveKey{userID, questionID}], nil
}

func (f *fakeUserRepo) Save(ctx context.Context, userID, questionID uuid.UUID) error {
	f.saved[saveKey{userID, questionID}] = true
	return nil
}

func (f *fakeUserRepo) Unsave(ctx context.Context, userID, questionID uuid.UUID) error {
	delete(f.saved, saveKey{userID, questionID})
	return nil
}

func (f *fakeUserRepo) SavedQuestions(ctx context.Context, userID uuid.UUID, searchQuery string, skip, limit int) ([]*questionModel.QuestionSummary, int, error) {
	var summaries []*questionModel.QuestionSummary
	for key := range f.saved {
		if key.userID == userID {
			summaries = append(summaries, &questionModel.QuestionSummary{ID: key.questionID})
		}
	}
	return summaries, len(summaries), nil
}

func (f *fakeUserRepo) CountQuestions(ctx context.Context, userID uuid.UUID) (int, error) {
	return f.questions[userID], nil
}

func (f *fakeUserRepo) CountAnswers(ctx context.Context, userID uuid.UUID) (int, error) {
	return f.answers[userID], nil
}

type fixture struct {
	repo    *fakeUserRepo
	service ServiceInterface
}

func newFixture() *fixture {
	repo := newFakeUserRepo()
	return &fixture{
		repo:    repo,
		service: NewUserService(repo, revalidate.Noop{}),
	}
}

func (f *fixture) seedUser(authID string) *model.User {
	user := &model.User{
		ID:       uuid.New(),
		AuthID:   authID,
		Name:     "Ada Lovelace",
		Username: "ada",
		Email:    "ada@example.com",
	}
	f.repo.users[user.ID] = user
	f.repo.byAuthID[authID] = user.ID
	return user
}

// =====================================================
// PROVISIONING
// =====================================================

func TestCreateUser(t *testing.T) {
	f := newFixture()

	user, err := f.service.CreateUser(context.Background(), model.CreateUserRequest{
		AuthID:   "auth|123",
		Name:     "Grace Hopper",
		Username: "grace",
		Email:    "grace@example.com",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, 0, user.Reputation)
}

func TestCreateUserDuplicateAuthID(t *testing.T) {
	f := newFixture()
	f.seedUser("auth|123")

	_, err := f.service.CreateUser(context.Background(), model.CreateUserRequest{
		AuthID:   "auth|123",
		Name:     "Grace Hopper",
		Username: "grace",
		Email:    "grace@example.com",
	})

	assert.ErrorIs(t, err, model.ErrDuplicateUser)
}

func TestCreateUserRejectsBadEmail(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateUser(context.Background(), model.CreateUserRequest{
		AuthID:   "auth|456",
		Name:     "Grace Hopper",
		Username: "grace",
		Email:    "not-an-email",
	})

	var uErr *model.UserError
	require.ErrorAs(t, err, &uErr)
	assert.Equal(t, model.ErrCodeInvalidInput, uErr.Code)
}

// =====================================================
// PROFILE
// =====================================================

func TestUpdateUser(t *testing.T) {
	f := newFixture()
	f.seedUser("auth|123")

	user, err := f.service.UpdateUser(context.Background(), "auth|123", model.UpdateUserRequest{
		Name:     "Ada King",
		Username: "ada_king",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada King", user.Name)
}

func TestUpdateUserMissing(t *testing.T) {
	f := newFixture()

	_, err := f.service.UpdateUser(context.Background(), "auth|ghost", model.UpdateUserRequest{
		Name:     "Nobody",
		Username: "nobody",
	})
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestDeleteUserReturnsDeletedUser(t *testing.T) {
	f := newFixture()
	seeded := f.seedUser("auth|123")

	user, err := f.service.DeleteUser(context.Background(), "auth|123")
	require.NoError(t, err)

	assert.Equal(t, seeded.ID, user.ID)
	assert.Equal(t, []string{"auth|123"}, f.repo.deleted)
}

// =====================================================
// LISTINGS
// =====================================================

func TestGetAllUsersPassesFilter(t *testing.T) {
	f := newFixture()
	f.repo.listItems = []*model.User{{ID: uuid.New()}}
	f.repo.listTotal = 1

	_, err := f.service.GetAllUsers(context.Background(), model.ListUsersRequest{
		Filter: model.FilterTopContributors,
	})
	require.NoError(t, err)

	assert.Equal(t, model.FilterTopContributors, f.repo.listOpts.Filter)
}

func TestGetAllUsersRejectsUnknownFilter(t *testing.T) {
	f := newFixture()

	_, err := f.service.GetAllUsers(context.Background(), model.ListUsersRequest{Filter: "most_active"})

	var uErr *model.UserError
	require.ErrorAs(t, err, &uErr)
	assert.Equal(t, model.ErrCodeInvalidInput, uErr.Code)
}

// =====================================================
// SAVED QUESTIONS
// =====================================================

func TestToggleSaveQuestionRoundTrip(t *testing.T) {
	f := newFixture()
	user := f.seedUser("auth|123")
	questionID := uuid.New()

	req := model.ToggleSaveRequest{UserID: user.ID, QuestionID: questionID}

	// First toggle saves
	saved, err := f.service.ToggleSaveQuestion(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, f.repo.saved[saveKey{user.ID, questionID}])

	// Second toggle removes
	saved, err = f.service.ToggleSaveQuestion(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.False(t, f.repo.saved[saveKey{user.ID, questionID}])
}

func TestToggleSaveQuestionMissingUser(t *testing.T) {
	f := newFixture()

	_, err := f.service.ToggleSaveQuestion(context.Background(), model.ToggleSaveRequest{
		UserID:     uuid.New(),
		QuestionID: uuid.New(),
	})
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestGetSavedQuestionsEmptySet(t *testing.T) {
	f := newFixture()
	f.seedUser("auth|123")

	result, err := f.service.GetSavedQuestions(context.Background(), "auth|123", model.GetSavedRequest{})
	require.NoError(t, err)

	assert.NotNil(t, result.Questions)
	assert.Empty(t, result.Questions)
	assert.False(t, result.IsNext)
}

// =====================================================
// PROFILE INFO
// =====================================================

func TestGetUserInfoCountsContent(t *testing.T) {
	f := newFixture()
	user := f.seedUser("auth|123")
	f.repo.questions[user.ID] = 3
	f.repo.answers[user.ID] = 7

	info, err := f.service.GetUserInfo(context.Background(), "auth|123")
	require.NoError(t, err)

	assert.Equal(t, 3, info.TotalQuestions)
	assert.Equal(t, 7, info.TotalAnswers)
}

func TestGetUserInfoMissingUser(t *testing.T) {
	f := newFixture()

	_, err := f.service.GetUserInfo(context.Background(), "auth|ghost")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
