package reputation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	deltas map[uuid.UUID]int
	calls  int
	failAt int // fail on the nth call (1-based), 0 = never
}

func newRecordingStore() *recordingStore {
	return &recordingStore{deltas: make(map[uuid.UUID]int)}
}

func (s *recordingStore) IncrementReputation(ctx context.Context, userID uuid.UUID, delta int) error {
	s.calls++
	if s.failAt != 0 && s.calls == s.failAt {
		return errors.New("store down")
	}
	s.deltas[userID] += delta
	return nil
}

func TestLedgerVotePairs(t *testing.T) {
	voter := uuid.New()
	author := uuid.New()

	tests := []struct {
		name       string
		apply      func(l *Ledger) error
		wantVoter  int
		wantAuthor int
	}{
		{"upvote granted", func(l *Ledger) error { return l.UpvoteGranted(context.Background(), voter, author) }, 2, 10},
		{"upvote retracted", func(l *Ledger) error { return l.UpvoteRetracted(context.Background(), voter, author) }, -2, -10},
		{"downvote granted", func(l *Ledger) error { return l.DownvoteGranted(context.Background(), voter, author) }, 2, -10},
		{"downvote retracted", func(l *Ledger) error { return l.DownvoteRetracted(context.Background(), voter, author) }, -2, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newRecordingStore()
			ledger := NewLedger(store)

			require.NoError(t, tt.apply(ledger))
			assert.Equal(t, tt.wantVoter, store.deltas[voter])
			assert.Equal(t, tt.wantAuthor, store.deltas[author])
		})
	}
}

func TestLedgerGrantThenRetractIsNeutral(t *testing.T) {
	voter := uuid.New()
	author := uuid.New()
	store := newRecordingStore()
	ledger := NewLedger(store)

	require.NoError(t, ledger.UpvoteGranted(context.Background(), voter, author))
	require.NoError(t, ledger.UpvoteRetracted(context.Background(), voter, author))

	assert.Equal(t, 0, store.deltas[voter])
	assert.Equal(t, 0, store.deltas[author])
}

func TestLedgerSelfVoteAdjustsOnce(t *testing.T) {
	self := uuid.New()
	store := newRecordingStore()
	ledger := NewLedger(store)

	require.NoError(t, ledger.UpvoteGranted(context.Background(), self, self))

	assert.Equal(t, 1, store.calls)
	assert.Equal(t, VoterPoints, store.deltas[self])
}

func TestLedgerAnswerCreated(t *testing.T) {
	author := uuid.New()
	store := newRecordingStore()
	ledger := NewLedger(store)

	require.NoError(t, ledger.AnswerCreated(context.Background(), author))
	assert.Equal(t, AnswerCreatedPoints, store.deltas[author])
}

func TestLedgerNoCompensationOnPartialFailure(t *testing.T) {
	voter := uuid.New()
	author := uuid.New()
	store := newRecordingStore()
	store.failAt = 2 // actor increment lands, author increment fails
	ledger := NewLedger(store)

	err := ledger.UpvoteGranted(context.Background(), voter, author)
	require.Error(t, err)

	// Earlier steps are not undone.
	assert.Equal(t, VoterPoints, store.deltas[voter])
	assert.Equal(t, 0, store.deltas[author])
}
