package reputation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Point values for every reputation-bearing trigger. Services never apply raw
// deltas; they go through the Ledger so the policy stays in one place.
const (
	// QuestionCreatedPoints is documented but deliberately not applied
	// anywhere yet. Wiring it is pending product confirmation.
	QuestionCreatedPoints = 5

	AnswerCreatedPoints = 10

	// A voter earns VoterPoints for casting any vote and gives it back when
	// retracting. The content author moves by AuthorPoints, signed by the
	// vote direction.
	VoterPoints  = 2
	AuthorPoints = 10
)

// Store is the slice of the user repository the ledger needs.
type Store interface {
	IncrementReputation(ctx context.Context, userID uuid.UUID, delta int) error
}

// Ledger applies paired reputation adjustments. The actor-side and
// author-side increments are sequential store calls with no compensation: a
// failure between them leaves the later one unapplied.
type Ledger struct {
	store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// AnswerCreated awards the answer author for contributing an answer.
func (l *Ledger) AnswerCreated(ctx context.Context, authorID uuid.UUID) error {
	if err := l.store.IncrementReputation(ctx, authorID, AnswerCreatedPoints); err != nil {
		return fmt.Errorf("failed to award answer author: %w", err)
	}
	return nil
}

// UpvoteGranted: voter +2, author +10.
func (l *Ledger) UpvoteGranted(ctx context.Context, voterID, authorID uuid.UUID) error {
	return l.applyPair(ctx, voterID, VoterPoints, authorID, AuthorPoints)
}

// UpvoteRetracted: voter -2, author -10.
func (l *Ledger) UpvoteRetracted(ctx context.Context, voterID, authorID uuid.UUID) error {
	return l.applyPair(ctx, voterID, -VoterPoints, authorID, -AuthorPoints)
}

// DownvoteGranted: voter +2, author -10.
func (l *Ledger) DownvoteGranted(ctx context.Context, voterID, authorID uuid.UUID) error {
	return l.applyPair(ctx, voterID, VoterPoints, authorID, -AuthorPoints)
}

// DownvoteRetracted: voter -2, author +10.
func (l *Ledger) DownvoteRetracted(ctx context.Context, voterID, authorID uuid.UUID) error {
	return l.applyPair(ctx, voterID, -VoterPoints, authorID, AuthorPoints)
}

func (l *Ledger) applyPair(ctx context.Context, voterID uuid.UUID, voterDelta int, authorID uuid.UUID, authorDelta int) error {
	if err := l.store.IncrementReputation(ctx, voterID, voterDelta); err != nil {
		return fmt.Errorf("failed to adjust voter reputation: %w", err)
	}

	// Voting on your own content moves reputation once, not twice.
	if voterID == authorID {
		return nil
	}

	if err := l.store.IncrementReputation(ctx, authorID, authorDelta); err != nil {
		return fmt.Errorf("failed to adjust author reputation: %w", err)
	}
	return nil
}
