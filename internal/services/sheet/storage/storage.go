package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/charsheet/internal/platform/errors"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/mutation"
)

// ErrNotFound indicates a missing character document.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "character not found")

// MutationRecord is one applied mutation in a character's audit trail.
type MutationRecord struct {
	CharacterID string
	Seq         uint64
	Envelope    mutation.Envelope
	AppliedAt   time.Time
}

// SnapshotStore persists character documents.
type SnapshotStore interface {
	PutSnapshot(ctx context.Context, doc Document) error
	GetSnapshot(ctx context.Context, characterID string) (Document, error)
}

// MutationStore persists the audit trail of applied mutations.
type MutationStore interface {
	AppendMutation(ctx context.Context, record MutationRecord) error
	ListMutations(ctx context.Context, characterID string) ([]MutationRecord, error)
	NextSeq(ctx context.Context, characterID string) (uint64, error)
}

// Committer persists the outcome of an apply batch atomically: either every
// record and the document are stored, or none of them are.
type Committer interface {
	// Commit numbers records after the character's last recorded mutation,
	// stores them with doc and returns the numbered records.
	Commit(ctx context.Context, doc Document, records []MutationRecord) ([]MutationRecord, error)
}

// Store is a composite interface for character persistence.
type Store interface {
	SnapshotStore
	MutationStore
	Committer
	Close() error
}
