package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	apperrors "github.com/louisbranch/charsheet/internal/platform/errors"
	"github.com/louisbranch/charsheet/internal/platform/logging"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/character"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/mutation"
)

const instrumentationName = "github.com/louisbranch/charsheet/internal/services/sheet/domain/engine"

// revision is a published snapshot and the generation it was published at.
// Published snapshots are never written to again.
type revision struct {
	snapshot   *character.Snapshot
	generation uint64
}

// Engine owns one character and serializes every write to it.
type Engine struct {
	mu         sync.Mutex
	current    atomic.Pointer[revision]
	generation character.Generation
	journal    *Journal

	logger *zap.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for applied, rejected, undone and redone mutations.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logging.OrNop(logger) }
}

// WithHistoryLimit bounds the journal; 0 keeps every entry.
func WithHistoryLimit(limit int) Option {
	return func(e *Engine) { e.journal = NewJournal(limit) }
}

// WithTracer overrides the global tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) { e.tracer = tracer }
}

// WithClock overrides the clock stamping journal entries.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New returns an engine owning a copy of snapshot, which must verify.
func New(snapshot *character.Snapshot, opts ...Option) (*Engine, error) {
	if snapshot == nil {
		return nil, ErrSnapshotRequired
	}
	if err := snapshot.Verify(); err != nil {
		return nil, err
	}
	e := &Engine{
		journal: NewJournal(0),
		logger:  zap.NewNop(),
		tracer:  otel.Tracer(instrumentationName),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.publish(snapshot.Clone())
	return e, nil
}

// View returns a view over the current snapshot.
func (e *Engine) View() character.View {
	r := e.current.Load()
	return character.ViewAt(r.snapshot, &e.generation, r.generation)
}

// Snapshot returns an owned copy of the current snapshot for persistence.
func (e *Engine) Snapshot() *character.Snapshot {
	return e.current.Load().snapshot.Clone()
}

// Restore replaces the character with a copy of snapshot and clears the journal.
// A nil snapshot keeps the current character and journal.
func (e *Engine) Restore(snapshot *character.Snapshot) character.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	if snapshot == nil {
		return e.View()
	}
	restored := snapshot.Clone()
	e.journal.Reset()
	view := e.publish(restored)
	e.logger.Debug("snapshot restored", zap.String("character_id", restored.ID))
	return view
}

// Submit checks m against the current view and applies it. On a rejection
// the snapshot is left untouched and the check error is returned as is.
func (e *Engine) Submit(ctx context.Context, m mutation.Mutation) (character.View, error) {
	if err := ctx.Err(); err != nil {
		return character.View{}, err
	}
	mutationType := typeOf(m)
	_, span := e.tracer.Start(ctx, "sheet.Submit", trace.WithAttributes(
		attribute.String("mutation.type", string(mutationType)),
	))
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.current.Load().snapshot
	span.SetAttributes(attribute.String("character.id", current.ID))
	if err := mutation.Check(character.NewView(current, nil), m); err != nil {
		recordError(span, err, "mutation rejected")
		e.logger.Debug("mutation rejected",
			zap.String("character_id", current.ID),
			zap.String("mutation", string(mutationType)),
			zap.String("code", string(apperrors.CodeOf(err))),
		)
		return character.View{}, err
	}

	next, effects, err := e.apply(current, m)
	if err != nil {
		recordError(span, err, "invariant violated")
		e.logger.Error("mutation broke an invariant",
			zap.String("character_id", current.ID),
			zap.String("mutation", string(mutationType)),
			zap.Error(err),
		)
		return character.View{}, err
	}

	entry := e.journal.Append(Entry{
		Mutation:   m,
		Effects:    effects,
		Checkpoint: current,
		AppliedAt:  e.now().UTC(),
	})
	view := e.publish(next)
	span.SetAttributes(attribute.Int64("journal.seq", int64(entry.Seq)))
	e.logger.Debug("mutation applied",
		zap.String("character_id", current.ID),
		zap.String("mutation", string(mutationType)),
		zap.Uint64("seq", entry.Seq),
		zap.Strings("unequipped_weapons", effects.UnequippedWeapons),
		zap.Strings("unequipped_armor", effects.UnequippedArmor),
		zap.Strings("released_commitments", effects.ReleasedCommitments),
	)
	return view, nil
}

// Undo republishes the snapshot from before the most recent applied entry.
func (e *Engine) Undo(ctx context.Context) (character.View, error) {
	if err := ctx.Err(); err != nil {
		return character.View{}, err
	}
	_, span := e.tracer.Start(ctx, "sheet.Undo")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.journal.Undo()
	if !ok {
		recordError(span, ErrNothingToUndo, "nothing to undo")
		return character.View{}, ErrNothingToUndo
	}
	span.SetAttributes(
		attribute.String("mutation.type", string(entry.Mutation.Type())),
		attribute.Int64("journal.seq", int64(entry.Seq)),
	)
	view := e.publish(entry.Checkpoint)
	e.logger.Debug("mutation undone",
		zap.String("character_id", entry.Checkpoint.ID),
		zap.String("mutation", string(entry.Mutation.Type())),
		zap.Uint64("seq", entry.Seq),
	)
	return view, nil
}

// Redo re-applies the entry after the cursor. It was valid when first
// applied and nothing has been applied since, so it is not checked again.
func (e *Engine) Redo(ctx context.Context) (character.View, error) {
	if err := ctx.Err(); err != nil {
		return character.View{}, err
	}
	_, span := e.tracer.Start(ctx, "sheet.Redo")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.journal.Next()
	if !ok {
		recordError(span, ErrNothingToRedo, "nothing to redo")
		return character.View{}, ErrNothingToRedo
	}
	span.SetAttributes(
		attribute.String("mutation.type", string(entry.Mutation.Type())),
		attribute.Int64("journal.seq", int64(entry.Seq)),
	)
	next, _, err := e.apply(e.current.Load().snapshot, entry.Mutation)
	if err != nil {
		recordError(span, err, "invariant violated")
		e.logger.Error("redo broke an invariant",
			zap.String("mutation", string(entry.Mutation.Type())),
			zap.Uint64("seq", entry.Seq),
			zap.Error(err),
		)
		return character.View{}, err
	}
	e.journal.Advance()
	view := e.publish(next)
	e.logger.Debug("mutation redone",
		zap.String("character_id", next.ID),
		zap.String("mutation", string(entry.Mutation.Type())),
		zap.Uint64("seq", entry.Seq),
	)
	return view, nil
}

// CanUndo reports whether Undo would succeed.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.journal.CanUndo()
}

// CanRedo reports whether Redo would succeed.
func (e *Engine) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.journal.CanRedo()
}

// History lists journal entries, oldest first.
func (e *Engine) History() []Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.journal.Records()
}

// apply runs m on a clone of current and verifies the result.
func (e *Engine) apply(current *character.Snapshot, m mutation.Mutation) (*character.Snapshot, mutation.Effects, error) {
	next := current.Clone()
	effects, err := mutation.Apply(next, m)
	if err != nil {
		return nil, mutation.Effects{}, wrapNonRetryable(err)
	}
	if err := next.Verify(); err != nil {
		return nil, mutation.Effects{}, wrapNonRetryable(err)
	}
	return next, effects, nil
}

// publish makes snapshot the current revision, invalidating older views.
func (e *Engine) publish(snapshot *character.Snapshot) character.View {
	generation := e.generation.Advance()
	e.current.Store(&revision{snapshot: snapshot, generation: generation})
	return character.ViewAt(snapshot, &e.generation, generation)
}

func typeOf(m mutation.Mutation) mutation.Type {
	if m == nil {
		return ""
	}
	return m.Type()
}

func recordError(span trace.Span, err error, description string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, description)
}
