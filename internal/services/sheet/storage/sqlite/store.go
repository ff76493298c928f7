package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	sqlitemigrate "github.com/louisbranch/charsheet/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/charsheet/internal/platform/timeouts"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/mutation"
	"github.com/louisbranch/charsheet/internal/services/sheet/storage"
	"github.com/louisbranch/charsheet/internal/services/sheet/storage/sqlite/migrations"
)

const timeFormat = time.RFC3339Nano

// Store provides a SQLite-backed store implementing sheet storage interfaces.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Store = (*Store)(nil)

// Open opens a SQLite store at the provided path and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=%d&_synchronous=NORMAL",
		cleanPath, timeouts.StoreBusy.Milliseconds())
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// queryer is implemented by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PutSnapshot inserts or replaces a character document.
func (s *Store) PutSnapshot(ctx context.Context, doc storage.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return putSnapshot(ctx, s.sqlDB, doc)
}

// GetSnapshot loads and upgrades a character document.
func (s *Store) GetSnapshot(ctx context.Context, characterID string) (storage.Document, error) {
	if err := ctx.Err(); err != nil {
		return storage.Document{}, err
	}
	var data string
	row := s.sqlDB.QueryRowContext(ctx, "SELECT document FROM characters WHERE id = ?", characterID)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Document{}, storage.ErrNotFound.With("character_id", characterID)
		}
		return storage.Document{}, fmt.Errorf("get character %s: %w", characterID, err)
	}
	return storage.DecodeDocument([]byte(data))
}

// AppendMutation records one applied mutation. Sequence numbers are unique per character.
func (s *Store) AppendMutation(ctx context.Context, record storage.MutationRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return appendMutation(ctx, s.sqlDB, record)
}

// Commit stores doc and records in a single transaction.
func (s *Store) Commit(ctx context.Context, doc storage.Document, records []storage.MutationRecord) ([]storage.MutationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	characterID, err := documentID(doc)
	if err != nil {
		return nil, err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := putSnapshot(ctx, tx, doc); err != nil {
		return nil, err
	}
	seq, err := nextSeq(ctx, tx, characterID)
	if err != nil {
		return nil, err
	}
	stored := make([]storage.MutationRecord, len(records))
	for i, record := range records {
		if record.CharacterID == "" {
			record.CharacterID = characterID
		}
		if record.CharacterID != characterID {
			return nil, fmt.Errorf("mutation for %s committed with character %s", record.CharacterID, characterID)
		}
		record.Seq = seq + uint64(i)
		if err := appendMutation(ctx, tx, record); err != nil {
			return nil, err
		}
		stored[i] = record
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return stored, nil
}

// ListMutations returns a character's mutations in sequence order.
func (s *Store) ListMutations(ctx context.Context, characterID string) ([]storage.MutationRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT seq, type, payload, applied_at FROM mutations WHERE character_id = ? ORDER BY seq",
		characterID,
	)
	if err != nil {
		return nil, fmt.Errorf("list mutations for %s: %w", characterID, err)
	}
	defer rows.Close()

	var records []storage.MutationRecord
	for rows.Next() {
		var (
			seq       int64
			typ       string
			payload   string
			appliedAt string
		)
		if err := rows.Scan(&seq, &typ, &payload, &appliedAt); err != nil {
			return nil, fmt.Errorf("scan mutation: %w", err)
		}
		at, err := time.Parse(timeFormat, appliedAt)
		if err != nil {
			return nil, fmt.Errorf("parse applied_at %q: %w", appliedAt, err)
		}
		records = append(records, storage.MutationRecord{
			CharacterID: characterID,
			Seq:         uint64(seq),
			Envelope:    mutation.Envelope{Type: mutation.Type(typ), Payload: json.RawMessage(payload)},
			AppliedAt:   at,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mutations: %w", err)
	}
	return records, nil
}

// NextSeq returns the sequence number following the last recorded mutation.
func (s *Store) NextSeq(ctx context.Context, characterID string) (uint64, error) {
	return nextSeq(ctx, s.sqlDB, characterID)
}

func documentID(doc storage.Document) (string, error) {
	if doc.Snapshot == nil {
		return "", fmt.Errorf("snapshot is required")
	}
	characterID := doc.CharacterID
	if characterID == "" {
		characterID = doc.Snapshot.ID
	}
	if strings.TrimSpace(characterID) == "" {
		return "", fmt.Errorf("character id is required")
	}
	return characterID, nil
}

func putSnapshot(ctx context.Context, q queryer, doc storage.Document) error {
	characterID, err := documentID(doc)
	if err != nil {
		return err
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}
	data, err := storage.EncodeDocument(doc)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx, `
INSERT INTO characters (id, schema_version, document, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    schema_version = excluded.schema_version,
    document = excluded.document,
    updated_at = excluded.updated_at`,
		characterID, storage.SchemaVersion, string(data), doc.UpdatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("put character %s: %w", characterID, err)
	}
	return nil
}

func appendMutation(ctx context.Context, q queryer, record storage.MutationRecord) error {
	if strings.TrimSpace(record.CharacterID) == "" {
		return fmt.Errorf("character id is required")
	}
	if !mutation.Registered(record.Envelope.Type) {
		return mutation.ErrUnknownType.With("type", string(record.Envelope.Type))
	}
	appliedAt := record.AppliedAt
	if appliedAt.IsZero() {
		appliedAt = time.Now().UTC()
	}
	payload := record.Envelope.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	_, err := q.ExecContext(ctx,
		"INSERT INTO mutations (character_id, seq, type, payload, applied_at) VALUES (?, ?, ?, ?, ?)",
		record.CharacterID, int64(record.Seq), string(record.Envelope.Type), string(payload), appliedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("append mutation %d for %s: %w", record.Seq, record.CharacterID, err)
	}
	return nil
}

func nextSeq(ctx context.Context, q queryer, characterID string) (uint64, error) {
	var last sql.NullInt64
	row := q.QueryRowContext(ctx, "SELECT MAX(seq) FROM mutations WHERE character_id = ?", characterID)
	if err := row.Scan(&last); err != nil {
		return 0, fmt.Errorf("next seq for %s: %w", characterID, err)
	}
	if !last.Valid {
		return 1, nil
	}
	return uint64(last.Int64) + 1, nil
}
