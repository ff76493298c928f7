// Package sheet parses sheet command flags and runs character sheet commands
// against the SQLite store.
package sheet

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	entrypoint "github.com/louisbranch/charsheet/internal/platform/cmd"
	apperrors "github.com/louisbranch/charsheet/internal/platform/errors"
	"github.com/louisbranch/charsheet/internal/platform/errors/i18n"
	"github.com/louisbranch/charsheet/internal/platform/logging"
	"github.com/louisbranch/charsheet/internal/services/sheet/content"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/character"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/engine"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/mutation"
	"github.com/louisbranch/charsheet/internal/services/sheet/storage"
	"github.com/louisbranch/charsheet/internal/services/sheet/storage/sqlite"
)

const usage = `usage: sheet [flags] <command> [args]

commands:
  new <name>                 create a character
  show <id>                  print a character document
  apply <id> <file|->        apply a JSON list of mutation envelopes;
                             {"type":"history.undo"} and {"type":"history.redo"}
                             step back and forth within the batch
  history <id>               print the applied mutation log
  catalog                    list catalog entries`

// Config holds sheet command configuration.
type Config struct {
	DBPath       string `env:"DB_PATH" envDefault:"data/sheet.db"`
	CatalogPath  string `env:"CATALOG_PATH"`
	HistoryLimit int    `env:"HISTORY_LIMIT" envDefault:"0"`
	Locale       string `env:"LOCALE" envDefault:"en-US"`
	Logging      logging.Config

	// Args holds the command and its arguments left after flag parsing.
	Args []string
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the sqlite database")
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "path to a YAML content catalog (default: embedded)")
	fs.IntVar(&cfg.HistoryLimit, "history-limit", cfg.HistoryLimit, "undo history limit (0 = unbounded)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for rejection messages")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "log level")
	fs.StringVar(&cfg.Logging.Format, "log-format", cfg.Logging.Format, "log format (json or console)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.HistoryLimit < 0 {
		return Config{}, fmt.Errorf("history limit must be >= 0")
	}
	cfg.Args = fs.Args()
	return cfg, nil
}

// Run executes the command named by cfg.Args.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSheet, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		r := &runner{cfg: cfg, out: out, errOut: errOut, logger: logger}
		return r.dispatch(ctx)
	})
}

type runner struct {
	cfg    Config
	out    io.Writer
	errOut io.Writer
	logger *zap.Logger
}

func (r *runner) dispatch(ctx context.Context) error {
	if len(r.cfg.Args) == 0 {
		fmt.Fprintln(r.errOut, usage)
		return errors.New("command is required")
	}
	command, args := r.cfg.Args[0], r.cfg.Args[1:]

	if command == "catalog" {
		return r.listCatalog()
	}

	var want int
	switch command {
	case "new", "show", "history":
		want = 1
	case "apply":
		want = 2
	default:
		fmt.Fprintln(r.errOut, usage)
		return fmt.Errorf("unknown command %q", command)
	}
	if len(args) != want {
		fmt.Fprintln(r.errOut, usage)
		return fmt.Errorf("%s expects %d argument(s), got %d", command, want, len(args))
	}

	store, err := openStore(r.cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			r.logger.Warn("close store", zap.Error(err))
		}
	}()

	switch command {
	case "new":
		return r.create(ctx, store, args[0])
	case "show":
		return r.show(ctx, store, args[0])
	case "history":
		return r.history(ctx, store, args[0])
	default:
		return r.apply(ctx, store, args[0], args[1])
	}
}

func (r *runner) create(ctx context.Context, store storage.Store, name string) error {
	snap, err := character.New(name)
	if err != nil {
		return r.reject(err)
	}
	doc := storage.NewDocument(snap, time.Now())
	if err := store.PutSnapshot(ctx, doc); err != nil {
		return err
	}
	r.logger.Info("character created", zap.String("character_id", snap.ID))
	return writeJSON(r.out, doc)
}

func (r *runner) show(ctx context.Context, store storage.Store, characterID string) error {
	doc, err := store.GetSnapshot(ctx, characterID)
	if err != nil {
		return r.reject(err)
	}
	return writeJSON(r.out, doc)
}

func (r *runner) history(ctx context.Context, store storage.Store, characterID string) error {
	if _, err := store.GetSnapshot(ctx, characterID); err != nil {
		return r.reject(err)
	}
	records, err := store.ListMutations(ctx, characterID)
	if err != nil {
		return err
	}
	type line struct {
		Seq       uint64          `json:"seq"`
		Type      mutation.Type   `json:"type"`
		Payload   json.RawMessage `json:"payload"`
		AppliedAt time.Time       `json:"applied_at"`
	}
	lines := make([]line, 0, len(records))
	for _, record := range records {
		lines = append(lines, line{
			Seq:       record.Seq,
			Type:      record.Envelope.Type,
			Payload:   record.Envelope.Payload,
			AppliedAt: record.AppliedAt,
		})
	}
	return writeJSON(r.out, lines)
}

// Control steps accepted in an apply batch next to mutation envelopes.
const (
	stepUndo mutation.Type = "history.undo"
	stepRedo mutation.Type = "history.redo"
)

// step is one entry of an apply batch: a mutation, or an undo/redo control.
type step struct {
	control  mutation.Type
	mutation mutation.Mutation
}

// applied pairs a mutation with the journal record it produced.
type applied struct {
	mutation mutation.Mutation
	record   engine.Record
}

// apply runs every step in order. A rejection stops the batch and nothing is
// persisted; otherwise the mutations still in effect and the resulting
// document are committed together.
func (r *runner) apply(ctx context.Context, store storage.Store, characterID, source string) error {
	catalog, err := r.loadCatalog()
	if err != nil {
		return err
	}
	data, err := readSource(source)
	if err != nil {
		return err
	}
	envelopes, err := mutation.ParseEnvelopes(data)
	if err != nil {
		return r.reject(err)
	}
	steps, err := resolveSteps(catalog, envelopes)
	if err != nil {
		return r.reject(err)
	}

	doc, err := store.GetSnapshot(ctx, characterID)
	if err != nil {
		return r.reject(err)
	}
	eng, err := engine.New(doc.Snapshot,
		engine.WithLogger(r.logger),
		engine.WithHistoryLimit(r.cfg.HistoryLimit),
	)
	if err != nil {
		return err
	}

	var done, undone []applied
	for i, st := range steps {
		switch st.control {
		case stepUndo:
			if _, err := eng.Undo(ctx); err != nil {
				fmt.Fprintf(r.errOut, "step %d (%s) rejected: %s\n", i+1, st.control, r.localize(err))
				return fmt.Errorf("apply %s: %w", st.control, err)
			}
			last := done[len(done)-1]
			done = done[:len(done)-1]
			undone = append(undone, last)
		case stepRedo:
			if _, err := eng.Redo(ctx); err != nil {
				fmt.Fprintf(r.errOut, "step %d (%s) rejected: %s\n", i+1, st.control, r.localize(err))
				return fmt.Errorf("apply %s: %w", st.control, err)
			}
			next := undone[len(undone)-1]
			undone = undone[:len(undone)-1]
			done = append(done, next)
		default:
			if _, err := eng.Submit(ctx, st.mutation); err != nil {
				fmt.Fprintf(r.errOut, "step %d (%s) rejected: %s\n", i+1, st.mutation.Type(), r.localize(err))
				return fmt.Errorf("apply %s: %w", st.mutation.Type(), err)
			}
			history := eng.History()
			done = append(done, applied{mutation: st.mutation, record: history[len(history)-1]})
			undone = undone[:0]
		}
	}

	records := make([]storage.MutationRecord, 0, len(done))
	for _, a := range done {
		envelope, err := mutation.Encode(a.mutation)
		if err != nil {
			return err
		}
		records = append(records, storage.MutationRecord{
			CharacterID: characterID,
			Envelope:    envelope,
			AppliedAt:   a.record.AppliedAt,
		})
	}
	updated := storage.NewDocument(eng.Snapshot(), time.Now())
	if _, err := store.Commit(ctx, updated, records); err != nil {
		return err
	}
	for _, a := range done {
		logEffects(r.logger, a.record)
	}
	return writeJSON(r.out, updated)
}

func resolveSteps(catalog *content.Catalog, envelopes []mutation.Envelope) ([]step, error) {
	steps := make([]step, 0, len(envelopes))
	for _, envelope := range envelopes {
		if envelope.Type == stepUndo || envelope.Type == stepRedo {
			steps = append(steps, step{control: envelope.Type})
			continue
		}
		m, err := catalog.Resolve(envelope)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step{mutation: m})
	}
	return steps, nil
}

func (r *runner) listCatalog() error {
	catalog, err := r.loadCatalog()
	if err != nil {
		return err
	}
	return writeJSON(r.out, catalog.Names())
}

func (r *runner) loadCatalog() (*content.Catalog, error) {
	if strings.TrimSpace(r.cfg.CatalogPath) == "" {
		return content.Default()
	}
	return content.Load(r.cfg.CatalogPath)
}

// reject prints the localized message for domain errors and passes err on.
func (r *runner) reject(err error) error {
	if apperrors.CodeOf(err) != apperrors.CodeUnknown {
		fmt.Fprintln(r.errOut, r.localize(err))
	}
	return err
}

func (r *runner) localize(err error) string {
	return i18n.GetCatalog(r.cfg.Locale).Format(string(apperrors.CodeOf(err)), apperrors.MetadataOf(err))
}

func logEffects(logger *zap.Logger, record engine.Record) {
	effects := record.Effects
	if len(effects.UnequippedWeapons)+len(effects.UnequippedArmor)+len(effects.ReleasedCommitments) == 0 {
		return
	}
	logger.Info("mutation side effects",
		zap.Uint64("seq", record.Seq),
		zap.String("type", string(record.Type)),
		zap.Strings("unequipped_weapons", effects.UnequippedWeapons),
		zap.Strings("unequipped_armor", effects.UnequippedArmor),
		zap.Strings("released_commitments", effects.ReleasedCommitments),
	)
}

func readSource(source string) ([]byte, error) {
	if source == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(filepath.Clean(source))
	if err != nil {
		return nil, fmt.Errorf("read mutations: %w", err)
	}
	return data, nil
}

func openStore(path string) (storage.Store, error) {
	cleanPath := filepath.Clean(path)
	if cleanPath == "." || cleanPath == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}

func writeJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
