// SPDX-License-Identifier: MIT

// Package store keeps imported message sources in SQLite.
//
// A source is a named, ordered list of chat messages. The schema is managed
// by embedded goose migrations applied on Open.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/netxplore/core"
)

// Sentinel errors for the source store.
var (
	// ErrSourceNotFound is returned when a source ID is unknown.
	ErrSourceNotFound = errors.New("store: source not found")

	// ErrEmptyName is returned when a source is created without a name.
	ErrEmptyName = errors.New("store: source name is empty")

	// ErrBadImport is returned when an import payload cannot be decoded.
	ErrBadImport = errors.New("store: malformed import")
)

// Source describes one stored conversation.
type Source struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Messages  int       `json:"messages"`
}

// Store is a SQLite-backed message-source repository. It is safe for
// concurrent use.
type Store struct {
	db  *sql.DB
	log *zap.Logger
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies the
// migrations. Use ":memory:" only for single-connection experiments; each
// pooled connection would see its own empty database.
func Open(ctx context.Context, path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", path, err)
	}
	if err = migrate(db, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Debug("store opened", zap.String("path", path))

	return &Store{db: db, log: log, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSource registers an empty source and returns it.
func (s *Store) CreateSource(ctx context.Context, name string) (Source, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Source{}, ErrEmptyName
	}
	src := Source{ID: uuid.NewString(), Name: name, CreatedAt: s.now().UTC().Truncate(time.Microsecond)}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO sources (id, name, created_at) VALUES (?, ?, ?)`,
		src.ID, src.Name, src.CreatedAt.UnixMicro()); err != nil {
		return Source{}, fmt.Errorf("store: create source: %w", err)
	}

	return src, nil
}

// AppendMessages adds msgs to the end of source id in one transaction.
func (s *Store) AppendMessages(ctx context.Context, id string, msgs []core.Message) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err = appendTx(ctx, tx, id, msgs); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}

	return nil
}

func appendTx(ctx context.Context, tx *sql.Tx, id string, msgs []core.Message) error {
	var next int64
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE((SELECT MAX(seq) + 1 FROM messages WHERE source_id = ?), 0)
		 FROM sources WHERE id = ?`, id, id).Scan(&next)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("store: next seq: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO messages (source_id, seq, author, ts, body) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range msgs {
		if _, err = stmt.ExecContext(ctx, id, next+int64(i), m.Author, m.Timestamp.UTC().UnixMicro(), m.Text); err != nil {
			return fmt.Errorf("store: insert message %d: %w", i, err)
		}
	}

	return nil
}

// Messages returns the messages of source id in timestamp order; messages
// with equal timestamps keep their insertion order.
func (s *Store) Messages(ctx context.Context, id string) ([]core.Message, error) {
	if err := s.exists(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT author, ts, body FROM messages WHERE source_id = ? ORDER BY ts, seq`, id)
	if err != nil {
		return nil, fmt.Errorf("store: query messages: %w", err)
	}
	defer rows.Close()

	out := make([]core.Message, 0)
	for rows.Next() {
		var (
			m  core.Message
			ts int64
		)
		if err = rows.Scan(&m.Author, &ts, &m.Text); err != nil {
			return nil, fmt.Errorf("store: scan message: %w", err)
		}
		m.Timestamp = time.UnixMicro(ts).UTC()
		out = append(out, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate messages: %w", err)
	}

	return out, nil
}

func (s *Store) exists(ctx context.Context, id string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM sources WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("store: lookup source: %w", err)
	}

	return nil
}

// ListSources returns every source, oldest first, with its message count.
func (s *Store) ListSources(ctx context.Context) ([]Source, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.created_at, COUNT(m.seq)
		FROM sources s LEFT JOIN messages m ON m.source_id = s.id
		GROUP BY s.id, s.name, s.created_at
		ORDER BY s.created_at, s.id`)
	if err != nil {
		return nil, fmt.Errorf("store: list sources: %w", err)
	}
	defer rows.Close()

	out := make([]Source, 0)
	for rows.Next() {
		var (
			src     Source
			created int64
		)
		if err = rows.Scan(&src.ID, &src.Name, &created, &src.Messages); err != nil {
			return nil, fmt.Errorf("store: scan source: %w", err)
		}
		src.CreatedAt = time.UnixMicro(created).UTC()
		out = append(out, src)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate sources: %w", err)
	}

	return out, nil
}

// DeleteSource removes a source and its messages.
func (s *Store) DeleteSource(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM messages WHERE source_id = ?`, id); err != nil {
		return fmt.Errorf("store: delete messages: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM sources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete source: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, id)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	s.log.Info("source deleted", zap.String("source", id))

	return nil
}

// ImportJSON reads a JSON array of messages from r and stores it as a new
// source called name. Nothing is stored if decoding fails.
func (s *Store) ImportJSON(ctx context.Context, name string, r io.Reader) (Source, error) {
	var msgs []core.Message
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&msgs); err != nil {
		return Source{}, fmt.Errorf("%w: %w", ErrBadImport, err)
	}

	return s.Import(ctx, name, msgs)
}

// Import stores msgs as a new source called name in one transaction.
func (s *Store) Import(ctx context.Context, name string, msgs []core.Message) (Source, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Source{}, ErrEmptyName
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Source{}, fmt.Errorf("store: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	src := Source{ID: uuid.NewString(), Name: name, CreatedAt: s.now().UTC().Truncate(time.Microsecond), Messages: len(msgs)}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO sources (id, name, created_at) VALUES (?, ?, ?)`,
		src.ID, src.Name, src.CreatedAt.UnixMicro()); err != nil {
		return Source{}, fmt.Errorf("store: create source: %w", err)
	}
	if err = appendTx(ctx, tx, src.ID, msgs); err != nil {
		return Source{}, err
	}
	if err = tx.Commit(); err != nil {
		return Source{}, fmt.Errorf("store: commit: %w", err)
	}
	s.log.Info("source imported",
		zap.String("source", src.ID),
		zap.String("name", src.Name),
		zap.Int("messages", len(msgs)))

	return src, nil
}
