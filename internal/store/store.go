// Package store handles SQLite persistence of scored attempts.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/sprech/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// lowPhonemeScore marks a phoneme occurrence as a miss in aggregates.
const lowPhonemeScore = 75

// ErrNotFound is returned when an attempt does not exist.
var ErrNotFound = errors.New("attempt not found")

// Store wraps SQLite access for attempt data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id TEXT PRIMARY KEY,
			scored_at TEXT NOT NULL,
			label TEXT NOT NULL,
			transcript TEXT NOT NULL,
			overall INTEGER NOT NULL,
			has_errors INTEGER NOT NULL,
			word_count INTEGER NOT NULL,
			result_json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS attempt_phonemes (
			attempt_id TEXT NOT NULL,
			word_pos INTEGER NOT NULL,
			phoneme_pos INTEGER NOT NULL,
			symbol TEXT NOT NULL,
			score INTEGER NOT NULL,
			PRIMARY KEY (attempt_id, word_pos, phoneme_pos)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_scored_at ON attempts(scored_at);`,
		`CREATE INDEX IF NOT EXISTS idx_attempt_phonemes_symbol ON attempt_phonemes(symbol);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAttempt stores a scored attempt and its phoneme scores. An empty ID
// is replaced with a new UUID; the stored ID is returned.
func (s *Store) InsertAttempt(ctx context.Context, attempt model.Attempt) (id string, err error) {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	if attempt.ScoredAt.IsZero() {
		attempt.ScoredAt = time.Now()
	}
	payload, err := json.Marshal(attempt.Result)
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO attempts (id, scored_at, label, transcript, overall, has_errors, word_count, result_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		attempt.ID,
		attempt.ScoredAt.UTC().Format(time.RFC3339Nano),
		attempt.Label,
		attempt.Transcript,
		attempt.Result.Overall,
		attempt.Result.HasErrors,
		len(attempt.Result.Words),
		string(payload),
	)
	if err != nil {
		return "", err
	}

	if hasPhonemes(attempt.Result) {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO attempt_phonemes (attempt_id, word_pos, phoneme_pos, symbol, score)
			 VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return "", err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for wi, word := range attempt.Result.Words {
			for pi, ps := range word.PhonemeScores {
				if _, err = stmt.ExecContext(ctx, attempt.ID, wi, pi, ps.Symbol, ps.Score); err != nil {
					return "", err
				}
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return attempt.ID, nil
}

func hasPhonemes(res model.SessionResult) bool {
	for _, w := range res.Words {
		if len(w.PhonemeScores) > 0 {
			return true
		}
	}
	return false
}

// GetAttempt loads a stored attempt by ID or unique ID prefix.
func (s *Store) GetAttempt(ctx context.Context, id string) (model.Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, scored_at, label, transcript, result_json FROM attempts WHERE id LIKE ? || '%' LIMIT 2`, id)
	if err != nil {
		return model.Attempt{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var found []model.Attempt
	for rows.Next() {
		var a model.Attempt
		var scoredAt, payload string
		if err := rows.Scan(&a.ID, &scoredAt, &a.Label, &a.Transcript, &payload); err != nil {
			return model.Attempt{}, err
		}
		if a.ScoredAt, err = time.Parse(time.RFC3339Nano, scoredAt); err != nil {
			return model.Attempt{}, err
		}
		if err := json.Unmarshal([]byte(payload), &a.Result); err != nil {
			return model.Attempt{}, fmt.Errorf("failed to decode stored result: %w", err)
		}
		found = append(found, a)
	}
	if err := rows.Err(); err != nil {
		return model.Attempt{}, err
	}
	switch len(found) {
	case 0:
		return model.Attempt{}, ErrNotFound
	case 1:
		return found[0], nil
	default:
		return model.Attempt{}, fmt.Errorf("attempt id prefix %q is ambiguous", id)
	}
}

// ListAttempts returns attempt aggregates filtered by stats config, oldest first.
func (s *Store) ListAttempts(ctx context.Context, cfg model.StatsConfig) ([]model.AttemptAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "scored_at >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, scored_at, overall, word_count
		FROM attempts
		WHERE %s
		ORDER BY scored_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var attempts []model.AttemptAggregate
	for rows.Next() {
		var agg model.AttemptAggregate
		var scoredAt string
		if err := rows.Scan(&agg.AttemptID, &scoredAt, &agg.Overall, &agg.Words); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, scoredAt)
		if err != nil {
			return nil, err
		}
		agg.ScoredAt = parsed
		attempts = append(attempts, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return attempts, nil
}

// GetWeakPhonemes aggregates phoneme scores over the most recent attempts.
func (s *Store) GetWeakPhonemes(ctx context.Context, window int) ([]model.PhonemeAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent AS (
		SELECT id FROM attempts
		ORDER BY scored_at DESC
		LIMIT ?
	)
	SELECT p.symbol, COUNT(*), SUM(p.score), SUM(CASE WHEN p.score < ? THEN 1 ELSE 0 END)
	FROM attempt_phonemes p
	JOIN recent r ON r.id = p.attempt_id
	GROUP BY p.symbol`
	return s.queryPhonemeAggregates(ctx, query, window, lowPhonemeScore)
}

// ListPhonemeAggregatesForAttempts aggregates phoneme scores across attempts.
func (s *Store) ListPhonemeAggregatesForAttempts(ctx context.Context, attemptIDs []string) ([]model.PhonemeAggregate, error) {
	if len(attemptIDs) == 0 {
		return nil, nil
	}
	placeholders, args := inClause(attemptIDs)
	query := fmt.Sprintf(`SELECT symbol, COUNT(*), SUM(score), SUM(CASE WHEN score < ? THEN 1 ELSE 0 END)
		FROM attempt_phonemes
		WHERE attempt_id IN (%s)
		GROUP BY symbol`, placeholders)
	return s.queryPhonemeAggregates(ctx, query, append([]any{lowPhonemeScore}, args...)...)
}

func (s *Store) queryPhonemeAggregates(ctx context.Context, query string, args ...any) ([]model.PhonemeAggregate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.PhonemeAggregate
	for rows.Next() {
		var agg model.PhonemeAggregate
		if err := rows.Scan(&agg.Symbol, &agg.Count, &agg.ScoreSum, &agg.Low); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListPhonemeStatsForAttempts returns per-attempt aggregates for selected phonemes.
func (s *Store) ListPhonemeStatsForAttempts(ctx context.Context, attemptIDs []string, symbols []string) (map[string]map[string]model.PhonemeAggregate, error) {
	if len(attemptIDs) == 0 || len(symbols) == 0 {
		return map[string]map[string]model.PhonemeAggregate{}, nil
	}
	idPlaceholders, args := inClause(attemptIDs)
	symbolPlaceholders, symbolArgs := inClause(symbols)
	args = append([]any{lowPhonemeScore}, append(args, symbolArgs...)...)

	query := fmt.Sprintf(`SELECT attempt_id, symbol, COUNT(*), SUM(score), SUM(CASE WHEN score < ? THEN 1 ELSE 0 END)
		FROM attempt_phonemes
		WHERE attempt_id IN (%s) AND symbol IN (%s)
		GROUP BY attempt_id, symbol`, idPlaceholders, symbolPlaceholders)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	result := map[string]map[string]model.PhonemeAggregate{}
	for rows.Next() {
		var attemptID string
		var agg model.PhonemeAggregate
		if err := rows.Scan(&attemptID, &agg.Symbol, &agg.Count, &agg.ScoreSum, &agg.Low); err != nil {
			return nil, err
		}
		if _, ok := result[attemptID]; !ok {
			result[attemptID] = map[string]model.PhonemeAggregate{}
		}
		result[attemptID][agg.Symbol] = agg
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func inClause(values []string) (string, []any) {
	placeholders := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		args[i] = v
	}
	return strings.Join(placeholders, ","), args
}
