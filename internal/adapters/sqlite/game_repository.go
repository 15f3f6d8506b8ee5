package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/schubart/donald/internal/domain"
)

// GameRepository implements domain.GameRepository with SQLite
type GameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a SQLite-backed repository
func NewGameRepository(dbPath string) (*GameRepository, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create tables if not exist
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		outcome TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_games_started_at ON games(started_at);

	CREATE TABLE IF NOT EXISTS thresholds (
		game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
		color INTEGER NOT NULL,
		threshold INTEGER NOT NULL,
		PRIMARY KEY (game_id, color)
	);

	CREATE TABLE IF NOT EXISTS rounds (
		game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
		round INTEGER NOT NULL,
		color INTEGER NOT NULL,
		PRIMARY KEY (game_id, round)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &GameRepository{db: db}, nil
}

// CreateGame inserts a new game row
func (r *GameRepository) CreateGame(ctx context.Context, game *domain.Game) error {
	query := `INSERT INTO games (id, started_at, outcome) VALUES (?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, game.ID, game.StartedAt.UTC(), string(game.Outcome)); err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}
	return nil
}

// SaveCalibration replaces the thresholds of a game
func (r *GameRepository) SaveCalibration(ctx context.Context, gameID string, thresholds domain.ThresholdTable) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.requireGame(ctx, tx, gameID); err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO thresholds (game_id, color, threshold) VALUES (?, ?, ?)`
	for _, color := range domain.Colors {
		if _, err := tx.ExecContext(ctx, query, gameID, int(color), int(thresholds[color])); err != nil {
			return fmt.Errorf("failed to insert threshold: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit thresholds: %w", err)
	}
	return nil
}

// AppendColor records the color learned in a round
func (r *GameRepository) AppendColor(ctx context.Context, gameID string, round int, color domain.Color) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.requireGame(ctx, tx, gameID); err != nil {
		return err
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM rounds WHERE game_id = ?`, gameID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count rounds: %w", err)
	}
	if round != count+1 {
		return fmt.Errorf("round %d out of order, game has %d colors", round, count)
	}

	query := `INSERT INTO rounds (game_id, round, color) VALUES (?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query, gameID, round, int(color)); err != nil {
		return fmt.Errorf("failed to insert round: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit round: %w", err)
	}
	return nil
}

// FinishGame sets the outcome and finish time
func (r *GameRepository) FinishGame(ctx context.Context, gameID string, outcome domain.Outcome, at time.Time) error {
	query := `UPDATE games SET outcome = ?, finished_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, string(outcome), at.UTC(), gameID)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

// GetGame retrieves a game with its thresholds and sequence
func (r *GameRepository) GetGame(ctx context.Context, id string) (*domain.Game, error) {
	query := `SELECT id, started_at, finished_at, outcome FROM games WHERE id = ?`
	return r.loadGame(ctx, r.db.QueryRowContext(ctx, query, id))
}

// GetLatestGame returns the most recently started game
func (r *GameRepository) GetLatestGame(ctx context.Context) (*domain.Game, error) {
	query := `
		SELECT id, started_at, finished_at, outcome
		FROM games
		ORDER BY started_at DESC
		LIMIT 1
	`
	return r.loadGame(ctx, r.db.QueryRowContext(ctx, query))
}

// DeleteOldGames removes games started before now-olderThan, with their rounds
func (r *GameRepository) DeleteOldGames(ctx context.Context, olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan).UTC()
	query := `DELETE FROM games WHERE started_at < ?`

	if _, err := r.db.ExecContext(ctx, query, cutoff); err != nil {
		return fmt.Errorf("failed to delete old games: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *GameRepository) Close() error {
	return r.db.Close()
}

func (r *GameRepository) requireGame(ctx context.Context, tx *sql.Tx, gameID string) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM games WHERE id = ?`, gameID).Scan(&one)
	if err == sql.ErrNoRows {
		return domain.ErrGameNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query game: %w", err)
	}
	return nil
}

func (r *GameRepository) loadGame(ctx context.Context, row *sql.Row) (*domain.Game, error) {
	var game domain.Game
	var outcome string
	var finished sql.NullTime

	err := row.Scan(&game.ID, &game.StartedAt, &finished, &outcome)
	if err == sql.ErrNoRows {
		return nil, domain.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query game: %w", err)
	}
	game.Outcome = domain.Outcome(outcome)
	if finished.Valid {
		game.FinishedAt = finished.Time
	}

	game.Thresholds = domain.NewThresholdTable()
	rows, err := r.db.QueryContext(ctx, `SELECT color, threshold FROM thresholds WHERE game_id = ?`, game.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query thresholds: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var color, threshold int
		if err := rows.Scan(&color, &threshold); err != nil {
			return nil, fmt.Errorf("failed to scan threshold: %w", err)
		}
		if !domain.Color(color).Valid() {
			return nil, fmt.Errorf("%w: stored color %d", domain.ErrUnknownColor, color)
		}
		game.Thresholds[color] = domain.SensorReading(threshold)
		game.Calibrated = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read thresholds: %w", err)
	}

	seq, err := r.db.QueryContext(ctx, `SELECT color FROM rounds WHERE game_id = ? ORDER BY round ASC`, game.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer seq.Close()
	for seq.Next() {
		var color int
		if err := seq.Scan(&color); err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		game.Sequence = append(game.Sequence, domain.Color(color))
	}
	if err := seq.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rounds: %w", err)
	}

	return &game, nil
}
