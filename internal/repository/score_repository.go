package repository

import (
	"context"
	"fmt"
	"time"

	"ctchen222/tictactoe/internal/game"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("repository.score")

// GameResult is one finished game.
type GameResult struct {
	RoomID     string
	GameID     string
	Outcome    game.Outcome
	Moves      int
	FinishedAt time.Time
}

// Tally is the running score of a room.
type Tally struct {
	Games int
	Draws int
	Wins  map[game.PlayerMark]int
}

// ScoreRepository defines the interface for scoreboard operations.
type ScoreRepository interface {
	RecordResult(ctx context.Context, result GameResult) error
	Tally(ctx context.Context, roomID string) (*Tally, error)
	ListResults(ctx context.Context, roomID string) ([]GameResult, error)
}

type sqliteScoreRepository struct {
	db *sqlx.DB
}

// NewScoreRepository creates a new SQLite-based ScoreRepository. The schema
// must already exist, see db.InitializeDB.
func NewScoreRepository(db *sqlx.DB) ScoreRepository {
	return &sqliteScoreRepository{db: db}
}

type resultRow struct {
	RoomID     string `db:"room_id"`
	GameID     string `db:"game_id"`
	Status     string `db:"status"`
	Winner     string `db:"winner"`
	Moves      int    `db:"moves"`
	FinishedAt int64  `db:"finished_at"`
}

// RecordResult stores a finished game. Games still in progress are rejected.
func (r *sqliteScoreRepository) RecordResult(ctx context.Context, result GameResult) error {
	ctx, span := tracer.Start(ctx, "ScoreRepository.RecordResult", trace.WithAttributes(
		attribute.String("room.id", result.RoomID),
		attribute.String("game.id", result.GameID),
		attribute.String("game.status", result.Outcome.Status.String()),
	))
	defer span.End()

	if !result.Outcome.IsTerminal() {
		err := fmt.Errorf("game %s is still in progress", result.GameID)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Game not finished")
		return err
	}
	if result.FinishedAt.IsZero() {
		result.FinishedAt = time.Now()
	}

	row := resultRow{
		RoomID:     result.RoomID,
		GameID:     result.GameID,
		Status:     result.Outcome.Status.String(),
		Winner:     string(result.Outcome.Winner),
		Moves:      result.Moves,
		FinishedAt: result.FinishedAt.UnixMilli(),
	}
	query := `INSERT INTO results (room_id, game_id, status, winner, moves, finished_at)
		VALUES (:room_id, :game_id, :status, :winner, :moves, :finished_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to insert result")
		return fmt.Errorf("failed to record result: %w", err)
	}
	return nil
}

// Tally sums up every recorded game of a room.
func (r *sqliteScoreRepository) Tally(ctx context.Context, roomID string) (*Tally, error) {
	ctx, span := tracer.Start(ctx, "ScoreRepository.Tally", trace.WithAttributes(
		attribute.String("room.id", roomID),
	))
	defer span.End()

	var totals struct {
		Games int `db:"games"`
		Draws int `db:"draws"`
	}
	query := `SELECT COUNT(*) AS games,
		COALESCE(SUM(CASE WHEN status = 'draw' THEN 1 ELSE 0 END), 0) AS draws
		FROM results WHERE room_id = ?`
	if err := r.db.GetContext(ctx, &totals, query, roomID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to count results")
		return nil, fmt.Errorf("failed to count results: %w", err)
	}

	var wins []struct {
		Winner string `db:"winner"`
		Wins   int    `db:"wins"`
	}
	query = `SELECT winner, COUNT(*) AS wins FROM results
		WHERE room_id = ? AND status = 'win' GROUP BY winner`
	if err := r.db.SelectContext(ctx, &wins, query, roomID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to count wins")
		return nil, fmt.Errorf("failed to count wins: %w", err)
	}

	tally := &Tally{
		Games: totals.Games,
		Draws: totals.Draws,
		Wins:  make(map[game.PlayerMark]int, len(wins)),
	}
	for _, w := range wins {
		tally.Wins[game.PlayerMark(w.Winner)] = w.Wins
	}
	return tally, nil
}

// ListResults returns the results of a room, oldest first.
func (r *sqliteScoreRepository) ListResults(ctx context.Context, roomID string) ([]GameResult, error) {
	ctx, span := tracer.Start(ctx, "ScoreRepository.ListResults", trace.WithAttributes(
		attribute.String("room.id", roomID),
	))
	defer span.End()

	var rows []resultRow
	query := `SELECT room_id, game_id, status, winner, moves, finished_at
		FROM results WHERE room_id = ? ORDER BY id`
	if err := r.db.SelectContext(ctx, &rows, query, roomID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list results")
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	results := make([]GameResult, 0, len(rows))
	for _, row := range rows {
		out := game.Outcome{Status: game.Draw}
		if row.Status == game.Win.String() {
			out = game.Outcome{Status: game.Win, Winner: game.PlayerMark(row.Winner)}
		}
		results = append(results, GameResult{
			RoomID:     row.RoomID,
			GameID:     row.GameID,
			Outcome:    out,
			Moves:      row.Moves,
			FinishedAt: time.UnixMilli(row.FinishedAt),
		})
	}
	return results, nil
}
