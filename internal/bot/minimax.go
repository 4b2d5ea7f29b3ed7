package bot

import (
	"context"
	"math"

	"ctchen222/tictactoe/internal/game"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Terminal scores. A win found deeper in the tree is worth depth less, and a
// loss found deeper costs depth less, so the engine takes the fastest win and
// delays the slowest loss.
const (
	WinScore  = 10
	LossScore = -10
	DrawScore = 0
)

var (
	tracer = otel.Tracer("bot")
	meter  = otel.Meter("bot")
)

// MoveScore is the minimax value of playing Cell from the searched position.
type MoveScore struct {
	Cell  int
	Score int
}

// Result is the outcome of a root search.
type Result struct {
	Cell  int
	Score int
	Nodes int
}

// Option configures an Engine.
type Option func(*Engine)

// WithPruning enables alpha-beta pruning. It never changes the chosen move or
// its score, only the number of nodes visited.
func WithPruning() Option {
	return func(e *Engine) {
		e.pruning = true
	}
}

// Engine runs exhaustive minimax searches. It holds no per-search state and is
// safe for concurrent use.
type Engine struct {
	pruning bool
	nodes   metric.Int64Histogram
}

// NewEngine creates a new minimax engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	// The global meter falls back to a no-op provider, so this only fails on
	// an invalid instrument name.
	e.nodes, _ = meter.Int64Histogram("bot.search.nodes",
		metric.WithDescription("Positions visited by a single root search"),
	)
	return e
}

var defaultEngine = NewEngine()

// BestMove returns the cell the engine mark should take. See Engine.Search.
func BestMove(b *game.Board, engine, opponent game.PlayerMark) int {
	return defaultEngine.Search(context.Background(), b, engine, opponent).Cell
}

// BestMoveWithScore is BestMove that also returns the minimax score of the move.
func BestMoveWithScore(b *game.Board, engine, opponent game.PlayerMark) (cell, score int) {
	res := defaultEngine.Search(context.Background(), b, engine, opponent)
	return res.Cell, res.Score
}

// Search explores every continuation of b with engine to move and returns the
// best cell. Candidates are tried in ascending index order and only a strictly
// better score replaces the current best, so ties go to the lowest index.
//
// The caller must not search a board that is full or already decided; doing so
// panics.
func (e *Engine) Search(ctx context.Context, b *game.Board, engine, opponent game.PlayerMark) Result {
	_, span := tracer.Start(ctx, "bot.Search", trace.WithAttributes(
		attribute.String("bot.mark", string(engine)),
		attribute.Int("board.empty", len(b.EmptyCells())),
		attribute.Bool("bot.pruning", e.pruning),
	))
	defer span.End()

	mustBeSearchable(b)

	s := &search{engine: engine, opponent: opponent, pruning: e.pruning}
	res := Result{Cell: -1, Score: math.MinInt}
	alpha := math.MinInt
	for _, cell := range b.EmptyCells() {
		score := s.minimax(s.child(b, cell, engine), 1, false, alpha, math.MaxInt)
		if score > res.Score {
			res.Cell, res.Score = cell, score
		}
		if e.pruning && score > alpha {
			alpha = score
		}
	}
	res.Nodes = s.nodes

	e.nodes.Record(ctx, int64(s.nodes), metric.WithAttributes(attribute.Bool("bot.pruning", e.pruning)))
	span.SetAttributes(
		attribute.Int("bot.cell", res.Cell),
		attribute.Int("bot.score", res.Score),
		attribute.Int("bot.nodes", res.Nodes),
	)
	return res
}

// ScoreMoves returns the exact minimax score of every empty cell, in ascending
// cell order. Pruning is never applied at the root here, so every score is exact.
func (e *Engine) ScoreMoves(ctx context.Context, b *game.Board, engine, opponent game.PlayerMark) []MoveScore {
	_, span := tracer.Start(ctx, "bot.ScoreMoves", trace.WithAttributes(
		attribute.String("bot.mark", string(engine)),
	))
	defer span.End()

	mustBeSearchable(b)

	s := &search{engine: engine, opponent: opponent, pruning: e.pruning}
	empty := b.EmptyCells()
	out := make([]MoveScore, 0, len(empty))
	for _, cell := range empty {
		score := s.minimax(s.child(b, cell, engine), 1, false, math.MinInt, math.MaxInt)
		out = append(out, MoveScore{Cell: cell, Score: score})
	}
	span.SetAttributes(attribute.Int("bot.nodes", s.nodes))
	return out
}

func mustBeSearchable(b *game.Board) {
	if game.Evaluate(b).IsTerminal() {
		panic("bot: search called on a finished board")
	}
}

// search carries the state of one root search down the recursion.
type search struct {
	engine   game.PlayerMark
	opponent game.PlayerMark
	pruning  bool
	nodes    int
}

// child returns a copy of b with mark placed on cell.
func (s *search) child(b *game.Board, cell int, mark game.PlayerMark) *game.Board {
	next := b.Clone()
	if err := next.Place(cell, mark); err != nil {
		panic("bot: generated an illegal move: " + err.Error())
	}
	return next
}

func (s *search) minimax(b *game.Board, depth int, maximizing bool, alpha, beta int) int {
	s.nodes++

	out := game.Evaluate(b)
	switch {
	case out.Status == game.Win && out.Winner == s.engine:
		return WinScore - depth
	case out.Status == game.Win:
		return LossScore + depth
	case out.Status == game.Draw:
		return DrawScore
	}

	if maximizing {
		best := math.MinInt
		for _, cell := range b.EmptyCells() {
			best = max(best, s.minimax(s.child(b, cell, s.engine), depth+1, false, alpha, beta))
			if s.pruning {
				alpha = max(alpha, best)
				if alpha >= beta {
					break
				}
			}
		}
		return best
	}

	best := math.MaxInt
	for _, cell := range b.EmptyCells() {
		best = min(best, s.minimax(s.child(b, cell, s.opponent), depth+1, true, alpha, beta))
		if s.pruning {
			beta = min(beta, best)
			if alpha >= beta {
				break
			}
		}
	}
	return best
}
