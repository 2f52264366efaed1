// Package reversi is an in-process engine speaking the same operations as the remote one.
// Its AI is a one-ply greedy bot, good enough for offline play and tests.
package reversi

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rocketscienceinc/reversi-client/internal/apperror"
	"github.com/rocketscienceinc/reversi-client/internal/entity"
)

var (
	ErrInvalidBoard     = errors.New("invalid board")
	ErrNoAvailableMoves = errors.New("no available moves")
)

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

type Engine struct{}

func New() *Engine {
	return &Engine{}
}

// Init - returns the opening position.
func (that *Engine) Init(ctx context.Context, size int) (entity.Board, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := entity.ValidateSize(size); err != nil {
		return nil, err
	}

	return entity.NewBoard(size), nil
}

// LegalMoves - lists the moves of player in row-major order.
func (that *Engine) LegalMoves(ctx context.Context, board entity.Board, player entity.Player) ([]entity.Move, error) {
	if err := checkInput(ctx, board, player); err != nil {
		return nil, err
	}

	return LegalMoves(board, player), nil
}

// ApplyMove - places a disc and flips the bracketed lines.
func (that *Engine) ApplyMove(ctx context.Context, board entity.Board, move entity.Move, player entity.Player) (entity.Board, error) {
	if err := checkInput(ctx, board, player); err != nil {
		return nil, err
	}

	next, flipped := Apply(board, move, player)
	if flipped == 0 {
		return nil, fmt.Errorf("%w: %s is not legal for %s", apperror.ErrRejected, move, player)
	}

	return next, nil
}

// AIMove - picks the move flipping the most discs.
func (that *Engine) AIMove(ctx context.Context, board entity.Board, player entity.Player, difficulty entity.Difficulty) (*entity.AIMove, error) {
	if err := checkInput(ctx, board, player); err != nil {
		return nil, err
	}

	started := time.Now()

	ranked := rank(board, player)
	if len(ranked) == 0 {
		return nil, fmt.Errorf("%w: %w", apperror.ErrRejected, ErrNoAvailableMoves)
	}

	best := ranked[0].Move
	next, _ := Apply(board, best, player)

	return &entity.AIMove{
		Board: next,
		Move:  best,
		Stats: entity.SearchStats{
			NodesExplored: len(ranked),
			TimeMs:        float64(time.Since(started).Microseconds()) / 1000,
			DepthReached:  1,
		},
	}, nil
}

// Analyze - all legal moves ranked by flip count.
func (that *Engine) Analyze(ctx context.Context, board entity.Board, player entity.Player) ([]entity.RankedMove, error) {
	if err := checkInput(ctx, board, player); err != nil {
		return nil, err
	}

	return rank(board, player), nil
}

func checkInput(ctx context.Context, board entity.Board, player entity.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !board.Valid() {
		return fmt.Errorf("%w: %w", apperror.ErrRejected, ErrInvalidBoard)
	}

	if !player.Valid() {
		return fmt.Errorf("%w: unknown player %d", apperror.ErrRejected, int(player))
	}

	return nil
}

// LegalMoves - moves that bracket at least one opposing line.
func LegalMoves(board entity.Board, player entity.Player) []entity.Move {
	moves := make([]entity.Move, 0)
	for row := range board {
		for col := range board[row] {
			move := entity.Move{Row: row, Col: col}
			if flips(board, move, player) > 0 {
				moves = append(moves, move)
			}
		}
	}

	return moves
}

// Apply - returns the board after the move and the number of flipped discs.
// The input board is never modified; zero flips means the move was illegal.
func Apply(board entity.Board, move entity.Move, player entity.Player) (entity.Board, int) {
	if flips(board, move, player) == 0 {
		return board, 0
	}

	next := board.Clone()
	next[move.Row][move.Col] = player.Cell()

	total := 0
	for _, dir := range directions {
		n := lineFlips(board, move, dir, player)
		for step := 1; step <= n; step++ {
			next[move.Row+dir[0]*step][move.Col+dir[1]*step] = player.Cell()
		}
		total += n
	}

	return next, total
}

func flips(board entity.Board, move entity.Move, player entity.Player) int {
	if !board.InBounds(move) || board[move.Row][move.Col] != entity.Empty {
		return 0
	}

	total := 0
	for _, dir := range directions {
		total += lineFlips(board, move, dir, player)
	}

	return total
}

// lineFlips - opposing discs bracketed from move along dir, 0 when the line is open.
func lineFlips(board entity.Board, move entity.Move, dir [2]int, player entity.Player) int {
	opponent := player.Opponent().Cell()

	n := 0
	for step := 1; ; step++ {
		pos := entity.Move{Row: move.Row + dir[0]*step, Col: move.Col + dir[1]*step}
		if !board.InBounds(pos) {
			return 0
		}

		switch board[pos.Row][pos.Col] {
		case opponent:
			n++
		case player.Cell():
			return n
		default:
			return 0
		}
	}
}

func rank(board entity.Board, player entity.Player) []entity.RankedMove {
	moves := LegalMoves(board, player)

	ranked := make([]entity.RankedMove, 0, len(moves))
	for _, move := range moves {
		ranked = append(ranked, entity.RankedMove{
			Move:       move,
			Score:      float64(flips(board, move, player)),
			Evaluation: "flips",
		})
	}

	// stable: row-major order among equal scores
	slices.SortStableFunc(ranked, func(a, b entity.RankedMove) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return ranked
}
