package entity

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/reversi-client/internal/apperror"
)

// BoardSizes lists the supported board dimensions.
var BoardSizes = []int{6, 8, 10, 12}

// ValidateSize - checks that n is a supported board size.
func ValidateSize(n int) error {
	if !slices.Contains(BoardSizes, n) {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, n)
	}

	return nil
}

// Move is a board coordinate, meaningful only against the board it was legal for.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Score counts discs per side.
type Score struct {
	Black int `json:"black"`
	White int `json:"white"`
}

// Board is an n×n grid indexed as Board[row][col].
type Board [][]Cell

// NewBoard - creates the standard opening position for the given size.
func NewBoard(size int) Board {
	board := make(Board, size)
	for i := range board {
		board[i] = make([]Cell, size)
	}

	if size < 2 {
		return board
	}

	mid := size / 2
	board[mid-1][mid-1], board[mid][mid] = WhiteCell, WhiteCell
	board[mid-1][mid], board[mid][mid-1] = BlackCell, BlackCell

	return board
}

func (that Board) Size() int {
	return len(that)
}

// Valid - reports whether the board is square, of a supported size, and holds only known cells.
func (that Board) Valid() bool {
	if ValidateSize(len(that)) != nil {
		return false
	}

	for _, row := range that {
		if len(row) != len(that) {
			return false
		}
		for _, cell := range row {
			if cell < Empty || cell > WhiteCell {
				return false
			}
		}
	}

	return true
}

func (that Board) Clone() Board {
	if that == nil {
		return nil
	}

	out := make(Board, len(that))
	for i, row := range that {
		out[i] = slices.Clone(row)
	}

	return out
}

// Count - recomputes the score from the board. Pure: the same board always yields the same score.
func (that Board) Count() Score {
	var score Score
	for _, row := range that {
		for _, cell := range row {
			switch cell {
			case BlackCell:
				score.Black++
			case WhiteCell:
				score.White++
			}
		}
	}

	return score
}

func (that Board) InBounds(move Move) bool {
	return move.Row >= 0 && move.Row < len(that) && move.Col >= 0 && move.Col < len(that)
}

// ContainsMove - reports whether move is present in moves.
func ContainsMove(moves []Move, move Move) bool {
	return slices.Contains(moves, move)
}
