package entity

import "fmt"

// Cell is the state of one board square. Values match the engine wire format.
type Cell int

const (
	Empty Cell = iota
	BlackCell
	WhiteCell
)

// Player is one of the two sides. Values match the engine wire format.
type Player int

const (
	NoPlayer Player = iota
	Black
	White
)

func (that Player) Valid() bool {
	return that == Black || that == White
}

// Opponent - returns the other side.
func (that Player) Opponent() Player {
	switch that {
	case Black:
		return White
	case White:
		return Black
	default:
		return NoPlayer
	}
}

// Cell - returns the disc colour placed by the player.
func (that Player) Cell() Cell {
	return Cell(that)
}

func (that Player) String() string {
	switch that {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return fmt.Sprintf("Player(%d)", int(that))
	}
}

// Outcome is the result of a finished game.
type Outcome string

const (
	OutcomeNone  Outcome = ""
	OutcomeBlack Outcome = "Black"
	OutcomeWhite Outcome = "White"
	OutcomeDraw  Outcome = "Draw"
)

// OutcomeFromScore - winner is the side with strictly more discs, Draw on equality.
func OutcomeFromScore(score Score) Outcome {
	switch {
	case score.Black > score.White:
		return OutcomeBlack
	case score.White > score.Black:
		return OutcomeWhite
	default:
		return OutcomeDraw
	}
}

// OutcomeFor - outcome declaring the given player the winner.
func OutcomeFor(player Player) Outcome {
	switch player {
	case Black:
		return OutcomeBlack
	case White:
		return OutcomeWhite
	default:
		return OutcomeDraw
	}
}
