package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/reversi-client/internal/entity"
)

const (
	markBlack = "X"
	markWhite = "O"
	markEmpty = "."
	markLegal = "*"
	markHint  = "+"
)

// RenderBoard - writes the board with legal moves and the hint marked, followed by a status line.
func RenderBoard(w io.Writer, game entity.GameSession) {
	var sb strings.Builder

	sb.WriteString("   ")
	for col := 0; col < game.Board.Size(); col++ {
		fmt.Fprintf(&sb, "%2d", col)
	}
	sb.WriteString("\n")

	for row, cells := range game.Board {
		fmt.Fprintf(&sb, "%2d ", row)
		for col, cell := range cells {
			sb.WriteString(" ")
			sb.WriteString(mark(game, entity.Move{Row: row, Col: col}, cell))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(Status(game))
	sb.WriteString("\n")

	_, _ = io.WriteString(w, sb.String())
}

func mark(game entity.GameSession, move entity.Move, cell entity.Cell) string {
	switch {
	case cell == entity.BlackCell:
		return markBlack
	case cell == entity.WhiteCell:
		return markWhite
	case game.Hint != nil && *game.Hint == move:
		return markHint
	case entity.ContainsMove(game.LegalMoves, move):
		return markLegal
	default:
		return markEmpty
	}
}

// Status - one line with the score, whose turn it is and the room, if any.
func Status(game entity.GameSession) string {
	line := fmt.Sprintf("%s %d : %s %d", entity.Black, game.Score.Black, entity.White, game.Score.White)

	switch {
	case game.Terminal && game.Winner == entity.OutcomeDraw:
		line += "  game over: draw"
	case game.Terminal:
		line += fmt.Sprintf("  game over: %s wins", game.Winner)
	default:
		line += fmt.Sprintf("  %s to move", game.CurrentPlayer)
	}

	if game.Room != nil {
		line += fmt.Sprintf("  [room %s, you are %s, %s]", game.Room.ID, game.Room.Color, game.Room.Status)
	}

	return line
}

// renderKey - changes whenever something visible on the board does.
func renderKey(game entity.GameSession) string {
	key := fmt.Sprintf("%s|%d|%d|%v|%v|%d", game.ID, len(game.History), game.CurrentPlayer, game.Terminal, game.Score, len(game.LegalMoves))

	if game.Hint != nil {
		key += "|hint" + game.Hint.String()
	}

	if game.Room != nil {
		key += "|" + game.Room.ID + string(game.Room.Status)
	}

	return key
}
