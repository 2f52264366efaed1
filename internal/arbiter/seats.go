package arbiter

import (
	"fmt"

	"github.com/rocketscienceinc/reversi-client/internal/apperror"
	"github.com/rocketscienceinc/reversi-client/internal/entity"
)

// Seats tells which colours the engine plays.
type Seats struct {
	BlackAI bool
	WhiteAI bool
}

// SeatsFor - seat layout of a local mode. The human plays Black against the AI.
func SeatsFor(mode entity.Mode) (Seats, error) {
	switch mode {
	case entity.ModeHvH:
		return Seats{}, nil
	case entity.ModeHvAI:
		return Seats{WhiteAI: true}, nil
	case entity.ModeAIvAI:
		return Seats{BlackAI: true, WhiteAI: true}, nil
	default:
		return Seats{}, fmt.Errorf("%w: %q is not a local mode", apperror.ErrUnknownMode, mode)
	}
}

func (that Seats) IsAI(player entity.Player) bool {
	switch player {
	case entity.Black:
		return that.BlackAI
	case entity.White:
		return that.WhiteAI
	default:
		return false
	}
}

func (that Seats) String() string {
	return fmt.Sprintf("black:%s white:%s", seatName(that.BlackAI), seatName(that.WhiteAI))
}

func seatName(ai bool) string {
	if ai {
		return "ai"
	}

	return "human"
}
