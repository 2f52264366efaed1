package online

import "github.com/rocketscienceinc/reversi-client/internal/entity"

// outgoing actions
const (
	actionCreateGame   = "create_game"
	actionJoinGame     = "join_game"
	actionMakeMove     = "make_online_move"
	actionGetOpenGames = "get_open_games"
	actionLeaveGame    = "leave_game"
)

// incoming actions
const (
	eventSessionReady    = "session_ready"
	eventGameCreated     = "game_created"
	eventGameJoined      = "game_joined"
	eventGameStateUpdate = "game_state_update"
	eventOpponentLeft    = "opponent_left"
	eventMoveError       = "move_error"
	eventOpenGamesList   = "open_games_list"
	eventError           = "error"
)

const (
	winnerBlack = 1
	winnerWhite = 2
)

// moveMessagePrefix marks the state-update messages that describe a played move.
// Other relay messages are status text and stay out of the history.
const moveMessagePrefix = "Player"


type createGamePayload struct {
	BoardSize int `json:"board_size"`
}

type joinGamePayload struct {
	GameID string `json:"game_id"`
}

type movePayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type sessionReadyPayload struct {
	SID string `json:"sid"`
}

type gameCreatedPayload struct {
	GameID      string        `json:"game_id"`
	PlayerColor entity.Player `json:"player_color"`
	BoardSize   int           `json:"board_size"`
}

type gameJoinedPayload struct {
	GameID      string        `json:"game_id"`
	PlayerColor entity.Player `json:"player_color"`
	BoardSize   int           `json:"board_size"`
	Board       entity.Board  `json:"board"`
}

type stateUpdatePayload struct {
	Board   entity.Board      `json:"board"`
	Turn    entity.Player     `json:"turn"`
	Status  entity.RoomStatus `json:"status"`
	Winner  int               `json:"winner"`
	Message string            `json:"message"`
	Seq     *int64            `json:"seq,omitempty"`
}

type noticePayload struct {
	Message string `json:"message"`
}

type openGamesPayload struct {
	Games []entity.OpenRoom `json:"games"`
}

// outcomeFromCode - relay winner code: 1 Black, 2 White, anything else a draw.
func outcomeFromCode(code int) entity.Outcome {
	switch code {
	case winnerBlack:
		return entity.OutcomeBlack
	case winnerWhite:
		return entity.OutcomeWhite
	default:
		return entity.OutcomeDraw
	}
}
