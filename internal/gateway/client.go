package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rocketscienceinc/reversi-client/internal/apperror"
	"github.com/rocketscienceinc/reversi-client/internal/entity"
)

const (
	pathInit       = "/api/init"
	pathValidMoves = "/api/valid_moves"
	pathMakeMove   = "/api/make_move"
	pathAIMove     = "/api/ai_move"
	pathSolver     = "/api/solver"

	maxResponseSize = 1 << 20
)

// Client talks to the remote move/AI engine. It keeps no game state.
type Client struct {
	logger *slog.Logger

	baseURL    string
	sessionID  string
	timeout    time.Duration
	httpClient *http.Client
}

func New(logger *slog.Logger, baseURL, sessionID string, timeout time.Duration) *Client {
	return &Client{
		logger:     logger.With("component", "gateway"),
		baseURL:    strings.TrimRight(baseURL, "/"),
		sessionID:  sessionID,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// Init - asks the engine for the opening position.
func (that *Client) Init(ctx context.Context, size int) (entity.Board, error) {
	var resp boardResponse
	req := initRequest{BoardSize: size, SessionID: that.sessionID}

	if err := that.call(ctx, pathInit, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to init board: %w", err)
	}

	return resp.Board, nil
}

// LegalMoves - legal moves of player on board.
func (that *Client) LegalMoves(ctx context.Context, board entity.Board, player entity.Player) ([]entity.Move, error) {
	var resp movesResponse
	req := positionRequest{Board: board, Player: player, SessionID: that.sessionID}

	if err := that.call(ctx, pathValidMoves, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to query legal moves: %w", err)
	}

	if resp.Moves == nil {
		resp.Moves = []entity.Move{}
	}

	return resp.Moves, nil
}

// ApplyMove - board after player plays move.
func (that *Client) ApplyMove(ctx context.Context, board entity.Board, move entity.Move, player entity.Player) (entity.Board, error) {
	var resp boardResponse
	req := applyRequest{Board: board, Row: move.Row, Col: move.Col, Player: player, SessionID: that.sessionID}

	if err := that.call(ctx, pathMakeMove, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to apply move: %w", err)
	}

	return resp.Board, nil
}

// AIMove - engine's chosen move for player, with the resulting board and search stats.
func (that *Client) AIMove(ctx context.Context, board entity.Board, player entity.Player, difficulty entity.Difficulty) (*entity.AIMove, error) {
	var resp aiMoveResponse
	req := aiMoveRequest{Board: board, Player: player, Difficulty: difficulty, SessionID: that.sessionID}

	if err := that.call(ctx, pathAIMove, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to compute ai move: %w", err)
	}

	if resp.Move == nil {
		return nil, fmt.Errorf("failed to compute ai move: %w: response has no move", apperror.ErrRejected)
	}

	return &entity.AIMove{Board: resp.Board, Move: *resp.Move, Stats: resp.Stats}, nil
}

// Analyze - ranked candidate moves, used by the position analysis tool.
func (that *Client) Analyze(ctx context.Context, board entity.Board, player entity.Player) ([]entity.RankedMove, error) {
	var resp analyzeResponse
	req := positionRequest{Board: board, Player: player, SessionID: that.sessionID}

	if err := that.call(ctx, pathSolver, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to analyze position: %w", err)
	}

	return resp.TopMoves, nil
}

// call - posts req and decodes the envelope into resp. Bounded by the client timeout.
func (that *Client) call(ctx context.Context, path string, req any, resp envelope) error {
	log := that.logger.With("method", "call", "path", path)

	ctx, cancel := context.WithTimeout(ctx, that.timeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, that.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	started := time.Now()

	httpResp, err := that.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s after %s", apperror.ErrStalled, path, that.timeout)
		}

		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s after %s", apperror.ErrStalled, path, that.timeout)
		}

		return fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug("engine responded", "status", httpResp.StatusCode, "elapsed", time.Since(started))

	if err = json.Unmarshal(raw, resp); err != nil {
		if httpResp.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: status %d", apperror.ErrRejected, httpResp.StatusCode)
		}

		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !resp.ok() {
		if msg := resp.message(); msg != "" {
			return fmt.Errorf("%w: %s", apperror.ErrRejected, msg)
		}

		return fmt.Errorf("%w: status %d", apperror.ErrRejected, httpResp.StatusCode)
	}

	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", apperror.ErrRejected, httpResp.StatusCode)
	}

	return nil
}
