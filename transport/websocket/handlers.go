package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	actionGameState = "game:state"
	actionGameTurn  = "game:turn"
	actionGameReset = "game:reset"
	actionGameEnd   = "game:end"
)

var errInvalidPayload = apperror.ErrInvalidPayload

func (that *Server) handleGameState(ctx context.Context, sessionID string, _ *Message) (*entity.Game, error) {
	game, err := that.gameUseCase.State(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *Server) handleGameTurn(ctx context.Context, sessionID string, msg *Message) (*entity.Game, error) {
	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPayload, err)
	}

	if payloadReq.Cell == nil {
		return nil, fmt.Errorf("%w: cell is required", errInvalidPayload)
	}

	game, err := that.gameUseCase.MakeTurn(ctx, sessionID, *payloadReq.Cell)
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	return game, nil
}

func (that *Server) handleGameReset(ctx context.Context, sessionID string, _ *Message) (*entity.Game, error) {
	game, err := that.gameUseCase.Reset(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	return game, nil
}

// handleGameEnd drops the session's game. The next request starts a new one.
func (that *Server) handleGameEnd(ctx context.Context, sessionID string, _ *Message) (*entity.Game, error) {
	if err := that.gameUseCase.EndGame(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("failed to end game: %w", err)
	}

	return nil, nil
}
