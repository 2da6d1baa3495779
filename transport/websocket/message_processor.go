package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Cell  *int          `json:"cell,omitempty"`
	Game  *GameResponse `json:"game,omitempty"`
	Error string        `json:"error,omitempty"`
}

// GameResponse is what the page renders. The session id is left out.
type GameResponse struct {
	Board   [entity.BoardSize]entity.Mark `json:"board"`
	Turn    entity.Mark                   `json:"player_turn"`
	Active  bool                          `json:"active"`
	Winner  entity.Mark                   `json:"winner"`
	Status  entity.Status                 `json:"status"`
	Message string                        `json:"message"`
}

func newGameResponse(game *entity.Game) *GameResponse {
	return &GameResponse{
		Board:   game.Board,
		Turn:    game.Turn,
		Active:  game.Active,
		Winner:  game.Winner,
		Status:  game.Status(),
		Message: game.Message(),
	}
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload Payload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadBytes,
	}

	if err = conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.WriteJSON(response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *websocket.Conn, action, errorMsg string) error {
	if err := that.sendMessage(conn, action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
