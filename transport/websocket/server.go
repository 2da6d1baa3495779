package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
)

const (
	maxMessageSize = 4096
	writeWait      = 10 * time.Second
)

type gameUseCase interface {
	State(ctx context.Context, sessionID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, sessionID string, cell int) (*entity.Game, error)
	Reset(ctx context.Context, sessionID string) (*entity.Game, error)
	EndGame(ctx context.Context, sessionID string) error
}

type handlerFunc func(ctx context.Context, sessionID string, msg *Message) (*entity.Game, error)

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	upgrader    websocket.Upgrader
	sessionTTL  time.Duration

	handlers map[string]handlerFunc
}

// New serves games over websocket. New sessions get a cookie living for sessionTTL.
func New(logger *slog.Logger, gameUseCase gameUseCase, sessionTTL time.Duration) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessionTTL: sessionTTL,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionGameState] = server.handleGameState
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameReset] = server.handleGameReset
	server.handlers[actionGameEnd] = server.handleGameEnd

	return server
}

// ServeHTTP upgrades the connection and serves the session's game over it.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	sessionID, cookie := pkg.SessionFromRequest(req, that.sessionTTL)

	header := http.Header{}
	if cookie != nil {
		header.Add("Set-Cookie", cookie.String())
		log.Info("session cookie not found, new one created")
	}

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket connection established")

	if err = that.handleMessages(req.Context(), conn, sessionID); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, sessionID string) error {
	log := that.logger.With("method", "handleMessages")

	conn.SetReadLimit(maxMessageSize)

	for {
		messageType, reqBody, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		if messageType != websocket.TextMessage {
			continue
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)

			if err = that.sendErrorResponse(conn, "", "malformed message"); err != nil {
				return err
			}
			continue
		}

		if err = that.processMessage(ctx, conn, sessionID, &message); err != nil {
			return err
		}
	}
}

// processMessage runs the handler for msg and replies. Only write failures
// are returned.
func (that *Server) processMessage(ctx context.Context, conn *websocket.Conn, sessionID string, msg *Message) error {
	log := that.logger.With("method", "processMessage", "action", msg.Action)

	handler, ok := that.handlers[msg.Action]
	if !ok {
		log.Warn("unknown action")
		return that.sendErrorResponse(conn, msg.Action, apperror.ErrUnknownAction.Error())
	}

	game, err := handler(ctx, sessionID, msg)
	if errors.Is(err, errInvalidPayload) {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("error processing message", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "internal error")
	}

	// game:end leaves the session without a game.
	if game == nil {
		return that.sendMessage(conn, msg.Action, Payload{})
	}

	return that.sendMessage(conn, msg.Action, Payload{Game: newGameResponse(game)})
}
