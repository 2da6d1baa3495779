package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager keeps one game per session. Calls are handled one at a time.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	subscribers []tictactoe.Subscriber

	mu sync.Mutex
}

// NewGameManager attaches subscribers to every controller it builds.
func NewGameManager(logger *slog.Logger, gameRepo gameRepo, subscribers ...tictactoe.Subscriber) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		gameRepo:    gameRepo,
		subscribers: subscribers,
	}
}

// State returns the session's game, starting a new one if there is none.
func (that *GameManager) State(ctx context.Context, sessionID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return game, nil
}

// MakeTurn plays cell for the player to move. A move the rules do not allow
// is ignored and the unchanged game is returned.
func (that *GameManager) MakeTurn(ctx context.Context, sessionID string, cell int) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !that.newController(game).ApplyMove(cell) {
		return game, nil
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) Reset(ctx context.Context, sessionID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	that.newController(game).Reset()

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Debug("game reset", "gameID", game.ID)

	return game, nil
}

// EndGame drops the session's game.
func (that *GameManager) EndGame(ctx context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	err := that.gameRepo.DeleteByID(ctx, sessionID)
	if err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

func (that *GameManager) newController(game *entity.Game) *tictactoe.GameController {
	controller := tictactoe.NewGameController(game)
	for _, subscriber := range that.subscribers {
		controller.Subscribe(subscriber)
	}

	return controller
}

func (that *GameManager) getOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, sessionID)
	if err == nil {
		return game, nil
	}

	if !errors.Is(err, apperror.ErrGameNotFound) {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	game = entity.NewGame(sessionID)
	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Debug("game created", "gameID", game.ID)

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
