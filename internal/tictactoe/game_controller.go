package tictactoe

import (
	"slices"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type TransitionKind string

const (
	TransitionMove  TransitionKind = "move"
	TransitionReset TransitionKind = "reset"
)

// Transition describes a state change. Game is a copy taken after the change.
type Transition struct {
	Kind TransitionKind
	Cell int
	Game entity.Game
}

type Subscriber func(transition Transition)

type subscription struct {
	id int
	fn Subscriber
}

// GameController owns a single game. It is not safe for concurrent use.
type GameController struct {
	game        *entity.Game
	subscribers []subscription
	nextID      int
}

func NewGameController(game *entity.Game) *GameController {
	return &GameController{
		game: game,
	}
}

// Subscribe registers fn for every applied move and every reset. Subscribers
// are called in the order they subscribed. The returned func removes the
// subscription.
func (that *GameController) Subscribe(fn Subscriber) func() {
	id := that.nextID
	that.nextID++
	that.subscribers = append(that.subscribers, subscription{id: id, fn: fn})

	return func() {
		that.subscribers = slices.DeleteFunc(that.subscribers, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

// ApplyMove places the current player's mark on cell. Moves on a finished
// game, an occupied cell or a cell off the board are ignored and false is
// returned.
func (that *GameController) ApplyMove(cell int) bool {
	if !that.game.Active || !that.game.IsCellEmpty(cell) {
		return false
	}

	that.game.Board[cell] = that.game.Turn

	switch {
	case that.CheckWin():
		that.game.Winner = that.game.Turn
		that.game.Active = false
	case that.IsBoardFull():
		that.game.Winner = entity.PlayerTie
		that.game.Active = false
	default:
		that.game.Turn = that.game.Turn.Opponent()
	}

	that.publish(TransitionMove, cell)

	return true
}

func (that *GameController) CheckWin() bool {
	return that.game.CheckWin()
}

func (that *GameController) IsBoardFull() bool {
	return that.game.IsBoardFull()
}

func (that *GameController) Reset() {
	that.game.Clear()
	that.publish(TransitionReset, -1)
}

// State returns a copy of the game.
func (that *GameController) State() entity.Game {
	return *that.game
}

func (that *GameController) Board() [entity.BoardSize]entity.Mark {
	return that.game.Board
}

func (that *GameController) CurrentPlayer() entity.Mark {
	return that.game.Turn
}

func (that *GameController) IsActive() bool {
	return that.game.Active
}

func (that *GameController) Message() string {
	return that.game.Message()
}

func (that *GameController) publish(kind TransitionKind, cell int) {
	if len(that.subscribers) == 0 {
		return
	}

	transition := Transition{
		Kind: kind,
		Cell: cell,
		Game: *that.game,
	}

	for _, sub := range that.subscribers {
		sub.fn(transition)
	}
}
