package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

func newController() *GameController {
	return NewGameController(entity.NewGame("123"))
}

func play(t *testing.T, controller *GameController, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		require.True(t, controller.ApplyMove(cell), "move on cell %d was ignored", cell)
	}
}

func TestGameController_ApplyMove(t *testing.T) {
	t.Run("Turn passes to O after the first move", func(t *testing.T) {
		// Given: a fresh game
		controller := newController()

		// When: X plays cell 0
		applied := controller.ApplyMove(0)

		// Then: the mark is placed and O is to move
		require.True(t, applied)
		assert.Equal(t, entity.PlayerX, controller.Board()[0])
		assert.Equal(t, entity.PlayerO, controller.CurrentPlayer())
		assert.True(t, controller.IsActive())
		assert.Equal(t, "Player O's turn", controller.Message())
	})

	t.Run("Occupied cell leaves the game unchanged", func(t *testing.T) {
		for cell := range entity.BoardSize {
			// Given: a game where the cell is already taken
			controller := newController()
			play(t, controller, cell)
			before := controller.State()

			// When: O tries the same cell
			applied := controller.ApplyMove(cell)

			// Then: the move is ignored
			assert.False(t, applied)
			assert.Equal(t, before, controller.State())
		}
	})

	t.Run("Cell off the board is ignored", func(t *testing.T) {
		// Given: a fresh game
		controller := newController()
		before := controller.State()

		// When: moves outside [0,8] are requested
		assert.False(t, controller.ApplyMove(-1))
		assert.False(t, controller.ApplyMove(entity.BoardSize))

		// Then: nothing changed
		assert.Equal(t, before, controller.State())
	})

	t.Run("X wins on the top row", func(t *testing.T) {
		// Given: a fresh game
		controller := newController()

		// When: X,O,X,O,X play 0,3,1,4,2
		play(t, controller, 0, 3, 1, 4, 2)

		// Then: X has won and the game is closed
		assert.True(t, controller.CheckWin())
		assert.False(t, controller.IsActive())
		assert.Equal(t, entity.PlayerX, controller.CurrentPlayer())
		assert.Equal(t, "Player X wins!", controller.Message())
		assert.Equal(t, entity.StatusWon, controller.State().Status())
	})

	t.Run("O wins on the anti-diagonal", func(t *testing.T) {
		// Given: a fresh game
		controller := newController()

		// When: O completes 2,4,6 while X scatters
		play(t, controller, 0, 2, 1, 4, 8, 6)

		// Then: O has won
		assert.False(t, controller.IsActive())
		assert.Equal(t, "Player O wins!", controller.Message())
	})

	t.Run("Full board without a triplet is a draw", func(t *testing.T) {
		// Given: a fresh game
		controller := newController()

		// When: the board is filled without any triplet
		play(t, controller, 0, 1, 2, 3, 4, 6, 5, 8, 7)

		// Then: the game is a draw
		assert.True(t, controller.IsBoardFull())
		assert.False(t, controller.CheckWin())
		assert.False(t, controller.IsActive())
		assert.Equal(t, "Draw!", controller.Message())
		assert.Equal(t, entity.StatusDraw, controller.State().Status())
	})

	t.Run("Win on the last cell is a win, not a draw", func(t *testing.T) {
		// Given: a fresh game
		controller := newController()

		// When: X fills the board and completes the left column with the last move
		play(t, controller, 0, 1, 3, 4, 2, 5, 7, 8, 6)

		// Then: X wins
		assert.True(t, controller.IsBoardFull())
		assert.Equal(t, "Player X wins!", controller.Message())
	})

	t.Run("Finished game ignores further moves", func(t *testing.T) {
		// Given: a game X has already won
		controller := newController()
		play(t, controller, 0, 3, 1, 4, 2)
		before := controller.State()

		// When: any cell is played repeatedly
		for range 3 {
			for cell := range entity.BoardSize {
				assert.False(t, controller.ApplyMove(cell))
			}
		}

		// Then: the game is unchanged
		assert.Equal(t, before, controller.State())
	})

	t.Run("Drawn game ignores further moves", func(t *testing.T) {
		// Given: a drawn game
		controller := newController()
		play(t, controller, 0, 1, 2, 3, 4, 6, 5, 8, 7)
		before := controller.State()

		// When: a move is attempted
		applied := controller.ApplyMove(4)

		// Then: the game is unchanged
		assert.False(t, applied)
		assert.Equal(t, before, controller.State())
	})
}

func TestGameController_Reset(t *testing.T) {
	t.Run("Reset after a win", func(t *testing.T) {
		// Given: a finished game
		controller := newController()
		play(t, controller, 0, 3, 1, 4, 2)

		// When: the game is reset
		controller.Reset()

		// Then: the board is empty, X moves and the game is active
		assert.Equal(t, [entity.BoardSize]entity.Mark{}, controller.Board())
		assert.Equal(t, entity.PlayerX, controller.CurrentPlayer())
		assert.True(t, controller.IsActive())
		assert.Equal(t, "Player X's turn", controller.Message())

		// Then: moves are accepted again
		assert.True(t, controller.ApplyMove(0))
	})

	t.Run("Reset on a fresh game", func(t *testing.T) {
		controller := newController()

		controller.Reset()

		assert.Equal(t, *entity.NewGame("123"), controller.State())
	})
}

func TestGameController_Subscribe(t *testing.T) {
	t.Run("Subscribers see applied moves and resets only", func(t *testing.T) {
		// Given: a controller with a subscriber
		controller := newController()

		var transitions []Transition
		controller.Subscribe(func(transition Transition) {
			transitions = append(transitions, transition)
		})

		// When: a move, an ignored move and a reset happen
		controller.ApplyMove(4)
		controller.ApplyMove(4)
		controller.Reset()

		// Then: two transitions are delivered in order
		require.Len(t, transitions, 2)

		assert.Equal(t, TransitionMove, transitions[0].Kind)
		assert.Equal(t, 4, transitions[0].Cell)
		assert.Equal(t, entity.PlayerX, transitions[0].Game.Board[4])
		assert.Equal(t, entity.PlayerO, transitions[0].Game.Turn)

		assert.Equal(t, TransitionReset, transitions[1].Kind)
		assert.Equal(t, entity.EmptyCell, transitions[1].Game.Board[4])
	})

	t.Run("Snapshot is not affected by later moves", func(t *testing.T) {
		controller := newController()

		var first *Transition
		controller.Subscribe(func(transition Transition) {
			if first == nil {
				first = &transition
			}
		})

		play(t, controller, 0, 1)

		require.NotNil(t, first)
		assert.Equal(t, entity.EmptyCell, first.Game.Board[1])
	})

	t.Run("Unsubscribe stops delivery", func(t *testing.T) {
		controller := newController()

		calls := 0
		unsubscribe := controller.Subscribe(func(Transition) { calls++ })

		controller.ApplyMove(0)
		unsubscribe()
		controller.ApplyMove(1)

		assert.Equal(t, 1, calls)
	})

	t.Run("Subscribers are called in subscription order", func(t *testing.T) {
		// Given: three subscribers, the middle one removed
		controller := newController()

		var order []string
		for _, name := range []string{"first", "second", "third"} {
			unsubscribe := controller.Subscribe(func(Transition) {
				order = append(order, name)
			})
			if name == "second" {
				unsubscribe()
			}
		}
		controller.Subscribe(func(Transition) {
			order = append(order, "fourth")
		})

		// When: moves are applied repeatedly
		for cell := range 5 {
			order = order[:0]
			controller.ApplyMove(cell)

			// Then: delivery follows subscription order every time
			assert.Equal(t, []string{"first", "third", "fourth"}, order)
		}
	})
}

func TestGameController_IndependentInstances(t *testing.T) {
	// Given: two controllers
	first := newController()
	second := newController()

	// When: only the first one is played
	play(t, first, 0, 3, 1, 4, 2)

	// Then: the second one is untouched
	assert.False(t, first.IsActive())
	assert.True(t, second.IsActive())
	assert.Equal(t, [entity.BoardSize]entity.Mark{}, second.Board())
}
