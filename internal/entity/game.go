package entity

import "fmt"

type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	PlayerTie Mark = "-"

	EmptyCell Mark = ""
)

// BoardSize is the number of cells on the 3x3 board.
const BoardSize = 9

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDraw       Status = "draw"
)

// WinCombos lists rows, then columns, then diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Game struct {
	ID     string          `json:"id"`
	Board  [BoardSize]Mark `json:"board"`
	Turn   Mark            `json:"player_turn"`
	Active bool            `json:"active"`
	Winner Mark            `json:"winner"`
}

func NewGame(id string) *Game {
	game := &Game{ID: id}
	game.Clear()

	return game
}

// Clear puts the game back to its starting position. The ID is kept.
func (that *Game) Clear() {
	that.Board = [BoardSize]Mark{}
	that.Turn = PlayerX
	that.Active = true
	that.Winner = EmptyCell
}

// CheckWin reports whether the player to move owns a full triplet.
func (that *Game) CheckWin() bool {
	for _, combo := range WinCombos {
		if that.Board[combo[0]] == that.Turn &&
			that.Board[combo[1]] == that.Turn &&
			that.Board[combo[2]] == that.Turn {
			return true
		}
	}

	return false
}

func (that *Game) IsBoardFull() bool {
	for _, cell := range that.Board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that *Game) IsCellEmpty(cell int) bool {
	return IsValidCell(cell) && that.Board[cell] == EmptyCell
}

func (that *Game) Status() Status {
	switch {
	case that.Active:
		return StatusInProgress
	case that.Winner == PlayerTie:
		return StatusDraw
	default:
		return StatusWon
	}
}

func (that *Game) IsFinished() bool {
	return !that.Active
}

// Message is the status line shown under the board.
func (that *Game) Message() string {
	switch that.Status() {
	case StatusWon:
		return fmt.Sprintf("Player %s wins!", that.Winner)
	case StatusDraw:
		return "Draw!"
	default:
		return fmt.Sprintf("Player %s's turn", that.Turn)
	}
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}
