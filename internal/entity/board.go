package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
)

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""

	BoardSize = 9
	rowSize   = 3

	separatorLine = "-------------"
)

var (
	ErrInvalidCell = errors.New("invalid cell index")
	ErrInvalidMark = errors.New("invalid player mark")

	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Board is the 3x3 grid stored row-major. The zero value is an empty board.
type Board [BoardSize]string

func NewBoard() *Board {
	return &Board{}
}

func (that *Board) Cell(index int) (string, error) {
	if err := validateIndex(index); err != nil {
		return "", err
	}

	return that[index], nil
}

func (that *Board) IsOccupied(index int) (bool, error) {
	if err := validateIndex(index); err != nil {
		return false, err
	}

	return that[index] != EmptyCell, nil
}

// Place writes mark into the cell. The board is left untouched when the move is rejected.
func (that *Board) Place(mark string, index int) error {
	if mark != PlayerX && mark != PlayerO {
		return fmt.Errorf("%w: %q", ErrInvalidMark, mark)
	}

	if err := validateIndex(index); err != nil {
		return err
	}

	if that[index] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, index)
	}

	that[index] = mark

	return nil
}

// AvailableMoves returns the empty cell indices in ascending order.
func (that *Board) AvailableMoves() []int {
	moves := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			moves = append(moves, i)
		}
	}

	return moves
}

func (that *Board) CheckWin(mark string) bool {
	if mark == EmptyCell {
		return false
	}

	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}

	return false
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Outcome reports the result in the order the game loop checks it: X, then O, then a full board.
func (that *Board) Outcome() Outcome {
	switch {
	case that.CheckWin(PlayerX):
		return XWins
	case that.CheckWin(PlayerO):
		return OWins
	case that.IsFull():
		return Draw
	default:
		return InProgress
	}
}

func (that *Board) Render() string {
	var sb strings.Builder

	sb.WriteString(separatorLine + "\n")
	for row := 0; row < rowSize; row++ {
		sb.WriteString("|")
		for col := 0; col < rowSize; col++ {
			sb.WriteString(" " + renderCell(that[row*rowSize+col]) + " |")
		}
		sb.WriteString("\n" + separatorLine + "\n")
	}

	return sb.String()
}

func (that *Board) String() string {
	return that.Render()
}

func renderCell(cell string) string {
	if cell == EmptyCell {
		return " "
	}
	return cell
}

func validateIndex(index int) error {
	if index < 0 || index >= BoardSize {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, index)
	}
	return nil
}
