package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	MakeTurn(board *entity.Board) (int, error)
}

type botService struct {
	mark string
	rnd  *rand.Rand
}

// NewBotService returns a bot that places mark on a uniformly random empty cell.
func NewBotService(mark string, seed int64) BotService {
	return &botService{
		mark: mark,
		rnd:  rand.New(rand.NewSource(seed)), //nolint: gosec // it's ok
	}
}

func (that *botService) MakeTurn(board *entity.Board) (int, error) {
	availableCells := board.AvailableMoves()
	if len(availableCells) == 0 {
		return 0, ErrNoAvailableMoves
	}

	chosenCell := availableCells[that.rnd.Intn(len(availableCells))]

	if err := board.Place(that.mark, chosenCell); err != nil {
		return 0, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return chosenCell, nil
}
