package tictactoe

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

const (
	HumanMark = entity.PlayerX
	BotMark   = entity.PlayerO

	PromptMessage   = "Enter your move (1-9): "
	WinMessage      = "You win!"
	LoseMessage     = "You lose!"
	TieMessage      = "It's a tie!"
	InvalidMessage  = "Invalid move, please enter a number from 1 to 9."
	OccupiedMessage = "That cell is already taken, choose another one."

	maxLineLength = 4096
)

type State int

const (
	AwaitingHumanMove State = iota
	AwaitingOpponentMove
	XWon
	OWon
	Draw
)

func (that State) String() string {
	switch that {
	case AwaitingHumanMove:
		return "awaiting_human_move"
	case AwaitingOpponentMove:
		return "awaiting_opponent_move"
	case XWon:
		return "x_won"
	case OWon:
		return "o_won"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

func (that State) IsTerminal() bool {
	return that == XWon || that == OWon || that == Draw
}

type opponent interface {
	MakeTurn(board *entity.Board) (int, error)
}

// GameLoop drives a single game between the human on input/output and the opponent.
type GameLoop struct {
	logger *slog.Logger

	id       string
	board    *entity.Board
	opponent opponent
	input    *bufio.Reader
	output   io.Writer
	state    State
	moves    int
}

// NewGameLoop takes ownership of board. A nil board starts an empty game.
func NewGameLoop(logger *slog.Logger, board *entity.Board, opponent opponent, input io.Reader, output io.Writer) *GameLoop {
	if board == nil {
		board = entity.NewBoard()
	}

	id := uuid.NewString()

	return &GameLoop{
		logger:   logger.With("component", "game_loop", "game_id", id),
		id:       id,
		board:    board,
		opponent: opponent,
		input:    bufio.NewReaderSize(input, maxLineLength),
		output:   output,
		state:    AwaitingHumanMove,
	}
}

func (that *GameLoop) ID() string {
	return that.id
}

func (that *GameLoop) State() State {
	return that.state
}

func (that *GameLoop) Board() *entity.Board {
	return that.board
}

// Moves counts the marks placed by this loop, not the ones the board started with.
func (that *GameLoop) Moves() int {
	return that.moves
}

// Run plays until the game ends. On a closed input it returns apperror.ErrEndOfInput with entity.InProgress.
func (that *GameLoop) Run(ctx context.Context) (entity.Outcome, error) {
	if that.state.IsTerminal() {
		return that.board.Outcome(), apperror.ErrGameFinished
	}

	that.logger.Debug("game started")

	for {
		if err := ctx.Err(); err != nil {
			return entity.InProgress, fmt.Errorf("game interrupted: %w", err)
		}

		if err := that.print(that.board.Render()); err != nil {
			return entity.InProgress, err
		}

		if outcome := that.board.Outcome(); outcome.IsFinished() {
			return outcome, that.finish(outcome)
		}

		that.state = AwaitingHumanMove
		if err := that.humanTurn(); err != nil {
			return entity.InProgress, err
		}

		// a winning human move ends the game before the opponent gets a turn
		if that.board.CheckWin(HumanMark) {
			continue
		}

		that.state = AwaitingOpponentMove
		if err := that.opponentTurn(); err != nil {
			return entity.InProgress, err
		}
	}
}

func (that *GameLoop) finish(outcome entity.Outcome) error {
	var message string

	switch outcome {
	case entity.XWins:
		that.state = XWon
		message = WinMessage
	case entity.OWins:
		that.state = OWon
		message = LoseMessage
	case entity.Draw:
		that.state = Draw
		message = TieMessage
	}

	that.logger.Info("game finished", "outcome", outcome.String())

	return that.print(message + "\n")
}

func (that *GameLoop) humanTurn() error {
	for {
		if err := that.print(PromptMessage); err != nil {
			return err
		}

		cell, err := that.readMove()
		switch {
		case errors.Is(err, apperror.ErrInvalidInput):
			that.logger.Debug("rejected input", "error", err)
			if err = that.print(InvalidMessage + "\n"); err != nil {
				return err
			}
			continue
		case err != nil:
			return err
		}

		err = that.board.Place(HumanMark, cell)
		switch {
		case errors.Is(err, apperror.ErrCellOccupied):
			that.logger.Debug("rejected move", "cell", cell, "error", err)
			if err = that.print(OccupiedMessage + "\n"); err != nil {
				return err
			}
			continue
		case err != nil:
			return fmt.Errorf("failed to make turn: %w", err)
		}

		that.moves++
		that.logger.Debug("human made turn", "cell", cell)

		return nil
	}
}

func (that *GameLoop) opponentTurn() error {
	if len(that.board.AvailableMoves()) == 0 {
		return nil
	}

	cell, err := that.opponent.MakeTurn(that.board)
	if err != nil {
		return fmt.Errorf("opponent failed to make turn: %w", err)
	}

	that.moves++
	that.logger.Debug("opponent made turn", "cell", cell)

	return nil
}

// readMove reads one line and converts the 1-based cell number to a board index.
// Lines longer than maxLineLength are discarded and reported as invalid input.
func (that *GameLoop) readMove() (int, error) {
	line, isPrefix, err := that.input.ReadLine()
	if errors.Is(err, io.EOF) {
		return 0, apperror.ErrEndOfInput
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}

	if isPrefix {
		if err = that.discardLine(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: line longer than %d bytes", apperror.ErrInvalidInput, maxLineLength)
	}

	text := strings.TrimSpace(string(line))

	number, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", apperror.ErrInvalidInput, text)
	}

	if number < 1 || number > entity.BoardSize {
		return 0, fmt.Errorf("%w: %d is out of range", apperror.ErrInvalidInput, number)
	}

	return number - 1, nil
}

func (that *GameLoop) discardLine() error {
	for {
		_, isPrefix, err := that.input.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if !isPrefix {
			return nil
		}
	}
}

func (that *GameLoop) print(text string) error {
	if _, err := io.WriteString(that.output, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
