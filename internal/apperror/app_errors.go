package apperror

import "errors"

var (
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidInput = errors.New("invalid input")
	ErrEndOfInput   = errors.New("end of input")
	ErrGameFinished = errors.New("game is already finished")
)
