package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/config"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/service"
	"github.com/rocketscienceinc/tictactoe-console/internal/tictactoe"
)

const abortMessage = "Game aborted."

type gameResult struct {
	outcome entity.Outcome
	err     error
}

// RunApp - plays one game on input/output and returns once it ends, the input closes or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config, input io.Reader, output io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	botService := service.NewBotService(tictactoe.BotMark, seed)
	gameLoop := tictactoe.NewGameLoop(logger, entity.NewBoard(), botService, input, output)

	log.Debug("Starting game", "game_id", gameLoop.ID(), "seed", seed)

	// the loop blocks on input, so it runs aside and a signal can still end the app
	resultCh := make(chan gameResult, 1)
	go func() {
		outcome, err := gameLoop.Run(ctx)
		resultCh <- gameResult{outcome: outcome, err: err}
	}()

	select {
	case result := <-resultCh:
		return handleResult(log, output, result)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func handleResult(log *slog.Logger, output io.Writer, result gameResult) error {
	switch {
	case result.err == nil:
		log.Info("Game over", "outcome", result.outcome.String())
		return nil
	case errors.Is(result.err, apperror.ErrEndOfInput):
		log.Info("Input closed, game aborted")
		if _, err := fmt.Fprintf(output, "\n%s\n", abortMessage); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	case errors.Is(result.err, context.Canceled):
		log.Info("Game interrupted")
		return nil
	default:
		return fmt.Errorf("game failed: %w", result.err)
	}
}
