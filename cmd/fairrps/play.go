package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/fairrps/cmd/fairrps/shared"
	"github.com/lox/fairrps/internal/config"
	"github.com/lox/fairrps/internal/console"
	"github.com/lox/fairrps/internal/randutil"
	"github.com/lox/fairrps/internal/round"
	"github.com/lox/fairrps/internal/rules"
)

// PlayCmd plays a single round against the computer
type PlayCmd struct {
	Moves       []string `arg:"" optional:"" help:"Moves in cyclic order: each beats the half before it (odd count, at least 3)"`
	Config      string   `short:"c" default:"${default_config}" help:"HCL config file"`
	LogLevel    string   `help:"Log level (debug, info, warn, error)"`
	LogFile     string   `help:"Write logs to this file instead of stderr"`
	NoColor     bool     `help:"Disable colour output"`
	BindRoundID bool     `help:"Bind the round ID into the committed message"`
	Seed        *int64   `hidden:"" help:"Deterministic seed for the computer's move"`
}

func (c *PlayCmd) Run(s *streams) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	moves, err := rules.NewMoveSet(cfg.Game.Moves)
	if err != nil {
		return fmt.Errorf("%w (example: fairrps rock paper scissors)", err)
	}

	logOut := s.Err
	if cfg.Log.File != "" {
		f, err := shared.OpenLogFile(cfg.Log.File)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger, err := shared.SetupLogger(logOut, cfg.Log.Level)
	if err != nil {
		return err
	}

	opts := []round.Option{
		round.WithLogger(logger),
		round.WithBoundNonce(cfg.Game.BindRoundID),
	}
	if c.Seed != nil {
		logger.Warn("Using deterministic seed for the computer's move", "seed", *c.Seed)
		opts = append(opts, round.WithPicker(randutil.New(*c.Seed)))
	}

	r, err := round.Start(moves, opts...)
	if err != nil {
		return err
	}
	logger.Info("Round started", "round", r.ID(), "moves", moves.Len())

	ui := console.New(s.In, s.Out, console.Options{
		NoColor: cfg.UI.NoColor,
		Logger:  logger,
	})
	result, err := ui.Play(r)
	if err != nil {
		return err
	}

	logRoundEnd(logger, r, result)
	return nil
}

// loadConfig layers file, environment and flags, in that order
func (c *PlayCmd) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	if len(c.Moves) > 0 {
		cfg.Game.Moves = c.Moves
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	if c.NoColor {
		cfg.UI.NoColor = true
	}
	if c.BindRoundID {
		cfg.Game.BindRoundID = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func logRoundEnd(logger *log.Logger, r *round.Round, result *round.Result) {
	if result == nil {
		logger.Info("Round abandoned", "round", r.ID(), "state", r.State())
		return
	}
	logger.Info("Round finished",
		"round", r.ID(),
		"outcome", result.Outcome,
		"elapsed", result.Elapsed)
}
