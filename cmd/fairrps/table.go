package main

import (
	"github.com/lox/fairrps/internal/console"
	"github.com/lox/fairrps/internal/rules"
)

// TableCmd prints who beats whom without starting a round
type TableCmd struct {
	Moves   []string `arg:"" help:"Moves in cyclic order"`
	NoColor bool     `help:"Disable colour output"`
}

func (c *TableCmd) Run(s *streams) error {
	moves, err := rules.NewMoveSet(c.Moves)
	if err != nil {
		return err
	}
	console.New(s.In, s.Out, console.Options{NoColor: c.NoColor}).PrintTable(moves)
	return nil
}
