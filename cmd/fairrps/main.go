package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Play    PlayCmd          `cmd:"" default:"withargs" help:"Play one provably fair round (default)"`
	Verify  VerifyCmd        `cmd:"" help:"Check a revealed key against the digest shown before the round"`
	Table   TableCmd         `cmd:"" help:"Print the payoff table for a move list"`
}

// streams are the terminal handles commands read from and write to
type streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func newParser(cli *CLI) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("fairrps"),
		kong.Description("Provably fair rock-paper-scissors for any odd number of moves"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":        version,
			"default_config": "fairrps.hcl",
		},
	)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run(&streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
	ctx.FatalIfErrorf(err)
}
