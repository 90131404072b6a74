package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play a run in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Run headless seeded runs and report how far they get"`
	Serve    ServeCmd         `cmd:"" help:"Serve runs over websockets"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("natarun"),
		kong.Description("A card-run roguelike: poker hands, jokers, and an escalating score target"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
