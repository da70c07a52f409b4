package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" default:"matchsim.hcl" type:"path" help:"HCL match configuration (defaults apply when missing)"`
	LogLevel string `default:"info" enum:"debug,info,warn,error" help:"Log level (${enum})"`
	Debug    bool   `help:"Shorthand for --log-level=debug"`

	stdout io.Writer
	stderr io.Writer
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play a single match and print the result"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate many matches and print statistics"`
	Watch    WatchCmd         `cmd:"" help:"Watch a match point by point in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Stream matches to websocket spectators"`
	History  HistoryCmd       `cmd:"" help:"Work with recorded match files"`
}

func main() {
	cli := CLI{Globals: Globals{stdout: os.Stdout, stderr: os.Stderr}}
	ctx := kong.Parse(&cli,
		kong.Name("matchsim"),
		kong.Description("Stochastic tennis match simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
