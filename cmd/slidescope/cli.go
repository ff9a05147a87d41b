package main

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

type cliOptions struct {
	configDir string
	mode      string
	logLevel  string
}

type cliCommands struct {
	run    *kingpin.CmdClause
	config *kingpin.CmdClause
}

func newCLI(opts *cliOptions) (*kingpin.Application, cliCommands) {
	app := kingpin.New("slidescope", "SlideScope desktop launcher: starts the slide backend and the viewer shell")
	app.Version(version)
	app.VersionFlag.Short('V')

	app.Flag("config", "Directory containing config.yaml").StringVar(&opts.configDir)
	app.Flag("mode", "Host runtime: auto, desktop or headless").StringVar(&opts.mode)
	app.Flag("log-level", "Log level: debug, info, warn or error").StringVar(&opts.logLevel)

	cmds := cliCommands{
		run:    app.Command("run", "Start the backend and run the host runtime").Default(),
		config: app.Command("config", "Print the effective configuration as YAML"),
	}
	return app, cmds
}
