package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/chfanghr/stupid-dbg/pkg/debugger"
	"github.com/chfanghr/stupid-dbg/pkg/log"
)

var Version string

func main() {
	if Version == "" {
		Version = fmt.Sprintf("nightly | %s", time.Now().Format(time.RFC3339))
	}

	cmd := &cli.Command{
		Name:        "stupid-dbg",
		Version:     Version,
		Usage:       "[flags] [child command...]",
		Description: "A deliberately small ptrace based debugger for Linux on amd64",

		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "pid",
				Aliases: []string{"p"},
				Usage:   "attach to an existing process instead of spawning one",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  "history-file",
				Usage: "where to persist the command history",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "config file to load instead of the default one",
			},
		},

		Action:  run,
		Suggest: true,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Run(ctx, os.Args); err != nil {
		logger := log.Base()
		logger.Fatal().Err(err).Msg("exiting")
	}
}

func run(ctx context.Context, c *cli.Command) error {
	cfg, err := debugger.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("history-file") {
		cfg.HistoryFile = c.String("history-file")
	}

	level := cfg.LogLevel
	if c.Bool("verbose") {
		level = "debug"
	}
	log.Configure(log.Config{Level: level})
	logger := log.WithComponent("main")

	childArgs := c.Args().Slice()
	if c.IsSet("pid") && len(childArgs) > 0 {
		return errors.New("ambiguous debuggee config")
	}

	dbg := debugger.New(cfg)

	// An initial command that fails leaves an empty session behind, exactly
	// like the same command typed at the prompt.
	switch {
	case c.IsSet("pid"):
		if err := dbg.Attach(int(c.Int("pid"))); err != nil {
			logger.Error().Err(err).Msg("failed to execute command")
		}
	case len(childArgs) > 0:
		if err := dbg.Run(childArgs); err != nil {
			logger.Error().Err(err).Msg("failed to execute command")
		}
	}

	return dbg.REPL(ctx)
}
