package debugger

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/shlex"
	"github.com/urfave/cli/v3"
)

// Execute splits one input line into shell words and runs it against the
// session command tree. The returned bool reports whether the session should
// end.
func (d *Debugger) Execute(ctx context.Context, line string) (bool, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return false, fmt.Errorf("invalid quoting in command: %w", err)
	}
	if len(words) == 0 {
		return false, nil
	}

	var quit bool
	cmd := d.commandTree(&quit)
	if err := cmd.Run(ctx, append([]string{cmd.Name}, words...)); err != nil {
		return quit, err
	}
	return quit, nil
}

// commandTree builds a fresh command tree for a single line. Handlers report
// session end through quit rather than an error so a failing command keeps
// the session alive.
func (d *Debugger) commandTree(quit *bool) *cli.Command {
	record := func(q bool, err error) error {
		*quit = *quit || q
		return err
	}

	return &cli.Command{
		Name:    "stupid-dbg",
		Usage:   "debugger session commands",
		Writer:  d.out,
		Suggest: true,

		Commands: []*cli.Command{
			{
				Name:  "attach",
				Usage: "<pid>",
				Action: func(_ context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return errors.New("attach expects exactly one pid argument")
					}
					pid, err := strconv.Atoi(c.Args().First())
					if err != nil {
						return fmt.Errorf("invalid pid %q: %w", c.Args().First(), err)
					}
					return record(d.handleAttach(pid))
				},
			},
			{
				Name:            "run",
				Usage:           "<program> [args...]",
				SkipFlagParsing: true,
				Action: func(_ context.Context, c *cli.Command) error {
					return record(d.handleRun(c.Args().Slice()))
				},
			},
			{
				Name:  "detach",
				Usage: "detach from the current debuggee",
				Action: func(_ context.Context, _ *cli.Command) error {
					return record(d.handleDetach())
				},
			},
			{
				Name:  "continue",
				Usage: "resume the debuggee and wait for the next state change",
				Action: func(_ context.Context, _ *cli.Command) error {
					return record(d.handleContinue())
				},
			},
			{
				Name:  "registers",
				Usage: "print the register file captured at the last stop",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "all",
						Aliases: []string{"a"},
						Usage:   "include sub, floating point and debug registers",
					},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					return record(d.handleRegisters(c.Bool("all")))
				},
			},
			{
				Name:  "status",
				Usage: "show the debuggee's run state",
				Action: func(_ context.Context, _ *cli.Command) error {
					return record(d.handleStatus())
				},
			},
			{
				Name:  "quit",
				Usage: "end the session",
				Action: func(_ context.Context, _ *cli.Command) error {
					return record(d.handleQuit())
				},
			},
		},

		Action: func(_ context.Context, c *cli.Command) error {
			return fmt.Errorf("unknown command: %s", c.Args().First())
		},
	}
}
