// Package debugger drives an interactive session around at most one traced
// process: a line-oriented command loop with history, built from the same
// command machinery as the binary's own CLI.
package debugger

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/chfanghr/stupid-dbg/pkg/debuggee"
	"github.com/chfanghr/stupid-dbg/pkg/log"
	"github.com/chfanghr/stupid-dbg/pkg/register"
)

// Debugger owns the session state: the configuration and the current
// debuggee, if any.
type Debugger struct {
	cfg      Config
	debuggee *debuggee.Debuggee

	in  io.Reader
	out io.Writer
	log zerolog.Logger
}

func New(cfg Config) *Debugger {
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	return &Debugger{
		cfg: cfg,
		in:  os.Stdin,
		out: os.Stdout,
		log: log.WithComponent("debugger"),
	}
}

// Debuggee returns the current debuggee, nil when there is none.
func (d *Debugger) Debuggee() *debuggee.Debuggee {
	return d.debuggee
}

// Attach adopts pid as the session's debuggee, like the attach command.
func (d *Debugger) Attach(pid int) error {
	_, err := d.handleAttach(pid)
	return err
}

// Run launches args as the session's debuggee, like the run command.
func (d *Debugger) Run(args []string) error {
	_, err := d.handleRun(args)
	return err
}

// Close drops the current debuggee, if any.
func (d *Debugger) Close() error {
	if d.debuggee == nil {
		return nil
	}
	err := d.debuggee.Close()
	d.debuggee = nil
	return err
}

func (d *Debugger) handleAttach(pid int) (bool, error) {
	if d.debuggee != nil {
		d.log.Warn().Msg("use `detach` to detach from the current debuggee first")
		return false, nil
	}

	dbg, err := debuggee.Attach(pid)
	if err != nil {
		return false, err
	}
	d.debuggee = dbg
	return false, nil
}

func (d *Debugger) handleRun(args []string) (bool, error) {
	if d.debuggee != nil {
		d.log.Warn().Msg("use `detach` to detach from the current debuggee first")
		return false, nil
	}

	dbg, err := debuggee.Launch(args)
	if err != nil {
		return false, err
	}
	d.debuggee = dbg
	return false, nil
}

func (d *Debugger) handleDetach() (bool, error) {
	if d.debuggee == nil {
		d.log.Warn().Msg("no debuggee, do nothing")
		return false, nil
	}
	return false, d.Close()
}

func (d *Debugger) handleContinue() (bool, error) {
	if d.debuggee == nil {
		d.log.Warn().Msg("no debuggee, do nothing")
		return false, nil
	}

	if err := d.debuggee.Resume(); err != nil {
		return false, err
	}
	if err := d.debuggee.UpdateProcessState(true); err != nil {
		return false, err
	}

	d.log.Info().Stringer("process_state", d.debuggee.ProcessState()).Msg("debuggee state changed")
	return false, nil
}

func (d *Debugger) handleRegisters(all bool) (bool, error) {
	if d.debuggee == nil {
		d.log.Warn().Msg("no debuggee, do nothing")
		return false, nil
	}

	regs := d.debuggee.Registers()
	if regs == nil {
		return false, errors.New("no register snapshot, the debuggee has not stopped yet")
	}

	for _, r := range register.All() {
		if !all && r.Kind != register.KindGeneralPurpose {
			continue
		}
		v, err := regs.Read(r)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(d.out, "%-10s %s\n", r.Name, v)
	}
	return false, nil
}

func (d *Debugger) handleStatus() (bool, error) {
	if d.debuggee == nil {
		d.log.Warn().Msg("no debuggee, do nothing")
		return false, nil
	}

	pid := d.debuggee.Pid()
	fmt.Fprintf(d.out, "pid:   %d\n", pid)
	fmt.Fprintf(d.out, "state: %s\n", d.debuggee.ProcessState())

	// The /proc entry disappears once the process is reaped.
	if status, err := debuggee.StatusFromProc(pid); err == nil {
		fmt.Fprintf(d.out, "comm:  %s\n", status.Comm)
		fmt.Fprintf(d.out, "proc:  %s\n", status)
	}
	return false, nil
}

func (d *Debugger) handleQuit() (bool, error) {
	return true, nil
}
