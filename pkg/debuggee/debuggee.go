// Package debuggee launches or adopts a process under ptrace and tracks its
// run state. All tracing happens on a dedicated locked OS thread owned by the
// Debuggee; the exported methods are safe to call from any goroutine, one at
// a time.
package debuggee

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/chfanghr/stupid-dbg/pkg/log"
	"github.com/chfanghr/stupid-dbg/pkg/register"
)

var errClosed = errors.New("debuggee is closed")

// Debuggee is one traced process.
type Debuggee struct {
	pid             int
	state           ProcessState
	shouldTerminate bool
	regs            *register.File

	tracer *tracer
	closed bool
	log    zerolog.Logger
}

// Launch spawns args as a traced child process with inherited stdio. The
// child stops before executing its first instruction and the initial stop is
// already collected when Launch returns.
func Launch(args []string) (*Debuggee, error) {
	if len(args) == 0 {
		return nil, errors.New("no child argument provided")
	}

	logger := log.WithComponent("debuggee")
	logger.Info().Strs("child_args", args).Msg("launching child process as debuggee")

	start := time.Now()
	d := &Debuggee{
		state:           stopped(0),
		shouldTerminate: true,
		tracer:          newTracer(),
		log:             logger,
	}

	err := d.tracer.do(func() error {
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		cmd.SysProcAttr = &syscall.SysProcAttr{Ptrace: true}

		if err := cmd.Start(); err != nil {
			return fmt.Errorf("failed to launch debuggee: %w", err)
		}
		d.pid = cmd.Process.Pid
		return nil
	})
	if err != nil {
		d.tracer.close()
		return nil, err
	}

	d.log = logger.With().Int("pid", d.pid).Logger()

	if err := d.UpdateProcessState(true); err != nil {
		_ = d.Close()
		return nil, err
	}

	d.log.Debug().Dur("in", time.Since(start)).Msg("debuggee initialized")
	return d, nil
}

// Attach adopts an already running process as the debuggee. The process is
// stopped and its initial stop collected before Attach returns.
func Attach(pid int) (*Debuggee, error) {
	logger := log.WithComponent("debuggee").With().Int("pid", pid).Logger()
	logger.Info().Msg("attaching to debuggee")

	start := time.Now()
	d := &Debuggee{
		state:  stopped(0),
		tracer: newTracer(),
		log:    logger,
	}

	err := d.tracer.do(func() error {
		logger.Debug().Msg("calling ptrace attach")
		if err := unix.PtraceAttach(pid); err != nil {
			return fmt.Errorf("unable to attach to debuggee process: %w", err)
		}
		d.pid = pid
		return nil
	})
	if err != nil {
		d.tracer.close()
		return nil, err
	}

	if err := d.UpdateProcessState(true); err != nil {
		_ = d.Close()
		return nil, err
	}

	d.log.Debug().Dur("in", time.Since(start)).Msg("debuggee initialized")
	return d, nil
}

// Pid returns the debuggee's process id.
func (d *Debuggee) Pid() int {
	return d.pid
}

// ProcessState returns the last observed run state. It does not consult the
// kernel; use UpdateProcessState for that.
func (d *Debuggee) ProcessState() ProcessState {
	return d.state
}

// Registers returns the register snapshot taken at the last observed stop,
// or nil when the debuggee has not stopped yet.
func (d *Debuggee) Registers() *register.File {
	return d.regs
}

// SpawnedChild reports whether the debuggee was launched by us rather than
// attached to.
func (d *Debuggee) SpawnedChild() bool {
	return d.shouldTerminate
}

// UpdateProcessState refreshes the run state from the kernel. A blocking
// update waits for the next state change; a non-blocking one polls and leaves
// the state Running when nothing has changed. On every observed stop the
// register file is snapshotted.
func (d *Debuggee) UpdateProcessState(blocking bool) error {
	if d.closed {
		return errClosed
	}
	return d.tracer.do(func() error {
		return d.updateProcessState(blocking)
	})
}

func (d *Debuggee) updateProcessState(blocking bool) error {
	var opts int
	if !blocking {
		opts = unix.WNOHANG
	}

	var (
		ws   unix.WaitStatus
		wpid int
		err  error
	)
	for {
		wpid, err = unix.Wait4(d.pid, &ws, opts, nil)
		if err != unix.EINTR {
			break
		}
	}

	switch {
	case err == unix.ECHILD:
		d.state = exitedUnknown()
	case err != nil:
		return fmt.Errorf("failed to wait for debuggee: %w", err)
	case wpid == 0:
		// WNOHANG and nothing changed.
		d.state = running()
	case ws.Exited():
		d.state = exited(ws.ExitStatus())
	case ws.Signaled():
		d.state = terminated(ws.Signal())
	case ws.Stopped():
		d.state = stopped(ws.StopSignal())
	case ws.Continued():
		d.state = running()
	default:
		return fmt.Errorf("unhandled wait status: %#x", uint32(ws))
	}

	if d.state.Kind == StateStopped {
		if err := d.readRegisters(); err != nil {
			return err
		}
	}
	return nil
}

func (d *Debuggee) readRegisters() error {
	d.log.Debug().Msg("reading registers")

	f, err := register.Snapshot(d.pid)
	if err != nil {
		return fmt.Errorf("failed to read registers of debuggee: %w", err)
	}
	d.regs = f
	return nil
}

// Resume lets a stopped debuggee run again with PTRACE_CONT.
func (d *Debuggee) Resume() error {
	if d.closed {
		return errClosed
	}
	return d.tracer.do(func() error {
		switch d.state.Kind {
		case StateStopped, StateRunning:
			if err := unix.PtraceCont(d.pid, 0); err != nil {
				return fmt.Errorf("failed to resume debuggee: %w", err)
			}
			d.state = running()
		case StateExited, StateTerminated:
			return errors.New("unable to resume an exited or terminated process")
		}

		d.log.Info().Msg("debuggee process resumed")
		return nil
	})
}

// Close detaches from the debuggee, killing and reaping it first when it was
// spawned by us, then stops the tracer thread. Close is idempotent and
// reports teardown problems as warnings only.
func (d *Debuggee) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	d.log.Info().Msg("detaching from debuggee")

	err := d.tracer.do(func() error {
		d.teardown()
		return nil
	})
	d.tracer.close()
	return err
}

// teardown mirrors the attach handshake in reverse: stop the process so
// detach is legal, detach with a queued SIGCONT, nudge it again with SIGCONT,
// and for spawned children kill and reap.
func (d *Debuggee) teardown() {
	_ = d.updateProcessState(false)

	if d.state.IsAlive() {
		if err := unix.Kill(d.pid, unix.SIGSTOP); err != nil {
			d.log.Warn().Err(err).Msg("unable to stop the debuggee process")
			return
		}

		if err := ptraceDetach(d.pid, unix.SIGCONT); err != nil {
			d.log.Warn().Err(err).Msg("unable to detach from the debuggee process")
		}

		if err := unix.Kill(d.pid, unix.SIGCONT); err != nil {
			d.log.Warn().Err(err).Msg("unable to resume the debuggee process")
		}

		if d.shouldTerminate {
			d.log.Info().Msg("terminating debuggee")

			if err := unix.Kill(d.pid, unix.SIGKILL); err != nil {
				d.log.Warn().Err(err).Msg("unable to kill the debuggee")
				return
			}

			var ws unix.WaitStatus
			if _, err := unix.Wait4(d.pid, &ws, 0, nil); err != nil {
				d.log.Warn().Err(err).Msg("unable to wait for debuggee to exit")
			}
		}
	}

	if d.shouldTerminate {
		// Collect the child if it slipped past the explicit reap above.
		var ws unix.WaitStatus
		_, _ = unix.Wait4(d.pid, &ws, unix.WNOHANG, nil)
	}
}
