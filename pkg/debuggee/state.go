package debuggee

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// StateKind discriminates the run states a tracee moves through.
type StateKind uint8

const (
	StateRunning StateKind = iota
	StateStopped
	StateExited
	StateTerminated
)

// ProcessState is the last observed run state of the debuggee.
type ProcessState struct {
	Kind StateKind

	// Signal is the stop or termination signal. Zero for a stop whose
	// signal has not been observed yet.
	Signal unix.Signal

	// ExitCode is the exit status when Kind is StateExited. Negative when
	// the status could not be collected.
	ExitCode int
}

func running() ProcessState {
	return ProcessState{Kind: StateRunning}
}

func stopped(sig unix.Signal) ProcessState {
	return ProcessState{Kind: StateStopped, Signal: sig}
}

func exited(code int) ProcessState {
	return ProcessState{Kind: StateExited, ExitCode: code}
}

func exitedUnknown() ProcessState {
	return ProcessState{Kind: StateExited, ExitCode: -1}
}

func terminated(sig unix.Signal) ProcessState {
	return ProcessState{Kind: StateTerminated, Signal: sig}
}

// IsAlive reports whether the process still exists from the tracer's point
// of view.
func (s ProcessState) IsAlive() bool {
	return s.Kind == StateRunning || s.Kind == StateStopped
}

func (s ProcessState) String() string {
	switch s.Kind {
	case StateRunning:
		return "running"
	case StateStopped:
		if s.Signal != 0 {
			return fmt.Sprintf("stopped with signal: %s", unix.SignalName(s.Signal))
		}
		return "stopped"
	case StateExited:
		if s.ExitCode >= 0 {
			return fmt.Sprintf("exited with status code: %d", s.ExitCode)
		}
		return "exited"
	case StateTerminated:
		return fmt.Sprintf("terminated with signal: %s", unix.SignalName(s.Signal))
	}
	return fmt.Sprintf("state(%d)", uint8(s.Kind))
}
