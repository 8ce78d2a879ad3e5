package debuggee

import (
	"fmt"

	"github.com/prometheus/procfs"
)

// ProcStatus is the kernel scheduler's view of a process, read from
// /proc/<pid>/stat. It needs no ptrace relationship and works on any pid.
type ProcStatus struct {
	Comm  string
	State string
}

// StatusFromProc reads pid's /proc stat entry.
func StatusFromProc(pid int) (ProcStatus, error) {
	proc, err := procfs.NewProc(pid)
	if err != nil {
		return ProcStatus{}, fmt.Errorf("failed to open /proc entry of %d: %w", pid, err)
	}

	stat, err := proc.Stat()
	if err != nil {
		return ProcStatus{}, fmt.Errorf("failed to read /proc/%d/stat: %w", pid, err)
	}

	return ProcStatus{Comm: stat.Comm, State: stat.State}, nil
}

// StateName spells out the single-letter scheduler state.
func (s ProcStatus) StateName() string {
	switch s.State {
	case "R":
		return "running"
	case "S":
		return "sleeping"
	case "D":
		return "disk sleep"
	case "Z":
		return "zombie"
	case "T":
		return "stopped"
	case "t":
		return "tracing stop"
	case "X":
		return "dead"
	case "I":
		return "idle"
	}
	return "unknown"
}

func (s ProcStatus) String() string {
	return fmt.Sprintf("%s (%s)", s.State, s.StateName())
}
