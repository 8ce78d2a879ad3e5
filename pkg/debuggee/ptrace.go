package debuggee

import (
	"golang.org/x/sys/unix"
)

// ptraceDetach detaches from the tracee and delivers sig in the same motion.
// x/sys/unix's PtraceDetach takes no signal argument, so this issues the
// request directly.
func ptraceDetach(pid int, sig unix.Signal) error {
	_, _, errno := unix.Syscall6(
		unix.SYS_PTRACE,
		unix.PTRACE_DETACH,
		uintptr(pid),
		0,
		uintptr(sig),
		0, 0,
	)
	if errno != 0 {
		return errno
	}
	return nil
}
