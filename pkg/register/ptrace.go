package register

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// ptraceGetFPRegs fills out with the tracee's FXSAVE area. x/sys/unix has no
// typed wrapper for PTRACE_GETFPREGS, so this issues the request directly.
func ptraceGetFPRegs(pid int, out *FPRegs) error {
	_, _, errno := unix.Syscall6(
		unix.SYS_PTRACE,
		unix.PTRACE_GETFPREGS,
		uintptr(pid),
		0,
		uintptr(unsafe.Pointer(out)),
		0, 0,
	)
	if errno != 0 {
		return errno
	}
	return nil
}

// ptracePeekUser reads one word from the tracee's user area. The kernel
// stores the word through the data argument.
func ptracePeekUser(pid int, off uintptr) (uint64, error) {
	var word uint64
	_, _, errno := unix.Syscall6(
		unix.SYS_PTRACE,
		unix.PTRACE_PEEKUSR,
		uintptr(pid),
		off,
		uintptr(unsafe.Pointer(&word)),
		0, 0,
	)
	if errno != 0 {
		return 0, errno
	}
	return word, nil
}
