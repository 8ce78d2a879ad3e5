package register

import (
	"golang.org/x/sys/unix"
)

// FPRegs mirrors the x86_64 user_fpregs_struct: the 512-byte FXSAVE area.
// StSpace holds the eight x87 slots (16 bytes apart, MMX registers alias
// their low halves), XmmSpace the sixteen XMM slots.
type FPRegs struct {
	Cwd      uint16
	Swd      uint16
	Ftw      uint16
	Fop      uint16
	Rip      uint64
	Rdp      uint64
	Mxcsr    uint32
	MxcrMask uint32
	StSpace  [32]uint32
	XmmSpace [64]uint32
	Padding  [24]uint32
}

// User mirrors the x86_64 user area (sys/user.h) that ptrace exposes through
// PTRACE_PEEKUSER. Field order and sizes must match glibc exactly: register
// offsets are computed from this struct, and the debug-register reads go
// through the kernel at the same offsets.
type User struct {
	Regs       unix.PtraceRegs
	UFpvalid   int32
	I387       FPRegs
	UTsize     uint64
	UDsize     uint64
	USsize     uint64
	StartCode  uint64
	StartStack uint64
	Signal     int64
	Reserved   int32
	UAr0       uintptr
	UFpstate   uintptr
	Magic      uint64
	UComm      [32]byte
	UDebugreg  [8]uint64
}
