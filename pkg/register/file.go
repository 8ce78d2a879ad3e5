package register

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// File is a point-in-time copy of a tracee's register state laid out as the
// user area. Writes only modify the copy.
type File struct {
	user User
}

// NewFile returns a zeroed register file, useful as a scratch image.
func NewFile() *File {
	return &File{}
}

// UserArea exposes the underlying user-area image.
func (f *File) UserArea() *User {
	return &f.user
}

func (f *File) raw() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&f.user)), int(unsafe.Sizeof(f.user)))
}

// Read copies the register's bytes out of the snapshot.
func (f *File) Read(r *Register) (Value, error) {
	switch r.ByteWidth {
	case 1, 2, 4, 8, 16:
	default:
		return Value{}, fmt.Errorf("register %s has unsupported width %d", r.Name, r.ByteWidth)
	}

	v := Value{width: r.ByteWidth}
	copy(v.bytes[:r.ByteWidth], f.raw()[r.offset:r.offset+uintptr(r.ByteWidth)])
	return v, nil
}

// Write stores a value of exactly the register's width into the snapshot.
func (f *File) Write(r *Register, v Value) error {
	if v.width != r.ByteWidth {
		return fmt.Errorf("register %s expects a %d-byte value, got %d bytes", r.Name, r.ByteWidth, v.width)
	}
	copy(f.raw()[r.offset:r.offset+uintptr(r.ByteWidth)], v.bytes[:v.width])
	return nil
}

// WriteAny stores a value no wider than the register, zero-extending it to
// the register's width.
func (f *File) WriteAny(r *Register, v Value) error {
	if v.width > r.ByteWidth {
		return fmt.Errorf("register %s is %d bytes wide, cannot hold a %d-byte value", r.Name, r.ByteWidth, v.width)
	}
	slot := f.raw()[r.offset : r.offset+uintptr(r.ByteWidth)]
	clear(slot)
	copy(slot, v.bytes[:v.width])
	return nil
}

// Snapshot reads the full register state of a stopped tracee: the general
// purpose block, the FXSAVE area and the eight debug registers. The caller
// must be on the thread that traces pid.
func Snapshot(pid int) (*File, error) {
	var f File

	if err := unix.PtraceGetRegs(pid, &f.user.Regs); err != nil {
		return nil, fmt.Errorf("failed to read general purpose registers: %w", err)
	}

	if err := ptraceGetFPRegs(pid, &f.user.I387); err != nil {
		return nil, fmt.Errorf("failed to read floating point registers: %w", err)
	}

	drBase := unsafe.Offsetof(f.user.UDebugreg)
	for n := range f.user.UDebugreg {
		word, err := ptracePeekUser(pid, drBase+uintptr(n)*8)
		if err != nil {
			return nil, fmt.Errorf("failed to read debug register dr%d: %w", n, err)
		}
		f.user.UDebugreg[n] = word
	}

	return &f, nil
}
