package register

import (
	"encoding/binary"
	"fmt"
)

// Value is a register-sized datum: up to 16 little-endian payload bytes plus
// the significant width. Values compare with ==.
type Value struct {
	bytes [16]byte
	width int
}

func Uint8(v uint8) Value {
	val := Value{width: 1}
	val.bytes[0] = v
	return val
}

func Uint16(v uint16) Value {
	val := Value{width: 2}
	binary.LittleEndian.PutUint16(val.bytes[:2], v)
	return val
}

func Uint32(v uint32) Value {
	val := Value{width: 4}
	binary.LittleEndian.PutUint32(val.bytes[:4], v)
	return val
}

func Uint64(v uint64) Value {
	val := Value{width: 8}
	binary.LittleEndian.PutUint64(val.bytes[:8], v)
	return val
}

func Vec128(b [16]byte) Value {
	return Value{bytes: b, width: 16}
}

// Width reports the significant width of the value in bytes.
func (v Value) Width() int { return v.width }

// Bytes returns a copy of the significant bytes, little-endian.
func (v Value) Bytes() []byte {
	b := make([]byte, v.width)
	copy(b, v.bytes[:v.width])
	return b
}

// Uint64 decodes the first eight significant bytes. Narrower values are
// zero-extended.
func (v Value) Uint64() uint64 {
	var b [8]byte
	n := v.width
	if n > 8 {
		n = 8
	}
	copy(b[:], v.bytes[:n])
	return binary.LittleEndian.Uint64(b[:])
}

func (v Value) String() string {
	if v.width > 8 {
		hi := binary.LittleEndian.Uint64(v.bytes[8:16])
		lo := binary.LittleEndian.Uint64(v.bytes[0:8])
		return fmt.Sprintf("0x%016x%016x", hi, lo)
	}
	return fmt.Sprintf("0x%0*x", v.width*2, v.Uint64())
}
