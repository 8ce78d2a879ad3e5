package register

import (
	"unsafe"
)

// amd64 is the register table for x86_64 Linux. Offsets are the sum of the
// user-area field offset, the field offset inside the sub struct, and the
// slot offset for array-backed registers.
var amd64 = newAmd64Table()

func newAmd64Table() *table {
	var u User

	regs := unsafe.Offsetof(u.Regs)
	i387 := unsafe.Offsetof(u.I387)
	st := i387 + unsafe.Offsetof(u.I387.StSpace)
	xmm := i387 + unsafe.Offsetof(u.I387.XmmSpace)
	dr := unsafe.Offsetof(u.UDebugreg)

	t := &table{byName: make(map[string]*Register)}

	// gpr64(<name>, <dwarf id>, <field>)
	t.gpr64("rax", 0, regs+unsafe.Offsetof(u.Regs.Rax))
	t.gpr64("rdx", 1, regs+unsafe.Offsetof(u.Regs.Rdx))
	t.gpr64("rcx", 2, regs+unsafe.Offsetof(u.Regs.Rcx))
	t.gpr64("rbx", 3, regs+unsafe.Offsetof(u.Regs.Rbx))
	t.gpr64("rsi", 4, regs+unsafe.Offsetof(u.Regs.Rsi))
	t.gpr64("rdi", 5, regs+unsafe.Offsetof(u.Regs.Rdi))
	t.gpr64("rbp", 6, regs+unsafe.Offsetof(u.Regs.Rbp))
	t.gpr64("rsp", 7, regs+unsafe.Offsetof(u.Regs.Rsp))
	t.gpr64("r8", 8, regs+unsafe.Offsetof(u.Regs.R8))
	t.gpr64("r9", 9, regs+unsafe.Offsetof(u.Regs.R9))
	t.gpr64("r10", 10, regs+unsafe.Offsetof(u.Regs.R10))
	t.gpr64("r11", 11, regs+unsafe.Offsetof(u.Regs.R11))
	t.gpr64("r12", 12, regs+unsafe.Offsetof(u.Regs.R12))
	t.gpr64("r13", 13, regs+unsafe.Offsetof(u.Regs.R13))
	t.gpr64("r14", 14, regs+unsafe.Offsetof(u.Regs.R14))
	t.gpr64("r15", 15, regs+unsafe.Offsetof(u.Regs.R15))
	t.gpr64("rip", 16, regs+unsafe.Offsetof(u.Regs.Rip))
	t.gpr64("eflags", 49, regs+unsafe.Offsetof(u.Regs.Eflags))
	t.gpr64("es", 50, regs+unsafe.Offsetof(u.Regs.Es))
	t.gpr64("cs", 51, regs+unsafe.Offsetof(u.Regs.Cs))
	t.gpr64("ss", 52, regs+unsafe.Offsetof(u.Regs.Ss))
	t.gpr64("ds", 53, regs+unsafe.Offsetof(u.Regs.Ds))
	t.gpr64("fs", 54, regs+unsafe.Offsetof(u.Regs.Fs))
	t.gpr64("gs", 55, regs+unsafe.Offsetof(u.Regs.Gs))
	t.gpr64("orig_rax", NoDwarfID, regs+unsafe.Offsetof(u.Regs.Orig_rax))

	// gpr32(<name>, <base>)
	t.gpr32("eax", "rax")
	t.gpr32("edx", "rdx")
	t.gpr32("ecx", "rcx")
	t.gpr32("ebx", "rbx")
	t.gpr32("esi", "rsi")
	t.gpr32("edi", "rdi")
	t.gpr32("ebp", "rbp")
	t.gpr32("esp", "rsp")
	t.gpr32("r8d", "r8")
	t.gpr32("r9d", "r9")
	t.gpr32("r10d", "r10")
	t.gpr32("r11d", "r11")
	t.gpr32("r12d", "r12")
	t.gpr32("r13d", "r13")
	t.gpr32("r14d", "r14")
	t.gpr32("r15d", "r15")

	// gpr16(<name>, <base>)
	t.gpr16("ax", "rax")
	t.gpr16("dx", "rdx")
	t.gpr16("cx", "rcx")
	t.gpr16("bx", "rbx")
	t.gpr16("si", "rsi")
	t.gpr16("di", "rdi")
	t.gpr16("bp", "rbp")
	t.gpr16("sp", "rsp")
	t.gpr16("r8w", "r8")
	t.gpr16("r9w", "r9")
	t.gpr16("r10w", "r10")
	t.gpr16("r11w", "r11")
	t.gpr16("r12w", "r12")
	t.gpr16("r13w", "r13")
	t.gpr16("r14w", "r14")
	t.gpr16("r15w", "r15")

	// gpr8l(<name>, <base>)
	t.gpr8l("al", "rax")
	t.gpr8l("dl", "rdx")
	t.gpr8l("cl", "rcx")
	t.gpr8l("bl", "rbx")
	t.gpr8l("sil", "rsi")
	t.gpr8l("dil", "rdi")
	t.gpr8l("bpl", "rbp")
	t.gpr8l("spl", "rsp")
	t.gpr8l("r8b", "r8")
	t.gpr8l("r9b", "r9")
	t.gpr8l("r10b", "r10")
	t.gpr8l("r11b", "r11")
	t.gpr8l("r12b", "r12")
	t.gpr8l("r13b", "r13")
	t.gpr8l("r14b", "r14")
	t.gpr8l("r15b", "r15")

	// gpr8h(<name>, <base>)
	t.gpr8h("ah", "rax")
	t.gpr8h("dh", "rdx")
	t.gpr8h("ch", "rcx")
	t.gpr8h("bh", "rbx")

	// fpr(<name>, <dwarf id>, <field in user_fpregs_struct>)
	t.fpr("fcw", 65, i387+unsafe.Offsetof(u.I387.Cwd), unsafe.Sizeof(u.I387.Cwd))
	t.fpr("fsw", 66, i387+unsafe.Offsetof(u.I387.Swd), unsafe.Sizeof(u.I387.Swd))
	t.fpr("ftw", NoDwarfID, i387+unsafe.Offsetof(u.I387.Ftw), unsafe.Sizeof(u.I387.Ftw))
	t.fpr("fop", NoDwarfID, i387+unsafe.Offsetof(u.I387.Fop), unsafe.Sizeof(u.I387.Fop))
	t.fpr("frip", NoDwarfID, i387+unsafe.Offsetof(u.I387.Rip), unsafe.Sizeof(u.I387.Rip))
	t.fpr("frdp", NoDwarfID, i387+unsafe.Offsetof(u.I387.Rdp), unsafe.Sizeof(u.I387.Rdp))
	t.fpr("mxcsr", 64, i387+unsafe.Offsetof(u.I387.Mxcsr), unsafe.Sizeof(u.I387.Mxcsr))
	t.fpr("mxcsrmask", NoDwarfID, i387+unsafe.Offsetof(u.I387.MxcrMask), unsafe.Sizeof(u.I387.MxcrMask))

	for n := 0; n < 8; n++ {
		t.fpSt(st, n)
	}
	for n := 0; n < 8; n++ {
		t.fpMM(st, n)
	}
	for n := 0; n < 16; n++ {
		t.fpXMM(xmm, n)
	}
	for n := 0; n < 8; n++ {
		t.dr(dr, n)
	}

	return t
}
