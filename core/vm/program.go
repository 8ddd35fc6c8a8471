package vm

import (
	"github.com/ethereum/go-ethereum/core/asm"
)

// Instruction is a single decoded opcode together with its push immediate
// data (if any) and its encoded size in bytes.
type Instruction struct {
	Op       OpCode
	PushData []byte
	Size     int
}

// Program is bytecode disassembled once into a PC-indexed instruction
// table. PCs that do not begin an instruction — push immediate-data bytes,
// or anything past the end of code — have no entry and are therefore
// invalid jump targets and invalid fetch targets alike.
type Program struct {
	Code  []byte
	table map[uint64]Instruction
}

// NewProgram decodes raw bytecode into a Program, walking it once with the
// same PUSH-skipping logic an assembler's instruction iterator uses.
func NewProgram(code []byte) *Program {
	p := &Program{Code: code, table: make(map[uint64]Instruction, len(code))}
	it := asm.NewInstructionIterator(code)
	for it.Next() {
		op := OpCode(byte(it.Op()))
		arg := it.Arg()
		size := 1
		if op.IsPush() {
			size = 1 + op.PushSize()
		}
		p.table[it.PC()] = Instruction{Op: op, PushData: arg, Size: size}
	}
	return p
}

// NewProgramFromInstructions builds a Program directly from a pre-decoded
// instruction sequence, computing PCs by accumulating each instruction's
// encoded size. This backs ExecProgram, the entry point that accepts
// already-disassembled code.
func NewProgramFromInstructions(instrs []Instruction) *Program {
	p := &Program{table: make(map[uint64]Instruction, len(instrs))}
	var pc uint64
	for _, instr := range instrs {
		if instr.Size == 0 {
			instr.Size = 1
		}
		p.table[pc] = instr
		pc += uint64(instr.Size)
	}
	p.Code = make([]byte, pc)
	for at, instr := range p.table {
		p.Code[at] = byte(instr.Op)
		copy(p.Code[at+1:], instr.PushData)
	}
	return p
}

// At returns the instruction starting at pc and whether one exists there.
func (p *Program) At(pc uint64) (Instruction, bool) {
	instr, ok := p.table[pc]
	return instr, ok
}

// ValidJumpDest reports whether dest is the start of a JUMPDEST
// instruction — the only valid target for JUMP/JUMPI.
func (p *Program) ValidJumpDest(dest uint64) bool {
	instr, ok := p.table[dest]
	return ok && instr.Op == JUMPDEST
}

// Len returns the length of the underlying bytecode.
func (p *Program) Len() int { return len(p.Code) }
