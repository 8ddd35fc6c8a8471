package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Input is the immutable per-execution input: the calldata byte string and
// the call value exposed via CALLVALUE. Neither changes once execution
// starts.
type Input struct {
	Calldata []byte
	Value    *uint256.Int
}

// FFIResult is what a registered FFI handler returns to STATICCALL: either
// return bytes (success) or revert bytes.
type FFIResult struct {
	Reverted bool
	Data     []byte
}

// FFIFunc is a host-registered pure function invoked by STATICCALL against
// a specific address. Handlers must be deterministic and side-effect free
// beyond out-of-band diagnostics (see the console-log built-in).
type FFIFunc func(args []byte) FFIResult

// Context is the mutable state threaded through one execution: the
// decoded program, stack, memory, transient storage, the halt/revert
// flags, and the FFI table it can dispatch STATICCALL to. A Context is
// constructed fresh for every Exec call and never shared across calls.
type Context struct {
	Program *Program

	PC     uint64
	Stack  *Stack
	Memory *Memory

	// Transient storage: a per-execution word-keyed word map, always empty
	// at the start of a call and never read back across calls.
	transient map[[32]byte]*uint256.Int

	Input Input

	FFIs map[common.Address]FFIFunc

	Halted     bool
	Reverted   bool
	ReturnData []byte
}

// NewContext builds a fresh Context for one execution.
func NewContext(program *Program, input Input, ffis map[common.Address]FFIFunc) *Context {
	return &Context{
		Program:   program,
		Stack:     NewStack(),
		Memory:    NewMemory(),
		transient: make(map[[32]byte]*uint256.Int),
		Input:     input,
		FFIs:      ffis,
	}
}

// TLoad returns the transient value at key, or the zero word if absent.
func (c *Context) TLoad(key [32]byte) *uint256.Int {
	if v, ok := c.transient[key]; ok {
		return new(uint256.Int).Set(v)
	}
	return new(uint256.Int)
}

// TStore sets the transient value at key.
func (c *Context) TStore(key [32]byte, val *uint256.Int) {
	c.transient[key] = new(uint256.Int).Set(val)
}

// CurrentInstruction fetches the instruction at the current PC, reporting
// PC_OUT_OF_BOUNDS if PC does not begin an instruction.
func (c *Context) CurrentInstruction() (Instruction, error) {
	instr, ok := c.Program.At(c.PC)
	if !ok {
		return Instruction{}, errKind(KindPCOutOfBounds, "")
	}
	return instr, nil
}

// ExecutionResult is what a completed (non-erroring) execution produces.
type ExecutionResult struct {
	Stack      []*uint256.Int
	Reverted   bool
	ReturnData []byte
}

func (c *Context) result() ExecutionResult {
	return ExecutionResult{
		Stack:      c.Stack.Data(),
		Reverted:   c.Reverted,
		ReturnData: c.ReturnData,
	}
}
