package vm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/eth2030/pureevm/log"
)

// Options controls one Exec/ExecCall/ExecProgram invocation. Every field
// has a useful zero value: an empty Options runs with call value 0, no
// FFIs beyond the built-ins, and no trace output.
type Options struct {
	// CallValue is exposed to the program via CALLVALUE.
	CallValue *big.Int

	// FFIs is layered over the built-in FFI table; entries here win on
	// address collision.
	FFIs map[common.Address]FFIFunc

	// Verbose, if true, makes the driver log one line per executed step.
	Verbose bool
}

var jumpTable = NewJumpTable()

// run drives ctx to completion: fetch, stack-discipline check, execute,
// advance. PC always advances by the size of the instruction that was
// just executed, even when that instruction jumped — a jump's own
// post-increment lands one byte past its destination, which is harmless
// since JUMPDEST is itself a no-op.
func run(ctx *Context, verbose bool) (ExecutionResult, error) {
	logger := log.Default().Module("vm")
	for {
		instr, ok := ctx.Program.At(ctx.PC)
		if !ok {
			return ExecutionResult{}, errKind(KindPCOutOfBounds, "")
		}
		entry := jumpTable[instr.Op]

		if verbose {
			logger.Info("step", "pc", ctx.PC, "op", instr.Op.String(), "depth", ctx.Stack.Len())
		}

		if ctx.Stack.Len() < entry.minStack {
			return ExecutionResult{}, errKind(KindStackUnderflow, "")
		}
		if ctx.Stack.Len() > entry.maxStack {
			return ExecutionResult{}, errKind(KindStackOverflow, "")
		}

		if err := entry.execute(ctx); err != nil {
			return ExecutionResult{}, err
		}
		if ctx.Halted {
			return ctx.result(), nil
		}
		ctx.PC += uint64(instr.Size)
	}
}
