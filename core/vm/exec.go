package vm

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Exec disassembles code (raw bytecode) and drives it to completion
// against calldata. It is the primary entry point: construct a fresh
// Context from code + opts, run it, and return the result or the first
// fatal error encountered. REVERT is not an error — see
// ExecutionResult.Reverted.
func Exec(code []byte, calldata []byte, opts Options) (ExecutionResult, error) {
	return run(newExecContext(NewProgram(code), calldata, opts), opts.Verbose)
}

// ExecProgram is the pre-decoded entry point: code has already been
// disassembled into an instruction sequence (e.g. hand-assembled in a
// test) rather than supplied as raw bytes.
func ExecProgram(program []Instruction, calldata []byte, opts Options) (ExecutionResult, error) {
	return run(newExecContext(NewProgramFromInstructions(program), calldata, opts), opts.Verbose)
}

func newExecContext(program *Program, calldata []byte, opts Options) *Context {
	value := opts.CallValue
	if value == nil {
		value = new(big.Int)
	}
	word, err := toWordUnsigned(value)
	if err != nil {
		// An out-of-range CallValue is a caller programming error, not a
		// bytecode fault; clamp to zero rather than threading this
		// boundary error through Options, which is not spec'd to report it.
		word = new(uint256.Int)
	}
	return NewContext(program, Input{Calldata: calldata, Value: word}, buildFFITable(opts.FFIs))
}

// CallResult is ExecCall's collapsed view of an execution: either a
// successful return, a revert, both carrying their data, or a fatal
// error that surfaces separately.
type CallResult struct {
	Ok   bool
	Data []byte
}

// ExecCall runs code and collapses the result to {ok, data} | {revert,
// data}; any fatal vm error (as opposed to REVERT) is returned as a Go
// error instead.
func ExecCall(code []byte, calldata []byte, opts Options) (CallResult, error) {
	result, err := Exec(code, calldata, opts)
	if err != nil {
		return CallResult{}, err
	}
	return CallResult{Ok: !result.Reverted, Data: result.ReturnData}, nil
}
