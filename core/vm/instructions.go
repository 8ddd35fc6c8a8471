package vm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// executionFunc is the signature every opcode body implements. It mutates
// ctx in place (popping/pushing the stack, growing memory, setting the
// halt/revert flags) and returns a fatal error, if any. REVERT is not
// signaled through this return value — it is recorded on ctx.
type executionFunc func(ctx *Context) error

var (
	big1    = big.NewInt(1)
	tt256   = new(big.Int).Lsh(big1, 256)
	tt255   = new(big.Int).Lsh(big1, 255)
)

// toS256 interprets an unsigned 256-bit magnitude as a signed integer.
func toS256(val *big.Int) *big.Int {
	if val.Cmp(tt255) < 0 {
		return val
	}
	return new(big.Int).Sub(val, tt256)
}

// fromS256 converts a signed integer back to its unsigned 256-bit
// representation, wrapping modulo 2^256.
func fromS256(val *big.Int) *big.Int {
	return new(big.Int).Mod(val, tt256)
}

// floorDivMod computes q, r such that a = q*b + r and q = floor(a/b) — the
// spec's chosen convention for SDIV/SMOD, which intentionally diverges
// from mainnet's truncation-toward-zero.
func floorDivMod(a, b *big.Int) (q, r *big.Int) {
	q, r = new(big.Int), new(big.Int)
	q.QuoRem(a, b, r)
	if r.Sign() != 0 && (r.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, big1)
		r.Add(r, b)
	}
	return q, r
}

// getData returns size bytes of data starting at start, zero-extending
// past the end — the same boundary rule CALLDATALOAD, CALLDATACOPY,
// CODECOPY, and RETURNDATACOPY all share. size is bounded against
// MaxMemory before the zero-padded copy is allocated: callers pass an
// attacker-controlled stack value here, and RightPadBytes would otherwise
// try to allocate it directly, ahead of the memory cap the caller's
// Memory.Set call would normally enforce.
func getData(data []byte, start, size uint64) ([]byte, error) {
	if size > MaxMemory {
		return nil, errKind(KindOutOfMemory, "")
	}
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length {
		end = length
	}
	return common.RightPadBytes(data[start:end], int(size)), nil
}

// --- Arithmetic (unsigned, modular mod 2^256) ---

func opAdd(ctx *Context) error {
	x, y := ctx.Stack.Pop(), ctx.Stack.Peek()
	y.Add(x, y)
	return nil
}

func opSub(ctx *Context) error {
	x, y := ctx.Stack.Pop(), ctx.Stack.Peek()
	y.Sub(x, y)
	return nil
}

func opMul(ctx *Context) error {
	x, y := ctx.Stack.Pop(), ctx.Stack.Peek()
	y.Mul(x, y)
	return nil
}

func opDiv(ctx *Context) error {
	x, y := ctx.Stack.Pop(), ctx.Stack.Peek()
	y.Div(x, y)
	return nil
}

func opMod(ctx *Context) error {
	x, y := ctx.Stack.Pop(), ctx.Stack.Peek()
	y.Mod(x, y)
	return nil
}

func opAddmod(ctx *Context) error {
	x, y, z := ctx.Stack.Pop(), ctx.Stack.Pop(), ctx.Stack.Peek()
	z.AddMod(x, y, z)
	return nil
}

func opMulmod(ctx *Context) error {
	x, y, z := ctx.Stack.Pop(), ctx.Stack.Pop(), ctx.Stack.Peek()
	z.MulMod(x, y, z)
	return nil
}

func opExp(ctx *Context) error {
	base, exponent := ctx.Stack.Pop(), ctx.Stack.Peek()
	exponent.Exp(base, exponent)
	return nil
}

func opSignExtend(ctx *Context) error {
	back, num := ctx.Stack.Pop(), ctx.Stack.Peek()
	num.ExtendSign(num, back)
	return nil
}

// --- Arithmetic (signed; SDIV/SMOD use floor division, see Design Notes) ---

func opSdiv(ctx *Context) error {
	x, y := ctx.Stack.Pop(), ctx.Stack.Peek()
	sx, sy := toS256(x.ToBig()), toS256(y.ToBig())
	if sy.Sign() == 0 {
		y.Clear()
		return nil
	}
	q, _ := floorDivMod(sx, sy)
	w, _ := uint256.FromBig(fromS256(q))
	*y = *w
	return nil
}

func opSmod(ctx *Context) error {
	x, y := ctx.Stack.Pop(), ctx.Stack.Peek()
	sx, sy := toS256(x.ToBig()), toS256(y.ToBig())
	if sy.Sign() == 0 {
		y.Clear()
		return nil
	}
	_, r := floorDivMod(sx, sy)
	w, _ := uint256.FromBig(fromS256(r))
	*y = *w
	return nil
}

// --- Comparisons ---

func opLt(ctx *Context) error {
	x, y := ctx.Stack.Pop(), ctx.Stack.Peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opGt(ctx *Context) error {
	x, y := ctx.Stack.Pop(), ctx.Stack.Peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opSlt(ctx *Context) error {
	x, y := ctx.Stack.Pop(), ctx.Stack.Peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opSgt(ctx *Context) error {
	x, y := ctx.Stack.Pop(), ctx.Stack.Peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opEq(ctx *Context) error {
	x, y := ctx.Stack.Pop(), ctx.Stack.Peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil
}

func opIszero(ctx *Context) error {
	x := ctx.Stack.Peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil
}

// --- Bitwise ---

func opAnd(ctx *Context) error {
	x, y := ctx.Stack.Pop(), ctx.Stack.Peek()
	y.And(x, y)
	return nil
}

func opOr(ctx *Context) error {
	x, y := ctx.Stack.Pop(), ctx.Stack.Peek()
	y.Or(x, y)
	return nil
}

func opXor(ctx *Context) error {
	x, y := ctx.Stack.Pop(), ctx.Stack.Peek()
	y.Xor(x, y)
	return nil
}

func opNot(ctx *Context) error {
	x := ctx.Stack.Peek()
	x.Not(x)
	return nil
}

func opByte(ctx *Context) error {
	th, val := ctx.Stack.Pop(), ctx.Stack.Peek()
	val.Byte(th)
	return nil
}

func opShl(ctx *Context) error {
	shift, value := ctx.Stack.Pop(), ctx.Stack.Peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil
}

func opShr(ctx *Context) error {
	shift, value := ctx.Stack.Pop(), ctx.Stack.Peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil
}

func opSar(ctx *Context) error {
	shift, value := ctx.Stack.Pop(), ctx.Stack.Peek()
	sv := toS256(value.ToBig())
	if shift.GtUint64(255) {
		if sv.Sign() < 0 {
			value.SetAllOne()
		} else {
			value.Clear()
		}
		return nil
	}
	n := uint(shift.Uint64())
	result := new(big.Int).Rsh(sv, n)
	w, _ := uint256.FromBig(fromS256(result))
	*value = *w
	return nil
}

// --- Hashing ---

func opKeccak256(ctx *Context) error {
	offset, size := ctx.Stack.Pop(), ctx.Stack.Peek()
	data, err := ctx.Memory.Get(offset.Uint64(), size.Uint64())
	if err != nil {
		return err
	}
	size.SetBytes(crypto.Keccak256(data))
	return nil
}

// --- Input ---

func opCallValue(ctx *Context) error {
	return ctx.Stack.Push(new(uint256.Int).Set(ctx.Input.Value))
}

func opCalldataLoad(ctx *Context) error {
	x := ctx.Stack.Peek()
	data, err := getData(ctx.Input.Calldata, x.Uint64(), 32)
	if err != nil {
		return err
	}
	x.SetBytes(data)
	return nil
}

func opCalldataSize(ctx *Context) error {
	return ctx.Stack.Push(uint256.NewInt(uint64(len(ctx.Input.Calldata))))
}

func opCalldataCopy(ctx *Context) error {
	memOffset, dataOffset, length := ctx.Stack.Pop(), ctx.Stack.Pop(), ctx.Stack.Pop()
	data, err := getData(ctx.Input.Calldata, dataOffset.Uint64(), length.Uint64())
	if err != nil {
		return err
	}
	return ctx.Memory.Set(memOffset.Uint64(), length.Uint64(), data)
}

// --- Code ---

func opCodeSize(ctx *Context) error {
	return ctx.Stack.Push(uint256.NewInt(uint64(ctx.Program.Len())))
}

func opCodeCopy(ctx *Context) error {
	memOffset, codeOffset, length := ctx.Stack.Pop(), ctx.Stack.Pop(), ctx.Stack.Pop()
	data, err := getData(ctx.Program.Code, codeOffset.Uint64(), length.Uint64())
	if err != nil {
		return err
	}
	return ctx.Memory.Set(memOffset.Uint64(), length.Uint64(), data)
}

// --- Return data ---

func opReturnDataSize(ctx *Context) error {
	return ctx.Stack.Push(uint256.NewInt(uint64(len(ctx.ReturnData))))
}

func opReturnDataCopy(ctx *Context) error {
	memOffset, dataOffset, length := ctx.Stack.Pop(), ctx.Stack.Pop(), ctx.Stack.Pop()
	data, err := getData(ctx.ReturnData, dataOffset.Uint64(), length.Uint64())
	if err != nil {
		return err
	}
	return ctx.Memory.Set(memOffset.Uint64(), length.Uint64(), data)
}

// --- Memory ---

func opMload(ctx *Context) error {
	x := ctx.Stack.Peek()
	data, err := ctx.Memory.Get(x.Uint64(), 32)
	if err != nil {
		return err
	}
	x.SetBytes(data)
	return nil
}

func opMstore(ctx *Context) error {
	offset, val := ctx.Stack.Pop(), ctx.Stack.Pop()
	return ctx.Memory.Set32(offset.Uint64(), val)
}

func opMstore8(ctx *Context) error {
	offset, val := ctx.Stack.Pop(), ctx.Stack.Pop()
	return ctx.Memory.Set(offset.Uint64(), 1, []byte{byte(val.Uint64())})
}

func opMsize(ctx *Context) error {
	return ctx.Stack.Push(uint256.NewInt(uint64(ctx.Memory.Len())))
}

func opMcopy(ctx *Context) error {
	dst, src, length := ctx.Stack.Pop(), ctx.Stack.Pop(), ctx.Stack.Pop()
	data, err := ctx.Memory.Get(src.Uint64(), length.Uint64())
	if err != nil {
		return err
	}
	return ctx.Memory.Set(dst.Uint64(), length.Uint64(), data)
}

// --- Control flow ---

func opJump(ctx *Context) error {
	dest := ctx.Stack.Pop()
	if !dest.IsUint64() || !ctx.Program.ValidJumpDest(dest.Uint64()) {
		return errKind(KindInvalidJumpDest, "")
	}
	ctx.PC = dest.Uint64()
	return nil
}

func opJumpi(ctx *Context) error {
	dest, cond := ctx.Stack.Pop(), ctx.Stack.Pop()
	if cond.IsZero() {
		return nil
	}
	if !dest.IsUint64() || !ctx.Program.ValidJumpDest(dest.Uint64()) {
		return errKind(KindInvalidJumpDest, "")
	}
	ctx.PC = dest.Uint64()
	return nil
}

func opPc(ctx *Context) error {
	return ctx.Stack.Push(uint256.NewInt(ctx.PC))
}

func opJumpdest(ctx *Context) error { return nil }

// --- Stack ---

func opPop(ctx *Context) error {
	ctx.Stack.Pop()
	return nil
}

func opPush0(ctx *Context) error {
	return ctx.Stack.Push(new(uint256.Int))
}

// makePush returns the PUSH(n) executor, reading the instruction's
// immediate data off the program rather than the stack.
func makePush(n int) executionFunc {
	return func(ctx *Context) error {
		instr, ok := ctx.Program.At(ctx.PC)
		if !ok {
			return errKind(KindPCOutOfBounds, "")
		}
		if len(instr.PushData) > n {
			return errInvalidPush(n, len(instr.PushData))
		}
		word, err := padToWord(instr.PushData)
		if err != nil {
			return err
		}
		return ctx.Stack.Push(new(uint256.Int).SetBytes(word[:]))
	}
}

func makeDup(n int) executionFunc {
	return func(ctx *Context) error {
		ctx.Stack.Dup(n)
		return nil
	}
}

func makeSwap(n int) executionFunc {
	return func(ctx *Context) error {
		ctx.Stack.Swap(n)
		return nil
	}
}

// --- Transient storage (EIP-1153) ---

func opTload(ctx *Context) error {
	loc := ctx.Stack.Peek()
	loc.Set(ctx.TLoad(loc.Bytes32()))
	return nil
}

func opTstore(ctx *Context) error {
	loc, val := ctx.Stack.Pop(), ctx.Stack.Pop()
	ctx.TStore(loc.Bytes32(), val)
	return nil
}

// --- Metadata stubs ---

// gasStubValue is the fixed constant GAS pushes: there is no gas model, so
// every call sees the same "plenty remaining" value.
const gasStubValue = 4_000_000

func opGas(ctx *Context) error {
	return ctx.Stack.Push(uint256.NewInt(gasStubValue))
}

// --- Termination ---

func opStop(ctx *Context) error {
	ctx.ReturnData = nil
	ctx.Halted = true
	return nil
}

func opReturn(ctx *Context) error {
	offset, size := ctx.Stack.Pop(), ctx.Stack.Pop()
	data, err := ctx.Memory.Get(offset.Uint64(), size.Uint64())
	if err != nil {
		return err
	}
	ctx.ReturnData = data
	ctx.Halted = true
	return nil
}

func opRevert(ctx *Context) error {
	offset, size := ctx.Stack.Pop(), ctx.Stack.Pop()
	data, err := ctx.Memory.Get(offset.Uint64(), size.Uint64())
	if err != nil {
		return err
	}
	ctx.ReturnData = data
	ctx.Halted = true
	ctx.Reverted = true
	return nil
}

func opInvalid(ctx *Context) error {
	return errKind(KindInvalidOperation, "")
}

// --- FFI dispatch ---

func truncateBytes(data []byte, n uint64) []byte {
	if uint64(len(data)) > n {
		return data[:n]
	}
	return data
}

// opStaticCall is the one "call" opcode this interpreter implements. It
// does not reach into any state: gas is popped and discarded, and the
// target address is dispatched to a host-registered FFIFunc instead of a
// real account. A reverting handler halts the outer context, not just a
// call frame — a deliberate, documented divergence from mainnet EVM.
func opStaticCall(ctx *Context) error {
	ctx.Stack.Pop() // gas, ignored — no gas model
	addrWord := ctx.Stack.Pop()
	argsOffset, argsSize := ctx.Stack.Pop(), ctx.Stack.Pop()
	retOffset, retSize := ctx.Stack.Pop(), ctx.Stack.Pop()

	addr := common.Address(addrWord.Bytes20())
	handler, ok := ctx.FFIs[addr]
	if !ok {
		return errUnknownFFI(addr)
	}

	args, err := ctx.Memory.Get(argsOffset.Uint64(), argsSize.Uint64())
	if err != nil {
		return err
	}

	res := handler(args)
	ctx.ReturnData = res.Data

	if res.Reverted {
		ctx.Halted = true
		ctx.Reverted = true
		return ctx.Stack.Push(new(uint256.Int))
	}

	out := common.RightPadBytes(truncateBytes(res.Data, retSize.Uint64()), int(retSize.Uint64()))
	if err := ctx.Memory.Set(retOffset.Uint64(), retSize.Uint64(), out); err != nil {
		return err
	}
	return ctx.Stack.Push(uint256.NewInt(1))
}

// --- Impure opcodes: rejected outright ---

// opImpure returns an executor that always fails with IMPURE(op) — used
// for every opcode that would observe or mutate state outside this
// interpreter's sandbox (accounts, storage, logs, blocks, real calls).
func opImpure(op OpCode) executionFunc {
	return func(ctx *Context) error { return errImpure(op) }
}
