package vm

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Kind identifies the category of a fatal execution error. Fatal errors
// unwind the run loop immediately and discard any partial return data;
// REVERT is handled separately and is not a Kind.
type Kind string

const (
	KindPCOutOfBounds            Kind = "PC_OUT_OF_BOUNDS"
	KindStackUnderflow           Kind = "STACK_UNDERFLOW"
	KindStackOverflow            Kind = "STACK_OVERFLOW"
	KindValueOverflow            Kind = "VALUE_OVERFLOW"
	KindSignedIntegerOutOfBounds Kind = "SIGNED_INTEGER_OUT_OF_BOUNDS"
	KindOutOfMemory              Kind = "OUT_OF_MEMORY"
	KindInvalidJumpDest          Kind = "INVALID_JUMP_DEST"
	KindInvalidOperation         Kind = "INVALID_OPERATION"
	KindInvalidPush              Kind = "INVALID_PUSH"
	KindUnknownFFI               Kind = "UNKNOWN_FFI"
	KindImpure                   Kind = "IMPURE"
	KindNotImplemented           Kind = "NOT_IMPLEMENTED"
)

// Error is the error type returned for every fatal condition the
// interpreter can hit. Op is populated only for IMPURE and NOT_IMPLEMENTED,
// Addr only for UNKNOWN_FFI, and PushN/PushLen only for INVALID_PUSH.
type Error struct {
	Kind    Kind
	Op      OpCode
	Addr    common.Address
	PushLen int
	PushN   int
	Detail  string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindImpure, KindNotImplemented:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Op)
	case KindInvalidPush:
		return fmt.Sprintf("%s(n=%d, available=%d)", e.Kind, e.PushN, e.PushLen)
	case KindUnknownFFI:
		return fmt.Sprintf("%s(%x)", e.Kind, e.Addr)
	default:
		if e.Detail != "" {
			return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
		}
		return string(e.Kind)
	}
}

func errKind(k Kind, detail string) error { return &Error{Kind: k, Detail: detail} }

func errImpure(op OpCode) error { return &Error{Kind: KindImpure, Op: op} }

func errNotImplemented(op OpCode) error { return &Error{Kind: KindNotImplemented, Op: op} }

func errInvalidPush(n, available int) error {
	return &Error{Kind: KindInvalidPush, PushN: n, PushLen: available}
}

func errUnknownFFI(addr common.Address) error { return &Error{Kind: KindUnknownFFI, Addr: addr} }

// IsKind reports whether err is an *Error of the given Kind.
func IsKind(err error, k Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == k
}
