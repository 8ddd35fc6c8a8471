package vm

import (
	"math/big"

	"github.com/holiman/uint256"
)

// signedBound is 2^255, the magnitude at which a signed word wraps.
var signedBound = new(big.Int).Lsh(big.NewInt(1), 255)

// toWordUnsigned converts an arbitrary-precision non-negative integer into
// a Word, failing with VALUE_OVERFLOW if it is negative or does not fit in
// 256 bits. Used
// at input boundaries (e.g. a caller-supplied CallValue option) rather than
// inside opcode bodies, which operate on *uint256.Int values that are
// already total.
func toWordUnsigned(x *big.Int) (*uint256.Int, error) {
	w, overflow := uint256.FromBig(x)
	if overflow || x.Sign() < 0 {
		return nil, errKind(KindValueOverflow, "")
	}
	return w, nil
}

// toWordSigned encodes an arbitrary-precision signed integer as a Word,
// failing with SIGNED_INTEGER_OUT_OF_BOUNDS if x falls outside
// [-2^255, 2^255).
func toWordSigned(x *big.Int) (*uint256.Int, error) {
	if x.CmpAbs(signedBound) >= 0 && x.Sign() >= 0 {
		return nil, errKind(KindSignedIntegerOutOfBounds, "")
	}
	if x.Sign() < 0 && new(big.Int).Neg(x).Cmp(signedBound) > 0 {
		return nil, errKind(KindSignedIntegerOutOfBounds, "")
	}
	mod := new(big.Int).Lsh(big.NewInt(1), 256)
	wrapped := new(big.Int).Mod(x, mod)
	w, overflow := uint256.FromBig(wrapped)
	if overflow {
		return nil, errKind(KindSignedIntegerOutOfBounds, "")
	}
	return w, nil
}

// padToWord left-pads b with zero bytes to 32 bytes, failing with
// VALUE_OVERFLOW if b is already longer than a word.
func padToWord(b []byte) ([32]byte, error) {
	var out [32]byte
	if len(b) > 32 {
		return out, errKind(KindValueOverflow, "")
	}
	copy(out[32-len(b):], b)
	return out, nil
}
