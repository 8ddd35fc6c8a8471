package vm

import (
	"fmt"
	"math/big"
)

// ABITypeKind identifies the category of a decoded ABI argument.
// console.log is the only caller of this decoder, and it has no signature
// table to recover the original Solidity type of each argument — every
// word decodes generically as ABIUint256, whose raw bytes print
// identically whether the source type was uint256, address, bool, or
// bytes32.
type ABITypeKind uint8

const (
	ABIUint256 ABITypeKind = iota // uint256 (and everything else, read generically)
)

// ABIType describes one decoded argument's type.
type ABIType struct {
	Kind ABITypeKind
}

// ABIValue holds a single decoded 32-byte ABI word.
type ABIValue struct {
	Type    ABIType
	Uint256 *big.Int
}

// ErrABIShortData is returned when data doesn't hold enough bytes for the
// requested word.
var ErrABIShortData = fmt.Errorf("abi: data too short")

// DecodeFunctionResult decodes data as a flat sequence of 32-byte words,
// one per entry in abiTypes, with no function selector. Every argument
// console.log passes through here is a static word — there is no head/tail
// indirection to resolve, since nothing in this interpreter ever builds an
// abiTypes slice naming a dynamic type.
func DecodeFunctionResult(data []byte, abiTypes []ABIType) ([]ABIValue, error) {
	results := make([]ABIValue, len(abiTypes))
	for i, t := range abiTypes {
		offset := i * 32
		if offset+32 > len(data) {
			return nil, fmt.Errorf("%w: word %d at offset %d, have %d bytes",
				ErrABIShortData, i, offset, len(data))
		}
		results[i] = ABIValue{Type: t, Uint256: new(big.Int).SetBytes(data[offset : offset+32])}
	}
	return results, nil
}
