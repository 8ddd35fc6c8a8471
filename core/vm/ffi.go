package vm

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common"

	"github.com/eth2030/pureevm/log"
)

// ConsoleLogAddress is the one reserved FFI address this interpreter
// ships with: the ASCII string "console.log" left-padded with zeros to 20
// bytes, matching the address Hardhat's console.sol targets.
var ConsoleLogAddress = common.HexToAddress("0x000000000000000000636F6E736F6C652E6C6F67")

// buildFFITable merges caller-supplied handlers over the built-in set.
// Caller entries win on address collision.
func buildFFITable(caller map[common.Address]FFIFunc) map[common.Address]FFIFunc {
	table := map[common.Address]FFIFunc{
		ConsoleLogAddress: consoleLogFFI,
	}
	for addr, fn := range caller {
		table[addr] = fn
	}
	return table
}

// consoleLogFFI is the built-in handler at ConsoleLogAddress. Console.log
// overloads all encode their scalar arguments as 32-byte ABI words after
// the 4-byte selector; without the full Hardhat signature table to pick
// the exact argument types, every word is decoded generically as
// ABIUint256 (its bytes print identically whether the original Solidity
// type was uint256, address, bool, or bytes32). It always succeeds with
// an empty return — console.log has no return value in Solidity either.
func consoleLogFFI(args []byte) FFIResult {
	logger := log.Default().Module("vm.console")
	if len(args) < 4 {
		logger.Info("console.log", "raw", hex.EncodeToString(args))
		return FFIResult{Data: nil}
	}
	selector := args[:4]
	body := args[4:]

	argTypes := make([]ABIType, len(body)/32)
	for i := range argTypes {
		argTypes[i] = ABIType{Kind: ABIUint256}
	}
	decoded, err := DecodeFunctionResult(body, argTypes)
	if err != nil {
		logger.Info("console.log", "selector", hex.EncodeToString(selector), "decode_error", err.Error())
		return FFIResult{Data: nil}
	}

	words := make([]string, len(decoded))
	for i, v := range decoded {
		words[i] = v.Uint256.String()
	}
	logger.Info("console.log", "selector", hex.EncodeToString(selector), "args", words)
	return FFIResult{Data: nil}
}
