// Command pureevm runs a single piece of EVM bytecode against calldata
// and prints the result.
package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"strings"

	"github.com/eth2030/pureevm/core/vm"
	"github.com/eth2030/pureevm/log"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := newCustomFlagSet("pureevm")
	var (
		codeHex     = fs.String("code", "", "hex-encoded bytecode (0x-prefixed or not)")
		codeFile    = fs.String("codefile", "", "path to a file containing hex-encoded bytecode")
		calldataHex = fs.String("calldata", "", "hex-encoded calldata")
		valueStr    = fs.String("value", "0", "decimal call value exposed via CALLVALUE")
		verbose     = fs.Bool("verbose", false, "trace one line per executed opcode")
		showVersion = fs.Bool("version", false, "print the version and exit")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Println(version)
		return 0
	}

	logger := log.New(slog.LevelInfo)
	log.SetDefault(logger)

	code, err := loadCode(*codeHex, *codeFile)
	if err != nil {
		logger.Error("load code", "err", err)
		return 1
	}
	calldata, err := decodeHex(*calldataHex)
	if err != nil {
		logger.Error("decode calldata", "err", err)
		return 1
	}
	value, ok := new(big.Int).SetString(*valueStr, 0)
	if !ok {
		logger.Error("parse value", "value", *valueStr)
		return 1
	}

	result, err := vm.ExecCall(code, calldata, vm.Options{
		CallValue: value,
		Verbose:   *verbose,
	})
	if err != nil {
		logger.Error("execution failed", "err", err)
		return 1
	}

	if result.Ok {
		fmt.Printf("ok: %s\n", hex.EncodeToString(result.Data))
		return 0
	}
	fmt.Printf("revert: %s\n", hex.EncodeToString(result.Data))
	return 1
}

func loadCode(codeHex, codeFile string) ([]byte, error) {
	if codeFile != "" {
		raw, err := os.ReadFile(codeFile)
		if err != nil {
			return nil, err
		}
		return decodeHex(strings.TrimSpace(string(raw)))
	}
	return decodeHex(codeHex)
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}
