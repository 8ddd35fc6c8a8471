package vm

import "github.com/holiman/uint256"

// MaxMemory caps the interpreter's byte-addressable memory. This is a
// safety quota, not an EVM gas-derived limit: there is no gas model here, so
// without a cap a crafted MSTORE at a huge offset would try to allocate an
// unbounded slice.
const MaxMemory = 10_000_000

// Memory is byte-addressable and grow-only, up to MaxMemory.
type Memory struct {
	store []byte
}

// NewMemory returns a new empty Memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Resize grows memory to exactly size bytes — no word rounding. MSIZE
// reports this length directly, so a single MSTORE8 must grow memory by
// one byte, not thirty-two. Returns OUT_OF_MEMORY if size exceeds MaxMemory.
func (m *Memory) Resize(size uint64) error {
	if size <= uint64(len(m.store)) {
		return nil
	}
	if size > MaxMemory {
		return errKind(KindOutOfMemory, "")
	}
	grown := make([]byte, size)
	copy(grown, m.store)
	m.store = grown
	return nil
}

// Set copies value into memory at [offset, offset+size), growing memory as
// needed.
func (m *Memory) Set(offset, size uint64, value []byte) error {
	if size == 0 {
		return nil
	}
	if err := m.Resize(offset + size); err != nil {
		return err
	}
	copy(m.store[offset:offset+size], value)
	return nil
}

// Set32 writes a 256-bit word at the given offset, big-endian.
func (m *Memory) Set32(offset uint64, val *uint256.Int) error {
	if err := m.Resize(offset + 32); err != nil {
		return err
	}
	b := val.Bytes32()
	copy(m.store[offset:offset+32], b[:])
	return nil
}

// Get returns a copy of memory contents at [offset, offset+size), growing
// memory as needed (reads past the end of code/calldata return zeros, and
// reading memory is itself part of what grows it per the EVM model).
func (m *Memory) Get(offset, size uint64) ([]byte, error) {
	if size == 0 {
		// A zero-length read still expands memory to offset: the EVM
		// model treats the read itself, not just its length, as touching
		// that address.
		if err := m.Resize(offset); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err := m.Resize(offset + size); err != nil {
		return nil, err
	}
	out := make([]byte, size)
	copy(out, m.store[offset:offset+size])
	return out, nil
}

// Len returns the current length of memory in bytes.
func (m *Memory) Len() int {
	return len(m.store)
}

// Data returns the full backing slice.
func (m *Memory) Data() []byte {
	return m.store
}
