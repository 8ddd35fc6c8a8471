package vm

import (
	"bytes"
	"testing"

	"github.com/holiman/uint256"
)

func TestMemoryResize(t *testing.T) {
	mem := NewMemory()
	if mem.Len() != 0 {
		t.Fatalf("initial Len() = %d, want 0", mem.Len())
	}

	if err := mem.Resize(64); err != nil {
		t.Fatalf("Resize(64) error: %v", err)
	}
	if mem.Len() != 64 {
		t.Fatalf("after Resize(64), Len() = %d, want 64", mem.Len())
	}

	// Resize to a smaller size should never shrink.
	if err := mem.Resize(32); err != nil {
		t.Fatalf("Resize(32) error: %v", err)
	}
	if mem.Len() != 64 {
		t.Fatalf("after Resize(32), Len() = %d, want 64", mem.Len())
	}
}

func TestMemoryResizeIsByteExact(t *testing.T) {
	mem := NewMemory()
	if err := mem.Resize(1); err != nil {
		t.Fatalf("Resize(1) error: %v", err)
	}
	if mem.Len() != 1 {
		t.Errorf("Resize(1) Len() = %d, want 1 (no word rounding)", mem.Len())
	}
}

func TestMemoryResizeExceedsMax(t *testing.T) {
	mem := NewMemory()
	err := mem.Resize(MaxMemory + 1)
	if !IsKind(err, KindOutOfMemory) {
		t.Errorf("expected OUT_OF_MEMORY, got %v", err)
	}
}

func TestMemorySetGet(t *testing.T) {
	mem := NewMemory()
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	if err := mem.Set(10, uint64(len(data)), data); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, err := mem.Get(10, uint64(len(data)))
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Get() = %x, want %x", got, data)
	}
}

func TestMemorySet32(t *testing.T) {
	mem := NewMemory()
	if err := mem.Set32(0, uint256.NewInt(0xff)); err != nil {
		t.Fatalf("Set32 error: %v", err)
	}

	got, err := mem.Get(0, 32)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	expected := make([]byte, 32)
	expected[31] = 0xff
	if !bytes.Equal(got, expected) {
		t.Errorf("Set32 result = %x, want %x", got, expected)
	}
}

func TestMemoryGetZeroSizeExpandsToOffset(t *testing.T) {
	mem := NewMemory()
	got, err := mem.Get(40, 0)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != nil {
		t.Errorf("Get(40, 0) = %v, want nil", got)
	}
	if mem.Len() != 40 {
		t.Errorf("a zero-size read at offset 40 should still expand memory: Len() = %d, want 40", mem.Len())
	}
}

func TestMemoryGetZeroExtendsPastEnd(t *testing.T) {
	mem := NewMemory()
	if err := mem.Set(0, 2, []byte{0x01, 0x02}); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, err := mem.Get(0, 32)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	want := make([]byte, 32)
	want[0], want[1] = 0x01, 0x02
	if !bytes.Equal(got, want) {
		t.Errorf("Get() = %x, want %x", got, want)
	}
}

func TestMemoryData(t *testing.T) {
	mem := NewMemory()
	if err := mem.Resize(32); err != nil {
		t.Fatalf("Resize error: %v", err)
	}
	if len(mem.Data()) != 32 {
		t.Errorf("Data() len = %d, want 32", len(mem.Data()))
	}
}
