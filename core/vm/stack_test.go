package vm

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestStackPushPop(t *testing.T) {
	st := NewStack()
	st.Push(uint256.NewInt(42))
	st.Push(uint256.NewInt(99))

	if st.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", st.Len())
	}

	val := st.Pop()
	if val.Uint64() != 99 {
		t.Errorf("Pop() = %d, want 99", val.Uint64())
	}

	val = st.Pop()
	if val.Uint64() != 42 {
		t.Errorf("Pop() = %d, want 42", val.Uint64())
	}

	if st.Len() != 0 {
		t.Errorf("Len() = %d, want 0", st.Len())
	}
}

func TestStackPeek(t *testing.T) {
	st := NewStack()
	st.Push(uint256.NewInt(10))
	st.Push(uint256.NewInt(20))
	st.Push(uint256.NewInt(30))

	if st.Peek().Uint64() != 30 {
		t.Errorf("Peek() = %d, want 30", st.Peek().Uint64())
	}
}

func TestStackBack(t *testing.T) {
	st := NewStack()
	st.Push(uint256.NewInt(1))
	st.Push(uint256.NewInt(2))
	st.Push(uint256.NewInt(3))

	if st.Back(0).Uint64() != 3 {
		t.Errorf("Back(0) = %d, want 3", st.Back(0).Uint64())
	}
	if st.Back(2).Uint64() != 1 {
		t.Errorf("Back(2) = %d, want 1", st.Back(2).Uint64())
	}
}

func TestStackDup(t *testing.T) {
	st := NewStack()
	st.Push(uint256.NewInt(10))
	st.Push(uint256.NewInt(20))
	st.Push(uint256.NewInt(30))

	st.Dup(2) // duplicate the 2nd from top (20)
	if st.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", st.Len())
	}
	if st.Peek().Uint64() != 20 {
		t.Errorf("after Dup(2), top = %d, want 20", st.Peek().Uint64())
	}

	// The duplicate must be an independent copy.
	st.Peek().SetUint64(999)
	if st.Back(2).Uint64() != 20 {
		t.Errorf("Dup should create independent copy")
	}
}

func TestStackSwap(t *testing.T) {
	st := NewStack()
	st.Push(uint256.NewInt(1))
	st.Push(uint256.NewInt(2))
	st.Push(uint256.NewInt(3))

	st.Swap(2) // swap top (3) with 2nd below (1)
	if st.Peek().Uint64() != 1 {
		t.Errorf("after Swap(2), top = %d, want 1", st.Peek().Uint64())
	}
	if st.Back(2).Uint64() != 3 {
		t.Errorf("after Swap(2), bottom = %d, want 3", st.Back(2).Uint64())
	}
}

func TestStackOverflow(t *testing.T) {
	st := NewStack()
	for i := 0; i < stackLimit; i++ {
		if err := st.Push(uint256.NewInt(uint64(i))); err != nil {
			t.Fatalf("Push(%d) failed: %v", i, err)
		}
	}
	err := st.Push(uint256.NewInt(9999))
	if !IsKind(err, KindStackOverflow) {
		t.Errorf("expected STACK_OVERFLOW, got %v", err)
	}
}

func TestStackData(t *testing.T) {
	st := NewStack()
	st.Push(uint256.NewInt(1))
	st.Push(uint256.NewInt(2))

	data := st.Data()
	if len(data) != 2 {
		t.Fatalf("Data() len = %d, want 2", len(data))
	}
	if data[0].Uint64() != 1 || data[1].Uint64() != 2 {
		t.Errorf("Data() = %v, want [1 2] bottom-to-top", data)
	}
}
