package vm

import "github.com/holiman/uint256"

// stackLimit is the maximum number of 256-bit words the operand stack may
// hold at once.
const stackLimit = 1024

// Stack is the EVM operand stack: a LIFO of 256-bit words, capped at
// stackLimit entries.
type Stack struct {
	data []*uint256.Int
}

// NewStack returns a new empty stack.
func NewStack() *Stack {
	return &Stack{data: make([]*uint256.Int, 0, 16)}
}

// Push pushes a value onto the stack. Returns a STACK_OVERFLOW error if the
// stack is already at stackLimit.
func (st *Stack) Push(val *uint256.Int) error {
	if len(st.data) >= stackLimit {
		return errKind(KindStackOverflow, "")
	}
	st.data = append(st.data, val)
	return nil
}

// Pop removes and returns the top element. Callers must have checked Len()
// first; Pop on an empty stack panics, matching the teacher's convention of
// letting the jump table's minStack check guard every call site.
func (st *Stack) Pop() *uint256.Int {
	n := len(st.data) - 1
	ret := st.data[n]
	st.data = st.data[:n]
	return ret
}

// Peek returns the top element without removing it.
func (st *Stack) Peek() *uint256.Int {
	return st.data[len(st.data)-1]
}

// Back returns the nth element from the top (0-indexed: 0 = top).
func (st *Stack) Back(n int) *uint256.Int {
	return st.data[len(st.data)-1-n]
}

// Swap swaps the top element with the nth element from the top.
func (st *Stack) Swap(n int) {
	top := len(st.data) - 1
	st.data[top], st.data[top-n] = st.data[top-n], st.data[top]
}

// Dup duplicates the nth element from the top (1-indexed: 1 = top) and
// pushes the copy.
func (st *Stack) Dup(n int) {
	val := new(uint256.Int).Set(st.data[len(st.data)-n])
	st.data = append(st.data, val)
}

// Len returns the number of items on the stack.
func (st *Stack) Len() int {
	return len(st.data)
}

// Data returns the underlying stack slice (bottom to top).
func (st *Stack) Data() []*uint256.Int {
	return st.data
}
