package dicelang

// operatorStack holds the operators waiting for their next operand in a
// flat roll. It is a linked list; pushes and pops never copy.
type operatorStack struct {
	top  *operatorElement
	size int
}

type operatorElement struct {
	op   Operator
	next *operatorElement
}

func (s *operatorStack) Push(op Operator) {
	s.top = &operatorElement{op, s.top}
	s.size++
}

// Pop removes the top operator. ok is false when the stack is empty.
func (s *operatorStack) Pop() (op Operator, ok bool) {
	if s.size == 0 {
		return 0, false
	}
	op, s.top = s.top.op, s.top.next
	s.size--
	return op, true
}

// Reset leaves op as the only pending operator.
func (s *operatorStack) Reset(op Operator) {
	s.top = &operatorElement{op: op}
	s.size = 1
}
