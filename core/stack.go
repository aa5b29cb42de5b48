package core

import (
	"strconv"
	"strings"
)

// MoveOp is the direction a focus or window move operates in within a
// stack level. Swap always ties to index 0 (the master slot).
type MoveOp int

const (
	MoveUp MoveOp = iota
	MoveDown
	MoveSwap
)

// Node is a tagged variant over a Window leaf or a nested Container. A node
// has no identity beyond its position in its parent's ordered children.
type Node struct {
	Window    Window
	Container *Container
}

func windowNode(w Window) Node  { return Node{Window: w} }
func (n Node) isWindow() bool   { return n.Container == nil }
func (n Node) isContainer() bool { return n.Container != nil }

// Stack is an ordered tree of window leaves and nested containers with a
// focus cursor and an urgent set. Build one with NewStack: the zero value is
// not a valid empty stack, since its focus index is 0 rather than -1.
type Stack struct {
	nodes   []Node
	focus   int // -1 means no focus
	urgent  map[Window]bool
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{focus: -1}
}

// Len implements StackView: the number of top-level nodes.
func (s *Stack) Len() int { return len(s.nodes) }

// HasFocus reports whether any node is focused.
func (s *Stack) HasFocus() bool { return s.focus >= 0 }

// FocusIndex returns the focused index and true, or (-1, false) if empty.
func (s *Stack) FocusIndex() (int, bool) {
	if s.focus < 0 {
		return -1, false
	}
	return s.focus, true
}

// Nodes returns the stack's top-level nodes in layout order. The returned
// slice must not be mutated by the caller.
func (s *Stack) Nodes() []Node { return s.nodes }

// AllWindows returns every window in the transitive closure of the stack,
// in depth-first order.
func (s *Stack) AllWindows() []Window {
	var out []Window
	for _, n := range s.nodes {
		if n.isWindow() {
			out = append(out, n.Window)
		} else {
			out = append(out, n.Container.Stack.AllWindows()...)
		}
	}
	return out
}

// Contains reports whether w appears anywhere in the stack's transitive
// window set.
func (s *Stack) Contains(w Window) bool {
	for _, x := range s.AllWindows() {
		if x == w {
			return true
		}
	}
	return false
}

// FocusedWindow follows the focus chain down to a leaf, returning false if
// the stack (or the focused subtree) is empty.
func (s *Stack) FocusedWindow() (Window, bool) {
	if s.focus < 0 {
		return 0, false
	}
	n := s.nodes[s.focus]
	if n.isWindow() {
		return n.Window, true
	}
	return n.Container.Stack.FocusedWindow()
}

// FocusWindow does a depth-first search for w and, on a hit, sets the focus
// chain down to it. Returns whether w was found.
func (s *Stack) FocusWindow(w Window) bool {
	for i, n := range s.nodes {
		if n.isWindow() {
			if n.Window == w {
				s.focus = i
				return true
			}
			continue
		}
		if n.Container.Stack.FocusWindow(w) {
			s.focus = i
			return true
		}
	}
	return false
}

// AddWindow inserts w after the focused node (or at the end if nothing is
// focused) and focuses it. If the focused node is a container, the insert
// is delegated to that container's stack.
func (s *Stack) AddWindow(w Window) {
	if s.focus >= 0 {
		if c := s.nodes[s.focus].Container; c != nil {
			c.Stack.AddWindow(w)
			return
		}
		idx := s.focus + 1
		s.nodes = insertNode(s.nodes, idx, windowNode(w))
		s.focus = idx
		return
	}
	s.nodes = append(s.nodes, windowNode(w))
	s.focus = len(s.nodes) - 1
}

func insertNode(nodes []Node, idx int, n Node) []Node {
	nodes = append(nodes, Node{})
	copy(nodes[idx+1:], nodes[idx:])
	nodes[idx] = n
	return nodes
}

// AddContainer wraps the focused window into a new Container carrying
// layout. If the focused node is a container, the call is delegated into
// it; otherwise it is a no-op unless the stack has more than one node
// (nesting a lone window is meaningless).
func (s *Stack) AddContainer(layout Layout) {
	if s.focus < 0 {
		return
	}
	n := s.nodes[s.focus]
	if n.isContainer() {
		n.Container.Stack.AddContainer(layout)
		return
	}
	if len(s.nodes) <= 1 {
		return
	}
	c := NewContainer(layout)
	c.Stack.AddWindow(n.Window)
	s.nodes[s.focus] = Node{Container: c}
}

// MoveFocus moves the focus cursor within the focused level: if the
// focused node is a container, the move delegates into it; otherwise
// Up/Down rotate and Swap jumps to index 0. Returns the newly focused
// window, or false if the stack is empty.
func (s *Stack) MoveFocus(op MoveOp) (Window, bool) {
	if s.focus < 0 {
		return 0, false
	}
	if c := s.nodes[s.focus].Container; c != nil {
		return c.Stack.MoveFocus(op)
	}
	s.focus = rotate(s.focus, len(s.nodes), op)
	return s.FocusedWindow()
}

// MoveParentFocus rotates focus at the deepest container whose focused
// child is itself a window (i.e. one level up from the leaf).
func (s *Stack) MoveParentFocus(op MoveOp) (Window, bool) {
	if s.focus < 0 {
		return 0, false
	}
	n := s.nodes[s.focus]
	if n.isWindow() {
		return 0, false
	}
	c := n.Container
	if focusedChildIsWindow(c.Stack) {
		s.focus = rotate(s.focus, len(s.nodes), op)
		return s.FocusedWindow()
	}
	return c.Stack.MoveParentFocus(op)
}

func focusedChildIsWindow(s *Stack) bool {
	if s.focus < 0 {
		return false
	}
	return s.nodes[s.focus].isWindow()
}

func rotate(idx, n int, op MoveOp) int {
	switch op {
	case MoveUp:
		return (idx + n - 1) % n
	case MoveDown:
		return (idx + 1) % n
	default: // MoveSwap
		return 0
	}
}

// MoveWindow swaps the focused node with its neighbor according to op (Swap
// ties to index 0, the master slot). Delegates if the focused node is a
// container.
func (s *Stack) MoveWindow(op MoveOp) {
	if s.focus < 0 {
		return
	}
	if c := s.nodes[s.focus].Container; c != nil {
		c.Stack.MoveWindow(op)
		return
	}
	newIdx := rotate(s.focus, len(s.nodes), op)
	s.nodes[s.focus], s.nodes[newIdx] = s.nodes[newIdx], s.nodes[s.focus]
	s.focus = newIdx
}

// MoveParentWindow moves the focused leaf out of its container into the
// parent level. If the container becomes single-child, it collapses into
// that remaining child. Returns the window that moved, if any.
func (s *Stack) MoveParentWindow(op MoveOp) (Window, bool) {
	if s.focus < 0 {
		return 0, false
	}
	n := s.nodes[s.focus]
	if n.isWindow() {
		return 0, false
	}
	c := n.Container
	if !focusedChildIsWindow(c.Stack) {
		return c.Stack.MoveParentWindow(op)
	}
	if len(c.Stack.nodes) == 1 {
		s.nodes[s.focus] = c.Stack.nodes[0]
		return s.FocusedWindow()
	}

	childIdx := c.Stack.focus
	w := c.Stack.nodes[childIdx].Window
	c.Stack.nodes = append(c.Stack.nodes[:childIdx], c.Stack.nodes[childIdx+1:]...)
	if len(c.Stack.nodes) == 1 {
		s.nodes[s.focus] = c.Stack.nodes[0]
	} else if c.Stack.focus >= len(c.Stack.nodes) {
		c.Stack.focus = len(c.Stack.nodes) - 1
	}

	s.focus = rotate(s.focus, len(s.nodes), op)
	s.nodes = insertNode(s.nodes, s.focus, windowNode(w))
	return w, true
}

// Remove finds a node whose window equals w (depth-first), or a container
// whose recursive removal empties it, and removes that slot. Focus clamps
// to the new valid range. Returns whether anything was removed.
func (s *Stack) Remove(w Window) bool {
	idx := -1
	for i, n := range s.nodes {
		if n.isWindow() {
			if n.Window == w {
				idx = i
				break
			}
			continue
		}
		if n.Container.Stack.Remove(w) {
			if len(n.Container.Stack.nodes) == 0 {
				idx = i
				break
			}
			delete(s.urgent, w)
			return true
		}
	}
	if idx < 0 {
		return false
	}
	s.nodes = append(s.nodes[:idx], s.nodes[idx+1:]...)
	if len(s.nodes) == 0 {
		s.focus = -1
	} else if s.focus > len(s.nodes)-1 {
		s.focus = len(s.nodes) - 1
	}
	if s.urgent != nil {
		delete(s.urgent, w)
	}
	return true
}

// IsUrgent reports whether the stack, at any depth, carries an urgent
// window.
func (s *Stack) IsUrgent() bool {
	if len(s.urgent) > 0 {
		return true
	}
	for _, n := range s.nodes {
		if n.isContainer() && n.Container.Stack.IsUrgent() {
			return true
		}
	}
	return false
}

// AddUrgent marks w urgent. No-op if w isn't present in the stack.
func (s *Stack) AddUrgent(w Window) {
	if !s.Contains(w) {
		return
	}
	if s.urgent == nil {
		s.urgent = make(map[Window]bool)
	}
	s.urgent[w] = true
}

// RemoveUrgent clears urgency for w at every depth.
func (s *Stack) RemoveUrgent(w Window) bool {
	found := false
	if s.urgent != nil {
		if s.urgent[w] {
			delete(s.urgent, w)
			found = true
		}
	}
	for _, n := range s.nodes {
		if n.isContainer() && n.Container.Stack.RemoveUrgent(w) {
			found = true
		}
	}
	return found
}

// Serialize flattens the stack into "w1,w2,...:focus". Nested containers are
// lossy: their windows are flattened into the parent's list, a documented
// tradeoff matching the original source.
func (s *Stack) Serialize() string {
	windows := s.AllWindows()
	parts := make([]string, len(windows))
	for i, w := range windows {
		parts[i] = strconv.FormatUint(uint64(w), 10)
	}
	focus := 0
	if s.focus >= 0 {
		focus = s.focus
	}
	return strings.Join(parts, ",") + ":" + strconv.Itoa(focus)
}

// DeserializeStack parses the format written by Serialize, dropping any
// window not present in known (stale IDs from a prior run), and clamping
// focus into the resulting range.
func DeserializeStack(data string, known map[Window]bool) *Stack {
	s := NewStack()
	windowPart, focusPart, _ := strings.Cut(data, ":")
	if windowPart != "" {
		for _, tok := range strings.Split(windowPart, ",") {
			id, err := strconv.ParseUint(tok, 10, 32)
			if err != nil {
				continue
			}
			w := Window(id)
			if known != nil && !known[w] {
				continue
			}
			s.nodes = append(s.nodes, windowNode(w))
		}
	}
	if len(s.nodes) == 0 {
		s.focus = -1
		return s
	}
	idx, err := strconv.Atoi(focusPart)
	if err != nil || idx < 0 {
		idx = 0
	}
	if idx > len(s.nodes)-1 {
		idx = len(s.nodes) - 1
	}
	s.focus = idx
	return s
}
