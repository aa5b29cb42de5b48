package core

import "fmt"

// Container pairs a Stack with the Layout that arranges it. Containers own
// their stack and layout outright; they never share state with siblings.
type Container struct {
	Stack  *Stack
	Layout Layout
}

// NewContainer builds an empty container carrying layout.
func NewContainer(layout Layout) *Container {
	return &Container{Stack: NewStack(), Layout: layout}
}

// RectWindow pairs a rectangle with the leaf window it was allotted.
type RectWindow struct {
	Rect   Rect
	Window Window
}

// ApplyLayout asks the container's Layout for per-top-level-node rects,
// then flattens the result: a window leaf yields one RectWindow, a nested
// container recurses into its own rect. The result length equals the
// transitive window count of the container's stack.
func (c *Container) ApplyLayout(area Rect) []RectWindow {
	rects := c.Layout.Apply(area, c.Stack)
	var out []RectWindow
	for i, n := range c.Stack.Nodes() {
		if i >= len(rects) {
			break
		}
		if n.isWindow() {
			out = append(out, RectWindow{Rect: rects[i], Window: n.Window})
		} else {
			out = append(out, n.Container.ApplyLayout(rects[i])...)
		}
	}
	return out
}

// SendLayoutMsg delivers msg to the innermost container along the current
// focus chain, or to this container's own layout if the focused node is a
// window (or nothing is focused).
func (c *Container) SendLayoutMsg(msg LayoutMsg) {
	if idx, ok := c.Stack.FocusIndex(); ok {
		n := c.Stack.nodes[idx]
		if n.isContainer() {
			n.Container.SendLayoutMsg(msg)
			return
		}
	}
	c.Layout.SendMsg(msg)
}

func (c *Container) String() string {
	return fmt.Sprintf("Container[%d nodes]", c.Stack.Len())
}
