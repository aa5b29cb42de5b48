package core

import "fmt"

// LayoutMsg is the closed set of messages a Layout may receive via SendMsg.
// Unknown/custom messages outside this set are carried by Custom and must be
// ignored by layouts that don't recognize the payload.
type LayoutMsg struct {
	kind   layoutMsgKind
	custom string
}

type layoutMsgKind int

const (
	MsgIncrease layoutMsgKind = iota
	MsgDecrease
	MsgIncreaseMaster
	MsgDecreaseMaster
	MsgSplitHorizontal
	MsgSplitVertical
	MsgCustom
)

func (k layoutMsgKind) Msg() LayoutMsg { return LayoutMsg{kind: k} }

// CustomMsg builds a Custom(name) layout message.
func CustomMsg(name string) LayoutMsg { return LayoutMsg{kind: MsgCustom, custom: name} }

var (
	Increase        = MsgIncrease.Msg()
	Decrease        = MsgDecrease.Msg()
	IncreaseMaster  = MsgIncreaseMaster.Msg()
	DecreaseMaster  = MsgDecreaseMaster.Msg()
	SplitHorizontal = MsgSplitHorizontal.Msg()
	SplitVertical   = MsgSplitVertical.Msg()
)

// StackView is the read-only surface of a Stack that a Layout is allowed to
// see. Layouts never mutate the stack they arrange.
type StackView interface {
	Len() int
}

// Layout maps an area and a view of a stack's top-level nodes onto a
// per-node rectangle. Implementations must be pure with respect to the
// stack (no hidden state beyond what SendMsg changes) and deterministic.
type Layout interface {
	Name() string
	SendMsg(msg LayoutMsg)
	Apply(area Rect, view StackView) []Rect
	Clone() Layout
}

// Tall is the classic master/stack layout: num_masters windows occupy a
// left column (or, when there are no more windows than masters, the full
// width split horizontally), the remainder stack vertically on the right.
type Tall struct {
	NumMasters     int
	Ratio          float64
	RatioIncrement float64
}

// NewTall constructs a Tall layout, forcing parameters into their documented
// domains: a numMasters below 1 becomes 1, and a ratio outside (0,1) becomes
// 0.5.
func NewTall(numMasters int, ratio, ratioIncrement float64) *Tall {
	if numMasters < 1 {
		numMasters = 1
	}
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.5
	}
	return &Tall{NumMasters: numMasters, Ratio: ratio, RatioIncrement: ratioIncrement}
}

func (t *Tall) Name() string { return "Tall" }

func (t *Tall) SendMsg(msg LayoutMsg) {
	switch msg.kind {
	case MsgIncrease:
		if t.Ratio+t.RatioIncrement < 1 {
			t.Ratio += t.RatioIncrement
		}
	case MsgDecrease:
		if t.Ratio-t.RatioIncrement > 0 {
			t.Ratio -= t.RatioIncrement
		}
	case MsgIncreaseMaster:
		t.NumMasters++
	case MsgDecreaseMaster:
		if t.NumMasters > 1 {
			t.NumMasters--
		}
	}
}

func (t *Tall) Apply(area Rect, view StackView) []Rect {
	n := view.Len()
	if n == 0 {
		return nil
	}
	m := t.NumMasters
	if m > n {
		m = n
	}

	rects := make([]Rect, n)

	if n <= t.NumMasters {
		height := area.Height / m
		for i := 0; i < n; i++ {
			rects[i] = Rect{X: area.X, Y: area.Y + i*height, Width: area.Width, Height: height}
		}
		return rects
	}

	masterWidth := int(float64(area.Width) * t.Ratio)
	stackWidth := area.Width - masterWidth
	masterHeight := area.Height / m
	stackHeight := area.Height / (n - m)

	for i := 0; i < m; i++ {
		rects[i] = Rect{X: area.X, Y: area.Y + i*masterHeight, Width: masterWidth, Height: masterHeight}
	}
	for i := m; i < n; i++ {
		rects[i] = Rect{
			X:      area.X + masterWidth,
			Y:      area.Y + (i-m)*stackHeight,
			Width:  stackWidth,
			Height: stackHeight,
		}
	}
	return rects
}

func (t *Tall) Clone() Layout {
	c := *t
	return &c
}

// StrutProvider is the narrow capability a Strut decorator needs from the
// transport: the reserved dock edges intersecting an area.
type StrutProvider interface {
	GetStrut(area Rect) (left, right, top, bottom int)
}

// Strut subtracts reserved dock space from the area before delegating.
type Strut struct {
	Inner     Layout
	Transport StrutProvider
}

func NewStrut(inner Layout, transport StrutProvider) *Strut {
	return &Strut{Inner: inner, Transport: transport}
}

func (s *Strut) Name() string            { return s.Inner.Name() }
func (s *Strut) SendMsg(msg LayoutMsg)   { s.Inner.SendMsg(msg) }
func (s *Strut) Clone() Layout           { return &Strut{Inner: s.Inner.Clone(), Transport: s.Transport} }
func (s *Strut) Apply(area Rect, view StackView) []Rect {
	l, r, t, b := s.Transport.GetStrut(area)
	return s.Inner.Apply(area.ShrunkByStrut(l, r, t, b), view)
}

// Gap insets every rect the inner layout produces by a fixed margin.
type Gap struct {
	Inner Layout
	Size  int
}

func NewGap(size int, inner Layout) *Gap { return &Gap{Inner: inner, Size: size} }

func (g *Gap) Name() string          { return g.Inner.Name() }
func (g *Gap) SendMsg(msg LayoutMsg) { g.Inner.SendMsg(msg) }
func (g *Gap) Clone() Layout         { return &Gap{Inner: g.Inner.Clone(), Size: g.Size} }
func (g *Gap) Apply(area Rect, view StackView) []Rect {
	rects := g.Inner.Apply(area, view)
	out := make([]Rect, len(rects))
	for i, r := range rects {
		out[i] = r.Inset(g.Size)
	}
	return out
}

// Mirror reflects every rect the inner layout produces horizontally with
// Rect.MirrorX against the outer area. Applying Mirror twice is the identity
// (up to the inner layout being deterministic).
type Mirror struct {
	Inner Layout
}

func NewMirror(inner Layout) *Mirror { return &Mirror{Inner: inner} }

func (m *Mirror) Name() string          { return fmt.Sprintf("Mirror(%s)", m.Inner.Name()) }
func (m *Mirror) SendMsg(msg LayoutMsg) { m.Inner.SendMsg(msg) }
func (m *Mirror) Clone() Layout         { return &Mirror{Inner: m.Inner.Clone()} }
func (m *Mirror) Apply(area Rect, view StackView) []Rect {
	rects := m.Inner.Apply(area, view)
	out := make([]Rect, len(rects))
	for i, r := range rects {
		out[i] = r.MirrorX(area)
	}
	return out
}
