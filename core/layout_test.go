package core

import (
	"reflect"
	"testing"
)

type fixedView int

func (v fixedView) Len() int { return int(v) }

func TestTallThreeWindowsOneMaster(t *testing.T) {
	tall := NewTall(1, 0.5, 0.05)
	area := Rect{X: 0, Y: 0, Width: 1200, Height: 800}

	got := tall.Apply(area, fixedView(3))
	want := []Rect{
		{X: 0, Y: 0, Width: 600, Height: 800},
		{X: 600, Y: 0, Width: 600, Height: 400},
		{X: 600, Y: 400, Width: 600, Height: 400},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tall.Apply() = %v, want %v", got, want)
	}
}

func TestTallFewerWindowsThanMastersFillsWidth(t *testing.T) {
	tall := NewTall(2, 0.5, 0.05)
	area := Rect{Width: 1000, Height: 600}

	got := tall.Apply(area, fixedView(1))
	want := []Rect{{X: 0, Y: 0, Width: 1000, Height: 600}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tall.Apply() = %v, want %v", got, want)
	}
}

func TestTallSendMsgClampsMasterCount(t *testing.T) {
	tall := NewTall(1, 0.5, 0.05)
	tall.SendMsg(MsgDecreaseMaster.Msg())
	if tall.NumMasters != 1 {
		t.Fatalf("NumMasters = %d, want 1 (clamped)", tall.NumMasters)
	}
	tall.SendMsg(MsgIncreaseMaster.Msg())
	if tall.NumMasters != 2 {
		t.Fatalf("NumMasters = %d, want 2", tall.NumMasters)
	}
}

func TestTallSendMsgClampsRatio(t *testing.T) {
	tall := NewTall(1, 0.95, 0.1)
	tall.SendMsg(Increase)
	if tall.Ratio != 0.95 {
		t.Fatalf("Ratio = %v, want unchanged 0.95 (would exceed 1)", tall.Ratio)
	}
	tall.SendMsg(Decrease)
	if got := tall.Ratio; got <= 0.8 || got >= 0.9 {
		t.Fatalf("Ratio = %v, want ~0.85", got)
	}
}

func TestMirrorInvolution(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 1200, Height: 800}
	view := fixedView(3)

	base := NewTall(1, 0.5, 0.05)
	mirrored := NewMirror(NewMirror(base.Clone()))

	got := mirrored.Apply(area, view)
	want := base.Apply(area, view)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("double Mirror = %v, want %v (unmirrored)", got, want)
	}
}

func TestGapInsetsEveryRect(t *testing.T) {
	area := Rect{Width: 1000, Height: 600}
	gap := NewGap(10, NewTall(2, 0.5, 0.05))

	rects := gap.Apply(area, fixedView(2))
	for _, r := range rects {
		if !r.Contains(area) {
			t.Fatalf("gapped rect %v not contained in %v", r, area)
		}
	}
	want := []Rect{
		{X: 10, Y: 10, Width: 980, Height: 280},
		{X: 10, Y: 310, Width: 980, Height: 280},
	}
	if !reflect.DeepEqual(rects, want) {
		t.Fatalf("Gap.Apply() = %v, want %v", rects, want)
	}
}

type constStrut struct{ l, r, top, b int }

func (c constStrut) GetStrut(Rect) (int, int, int, int) { return c.l, c.r, c.top, c.b }

func TestStrutShrinksArea(t *testing.T) {
	strut := NewStrut(NewTall(1, 0.5, 0.05), constStrut{top: 20})
	area := Rect{Width: 1000, Height: 600}

	rects := strut.Apply(area, fixedView(1))
	want := Rect{X: 0, Y: 20, Width: 1000, Height: 580}
	if !reflect.DeepEqual(rects[0], want) {
		t.Fatalf("Strut.Apply()[0] = %v, want %v", rects[0], want)
	}
}
