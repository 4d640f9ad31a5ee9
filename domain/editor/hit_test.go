package editor

import "testing"

func TestHitTest_Zones(t *testing.T) {
	rect := DisplayRect{X: 100, Y: 100, W: 200, H: 100}
	const grip = 10

	cases := []struct {
		name string
		p    Point
		want Hit
	}{
		{"northwest corner", Point{100, 100}, Hit{HitHandle, HandleN | HandleW}},
		{"southeast corner", Point{300, 200}, Hit{HitHandle, HandleS | HandleE}},
		{"north edge midpoint", Point{200, 100}, Hit{HitHandle, HandleN}},
		{"west edge midpoint", Point{100, 150}, Hit{HitHandle, HandleW}},
		{"just inside grip", Point{304, 204}, Hit{HitHandle, HandleS | HandleE}},
		{"body center", Point{200, 150}, Hit{Zone: HitBody}},
		{"outside left", Point{80, 150}, Hit{Zone: HitOutside}},
		{"outside below grip reach", Point{311, 211}, Hit{Zone: HitOutside}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HitTest(tc.p, rect, grip)
			if got != tc.want {
				t.Fatalf("HitTest(%+v) = %+v, want %+v", tc.p, got, tc.want)
			}
		})
	}
}

func TestHitTest_CornersWinOverEdges(t *testing.T) {
	// A tiny rect collapses corner and edge grips onto each other; corners
	// are listed first and must win so diagonal resizing stays reachable.
	rect := DisplayRect{X: 0, Y: 0, W: 8, H: 8}
	got := HitTest(Point{0, 0}, rect, 12)
	if got.Zone != HitHandle || got.Handle != HandleN|HandleW {
		t.Fatalf("expected nw corner, got %+v", got)
	}
}

func TestHandleAnchors_AllGripsPresent(t *testing.T) {
	rect := DisplayRect{X: 10, Y: 10, W: 100, H: 60}
	anchors := HandleAnchors(rect)
	if len(anchors) != 8 {
		t.Fatalf("expected 8 grips, got %d", len(anchors))
	}
	if p := anchors[HandleS|HandleE]; p.X != 110 || p.Y != 70 {
		t.Fatalf("southeast anchor misplaced: %+v", p)
	}
	if p := anchors[HandleE]; p.X != 110 || p.Y != 40 {
		t.Fatalf("east anchor misplaced: %+v", p)
	}
}
