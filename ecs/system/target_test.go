package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/flickyfrog/ecs"
	"github.com/milk9111/flickyfrog/ecs/component"
)

func boxCandidate(e ecs.Entity, x, y, w, h float64) PillarCandidate {
	body := cp.NewStaticBody()
	body.SetPosition(cp.Vector{X: x, Y: y})
	return PillarCandidate{Entity: e, Position: cp.Vector{X: x, Y: y}, Shape: cp.NewBox(body, w, h, 0)}
}

func TestRectHalfExtents(t *testing.T) {
	body := cp.NewStaticBody()

	hx, hy, ok := RectHalfExtents(cp.NewBox(body, 1, 6, 0))
	if !ok || hx != 0.5 || hy != 3 {
		t.Fatalf("box: expected (0.5, 3, true), got (%v, %v, %v)", hx, hy, ok)
	}

	if _, _, ok := RectHalfExtents(cp.NewCircle(body, 2, cp.Vector{})); ok {
		t.Fatalf("circle should not introspect as a rectangle")
	}

	tri := cp.NewPolyShapeRaw(body, 3, []cp.Vector{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 0, Y: 1}}, 0)
	if _, _, ok := RectHalfExtents(tri); ok {
		t.Fatalf("triangle should not introspect as a rectangle")
	}

	if _, _, ok := RectHalfExtents(nil); ok {
		t.Fatalf("nil shape should not introspect as a rectangle")
	}
}

func TestSelectTarget(t *testing.T) {
	body := cp.NewStaticBody()
	circle := PillarCandidate{Entity: 9, Position: cp.Vector{X: -1, Y: 1}, Shape: cp.NewCircle(body, 1, cp.Vector{})}

	tests := []struct {
		name       string
		origin     cp.Vector
		side       component.Side
		candidates []PillarCandidate
		want       ecs.Entity
		wantAnchor cp.Vector
		found      bool
	}{
		{
			name:       "left picks pillar left of character",
			side:       component.SideLeft,
			candidates: []PillarCandidate{boxCandidate(1, -5, 10, 1, 4), boxCandidate(2, 3, 10, 1, 4)},
			want:       1,
			wantAnchor: cp.Vector{X: -5, Y: 8},
			found:      true,
		},
		{
			name:       "right picks pillar right of character",
			side:       component.SideRight,
			candidates: []PillarCandidate{boxCandidate(1, -5, 10, 1, 4), boxCandidate(2, 3, 10, 1, 4)},
			want:       2,
			wantAnchor: cp.Vector{X: 3, Y: 8},
			found:      true,
		},
		{
			name:       "closest anchor wins",
			origin:     cp.Vector{X: 10},
			side:       component.SideRight,
			candidates: []PillarCandidate{boxCandidate(1, 30, 10, 1, 4), boxCandidate(2, 12, 12, 1, 2), boxCandidate(3, 14, 12, 1, 20)},
			want:       3,
			wantAnchor: cp.Vector{X: 14, Y: 2},
			found:      true,
		},
		{
			name:       "pillar straight above qualifies on either side",
			side:       component.SideLeft,
			candidates: []PillarCandidate{boxCandidate(4, 0, 10, 1, 4)},
			want:       4,
			wantAnchor: cp.Vector{Y: 8},
			found:      true,
		},
		{
			name:       "non-rectangle is skipped",
			side:       component.SideLeft,
			candidates: []PillarCandidate{circle, boxCandidate(5, -20, 10, 1, 4)},
			want:       5,
			wantAnchor: cp.Vector{X: -20, Y: 8},
			found:      true,
		},
		{
			name:       "nan geometry is skipped",
			side:       component.SideRight,
			candidates: []PillarCandidate{{Entity: 6, Position: cp.Vector{X: math.NaN(), Y: 10}, Shape: boxCandidate(0, 0, 0, 1, 1).Shape}},
		},
		{
			name:       "all filtered by side",
			side:       component.SideRight,
			candidates: []PillarCandidate{boxCandidate(1, -5, 10, 1, 4)},
		},
		{
			name: "empty",
			side: component.SideLeft,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectTarget(tt.origin, tt.side, tt.candidates)
			if ok != tt.found {
				t.Fatalf("expected found=%v, got %v", tt.found, ok)
			}
			if !ok {
				return
			}
			if got.Pillar != tt.want {
				t.Fatalf("expected pillar %v, got %v", tt.want, got.Pillar)
			}
			if got.Anchor.Distance(tt.wantAnchor) > 1e-9 {
				t.Fatalf("expected anchor %v, got %v", tt.wantAnchor, got.Anchor)
			}
			if tt.side == component.SideLeft && got.Anchor.X > tt.origin.X {
				t.Fatalf("left selection returned pillar right of origin")
			}
			if tt.side == component.SideRight && got.Anchor.X < tt.origin.X {
				t.Fatalf("right selection returned pillar left of origin")
			}
		})
	}
}
