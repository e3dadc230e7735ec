package system

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestPlanChainTrim(t *testing.T) {
	start := cp.Vector{}
	target := AttachmentTarget{Anchor: cp.Vector{X: 6, Y: 8}, LocalAnchor: cp.Vector{Y: -2}}

	plan, err := PlanChain(start, target, DefaultChainTuning())
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(plan.Segments) != 8 {
		t.Fatalf("expected 8 segments, got %d", len(plan.Segments))
	}
	if len(plan.Joints) != 9 {
		t.Fatalf("expected 9 joints, got %d", len(plan.Joints))
	}
	if math.Abs(plan.Size-1) > 1e-9 {
		t.Fatalf("expected size 1, got %v", plan.Size)
	}
	if math.Abs(plan.Trim-math.Sqrt(10)*0.5) > 1e-9 {
		t.Fatalf("unexpected trim %v", plan.Trim)
	}
	if math.Abs(plan.TrimRatio-0.1976) > 1e-3 {
		t.Fatalf("expected trim ratio ~0.1977, got %v", plan.TrimRatio)
	}

	first := plan.Segments[0]
	wantOffset := (1 + plan.TrimRatio) * plan.Size
	want := cp.Vector{X: 0.6 * wantOffset, Y: 0.8 * wantOffset}
	if first.Position.Distance(want) > 1e-9 {
		t.Fatalf("first segment at %v, expected %v", first.Position, want)
	}
	wantAngle := math.Atan2(0.8, 0.6) - math.Pi/2
	if math.Abs(first.Angle-wantAngle) > 1e-9 {
		t.Fatalf("expected angle %v, got %v", wantAngle, first.Angle)
	}
	if math.Abs(first.Width-0.1) > 1e-9 || first.Mass != 0.001 {
		t.Fatalf("unexpected segment collider %+v", first)
	}
}

func TestPlanChainFractionalDistance(t *testing.T) {
	target := AttachmentTarget{Anchor: cp.Vector{X: 5.5}}
	plan, err := PlanChain(cp.Vector{}, target, DefaultChainTuning())
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if math.Abs(plan.Size-1.1) > 1e-9 {
		t.Fatalf("expected size 1.1, got %v", plan.Size)
	}
	for i, seg := range plan.Segments {
		if seg.Width != 0.1 {
			t.Fatalf("segment %d width %v, expected 0.1", i, seg.Width)
		}
		if math.Abs(seg.Length-1.1) > 1e-9 {
			t.Fatalf("segment %d length %v, expected 1.1", i, seg.Length)
		}
	}
}

func TestPlanChainJoints(t *testing.T) {
	target := AttachmentTarget{Anchor: cp.Vector{X: 10}, LocalAnchor: cp.Vector{Y: -3}}
	plan, err := PlanChain(cp.Vector{}, target, DefaultChainTuning())
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	n := len(plan.Segments)
	half := plan.Size / 2
	for i, j := range plan.Joints {
		switch {
		case i == 0:
			if j.A != ChainCharacter || j.B != 0 || j.AnchorA != (cp.Vector{}) || j.Compliance != 0.01 {
				t.Fatalf("first joint %+v", j)
			}
		case i == n:
			if j.A != n-1 || j.B != ChainPillar || j.AnchorB != target.LocalAnchor || j.Compliance != 0.01 {
				t.Fatalf("pillar joint %+v", j)
			}
			if j.AnchorA != (cp.Vector{Y: half}) {
				t.Fatalf("pillar joint should start at segment top, got %v", j.AnchorA)
			}
		default:
			if j.A != i-1 || j.B != i || j.Compliance != 0.001 {
				t.Fatalf("joint %d %+v", i, j)
			}
			if j.AnchorA != (cp.Vector{Y: half}) || j.AnchorB != (cp.Vector{Y: -half}) {
				t.Fatalf("joint %d anchors %v %v", i, j.AnchorA, j.AnchorB)
			}
		}
	}
}

func TestPlanChainProperties(t *testing.T) {
	tests := []struct {
		name   string
		anchor cp.Vector
	}{
		{name: "one unit", anchor: cp.Vector{X: 1}},
		{name: "two units", anchor: cp.Vector{Y: 2.5}},
		{name: "diagonal", anchor: cp.Vector{X: -7, Y: 13}},
		{name: "long", anchor: cp.Vector{X: 120, Y: 9}},
		{name: "fractional", anchor: cp.Vector{X: 3.99, Y: -0.2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := PlanChain(cp.Vector{}, AttachmentTarget{Anchor: tt.anchor}, DefaultChainTuning())
			if err != nil {
				t.Fatalf("plan: %v", err)
			}
			if len(plan.Joints) != len(plan.Segments)+1 {
				t.Fatalf("expected %d joints, got %d", len(plan.Segments)+1, len(plan.Joints))
			}

			total := plan.Trim * plan.Size
			for _, s := range plan.Segments {
				total += s.Length
			}
			if math.Abs(total-plan.Distance) > plan.Size {
				t.Fatalf("chain length %v differs from distance %v by more than %v", total, plan.Distance, plan.Size)
			}
		})
	}
}

func TestPlanChainDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		anchor cp.Vector
	}{
		{name: "same point", anchor: cp.Vector{}},
		{name: "under one unit", anchor: cp.Vector{X: 0.6, Y: 0.6}},
		{name: "nan", anchor: cp.Vector{X: math.NaN()}},
		{name: "inf", anchor: cp.Vector{Y: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlanChain(cp.Vector{}, AttachmentTarget{Anchor: tt.anchor}, DefaultChainTuning())
			if !errors.Is(err, ErrDegenerateChain) {
				t.Fatalf("expected ErrDegenerateChain, got %v", err)
			}
		})
	}
}
