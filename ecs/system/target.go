package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/flickyfrog/ecs"
	"github.com/milk9111/flickyfrog/ecs/component"
)

const rectEpsilon = 1e-9

// AttachmentTarget is where a tongue latches onto a pillar. Anchor is in world
// space; LocalAnchor is the same point relative to the pillar body.
type AttachmentTarget struct {
	Pillar      ecs.Entity
	Anchor      cp.Vector
	LocalAnchor cp.Vector
}

type PillarCandidate struct {
	Entity   ecs.Entity
	Position cp.Vector
	Shape    *cp.Shape
}

// RectHalfExtents reports the half extents of an axis-aligned box collider.
// Any other shape is not a rectangle.
func RectHalfExtents(shape *cp.Shape) (float64, float64, bool) {
	if shape == nil {
		return 0, 0, false
	}
	poly, ok := shape.Class.(*cp.PolyShape)
	if !ok || poly.Count() != 4 {
		return 0, 0, false
	}

	hx, hy := 0.0, 0.0
	for i := 0; i < 4; i++ {
		v := poly.Vert(i)
		hx = math.Max(hx, math.Abs(v.X))
		hy = math.Max(hy, math.Abs(v.Y))
	}
	if hx <= 0 || hy <= 0 {
		return 0, 0, false
	}
	for i := 0; i < 4; i++ {
		v := poly.Vert(i)
		if math.Abs(math.Abs(v.X)-hx) > rectEpsilon || math.Abs(math.Abs(v.Y)-hy) > rectEpsilon {
			return 0, 0, false
		}
	}
	return hx, hy, true
}

// SelectTarget picks the pillar bottom closest to origin on the given side.
func SelectTarget(origin cp.Vector, side component.Side, candidates []PillarCandidate) (AttachmentTarget, bool) {
	var best AttachmentTarget
	bestDist := math.Inf(1)
	found := false

	for _, c := range candidates {
		if side == component.SideLeft && c.Position.X > origin.X {
			continue
		}
		if side == component.SideRight && c.Position.X < origin.X {
			continue
		}

		_, hy, ok := RectHalfExtents(c.Shape)
		if !ok {
			continue
		}

		local := cp.Vector{Y: -hy}
		anchor := c.Position.Add(local)
		dist := anchor.DistanceSq(origin)
		if math.IsNaN(dist) {
			continue
		}
		if dist < bestDist {
			bestDist = dist
			best = AttachmentTarget{Pillar: c.Entity, Anchor: anchor, LocalAnchor: local}
			found = true
		}
	}

	return best, found
}

func pillarCandidates(w *ecs.World) []PillarCandidate {
	pillars := w.Query(component.PillarTagComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind())
	out := make([]PillarCandidate, 0, len(pillars))
	for _, e := range pillars {
		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			continue
		}
		out = append(out, PillarCandidate{
			Entity:   e,
			Position: cp.Vector{X: transform.X, Y: transform.Y},
			Shape:    body.Shape,
		})
	}
	return out
}
