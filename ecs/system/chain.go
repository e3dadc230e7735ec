package system

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
)

// ErrDegenerateChain is returned when the distance to the anchor cannot be
// split into at least one segment.
var ErrDegenerateChain = errors.New("tongue: degenerate chain")

// Joint endpoints that are not chain segments.
const (
	ChainCharacter = -1
	ChainPillar    = -2
)

// ChainTuning holds the knobs of chain synthesis. Compliance is the inverse
// stiffness of a joint.
type ChainTuning struct {
	SegmentWidth        float64
	SegmentMass         float64
	TrimFactor          float64
	CharacterCompliance float64
	SegmentCompliance   float64
	PillarCompliance    float64
}

func DefaultChainTuning() ChainTuning {
	return ChainTuning{
		SegmentWidth:        0.1,
		SegmentMass:         0.001,
		TrimFactor:          0.5,
		CharacterCompliance: 0.01,
		SegmentCompliance:   0.001,
		PillarCompliance:    0.01,
	}
}

// SegmentPlan is one rope segment. The segment's long axis is its local y.
type SegmentPlan struct {
	Position cp.Vector
	Angle    float64
	Width    float64
	Length   float64
	Mass     float64
}

// JointPlan links two chain bodies. A and B index Segments, or are
// ChainCharacter / ChainPillar.
type JointPlan struct {
	A          int
	B          int
	AnchorA    cp.Vector
	AnchorB    cp.Vector
	Compliance float64
}

type ChainPlan struct {
	Distance  float64
	Direction cp.Vector
	Size      float64
	Trim      float64
	TrimRatio float64
	Segments  []SegmentPlan
	Joints    []JointPlan
}

// PlanChain lays out a chain of segments from start to the target anchor.
// The last joint pins the top of the chain to the target's local anchor.
func PlanChain(start cp.Vector, target AttachmentTarget, tuning ChainTuning) (ChainPlan, error) {
	delta := target.Anchor.Sub(start)
	distance := delta.Length()
	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance < 1 {
		return ChainPlan{}, ErrDegenerateChain
	}
	direction := delta.Mult(1 / distance)

	rawParts := math.Floor(distance)
	size := distance / rawParts

	trim := 0.0
	parts := rawParts
	if rawParts > 2 {
		trim = math.Sqrt(rawParts) * tuning.TrimFactor
		parts = math.Floor(rawParts - trim)
	}
	if parts <= 0 {
		return ChainPlan{}, ErrDegenerateChain
	}
	trimRatio := trim / parts

	n := int(parts)
	plan := ChainPlan{
		Distance:  distance,
		Direction: direction,
		Size:      size,
		Trim:      trim,
		TrimRatio: trimRatio,
		Segments:  make([]SegmentPlan, 0, n),
		Joints:    make([]JointPlan, 0, n+1),
	}

	angle := math.Atan2(direction.Y, direction.X) - math.Pi/2
	top := cp.Vector{Y: size / 2}
	bottom := cp.Vector{Y: -size / 2}

	for i := 0; i < n; i++ {
		offset := (float64(i) + 1 + trimRatio) * size
		plan.Segments = append(plan.Segments, SegmentPlan{
			Position: start.Add(direction.Mult(offset)),
			Angle:    angle,
			Width:    tuning.SegmentWidth,
			Length:   size,
			Mass:     tuning.SegmentMass,
		})

		joint := JointPlan{A: i - 1, B: i, AnchorA: top, AnchorB: bottom, Compliance: tuning.SegmentCompliance}
		if i == 0 {
			joint.A = ChainCharacter
			joint.AnchorA = cp.Vector{}
			joint.Compliance = tuning.CharacterCompliance
		}
		plan.Joints = append(plan.Joints, joint)
	}

	plan.Joints = append(plan.Joints, JointPlan{
		A:          n - 1,
		B:          ChainPillar,
		AnchorA:    top,
		AnchorB:    target.LocalAnchor,
		Compliance: tuning.PillarCompliance,
	})

	return plan, nil
}
