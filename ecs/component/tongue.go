package component

import "github.com/jakecoffman/cp"

type TongueState int

const (
	TongueIdle TongueState = iota
	TongueAttached
)

func (s TongueState) String() string {
	if s == TongueAttached {
		return "attached"
	}
	return "idle"
}

// Tongue lives on the character and owns the entities of the current chain
// generation. Segments and Joints are flat lists; teardown destroys both.
type Tongue struct {
	State      TongueState
	Generation uint32
	Target     uint64
	Segments   []uint64
	Joints     []uint64
}

var TongueComponent = NewComponent[Tongue]()

// TongueSegment tags a rope segment body.
type TongueSegment struct {
	Generation uint32
	Index      int
	Length     float64
}

var TongueSegmentComponent = NewComponent[TongueSegment]()

// TongueJoint asks the physics system for a pivot constraint between the
// bodies of two entities. Anchors are body-local.
type TongueJoint struct {
	Generation uint32
	BodyA      uint64
	BodyB      uint64
	AnchorA    cp.Vector
	AnchorB    cp.Vector
	Compliance float64
}

var TongueJointComponent = NewComponent[TongueJoint]()
