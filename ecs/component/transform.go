package component

// Transform is a world-space pose in world units (y up). Rotation is in
// radians, counter-clockwise.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
