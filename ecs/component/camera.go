package component

// Camera follows the player horizontally. Lead is the fraction of the
// viewport width (in world units) the camera stays ahead of the player.
type Camera struct {
	TargetName string
	Lead       float64
	Offset     float64
}

var CameraComponent = NewComponent[Camera]()
